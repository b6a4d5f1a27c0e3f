// Package telegram sends plate-series notifications through the Telegram Bot API.
//
// Messages are formatted as HTML and sent with plain HTTP requests against
// the Bot API; no bot framework is involved. Authentication requires a bot
// token (from @BotFather) and a chat ID.
package telegram
