// Package notifier posts newly detected plate-series records to outside channels.
//
// Implementations cover Twitter (one tweet per record through the v1.1
// statuses API), Telegram (one digest message per batch), and a dry-run
// printer for rehearsing a notification pass. Credentials come from
// environment variables.
package notifier
