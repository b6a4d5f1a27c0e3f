package notifier

import (
	"fmt"

	"github.com/plateseries/matriculas/internal/series"
	"github.com/plateseries/matriculas/internal/telegram"
)

// messageSender is the part of the Telegram client the notifier needs
type messageSender interface {
	SendMessage(text string) error
}

// TelegramNotifier sends one digest message per batch of new records
type TelegramNotifier struct {
	sender messageSender
}

// NewTelegramNotifier creates a new Telegram notifier for the given bot
// token and chat ID.
func NewTelegramNotifier(botToken, chatID string) (*TelegramNotifier, error) {
	client, err := telegram.NewClient(botToken, chatID)
	if err != nil {
		return nil, fmt.Errorf("configuring telegram client: %w", err)
	}

	return &TelegramNotifier{sender: client}, nil
}

// Notify sends the whole batch as a single digest message.
// An empty batch sends nothing.
func (n *TelegramNotifier) Notify(records []series.Record) error {
	if len(records) == 0 {
		return nil
	}

	return n.sender.SendMessage(telegram.FormatDigest(records))
}
