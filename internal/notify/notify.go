// Package notify sends caregivers a heads-up about next-day bookings.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"carebook/internal/model"
)

// Notifier delivers a reminder message to a chat.
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// TelegramNotifier sends reminders through a Telegram bot.
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramNotifier authorizes the bot with the given token.
func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("authorize telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot}, nil
}

// SendMessage sends a plain-text message to the chat.
func (n *TelegramNotifier) SendMessage(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := n.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// shouldRemindStatus filters statuses that still expect the caregiver to
// show up.
func shouldRemindStatus(status model.BookingStatus) bool {
	switch status {
	case model.StatusPending, model.StatusWaiting, model.StatusInProgress:
		return true
	default:
		return false
	}
}

func formatReminderMessage(b model.Booking) string {
	return fmt.Sprintf("Reminder: you have a booking tomorrow (%s) from %s to %s. Status: %s",
		b.Date, b.StartTime, b.EndTime, b.Status)
}
