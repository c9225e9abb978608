// Package notify pushes lead-transition alerts to the workshop owner.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/siblingk/chatbot-sub001/internal/config"
	"github.com/siblingk/chatbot-sub001/internal/domain"
)

// TelegramNotifier sends lead transitions to a Telegram chat. Delivery is
// fire-and-forget; failures are logged and never reach the caller.
type TelegramNotifier struct {
	bot    *bot.Bot
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create notify bot: %w", err)
	}
	return &TelegramNotifier{bot: b, chatID: chatID}, nil
}

func (n *TelegramNotifier) LeadTransition(lead *domain.ChatLead) {
	go n.send(transitionText(lead), string(lead.Status))
}

func (n *TelegramNotifier) send(text, kind string) {
	ctx, cancel := context.WithTimeout(context.Background(), config.NotifyTimeout)
	defer cancel()

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		slog.Error("failed to send lead notification", "kind", kind, "error", err)
	}
}

func transitionText(lead *domain.ChatLead) string {
	switch lead.Status {
	case domain.StatusPreQuote:
		return fmt.Sprintf("📋 *New pre-quote*\n\n*Lead:* `%s`\n*User:* `%s`", lead.ID, lead.UserID)
	case domain.StatusAppointment:
		return fmt.Sprintf("📅 *Appointment set*\n\n*Lead:* `%s`\n*User:* `%s`", lead.ID, lead.UserID)
	case domain.StatusQuote:
		return fmt.Sprintf("💰 *Quote issued*\n\n*Lead:* `%s`\n*User:* `%s`\n*Quotes so far:* %d", lead.ID, lead.UserID, lead.QuoteCount)
	case domain.StatusInvoice:
		return fmt.Sprintf("🧾 *Invoice issued*\n\n*Lead:* `%s`\n*User:* `%s`", lead.ID, lead.UserID)
	default:
		return fmt.Sprintf("ℹ️ *Lead updated*\n\n*Lead:* `%s`\n*Status:* %s", lead.ID, lead.Status)
	}
}
