package bot

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v4"
)

// startHandler processes command /start: subscribes the chat to alerts.
func (b *Bot) startHandler(ctx telebot.Context) error {
	b.log.Info("User subscribed to alerts", "username", ctx.Sender().Username, "chat_id", ctx.Chat().ID)

	if err := b.repo.SubscribeChat(context.Background(), ctx.Chat().ID); err != nil {
		return fmt.Errorf("failed to subscribe chat: %w", err)
	}

	if err := ctx.Send("Subscribed. You will receive property alerts after every check."); err != nil {
		return fmt.Errorf("failed to send greeting message: %w", err)
	}

	return nil
}

// stopHandler processes command /stop: unsubscribes the chat.
func (b *Bot) stopHandler(ctx telebot.Context) error {
	b.log.Info("User unsubscribed from alerts", "username", ctx.Sender().Username, "chat_id", ctx.Chat().ID)

	if err := b.repo.UnsubscribeChat(context.Background(), ctx.Chat().ID); err != nil {
		return fmt.Errorf("failed to unsubscribe chat: %w", err)
	}

	if err := ctx.Send("Unsubscribed. No more property alerts for this chat."); err != nil {
		return fmt.Errorf("failed to send farewell message: %w", err)
	}

	return nil
}
