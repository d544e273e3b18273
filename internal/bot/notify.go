package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/TomKxxx/sreality-tracker/internal/models"
	"gopkg.in/telebot.v4"
)

// Notify sends an alert summary of the cycle's changes to every subscribed
// chat. A failed send is logged per chat and does not stop the rest.
func (b *Bot) Notify(ctx context.Context, changes *models.Changes) error {
	const opn = "bot.Notify"

	if !changes.HasAlerts() {
		return nil
	}

	chatIDs, err := b.repo.GetSubscribedChats(ctx)
	if err != nil {
		return fmt.Errorf("%s: failed to get subscribed chats: %w", opn, err)
	}

	message := formatAlerts(changes)
	for _, chatID := range chatIDs {
		if _, err = b.bot.Send(telebot.ChatID(chatID), message); err != nil {
			b.log.WarnContext(ctx, "Failed to send alert", "op", opn, "chat_id", chatID, "error", err)
		}
	}

	b.log.InfoContext(ctx, "Alerts delivered", "op", opn, "chats", len(chatIDs))

	return nil
}

// formatAlerts builds the plain-text alert summary for one check cycle.
func formatAlerts(changes *models.Changes) string {
	var sb strings.Builder
	sb.WriteString("Property check results\n")

	if len(changes.New) > 0 {
		fmt.Fprintf(&sb, "\nNew properties (%d):\n", len(changes.New))
		for _, listing := range changes.New {
			fmt.Fprintf(&sb, "- %s, %s, %s\n  %s\n",
				listing.Name, listing.Locality, models.FormatPrice(listing.Price), listing.URL)
		}
	}

	if len(changes.PriceChanged) > 0 {
		fmt.Fprintf(&sb, "\nPrice changes (%d):\n", len(changes.PriceChanged))
		for _, change := range changes.PriceChanged {
			direction := "up"
			if change.Delta < 0 {
				direction = "down"
			}
			fmt.Fprintf(&sb, "- %s: %s -> %s (%s)\n  %s\n",
				change.Listing.Name,
				models.FormatPrice(change.OldPrice),
				models.FormatPrice(change.NewPrice),
				direction,
				change.Listing.URL)
		}
	}

	if len(changes.Removed) > 0 {
		fmt.Fprintf(&sb, "\nRemoved (likely sold, %d):\n", len(changes.Removed))
		for _, listing := range changes.Removed {
			fmt.Fprintf(&sb, "- %s, last price %s\n",
				listing.Name, models.FormatPrice(listing.Price))
		}
	}

	return sb.String()
}
