package sqlite

import (
	"context"
	"fmt"
)

// SubscribeChat registers a chat for change alerts. Registering a chat
// that is already subscribed is a no-op.
func (r *Repository) SubscribeChat(ctx context.Context, chatID int64) error {
	const opn = "repository.sqlite.SubscribeChat"

	if _, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO subscriptions (chat_id) VALUES (?)", chatID); err != nil {
		return fmt.Errorf("%s: failed to insert subscription: %w", opn, err)
	}

	return nil
}

// UnsubscribeChat removes a chat from the alert recipients. Unknown chat
// IDs are ignored.
func (r *Repository) UnsubscribeChat(ctx context.Context, chatID int64) error {
	const opn = "repository.sqlite.UnsubscribeChat"

	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM subscriptions WHERE chat_id = ?", chatID); err != nil {
		return fmt.Errorf("%s: failed to delete subscription: %w", opn, err)
	}

	return nil
}

// GetSubscribedChats lists every chat currently receiving alerts.
func (r *Repository) GetSubscribedChats(ctx context.Context) ([]int64, error) {
	const opn = "repository.sqlite.GetSubscribedChats"

	rows, err := r.db.QueryContext(ctx, "SELECT chat_id FROM subscriptions")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query subscriptions: %w", opn, err)
	}
	defer rows.Close()

	var chatIDs []int64
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: failed to scan chat_id: %w", opn, err)
		}
		chatIDs = append(chatIDs, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", opn, err)
	}

	return chatIDs, nil
}
