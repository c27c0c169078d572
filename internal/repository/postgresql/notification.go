package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/notification"
	"github.com/personnel-hq/personnel-backend-go/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepositoryImpl{db: db}
}

func (r *notificationRepositoryImpl) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	n.ID = uuid.New().String()
	n.Unread = true

	data, err := marshalData(n.Data)
	if err != nil {
		return notification.Notification{}, err
	}

	var targetKind, targetID *string
	if n.Target != nil {
		kind := string(n.Target.Kind)
		targetKind = &kind
		targetID = &n.Target.ID
	}

	query := `
		INSERT INTO notifications (id, recipient_id, verb, actor_id, target_kind, target_id, data, unread, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, NOW())
		RETURNING created_at
	`

	err = q.QueryRow(ctx, query,
		n.ID, n.RecipientID, n.Verb, n.ActorID, targetKind, targetID, data,
	).Scan(&n.CreatedAt)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	return n, nil
}

func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, notifications []notification.Notification) ([]notification.Notification, error) {
	created := make([]notification.Notification, 0, len(notifications))
	for _, n := range notifications {
		c, err := r.Create(ctx, n)
		if err != nil {
			return nil, err
		}
		created = append(created, c)
	}
	return created, nil
}

func (r *notificationRepositoryImpl) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 || limit > 200 {
		limit = 200
	}

	query := `
		SELECT id, recipient_id, verb, actor_id, target_kind, target_id, data, unread, created_at
		FROM notifications
		WHERE recipient_id = $1 AND ($2 = FALSE OR unread)
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, recipientID, unreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		var targetKind, targetID *string
		var data []byte
		if err := rows.Scan(
			&n.ID, &n.RecipientID, &n.Verb, &n.ActorID,
			&targetKind, &targetID, &data, &n.Unread, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		if targetKind != nil && targetID != nil {
			n.Target = &notification.TargetRef{Kind: notification.TargetKind(*targetKind), ID: *targetID}
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &n.Data); err != nil {
				return nil, fmt.Errorf("failed to decode notification data: %w", err)
			}
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (r *notificationRepositoryImpl) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND unread
	`, recipientID).Scan(&count)
	return count, err
}

func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, recipientID string, ids []string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE notifications SET unread = FALSE
		WHERE recipient_id = $1 AND id = ANY($2)
	`, recipientID, ids)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (r *notificationRepositoryImpl) MarkAllRead(ctx context.Context, recipientID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE notifications SET unread = FALSE WHERE recipient_id = $1 AND unread
	`, recipientID)
	if err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return nil
}

func marshalData(data map[string]interface{}) ([]byte, error) {
	if len(data) == 0 {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notification data: %w", err)
	}
	return b, nil
}
