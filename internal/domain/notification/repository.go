package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	CreateBatch(ctx context.Context, notifications []Notification) ([]Notification, error)
	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]Notification, error)
	UnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkRead(ctx context.Context, recipientID string, ids []string) error
	MarkAllRead(ctx context.Context, recipientID string) error
}
