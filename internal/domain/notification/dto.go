package notification

import (
	"time"
)

type NotificationResponse struct {
	ID        string                 `json:"id"`
	Verb      string                 `json:"verb"`
	ActorID   *string                `json:"actor_id,omitempty"`
	Target    *TargetRef             `json:"target,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Unread    bool                   `json:"unread"`
	CreatedAt time.Time              `json:"created_at"`
}

// ToResponse converts a Notification entity to its API shape.
func ToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Verb:      n.Verb,
		ActorID:   n.ActorID,
		Target:    n.Target,
		Data:      n.Data,
		Unread:    n.Unread,
		CreatedAt: n.CreatedAt,
	}
}

type ListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

type MarkReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}
