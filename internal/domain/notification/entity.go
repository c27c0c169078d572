package notification

import (
	"time"
)

// TargetKind tags the entity a notification points at.
type TargetKind string

const (
	TargetPresenceSession TargetKind = "presence_session"
	TargetLeaveRequest    TargetKind = "leave_request"
)

// TargetRef is a typed reference to the entity that triggered a
// notification.
type TargetRef struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id"`
}

// Notification is created only by the dispatcher, in the same transaction
// as the state change it announces. The only mutation afterwards is marking
// it read.
type Notification struct {
	ID          string
	RecipientID string
	Verb        string
	ActorID     *string
	Target      *TargetRef
	Data        map[string]interface{}
	Unread      bool
	CreatedAt   time.Time
}
