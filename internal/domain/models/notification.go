package models

import (
	"github.com/google/uuid"
	"time"
)

type NotificationKind string

const (
	KindError   NotificationKind = "error"
	KindInfo    NotificationKind = "info"
	KindSuccess NotificationKind = "success"
)

type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"createdAt"`
}

func NewNotification(kind NotificationKind, message string) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}
}
