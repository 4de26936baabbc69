package events

import "github.com/maxaizer/sam-finder/internal/domain/models"

var NotificationTopic = "NotificationEvent"

type NotificationRaised struct {
	Notification models.Notification
}
