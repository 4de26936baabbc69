package services

import (
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/sam-finder/internal/domain/events"
	"github.com/maxaizer/sam-finder/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"slices"
	"time"
)

// NotificationFeed keeps raised notifications until their ttl runs out.
type NotificationFeed struct {
	cache *gocache.Cache
}

func NewNotificationFeed(bus EventBus.Bus, ttl time.Duration) (*NotificationFeed, error) {

	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	if ttl <= 0 {
		return nil, errors.New("ttl must be greater than zero")
	}

	feed := &NotificationFeed{cache: gocache.New(ttl, 2*ttl)}

	if err := bus.Subscribe(events.NotificationTopic, feed.onNotification); err != nil {
		return nil, err
	}
	return feed, nil
}

func (f *NotificationFeed) Add(notification models.Notification) {
	f.cache.SetDefault(notification.ID, notification)
}

func (f *NotificationFeed) Dismiss(id string) {
	f.cache.Delete(id)
}

// Active returns unexpired notifications, oldest first.
func (f *NotificationFeed) Active() []models.Notification {
	notifications := lo.MapToSlice(f.cache.Items(), func(_ string, item gocache.Item) models.Notification {
		return item.Object.(models.Notification)
	})

	slices.SortFunc(notifications, func(a, b models.Notification) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return notifications
}

func (f *NotificationFeed) onNotification(event events.NotificationRaised) {
	f.Add(event.Notification)
}
