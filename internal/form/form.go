// Package form holds the date filter form behind the dashboard and the
// search action it triggers.
package form

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/sam-finder/internal/domain/events"
	"github.com/maxaizer/sam-finder/internal/domain/models"
	"github.com/maxaizer/sam-finder/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"strings"
	"sync"
	"time"
)

var ErrSearchInProgress = errors.New("a search is already in progress")

const (
	MessageNoFilters            = "Please select at least one date filter"
	MessageInvalidPostedRange   = "Posted From date must be before Posted To date"
	MessageInvalidDeadlineRange = "Deadline From date must be before Deadline To date"
	MessageNoResults            = "No opportunities found for the selected criteria"
	MessageFetchFailed          = "Failed to fetch opportunities"
	messageFound                = "Found %d opportunities"
)

type State int

const (
	Idle State = iota
	Searching
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Searching:
		return "searching"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type searcher interface {
	Search(ctx context.Context, filters models.DateFilterSet) (*models.SearchSummary, error)
}

type validation struct {
	function     func(filters models.DateFilterSet) bool
	errorMessage string
}

var validations = []validation{
	{
		function:     func(filters models.DateFilterSet) bool { return !filters.IsEmpty() },
		errorMessage: MessageNoFilters,
	},
	{
		function:     models.DateFilterSet.ValidPostedRange,
		errorMessage: MessageInvalidPostedRange,
	},
	{
		function:     models.DateFilterSet.ValidDeadlineRange,
		errorMessage: MessageInvalidDeadlineRange,
	},
}

type FilterForm struct {
	mu           sync.Mutex
	state        State
	filters      models.DateFilterSet
	settingsOpen bool
	searcher     searcher
	bus          EventBus.Bus
}

func NewFilterForm(searcher searcher, bus EventBus.Bus) (*FilterForm, error) {

	if searcher == nil {
		return nil, errors.New("searcher is nil")
	}

	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	return &FilterForm{state: Idle, searcher: searcher, bus: bus}, nil
}

func (f *FilterForm) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// ActionEnabled reports whether the search button can be pressed.
func (f *FilterForm) ActionEnabled() bool {
	return f.State() == Idle
}

func (f *FilterForm) Filters() models.DateFilterSet {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filters
}

func (f *FilterForm) SetFilters(filters models.DateFilterSet) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = filters
}

func (f *FilterForm) SetPostedFrom(date *time.Time) {
	f.update(func(filters *models.DateFilterSet) { filters.PostedFrom = date })
}

func (f *FilterForm) SetPostedTo(date *time.Time) {
	f.update(func(filters *models.DateFilterSet) { filters.PostedTo = date })
}

func (f *FilterForm) SetDeadlineFrom(date *time.Time) {
	f.update(func(filters *models.DateFilterSet) { filters.DeadlineFrom = date })
}

func (f *FilterForm) SetDeadlineTo(date *time.Time) {
	f.update(func(filters *models.DateFilterSet) { filters.DeadlineTo = date })
}

func (f *FilterForm) SettingsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settingsOpen
}

func (f *FilterForm) OpenSettings() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settingsOpen = true
}

func (f *FilterForm) CloseSettings() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settingsOpen = false
}

// Search runs the search action once. The form is back in Idle with the
// settings panel closed when it returns, whatever the outcome.
func (f *FilterForm) Search(ctx context.Context) models.Notification {

	filters, started := f.begin()
	if !started {
		metrics.SearchesCounter.WithLabelValues(metrics.OutcomeBusy).Inc()
		return f.notify(models.KindError, ErrSearchInProgress.Error())
	}
	defer f.finish()

	for _, v := range validations {
		if !v.function(filters) {
			metrics.SearchesCounter.WithLabelValues(metrics.OutcomeRejected).Inc()
			log.Debugf("search rejected: %s", v.errorMessage)
			return f.notify(models.KindError, v.errorMessage)
		}
	}

	summary, err := f.searcher.Search(ctx, filters)
	if err != nil {
		metrics.SearchesCounter.WithLabelValues(metrics.OutcomeFailed).Inc()
		message := err.Error()
		if message == "" {
			message = MessageFetchFailed
		}
		return f.notify(models.KindError, message)
	}

	if summary.TotalRecords == 0 {
		metrics.SearchesCounter.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return f.notify(models.KindInfo, withSkipped(MessageNoResults, summary.SkippedFilters))
	}

	metrics.SearchesCounter.WithLabelValues(metrics.OutcomeFound).Inc()
	log.Infof("search found %d opportunities", summary.TotalRecords)
	return f.notify(models.KindSuccess, withSkipped(fmt.Sprintf(messageFound, summary.TotalRecords), summary.SkippedFilters))
}

func (f *FilterForm) begin() (models.DateFilterSet, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != Idle {
		return models.DateFilterSet{}, false
	}
	f.state = Searching
	return f.filters, true
}

func (f *FilterForm) finish() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = Idle
	f.settingsOpen = false
}

func (f *FilterForm) update(change func(filters *models.DateFilterSet)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	change(&f.filters)
}

func (f *FilterForm) notify(kind models.NotificationKind, message string) models.Notification {
	notification := models.NewNotification(kind, message)
	f.bus.Publish(events.NotificationTopic, events.NotificationRaised{Notification: notification})
	return notification
}

func withSkipped(message string, skipped []string) string {
	if len(skipped) == 0 {
		return message
	}
	return fmt.Sprintf("%s (ignored filters: %s)", message, strings.Join(skipped, ", "))
}
