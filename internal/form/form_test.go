package form

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/sam-finder/internal/domain/events"
	"github.com/maxaizer/sam-finder/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
	"time"
)

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) Search(ctx context.Context, filters models.DateFilterSet) (*models.SearchSummary, error) {
	args := m.Called(ctx, filters)
	summary, _ := args.Get(0).(*models.SearchSummary)
	return summary, args.Error(1)
}

func newTestForm(t *testing.T, searcher searcher) (*FilterForm, *[]models.Notification) {
	bus := EventBus.New()
	published := &[]models.Notification{}
	require.NoError(t, bus.Subscribe(events.NotificationTopic, func(event events.NotificationRaised) {
		*published = append(*published, event.Notification)
	}))

	form, err := NewFilterForm(searcher, bus)
	require.NoError(t, err)
	return form, published
}

func assertSettled(t *testing.T, form *FilterForm) {
	assert.Equal(t, Idle, form.State())
	assert.True(t, form.ActionEnabled())
	assert.False(t, form.SettingsOpen())
}

func Test_NewFilterForm_WhenDependencyMissing_ShouldFail(t *testing.T) {

	_, err := NewFilterForm(nil, EventBus.New())
	assert.Error(t, err)

	_, err = NewFilterForm(&mockSearcher{}, nil)
	assert.Error(t, err)
}

func Test_Search_WhenNoFilters_ShouldRejectWithoutCallingSearcher(t *testing.T) {

	searcher := &mockSearcher{}
	form, published := newTestForm(t, searcher)
	form.OpenSettings()

	notification := form.Search(context.Background())

	assert.Equal(t, models.KindError, notification.Kind)
	assert.Equal(t, MessageNoFilters, notification.Message)
	assert.Equal(t, []models.Notification{notification}, *published)
	searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	assertSettled(t, form)
}

func Test_Search_WhenPostedRangeReversed_ShouldReject(t *testing.T) {

	searcher := &mockSearcher{}
	form, _ := newTestForm(t, searcher)
	form.SetPostedFrom(models.Date(2024, time.June, 1))
	form.SetPostedTo(models.Date(2024, time.May, 1))

	notification := form.Search(context.Background())

	assert.Equal(t, models.KindError, notification.Kind)
	assert.Equal(t, MessageInvalidPostedRange, notification.Message)
	searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	assertSettled(t, form)
}

func Test_Search_WhenBothRangesReversed_ShouldReportPostedFirst(t *testing.T) {

	form, _ := newTestForm(t, &mockSearcher{})
	form.SetFilters(models.DateFilterSet{
		PostedFrom:   models.Date(2024, time.June, 1),
		PostedTo:     models.Date(2024, time.May, 1),
		DeadlineFrom: models.Date(2024, time.August, 1),
		DeadlineTo:   models.Date(2024, time.July, 1),
	})

	notification := form.Search(context.Background())

	assert.Equal(t, MessageInvalidPostedRange, notification.Message)
}

func Test_Search_WhenDeadlineRangeReversed_ShouldReject(t *testing.T) {

	searcher := &mockSearcher{}
	form, _ := newTestForm(t, searcher)
	form.SetDeadlineFrom(models.Date(2024, time.August, 1))
	form.SetDeadlineTo(models.Date(2024, time.July, 1))

	notification := form.Search(context.Background())

	assert.Equal(t, models.KindError, notification.Kind)
	assert.Equal(t, MessageInvalidDeadlineRange, notification.Message)
	searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func Test_Search_WhenHalfSpecifiedRange_ShouldSearch(t *testing.T) {

	filters := models.DateFilterSet{PostedTo: models.Date(2024, time.May, 1)}

	searcher := &mockSearcher{}
	searcher.On("Search", mock.Anything, filters).Return(&models.SearchSummary{TotalRecords: 1}, nil)

	form, _ := newTestForm(t, searcher)
	form.SetFilters(filters)

	notification := form.Search(context.Background())

	assert.Equal(t, models.KindSuccess, notification.Kind)
	assert.Equal(t, "Found 1 opportunities", notification.Message)
	searcher.AssertExpectations(t)
}

func Test_Search_WhenNothingFound_ShouldNotifyInfo(t *testing.T) {

	searcher := &mockSearcher{}
	searcher.On("Search", mock.Anything, mock.Anything).
		Return(&models.SearchSummary{TotalRecords: 0, Opportunities: []models.Opportunity{}}, nil)

	form, published := newTestForm(t, searcher)
	form.SetPostedFrom(models.Date(2024, time.May, 1))
	form.OpenSettings()

	notification := form.Search(context.Background())

	assert.Equal(t, models.KindInfo, notification.Kind)
	assert.Equal(t, MessageNoResults, notification.Message)
	assert.Len(t, *published, 1)
	assertSettled(t, form)
}

func Test_Search_WhenFound_ShouldNotifySuccessWithCount(t *testing.T) {

	searcher := &mockSearcher{}
	searcher.On("Search", mock.Anything, mock.Anything).Return(&models.SearchSummary{
		TotalRecords:  3,
		Opportunities: make([]models.Opportunity, 3),
	}, nil)

	form, _ := newTestForm(t, searcher)
	form.SetPostedFrom(models.Date(2024, time.May, 1))
	form.SetPostedTo(models.Date(2024, time.May, 31))
	form.OpenSettings()

	notification := form.Search(context.Background())

	assert.Equal(t, models.KindSuccess, notification.Kind)
	assert.Equal(t, "Found 3 opportunities", notification.Message)
	assertSettled(t, form)
}

func Test_Search_WhenFiltersSkipped_ShouldMentionThem(t *testing.T) {

	searcher := &mockSearcher{}
	searcher.On("Search", mock.Anything, mock.Anything).Return(&models.SearchSummary{
		TotalRecords:   5,
		SkippedFilters: []string{"rdlto"},
	}, nil)

	form, _ := newTestForm(t, searcher)
	form.SetDeadlineTo(models.Date(2024, time.May, 1))

	notification := form.Search(context.Background())

	assert.Equal(t, "Found 5 opportunities (ignored filters: rdlto)", notification.Message)
}

func Test_Search_WhenSearcherFails_ShouldNotifyError(t *testing.T) {

	searcher := &mockSearcher{}
	searcher.On("Search", mock.Anything, mock.Anything).
		Return(nil, errors.New("SAM API request failed with status 500"))

	form, published := newTestForm(t, searcher)
	form.SetPostedFrom(models.Date(2024, time.May, 1))
	form.OpenSettings()

	notification := form.Search(context.Background())

	assert.Equal(t, models.KindError, notification.Kind)
	assert.Equal(t, "SAM API request failed with status 500", notification.Message)
	assert.Len(t, *published, 1)
	assertSettled(t, form)
}

func Test_Search_WhenErrorHasNoMessage_ShouldUseFallback(t *testing.T) {

	searcher := &mockSearcher{}
	searcher.On("Search", mock.Anything, mock.Anything).Return(nil, errors.New(""))

	form, _ := newTestForm(t, searcher)
	form.SetPostedFrom(models.Date(2024, time.May, 1))

	notification := form.Search(context.Background())

	assert.Equal(t, MessageFetchFailed, notification.Message)
}

func Test_Search_WhenAlreadySearching_ShouldRejectSecondCall(t *testing.T) {

	started := make(chan struct{})
	release := make(chan struct{})

	searcher := &mockSearcher{}
	searcher.On("Search", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&models.SearchSummary{TotalRecords: 2}, nil).
		Once()

	form, _ := newTestForm(t, searcher)
	form.SetPostedFrom(models.Date(2024, time.May, 1))

	var first models.Notification
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = form.Search(context.Background())
	}()

	<-started
	assert.Equal(t, Searching, form.State())
	assert.False(t, form.ActionEnabled())

	second := form.Search(context.Background())
	assert.Equal(t, models.KindError, second.Kind)
	assert.Equal(t, ErrSearchInProgress.Error(), second.Message)
	assert.Equal(t, Searching, form.State())

	close(release)
	wg.Wait()

	assert.Equal(t, "Found 2 opportunities", first.Message)
	assertSettled(t, form)
	searcher.AssertNumberOfCalls(t, "Search", 1)
}

func Test_State_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "searching", Searching.String())
	assert.Equal(t, "State(7)", State(7).String())
}
