package cli

import (
	"bytes"
	"context"
	"github.com/maxaizer/sam-finder/internal/config"
	"github.com/maxaizer/sam-finder/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"
)

func newSamServer(t *testing.T, status int, file string, queries *[]url.Values) *httptest.Server {
	body, err := os.ReadFile("../clients/sam/testdata/" + file)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*queries = append(*queries, r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Sam: config.SamConfig{
			APIKey:  "test-key",
			BaseURL: baseURL,
			Timeout: 5 * time.Second,
			Limit:   10,
		},
		Server: config.ServerConfig{
			Mode:            config.ModeTest,
			NotificationTTL: time.Minute,
		},
	}
}

func Test_RunSearch_ShouldPrintNotificationAndTable(t *testing.T) {

	var queries []url.Values
	server := newSamServer(t, http.StatusOK, "search.json", &queries)

	var out bytes.Buffer
	err := runSearch(context.Background(), testConfig(server.URL), searchOptions{
		postedFrom: "2024-05-01",
		postedTo:   "2024-05-31",
		limit:      25,
	}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Found 3 opportunities")
	assert.Contains(t, out.String(), "W912EK24R0031")
	assert.Contains(t, out.String(), "Janitorial services for the federal building.")

	require.Len(t, queries, 1)
	assert.Equal(t, "05/01/2024", queries[0].Get("postedFrom"))
	assert.Equal(t, "05/31/2024", queries[0].Get("postedTo"))
	assert.Equal(t, "25", queries[0].Get("limit"))
	assert.Equal(t, "test-key", queries[0].Get("api_key"))
}

func Test_RunSearch_WhenNoFilters_ShouldNotCallApi(t *testing.T) {

	var queries []url.Values
	server := newSamServer(t, http.StatusOK, "search.json", &queries)

	var out bytes.Buffer
	err := runSearch(context.Background(), testConfig(server.URL), searchOptions{}, &out)

	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out.String(), "Please select at least one date filter")
	assert.Empty(t, queries)
}

func Test_RunSearch_WhenApiFails_ShouldReportApiMessage(t *testing.T) {

	var queries []url.Values
	server := newSamServer(t, http.StatusBadRequest, "error.json", &queries)

	var out bytes.Buffer
	err := runSearch(context.Background(), testConfig(server.URL), searchOptions{deadlineTo: "2024-07-01"}, &out)

	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out.String(), "Invalid Date Entered")
	assert.NotContains(t, out.String(), "No opportunities returned")
}

func Test_RunSearch_WhenDateMalformed_ShouldFailBeforeSearch(t *testing.T) {

	var out bytes.Buffer
	err := runSearch(context.Background(), testConfig("http://127.0.0.1:1"), searchOptions{postedFrom: "05/01/2024"}, &out)

	assert.Error(t, err)
	assert.False(t, errors.Is(err, errReported))
	assert.Contains(t, err.Error(), "--posted-from")
	assert.Empty(t, out.String())
}

func Test_SearchOptions_Filters_ShouldParseAllDates(t *testing.T) {

	filters, err := searchOptions{
		postedFrom:   "2024-05-01",
		deadlineFrom: "2024-06-01",
		deadlineTo:   "2024-07-01",
	}.filters()

	require.NoError(t, err)
	assert.Equal(t, models.Date(2024, time.May, 1), filters.PostedFrom)
	assert.Nil(t, filters.PostedTo)
	assert.Equal(t, models.Date(2024, time.June, 1), filters.DeadlineFrom)
	assert.Equal(t, models.Date(2024, time.July, 1), filters.DeadlineTo)
}

func Test_RecordingSearcher_ShouldKeepLastSummary(t *testing.T) {

	next := &stubSearcher{summary: &models.SearchSummary{TotalRecords: 1}}
	recorder := &recordingSearcher{next: next}

	_, err := recorder.Search(context.Background(), models.DateFilterSet{})
	require.NoError(t, err)
	assert.Equal(t, 1, recorder.Last().TotalRecords)

	next.summary, next.err = nil, errors.New("boom")
	_, err = recorder.Search(context.Background(), models.DateFilterSet{})
	assert.Error(t, err)
	assert.Nil(t, recorder.Last())
}

type stubSearcher struct {
	summary *models.SearchSummary
	err     error
}

func (s *stubSearcher) Search(context.Context, models.DateFilterSet) (*models.SearchSummary, error) {
	return s.summary, s.err
}
