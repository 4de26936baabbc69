package cli

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/sam-finder/internal/clients/sam"
	"github.com/maxaizer/sam-finder/internal/config"
	"github.com/maxaizer/sam-finder/internal/diagnostics"
	"github.com/maxaizer/sam-finder/internal/domain/models"
	"github.com/maxaizer/sam-finder/internal/form"
	"github.com/maxaizer/sam-finder/internal/logger"
	"github.com/maxaizer/sam-finder/internal/metrics"
	"github.com/maxaizer/sam-finder/internal/services"
	log "github.com/sirupsen/logrus"
	"net/http"
	"sync"
)

type app struct {
	form     *form.FilterForm
	feed     *services.NotificationFeed
	searcher *recordingSearcher
}

func newApp(cfg *config.Config) (*app, error) {

	metrics.Register()

	if cfg.Sam.APIKey == "" {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeConfig).
			Warn("SAM_API_KEY is not set, every search will fail until it is configured")
	}

	client := sam.NewClient(cfg.Sam.APIKey)
	client.SetBaseURL(cfg.Sam.BaseURL)
	client.SetHTTPClient(&http.Client{Timeout: cfg.Sam.Timeout})
	client.SetDiagnostics(diagnostics.NewTracer(cfg.Server.IsDevelopment()).WithLogger(log.WithField("component", "sam")))

	searcher := &recordingSearcher{next: services.NewOpportunitySearcher(client, cfg.Sam.Limit)}

	bus := EventBus.New()

	feed, err := services.NewNotificationFeed(bus, cfg.Server.NotificationTTL)
	if err != nil {
		return nil, err
	}

	filterForm, err := form.NewFilterForm(searcher, bus)
	if err != nil {
		return nil, err
	}

	return &app{form: filterForm, feed: feed, searcher: searcher}, nil
}

type searcher interface {
	Search(ctx context.Context, filters models.DateFilterSet) (*models.SearchSummary, error)
}

// recordingSearcher remembers the summary of the last search so the terminal
// can list the opportunities behind the notification.
type recordingSearcher struct {
	next searcher
	mu   sync.Mutex
	last *models.SearchSummary
}

func (s *recordingSearcher) Search(ctx context.Context, filters models.DateFilterSet) (*models.SearchSummary, error) {
	summary, err := s.next.Search(ctx, filters)

	s.mu.Lock()
	s.last = summary
	s.mu.Unlock()

	return summary, err
}

func (s *recordingSearcher) Last() *models.SearchSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
