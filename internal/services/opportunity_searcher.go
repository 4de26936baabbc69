package services

import (
	"context"
	"github.com/maxaizer/sam-finder/internal/clients/sam"
	"github.com/maxaizer/sam-finder/internal/domain/models"
	"github.com/maxaizer/sam-finder/internal/metrics"
	"github.com/samber/lo"
	"time"
)

type samClient interface {
	Search(ctx context.Context, parameters sam.SearchParameters) (*sam.SearchResult, error)
}

type OpportunitySearcher struct {
	client samClient
	limit  int
}

func NewOpportunitySearcher(client samClient, limit int) *OpportunitySearcher {
	return &OpportunitySearcher{client: client, limit: limit}
}

func (s *OpportunitySearcher) Search(ctx context.Context, filters models.DateFilterSet) (*models.SearchSummary, error) {

	start := time.Now()
	result, err := s.client.Search(ctx, createSamSearchParams(filters, s.limit))
	metrics.SamRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, err
	}

	metrics.ReportedOpportunities.Observe(float64(result.TotalRecords))

	return &models.SearchSummary{
		TotalRecords: result.TotalRecords,
		Opportunities: lo.Map(result.Opportunities, func(o sam.Opportunity, _ int) models.Opportunity {
			return models.Opportunity{
				Title:              o.Title,
				PostedDate:         o.PostedDate,
				ResponseDeadline:   o.ResponseDeadline,
				Description:        o.Description,
				Type:               o.Type,
				SolicitationNumber: o.SolicitationNumber,
			}
		}),
		SkippedFilters: result.SkippedFilters,
	}, nil
}

func createSamSearchParams(filters models.DateFilterSet, limit int) sam.SearchParameters {
	return sam.SearchParameters{
		PostedFrom:   filters.PostedFrom,
		PostedTo:     filters.PostedTo,
		DeadlineFrom: filters.DeadlineFrom,
		DeadlineTo:   filters.DeadlineTo,
		Limit:        limit,
	}
}
