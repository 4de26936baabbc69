package services

import (
	"context"
	"github.com/maxaizer/sam-finder/internal/clients/sam"
	"github.com/maxaizer/sam-finder/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"testing"
	"time"
)

type mockSamClient struct {
	mock.Mock
}

func (m *mockSamClient) Search(ctx context.Context, parameters sam.SearchParameters) (*sam.SearchResult, error) {
	args := m.Called(ctx, parameters)
	result, _ := args.Get(0).(*sam.SearchResult)
	return result, args.Error(1)
}

func Test_OpportunitySearcher_ShouldMapFiltersAndResult(t *testing.T) {

	assert := assert.New(t)

	filters := models.DateFilterSet{
		PostedFrom: models.Date(2024, time.May, 1),
		DeadlineTo: models.Date(2024, time.July, 1),
	}

	client := &mockSamClient{}
	client.On("Search", mock.Anything, sam.SearchParameters{
		PostedFrom: filters.PostedFrom,
		DeadlineTo: filters.DeadlineTo,
		Limit:      25,
	}).Return(&sam.SearchResult{
		TotalRecords:   42,
		Opportunities:  []sam.Opportunity{{Title: "Runway Lighting", SolicitationNumber: "FA4890-24-Q-0001"}},
		SkippedFilters: []string{sam.ParamPostedTo},
	}, nil)

	summary, err := NewOpportunitySearcher(client, 25).Search(context.Background(), filters)

	assert.NoError(err)
	assert.Equal(42, summary.TotalRecords)
	assert.Equal("Runway Lighting", summary.Opportunities[0].Title)
	assert.Equal("FA4890-24-Q-0001", summary.Opportunities[0].SolicitationNumber)
	assert.Equal([]string{sam.ParamPostedTo}, summary.SkippedFilters)
	client.AssertExpectations(t)
}

func Test_OpportunitySearcher_WhenClientFails_ShouldPassErrorThrough(t *testing.T) {

	client := &mockSamClient{}
	client.On("Search", mock.Anything, mock.Anything).Return(nil, sam.ErrMissingAPIKey)

	summary, err := NewOpportunitySearcher(client, 10).Search(context.Background(), models.DateFilterSet{})

	assert.Nil(t, summary)
	assert.ErrorIs(t, err, sam.ErrMissingAPIKey)
}
