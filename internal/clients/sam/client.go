// Package sam is a client for the SAM.gov opportunities search API.
package sam

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/maxaizer/sam-finder/internal/diagnostics"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.sam.gov/prod/opportunities/v2"
	searchPath     = "/search"
	defaultTimeout = 30 * time.Second
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPClient
	tracer     *diagnostics.Tracer
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		tracer:     diagnostics.NewTracer(false),
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

func (c *Client) SetDiagnostics(tracer *diagnostics.Tracer) {
	c.tracer = tracer
}

// Search issues a single request. Every failure comes back as one of
// ErrMissingAPIKey, ErrInvalidParameters, ErrInvalidResponseFormat,
// ErrFetchFailed or *APIError.
func (c *Client) Search(ctx context.Context, parameters SearchParameters) (*SearchResult, error) {

	result, err := c.search(ctx, parameters)
	if err != nil {
		if !isRecognized(err) {
			err = fetchFailed(err)
		}
		c.tracer.Error(err)
		return nil, err
	}

	return result, nil
}

func (c *Client) search(ctx context.Context, parameters SearchParameters) (*SearchResult, error) {

	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if err := parameters.Validate(); err != nil {
		return nil, err
	}

	params, skipped := parameters.ToUrlParams()
	params.Set("api_key", c.apiKey)

	endpoint := c.baseURL + searchPath
	c.tracer.Request(endpoint, params)

	body, err := c.sendRequest(ctx, http.MethodGet, endpoint+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	result, err := decodeSearchResponse(body)
	if err != nil {
		return nil, err
	}
	result.SkippedFilters = skipped

	c.tracer.Response(result.TotalRecords, lo.Map(result.Opportunities, func(o Opportunity, _ int) diagnostics.Record {
		return diagnostics.Record{
			Title:              o.Title,
			SolicitationNumber: o.SolicitationNumber,
			PostedDate:         o.PostedDate,
			ResponseDeadline:   o.ResponseDeadline,
			Type:               o.Type,
			Description:        o.Description,
		}
	}))

	return result, nil
}

func (c *Client) sendRequest(ctx context.Context, method string, url string) ([]byte, error) {

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fetchFailed(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fetchFailed(err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, errorMessage(body))
	}

	if err != nil {
		return nil, fetchFailed(err)
	}

	return body, nil
}

// errorMessage looks for a message in the shapes SAM.gov uses for errors.
func errorMessage(body []byte) string {
	var payload struct {
		ErrorMessage string          `json:"errorMessage"`
		Message      string          `json:"message"`
		Error        json.RawMessage `json:"error"`
	}
	if len(bytes.TrimSpace(body)) == 0 || json.Unmarshal(body, &payload) != nil {
		return ""
	}

	if payload.ErrorMessage != "" {
		return payload.ErrorMessage
	}
	if payload.Message != "" {
		return payload.Message
	}

	var nested struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(payload.Error, &nested) == nil {
		return nested.Message
	}
	return ""
}

func decodeSearchResponse(body []byte) (*SearchResult, error) {

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrInvalidResponseFormat
		}
		return nil, fetchFailed(err)
	}

	if raw == nil {
		return nil, ErrInvalidResponseFormat
	}

	return &SearchResult{
		TotalRecords:  totalRecords(raw["totalRecords"]),
		Opportunities: opportunities(raw["opportunitiesData"]),
	}, nil
}

// totalRecords accepts a number or a numeric string. Anything else, and
// any negative count, reads as zero.
func totalRecords(raw json.RawMessage) int {
	var total float64
	if err := json.Unmarshal(raw, &total); err != nil {
		var text string
		if json.Unmarshal(raw, &text) != nil {
			if len(raw) > 0 {
				log.Debugf("totalRecords is not a number: %s", raw)
			}
			return 0
		}
		if total, err = strconv.ParseFloat(strings.TrimSpace(text), 64); err != nil {
			log.Debugf("totalRecords is not a number: %q", text)
			return 0
		}
	}
	if total <= 0 {
		return 0
	}
	return int(total)
}

func opportunities(raw json.RawMessage) []Opportunity {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []Opportunity{}
	}

	result := make([]Opportunity, 0, len(items))
	for i, item := range items {
		if !bytes.HasPrefix(bytes.TrimSpace(item), []byte("{")) {
			log.Debugf("skipping opportunity #%d: not an object", i)
			continue
		}

		var opportunity Opportunity
		if err := json.Unmarshal(item, &opportunity); err != nil {
			log.Debugf("opportunity #%d partially decoded: %v", i, err)
		}
		result = append(result, opportunity)
	}
	return result
}
