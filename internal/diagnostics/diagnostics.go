// Package diagnostics traces outbound SAM.gov requests and their responses
// when the application runs in development mode. It only observes.
package diagnostics

import (
	"github.com/maxaizer/sam-finder/internal/logger"
	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	sampleSize           = 2
	descriptionMaxLength = 150
	redacted             = "REDACTED"
)

var secretParams = []string{"api_key"}

type Record struct {
	Title              string
	SolicitationNumber string
	PostedDate         string
	ResponseDeadline   string
	Type               string
	Description        string
}

type Tracer struct {
	enabled bool
	sink    log.FieldLogger
	policy  *bluemonday.Policy
}

func NewTracer(enabled bool) *Tracer {
	return &Tracer{enabled: enabled, sink: log.StandardLogger(), policy: bluemonday.StrictPolicy()}
}

func (t *Tracer) WithLogger(sink log.FieldLogger) *Tracer {
	t.sink = sink
	return t
}

func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled
}

func (t *Tracer) Request(endpoint string, params url.Values) {
	if !t.Enabled() {
		return
	}

	fields := log.Fields{"url": endpoint}
	for key, values := range params {
		if lo.Contains(secretParams, key) {
			fields[key] = redacted
			continue
		}
		fields[key] = strings.Join(values, ",")
	}
	t.sink.WithFields(fields).Debug("SAM API request")
}

func (t *Tracer) Response(totalRecords int, records []Record) {
	if !t.Enabled() {
		return
	}

	t.sink.WithFields(log.Fields{
		"total_records": totalRecords,
		"record_count":  len(records),
	}).Debug("SAM API response")

	if len(records) == 0 {
		t.sink.Debug("no opportunities found")
		return
	}

	for i, record := range lo.Subset(records, 0, sampleSize) {
		title := record.Title
		if title == "" {
			title = "Untitled"
		}
		t.sink.WithFields(log.Fields{
			"index":        i + 1,
			"solicitation": record.SolicitationNumber,
			"posted":       record.PostedDate,
			"deadline":     record.ResponseDeadline,
			"type":         record.Type,
			"description":  t.Excerpt(record.Description),
		}).Debugf("sample opportunity: %s", title)
	}
}

func (t *Tracer) Error(err error) {
	if t == nil || err == nil {
		return
	}
	t.sink.WithField(logger.ErrorTypeField, logger.ErrorTypeSamApi).WithError(err).Error("SAM API error")
}

// Excerpt strips markup and cuts the text to a short preview.
func (t *Tracer) Excerpt(description string) string {
	policy := bluemonday.StrictPolicy()
	if t != nil && t.policy != nil {
		policy = t.policy
	}

	text := strings.Join(strings.Fields(policy.Sanitize(description)), " ")
	if utf8.RuneCountInString(text) <= descriptionMaxLength {
		return text
	}
	return string([]rune(text)[:descriptionMaxLength]) + "..."
}
