package sam

import (
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"net/url"
	"strconv"
	"time"
)

var ErrInvalidParameters = errors.New("invalid search parameters")

const (
	DefaultLimit = 10
	dateLayout   = "01/02/2006"

	opportunityTypes = "o,s,k"
	departmentName   = "general"
	responseFormat   = "json"
)

const (
	ParamPostedFrom   = "postedFrom"
	ParamPostedTo     = "postedTo"
	ParamDeadlineFrom = "rdlfrom"
	ParamDeadlineTo   = "rdlto"
)

var validate = validator.New()

type SearchParameters struct {
	PostedFrom   *time.Time
	PostedTo     *time.Time
	DeadlineFrom *time.Time
	DeadlineTo   *time.Time
	Limit        int `validate:"min=1,max=1000"`
	Offset       int `validate:"min=0"`
}

func (s SearchParameters) withDefaults() SearchParameters {
	if s.Limit == 0 {
		s.Limit = DefaultLimit
	}
	return s
}

func (s SearchParameters) Validate() error {
	if err := validate.Struct(s.withDefaults()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	return nil
}

// ToUrlParams builds the query without the api key. Dates that can't be
// formatted are left out and reported by their parameter name.
func (s SearchParameters) ToUrlParams() (params url.Values, skipped []string) {

	s = s.withDefaults()

	params = url.Values{}
	params.Set("limit", strconv.Itoa(s.Limit))
	params.Set("offset", strconv.Itoa(s.Offset))
	params.Set("ptype", opportunityTypes)
	params.Set("deptname", departmentName)
	params.Set("format", responseFormat)

	dates := []struct {
		name  string
		value *time.Time
	}{
		{ParamPostedFrom, s.PostedFrom},
		{ParamPostedTo, s.PostedTo},
		{ParamDeadlineFrom, s.DeadlineFrom},
		{ParamDeadlineTo, s.DeadlineTo},
	}

	for _, date := range dates {
		if date.value == nil {
			continue
		}

		formatted, err := formatDate(*date.value)
		if err != nil {
			log.WithField("param", date.name).Warnf("date filter skipped: %v", err)
			skipped = append(skipped, date.name)
			continue
		}
		params.Set(date.name, formatted)
	}

	return params, skipped
}

func formatDate(date time.Time) (string, error) {
	if date.IsZero() {
		return "", errors.New("zero date")
	}
	if year := date.Year(); year < 1 || year > 9999 {
		return "", fmt.Errorf("year %d out of range", year)
	}
	return date.Format(dateLayout), nil
}
