package dashboard

import (
	"encoding/json"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/sam-finder/internal/domain/models"
	"github.com/maxaizer/sam-finder/internal/logger"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"net/http"
	"strings"
	"time"
)

const (
	viewProjects = "projects"
	viewSaved    = "saved"
)

var filterFields = []string{"postedFrom", "postedTo", "deadlineFrom", "deadlineTo"}

type filtersRequest struct {
	PostedFrom   string `form:"postedFrom" validate:"omitempty,datetime=2006-01-02"`
	PostedTo     string `form:"postedTo" validate:"omitempty,datetime=2006-01-02"`
	DeadlineFrom string `form:"deadlineFrom" validate:"omitempty,datetime=2006-01-02"`
	DeadlineTo   string `form:"deadlineTo" validate:"omitempty,datetime=2006-01-02"`
}

type filtersResponse struct {
	PostedFrom   string `json:"postedFrom,omitempty"`
	PostedTo     string `json:"postedTo,omitempty"`
	DeadlineFrom string `json:"deadlineFrom,omitempty"`
	DeadlineTo   string `json:"deadlineTo,omitempty"`
}

type stateResponse struct {
	State         string                `json:"state"`
	ActionEnabled bool                  `json:"actionEnabled"`
	SettingsOpen  bool                  `json:"settingsOpen"`
	Filters       filtersResponse       `json:"filters"`
	Notifications []models.Notification `json:"notifications"`
}

type pageData struct {
	View          string
	SettingsOpen  bool
	ActionEnabled bool
	ButtonLabel   string
	Filters       models.DateFilterSet
	Notifications []models.Notification
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {

	view := viewProjects
	if r.URL.Query().Get("view") == viewSaved {
		view = viewSaved
	}

	data := pageData{
		View:          view,
		SettingsOpen:  s.form.SettingsOpen(),
		ActionEnabled: s.form.ActionEnabled(),
		ButtonLabel:   "Make API Call",
		Filters:       s.form.Filters(),
		Notifications: s.feed.Active(),
	}
	if !data.ActionEnabled {
		data.ButtonLabel = "Making API Call..."
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("failed to render page: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOpenSettings(w http.ResponseWriter, r *http.Request) {
	s.form.OpenSettings()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleCloseSettings(w http.ResponseWriter, r *http.Request) {
	s.form.CloseSettings()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {

	if err := s.applyFilters(r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if wantsJSON(r) {
		s.handleState(w, r)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleSearch searches with the dates submitted alongside the action. A
// request without date fields searches with the filters already stored.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {

	if err := s.applyFilters(r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	notification := s.form.Search(r.Context())

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, notification)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// applyFilters stores the posted dates when any date field is present.
func (s *Server) applyFilters(r *http.Request) error {

	if err := r.ParseForm(); err != nil {
		return errors.New("invalid form")
	}

	if !lo.SomeBy(filterFields, func(field string) bool { return r.PostForm.Has(field) }) {
		return nil
	}

	request := filtersRequest{
		PostedFrom:   strings.TrimSpace(r.PostForm.Get("postedFrom")),
		PostedTo:     strings.TrimSpace(r.PostForm.Get("postedTo")),
		DeadlineFrom: strings.TrimSpace(r.PostForm.Get("deadlineFrom")),
		DeadlineTo:   strings.TrimSpace(r.PostForm.Get("deadlineTo")),
	}

	if err := s.validate.Struct(request); err != nil {
		return errors.New(describeValidation(err))
	}

	s.form.SetFilters(models.DateFilterSet{
		PostedFrom:   parseDate(request.PostedFrom),
		PostedTo:     parseDate(request.PostedTo),
		DeadlineFrom: parseDate(request.DeadlineFrom),
		DeadlineTo:   parseDate(request.DeadlineTo),
	})
	return nil
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	s.feed.Dismiss(chi.URLParam(r, "id"))

	if wantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {

	filters := s.form.Filters()

	writeJSON(w, http.StatusOK, stateResponse{
		State:         s.form.State().String(),
		ActionEnabled: s.form.ActionEnabled(),
		SettingsOpen:  s.form.SettingsOpen(),
		Filters: filtersResponse{
			PostedFrom:   formatDate(filters.PostedFrom),
			PostedTo:     formatDate(filters.PostedTo),
			DeadlineFrom: formatDate(filters.DeadlineFrom),
			DeadlineTo:   formatDate(filters.DeadlineTo),
		},
		Notifications: s.feed.Active(),
	})
}

// parseDate expects a value already checked by the validator.
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil
	}
	return &date
}

func describeValidation(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields = append(fields, fieldError.Field())
	}
	return fmt.Sprintf("invalid date (expected YYYY-MM-DD): %s", strings.Join(fields, ", "))
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("failed to write response: %v", err)
	}
}
