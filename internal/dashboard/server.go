// Package dashboard serves the browser UI of the opportunity search.
package dashboard

import (
	"context"
	"embed"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/sam-finder/internal/domain/models"
	"github.com/maxaizer/sam-finder/internal/form"
	"github.com/maxaizer/sam-finder/internal/metrics"
	"html/template"
	"net/http"
	"reflect"
	"time"
)

//go:embed templates/*.html
var templates embed.FS

type filterForm interface {
	Filters() models.DateFilterSet
	SetFilters(filters models.DateFilterSet)
	OpenSettings()
	CloseSettings()
	SettingsOpen() bool
	State() form.State
	ActionEnabled() bool
	Search(ctx context.Context) models.Notification
}

type notificationFeed interface {
	Active() []models.Notification
	Dismiss(id string)
}

type Server struct {
	router   *chi.Mux
	form     filterForm
	feed     notificationFeed
	page     *template.Template
	validate *validator.Validate
}

func NewServer(form filterForm, feed notificationFeed) (*Server, error) {

	page, err := template.New("index.html").Funcs(template.FuncMap{
		"date": formatDate,
	}).ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:   chi.NewRouter(),
		form:     form,
		feed:     feed,
		page:     page,
		validate: validator.New(),
	}
	s.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("form")
	})

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/health", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", metrics.Handler())

	s.router.Post("/settings/open", s.handleOpenSettings)
	s.router.Post("/settings/close", s.handleCloseSettings)
	s.router.Post("/filters", s.handleFilters)
	s.router.Post("/search", s.handleSearch)
	s.router.Post("/notifications/{id}/dismiss", s.handleDismiss)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
	})

	return s, nil
}

func (s *Server) Router() http.Handler { return s.router }

func formatDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format(time.DateOnly)
}
