// Package web serves the browser form, the generated plan and its download.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/amishk599/wellplan/internal/model"
	"github.com/amishk599/wellplan/internal/ratelimit"
)

//go:embed templates/*.html
var templateFS embed.FS

// Generator is the part of the planner the handlers need.
type Generator interface {
	Preview(req model.PlanRequest) (model.Metrics, string, error)
	Generate(ctx context.Context, req model.PlanRequest) (*model.Plan, error)
}

// Options configures a Server.
type Options struct {
	CORSOrigins []string
	Archive     bool // link results to /plans/{id}.txt
}

// Server holds the handlers' dependencies.
type Server struct {
	gen     Generator
	store   model.PlanStore
	limiter *ratelimit.Limiter
	opts    Options
	logger  *slog.Logger
	tmpl    *template.Template
	now     func() time.Time
}

// NewServer parses the embedded templates and returns a ready Server.
func NewServer(gen Generator, store model.PlanStore, limiter *ratelimit.Limiter, opts Options, logger *slog.Logger) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"commas": commas,
		"join":   strings.Join,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{
		gen:     gen,
		store:   store,
		limiter: limiter,
		opts:    opts,
		logger:  logger,
		tmpl:    tmpl,
		now:     time.Now,
	}, nil
}

// Handler returns the routed, middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler)

	r.Get("/", s.handleIndex)
	r.Post("/metrics", s.handleMetrics)
	r.Post("/plan", s.handlePlan)
	r.Post("/download", s.handleDownload)
	r.Get("/plans/{id}.txt", s.handleArchived)
	r.Get("/healthz", s.handleHealth)
	return r
}

// commas formats n with thousands separators.
func commas(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
