package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	"campusguard/config"
	"campusguard/core/notify"
	"campusguard/core/store"
	"campusguard/core/utils"
)

// ServerDeps carries the process-wide collaborators, constructed once at
// startup and injected so tests can substitute fakes.
type ServerDeps struct {
	Reports  store.ReportsStore
	Notifier notify.Notifier
	Client   *mongo.Client
}

type Server struct {
	cfg      *config.AppConfig
	reports  store.ReportsStore
	notifier notify.Notifier
	client   *mongo.Client
	logger   *utils.Logger
}

func NewServer(cfg *config.AppConfig, deps ServerDeps, logger *utils.Logger) *Server {
	return &Server{
		cfg:      cfg,
		reports:  deps.Reports,
		notifier: deps.Notifier,
		client:   deps.Client,
		logger:   logger,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recoverMiddleware)
	r.Use(s.requestIDMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.loggingMiddleware)

	h := s.newRouteHandlers()
	r.Get("/", h.health.Liveness)
	r.Get("/health", h.health.Health)
	r.Route("/reports", func(reportsRouter chi.Router) {
		reportsRouter.Post("/", h.reports.Create)
		reportsRouter.Get("/", h.reports.List)
		reportsRouter.Get("/{id}", h.reports.Get)
	})
	// Dry-run endpoint: validates and echoes, never persists or notifies.
	r.Post("/api/flash/reports", h.reports.DryRun)
	return r
}
