package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"campusguard/config"
	"campusguard/core/store"
	"campusguard/core/utils"
)

const livenessMessage = "Incident Reporting API is running"

type HealthHandler struct {
	cfg    *config.AppConfig
	logger *utils.Logger

	// state is swappable in tests; defaults to a store ping.
	state func(ctx context.Context) (string, error)
}

func NewHealthHandler(cfg *config.AppConfig, client *mongo.Client, logger *utils.Logger) *HealthHandler {
	pingTimeout := 2 * time.Second
	if cfg != nil && cfg.Store.PingTimeout > 0 {
		pingTimeout = cfg.Store.PingTimeout
	}
	return &HealthHandler{
		cfg:    cfg,
		logger: logger,
		state: func(ctx context.Context) (string, error) {
			return store.ConnState(ctx, client, pingTimeout)
		},
	}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(livenessMessage))
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	state, err := h.state(r.Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Errorf("health probe: %v", err)
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status": "unhealthy",
			"error":  errorDetail(h.cfg, err),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"mongodb":     state,
		"environment": h.environment(),
	})
}

func (h *HealthHandler) environment() string {
	if h.cfg != nil && h.cfg.AppEnv != "" {
		return h.cfg.AppEnv
	}
	return "development"
}
