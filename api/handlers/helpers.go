package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"campusguard/config"
)

func urlParam(r *http.Request, key string) string {
	if v := chi.URLParam(r, key); v != "" {
		return v
	}
	// Fallback for direct handler tests without chi route context.
	segments := strings.Split(strings.Trim(strings.TrimSpace(r.URL.Path), "/"), "/")
	for i := 0; i < len(segments)-1; i++ {
		if segments[i] == "reports" && strings.TrimSpace(segments[i+1]) != "" {
			return segments[i+1]
		}
	}
	return ""
}

func parseIntDefault(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// errorDetail applies the deployment-mode disclosure policy to server
// errors: production responses never carry the raw error message.
func errorDetail(cfg *config.AppConfig, err error) string {
	if cfg != nil && cfg.IsProduction() {
		return "Internal server error"
	}
	if err == nil {
		return "Internal server error"
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
