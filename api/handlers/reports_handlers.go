package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusguard/config"
	"campusguard/core/notify"
	"campusguard/core/reports"
	"campusguard/core/store"
	"campusguard/core/utils"
)

type ReportsHandler struct {
	cfg      *config.AppConfig
	store    store.ReportsStore
	notifier notify.Notifier
	logger   *utils.Logger
	now      func() time.Time
}

func NewReportsHandler(cfg *config.AppConfig, rs store.ReportsStore, notifier notify.Notifier, logger *utils.Logger) *ReportsHandler {
	return &ReportsHandler{cfg: cfg, store: rs, notifier: notifier, logger: logger, now: time.Now}
}

// Create handles POST /reports: validate, persist, then attempt the email
// notification. Persistence success is the sole determinant of a successful
// response; a failed notification is logged and nothing more.
func (h *ReportsHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload := decodePayload(r)
	sub, err := reports.Validate(payload, h.dateRequired())
	if err != nil {
		var verr *reports.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":          "Missing required fields",
				"requiredFields": verr.RequiredFields,
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Error submitting report",
			"error":   errorDetail(h.cfg, err),
		})
		return
	}

	now := h.now().UTC()
	report := &store.Report{
		CollegeCode:      sub.CollegeCode,
		IncidentCategory: sub.IncidentCategory,
		IncidentType:     sub.IncidentType,
		Description:      sub.Description,
		Date:             reports.ResolveDate(sub.Date, now),
		CreatedAt:        now,
	}
	id, err := h.store.CreateReport(r.Context(), report)
	if err != nil {
		if h.logger != nil {
			h.logger.Errorf("report submission: %v", err)
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Error submitting report",
			"error":   errorDetail(h.cfg, err),
		})
		return
	}

	if h.notifier != nil {
		if res := h.notifier.Notify(r.Context(), report); !res.Sent {
			if h.logger != nil {
				h.logger.Errorf("report %s email notification failed: %s", id.Hex(), res.Reason)
			}
		} else if h.logger != nil {
			h.logger.Printf("report %s notification sent", id.Hex())
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"message":  "Report submitted successfully",
		"reportId": id.Hex(),
	})
}

// DryRun handles POST /api/flash/reports: the same validation as Create, but
// the report is only echoed back, never persisted and never notified.
func (h *ReportsHandler) DryRun(w http.ResponseWriter, r *http.Request) {
	payload := decodePayload(r)
	sub, err := reports.Validate(payload, h.dateRequired())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "All fields are required.",
		})
		return
	}
	now := h.now().UTC()
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Report received successfully!",
		"report": map[string]any{
			"collegeCode":      sub.CollegeCode,
			"incidentCategory": sub.IncidentCategory,
			"incidentType":     sub.IncidentType,
			"description":      sub.Description,
			"date":             reports.ResolveDate(sub.Date, now),
		},
	})
}

func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), h.listLimit())
	if limit <= 0 || limit > 200 {
		limit = h.listLimit()
	}
	offset := parseIntDefault(r.URL.Query().Get("offset"), 0)
	if offset < 0 {
		offset = 0
	}
	items, err := h.store.ListReports(r.Context(), store.ReportFilter{Limit: limit, Offset: offset})
	if err != nil {
		if h.logger != nil {
			h.logger.Errorf("list reports: %v", err)
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Error listing reports",
			"error":   errorDetail(h.cfg, err),
		})
		return
	}
	if items == nil {
		items = []store.Report{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *ReportsHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := urlParam(r, "id")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid report id"})
		return
	}
	report, err := h.store.GetReport(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "report not found"})
		return
	}
	if err != nil {
		if h.logger != nil {
			h.logger.Errorf("get report %s: %v", raw, err)
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Error fetching report",
			"error":   errorDetail(h.cfg, err),
		})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReportsHandler) dateRequired() bool {
	return h.cfg != nil && h.cfg.Reports.DateRequired
}

func (h *ReportsHandler) listLimit() int {
	if h.cfg != nil && h.cfg.Reports.ListLimit > 0 {
		return h.cfg.Reports.ListLimit
	}
	return 50
}

// decodePayload tolerates a malformed or empty body; validation then reports
// every required field as missing, which keeps the 400 shape consistent.
func decodePayload(r *http.Request) map[string]any {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil
	}
	return payload
}
