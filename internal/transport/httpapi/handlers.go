// Package httpapi is the thin JSON shim over the proximity engine.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vdbrink/proximascore/internal/common"
	"github.com/vdbrink/proximascore/internal/model"
)

// requestTimeout bounds one score computation end to end. Individual
// provider calls are already capped at 10s; this covers the whole fan-out.
const requestTimeout = 30 * time.Second

// ScoreService is the engine surface the API needs.
type ScoreService interface {
	ComputeScore(ctx context.Context, address, profileID string) (*model.ScoreResult, error)
	ActiveCategories() []model.Category
	ActiveProfiles() []model.Profile
}

// Handler serves the JSON API.
type Handler struct {
	service            ScoreService
	providerConfigured bool
}

// NewHandler creates an API handler. providerConfigured is reported by the
// health endpoint so deployments notice a missing API key early.
func NewHandler(service ScoreService, providerConfigured bool) *Handler {
	return &Handler{
		service:            service,
		providerConfigured: providerConfigured,
	}
}

// Router returns the API route table.
func (h *Handler) Router() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/calculate", h.handleCalculate)
	mux.HandleFunc("GET /api/profiles", h.handleProfiles)
	mux.HandleFunc("GET /api/categories", h.handleCategories)
	mux.HandleFunc("GET /api/health", h.handleHealth)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type calculateRequest struct {
	Address string `json:"address"`
	Profile string `json:"profile"`
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	w.Header().Set("X-Request-ID", requestID)

	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}

	req.Address = strings.TrimSpace(req.Address)
	if req.Address == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "address is required"})
		return
	}
	if req.Profile == "" {
		req.Profile = "algemeen"
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.service.ComputeScore(ctx, req.Address, req.Profile)
	if err != nil {
		if common.IsUserCorrectable(err) {
			slog.Info("score request rejected",
				"request_id", requestID,
				"address", req.Address,
				"profile", req.Profile,
				"error", err)
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			slog.Warn("score request timed out", "request_id", requestID, "address", req.Address)
			writeJSON(w, http.StatusGatewayTimeout, map[string]any{"error": "computation timed out"})
			return
		}
		slog.Error("score computation failed", "request_id", requestID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
		return
	}

	slog.Info("score computed",
		"request_id", requestID,
		"address", req.Address,
		"profile", req.Profile,
		"total_score", result.TotalScore)

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleProfiles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ActiveProfiles())
}

func (h *Handler) handleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ActiveCategories())
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":              "healthy",
		"timestamp":           time.Now().Format(time.RFC3339),
		"provider_configured": h.providerConfigured,
		"active_categories":   len(h.service.ActiveCategories()),
		"active_profiles":     len(h.service.ActiveProfiles()),
	})
}
