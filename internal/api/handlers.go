package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/talgya/star-omens/internal/astro"
	"github.com/talgya/star-omens/internal/engine"
)

type chartRequest struct {
	BirthDateTime     string   `json:"birthDateTime" validate:"required,max=64"`
	Latitude          *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude         *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	UserSeed          string   `json:"userSeed" validate:"max=128"`
	DayKey            string   `json:"dayKey" validate:"max=64"`
	RecentTemplateIDs []string `json:"recentTemplateIds" validate:"max=64,dive,max=128"`
}

type dailyRequest struct {
	AstroProfile string `json:"astroProfile" validate:"required,max=256"`
	UserSeed     string `json:"userSeed" validate:"max=128"`
	DayKey       string `json:"dayKey" validate:"max=64"`
	Cycle        string `json:"cycle" validate:"max=16"`
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	var req chartRequest
	if !s.decode(w, r, &req) {
		return
	}

	reading, err := s.Engine.Chart(engine.ChartRequest{
		BirthDateTime:     req.BirthDateTime,
		Latitude:          *req.Latitude,
		Longitude:         *req.Longitude,
		UserSeed:          req.UserSeed,
		DayKey:            req.DayKey,
		RecentTemplateIDs: req.RecentTemplateIDs,
	})
	switch {
	case errors.Is(err, astro.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("chart reading failed", "error", err)
		writeError(w, http.StatusInternalServerError, "chart computation failed")
		return
	}
	writeJSON(w, http.StatusOK, reading)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	var req dailyRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.Engine.Daily(engine.DailyRequest{
		AstroProfile: req.AstroProfile,
		UserSeed:     req.UserSeed,
		DayKey:       req.DayKey,
		Cycle:        req.Cycle,
	}))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"name":      "star-omens",
		"uptime":    time.Since(s.started).Round(time.Second).String(),
		"templates": s.Templates,
		"storage":   s.DB != nil,
	}
	if s.CacheSize != nil {
		status["ephemeris_cache_entries"] = s.CacheSize()
	}
	if s.DB != nil {
		if stats, err := s.DB.Stats(); err == nil {
			status["natal_charts"] = stats.NatalCharts
			status["history_rows"] = stats.HistoryRows
		} else {
			slog.Warn("storage stats failed", "error", err)
		}
		if v, err := s.DB.GetMeta("schema_version"); err == nil {
			status["schema_version"] = v
		}
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		if err := s.DB.Ping(); err != nil {
			writeError(w, http.StatusServiceUnavailable, "storage unavailable")
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeError(w, http.StatusNotFound, "history storage not configured")
		return
	}
	limit := 30
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 365 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 365")
			return
		}
		limit = n
	}

	entries, err := s.DB.History(chi.URLParam(r, "userKey"), limit)
	if err != nil {
		slog.Error("history query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// decode reads and validates a JSON body, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, formatValidationError(err))
		return false
	}
	return true
}

func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return strings.Join(msgs, "; ")
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
