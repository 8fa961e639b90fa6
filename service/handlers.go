package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/platechange/platechange/recipe"
	"github.com/platechange/platechange/storage"
	"github.com/platechange/platechange/transform"
)

// TransformRequest is the POST /api/transform body. Exactly one of
// transformation, style or method selects the rewrite; url or source
// supplies the recipe.
type TransformRequest struct {
	URL            string             `json:"url,omitempty"`
	Source         *recipe.SourceData `json:"source,omitempty"`
	Transformation string             `json:"transformation,omitempty"`
	Style          string             `json:"style,omitempty"`
	Threshold      float64            `json:"threshold,omitempty"`
	Method         string             `json:"method,omitempty"`
}

func (s *Service) handleTransform(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req TransformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	selected := 0
	for _, v := range []string{req.Transformation, req.Style, req.Method} {
		if v != "" {
			selected++
		}
	}
	if selected != 1 {
		writeJSONError(w, http.StatusBadRequest, "exactly one of transformation, style or method is required")
		return
	}

	label := req.Transformation
	if label == "" {
		if req.Style != "" {
			label = "to_style"
		} else {
			label = "to_method"
		}
	}

	rec, err := s.loadRecipe(r.Context(), req)
	if err != nil {
		s.metrics.observe(label, "input_error", time.Since(start))
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch {
	case req.Transformation != "":
		t, err := transform.ParseTransformation(req.Transformation)
		if err != nil {
			s.metrics.observe(label, "input_error", time.Since(start))
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := s.engine.Apply(rec, t); err != nil {
			s.metrics.observe(label, "error", time.Since(start))
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
	case req.Style != "":
		if s.corpus == nil {
			s.metrics.observe(label, "input_error", time.Since(start))
			writeJSONError(w, http.StatusBadRequest, "style transformation is not configured")
			return
		}
		threshold := req.Threshold
		if threshold == 0 {
			threshold = 1.0
		}
		if err := s.engine.ToStyle(r.Context(), rec, s.corpus, req.Style, threshold); err != nil {
			s.metrics.observe(label, "error", time.Since(start))
			writeJSONError(w, http.StatusBadGateway, err.Error())
			return
		}
	default:
		if err := s.engine.ToMethod(rec, req.Method); err != nil {
			s.metrics.observe(label, "input_error", time.Since(start))
			if errors.Is(err, transform.ErrUnsupportedMethod) {
				writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	record := &storage.Record{
		Transformation: label,
		Style:          req.Style,
		Method:         req.Method,
		SourceURL:      req.URL,
		Recipe:         rec.Document(),
		Changes:        rec.Changes(),
	}
	if err := s.store.Create(r.Context(), record); err != nil {
		s.metrics.observe(label, "error", time.Since(start))
		s.logger.Error("storing record failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "storing result failed")
		return
	}

	s.metrics.observe(label, "ok", time.Since(start))
	s.logger.Info("transformation complete", "transformation", label, "record", record.ID,
		"changes", len(record.Changes))
	writeJSON(w, http.StatusOK, record)
}

func (s *Service) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	records, err := s.store.List(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Service) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/recipes/")
	if id == "" || strings.Contains(id, "/") {
		writeJSONError(w, http.StatusBadRequest, "invalid record id")
		return
	}
	record, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "record not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Service) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON marshals v as JSON and writes it to w with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Response is already partially written; nothing left to do.
		_ = err
	}
}

// writeJSONError writes an error envelope.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
