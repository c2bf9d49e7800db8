package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/archmap-dev/archmap/pkg/component"
	apperrors "github.com/archmap-dev/archmap/pkg/errors"
	"github.com/archmap-dev/archmap/pkg/layout"
	"github.com/archmap-dev/archmap/pkg/pipeline"
)

// layoutRequest is the POST /api/v1/layout body.
type layoutRequest struct {
	Project    string                `json:"project"`
	Components []component.Component `json:"components"`
	Reset      bool                  `json:"reset,omitempty"`
	Layout     layout.Options        `json:"layout,omitempty"`
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest,
			apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid layout request"))
		return
	}

	result, err := s.runner.Execute(r.Context(), req.Components, pipeline.Options{
		Project: req.Project,
		Layout:  req.Layout,
		Reset:   req.Reset,
		Logger:  s.logger,
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeInternal, err, "layout failed"))
		return
	}

	writeJSON(w, http.StatusOK, result.Graph)
}

func (s *Server) handleGetPositions(w http.ResponseWriter, r *http.Request) {
	project := chi.URLParam(r, "project")

	positions, err := s.store.Get(r.Context(), project)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeStore, err, "load positions for %s", project))
		return
	}
	if positions == nil {
		positions = layout.PositionMap{}
	}
	writeJSON(w, http.StatusOK, positions)
}

func (s *Server) handlePutPositions(w http.ResponseWriter, r *http.Request) {
	project := chi.URLParam(r, "project")

	var positions layout.PositionMap
	if err := json.NewDecoder(r.Body).Decode(&positions); err != nil {
		s.writeError(w, http.StatusBadRequest,
			apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid positions body"))
		return
	}

	if err := s.store.Set(r.Context(), project, positions); err != nil {
		s.writeError(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeStore, err, "save positions for %s", project))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearPositions(w http.ResponseWriter, r *http.Request) {
	project := chi.URLParam(r, "project")

	if err := s.store.Clear(r.Context(), project); err != nil {
		s.writeError(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeStore, err, "clear positions for %s", project))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err *apperrors.Error) {
	s.logger.Error("request failed", "code", err.Code, "error", err)
	writeJSON(w, status, errorResponse{Code: err.Code, Message: apperrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
