/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package api exposes the dictionary query surface over HTTP. All endpoints
// are read-only GETs returning JSON; mutations stay behind the CLI and the
// library API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/suparena/dictstore"
	storeerrors "github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/storagemodels"
)

// Server serves the dictionary query endpoints of one DataStore.
type Server struct {
	store  *dictstore.DataStore
	logger *slog.Logger
}

// NewServer builds a Server around the store.
func NewServer(store *dictstore.DataStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: store, logger: logger}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /v1/entities/{name}/dictionary", s.handleDictionary)
	mux.HandleFunc("GET /v1/entities/{name}/similar", s.handleSimilar)
	mux.HandleFunc("GET /v1/entities/{name}/values", s.handleValues)
	mux.HandleFunc("GET /v1/entities/{name}/languages", s.handleLanguages)
	mux.HandleFunc("GET /v1/entities/{name}/data", s.handleData)
	mux.HandleFunc("GET /v1/entities/{name}/crf", s.handleCRF)
	return mux
}

type response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("writing response failed", "error", err)
	}
}

func (s *Server) writeData(w http.ResponseWriter, data interface{}) {
	s.writeJSON(w, http.StatusOK, response{Success: true, Data: data})
}

// writeError maps the error taxonomy to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case storeerrors.IsValidationError(err):
		status = http.StatusBadRequest
	case storeerrors.IsCRFNotConfigured(err):
		status = http.StatusNotFound
	case storeerrors.IsEngineNotImplemented(err) || storeerrors.IsTransferNotSupported(err):
		status = http.StatusNotImplemented
	case storeerrors.IsConnection(err):
		status = http.StatusServiceUnavailable
	}
	s.logger.Warn("request failed", "path", r.URL.Path, "status", status, "error", err)
	s.writeJSON(w, status, response{Success: false, Error: err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, map[string]interface{}{
		"status":  "ok",
		"version": dictstore.GetVersionInfo(),
	})
}

func (s *Server) handleDictionary(w http.ResponseWriter, r *http.Request) {
	dict, err := s.store.GetEntityDictionary(r.Context(), r.PathValue("name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, dict)
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		s.writeError(w, r, storeerrors.NewValidationError("text", "query parameter is required"))
		return
	}
	fuzziness, err := storagemodels.ParseFuzziness(r.URL.Query().Get("fuzziness"))
	if err != nil {
		s.writeError(w, r, storeerrors.NewValidationError("fuzziness", err.Error()))
		return
	}

	matches, err := s.store.GetSimilarDictionary(r.Context(), r.PathValue("name"),
		text, fuzziness, r.URL.Query().Get("language"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if matches == nil {
		matches = []storagemodels.VariantMatch{}
	}
	s.writeData(w, matches)
}

func (s *Server) handleValues(w http.ResponseWriter, r *http.Request) {
	values, err := s.store.GetEntityUniqueValues(r.Context(), r.PathValue("name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if values == nil {
		values = []string{}
	}
	s.writeData(w, values)
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	langs, err := s.store.GetEntitySupportedLanguages(r.Context(), r.PathValue("name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if langs == nil {
		langs = []string{}
	}
	s.writeData(w, langs)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	var values []string
	if raw := r.URL.Query().Get("values"); raw != "" {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	records, err := s.store.GetEntityData(r.Context(), r.PathValue("name"), values)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []storagemodels.EntityRecord{}
	}
	s.writeData(w, records)
}

func (s *Server) handleCRF(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.GetCRFDataForEntityName(r.Context(), r.PathValue("name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, data)
}
