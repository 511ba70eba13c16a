// Package api exposes stored listings over a small read-only HTTP API.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"immo-scraper/models"
	"immo-scraper/schema"
	"immo-scraper/services"
	"immo-scraper/storage"
	"immo-scraper/utils"
)

// Server serves persisted properties and aggregate stats.
type Server struct {
	store    storage.RecordStore
	insights *services.InsightService
	logger   *utils.Logger
	router   *mux.Router
}

// NewServer wires a Server over an open store.
func NewServer(store storage.RecordStore, logger *utils.Logger) *Server {
	s := &Server{
		store:    store,
		insights: services.NewInsightService(logger),
		logger:   logger,
		router:   mux.NewRouter(),
	}
	s.router.HandleFunc("/api/properties", s.handleProperties).Methods("GET")
	s.router.HandleFunc("/api/properties/stats", s.handleStats).Methods("GET")
	return s
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("[api] Listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// handleProperties returns stored rows. ?source= restricts to one schema;
// without it every schema's table is read.
func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	schemas, ok := s.selectSchemas(r)
	if !ok {
		http.Error(w, "unknown source", http.StatusBadRequest)
		return
	}

	var recs []models.Record
	for _, sc := range schemas {
		rows, err := s.store.FetchAll(sc)
		if err != nil {
			s.logger.Error("[api] fetch %s: %v", sc.Table, err)
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
		recs = append(recs, rows...)
	}

	writeJSON(w, map[string]any{
		"count":      len(recs),
		"properties": recs,
	})
}

// handleStats returns the insight report over the selected rows.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	schemas, ok := s.selectSchemas(r)
	if !ok {
		http.Error(w, "unknown source", http.StatusBadRequest)
		return
	}

	var listings []models.ListingSummary
	for _, sc := range schemas {
		rows, err := s.store.FetchAll(sc)
		if err != nil {
			s.logger.Error("[api] fetch %s: %v", sc.Table, err)
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
		for _, rec := range rows {
			listings = append(listings, services.Summarize(rec))
		}
	}

	writeJSON(w, s.insights.Generate(listings))
}

func (s *Server) selectSchemas(r *http.Request) ([]schema.Schema, bool) {
	name := r.URL.Query().Get("source")
	if name == "" {
		return schema.All(), true
	}
	sc, ok := schema.ByName(name)
	if !ok {
		return nil, false
	}
	return []schema.Schema{sc}, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
