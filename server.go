package main

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

//go:embed web
var webFS embed.FS

// Server exposes the verifier and extractor over a small JSON API and
// serves the single-page UI.
type Server struct {
	router    *mux.Router
	verifier  *Verifier
	extractor *Extractor
	engine    *Engine
	sources   SourceList
}

// NewServer wires the routes. The page itself is static; all behavior goes
// through the API.
func NewServer(verifier *Verifier, extractor *Extractor, engine *Engine, sources SourceList) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		verifier:  verifier,
		extractor: extractor,
		engine:    engine,
		sources:   sources,
	}

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/verify", s.handleVerify).Methods("POST")
	api.HandleFunc("/extract", s.handleExtract).Methods("POST")
	api.HandleFunc("/report", s.handleReport).Methods("POST")
	api.HandleFunc("/sources", s.handleSources).Methods("GET")
	api.HandleFunc("/status", s.handleStatus).Methods("GET")

	web, err := fs.Sub(webFS, "web")
	if err != nil {
		// The embed directive guarantees the subdirectory exists.
		panic(err)
	}
	s.router.PathPrefix("/").Handler(http.FileServer(http.FS(web)))

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}
	return srv.ListenAndServe()
}

type verifyRequest struct {
	Claim string `json:"claim"`
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "Send JSON like {\"claim\": \"...\"}")
		return
	}

	claim := strings.TrimSpace(req.Claim)
	if claim == "" {
		writeError(w, http.StatusBadRequest,
			"Please enter some news text to verify",
			"Type or paste a claim, or extract one from an article URL first")
		return
	}

	verdict := s.verifier.Verify(r.Context(), claim)
	if verdict.Success {
		log.Printf("✓ Verified claim (%s, %d%%)", verdict.Status, verdict.Confidence)
	} else {
		log.Printf("✗ Verification failed: %s", verdict.Analysis)
	}
	writeJSON(w, http.StatusOK, verdict)
}

type extractRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "Send JSON like {\"url\": \"https://...\"}")
		return
	}

	extraction, err := s.extractor.Extract(r.Context(), req.URL)
	if err != nil {
		var ee *ExtractError
		if errors.As(err, &ee) {
			writeJSONError(w, extractStatusCode(ee.Kind), ee.Msg, ee.Hint, string(ee.Kind))
			return
		}
		writeError(w, http.StatusInternalServerError, "extraction failed", "Copy the article text and paste it manually")
		return
	}

	log.Printf("✓ Extracted %d chars via %s", extraction.CharCount, extraction.Strategy)
	writeJSON(w, http.StatusOK, extraction)
}

// extractStatusCode maps extraction failures onto HTTP statuses: caller
// mistakes are 400s, upstream site problems are 502s.
func extractStatusCode(kind ExtractErrorKind) int {
	switch kind {
	case ExtractInvalidURL:
		return http.StatusBadRequest
	case ExtractTimeout, ExtractConnection, ExtractHTTPStatus:
		return http.StatusBadGateway
	default:
		return http.StatusUnprocessableEntity
	}
}

type reportRequest struct {
	Claim   string  `json:"claim"`
	Verdict Verdict `json:"verdict"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "Send the claim and its verdict as JSON")
		return
	}
	if req.Verdict.Status == "" {
		writeError(w, http.StatusBadRequest, "no verdict to report", "Verify a claim first, then download the report")
		return
	}

	report := buildReport(req.Claim, req.Verdict, s.sources)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not build report", "")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportFilename(time.Now())))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleSources returns the structured list; the sidebar needs name and
// URL separately to render links. Reports use the Formatted() strings.
func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sources": s.sources,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"ready":   s.engine.Ready(),
		"version": Version,
	}
	if s.engine.Ready() {
		status["model"] = s.engine.ModelName()
	} else if err := s.engine.Err(); err != nil {
		status["reason"] = err.Error()
	}
	writeJSON(w, http.StatusOK, status)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("✗ Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg, hint string) {
	writeJSONError(w, code, msg, hint, "")
}

func writeJSONError(w http.ResponseWriter, code int, msg, hint, kind string) {
	body := map[string]string{"error": msg}
	if hint != "" {
		body["hint"] = hint
	}
	if kind != "" {
		body["kind"] = kind
	}
	writeJSON(w, code, body)
}
