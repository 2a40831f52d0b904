// Package api implements the placeholder HTTP API served next to the
// backdrop: a health check plus document processing and scraping endpoints
// that record intent and answer with a note that the full pipeline is not
// available in this deployment.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Response texts.
const (
	HealthMessage  = "Graph Learning Platform API - Go Version"
	ProcessNote    = "Full processing requires Python backend. Please use Git deployment or Vercel CLI for Python support."
	ScrapeNote     = "Full scraping requires Python backend. Please use Git deployment or Vercel CLI for Python support."
	maxRequestBody = 1 << 20
)

const (
	allowMethods = "GET,OPTIONS,PATCH,DELETE,POST,PUT"
	allowHeaders = "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version"
)

// ProcessRequest is the body of POST /process.
type ProcessRequest struct {
	DocumentID any `json:"document_id"`
}

// ScrapeRequest is the body of POST /scrape.
type ScrapeRequest struct {
	DocumentID any `json:"document_id"`
	NodeID     any `json:"node_id"`
	Topic      any `json:"topic"`
}

// Handler serves the API. Paths may carry an /api prefix.
type Handler struct {
	store DocumentStore
	log   *zap.Logger
}

// NewHandler creates a Handler backed by store. A nil logger is replaced by a
// no-op logger.
func NewHandler(store DocumentStore, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: store, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hdr := w.Header()
	hdr.Set("Access-Control-Allow-Credentials", "true")
	hdr.Set("Access-Control-Allow-Origin", "*")
	hdr.Set("Access-Control-Allow-Methods", allowMethods)
	hdr.Set("Access-Control-Allow-Headers", allowHeaders)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	path := strings.Replace(r.URL.Path, "/api", "", 1)
	h.log.Debug("request", zap.String("method", r.Method), zap.String("path", path))

	switch {
	case path == "/health" || path == "/" || path == "":
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "message": HealthMessage})
	case path == "/process" && r.Method == http.MethodPost:
		h.process(w, r)
	case path == "/scrape" && r.Method == http.MethodPost:
		h.scrape(w, r)
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Endpoint not found", "path": path})
	}
}

func (h *Handler) process(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	if err := decodeBody(r, &req); err != nil {
		h.log.Debug("bad process body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !present(req.DocumentID) {
		writeError(w, http.StatusBadRequest, "document_id is required")
		return
	}

	id := documentKey(req.DocumentID)
	if err := h.store.SetStatus(r.Context(), id, StatusProcessing); err != nil {
		h.log.Error("process failed", zap.String("document_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.log.Info("processing started", zap.String("document_id", id))

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Processing started",
		"document_id": req.DocumentID,
		"note":        ProcessNote,
	})
}

func (h *Handler) scrape(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	if err := decodeBody(r, &req); err != nil {
		h.log.Debug("bad scrape body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Scraping endpoint",
		"document_id": req.DocumentID,
		"node_id":     req.NodeID,
		"topic":       req.Topic,
		"note":        ScrapeNote,
	})
}

// errTrailingData rejects bodies carrying more than one JSON value.
var errTrailingData = errors.New("unexpected data after JSON body")

// decodeBody decodes a single JSON value into v. An empty body leaves v
// zero. Numbers decode as json.Number so ids keep their exact text.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

// documentKey is the store key for a decoded document id.
func documentKey(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// present reports whether a decoded JSON value counts as supplied: not null,
// not an empty string, not zero and not false.
func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	case float64:
		return x != 0
	case bool:
		return x
	default:
		return true
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
