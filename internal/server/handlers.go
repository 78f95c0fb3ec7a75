package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/filescout/internal/history"
	"github.com/harrison/filescout/internal/models"
	"github.com/harrison/filescout/internal/search"
)

// searchPayload is the wire shape of a search request. Recursive and
// MaxResults are pointers so absent fields can take their documented
// defaults (true and 1000) instead of the zero value.
type searchPayload struct {
	Pattern       string `json:"pattern"`
	BasePath      string `json:"basePath"`
	Recursive     *bool  `json:"recursive"`
	UseRegex      bool   `json:"useRegex"`
	CaseSensitive bool   `json:"caseSensitive"`
	NamePattern   string `json:"namePattern"`
	MaxResults    *int   `json:"maxResults"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
}

func (p searchPayload) toRequest() models.SearchRequest {
	req := models.SearchRequest{
		Pattern:       p.Pattern,
		BasePath:      p.BasePath,
		Recursive:     true,
		UseRegex:      p.UseRegex,
		CaseSensitive: p.CaseSensitive,
		NamePattern:   p.NamePattern,
		MaxResults:    search.GlobalMatchCeiling,
	}
	if p.Recursive != nil {
		req.Recursive = *p.Recursive
	}
	if p.MaxResults != nil {
		req.MaxResults = *p.MaxResults
	}
	return req
}

// searchHandler runs one search request and maps pipeline errors onto the
// HTTP error surface: 400 for anything the caller can fix, 404 for a missing
// root, 503 for timeout, 500 for everything unexpected.
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()

	var payload searchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON format"})
		return
	}

	ctx := r.Context()
	if s.cfg.Search.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Search.Timeout)
		defer cancel()
	}

	req := payload.toRequest()
	s.log.Debug("server", "search request",
		"requestId", requestID, "basePath", req.BasePath, "regex", req.UseRegex)

	resp, err := s.searcher.Execute(ctx, req)
	if err != nil {
		s.writeSearchError(w, requestID, err)
		return
	}

	s.recordHistory(req, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeSearchError(w http.ResponseWriter, requestID string, err error) {
	var verr *search.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message})
	case errors.Is(err, search.ErrRootNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "basePath not found"})
	case errors.Is(err, context.DeadlineExceeded):
		s.log.Warn("server", "search timed out", "requestId", requestID)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "Search timed out"})
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to write.
		s.log.Info("server", "search cancelled by client", "requestId", requestID)
	default:
		s.log.Error("server", "search failed", "requestId", requestID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Search failed"})
	}
}

func (s *Server) recordHistory(req models.SearchRequest, resp *models.SearchResponse) {
	if s.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := s.history.Add(ctx, history.Record{
		Pattern:        req.Pattern,
		BasePath:       req.BasePath,
		UseRegex:       req.UseRegex,
		CaseSensitive:  req.CaseSensitive,
		TotalMatches:   resp.TotalMatches,
		Truncated:      resp.Truncated,
		DurationMillis: resp.DurationMillis,
	})
	if err != nil {
		s.log.Warn("server", "failed to record search history", "error", err)
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Version:       s.version,
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
