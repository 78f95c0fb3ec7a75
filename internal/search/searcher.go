// Package search composes validation, discovery and scanning into the
// file-content search pipeline.
//
// A search runs in strict sequence: validate inputs, verify the root,
// materialize the full candidate list, then scan candidates one at a time in
// discovery order under a shared match quota. Per-file failures are absorbed
// and logged; validation and not-found failures stop the pipeline before any
// scan work; anything unexpected aborts the whole request with no partial
// results.
package search

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/harrison/filescout/internal/discovery"
	"github.com/harrison/filescout/internal/logger"
	"github.com/harrison/filescout/internal/models"
	"github.com/harrison/filescout/internal/scanner"
	"github.com/harrison/filescout/internal/validate"
)

// GlobalMatchCeiling is the hard cap on matches per search. Requested
// MaxResults values are clamped to it.
const GlobalMatchCeiling = 1000

// ValidationError marks a request the caller can fix: bad input shape,
// unsafe path or pattern, or a base path that is not a directory.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrRootNotFound reports a base path that does not exist.
var ErrRootNotFound = errors.New("basePath not found")

// Searcher executes search requests. It holds no per-request state, so a
// single Searcher serves concurrent requests without locking.
type Searcher struct {
	log *logger.Logger
}

// New creates a Searcher that logs through log.
func New(log *logger.Logger) *Searcher {
	if log == nil {
		log = logger.Discard()
	}
	return &Searcher{log: log}
}

// Execute runs one search request to completion.
//
// Errors are either *ValidationError, ErrRootNotFound, a context error
// (cancellation or deadline), or an internal failure; callers map these to
// their boundary's error surface. On any error the accumulated partial
// results are discarded, never returned.
func (s *Searcher) Execute(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	start := time.Now()

	// Step 1: validate before touching the filesystem.
	if strings.TrimSpace(req.Pattern) == "" || strings.TrimSpace(req.BasePath) == "" {
		return nil, &ValidationError{Message: "pattern and basePath are required"}
	}
	root, err := validate.BasePath(req.BasePath)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	var matcher scanner.Matcher
	if req.UseRegex {
		re, err := validate.CompileRegex(req.Pattern, req.CaseSensitive)
		if err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
		matcher = scanner.NewRegexMatcher(re)
	} else {
		matcher = scanner.NewSubstringMatcher(req.Pattern, req.CaseSensitive)
	}

	// Step 2: verify the root exists and is a directory.
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRootNotFound
		}
		return nil, fmt.Errorf("stat base path: %w", err)
	}
	if !info.IsDir() {
		return nil, &ValidationError{Message: "basePath must be a directory"}
	}

	// Step 3: materialize the full candidate list before scanning.
	disc := discovery.Discover(root, discovery.Options{
		Recursive:   req.Recursive,
		NamePattern: req.NamePattern,
	})
	for _, derr := range disc.Errors {
		s.log.Debug("search", "skipped unreadable directory", "error", derr)
	}
	s.log.Debug("search", "discovery complete", "root", root, "candidates", len(disc.Files))

	// Step 4: scan candidates in discovery order under the global quota.
	quota := effectiveQuota(req.MaxResults)
	results := make([]models.FileResult, 0)
	total := 0
	truncated := false

	for _, path := range disc.Files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("search cancelled: %w", err)
		}

		remaining := quota - total
		if remaining <= 0 {
			truncated = true
			break
		}

		records, err := scanner.Scan(path, matcher, remaining)
		if err != nil {
			// Soft failure: the file contributes zero matches.
			switch {
			case errors.Is(err, scanner.ErrFileTooLarge):
				s.log.Info("search", "skipped oversized file", "path", path)
			case errors.Is(err, scanner.ErrBinaryFile):
				s.log.Debug("search", "skipped binary file", "path", path)
			default:
				s.log.Debug("search", "skipped unreadable file", "path", path, "error", err)
			}
			continue
		}
		if len(records) == 0 {
			continue
		}

		results = append(results, models.FileResult{Path: path, Matches: records})
		total += len(records)
	}

	// Step 5: finalize.
	resp := &models.SearchResponse{
		Results:        results,
		TotalMatches:   total,
		Truncated:      truncated,
		DurationMillis: time.Since(start).Milliseconds(),
	}
	s.log.Info("search", "search complete",
		"pattern", req.Pattern,
		"files", len(results),
		"matches", total,
		"truncated", truncated,
		"durationMs", resp.DurationMillis,
	)
	return resp, nil
}

// effectiveQuota clamps a requested result cap to the global ceiling.
// Zero and negative values mean "no preference" and get the ceiling.
func effectiveQuota(maxResults int) int {
	if maxResults <= 0 || maxResults > GlobalMatchCeiling {
		return GlobalMatchCeiling
	}
	return maxResults
}
