// Package validate contains the input checks that run before any filesystem
// or matching work begins: base path safety and regex pattern safety.
package validate

import (
	"errors"
	"path/filepath"
	"strings"
)

// Path validation errors. The messages are user-facing and surface verbatim
// through the HTTP error responses.
var (
	ErrEmptyPath     = errors.New("basePath is required")
	ErrPathTraversal = errors.New("Path traversal is not allowed")
	ErrNotAbsolute   = errors.New("basePath must be an absolute path")
)

// BasePath normalizes path and checks it is a safe absolute root.
// It returns the normalized form on success. The path is only inspected
// lexically; existence is checked later so validation failures never
// touch the filesystem.
func BasePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}

	cleaned := filepath.Clean(path)

	// Normalization collapses "a/../b" style segments. A ".." that survives
	// cleaning means the path escapes its root.
	for _, segment := range strings.Split(cleaned, string(filepath.Separator)) {
		if segment == ".." {
			return "", ErrPathTraversal
		}
	}

	if !filepath.IsAbs(cleaned) {
		return "", ErrNotAbsolute
	}

	return cleaned, nil
}
