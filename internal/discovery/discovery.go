// Package discovery enumerates the candidate files for a search.
//
// Discovery is error tolerant: a directory that cannot be read contributes
// nothing and its error is collected rather than propagated, so one bad
// subtree never fails the whole enumeration.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Options configures a discovery run.
type Options struct {
	// Recursive descends into subdirectories. When false, directories are
	// skipped entirely: not descended and never listed as results.
	Recursive bool

	// NamePattern filters files by base name using a '*'-only glob.
	// Empty means no filtering.
	NamePattern string
}

// Result holds the outcome of a discovery run. Errors are non-fatal; they
// record subtrees that were skipped while the rest of the tree was listed.
type Result struct {
	Files  []string
	Errors []error
}

// Discover walks root depth-first and returns the candidate files.
//
// Ordering contract: within each directory, entries come back sorted by name
// (os.ReadDir sorts), and subdirectories are expanded in place. This is a
// deliberate deviation from platform directory order — the sort makes the
// depth-first sequence deterministic for callers and tests.
func Discover(root string, opts Options) *Result {
	res := &Result{Files: make([]string, 0)}
	walk(root, opts, res)
	return res
}

func walk(dir string, opts Options, res *Result) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Errorf("read directory %s: %w", dir, err))
		return
	}

	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if opts.Recursive {
				walk(full, opts, res)
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		if opts.NamePattern != "" && !MatchName(opts.NamePattern, entry.Name()) {
			continue
		}
		res.Files = append(res.Files, full)
	}
}

// MatchName matches name against a simplified glob where '*' matches any run
// of characters (including an empty one) and everything else is literal.
// The match is anchored to the full string and case-sensitive.
func MatchName(pattern, name string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == name
	}

	if !strings.HasPrefix(name, parts[0]) {
		return false
	}
	rest := name[len(parts[0]):]

	suffix := parts[len(parts)-1]
	for _, part := range parts[1 : len(parts)-1] {
		if part == "" {
			continue
		}
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
	}

	return len(rest) >= len(suffix) && strings.HasSuffix(rest, suffix)
}
