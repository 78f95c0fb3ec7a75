// Package scanner reads one candidate file and produces its match records.
//
// Every failure in here is soft: oversized files, binary content, permission
// errors and files removed mid-search all degrade to zero matches. The
// orchestrator decides how loudly to log each case; nothing aborts a search.
package scanner

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/harrison/filescout/internal/models"
)

// MaxFileSize is the per-file scan ceiling. Files above it are skipped to cap
// worst-case memory, since scanning reads the whole file at once.
const MaxFileSize = 10 << 20 // 10 MiB

// Soft-failure sentinels, used by callers to pick a log level. A file that
// hits one of these simply contributes zero matches.
var (
	ErrFileTooLarge = errors.New("file exceeds size limit")
	ErrBinaryFile   = errors.New("binary file")
)

// Scan reads the file at path and applies m to each line in order, starting
// at line 1, recording at most the first match per line and at most
// maxMatches records in total. Scanning stops as soon as the quota fills.
//
// Lines are split on the newline byte only; content is recorded exactly as
// read, carriage returns included.
func Scan(path string, m Matcher, maxMatches int) ([]models.MatchRecord, error) {
	if maxMatches <= 0 {
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, ErrBinaryFile
	}

	var records []models.MatchRecord
	for i, line := range strings.Split(string(data), "\n") {
		offset, length, ok := m.Match(line)
		if !ok {
			continue
		}
		records = append(records, models.MatchRecord{
			LineNumber:   i + 1,
			LineContent:  line,
			ColumnOffset: offset,
			MatchLength:  length,
		})
		if len(records) >= maxMatches {
			break
		}
	}
	return records, nil
}
