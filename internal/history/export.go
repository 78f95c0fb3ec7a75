package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harrison/filescout/internal/filelock"
)

// Export writes all history records to path as a JSON array, newest first.
// The write is atomic and guarded by a sibling .lock file so concurrent CLI
// invocations cannot interleave exports. Returns the number of records
// written.
func (s *Store) Export(ctx context.Context, path string) (int, error) {
	records, err := s.List(ctx, 0)
	if err != nil {
		return 0, err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode history export: %w", err)
	}
	data = append(data, '\n')

	lock := filelock.New(path + ".lock")
	if err := lock.Acquire(); err != nil {
		return 0, err
	}
	defer lock.Release()

	if err := filelock.AtomicWrite(path, data); err != nil {
		return 0, fmt.Errorf("write history export: %w", err)
	}
	return len(records), nil
}
