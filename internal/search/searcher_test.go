package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/filescout/internal/models"
	"github.com/harrison/filescout/internal/scanner"
	"github.com/harrison/filescout/internal/validate"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func execute(t *testing.T, req models.SearchRequest) (*models.SearchResponse, error) {
	t.Helper()
	return New(nil).Execute(context.Background(), req)
}

func TestExecuteBasicMatch(t *testing.T) {
	// Two files, one containing "foo" on two lines.
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.txt": "foo\nbar foo\n",
		"b.txt": "baz\n",
	})

	resp, err := execute(t, models.SearchRequest{
		Pattern:       "foo",
		BasePath:      root,
		Recursive:     true,
		CaseSensitive: true,
	})
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, filepath.Join(root, "a.txt"), resp.Results[0].Path)
	require.Len(t, resp.Results[0].Matches, 2)
	assert.Equal(t, 1, resp.Results[0].Matches[0].LineNumber)
	assert.Equal(t, 2, resp.Results[0].Matches[1].LineNumber)
	assert.Equal(t, 2, resp.TotalMatches)
	assert.False(t, resp.Truncated)
	assert.GreaterOrEqual(t, resp.DurationMillis, int64(0))
}

func TestExecuteQuotaTruncation(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.txt": "foo\nbar foo\n",
		"b.txt": "baz\n",
	})

	resp, err := execute(t, models.SearchRequest{
		Pattern:    "foo",
		BasePath:   root,
		Recursive:  true,
		MaxResults: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.TotalMatches)
	assert.True(t, resp.Truncated)
}

func TestExecuteQuotaExactlyConsumedByLastFile(t *testing.T) {
	// The quota fills on the final candidate: nothing was left unscanned,
	// so the response is not truncated.
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.txt": "foo\n",
		"b.txt": "foo\n",
	})

	resp, err := execute(t, models.SearchRequest{
		Pattern:    "foo",
		BasePath:   root,
		Recursive:  true,
		MaxResults: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalMatches)
	assert.False(t, resp.Truncated)
}

func TestExecuteValidationErrors(t *testing.T) {
	root := t.TempDir()

	t.Run("missing pattern", func(t *testing.T) {
		_, err := execute(t, models.SearchRequest{BasePath: root})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "pattern and basePath are required", verr.Message)
	})

	t.Run("missing basePath", func(t *testing.T) {
		_, err := execute(t, models.SearchRequest{Pattern: "foo"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "pattern and basePath are required", verr.Message)
	})

	t.Run("relative basePath", func(t *testing.T) {
		_, err := execute(t, models.SearchRequest{Pattern: "foo", BasePath: "relative/dir"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, validate.ErrNotAbsolute.Error(), verr.Message)
	})

	t.Run("traversal basePath", func(t *testing.T) {
		_, err := execute(t, models.SearchRequest{Pattern: "foo", BasePath: "../../etc"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, validate.ErrPathTraversal.Error(), verr.Message)
	})

	t.Run("dangerous regex rejected before any scanning", func(t *testing.T) {
		_, err := execute(t, models.SearchRequest{
			Pattern:  "(a+)+",
			BasePath: root,
			UseRegex: true,
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Potentially dangerous regex pattern", verr.Message)
	})

	t.Run("basePath is a file", func(t *testing.T) {
		writeFiles(t, root, map[string]string{"plain.txt": "x\n"})
		_, err := execute(t, models.SearchRequest{
			Pattern:  "foo",
			BasePath: filepath.Join(root, "plain.txt"),
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "basePath must be a directory", verr.Message)
	})
}

func TestExecuteRootNotFound(t *testing.T) {
	_, err := execute(t, models.SearchRequest{
		Pattern:  "foo",
		BasePath: filepath.Join(t.TempDir(), "does-not-exist"),
	})
	require.ErrorIs(t, err, ErrRootNotFound)
}

func TestExecuteRegexMode(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"code.go": "func helloHandler() {}\nvar x = 1\nfunc byeHandler() {}\n",
	})

	resp, err := execute(t, models.SearchRequest{
		Pattern:       `func \w+Handler`,
		BasePath:      root,
		Recursive:     true,
		UseRegex:      true,
		CaseSensitive: true,
	})
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	require.Len(t, resp.Results[0].Matches, 2)
	assert.Equal(t, 0, resp.Results[0].Matches[0].ColumnOffset)
	assert.Equal(t, len("func helloHandler"), resp.Results[0].Matches[0].MatchLength)
}

func TestExecuteCaseInsensitiveDefault(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"f.txt": "FOO\nfoo\nFoO\n"})

	resp, err := execute(t, models.SearchRequest{
		Pattern:   "foo",
		BasePath:  root,
		Recursive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalMatches)
}

func TestExecuteNamePatternFilter(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"match.go":  "foo\n",
		"skip.txt":  "foo\n",
		"other.gox": "foo\n",
	})

	resp, err := execute(t, models.SearchRequest{
		Pattern:     "foo",
		BasePath:    root,
		Recursive:   true,
		NamePattern: "*.go",
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, filepath.Join(root, "match.go"), resp.Results[0].Path)
}

func TestExecuteNonRecursive(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"top.txt":        "foo\n",
		"nested/sub.txt": "foo\n",
	})

	resp, err := execute(t, models.SearchRequest{
		Pattern:   "foo",
		BasePath:  root,
		Recursive: false,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, filepath.Join(root, "top.txt"), resp.Results[0].Path)
}

func TestExecuteMaxResultsClampedToCeiling(t *testing.T) {
	root := t.TempDir()
	content := ""
	for i := 0; i < GlobalMatchCeiling+50; i++ {
		content += "foo\n"
	}
	writeFiles(t, root, map[string]string{"many.txt": content})

	resp, err := execute(t, models.SearchRequest{
		Pattern:    "foo",
		BasePath:   root,
		Recursive:  true,
		MaxResults: GlobalMatchCeiling + 500,
	})
	require.NoError(t, err)
	assert.Equal(t, GlobalMatchCeiling, resp.TotalMatches)
}

func TestExecuteOversizedFileDoesNotAbortSearch(t *testing.T) {
	root := t.TempDir()
	big := make([]byte, scanner.MaxFileSize+1)
	for i := range big {
		big[i] = 'f'
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "big.txt"), big, 0644))
	writeFiles(t, root, map[string]string{"small.txt": "foo\n"})

	resp, err := execute(t, models.SearchRequest{
		Pattern:   "foo",
		BasePath:  root,
		Recursive: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, filepath.Join(root, "small.txt"), resp.Results[0].Path)
	assert.Equal(t, 1, resp.TotalMatches)
}

func TestExecuteTotalMatchesInvariant(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.txt":     "foo\nfoo\n",
		"b.txt":     "foo\n",
		"c/d.txt":   "no match\n",
		"c/e.txt":   "foo foo on one line\n",
		"empty.txt": "",
	})

	resp, err := execute(t, models.SearchRequest{
		Pattern:   "foo",
		BasePath:  root,
		Recursive: true,
	})
	require.NoError(t, err)

	sum := 0
	for _, fr := range resp.Results {
		require.NotEmpty(t, fr.Matches)
		sum += len(fr.Matches)
	}
	assert.Equal(t, sum, resp.TotalMatches)
	assert.LessOrEqual(t, resp.TotalMatches, GlobalMatchCeiling)
}

func TestExecuteIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.txt": "foo\nbar\nfoo\n",
		"b.txt": "foo\n",
	})
	req := models.SearchRequest{Pattern: "foo", BasePath: root, Recursive: true}

	first, err := execute(t, req)
	require.NoError(t, err)
	second, err := execute(t, req)
	require.NoError(t, err)

	// Identical except possibly duration.
	second.DurationMillis = first.DurationMillis
	assert.Equal(t, first, second)
}

func TestExecuteCancellation(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.txt": "foo\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Execute(ctx, models.SearchRequest{
		Pattern:   "foo",
		BasePath:  root,
		Recursive: true,
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestExecuteDeadline(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.txt": "foo\n"})

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := New(nil).Execute(ctx, models.SearchRequest{
		Pattern:   "foo",
		BasePath:  root,
		Recursive: true,
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
