// Package models defines the request and response types exchanged between
// the search pipeline and its callers (HTTP handlers and CLI commands).
package models

// SearchRequest describes a single file-content search. All fields are
// request-scoped; nothing here survives past the search that consumed it.
type SearchRequest struct {
	// Pattern is the text or regular expression to search for
	Pattern string `json:"pattern"`

	// BasePath is the absolute directory under which the search runs
	BasePath string `json:"basePath"`

	// Recursive enables descending into subdirectories
	Recursive bool `json:"recursive"`

	// UseRegex treats Pattern as a regular expression instead of a substring
	UseRegex bool `json:"useRegex"`

	// CaseSensitive controls case folding for both match modes
	CaseSensitive bool `json:"caseSensitive"`

	// NamePattern optionally filters candidate files by base name.
	// Only '*' is special (any run of characters); the match is anchored.
	NamePattern string `json:"namePattern,omitempty"`

	// MaxResults caps the total number of matches across all files.
	// Values outside (0, 1000] are clamped to the 1000 ceiling.
	MaxResults int `json:"maxResults"`
}

// MatchRecord is a single matched line within a file. Only the first match
// on a line is recorded. ColumnOffset and MatchLength are byte-based and
// always satisfy ColumnOffset+MatchLength <= len(LineContent).
type MatchRecord struct {
	// LineNumber is 1-based
	LineNumber int `json:"lineNumber"`

	// LineContent is the full line as read, without trimming or
	// line-ending normalization
	LineContent string `json:"lineContent"`

	// ColumnOffset is the 0-based byte offset of the match within the line
	ColumnOffset int `json:"columnOffset"`

	// MatchLength is the byte length of the matched text
	MatchLength int `json:"matchLength"`
}

// FileResult groups the matches found in one file. A FileResult exists only
// when the file produced at least one match.
type FileResult struct {
	Path    string        `json:"path"`
	Matches []MatchRecord `json:"matches"`
}

// SearchResponse is the complete result of one search request.
// TotalMatches always equals the sum of len(Matches) over Results.
type SearchResponse struct {
	Results []FileResult `json:"results"`

	// TotalMatches counts matches across all files, never exceeding the
	// effective quota for the request
	TotalMatches int `json:"totalMatches"`

	// Truncated is true exactly when the global quota was exhausted while
	// candidate files remained unscanned
	Truncated bool `json:"truncated"`

	// DurationMillis is the wall-clock time of the whole search
	DurationMillis int64 `json:"durationMillis"`
}
