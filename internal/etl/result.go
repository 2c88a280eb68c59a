package etl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
)

const (
	errIdentifierNotFound = "Identifier not found in metadata identifiers file"
	errNoFormats          = "No metadata formats could be extracted"

	skippedMarker = "already fully processed"
)

var (
	ErrIdentifierNotFound = errors.New("identifier not found in metadata identifiers file")
	ErrNoFormatsExtracted = errors.New("no metadata formats could be extracted")
	ErrAllFormatsFailed   = errors.New("all metadata formats failed")
)

// ProcessResult is the outcome of one dataset run. Runs never return errors;
// every failure is described here.
type ProcessResult struct {
	IsSuccess  bool            `json:"is_success"`
	Message    string          `json:"message"`
	Error      string          `json:"error,omitempty"`
	Identifier string          `json:"identifier,omitempty"`
	Skipped    bool            `json:"skipped,omitempty"`
	Formats    []FormatOutcome `json:"formats,omitempty"`

	cause error
}

// Err returns nil for successful runs, otherwise an error matching one of the
// package sentinels where the failure has a known kind.
func (r ProcessResult) Err() error {
	if r.IsSuccess {
		return nil
	}
	if r.cause != nil {
		return r.cause
	}
	return errors.New(r.Error)
}

// FormatOutcome records what happened to one extracted format.
type FormatOutcome struct {
	DocumentType catalogue.DocumentType `json:"document_type"`
	Cached       bool                   `json:"cached,omitempty"`
	Error        string                 `json:"error,omitempty"`
}

func (o FormatOutcome) label() string {
	if o.Cached {
		return o.DocumentType.String() + " (cached)"
	}
	return o.DocumentType.String()
}

// IsSkip reports whether r is the unchanged-and-complete short circuit.
func (r ProcessResult) IsSkip() bool {
	return r.IsSuccess && (r.Skipped || strings.Contains(r.Message, skippedMarker))
}

func notFoundResult(identifier string) ProcessResult {
	return ProcessResult{
		Identifier: identifier,
		Error:      errIdentifierNotFound,
		Message:    fmt.Sprintf("Identifier '%s' is not in the list of valid identifiers", identifier),
		cause:      ErrIdentifierNotFound,
	}
}

func noFormatsResult(identifier string) ProcessResult {
	return ProcessResult{
		Identifier: identifier,
		Error:      errNoFormats,
		Message:    fmt.Sprintf("Failed to extract any metadata formats for %s", identifier),
		cause:      ErrNoFormatsExtracted,
	}
}

func skippedResult(identifier string) ProcessResult {
	return ProcessResult{
		IsSuccess:  true,
		Identifier: identifier,
		Skipped:    true,
		Message:    fmt.Sprintf("Dataset %s %s and unchanged. Skipped.", identifier, skippedMarker),
	}
}

func failedResult(identifier string, err error) ProcessResult {
	return ProcessResult{
		Identifier: identifier,
		Error:      err.Error(),
		Message:    fmt.Sprintf("Failed to process dataset %s", identifier),
		cause:      err,
	}
}

// formatsResult summarises a persisted run; totalFormats counts every
// extracted format.
func formatsResult(identifier string, outcomes []FormatOutcome, totalFormats int) ProcessResult {
	var successes, failures []string
	for _, o := range outcomes {
		if o.Error != "" {
			failures = append(failures, fmt.Sprintf("%s: %s", o.DocumentType, o.Error))
			continue
		}
		successes = append(successes, o.label())
	}

	res := ProcessResult{
		IsSuccess:  len(successes) > 0,
		Identifier: identifier,
		Formats:    outcomes,
	}
	switch {
	case res.IsSuccess && len(failures) > 0:
		res.Message = fmt.Sprintf("Dataset %s processed: %d/%d format(s) succeeded", identifier, len(successes), totalFormats)
	case res.IsSuccess:
		res.Message = fmt.Sprintf("Dataset %s processed successfully (%d format(s))", identifier, len(successes))
	default:
		res.Message = fmt.Sprintf("Dataset %s failed: all %d format(s) failed", identifier, len(failures))
	}
	if len(failures) > 0 {
		res.Error = strings.Join(failures, "; ")
	}
	if !res.IsSuccess {
		res.cause = fmt.Errorf("%w: %s", ErrAllFormatsFailed, res.Error)
	}
	return res
}

// Succeeded lists the formats that succeeded, cached ones marked "(cached)".
func (r ProcessResult) Succeeded() []string {
	var out []string
	for _, o := range r.Formats {
		if o.Error == "" {
			out = append(out, o.label())
		}
	}
	return out
}

// BatchResult aggregates a ProcessAll run.
type BatchResult struct {
	IsSuccess          bool     `json:"is_success"`
	Message            string   `json:"message"`
	Error              string   `json:"error,omitempty"`
	FilePath           string   `json:"file_path,omitempty"`
	Total              int      `json:"total"`
	Processed          int      `json:"processed"`
	Succeeded          int      `json:"succeeded"`
	Skipped            int      `json:"skipped"`
	Failed             int      `json:"failed"`
	SkippedIdentifiers []string `json:"skipped_identifiers,omitempty"`
	FailedIdentifiers  []string `json:"failed_identifiers,omitempty"`

	cause error
}

// Err is set when the batch could not start at all.
func (r BatchResult) Err() error { return r.cause }
