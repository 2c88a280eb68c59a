package etl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

var ErrIdentifierSourceMissing = errors.New("metadata identifiers file not found")

// IdentifierSource supplies the allow-list of catalogue identifiers.
type IdentifierSource interface {
	Identifiers(ctx context.Context) ([]string, error)
	Path() string
}

// FileIdentifierSource reads one identifier per line. Lines are trimmed and
// blank lines dropped. The file is re-read on every call.
type FileIdentifierSource struct {
	path string
}

func NewFileIdentifierSource(path string) *FileIdentifierSource {
	return &FileIdentifierSource{path: path}
}

func (s *FileIdentifierSource) Path() string { return s.path }

func (s *FileIdentifierSource) Identifiers(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrIdentifierSourceMissing, s.path)
		}
		return nil, fmt.Errorf("open identifiers file: %w", err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if id := strings.TrimSpace(sc.Text()); id != "" {
			out = append(out, id)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read identifiers file: %w", err)
	}
	return out, nil
}

// StaticIdentifiers is an in-memory IdentifierSource.
type StaticIdentifiers []string

func (s StaticIdentifiers) Path() string { return "" }

func (s StaticIdentifiers) Identifiers(ctx context.Context) ([]string, error) {
	out := make([]string, 0, len(s))
	for _, id := range s {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out, nil
}

// containsIdentifier compares trimmed identifiers case-insensitively.
func containsIdentifier(ids []string, identifier string) bool {
	needle := strings.TrimSpace(identifier)
	for _, id := range ids {
		if strings.EqualFold(strings.TrimSpace(id), needle) {
			return true
		}
	}
	return false
}
