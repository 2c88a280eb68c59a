package etl

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileIdentifierSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc\n\n  def  \r\n\t\nGHI\n"), 0o644))

	src := NewFileIdentifierSource(path)
	ids, err := src.Identifiers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "def", "GHI"}, ids)
	assert.Equal(t, path, src.Path())

	assert.True(t, containsIdentifier(ids, " ghi "))
	assert.True(t, containsIdentifier(ids, "DEF"))
	assert.False(t, containsIdentifier(ids, "xyz"))
}

func TestFileIdentifierSourceMissing(t *testing.T) {
	src := NewFileIdentifierSource(filepath.Join(t.TempDir(), "absent.txt"))
	_, err := src.Identifiers(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIdentifierSourceMissing))
}
