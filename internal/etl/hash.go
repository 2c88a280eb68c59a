package etl

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
)

// ComputeHash returns the lower-case hex SHA-256 of content, or "" for empty
// content.
func ComputeHash(content string) string {
	if content == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// CombinedHash hashes the per-format digests concatenated in document-type
// order, so map iteration order never affects the result.
func CombinedHash(hashes map[catalogue.DocumentType]string) string {
	types := make([]catalogue.DocumentType, 0, len(hashes))
	for t := range hashes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	var b strings.Builder
	for _, t := range types {
		b.WriteString(hashes[t])
	}
	return ComputeHash(b.String())
}
