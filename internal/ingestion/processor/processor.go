// Package processor turns extracted metadata documents into persisted
// catalogue state, one Processor per document type.
package processor

import (
	"errors"
	"fmt"

	"github.com/yungbote/catalogue-etl/internal/data/repos"
	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/platform/dbctx"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

var ErrDuplicateProcessor = errors.New("duplicate document processor")

// Processor updates domain state from raw content. It returns the dataset's
// metadata row, or nil when no row exists yet for identifier.
type Processor interface {
	Type() catalogue.DocumentType
	Process(dbc dbctx.Context, set repos.Set, content, identifier string) (*catalogue.DatasetMetadata, error)
}

// Registry maps each document type to its single processor.
type Registry struct {
	byType map[catalogue.DocumentType]Processor
}

func NewRegistry(processors ...Processor) (*Registry, error) {
	byType := make(map[catalogue.DocumentType]Processor, len(processors))
	for _, p := range processors {
		if p == nil {
			continue
		}
		t := p.Type()
		if !t.Valid() {
			return nil, fmt.Errorf("processor for unknown document type %d", int(t))
		}
		if _, ok := byType[t]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProcessor, t)
		}
		byType[t] = p
	}
	return &Registry{byType: byType}, nil
}

// NewDefaultRegistry registers the processors for every supported format.
func NewDefaultRegistry(baseLog *logger.Logger) (*Registry, error) {
	resources := NewResourcePersister(baseLog)
	return NewRegistry(
		NewJSONProcessor(baseLog, resources),
		NewISO19115Processor(baseLog),
		NewJSONLDProcessor(baseLog),
		NewTurtleProcessor(baseLog),
	)
}

func (r *Registry) Get(t catalogue.DocumentType) (Processor, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.byType[t]
	return p, ok
}

func (r *Registry) Types() []catalogue.DocumentType {
	var out []catalogue.DocumentType
	for _, t := range catalogue.AllDocumentTypes() {
		if _, ok := r.byType[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

func existingMetadata(dbc dbctx.Context, set repos.Set, identifier string) (*catalogue.DatasetMetadata, error) {
	dm, err := set.Metadata.GetByFileIdentifier(dbc, identifier)
	if err != nil {
		return nil, fmt.Errorf("load dataset metadata: %w", err)
	}
	return dm, nil
}
