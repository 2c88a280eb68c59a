// Package extractor fetches every metadata format the catalogue publishes for
// an identifier.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

var ErrDuplicateExtractor = errors.New("duplicate format extractor")

type FormatExtractor interface {
	Type() catalogue.DocumentType
	Extract(ctx context.Context, identifier string) (string, error)
}

// Orchestrator runs every registered FormatExtractor for an identifier.
type Orchestrator struct {
	log        *logger.Logger
	extractors map[catalogue.DocumentType]FormatExtractor
}

// NewOrchestrator fails when two extractors claim the same document type.
func NewOrchestrator(baseLog *logger.Logger, extractors ...FormatExtractor) (*Orchestrator, error) {
	byType := make(map[catalogue.DocumentType]FormatExtractor, len(extractors))
	for _, e := range extractors {
		if e == nil {
			continue
		}
		t := e.Type()
		if !t.Valid() {
			return nil, fmt.Errorf("extractor for unknown document type %d", int(t))
		}
		if _, ok := byType[t]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateExtractor, t)
		}
		byType[t] = e
	}
	return &Orchestrator{
		log:        baseLog.With("component", "ExtractionOrchestrator"),
		extractors: byType,
	}, nil
}

// Types lists the registered document types.
func (o *Orchestrator) Types() []catalogue.DocumentType {
	out := make([]catalogue.DocumentType, 0, len(o.extractors))
	for _, t := range catalogue.AllDocumentTypes() {
		if _, ok := o.extractors[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// ExtractAll fetches all formats concurrently. Only formats that succeeded
// with non-blank content appear in the result; a failing extractor never
// affects the others.
func (o *Orchestrator) ExtractAll(ctx context.Context, identifier string) map[catalogue.DocumentType]string {
	var (
		mu      sync.Mutex
		results = make(map[catalogue.DocumentType]string, len(o.extractors))
	)

	g, gctx := errgroup.WithContext(ctx)
	for t, e := range o.extractors {
		t, e := t, e
		g.Go(func() error {
			content, err := o.extractOne(gctx, e, identifier)
			if err != nil {
				o.log.Warn("Failed to extract format",
					"identifier", identifier,
					"document_type", t.String(),
					"error", err,
				)
				return nil
			}
			if strings.TrimSpace(content) == "" {
				o.log.Debug("Extracted format is blank", "identifier", identifier, "document_type", t.String())
				return nil
			}
			mu.Lock()
			results[t] = content
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	o.log.Debug("Extraction finished", "identifier", identifier, "formats", len(results), "registered", len(o.extractors))
	return results
}

func (o *Orchestrator) extractOne(ctx context.Context, e FormatExtractor, identifier string) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extractor panic: %v", r)
		}
	}()
	return e.Extract(ctx, identifier)
}
