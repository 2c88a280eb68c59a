// Package etl drives metadata harvesting for catalogue datasets: validation,
// extraction, content-hash change detection, transactional persistence and
// embedding queue maintenance.
package etl

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/yungbote/catalogue-etl/internal/data/repos"
	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/ingestion/processor"
	"github.com/yungbote/catalogue-etl/internal/platform/dbctx"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

const tracerName = "github.com/yungbote/catalogue-etl/internal/etl"

// Extractor returns the non-blank content of every format that could be
// fetched for identifier.
type Extractor interface {
	ExtractAll(ctx context.Context, identifier string) map[catalogue.DocumentType]string
}

// DatasetProcessor runs the pipeline for one identifier.
type DatasetProcessor interface {
	ProcessDataset(ctx context.Context, identifier string) ProcessResult
}

type Engine struct {
	db          *gorm.DB
	baseLog     *logger.Logger
	log         *logger.Logger
	identifiers IdentifierSource
	extractor   Extractor
	processors  *processor.Registry
	repos       repos.Set
	tracer      trace.Tracer
}

func NewEngine(
	db *gorm.DB,
	baseLog *logger.Logger,
	identifiers IdentifierSource,
	extractor Extractor,
	processors *processor.Registry,
) *Engine {
	return &Engine{
		db:          db,
		baseLog:     baseLog,
		log:         baseLog.With("component", "EtlEngine"),
		identifiers: identifiers,
		extractor:   extractor,
		processors:  processors,
		repos:       repos.NewSet(db, baseLog),
		tracer:      otel.Tracer(tracerName),
	}
}

// Fork returns an engine with its own database session and repositories,
// sharing only the stateless collaborators.
func (e *Engine) Fork() *Engine {
	db := e.db.Session(&gorm.Session{NewDB: true})
	cp := *e
	cp.db = db
	cp.repos = repos.NewSet(db, e.baseLog)
	return &cp
}

// priorState is what the store knew about a dataset before this run.
type priorState struct {
	metadata *catalogue.DatasetMetadata
	hashes   map[catalogue.DocumentType]string
	queue    *catalogue.DatasetSupportingDocumentQueue
}

// ProcessDataset validates identifier, extracts every format, and persists the
// formats whose content changed. It never panics or returns an error; the
// result describes the outcome.
func (e *Engine) ProcessDataset(ctx context.Context, identifier string) (res ProcessResult) {
	identifier = strings.TrimSpace(identifier)
	ctx, span := e.tracer.Start(ctx, "etl.ProcessDataset", trace.WithAttributes(
		attribute.String("catalogue.identifier", identifier),
	))
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("Panic processing dataset", "identifier", identifier, "panic", r, "stack", string(debug.Stack()))
			res = failedResult(identifier, fmt.Errorf("panic: %v", r))
		}
		span.SetAttributes(
			attribute.Bool("etl.success", res.IsSuccess),
			attribute.Bool("etl.skipped", res.Skipped),
		)
		if !res.IsSuccess {
			span.SetStatus(codes.Error, res.Message)
		}
		span.End()
		e.log.Debug("Dataset run finished",
			"identifier", identifier,
			"success", res.IsSuccess,
			"skipped", res.Skipped,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}()

	ids, err := e.identifiers.Identifiers(ctx)
	if err != nil {
		e.log.Error("Cannot read metadata identifiers", "identifier", identifier, "error", err)
		return failedResult(identifier, err)
	}
	if !containsIdentifier(ids, identifier) {
		return notFoundResult(identifier)
	}

	extracted := e.extractor.ExtractAll(ctx, identifier)
	if len(extracted) == 0 {
		return noFormatsResult(identifier)
	}
	if err := ctx.Err(); err != nil {
		return failedResult(identifier, err)
	}

	hashes := make(map[catalogue.DocumentType]string, len(extracted))
	for t, content := range extracted {
		hashes[t] = ComputeHash(content)
	}
	combined := CombinedHash(hashes)

	prior, err := e.loadPrior(dbctx.Context{Ctx: ctx}, identifier)
	if err != nil {
		e.log.Error("Error loading stored state", "identifier", identifier, "error", err)
		return failedResult(identifier, err)
	}

	changed := changedFormats(hashes, prior.hashes)
	if len(changed) == 0 && prior.fullyProcessed(combined) {
		e.log.Info("Dataset unchanged, skipping", "identifier", identifier)
		return skippedResult(identifier)
	}

	outcomes, err := e.persist(ctx, identifier, extracted, hashes, changed, combined)
	if err != nil {
		e.log.Error("Error processing dataset", "identifier", identifier, "error", err)
		return failedResult(identifier, err)
	}

	res = formatsResult(identifier, outcomes, len(extracted))
	e.log.Info("Processed dataset",
		"identifier", identifier,
		"success", res.IsSuccess,
		"formats", len(extracted),
		"changed", len(changed),
	)
	return res
}

func (e *Engine) loadPrior(dbc dbctx.Context, identifier string) (priorState, error) {
	st := priorState{hashes: map[catalogue.DocumentType]string{}}

	docs, err := e.repos.Documents.ListByFileIdentifier(dbc, identifier)
	if err != nil {
		return st, fmt.Errorf("load metadata documents: %w", err)
	}
	for _, d := range docs {
		st.hashes[d.DocumentType] = d.ContentHash
	}

	st.metadata, err = e.repos.Metadata.GetByFileIdentifier(dbc, identifier)
	if err != nil {
		return st, fmt.Errorf("load dataset metadata: %w", err)
	}
	if st.metadata == nil {
		return st, nil
	}
	st.queue, err = e.repos.Queue.GetByDatasetMetadataID(dbc, st.metadata.DatasetMetadataID)
	if err != nil {
		return st, fmt.Errorf("load embedding queue: %w", err)
	}
	return st, nil
}

// fullyProcessed holds when the dataset has core text, was last processed with
// the same combined hash, and every embedding pass has completed.
func (st priorState) fullyProcessed(combined string) bool {
	if st.metadata == nil || st.queue == nil {
		return false
	}
	if strings.TrimSpace(st.metadata.Title) == "" || strings.TrimSpace(st.metadata.Description) == "" {
		return false
	}
	return st.queue.LastProcessedHash == combined && st.queue.EmbeddingComplete()
}

// changedFormats marks the formats whose hash differs from the stored one or
// that have no stored document.
func changedFormats(current, stored map[catalogue.DocumentType]string) map[catalogue.DocumentType]bool {
	out := map[catalogue.DocumentType]bool{}
	for t, h := range current {
		if prev, ok := stored[t]; !ok || prev != h {
			out[t] = true
		}
	}
	return out
}

func sortedTypes(m map[catalogue.DocumentType]string) []catalogue.DocumentType {
	out := make([]catalogue.DocumentType, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// persist applies the run inside one transaction. Processor failures are
// recorded per format; any storage error aborts and rolls back the run.
func (e *Engine) persist(
	ctx context.Context,
	identifier string,
	extracted map[catalogue.DocumentType]string,
	hashes map[catalogue.DocumentType]string,
	changed map[catalogue.DocumentType]bool,
	combined string,
) ([]FormatOutcome, error) {
	var outcomes []FormatOutcome

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		outcomes = outcomes[:0]
		now := time.Now().UTC()

		dm, err := e.repos.Metadata.GetByFileIdentifier(dbc, identifier)
		if err != nil {
			return fmt.Errorf("load dataset metadata: %w", err)
		}
		if dm == nil {
			dm = &catalogue.DatasetMetadata{FileIdentifier: identifier, CreatedAt: now}
			if err := e.repos.Metadata.CreateWithQueue(dbc, dm); err != nil {
				return fmt.Errorf("create dataset metadata: %w", err)
			}
		}

		for _, t := range sortedTypes(extracted) {
			proc, registered := e.processors.Get(t)
			if !changed[t] {
				if registered {
					outcomes = append(outcomes, FormatOutcome{DocumentType: t, Cached: true})
				}
				continue
			}

			if err := e.repos.Documents.Upsert(dbc, &catalogue.MetadataDocument{
				DatasetMetadataID: dm.DatasetMetadataID,
				FileIdentifier:    identifier,
				DocumentType:      t,
				RawDocument:       extracted[t],
				ContentHash:       hashes[t],
				CreatedAt:         now,
			}); err != nil {
				return fmt.Errorf("save %s document: %w", t, err)
			}
			if !registered {
				e.log.Debug("No processor registered, raw document stored", "identifier", identifier, "document_type", t.String())
				continue
			}

			perr := dbc.Savepoint(func(sp dbctx.Context) error {
				return e.runProcessor(sp, proc, extracted[t], identifier)
			})
			if perr != nil {
				e.log.Warn("Failed to process format", "identifier", identifier, "document_type", t.String(), "error", perr)
				outcomes = append(outcomes, FormatOutcome{DocumentType: t, Error: perr.Error()})
				continue
			}
			outcomes = append(outcomes, FormatOutcome{DocumentType: t})
		}

		q, err := e.repos.Queue.GetByDatasetMetadataID(dbc, dm.DatasetMetadataID)
		if err != nil {
			return fmt.Errorf("load embedding queue: %w", err)
		}
		if q == nil {
			q = &catalogue.DatasetSupportingDocumentQueue{DatasetMetadataID: dm.DatasetMetadataID, CreatedAt: now}
			if err := e.repos.Queue.Create(dbc, q); err != nil {
				return fmt.Errorf("create embedding queue: %w", err)
			}
		}
		if len(changed) > 0 {
			q.ResetEmbedding()
		}
		q.LastProcessedHash = combined
		q.UpdatedAt = &now
		q.LastUpdatedAt = &now
		if err := e.repos.Queue.Update(dbc, q); err != nil {
			return fmt.Errorf("update embedding queue: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (e *Engine) runProcessor(dbc dbctx.Context, proc processor.Processor, content, identifier string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processor panic: %v", r)
		}
	}()
	dm, err := proc.Process(dbc, e.repos, content, identifier)
	if err != nil {
		return err
	}
	if dm == nil {
		e.log.Debug("Processor found no metadata row", "identifier", identifier, "document_type", proc.Type().String())
	}
	return nil
}
