package etl

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

const DefaultMaxParallelism = 5

// BatchDriver runs the pipeline over every allow-listed identifier with
// bounded parallelism. Each identifier gets its own DatasetProcessor from
// newProcessor so concurrent runs share no database session.
type BatchDriver struct {
	log            *logger.Logger
	identifiers    IdentifierSource
	newProcessor   func() DatasetProcessor
	maxParallelism int
	progress       *Progress
}

func NewBatchDriver(
	baseLog *logger.Logger,
	identifiers IdentifierSource,
	newProcessor func() DatasetProcessor,
	maxParallelism int,
	progress *Progress,
) *BatchDriver {
	if maxParallelism <= 0 {
		maxParallelism = DefaultMaxParallelism
	}
	if progress == nil {
		progress = &Progress{}
	}
	return &BatchDriver{
		log:            baseLog.With("component", "BatchDriver"),
		identifiers:    identifiers,
		newProcessor:   newProcessor,
		maxParallelism: maxParallelism,
		progress:       progress,
	}
}

func (d *BatchDriver) Progress() *Progress { return d.progress }

// ProcessAll reads the identifier list once and processes each entry.
// Cancellation stops new identifiers from starting; runs already started
// finish or observe ctx themselves.
func (d *BatchDriver) ProcessAll(ctx context.Context) BatchResult {
	res := BatchResult{FilePath: d.identifiers.Path()}

	ids, err := d.identifiers.Identifiers(ctx)
	if err != nil {
		d.log.Error("Cannot read metadata identifiers", "path", res.FilePath, "error", err)
		res.Error = err.Error()
		res.Message = "Failed to read metadata identifiers"
		res.cause = err
		return res
	}
	res.Total = len(ids)
	d.progress.start(len(ids))
	defer d.progress.finish()

	d.log.Info("Batch started", "total", len(ids), "max_parallelism", d.maxParallelism)

	var (
		mu      sync.Mutex
		skipped []string
		failed  []string
	)
	var g errgroup.Group
	g.SetLimit(d.maxParallelism)

	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		id := id
		g.Go(func() error {
			out := d.runOne(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case !out.IsSuccess:
				failed = append(failed, id)
			case out.IsSkip():
				skipped = append(skipped, id)
				d.progress.advance()
			default:
				res.Succeeded++
				d.progress.advance()
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(skipped)
	sort.Strings(failed)
	res.SkippedIdentifiers = skipped
	res.FailedIdentifiers = failed
	res.Skipped = len(skipped)
	res.Failed = len(failed)
	res.Processed = res.Succeeded + res.Skipped

	notStarted := res.Total - res.Processed - res.Failed
	if err := ctx.Err(); err != nil && notStarted > 0 {
		res.Error = fmt.Sprintf("batch cancelled: %v (%d not started)", err, notStarted)
	}

	res.IsSuccess = res.Failed == 0 && res.Error == ""
	if res.Failed == 0 && res.Error == "" {
		res.Message = fmt.Sprintf("All %d datasets processed successfully", res.Processed)
	} else {
		res.Message = fmt.Sprintf("Processed %d of %d datasets. %d failed.", res.Processed, res.Total, res.Failed)
	}

	d.log.Info("Batch finished",
		"total", res.Total,
		"succeeded", res.Succeeded,
		"skipped", res.Skipped,
		"failed", res.Failed,
	)
	return res
}

func (d *BatchDriver) runOne(ctx context.Context, identifier string) (res ProcessResult) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("Panic in batch task", "identifier", identifier, "panic", r)
			res = failedResult(identifier, fmt.Errorf("panic: %v", r))
		}
	}()
	res = d.newProcessor().ProcessDataset(ctx, identifier)
	if !res.IsSuccess {
		d.log.Warn("Dataset failed", "identifier", identifier, "error", res.Error, "message", res.Message)
	}
	return res
}
