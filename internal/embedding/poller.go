package embedding

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/yungbote/catalogue-etl/internal/data/repos"
	"github.com/yungbote/catalogue-etl/internal/platform/dbctx"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

const DefaultPollInterval = 30 * time.Second

// Poller periodically hands every queue row with an outstanding embedding
// pass to the embedding service. The service updates the flags itself.
type Poller struct {
	db       *gorm.DB
	baseLog  *logger.Logger
	log      *logger.Logger
	service  Service
	interval time.Duration
	tracer   trace.Tracer
}

func NewPoller(db *gorm.DB, baseLog *logger.Logger, service Service, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		db:       db,
		baseLog:  baseLog,
		log:      baseLog.With("component", "EmbeddingQueuePoller"),
		service:  service,
		interval: interval,
		tracer:   otel.Tracer("github.com/yungbote/catalogue-etl/internal/embedding"),
	}
}

// Start runs the loop in a goroutine.
func (p *Poller) Start(ctx context.Context) {
	go p.Run(ctx)
}

// Run polls once immediately and then on every tick until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.log.Info("Embedding poller started", "interval", p.interval.String())
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.Tick(ctx)
		select {
		case <-ctx.Done():
			p.log.Info("Embedding poller stopped")
			return
		case <-ticker.C:
		}
	}
}

// Tick processes the current pending rows and returns how many were handed
// to the embedding service successfully.
func (p *Poller) Tick(ctx context.Context) (sent int) {
	ctx, span := p.tracer.Start(ctx, "embedding.Tick")
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("Embedding poller tick panic", "panic", r)
		}
		span.SetAttributes(attribute.Int("embedding.sent", sent))
		span.End()
	}()

	// Each tick gets its own session and repositories.
	set := repos.NewSet(p.db.Session(&gorm.Session{NewDB: true}), p.baseLog)

	pending, err := set.Queue.ListPending(dbctx.Context{Ctx: ctx})
	if err != nil {
		p.log.Warn("Failed to read embedding queue", "error", err)
		return 0
	}
	if len(pending) == 0 {
		return 0
	}
	p.log.Debug("Pending embedding rows", "count", len(pending))

	for _, row := range pending {
		if ctx.Err() != nil {
			return sent
		}
		if err := p.service.ProcessDataset(ctx, row.DatasetMetadataID); err != nil {
			p.log.Warn("Embedding request failed",
				"dataset_metadata_id", row.DatasetMetadataID,
				"error", err,
			)
			continue
		}
		sent++
	}
	return sent
}
