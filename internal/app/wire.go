package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/catalogue-etl/internal/data/repos"
	"github.com/yungbote/catalogue-etl/internal/embedding"
	"github.com/yungbote/catalogue-etl/internal/etl"
	httpH "github.com/yungbote/catalogue-etl/internal/http/handlers"
	"github.com/yungbote/catalogue-etl/internal/ingestion/extractor"
	"github.com/yungbote/catalogue-etl/internal/ingestion/processor"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
	"github.com/yungbote/catalogue-etl/internal/services"
)

type Services struct {
	Engine       *etl.Engine
	NewProcessor func() etl.DatasetProcessor
	Batch        *etl.BatchDriver
	Poller       *embedding.Poller
	Discovery    services.DatasetDiscoveryService
}

type Handlers struct {
	ETL    *httpH.ETLHandler
	Search *httpH.SearchHandler
	Health *httpH.HealthHandler
}

func wireRepos(db *gorm.DB, log *logger.Logger) repos.Set {
	log.Info("Wiring repos...")
	return repos.NewSet(db, log)
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet repos.Set) (Services, error) {
	log.Info("Wiring services...")

	client := extractor.NewHTTPClient(cfg.Extract)
	orchestrator, err := extractor.NewOrchestrator(log, extractor.DefaultExtractors(cfg.Extract, client)...)
	if err != nil {
		return Services{}, fmt.Errorf("init extractors: %w", err)
	}
	registry, err := processor.NewDefaultRegistry(log)
	if err != nil {
		return Services{}, fmt.Errorf("init processors: %w", err)
	}

	identifiers := etl.NewFileIdentifierSource(cfg.IdentifiersFile)
	engine := etl.NewEngine(db, log, identifiers, orchestrator, registry)
	newProcessor := func() etl.DatasetProcessor { return engine.Fork() }
	batch := etl.NewBatchDriver(log, identifiers, newProcessor, cfg.MaxParallelism, nil)

	embedClient := embedding.NewClient(cfg.EmbeddingURL, cfg.EmbeddingTimeout, log)
	poller := embedding.NewPoller(db, log, embedClient, cfg.PollInterval)

	return Services{
		Engine:       engine,
		NewProcessor: newProcessor,
		Batch:        batch,
		Poller:       poller,
		Discovery:    services.NewDatasetDiscoveryService(db, log, reposet),
	}, nil
}

func wireHandlers(log *logger.Logger, svc Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		ETL:    httpH.NewETLHandler(svc.NewProcessor, svc.Batch),
		Search: httpH.NewSearchHandler(svc.Discovery),
		Health: httpH.NewHealthHandler(),
	}
}
