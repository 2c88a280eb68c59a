package app

import (
	"time"

	"github.com/yungbote/catalogue-etl/internal/data/db"
	"github.com/yungbote/catalogue-etl/internal/embedding"
	"github.com/yungbote/catalogue-etl/internal/etl"
	"github.com/yungbote/catalogue-etl/internal/ingestion/extractor"
	"github.com/yungbote/catalogue-etl/internal/observability"
	"github.com/yungbote/catalogue-etl/internal/platform/envutil"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

const ServiceName = "catalogue-etl"

type Config struct {
	LogMode string
	Port    string

	DB          db.Config
	AutoMigrate bool

	IdentifiersFile string
	Extract         extractor.Config
	MaxParallelism  int

	EmbeddingURL     string
	EmbeddingTimeout time.Duration
	PollInterval     time.Duration
	PollerEnabled    bool

	CORSOrigins []string
	Otel        observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		LogMode: envutil.String("LOG_MODE", "development"),
		Port:    envutil.String("PORT", "8080"),
		DB: db.Config{
			Driver:     envutil.String("DB_DRIVER", db.DriverPostgres),
			Host:       envutil.String("POSTGRES_HOST", "localhost"),
			Port:       envutil.String("POSTGRES_PORT", "5432"),
			User:       envutil.String("POSTGRES_USER", "postgres"),
			Password:   envutil.String("POSTGRES_PASSWORD", ""),
			Name:       envutil.String("POSTGRES_NAME", "catalogue_etl"),
			SQLitePath: envutil.String("SQLITE_PATH", "catalogue-etl.db"),
		},
		AutoMigrate:     envutil.Bool("DB_AUTO_MIGRATE", true),
		IdentifiersFile: envutil.String("METADATA_IDENTIFIERS_FILE", "metadata-file-identifiers.txt"),
		Extract: extractor.Config{
			DocumentsBaseURL: envutil.String("CATALOGUE_DOCUMENTS_URL", extractor.DefaultDocumentsBaseURL),
			IDBaseURL:        envutil.String("CATALOGUE_ID_URL", extractor.DefaultIDBaseURL),
			Timeout:          envutil.Seconds("EXTRACT_HTTP_TIMEOUT_SECONDS", 30*time.Second),
		},
		MaxParallelism:   envutil.Int("ETL_MAX_PARALLELISM", etl.DefaultMaxParallelism),
		EmbeddingURL:     envutil.String("EMBEDDING_SERVICE_URL", embedding.DefaultBaseURL),
		EmbeddingTimeout: envutil.Seconds("EMBEDDING_HTTP_TIMEOUT_SECONDS", embedding.DefaultTimeout),
		PollInterval:     envutil.Seconds("EMBEDDING_POLL_INTERVAL_SECONDS", embedding.DefaultPollInterval),
		PollerEnabled:    envutil.Bool("EMBEDDING_POLLER_ENABLED", true),
		CORSOrigins:      envutil.List("CORS_ALLOW_ORIGINS", nil),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", ServiceName),
			Environment: envutil.String("APP_ENV", "development"),
			Version:     envutil.String("APP_VERSION", "dev"),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     envutil.String("OTEL_EXPORTER_OTLP_HEADERS", ""),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 0.1),
		},
	}
	if cfg.MaxParallelism <= 0 {
		cfg.MaxParallelism = etl.DefaultMaxParallelism
	}
	if log != nil {
		log.Info("Configuration loaded",
			"db_driver", cfg.DB.Driver,
			"identifiers_file", cfg.IdentifiersFile,
			"max_parallelism", cfg.MaxParallelism,
			"embedding_url", cfg.EmbeddingURL,
			"poller_enabled", cfg.PollerEnabled,
		)
	}
	return cfg
}
