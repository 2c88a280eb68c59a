package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/catalogue-etl/internal/data/repos"
	types "github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/platform/apierr"
	"github.com/yungbote/catalogue-etl/internal/platform/dbctx"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

const (
	DefaultSearchLimit = 50
	MaxSearchLimit     = 500
)

var ErrDatasetNotFound = errors.New("dataset not found")

// DatasetDetails is everything stored for one dataset.
type DatasetDetails struct {
	Metadata            *types.DatasetMetadata       `json:"metadata"`
	Geospatial          *types.DatasetGeospatialData `json:"geospatial,omitempty"`
	DataFiles           []*types.DataFile            `json:"data_files"`
	SupportingDocuments []*types.SupportingDocument  `json:"supporting_documents"`
	Relationships       []*types.DatasetRelationship `json:"relationships"`
	Documents           []*types.MetadataDocument    `json:"documents"`
}

type DatasetStats struct {
	TotalDatasets  int64 `json:"total_datasets"`
	TotalProviders int64 `json:"total_providers"`
}

type DatasetDiscoveryService interface {
	Search(ctx context.Context, query string, limit int) ([]*types.DatasetMetadata, error)
	GetDetails(ctx context.Context, fileIdentifier string) (*DatasetDetails, error)
	Stats(ctx context.Context) (*DatasetStats, error)
}

type datasetDiscoveryService struct {
	db    *gorm.DB
	log   *logger.Logger
	repos repos.Set
}

func NewDatasetDiscoveryService(db *gorm.DB, baseLog *logger.Logger, set repos.Set) DatasetDiscoveryService {
	return &datasetDiscoveryService{
		db:    db,
		log:   baseLog.With("service", "DatasetDiscoveryService"),
		repos: set,
	}
}

func (s *datasetDiscoveryService) Search(ctx context.Context, query string, limit int) ([]*types.DatasetMetadata, error) {
	switch {
	case limit <= 0:
		limit = DefaultSearchLimit
	case limit > MaxSearchLimit:
		limit = MaxSearchLimit
	}
	rows, err := s.repos.Metadata.Search(dbctx.Context{Ctx: ctx}, query, limit)
	if err != nil {
		s.log.Warn("Search failed", "query", query, "error", err)
		return nil, fmt.Errorf("search datasets: %w", err)
	}
	return rows, nil
}

func (s *datasetDiscoveryService) GetDetails(ctx context.Context, fileIdentifier string) (*DatasetDetails, error) {
	fileIdentifier = strings.TrimSpace(fileIdentifier)
	if fileIdentifier == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_identifier", fmt.Errorf("missing identifier"))
	}

	dbc := dbctx.Context{Ctx: ctx}
	dm, err := s.repos.Metadata.GetByFileIdentifier(dbc, fileIdentifier)
	if err != nil {
		s.log.Warn("GetDetails: load metadata failed", "identifier", fileIdentifier, "error", err)
		return nil, err
	}
	if dm == nil {
		return nil, apierr.New(http.StatusNotFound, "dataset_not_found", ErrDatasetNotFound)
	}

	out := &DatasetDetails{Metadata: dm}
	if out.Geospatial, err = s.repos.Geospatial.GetByDatasetMetadataID(dbc, dm.DatasetMetadataID); err != nil {
		return nil, fmt.Errorf("load geospatial data: %w", err)
	}
	if out.DataFiles, err = s.repos.DataFiles.ListByDatasetMetadataID(dbc, dm.DatasetMetadataID); err != nil {
		return nil, fmt.Errorf("load data files: %w", err)
	}
	if out.SupportingDocuments, err = s.repos.SupportingDocuments.ListByDatasetMetadataID(dbc, dm.DatasetMetadataID); err != nil {
		return nil, fmt.Errorf("load supporting documents: %w", err)
	}
	if out.Relationships, err = s.repos.Relationships.ListByDatasetMetadataID(dbc, dm.DatasetMetadataID); err != nil {
		return nil, fmt.Errorf("load relationships: %w", err)
	}
	if out.Documents, err = s.repos.Documents.ListByFileIdentifier(dbc, fileIdentifier); err != nil {
		return nil, fmt.Errorf("load metadata documents: %w", err)
	}
	return out, nil
}

func (s *datasetDiscoveryService) Stats(ctx context.Context) (*DatasetStats, error) {
	dbc := dbctx.Context{Ctx: ctx}
	total, err := s.repos.Metadata.Count(dbc)
	if err != nil {
		return nil, fmt.Errorf("count datasets: %w", err)
	}
	providers, err := s.repos.DataFiles.CountDistinctDownloadURLs(dbc)
	if err != nil {
		return nil, fmt.Errorf("count providers: %w", err)
	}
	return &DatasetStats{TotalDatasets: total, TotalProviders: providers}, nil
}
