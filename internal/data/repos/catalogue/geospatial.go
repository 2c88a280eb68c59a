package catalogue

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/platform/dbctx"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

type GeospatialRepo interface {
	GetByDatasetMetadataID(dbc dbctx.Context, datasetMetadataID int) (*types.DatasetGeospatialData, error)
	Upsert(dbc dbctx.Context, row *types.DatasetGeospatialData) error
}

type geospatialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGeospatialRepo(db *gorm.DB, baseLog *logger.Logger) GeospatialRepo {
	repoLog := baseLog.With("repo", "GeospatialRepo")
	return &geospatialRepo{db: db, log: repoLog}
}

func (r *geospatialRepo) GetByDatasetMetadataID(dbc dbctx.Context, datasetMetadataID int) (*types.DatasetGeospatialData, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []*types.DatasetGeospatialData
	if err := transaction.WithContext(dbc.Ctx).
		Where("dataset_metadata_id = ?", datasetMetadataID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Upsert replaces every projected column of the dataset's geospatial row.
// Nil fields overwrite stored values.
func (r *geospatialRepo) Upsert(dbc dbctx.Context, row *types.DatasetGeospatialData) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil || row.DatasetMetadataID == 0 {
		return fmt.Errorf("geospatial data has no dataset metadata id")
	}

	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "dataset_metadata_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"file_identifier",
				"abstract",
				"temporal_extent_start",
				"temporal_extent_end",
				"bounding_box",
				"contact",
				"metadata_standard",
				"standard_version",
				"status",
				"fields",
			}),
		}).
		Create(row).Error
}
