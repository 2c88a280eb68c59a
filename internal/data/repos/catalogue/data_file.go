package catalogue

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/platform/dbctx"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

type DataFileRepo interface {
	ListByDatasetMetadataID(dbc dbctx.Context, datasetMetadataID int) ([]*types.DataFile, error)
	// Save inserts row, or updates the existing row with the same file
	// identifier and download URL in place.
	Save(dbc dbctx.Context, row *types.DataFile) error
	CountDistinctDownloadURLs(dbc dbctx.Context) (int64, error)
}

type dataFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDataFileRepo(db *gorm.DB, baseLog *logger.Logger) DataFileRepo {
	repoLog := baseLog.With("repo", "DataFileRepo")
	return &dataFileRepo{db: db, log: repoLog}
}

func (r *dataFileRepo) ListByDatasetMetadataID(dbc dbctx.Context, datasetMetadataID int) ([]*types.DataFile, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.DataFile
	if err := transaction.WithContext(dbc.Ctx).
		Where("dataset_metadata_id = ?", datasetMetadataID).
		Order("data_file_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *dataFileRepo) Save(dbc dbctx.Context, row *types.DataFile) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil || row.FileIdentifier == "" {
		return fmt.Errorf("data file has no file identifier")
	}

	var existing []*types.DataFile
	if err := transaction.WithContext(dbc.Ctx).
		Where("file_identifier = ? AND download_url = ?", row.FileIdentifier, row.DownloadURL).
		Limit(1).
		Find(&existing).Error; err != nil {
		return err
	}

	now := time.Now().UTC()
	if len(existing) == 0 {
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
		return transaction.WithContext(dbc.Ctx).Create(row).Error
	}

	cur := existing[0]
	cur.DatasetMetadataID = row.DatasetMetadataID
	cur.Title = coalesce(row.Title, cur.Title)
	cur.Description = coalesce(row.Description, cur.Description)
	cur.Type = coalesce(row.Type, cur.Type)
	if row.FileType != "" {
		cur.FileType = row.FileType
	}
	cur.UpdatedAt = &now
	if err := transaction.WithContext(dbc.Ctx).Save(cur).Error; err != nil {
		return err
	}
	*row = *cur
	return nil
}

func (r *dataFileRepo) CountDistinctDownloadURLs(dbc dbctx.Context) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var n int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.DataFile{}).
		Distinct("download_url").
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func coalesce(next, cur *string) *string {
	if next != nil {
		return next
	}
	return cur
}
