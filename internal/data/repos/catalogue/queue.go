package catalogue

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/platform/dbctx"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

type QueueRepo interface {
	GetByDatasetMetadataID(dbc dbctx.Context, datasetMetadataID int) (*types.DatasetSupportingDocumentQueue, error)
	Create(dbc dbctx.Context, row *types.DatasetSupportingDocumentQueue) error
	Update(dbc dbctx.Context, row *types.DatasetSupportingDocumentQueue) error
	// ListPending returns rows not being processed with at least one
	// embedding pass outstanding.
	ListPending(dbc dbctx.Context) ([]*types.DatasetSupportingDocumentQueue, error)
	MarkEmbedded(dbc dbctx.Context, datasetMetadataID int) error
}

type queueRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQueueRepo(db *gorm.DB, baseLog *logger.Logger) QueueRepo {
	repoLog := baseLog.With("repo", "QueueRepo")
	return &queueRepo{db: db, log: repoLog}
}

func (r *queueRepo) GetByDatasetMetadataID(dbc dbctx.Context, datasetMetadataID int) (*types.DatasetSupportingDocumentQueue, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []*types.DatasetSupportingDocumentQueue
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

func (r *queueRepo) Create(dbc dbctx.Context, row *types.DatasetSupportingDocumentQueue) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return transaction.WithContext(dbc.Ctx).Create(row).Error
}

func (r *queueRepo) Update(dbc dbctx.Context, row *types.DatasetSupportingDocumentQueue) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil || row.DatasetSupportingDocumentQueueID == 0 {
		return fmt.Errorf("queue row has no id")
	}
	return transaction.WithContext(dbc.Ctx).Save(row).Error
}

func (r *queueRepo) ListPending(dbc dbctx.Context) ([]*types.DatasetSupportingDocumentQueue, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.DatasetSupportingDocumentQueue
	if err := transaction.WithContext(dbc.Ctx).
		Where("is_processing = ?", false).
		Where(
			"processed_title_for_embedding = ? OR processed_abstract_for_embedding = ? OR processed_supporting_docs_for_embedding = ?",
			false, false, false,
		).
		Order("dataset_metadata_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// MarkEmbedded sets all three completion flags, as the embedding subsystem
// does once it has finished a dataset.
func (r *queueRepo) MarkEmbedded(dbc dbctx.Context, datasetMetadataID int) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now().UTC()
	return transaction.WithContext(dbc.Ctx).
		Model(&types.DatasetSupportingDocumentQueue{}).
		Where("dataset_metadata_id = ?", datasetMetadataID).
		Updates(map[string]interface{}{
			"processed_title_for_embedding":           true,
			"processed_abstract_for_embedding":        true,
			"processed_supporting_docs_for_embedding": true,
			"is_processing":                           false,
			"last_updated_at":                         now,
		}).Error
}
