package catalogue

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/platform/dbctx"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

type DatasetMetadataRepo interface {
	GetByFileIdentifier(dbc dbctx.Context, fileIdentifier string) (*types.DatasetMetadata, error)
	GetByID(dbc dbctx.Context, datasetMetadataID int) (*types.DatasetMetadata, error)
	CreateWithQueue(dbc dbctx.Context, row *types.DatasetMetadata) error
	Update(dbc dbctx.Context, row *types.DatasetMetadata) error
	Search(dbc dbctx.Context, query string, limit int) ([]*types.DatasetMetadata, error)
	Count(dbc dbctx.Context) (int64, error)
}

type datasetMetadataRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDatasetMetadataRepo(db *gorm.DB, baseLog *logger.Logger) DatasetMetadataRepo {
	repoLog := baseLog.With("repo", "DatasetMetadataRepo")
	return &datasetMetadataRepo{db: db, log: repoLog}
}

func (r *datasetMetadataRepo) GetByFileIdentifier(dbc dbctx.Context, fileIdentifier string) (*types.DatasetMetadata, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []*types.DatasetMetadata
	if err := transaction.WithContext(dbc.Ctx).
		Where("file_identifier = ?", fileIdentifier).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *datasetMetadataRepo) GetByID(dbc dbctx.Context, datasetMetadataID int) (*types.DatasetMetadata, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []*types.DatasetMetadata
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

// CreateWithQueue inserts row together with its embedding queue row, so a
// metadata row never exists without one.
func (r *datasetMetadataRepo) CreateWithQueue(dbc dbctx.Context, row *types.DatasetMetadata) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return fmt.Errorf("nil dataset metadata")
	}

	now := time.Now().UTC()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	return transaction.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("insert dataset metadata: %w", err)
		}
		queue := &types.DatasetSupportingDocumentQueue{
			DatasetMetadataID: row.DatasetMetadataID,
			CreatedAt:         now,
		}
		if err := tx.Create(queue).Error; err != nil {
			return fmt.Errorf("insert embedding queue row: %w", err)
		}
		return nil
	})
}

func (r *datasetMetadataRepo) Update(dbc dbctx.Context, row *types.DatasetMetadata) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil || row.DatasetMetadataID == 0 {
		return fmt.Errorf("dataset metadata has no id")
	}
	return transaction.WithContext(dbc.Ctx).Save(row).Error
}

// Search matches query as a case-insensitive substring of the title,
// description or file identifier.
func (r *datasetMetadataRepo) Search(dbc dbctx.Context, query string, limit int) ([]*types.DatasetMetadata, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(dbc.Ctx).Model(&types.DatasetMetadata{})
	if needle := strings.ToLower(strings.TrimSpace(query)); needle != "" {
		pattern := "%" + escapeLike(needle) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\' OR LOWER(file_identifier) LIKE ? ESCAPE '\\'",
			pattern, pattern, pattern,
		)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var results []*types.DatasetMetadata
	if err := q.Order("dataset_metadata_id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *datasetMetadataRepo) Count(dbc dbctx.Context) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var n int64
	if err := transaction.WithContext(dbc.Ctx).Model(&types.DatasetMetadata{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
