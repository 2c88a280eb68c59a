package catalogue

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/platform/dbctx"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

type SupportingDocumentRepo interface {
	ListByDatasetMetadataID(dbc dbctx.Context, datasetMetadataID int) ([]*types.SupportingDocument, error)
	Save(dbc dbctx.Context, row *types.SupportingDocument) error
}

type supportingDocumentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSupportingDocumentRepo(db *gorm.DB, baseLog *logger.Logger) SupportingDocumentRepo {
	repoLog := baseLog.With("repo", "SupportingDocumentRepo")
	return &supportingDocumentRepo{db: db, log: repoLog}
}

func (r *supportingDocumentRepo) ListByDatasetMetadataID(dbc dbctx.Context, datasetMetadataID int) ([]*types.SupportingDocument, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SupportingDocument
	if err := transaction.WithContext(dbc.Ctx).
		Where("dataset_metadata_id = ?", datasetMetadataID).
		Order("supporting_document_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Save is keyed like DataFileRepo.Save on (file identifier, download URL).
func (r *supportingDocumentRepo) Save(dbc dbctx.Context, row *types.SupportingDocument) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil || row.FileIdentifier == "" {
		return fmt.Errorf("supporting document has no file identifier")
	}

	var existing []*types.SupportingDocument
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
	if row.DocumentType != "" {
		cur.DocumentType = row.DocumentType
	}
	cur.UpdatedAt = &now
	if err := transaction.WithContext(dbc.Ctx).Save(cur).Error; err != nil {
		return err
	}
	*row = *cur
	return nil
}
