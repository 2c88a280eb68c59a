package catalogue

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/platform/dbctx"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

type MetadataDocumentRepo interface {
	ListByFileIdentifier(dbc dbctx.Context, fileIdentifier string) ([]*types.MetadataDocument, error)
	Upsert(dbc dbctx.Context, doc *types.MetadataDocument) error
}

type metadataDocumentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMetadataDocumentRepo(db *gorm.DB, baseLog *logger.Logger) MetadataDocumentRepo {
	repoLog := baseLog.With("repo", "MetadataDocumentRepo")
	return &metadataDocumentRepo{db: db, log: repoLog}
}

func (r *metadataDocumentRepo) ListByFileIdentifier(dbc dbctx.Context, fileIdentifier string) ([]*types.MetadataDocument, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MetadataDocument
	if err := transaction.WithContext(dbc.Ctx).
		Where("file_identifier = ?", fileIdentifier).
		Order("document_type ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Upsert writes the raw document keyed by (file identifier, document type).
// Existing rows keep their id and created_at.
func (r *metadataDocumentRepo) Upsert(dbc dbctx.Context, doc *types.MetadataDocument) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if doc == nil || doc.FileIdentifier == "" {
		return fmt.Errorf("metadata document has no file identifier")
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "file_identifier"}, {Name: "document_type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"dataset_metadata_id", "raw_document", "content_hash",
			}),
		}).
		Create(doc).Error
}
