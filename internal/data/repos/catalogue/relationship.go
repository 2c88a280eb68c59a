package catalogue

import (
	"gorm.io/gorm"

	types "github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/platform/dbctx"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

type RelationshipRepo interface {
	ListByDatasetMetadataID(dbc dbctx.Context, datasetMetadataID int) ([]*types.DatasetRelationship, error)
	// Save inserts row unless one with the same (dataset metadata id,
	// dataset id, relationship type) exists, in which case only the URI is
	// refreshed.
	Save(dbc dbctx.Context, row *types.DatasetRelationship) error
}

type relationshipRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRelationshipRepo(db *gorm.DB, baseLog *logger.Logger) RelationshipRepo {
	repoLog := baseLog.With("repo", "RelationshipRepo")
	return &relationshipRepo{db: db, log: repoLog}
}

func (r *relationshipRepo) ListByDatasetMetadataID(dbc dbctx.Context, datasetMetadataID int) ([]*types.DatasetRelationship, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.DatasetRelationship
	if err := transaction.WithContext(dbc.Ctx).
		Where("dataset_metadata_id = ?", datasetMetadataID).
		Order("dataset_relationship_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *relationshipRepo) Save(dbc dbctx.Context, row *types.DatasetRelationship) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var existing []*types.DatasetRelationship
	if err := transaction.WithContext(dbc.Ctx).
		Where("dataset_metadata_id = ? AND dataset_id = ? AND relationship_type = ?",
			row.DatasetMetadataID, row.DatasetID, row.RelationshipType).
		Limit(1).
		Find(&existing).Error; err != nil {
		return err
	}
	if len(existing) == 0 {
		return transaction.WithContext(dbc.Ctx).Create(row).Error
	}

	cur := existing[0]
	if sameString(cur.RelationshipURI, row.RelationshipURI) {
		*row = *cur
		return nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.DatasetRelationship{}).
		Where("dataset_relationship_id = ?", cur.DatasetRelationshipID).
		Update("relationship_uri", row.RelationshipURI).Error; err != nil {
		return err
	}
	row.DatasetRelationshipID = cur.DatasetRelationshipID
	return nil
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
