package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalogue.DatasetMetadata{},
		&catalogue.MetadataDocument{},
		&catalogue.DatasetGeospatialData{},
		&catalogue.DataFile{},
		&catalogue.SupportingDocument{},
		&catalogue.DatasetRelationship{},
		&catalogue.DatasetSupportingDocumentQueue{},
	)
}
