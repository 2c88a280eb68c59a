package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/catalogue-etl/internal/data/repos/catalogue"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

type Set = catalogue.Set

type DatasetMetadataRepo = catalogue.DatasetMetadataRepo
type MetadataDocumentRepo = catalogue.MetadataDocumentRepo
type GeospatialRepo = catalogue.GeospatialRepo
type DataFileRepo = catalogue.DataFileRepo
type SupportingDocumentRepo = catalogue.SupportingDocumentRepo
type RelationshipRepo = catalogue.RelationshipRepo
type QueueRepo = catalogue.QueueRepo

func NewSet(db *gorm.DB, baseLog *logger.Logger) Set { return catalogue.NewSet(db, baseLog) }

func NewDatasetMetadataRepo(db *gorm.DB, baseLog *logger.Logger) DatasetMetadataRepo {
	return catalogue.NewDatasetMetadataRepo(db, baseLog)
}
func NewMetadataDocumentRepo(db *gorm.DB, baseLog *logger.Logger) MetadataDocumentRepo {
	return catalogue.NewMetadataDocumentRepo(db, baseLog)
}
func NewGeospatialRepo(db *gorm.DB, baseLog *logger.Logger) GeospatialRepo {
	return catalogue.NewGeospatialRepo(db, baseLog)
}
func NewDataFileRepo(db *gorm.DB, baseLog *logger.Logger) DataFileRepo {
	return catalogue.NewDataFileRepo(db, baseLog)
}
func NewSupportingDocumentRepo(db *gorm.DB, baseLog *logger.Logger) SupportingDocumentRepo {
	return catalogue.NewSupportingDocumentRepo(db, baseLog)
}
func NewRelationshipRepo(db *gorm.DB, baseLog *logger.Logger) RelationshipRepo {
	return catalogue.NewRelationshipRepo(db, baseLog)
}
func NewQueueRepo(db *gorm.DB, baseLog *logger.Logger) QueueRepo {
	return catalogue.NewQueueRepo(db, baseLog)
}
