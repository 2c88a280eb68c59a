package catalogue

import (
	"gorm.io/gorm"

	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

// Set bundles the catalogue repositories a processing run writes through.
type Set struct {
	Metadata            DatasetMetadataRepo
	Documents           MetadataDocumentRepo
	Geospatial          GeospatialRepo
	DataFiles           DataFileRepo
	SupportingDocuments SupportingDocumentRepo
	Relationships       RelationshipRepo
	Queue               QueueRepo
}

func NewSet(db *gorm.DB, baseLog *logger.Logger) Set {
	return Set{
		Metadata:            NewDatasetMetadataRepo(db, baseLog),
		Documents:           NewMetadataDocumentRepo(db, baseLog),
		Geospatial:          NewGeospatialRepo(db, baseLog),
		DataFiles:           NewDataFileRepo(db, baseLog),
		SupportingDocuments: NewSupportingDocumentRepo(db, baseLog),
		Relationships:       NewRelationshipRepo(db, baseLog),
		Queue:               NewQueueRepo(db, baseLog),
	}
}
