package catalogue

import (
	"time"

	"github.com/google/uuid"
)

// DatasetMetadata is the harvested root row for one catalogue identifier.
type DatasetMetadata struct {
	DatasetMetadataID int       `gorm:"column:dataset_metadata_id;primaryKey;autoIncrement" json:"dataset_metadata_id"`
	DatasetID         uuid.UUID `gorm:"column:dataset_id;type:uuid" json:"dataset_id"`
	FileIdentifier    string    `gorm:"column:file_identifier;not null;uniqueIndex" json:"file_identifier"`
	Title             string    `gorm:"column:title" json:"title"`
	Description       string    `gorm:"column:description" json:"description"`
	PublicationDate   time.Time `gorm:"column:publication_date" json:"publication_date"`
	MetadataDate      time.Time `gorm:"column:metadata_date" json:"metadata_date"`

	CreatedAt time.Time  `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
}

func (DatasetMetadata) TableName() string { return "dataset_metadata" }
