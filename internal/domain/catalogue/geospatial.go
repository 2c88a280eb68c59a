package catalogue

import (
	"time"

	"gorm.io/datatypes"
)

// DatasetGeospatialData holds the ISO 19115 projection for a dataset.
// BoundingBox is the fixed-tag inline string built by FormatBoundingBox.
type DatasetGeospatialData struct {
	DatasetGeospatialDataID int            `gorm:"column:dataset_geospatial_data_id;primaryKey;autoIncrement" json:"dataset_geospatial_data_id"`
	DatasetMetadataID       int            `gorm:"column:dataset_metadata_id;not null;uniqueIndex" json:"dataset_metadata_id"`
	FileIdentifier          string         `gorm:"column:file_identifier;not null;index" json:"file_identifier"`
	Abstract                *string        `gorm:"column:abstract;type:text" json:"abstract,omitempty"`
	TemporalExtentStart     *time.Time     `gorm:"column:temporal_extent_start" json:"temporal_extent_start,omitempty"`
	TemporalExtentEnd       *time.Time     `gorm:"column:temporal_extent_end" json:"temporal_extent_end,omitempty"`
	BoundingBox             *string        `gorm:"column:bounding_box" json:"bounding_box,omitempty"`
	Contact                 *string        `gorm:"column:contact" json:"contact,omitempty"`
	MetadataStandard        *string        `gorm:"column:metadata_standard" json:"metadata_standard,omitempty"`
	StandardVersion         *string        `gorm:"column:standard_version" json:"standard_version,omitempty"`
	Status                  *string        `gorm:"column:status" json:"status,omitempty"`
	Fields                  datatypes.JSON `gorm:"column:fields" json:"fields,omitempty"`
}

func (DatasetGeospatialData) TableName() string { return "dataset_geospatial_data" }
