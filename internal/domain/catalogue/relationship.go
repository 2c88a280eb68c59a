package catalogue

import "github.com/google/uuid"

// DatasetRelationship links a dataset to another catalogue dataset.
type DatasetRelationship struct {
	DatasetRelationshipID int       `gorm:"column:dataset_relationship_id;primaryKey;autoIncrement" json:"dataset_relationship_id"`
	DatasetMetadataID     int       `gorm:"column:dataset_metadata_id;not null;index:idx_dataset_relationship_key,priority:1" json:"dataset_metadata_id"`
	DatasetID             uuid.UUID `gorm:"column:dataset_id;type:uuid;not null;index:idx_dataset_relationship_key,priority:2" json:"dataset_id"`
	RelationshipType      string    `gorm:"column:relationship_type;not null;index:idx_dataset_relationship_key,priority:3" json:"relationship_type"`
	RelationshipURI       *string   `gorm:"column:relationship_uri" json:"relationship_uri,omitempty"`
}

func (DatasetRelationship) TableName() string { return "dataset_relationship" }
