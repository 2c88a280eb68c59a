package catalogue

import "time"

// MetadataDocument is the raw upstream text for one (identifier, format) pair.
type MetadataDocument struct {
	MetadataDocumentID int          `gorm:"column:metadata_document_id;primaryKey;autoIncrement" json:"metadata_document_id"`
	DatasetMetadataID  int          `gorm:"column:dataset_metadata_id;not null;index" json:"dataset_metadata_id"`
	FileIdentifier     string       `gorm:"column:file_identifier;not null;uniqueIndex:idx_metadata_document_key,priority:1" json:"file_identifier"`
	DocumentType       DocumentType `gorm:"column:document_type;not null;uniqueIndex:idx_metadata_document_key,priority:2" json:"document_type"`
	RawDocument        string       `gorm:"column:raw_document;type:text;not null" json:"raw_document"`
	ContentHash        string       `gorm:"column:content_hash" json:"content_hash"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (MetadataDocument) TableName() string { return "metadata_document" }
