package catalogue

import "time"

// SupportingDocumentTypeZIP is the only document type currently assigned.
const SupportingDocumentTypeZIP = "ZIP"

// SupportingDocument is an informational resource later fed to embedding.
type SupportingDocument struct {
	SupportingDocumentID int     `gorm:"column:supporting_document_id;primaryKey;autoIncrement" json:"supporting_document_id"`
	DatasetMetadataID    int     `gorm:"column:dataset_metadata_id;not null;index" json:"dataset_metadata_id"`
	FileIdentifier       string  `gorm:"column:file_identifier;not null;index:idx_supporting_document_key,priority:1" json:"file_identifier"`
	Title                *string `gorm:"column:title" json:"title,omitempty"`
	Description          *string `gorm:"column:description;type:text" json:"description,omitempty"`
	Type                 *string `gorm:"column:type" json:"type,omitempty"`
	DocumentType         string  `gorm:"column:document_type" json:"document_type"`
	DownloadURL          string  `gorm:"column:download_url;index:idx_supporting_document_key,priority:2" json:"download_url"`

	CreatedAt time.Time  `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
}

func (SupportingDocument) TableName() string { return "supporting_document" }
