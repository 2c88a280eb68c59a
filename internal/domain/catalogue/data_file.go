package catalogue

import "time"

const (
	FileTypeZIP = "ZIP"
	FileTypeWAF = "WAF"
)

// DataFile is a downloadable or file-access resource of a dataset.
type DataFile struct {
	DataFileID        int     `gorm:"column:data_file_id;primaryKey;autoIncrement" json:"data_file_id"`
	DatasetMetadataID int     `gorm:"column:dataset_metadata_id;not null;index" json:"dataset_metadata_id"`
	FileIdentifier    string  `gorm:"column:file_identifier;not null;index:idx_data_file_key,priority:1" json:"file_identifier"`
	Title             *string `gorm:"column:title" json:"title,omitempty"`
	Description       *string `gorm:"column:description;type:text" json:"description,omitempty"`
	Type              *string `gorm:"column:type" json:"type,omitempty"`
	FileType          string  `gorm:"column:file_type" json:"file_type"`
	DownloadURL       string  `gorm:"column:download_url;index:idx_data_file_key,priority:2" json:"download_url"`

	CreatedAt time.Time  `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
}

func (DataFile) TableName() string { return "data_file" }
