package catalogue

import "time"

// DatasetSupportingDocumentQueue is the hand-off row read by the embedding
// subsystem. Exactly one exists per DatasetMetadata.
type DatasetSupportingDocumentQueue struct {
	DatasetSupportingDocumentQueueID    int    `gorm:"column:dataset_supporting_document_queue_id;primaryKey;autoIncrement" json:"dataset_supporting_document_queue_id"`
	DatasetMetadataID                   int    `gorm:"column:dataset_metadata_id;not null;uniqueIndex" json:"dataset_metadata_id"`
	ProcessedTitleForEmbedding          bool   `gorm:"column:processed_title_for_embedding;not null;default:false" json:"processed_title_for_embedding"`
	ProcessedAbstractForEmbedding       bool   `gorm:"column:processed_abstract_for_embedding;not null;default:false" json:"processed_abstract_for_embedding"`
	ProcessedSupportingDocsForEmbedding bool   `gorm:"column:processed_supporting_docs_for_embedding;not null;default:false" json:"processed_supporting_docs_for_embedding"`
	IsProcessing                        bool   `gorm:"column:is_processing;not null;default:false" json:"is_processing"`
	LastProcessedHash                   string `gorm:"column:last_processed_hash" json:"last_processed_hash"`

	CreatedAt     time.Time  `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt     *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
	LastUpdatedAt *time.Time `gorm:"column:last_updated_at" json:"last_updated_at,omitempty"`
}

func (DatasetSupportingDocumentQueue) TableName() string { return "dataset_supporting_document_queue" }

// EmbeddingComplete reports whether all three embedding passes are done.
func (q *DatasetSupportingDocumentQueue) EmbeddingComplete() bool {
	return q != nil &&
		q.ProcessedTitleForEmbedding &&
		q.ProcessedAbstractForEmbedding &&
		q.ProcessedSupportingDocsForEmbedding
}

// ResetEmbedding marks every embedding pass as outstanding.
func (q *DatasetSupportingDocumentQueue) ResetEmbedding() {
	q.ProcessedTitleForEmbedding = false
	q.ProcessedAbstractForEmbedding = false
	q.ProcessedSupportingDocsForEmbedding = false
}
