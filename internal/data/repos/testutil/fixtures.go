package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/catalogue-etl/internal/domain/catalogue"
)

// SeedDataset inserts a metadata row and its queue row.
func SeedDataset(tb testing.TB, ctx context.Context, tx *gorm.DB, fileIdentifier string) *types.DatasetMetadata {
	tb.Helper()
	now := time.Now().UTC()
	dm := &types.DatasetMetadata{
		DatasetID:      uuid.New(),
		FileIdentifier: fileIdentifier,
		Title:          "title " + fileIdentifier,
		Description:    "description " + fileIdentifier,
		CreatedAt:      now,
	}
	if err := tx.WithContext(ctx).Create(dm).Error; err != nil {
		tb.Fatalf("seed dataset metadata: %v", err)
	}
	q := &types.DatasetSupportingDocumentQueue{
		DatasetMetadataID: dm.DatasetMetadataID,
		CreatedAt:         now,
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed queue row: %v", err)
	}
	return dm
}

func PtrString(v string) *string { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
