package catalogue

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/yungbote/catalogue-etl/internal/data/repos/testutil"
	types "github.com/yungbote/catalogue-etl/internal/domain/catalogue"
)

func TestDataFileRepoSaveDeduplicates(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.Ctx(tx)
	repo := NewDataFileRepo(db, testutil.Logger(t))
	dm := testutil.SeedDataset(t, ctx, tx, "files-1")

	first := &types.DataFile{
		DatasetMetadataID: dm.DatasetMetadataID,
		FileIdentifier:    "files-1",
		Title:             testutil.PtrString("old"),
		Description:       testutil.PtrString("kept"),
		FileType:          types.FileTypeZIP,
		DownloadURL:       "https://example.org/a.zip",
	}
	require.NoError(t, repo.Save(dbc, first))

	second := &types.DataFile{
		DatasetMetadataID: dm.DatasetMetadataID,
		FileIdentifier:    "files-1",
		Title:             testutil.PtrString("new"),
		FileType:          types.FileTypeWAF,
		DownloadURL:       "https://example.org/a.zip",
	}
	require.NoError(t, repo.Save(dbc, second))
	assert.Equal(t, first.DataFileID, second.DataFileID)

	other := &types.DataFile{
		DatasetMetadataID: dm.DatasetMetadataID,
		FileIdentifier:    "files-1",
		FileType:          types.FileTypeZIP,
		DownloadURL:       "https://example.org/b.zip",
	}
	require.NoError(t, repo.Save(dbc, other))

	rows, err := repo.ListByDatasetMetadataID(dbc, dm.DatasetMetadataID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "new", *rows[0].Title)
	assert.Equal(t, "kept", *rows[0].Description)
	assert.Equal(t, types.FileTypeWAF, rows[0].FileType)
	assert.NotNil(t, rows[0].UpdatedAt)
	assert.Nil(t, rows[1].UpdatedAt)

	n, err := repo.CountDistinctDownloadURLs(dbc)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSupportingDocumentRepoSaveDeduplicates(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.Ctx(tx)
	repo := NewSupportingDocumentRepo(db, testutil.Logger(t))
	dm := testutil.SeedDataset(t, ctx, tx, "docs-1")

	for _, title := range []string{"Guide", "Guide (revised)"} {
		require.NoError(t, repo.Save(dbc, &types.SupportingDocument{
			DatasetMetadataID: dm.DatasetMetadataID,
			FileIdentifier:    "docs-1",
			Title:             testutil.PtrString(title),
			DocumentType:      types.SupportingDocumentTypeZIP,
			DownloadURL:       "https://example.org/guide.pdf",
		}))
	}

	rows, err := repo.ListByDatasetMetadataID(dbc, dm.DatasetMetadataID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Guide (revised)", *rows[0].Title)
	assert.Equal(t, types.SupportingDocumentTypeZIP, rows[0].DocumentType)
}

func TestRelationshipRepoSaveRefreshesURI(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.Ctx(tx)
	repo := NewRelationshipRepo(db, testutil.Logger(t))
	dm := testutil.SeedDataset(t, ctx, tx, "rel-1")
	related := uuid.New()

	require.NoError(t, repo.Save(dbc, &types.DatasetRelationship{
		DatasetMetadataID: dm.DatasetMetadataID,
		DatasetID:         related,
		RelationshipType:  "memberOf",
		RelationshipURI:   testutil.PtrString("https://example.org/old"),
	}))
	require.NoError(t, repo.Save(dbc, &types.DatasetRelationship{
		DatasetMetadataID: dm.DatasetMetadataID,
		DatasetID:         related,
		RelationshipType:  "memberOf",
		RelationshipURI:   testutil.PtrString("https://example.org/new"),
	}))
	require.NoError(t, repo.Save(dbc, &types.DatasetRelationship{
		DatasetMetadataID: dm.DatasetMetadataID,
		DatasetID:         related,
		RelationshipType:  "supersedes",
	}))

	rows, err := repo.ListByDatasetMetadataID(dbc, dm.DatasetMetadataID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "https://example.org/new", *rows[0].RelationshipURI)
	assert.Equal(t, "supersedes", rows[1].RelationshipType)
}

func TestGeospatialRepoUpsertReplaces(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.Ctx(tx)
	repo := NewGeospatialRepo(db, testutil.Logger(t))
	dm := testutil.SeedDataset(t, ctx, tx, "geo-1")

	require.NoError(t, repo.Upsert(dbc, &types.DatasetGeospatialData{
		DatasetMetadataID: dm.DatasetMetadataID,
		FileIdentifier:    "geo-1",
		Abstract:          testutil.PtrString("first"),
		Contact:           testutil.PtrString("UKCEH"),
		Fields:            datatypes.JSON(`{"Abstract":"first"}`),
	}))
	require.NoError(t, repo.Upsert(dbc, &types.DatasetGeospatialData{
		DatasetMetadataID: dm.DatasetMetadataID,
		FileIdentifier:    "geo-1",
		Abstract:          testutil.PtrString("second"),
	}))

	got, err := repo.GetByDatasetMetadataID(dbc, dm.DatasetMetadataID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", *got.Abstract)
	assert.Nil(t, got.Contact)

	var n int64
	require.NoError(t, tx.Model(&types.DatasetGeospatialData{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestQueueRepoListPending(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.Ctx(tx)
	repo := NewQueueRepo(db, testutil.Logger(t))

	pending := testutil.SeedDataset(t, ctx, tx, "q-pending")
	done := testutil.SeedDataset(t, ctx, tx, "q-done")
	busy := testutil.SeedDataset(t, ctx, tx, "q-busy")

	require.NoError(t, repo.MarkEmbedded(dbc, done.DatasetMetadataID))

	row, err := repo.GetByDatasetMetadataID(dbc, busy.DatasetMetadataID)
	require.NoError(t, err)
	row.IsProcessing = true
	require.NoError(t, repo.Update(dbc, row))

	rows, err := repo.ListPending(dbc)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, pending.DatasetMetadataID, rows[0].DatasetMetadataID)

	doneRow, err := repo.GetByDatasetMetadataID(dbc, done.DatasetMetadataID)
	require.NoError(t, err)
	assert.True(t, doneRow.EmbeddingComplete())
}
