package processor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/catalogue-etl/internal/data/repos"
	"github.com/yungbote/catalogue-etl/internal/data/repos/testutil"
	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/platform/dbctx"
)

const jsonRecord = `{
  "id": "1e7d5e08-9e24-471b-ae37-49b477f695e3",
  "title": "Countryside Survey soil data",
  "publicationDate": "2019-12-01",
  "relationships": [
    {"relation": "https://vocabs.ceh.ac.uk/eidc#memberOf", "target": "https://catalogue.ceh.ac.uk/id/8f7d9a50-0d8b-4a57-9d1b-2f0b1e1b6c44"}
  ],
  "onlineResources": [
    {"url": "https://data.example.org/a.zip", "name": "Data", "function": "download"},
    {"url": "https://data.example.org/waf/", "function": "fileAccess"},
    {"url": "https://data.example.org/guide.pdf", "name": "Guide", "function": "information"},
    {"url": "https://data.example.org/map", "function": "browse"},
    {"url": "https://data.example.org/order", "function": "order"}
  ]
}`

const isoRecord = `<gmd:MD_Metadata xmlns:gmd="http://www.isotc211.org/2005/gmd" xmlns:gco="http://www.isotc211.org/2005/gco">
  <gmd:abstract><gco:CharacterString>Soil physics</gco:CharacterString></gmd:abstract>
  <gmd:EX_GeographicBoundingBox>
    <gmd:westBoundLongitude><gco:Decimal>-3</gco:Decimal></gmd:westBoundLongitude>
    <gmd:eastBoundLongitude><gco:Decimal>0</gco:Decimal></gmd:eastBoundLongitude>
    <gmd:southBoundLatitude><gco:Decimal>51</gco:Decimal></gmd:southBoundLatitude>
    <gmd:northBoundLatitude><gco:Decimal>54</gco:Decimal></gmd:northBoundLatitude>
  </gmd:EX_GeographicBoundingBox>
</gmd:MD_Metadata>`

type fakeProcessor struct{ docType catalogue.DocumentType }

func (f fakeProcessor) Type() catalogue.DocumentType { return f.docType }

func (f fakeProcessor) Process(dbctx.Context, repos.Set, string, string) (*catalogue.DatasetMetadata, error) {
	return nil, nil
}

func setup(t *testing.T) (dbctx.Context, repos.Set) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	return testutil.Ctx(tx), repos.NewSet(db, testutil.Logger(t))
}

func TestRegistry(t *testing.T) {
	_, err := NewRegistry(
		fakeProcessor{docType: catalogue.DocumentTypeJSON},
		fakeProcessor{docType: catalogue.DocumentTypeJSON},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateProcessor))

	reg, err := NewDefaultRegistry(testutil.Logger(t))
	require.NoError(t, err)
	assert.Equal(t, catalogue.AllDocumentTypes(), reg.Types())
	p, ok := reg.Get(catalogue.DocumentTypeISO19115)
	require.True(t, ok)
	assert.Equal(t, catalogue.DocumentTypeISO19115, p.Type())
}

func TestProcessorsReturnNilWithoutMetadata(t *testing.T) {
	dbc, set := setup(t)
	reg, err := NewDefaultRegistry(testutil.Logger(t))
	require.NoError(t, err)

	for _, dt := range reg.Types() {
		p, _ := reg.Get(dt)
		dm, err := p.Process(dbc, set, "{}", "unknown")
		require.NoError(t, err, dt.String())
		assert.Nil(t, dm, dt.String())
	}
}

func TestJSONProcessorMergesAndPersists(t *testing.T) {
	dbc, set := setup(t)
	seeded := testutil.SeedDataset(t, context.Background(), dbc.Tx, "soil-1")
	p := NewJSONProcessor(testutil.Logger(t), nil)

	for run := 0; run < 2; run++ {
		dm, err := p.Process(dbc, set, jsonRecord, "soil-1")
		require.NoError(t, err)
		require.NotNil(t, dm)
		assert.Equal(t, seeded.DatasetMetadataID, dm.DatasetMetadataID)
	}

	stored, err := set.Metadata.GetByFileIdentifier(dbc, "soil-1")
	require.NoError(t, err)
	assert.Equal(t, "Countryside Survey soil data", stored.Title)
	assert.Equal(t, seeded.Description, stored.Description, "absent description keeps stored value")
	assert.Equal(t, "1e7d5e08-9e24-471b-ae37-49b477f695e3", stored.DatasetID.String())
	assert.Equal(t, 2019, stored.PublicationDate.Year())
	assert.True(t, stored.MetadataDate.IsZero())
	assert.NotNil(t, stored.UpdatedAt)

	rels, err := set.Relationships.ListByDatasetMetadataID(dbc, seeded.DatasetMetadataID)
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, "memberOf", rels[0].RelationshipType)

	files, err := set.DataFiles.ListByDatasetMetadataID(dbc, seeded.DatasetMetadataID)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, catalogue.FileTypeZIP, files[0].FileType)
	assert.Equal(t, catalogue.FileTypeWAF, files[1].FileType)

	docs, err := set.SupportingDocuments.ListByDatasetMetadataID(dbc, seeded.DatasetMetadataID)
	require.NoError(t, err)
	require.Len(t, docs, 2, "information and unrecognised functions become supporting documents")
}

func TestJSONProcessorNeverBlanksStoredValues(t *testing.T) {
	dbc, set := setup(t)
	seeded := testutil.SeedDataset(t, context.Background(), dbc.Tx, "keep-1")
	p := NewJSONProcessor(testutil.Logger(t), nil)

	_, err := p.Process(dbc, set, `{"title": "  ", "description": ""}`, "keep-1")
	require.NoError(t, err)

	stored, err := set.Metadata.GetByFileIdentifier(dbc, "keep-1")
	require.NoError(t, err)
	assert.Equal(t, seeded.Title, stored.Title)
	assert.Equal(t, seeded.Description, stored.Description)
	assert.Equal(t, seeded.DatasetID, stored.DatasetID)
}

func TestResourcePersisterIsolatesFailures(t *testing.T) {
	dbc, set := setup(t)
	seeded := testutil.SeedDataset(t, context.Background(), dbc.Tx, "res-1")
	rp := NewResourcePersister(testutil.Logger(t))

	sum := rp.Persist(dbc, set, "res-1", seeded.DatasetMetadataID, []catalogue.OnlineResource{
		{URL: "", Function: catalogue.ResourceFunctionDownload},
		{URL: "https://data.example.org/a.zip", Function: catalogue.ResourceFunctionDownload},
		{URL: "https://data.example.org/info", Function: catalogue.ResourceFunctionInformation},
		{URL: "https://data.example.org/map", Function: catalogue.ResourceFunctionBrowse},
		{URL: "https://data.example.org/odd", Function: catalogue.ResourceFunction(42)},
	})
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 1, sum.DataFiles)
	assert.Equal(t, 1, sum.SupportingDocuments)
	assert.Equal(t, 2, sum.Skipped)
	require.Len(t, sum.Outcomes, 5)
	assert.ErrorIs(t, sum.Outcomes[0].Err, errEmptyResourceURL)

	files, err := set.DataFiles.ListByDatasetMetadataID(dbc, seeded.DatasetMetadataID)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestISO19115Processor(t *testing.T) {
	dbc, set := setup(t)
	seeded := testutil.SeedDataset(t, context.Background(), dbc.Tx, "geo-1")
	p := NewISO19115Processor(testutil.Logger(t))

	dm, err := p.Process(dbc, set, "<!DOCTYPE html><html><body>Not found</body></html>", "geo-1")
	require.NoError(t, err)
	require.NotNil(t, dm)
	geo, err := set.Geospatial.GetByDatasetMetadataID(dbc, seeded.DatasetMetadataID)
	require.NoError(t, err)
	assert.Nil(t, geo, "html pages do not produce geospatial data")

	dm, err = p.Process(dbc, set, isoRecord, "geo-1")
	require.NoError(t, err)
	require.NotNil(t, dm)

	geo, err = set.Geospatial.GetByDatasetMetadataID(dbc, seeded.DatasetMetadataID)
	require.NoError(t, err)
	require.NotNil(t, geo)
	require.NotNil(t, geo.BoundingBox)
	assert.Equal(t,
		"<westBoundLongitude>-3</westBoundLongitude><eastBoundLongitude>0</eastBoundLongitude><southBoundLatitude>51</southBoundLatitude><northBoundLatitude>54</northBoundLatitude>",
		*geo.BoundingBox,
	)
	require.NotNil(t, geo.Abstract)
	assert.Equal(t, "Soil physics", *geo.Abstract)
	assert.Nil(t, geo.Contact)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(geo.Fields, &fields))
	assert.Equal(t, "Soil physics", fields["Abstract"])
}

func TestLooksLikeHTML(t *testing.T) {
	assert.True(t, looksLikeHTML("  <!DOCTYPE HTML><html>"))
	assert.True(t, looksLikeHTML("<HTML><body/>"))
	assert.False(t, looksLikeHTML(`<?xml version="1.0"?><gmd:MD_Metadata/>`))
}

func TestLinkedDataProcessorsReturnExisting(t *testing.T) {
	dbc, set := setup(t)
	testutil.SeedDataset(t, context.Background(), dbc.Tx, "ld-1")
	log := testutil.Logger(t)

	dm, err := NewJSONLDProcessor(log).Process(dbc, set, `{"@context": {}}`, "ld-1")
	require.NoError(t, err)
	require.NotNil(t, dm)

	dm, err = NewJSONLDProcessor(log).Process(dbc, set, `not json`, "ld-1")
	require.NoError(t, err)
	require.NotNil(t, dm)

	dm, err = NewTurtleProcessor(log).Process(dbc, set, `<https://x> <https://y> "z" .`, "ld-1")
	require.NoError(t, err)
	require.NotNil(t, dm)

	dm, err = NewTurtleProcessor(log).Process(dbc, set, `@@@`, "ld-1")
	require.NoError(t, err)
	require.NotNil(t, dm)
}
