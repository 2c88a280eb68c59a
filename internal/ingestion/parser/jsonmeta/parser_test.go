package jsonmeta

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

const sample = `{
  "id": "1e7d5e08-9e24-471b-ae37-49b477f695e3",
  "title": "Countryside Survey soil data",
  "description": "Soil physical properties across Great Britain",
  "metadataDate": "2023-04-05T10:11:12",
  "publicationDate": "2019-12-01",
  "relationships": [
    {"relation": "https://vocabs.ceh.ac.uk/eidc#memberOf", "target": "https://catalogue.ceh.ac.uk/id/8f7d9a50-0d8b-4a57-9d1b-2f0b1e1b6c44"},
    {"relation": "supersedes", "target": "b2c4e7a0-5f3e-4a1f-8c35-5e0c1c9d2a11"},
    {"relation": "https://vocabs.ceh.ac.uk/eidc#related", "target": "https://example.org/not-a-uuid"}
  ],
  "onlineResources": [
    {"url": "https://data.example.org/a.zip", "name": "Data", "function": "DOWNLOAD"},
    {"url": "https://data.example.org/waf/", "function": "fileAccess", "type": "WAF"},
    {"url": "https://data.example.org/guide.pdf", "name": "Guide", "description": "User guide", "function": "information"},
    {"url": "https://data.example.org/map", "function": "browse"},
    {"url": "https://data.example.org/other", "function": "order"},
    {"url": "https://data.example.org/nofn"}
  ]
}`

func TestDecode(t *testing.T) {
	doc := NewParser(logger.Nop()).Decode(sample, "abc")

	md := doc.Metadata
	require.NotNil(t, md)
	assert.Equal(t, "abc", md.FileIdentifier)
	assert.Equal(t, uuid.MustParse("1e7d5e08-9e24-471b-ae37-49b477f695e3"), md.DatasetID)
	assert.Equal(t, "Countryside Survey soil data", md.Title)
	assert.Equal(t, "Soil physical properties across Great Britain", md.Description)
	assert.True(t, md.MetadataDate.Equal(time.Date(2023, 4, 5, 10, 11, 12, 0, time.UTC)))
	assert.True(t, md.PublicationDate.Equal(time.Date(2019, 12, 1, 0, 0, 0, 0, time.UTC)))

	require.Len(t, doc.Relationships, 2)
	assert.Equal(t, uuid.MustParse("8f7d9a50-0d8b-4a57-9d1b-2f0b1e1b6c44"), doc.Relationships[0].DatasetID)
	assert.Equal(t, "memberOf", doc.Relationships[0].RelationshipType)
	require.NotNil(t, doc.Relationships[0].RelationshipURI)
	assert.Equal(t, "https://vocabs.ceh.ac.uk/eidc#memberOf", *doc.Relationships[0].RelationshipURI)
	assert.Equal(t, "supersedes", doc.Relationships[1].RelationshipType)

	require.Len(t, doc.OnlineResources, 6)
	want := []catalogue.ResourceFunction{
		catalogue.ResourceFunctionDownload,
		catalogue.ResourceFunctionFileAccess,
		catalogue.ResourceFunctionInformation,
		catalogue.ResourceFunctionBrowse,
		catalogue.ResourceFunctionInformation,
		catalogue.ResourceFunctionInformation,
	}
	for i, res := range doc.OnlineResources {
		assert.Equal(t, want[i], res.Function, "resource %d (%s)", i, res.URL)
	}
	assert.Equal(t, "Data", *doc.OnlineResources[0].Name)
	assert.Nil(t, doc.OnlineResources[0].Description)
	assert.Equal(t, "WAF", *doc.OnlineResources[1].Type)
	assert.Equal(t, "User guide", *doc.OnlineResources[2].Description)
}

func TestDecodeDefaults(t *testing.T) {
	p := NewParser(logger.Nop())

	md := p.Parse(`{"id": "nope", "metadataDate": "someday", "title": 42}`, "x")
	assert.Equal(t, uuid.Nil, md.DatasetID)
	assert.True(t, md.MetadataDate.IsZero())
	assert.True(t, md.PublicationDate.IsZero())
	assert.Empty(t, md.Title)

	assert.Empty(t, p.Relationships(`{}`, "x"))
	assert.Empty(t, p.OnlineResources(`{}`, "x"))
}

func TestDecodeMalformed(t *testing.T) {
	doc := NewParser(logger.Nop()).Decode(`{"title": `, "broken")
	require.NotNil(t, doc.Metadata)
	assert.Equal(t, "broken", doc.Metadata.FileIdentifier)
	assert.Empty(t, doc.Metadata.Title)
	assert.Empty(t, doc.Relationships)
	assert.Empty(t, doc.OnlineResources)
}
