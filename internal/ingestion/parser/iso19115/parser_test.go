package iso19115

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

const doc19139 = `<?xml version="1.0" encoding="UTF-8"?>
<!-- harvested record -->
<gmd:MD_Metadata xmlns:gmd="http://www.isotc211.org/2005/gmd"
    xmlns:gco="http://www.isotc211.org/2005/gco"
    xmlns:gmx="http://www.isotc211.org/2005/gmx"
    xmlns:gml="http://www.opengis.net/gml/3.2"
    xmlns:xlink="http://www.w3.org/1999/xlink">
  <gmd:contact>
    <gmd:CI_ResponsibleParty>
      <gmd:organisationName>
        <gco:CharacterString>UK Centre for Ecology &amp; Hydrology</gco:CharacterString>
      </gmd:organisationName>
    </gmd:CI_ResponsibleParty>
  </gmd:contact>
  <gmd:metadataStandardName>
    <gmx:Anchor xlink:href="http://vocab.nerc.ac.uk/collection/M25/current/GEMINI/">UK GEMINI</gmx:Anchor>
  </gmd:metadataStandardName>
  <gmd:metadataStandardVersion>
    <gco:CharacterString>2.3</gco:CharacterString>
  </gmd:metadataStandardVersion>
  <gmd:identificationInfo>
    <gmd:MD_DataIdentification>
      <gmd:abstract>
        <gco:CharacterString>  Daily river flow observations.  </gco:CharacterString>
      </gmd:abstract>
      <gmd:status>
        <gmd:MD_ProgressCode codeList="#MD_ProgressCode" codeListValue="completed">completed</gmd:MD_ProgressCode>
      </gmd:status>
      <gmd:extent>
        <gmd:EX_Extent>
          <gmd:geographicElement>
            <gmd:EX_GeographicBoundingBox>
              <gmd:westBoundLongitude><gco:Decimal>-3</gco:Decimal></gmd:westBoundLongitude>
              <gmd:eastBoundLongitude><gco:Decimal>0</gco:Decimal></gmd:eastBoundLongitude>
              <gmd:southBoundLatitude><gco:Decimal>51</gco:Decimal></gmd:southBoundLatitude>
              <gmd:northBoundLatitude><gco:Decimal>54</gco:Decimal></gmd:northBoundLatitude>
            </gmd:EX_GeographicBoundingBox>
          </gmd:geographicElement>
          <gmd:temporalElement>
            <gmd:EX_TemporalExtent>
              <gmd:extent>
                <gml:TimePeriod gml:id="tp1">
                  <gml:beginPosition>2010-01-01</gml:beginPosition>
                  <gml:endPosition>2015-06-30T12:00:00+01:00</gml:endPosition>
                </gml:TimePeriod>
              </gmd:extent>
            </gmd:EX_TemporalExtent>
          </gmd:temporalElement>
        </gmd:EX_Extent>
      </gmd:extent>
    </gmd:MD_DataIdentification>
  </gmd:identificationInfo>
</gmd:MD_Metadata>`

const doc19115_3 = `<?xml version="1.0" encoding="UTF-8"?>
<mdb:MD_Metadata xmlns:mdb="http://standards.iso.org/iso/19115/-3/mdb/2.0"
    xmlns:mri="http://standards.iso.org/iso/19115/-3/mri/1.0"
    xmlns:gex="http://standards.iso.org/iso/19115/-3/gex/1.0"
    xmlns:cit="http://standards.iso.org/iso/19115/-3/cit/2.0"
    xmlns:gco="http://standards.iso.org/iso/19115/-3/gco/1.0"
    xmlns:gcx="http://standards.iso.org/iso/19115/-3/gcx/1.0"
    xmlns:xlink="http://www.w3.org/1999/xlink">
  <mdb:identificationInfo>
    <mri:MD_DataIdentification>
      <mri:abstract>
        <gcx:Anchor xlink:href="https://example.org/abstract" xlink:title="Soil moisture survey"></gcx:Anchor>
      </mri:abstract>
      <mri:pointOfContact>
        <cit:CI_Responsibility>
          <cit:party>
            <cit:CI_Organisation>
              <cit:name><gco:CharacterString>British Geological Survey</gco:CharacterString></cit:name>
            </cit:CI_Organisation>
          </cit:party>
        </cit:CI_Responsibility>
      </mri:pointOfContact>
      <mri:status>
        <mri:MD_ProgressCode>onGoing</mri:MD_ProgressCode>
      </mri:status>
      <mri:extent>
        <gex:EX_Extent>
          <gex:geographicElement>
            <gex:EX_GeographicBoundingBox>
              <gex:westBoundLongitude><gco:Decimal>-3.0</gco:Decimal></gex:westBoundLongitude>
              <gex:eastBoundLongitude><gco:Decimal>0.00</gco:Decimal></gex:eastBoundLongitude>
              <gex:southBoundLatitude><gco:Decimal>51</gco:Decimal></gex:southBoundLatitude>
              <gex:northBoundLatitude><gco:Decimal>54.0</gco:Decimal></gex:northBoundLatitude>
            </gex:EX_GeographicBoundingBox>
          </gex:geographicElement>
        </gex:EX_Extent>
      </mri:extent>
    </mri:MD_DataIdentification>
  </mdb:identificationInfo>
</mdb:MD_Metadata>`

func newParser() *Parser {
	return NewParser(logger.Nop())
}

func TestDetectGeneration(t *testing.T) {
	p := newParser()
	assert.Equal(t, GenerationISO19139, p.Parse(doc19139).Generation)
	assert.Equal(t, GenerationISO19115_3, p.Parse(doc19115_3).Generation)
	assert.Equal(t, GenerationISO19139, p.Parse(`<root xmlns="urn:unknown"/>`).Generation)
}

func TestBoundingBoxIsIdenticalAcrossGenerations(t *testing.T) {
	p := newParser()
	want := catalogue.BoundingBox{
		WestBoundLongitude: decimal.NewFromInt(-3),
		EastBoundLongitude: decimal.NewFromInt(0),
		SouthBoundLatitude: decimal.NewFromInt(51),
		NorthBoundLatitude: decimal.NewFromInt(54),
	}

	older := p.ExtractBoundingBox(doc19139)
	newer := p.ExtractBoundingBox(doc19115_3)
	require.NotNil(t, older)
	require.NotNil(t, newer)
	assert.True(t, older.Equal(want), "19139 bbox = %+v", older)
	assert.True(t, newer.Equal(want), "19115-3 bbox = %+v", newer)
	assert.True(t, older.Equal(*newer))
}

func TestBoundingBoxUnparsableCoordinateIsZero(t *testing.T) {
	doc := `<gmd:MD_Metadata xmlns:gmd="http://www.isotc211.org/2005/gmd" xmlns:gco="http://www.isotc211.org/2005/gco">
  <gmd:EX_GeographicBoundingBox>
    <gmd:westBoundLongitude><gco:Decimal>abc</gco:Decimal></gmd:westBoundLongitude>
    <gmd:eastBoundLongitude><gco:Decimal>1.5</gco:Decimal></gmd:eastBoundLongitude>
    <gmd:southBoundLatitude><gco:Decimal></gco:Decimal></gmd:southBoundLatitude>
  </gmd:EX_GeographicBoundingBox>
</gmd:MD_Metadata>`
	bbox := newParser().ExtractBoundingBox(doc)
	require.NotNil(t, bbox)
	assert.True(t, bbox.WestBoundLongitude.IsZero())
	assert.True(t, bbox.EastBoundLongitude.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, bbox.SouthBoundLatitude.IsZero())
	assert.True(t, bbox.NorthBoundLatitude.IsZero())
}

func TestBoundingBoxWrongGenerationNamespaceIsIgnored(t *testing.T) {
	// A 19139 root with a gex box: the 19139 accessor does not see it.
	doc := `<gmd:MD_Metadata xmlns:gmd="http://www.isotc211.org/2005/gmd" xmlns:gex="http://standards.iso.org/iso/19115/-3/gex/1.0">
  <gex:EX_GeographicBoundingBox/>
</gmd:MD_Metadata>`
	assert.Nil(t, newParser().ExtractBoundingBox(doc))
}

func TestExtractFields19139(t *testing.T) {
	fields := newParser().ExtractFields(doc19139)
	assert.Equal(t, "Daily river flow observations.", fields[FieldAbstract])
	assert.Equal(t, "UK Centre for Ecology & Hydrology", fields[FieldContact])
	assert.Equal(t, "UK GEMINI", fields[FieldMetadataStandard])
	assert.Equal(t, "2.3", fields[FieldStandardVersion])
	assert.Equal(t, "completed", fields[FieldStatus])
}

func TestExtractFields19115_3(t *testing.T) {
	fields := newParser().ExtractFields(doc19115_3)
	assert.Equal(t, "Soil moisture survey", fields[FieldAbstract], "anchor falls back to xlink:title")
	assert.Equal(t, "British Geological Survey", fields[FieldContact])
	assert.Equal(t, "onGoing", fields[FieldStatus], "status falls back to element text")
	_, ok := fields[FieldMetadataStandard]
	assert.False(t, ok)
}

func TestExtractFieldsDirectText(t *testing.T) {
	doc := `<MD_Metadata xmlns="http://www.isotc211.org/2005/gmd"><abstract>  plain text  </abstract></MD_Metadata>`
	fields := newParser().ExtractFields(doc)
	assert.Equal(t, "plain text", fields[FieldAbstract])
}

func TestTemporalExtent(t *testing.T) {
	p := newParser()

	ext := p.ExtractTemporalExtent(doc19139)
	require.NotNil(t, ext)
	require.NotNil(t, ext.Begin)
	require.NotNil(t, ext.End)
	assert.Equal(t, time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), *ext.Begin)
	assert.Equal(t, time.Date(2015, 6, 30, 11, 0, 0, 0, time.UTC), *ext.End)
	assert.Equal(t, time.UTC, ext.End.Location())

	assert.Nil(t, p.ExtractTemporalExtent(doc19115_3))

	partial := `<x:root xmlns:x="urn:x" xmlns:gml="http://www.opengis.net/gml/3.2">
  <gml:TimePeriod><gml:beginPosition>not a date</gml:beginPosition><gml:endPosition>2020-02-03T04:05:06Z</gml:endPosition></gml:TimePeriod>
</x:root>`
	ext = p.ExtractTemporalExtent(partial)
	require.NotNil(t, ext)
	assert.Nil(t, ext.Begin)
	require.NotNil(t, ext.End)
	assert.Equal(t, time.Date(2020, 2, 3, 4, 5, 6, 0, time.UTC), *ext.End)
}

func TestMalformedInputYieldsEmptyProjections(t *testing.T) {
	p := newParser()
	cases := []string{
		"",
		"   ",
		"<gmd:MD_Metadata xmlns:gmd=\"http://www.isotc211.org/2005/gmd\"><gmd:abstract>",
		"<!doctype html><html><body><br></body></html>",
		"plain text, not xml",
	}
	for _, in := range cases {
		res := p.Parse(in)
		assert.Empty(t, res.Fields, "input %q", in)
		assert.Nil(t, res.BoundingBox, "input %q", in)
		assert.Nil(t, res.TemporalExtent, "input %q", in)
	}
}

func TestLowercaseDoctypeIsNormalized(t *testing.T) {
	assert.Equal(t,
		`<!DOCTYPE GMD:MD_METADATA><a/>`,
		normalizeDoctype(`<!doctype  gmd:MD_Metadata><a/>`),
	)

	doc := "<!doctype gmd:MD_Metadata>\n" + doc19139[len(`<?xml version="1.0" encoding="UTF-8"?>`):]
	fields := newParser().ExtractFields(doc)
	assert.Equal(t, "2.3", fields[FieldStandardVersion])
}
