package processor

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/yungbote/catalogue-etl/internal/data/repos"
	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/ingestion/parser/iso19115"
	"github.com/yungbote/catalogue-etl/internal/platform/dbctx"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

type ISO19115Processor struct {
	log    *logger.Logger
	parser *iso19115.Parser
}

func NewISO19115Processor(baseLog *logger.Logger) *ISO19115Processor {
	return &ISO19115Processor{
		log:    baseLog.With("processor", catalogue.DocumentTypeISO19115.String()),
		parser: iso19115.NewParser(baseLog),
	}
}

func (p *ISO19115Processor) Type() catalogue.DocumentType { return catalogue.DocumentTypeISO19115 }

func (p *ISO19115Processor) Process(dbc dbctx.Context, set repos.Set, content, identifier string) (*catalogue.DatasetMetadata, error) {
	existing, err := existingMetadata(dbc, set, identifier)
	if err != nil || existing == nil {
		return nil, err
	}

	if looksLikeHTML(content) {
		p.log.Warn("ISO 19115 content is an HTML page, skipping geospatial data", "identifier", identifier)
		return existing, nil
	}

	res := p.parser.Parse(content)
	row := &catalogue.DatasetGeospatialData{
		DatasetMetadataID: existing.DatasetMetadataID,
		FileIdentifier:    identifier,
		Abstract:          field(res.Fields, iso19115.FieldAbstract),
		Contact:           field(res.Fields, iso19115.FieldContact),
		MetadataStandard:  field(res.Fields, iso19115.FieldMetadataStandard),
		StandardVersion:   field(res.Fields, iso19115.FieldStandardVersion),
		Status:            field(res.Fields, iso19115.FieldStatus),
	}
	if res.BoundingBox != nil {
		s := catalogue.FormatBoundingBox(*res.BoundingBox)
		row.BoundingBox = &s
	}
	if res.TemporalExtent != nil {
		row.TemporalExtentStart = res.TemporalExtent.Begin
		row.TemporalExtentEnd = res.TemporalExtent.End
	}
	if len(res.Fields) > 0 {
		b, err := json.Marshal(res.Fields)
		if err != nil {
			return nil, fmt.Errorf("encode iso fields: %w", err)
		}
		row.Fields = datatypes.JSON(b)
	}

	if err := set.Geospatial.Upsert(dbc, row); err != nil {
		return nil, fmt.Errorf("save geospatial data: %w", err)
	}
	p.log.Info("Processed ISO 19115 metadata",
		"identifier", identifier,
		"generation", res.Generation.String(),
		"fields", len(res.Fields),
		"has_bounding_box", res.BoundingBox != nil,
		"has_temporal_extent", res.TemporalExtent != nil,
	)
	return existing, nil
}

// looksLikeHTML detects error pages served in place of the XML record.
func looksLikeHTML(content string) bool {
	head := strings.ToLower(strings.TrimSpace(content))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

func field(fields map[string]string, key string) *string {
	v, ok := fields[key]
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}
