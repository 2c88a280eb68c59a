package processor

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/catalogue-etl/internal/data/repos"
	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/ingestion/parser/jsonmeta"
	"github.com/yungbote/catalogue-etl/internal/platform/dbctx"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

type JSONProcessor struct {
	log       *logger.Logger
	parser    *jsonmeta.Parser
	resources *ResourcePersister
}

func NewJSONProcessor(baseLog *logger.Logger, resources *ResourcePersister) *JSONProcessor {
	if resources == nil {
		resources = NewResourcePersister(baseLog)
	}
	return &JSONProcessor{
		log:       baseLog.With("processor", catalogue.DocumentTypeJSON.String()),
		parser:    jsonmeta.NewParser(baseLog),
		resources: resources,
	}
}

func (p *JSONProcessor) Type() catalogue.DocumentType { return catalogue.DocumentTypeJSON }

func (p *JSONProcessor) Process(dbc dbctx.Context, set repos.Set, content, identifier string) (*catalogue.DatasetMetadata, error) {
	existing, err := existingMetadata(dbc, set, identifier)
	if err != nil || existing == nil {
		return nil, err
	}

	doc := p.parser.Decode(content, identifier)
	mergeMetadata(existing, doc.Metadata)
	now := time.Now().UTC()
	existing.UpdatedAt = &now
	if err := set.Metadata.Update(dbc, existing); err != nil {
		return nil, fmt.Errorf("save dataset metadata: %w", err)
	}

	for i := range doc.Relationships {
		rel := doc.Relationships[i]
		rel.DatasetMetadataID = existing.DatasetMetadataID
		if err := set.Relationships.Save(dbc, &rel); err != nil {
			return nil, fmt.Errorf("save relationship %s: %w", rel.DatasetID, err)
		}
	}

	summary := p.resources.Persist(dbc, set, identifier, existing.DatasetMetadataID, doc.OnlineResources)
	p.log.Info("Processed JSON metadata",
		"identifier", identifier,
		"relationships", len(doc.Relationships),
		"data_files", summary.DataFiles,
		"supporting_documents", summary.SupportingDocuments,
		"resources_skipped", summary.Skipped,
		"resources_failed", summary.Failed,
	)
	return existing, nil
}

// mergeMetadata copies parsed values over dst, never replacing a stored value
// with a blank or zero one.
func mergeMetadata(dst, parsed *catalogue.DatasetMetadata) {
	if parsed == nil {
		return
	}
	if parsed.DatasetID != uuid.Nil {
		dst.DatasetID = parsed.DatasetID
	}
	if strings.TrimSpace(parsed.Title) != "" {
		dst.Title = parsed.Title
	}
	if strings.TrimSpace(parsed.Description) != "" {
		dst.Description = parsed.Description
	}
	if !parsed.PublicationDate.IsZero() {
		dst.PublicationDate = parsed.PublicationDate
	}
	if !parsed.MetadataDate.IsZero() {
		dst.MetadataDate = parsed.MetadataDate
	}
}
