package processor

import (
	"encoding/json"

	"github.com/yungbote/catalogue-etl/internal/data/repos"
	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/ingestion/parser/turtle"
	"github.com/yungbote/catalogue-etl/internal/platform/dbctx"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

// JSONLDProcessor keeps only the raw document; it checks the content is
// well-formed JSON and logs when it is not.
type JSONLDProcessor struct {
	log *logger.Logger
}

func NewJSONLDProcessor(baseLog *logger.Logger) *JSONLDProcessor {
	return &JSONLDProcessor{log: baseLog.With("processor", catalogue.DocumentTypeJSONLD.String())}
}

func (p *JSONLDProcessor) Type() catalogue.DocumentType { return catalogue.DocumentTypeJSONLD }

func (p *JSONLDProcessor) Process(dbc dbctx.Context, set repos.Set, content, identifier string) (*catalogue.DatasetMetadata, error) {
	existing, err := existingMetadata(dbc, set, identifier)
	if err != nil || existing == nil {
		return nil, err
	}
	if !json.Valid([]byte(content)) {
		p.log.Warn("JSON-LD document is not valid JSON", "identifier", identifier)
	} else {
		p.log.Debug("Stored JSON-LD document", "identifier", identifier, "bytes", len(content))
	}
	return existing, nil
}

// TurtleProcessor keeps only the raw document and logs a summary of the graph.
type TurtleProcessor struct {
	log *logger.Logger
}

func NewTurtleProcessor(baseLog *logger.Logger) *TurtleProcessor {
	return &TurtleProcessor{log: baseLog.With("processor", catalogue.DocumentTypeTurtle.String())}
}

func (p *TurtleProcessor) Type() catalogue.DocumentType { return catalogue.DocumentTypeTurtle }

func (p *TurtleProcessor) Process(dbc dbctx.Context, set repos.Set, content, identifier string) (*catalogue.DatasetMetadata, error) {
	existing, err := existingMetadata(dbc, set, identifier)
	if err != nil || existing == nil {
		return nil, err
	}
	summary, err := turtle.Summarize(content)
	if err != nil {
		p.log.Warn("Turtle document could not be decoded", "identifier", identifier, "error", err)
		return existing, nil
	}
	p.log.Debug("Stored Turtle document",
		"identifier", identifier,
		"triples", summary.Triples,
		"subjects", summary.Subjects,
		"title", summary.Title,
	)
	return existing, nil
}
