// Package jsonmeta reads the catalogue's native JSON metadata record.
package jsonmeta

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/platform/isodate"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

type record struct {
	ID              json.RawMessage `json:"id"`
	Title           json.RawMessage `json:"title"`
	Description     json.RawMessage `json:"description"`
	MetadataDate    json.RawMessage `json:"metadataDate"`
	PublicationDate json.RawMessage `json:"publicationDate"`
	Relationships   []struct {
		Target   json.RawMessage `json:"target"`
		Relation json.RawMessage `json:"relation"`
	} `json:"relationships"`
	OnlineResources []struct {
		URL         json.RawMessage `json:"url"`
		Name        json.RawMessage `json:"name"`
		Description json.RawMessage `json:"description"`
		Type        json.RawMessage `json:"type"`
		Function    json.RawMessage `json:"function"`
	} `json:"onlineResources"`
}

// Document is everything extracted from one JSON record.
type Document struct {
	Metadata        *catalogue.DatasetMetadata
	Relationships   []catalogue.DatasetRelationship
	OnlineResources []catalogue.OnlineResource
}

type Parser struct {
	log *logger.Logger
}

func NewParser(baseLog *logger.Logger) *Parser {
	return &Parser{log: baseLog.With("component", "JsonMetadataParser")}
}

// Decode reads content once. Malformed JSON yields metadata carrying only the
// identifier and no relationships or resources.
func (p *Parser) Decode(content, identifier string) Document {
	doc := Document{Metadata: &catalogue.DatasetMetadata{FileIdentifier: identifier}}

	var rec record
	if err := json.Unmarshal([]byte(content), &rec); err != nil {
		p.log.Warn("Malformed JSON metadata", "identifier", identifier, "error", err)
		return doc
	}

	if id, err := uuid.Parse(stringValue(rec.ID)); err == nil {
		doc.Metadata.DatasetID = id
	}
	doc.Metadata.Title = stringValue(rec.Title)
	doc.Metadata.Description = stringValue(rec.Description)
	doc.Metadata.MetadataDate, _ = isodate.Parse(stringValue(rec.MetadataDate))
	doc.Metadata.PublicationDate, _ = isodate.Parse(stringValue(rec.PublicationDate))

	for _, rel := range rec.Relationships {
		target := stringValue(rel.Target)
		if i := strings.LastIndex(target, "/"); i >= 0 {
			target = target[i+1:]
		}
		related, err := uuid.Parse(target)
		if err != nil || related == uuid.Nil {
			continue
		}
		relation := stringValue(rel.Relation)
		relType := relation
		if i := strings.LastIndex(relation, "#"); i >= 0 {
			relType = relation[i+1:]
		}
		out := catalogue.DatasetRelationship{
			DatasetID:        related,
			RelationshipType: relType,
		}
		if relation != "" {
			out.RelationshipURI = &relation
		}
		doc.Relationships = append(doc.Relationships, out)
	}

	for _, res := range rec.OnlineResources {
		doc.OnlineResources = append(doc.OnlineResources, catalogue.OnlineResource{
			URL:         stringValue(res.URL),
			Name:        optionalString(res.Name),
			Description: optionalString(res.Description),
			Type:        optionalString(res.Type),
			Function:    catalogue.ParseResourceFunction(stringValue(res.Function)),
		})
	}
	return doc
}

// Parse returns the core metadata projection.
func (p *Parser) Parse(content, identifier string) *catalogue.DatasetMetadata {
	return p.Decode(content, identifier).Metadata
}

// Relationships returns the links to other datasets whose target ends in a
// valid uuid.
func (p *Parser) Relationships(content, identifier string) []catalogue.DatasetRelationship {
	return p.Decode(content, identifier).Relationships
}

func (p *Parser) OnlineResources(content, identifier string) []catalogue.OnlineResource {
	return p.Decode(content, identifier).OnlineResources
}

// stringValue returns raw as a string when it holds a JSON string, else "".
func stringValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func optionalString(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return s
}
