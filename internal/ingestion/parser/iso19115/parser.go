// Package iso19115 reads ISO 19115 family metadata records in either the
// 19139 (2005) or the 19115-3 (2018) encoding.
package iso19115

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/platform/isodate"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

// Keys of the field map returned by ExtractFields.
const (
	FieldAbstract         = "Abstract"
	FieldContact          = "Contact"
	FieldMetadataStandard = "MetadataStandard"
	FieldStandardVersion  = "StandardVersion"
	FieldStatus           = "Status"
)

var (
	doctypeOpen = regexp.MustCompile(`(?i)<!doctype\s+`)
	doctypeDecl = regexp.MustCompile(`(?i)<!DOCTYPE\s+[^>]+>`)
)

// Result holds the three projections of one document.
type Result struct {
	Generation     Generation
	Fields         map[string]string
	BoundingBox    *catalogue.BoundingBox
	TemporalExtent *catalogue.TemporalExtent
}

type Parser struct {
	log *logger.Logger
}

func NewParser(baseLog *logger.Logger) *Parser {
	return &Parser{log: baseLog.With("component", "Iso19115Parser")}
}

// Parse reads content once and returns every projection. A document that
// cannot be read yields nil projections and an empty field map.
func (p *Parser) Parse(content string) Result {
	res := Result{Fields: map[string]string{}}
	root := p.load(content)
	if root == nil {
		return res
	}
	res.Generation = DetectGeneration(root)
	res.Fields = p.fields(root)
	res.BoundingBox = p.boundingBox(root, res.Generation)
	res.TemporalExtent = p.temporalExtent(root)
	return res
}

func (p *Parser) ExtractFields(content string) map[string]string {
	root := p.load(content)
	if root == nil {
		return map[string]string{}
	}
	return p.fields(root)
}

func (p *Parser) ExtractBoundingBox(content string) *catalogue.BoundingBox {
	root := p.load(content)
	if root == nil {
		return nil
	}
	return p.boundingBox(root, DetectGeneration(root))
}

func (p *Parser) ExtractTemporalExtent(content string) *catalogue.TemporalExtent {
	root := p.load(content)
	if root == nil {
		return nil
	}
	return p.temporalExtent(root)
}

func (p *Parser) load(content string) (root *etree.Element) {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("XML parse panic", "error", fmt.Sprint(r))
			root = nil
		}
	}()

	doc := etree.NewDocument()
	if err := doc.ReadFromString(normalizeDoctype(content)); err != nil {
		p.log.Warn("XML parsing error", "error", err)
		return nil
	}
	root = doc.Root()
	if root == nil {
		p.log.Warn("XML document has no root element")
	}
	return root
}

func normalizeDoctype(content string) string {
	content = doctypeOpen.ReplaceAllString(content, "<!DOCTYPE ")
	return doctypeDecl.ReplaceAllStringFunc(content, strings.ToUpper)
}

func (p *Parser) fields(root *etree.Element) (fields map[string]string) {
	fields = map[string]string{}
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("Error extracting ISO 19115 fields", "error", fmt.Sprint(r))
		}
	}()

	set := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			fields[key] = value
		}
	}

	set(FieldAbstract, valueOf(descendants(root, byLocalName("abstract"))))

	contactSources := [][]*etree.Element{
		descendants(root, func(e *etree.Element) bool {
			return e.Tag == "organisationName" && hasAncestor(e, "contact")
		}),
		descendants(root, func(e *etree.Element) bool {
			return e.Tag == "organisationName" && hasAncestor(e, "pointOfContact")
		}),
		descendants(root, func(e *etree.Element) bool {
			parent := e.Parent()
			return e.Tag == "name" && parent != nil && parent.Tag == "CI_Organisation"
		}),
	}
	for _, candidates := range contactSources {
		if v := valueOf(candidates); v != "" {
			set(FieldContact, v)
			break
		}
	}

	set(FieldMetadataStandard, valueOf(descendants(root, byLocalName("metadataStandardName"))))
	set(FieldStandardVersion, valueOf(descendants(root, byLocalName("metadataStandardVersion"))))

	if codes := descendants(root, byLocalName("MD_ProgressCode")); len(codes) > 0 {
		status := codes[0].SelectAttrValue("codeListValue", "")
		if strings.TrimSpace(status) == "" {
			status = textContent(codes[0])
		}
		set(FieldStatus, strings.TrimSpace(status))
	}
	return fields
}

func (p *Parser) boundingBox(root *etree.Element, gen Generation) (bbox *catalogue.BoundingBox) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("Failed to extract bounding box", "error", fmt.Sprint(r))
			bbox = nil
		}
	}()
	return schemaFor(gen).boundingBox(root)
}

func (p *Parser) temporalExtent(root *etree.Element) (extent *catalogue.TemporalExtent) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("Failed to extract temporal extent", "error", fmt.Sprint(r))
			extent = nil
		}
	}()

	periods := descendants(root, byLocalName("TimePeriod"))
	if len(periods) == 0 {
		return nil
	}
	period := periods[0]
	position := func(local string) *time.Time {
		found := descendants(period, byLocalName(local))
		if len(found) == 0 {
			return nil
		}
		return isodate.ParsePtr(textContent(found[0]))
	}
	return &catalogue.TemporalExtent{
		Begin: position("beginPosition"),
		End:   position("endPosition"),
	}
}
