package iso19115

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
)

// Generation is the ISO metadata schema family a document was written in.
type Generation int

const (
	// GenerationISO19139 is the 2005 gmd/gco namespace set.
	GenerationISO19139 Generation = iota
	// GenerationISO19115_3 is the 2018 mdb/gex namespace set.
	GenerationISO19115_3
)

func (g Generation) String() string {
	if g == GenerationISO19115_3 {
		return "19115-3"
	}
	return "19139"
}

// DetectGeneration inspects the root element namespace. Anything not
// recognisably 19115-3 is treated as 19139.
func DetectGeneration(root *etree.Element) Generation {
	if root == nil {
		return GenerationISO19139
	}
	ns := elementNamespace(root)
	switch {
	case strings.Contains(ns, "mdb"), strings.Contains(ns, "19115/-3"):
		return GenerationISO19115_3
	default:
		return GenerationISO19139
	}
}

// schema holds the namespace-qualified accessors that differ per generation.
type schema struct {
	generation Generation
	extentNS   func(uri string) bool
}

var schemas = map[Generation]schema{
	GenerationISO19139: {
		generation: GenerationISO19139,
		extentNS:   func(uri string) bool { return strings.Contains(uri, "2005/gmd") },
	},
	GenerationISO19115_3: {
		generation: GenerationISO19115_3,
		extentNS:   func(uri string) bool { return strings.Contains(uri, "/gex/") },
	},
}

func schemaFor(g Generation) schema {
	if s, ok := schemas[g]; ok {
		return s
	}
	return schemas[GenerationISO19139]
}

func (s schema) inExtentNS(el *etree.Element) bool {
	return s.extentNS(elementNamespace(el))
}

func (s schema) boundingBox(root *etree.Element) *catalogue.BoundingBox {
	found := descendants(root, func(e *etree.Element) bool {
		return e.Tag == "EX_GeographicBoundingBox" && s.inExtentNS(e)
	})
	if len(found) == 0 {
		return nil
	}
	bbox := found[0]
	return &catalogue.BoundingBox{
		WestBoundLongitude: s.coordinate(bbox, "westBoundLongitude"),
		EastBoundLongitude: s.coordinate(bbox, "eastBoundLongitude"),
		SouthBoundLatitude: s.coordinate(bbox, "southBoundLatitude"),
		NorthBoundLatitude: s.coordinate(bbox, "northBoundLatitude"),
	}
}

// coordinate reads <side><gco:Decimal>v</gco:Decimal></side> below bbox,
// yielding zero when absent or unparsable.
func (s schema) coordinate(bbox *etree.Element, side string) decimal.Decimal {
	sides := descendants(bbox, func(e *etree.Element) bool {
		return e.Tag == side && s.inExtentNS(e)
	})
	for _, el := range sides {
		for _, c := range el.ChildElements() {
			if c.Tag != "Decimal" || !strings.Contains(elementNamespace(c), "gco") {
				continue
			}
			return parseDecimal(textContent(c))
		}
	}
	return decimal.Zero
}

func parseDecimal(raw string) decimal.Decimal {
	v := strings.TrimSpace(raw)
	if v == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}
