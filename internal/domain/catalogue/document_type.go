package catalogue

import (
	"fmt"
	"strings"
)

// DocumentType is one of the fixed metadata formats the catalogue publishes.
// The numeric value is the ordinal used when combining per-format hashes.
type DocumentType int

const (
	DocumentTypeJSON DocumentType = iota
	DocumentTypeISO19115
	DocumentTypeJSONLD
	DocumentTypeTurtle
)

var documentTypeNames = map[DocumentType]string{
	DocumentTypeJSON:     "Json",
	DocumentTypeISO19115: "Iso19115",
	DocumentTypeJSONLD:   "JsonLd",
	DocumentTypeTurtle:   "Turtle",
}

// AllDocumentTypes lists every document type in ordinal order.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{DocumentTypeJSON, DocumentTypeISO19115, DocumentTypeJSONLD, DocumentTypeTurtle}
}

func (t DocumentType) String() string {
	if name, ok := documentTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DocumentType(%d)", int(t))
}

func (t DocumentType) Valid() bool {
	_, ok := documentTypeNames[t]
	return ok
}

func (t DocumentType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func ParseDocumentType(raw string) (DocumentType, error) {
	needle := strings.TrimSpace(raw)
	for t, name := range documentTypeNames {
		if strings.EqualFold(name, needle) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown document type %q", raw)
}
