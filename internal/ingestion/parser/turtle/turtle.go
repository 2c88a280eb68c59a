// Package turtle summarises Turtle (RDF) metadata documents.
package turtle

import (
	"fmt"
	"strings"

	"github.com/knakk/rdf"
)

const dctTitle = "http://purl.org/dc/terms/title"

// Summary describes the decoded graph.
type Summary struct {
	Triples  int
	Subjects int
	Title    string
}

// Summarize decodes content as Turtle. The first dct:title literal found is
// reported as Title.
func Summarize(content string) (Summary, error) {
	var s Summary
	if strings.TrimSpace(content) == "" {
		return s, nil
	}
	triples, err := rdf.NewTripleDecoder(strings.NewReader(content), rdf.Turtle).DecodeAll()
	if err != nil {
		return s, fmt.Errorf("decode turtle: %w", err)
	}

	subjects := map[string]struct{}{}
	for _, tr := range triples {
		subjects[tr.Subj.String()] = struct{}{}
		if s.Title == "" && tr.Pred.String() == dctTitle && tr.Obj.Type() == rdf.TermLiteral {
			s.Title = strings.TrimSpace(tr.Obj.String())
		}
	}
	s.Triples = len(triples)
	s.Subjects = len(subjects)
	return s, nil
}
