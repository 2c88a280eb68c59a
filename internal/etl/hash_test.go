package etl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
)

func TestComputeHash(t *testing.T) {
	assert.Equal(t, "", ComputeHash(""))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", ComputeHash("abc"))
}

func TestCombinedHashIgnoresMapOrder(t *testing.T) {
	forward := map[catalogue.DocumentType]string{}
	for _, dt := range catalogue.AllDocumentTypes() {
		forward[dt] = ComputeHash(dt.String() + " content")
	}
	backward := map[catalogue.DocumentType]string{}
	all := catalogue.AllDocumentTypes()
	for i := len(all) - 1; i >= 0; i-- {
		backward[all[i]] = ComputeHash(all[i].String() + " content")
	}

	want := ComputeHash(forward[catalogue.DocumentTypeJSON] +
		forward[catalogue.DocumentTypeISO19115] +
		forward[catalogue.DocumentTypeJSONLD] +
		forward[catalogue.DocumentTypeTurtle])

	for i := 0; i < 20; i++ {
		assert.Equal(t, want, CombinedHash(forward))
		assert.Equal(t, want, CombinedHash(backward))
	}
}

func TestCombinedHashChangesWithContent(t *testing.T) {
	a := map[catalogue.DocumentType]string{catalogue.DocumentTypeJSON: ComputeHash("{}")}
	b := map[catalogue.DocumentType]string{catalogue.DocumentTypeJSON: ComputeHash(`{"a":1}`)}
	assert.NotEqual(t, CombinedHash(a), CombinedHash(b))
}
