package iso19115

import (
	"strings"

	"github.com/beevik/etree"
)

const xlinkNamespace = "http://www.w3.org/1999/xlink"

// namespaceOf resolves prefix against the xmlns declarations in scope at el.
// The empty prefix resolves the default namespace.
func namespaceOf(el *etree.Element, prefix string) string {
	for cur := el; cur != nil; cur = cur.Parent() {
		for _, a := range cur.Attr {
			if prefix == "" && a.Space == "" && a.Key == "xmlns" {
				return a.Value
			}
			if prefix != "" && a.Space == "xmlns" && a.Key == prefix {
				return a.Value
			}
		}
	}
	return ""
}

func elementNamespace(el *etree.Element) string {
	return namespaceOf(el, el.Space)
}

// descendants returns el and every element below it, in document order, that
// satisfies match.
func descendants(el *etree.Element, match func(*etree.Element) bool) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		if match(e) {
			out = append(out, e)
		}
		for _, c := range e.ChildElements() {
			walk(c)
		}
	}
	if el != nil {
		walk(el)
	}
	return out
}

func byLocalName(name string) func(*etree.Element) bool {
	return func(e *etree.Element) bool { return e.Tag == name }
}

func firstChild(el *etree.Element, local string) *etree.Element {
	for _, c := range el.ChildElements() {
		if c.Tag == local {
			return c
		}
	}
	return nil
}

func hasAncestor(el *etree.Element, local string) bool {
	for cur := el.Parent(); cur != nil; cur = cur.Parent() {
		if cur.Tag == local {
			return true
		}
	}
	return false
}

// textContent concatenates every character-data token below el.
func textContent(el *etree.Element) string {
	var b strings.Builder
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				b.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(el)
	return b.String()
}

func xlinkTitle(el *etree.Element) string {
	for _, a := range el.Attr {
		if a.Key != "title" || a.Space == "" {
			continue
		}
		if a.Space == "xlink" || namespaceOf(el, a.Space) == xlinkNamespace {
			return a.Value
		}
	}
	return ""
}

// valueOf reads the first usable value across candidates: a non-blank
// CharacterString child, then an Anchor child (text or xlink:title), then the
// first candidate's own text.
func valueOf(candidates []*etree.Element) string {
	for _, c := range candidates {
		if cs := firstChild(c, "CharacterString"); cs != nil {
			if v := strings.TrimSpace(textContent(cs)); v != "" {
				return v
			}
		}
	}
	for _, c := range candidates {
		anchor := firstChild(c, "Anchor")
		if anchor == nil {
			continue
		}
		v := strings.TrimSpace(textContent(anchor))
		if v == "" {
			v = strings.TrimSpace(xlinkTitle(anchor))
		}
		if v != "" {
			return v
		}
	}
	if len(candidates) > 0 {
		return strings.TrimSpace(textContent(candidates[0]))
	}
	return ""
}
