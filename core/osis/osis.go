// Package osis extracts scripture citations from OSIS and other XML
// documents. The document's text nodes are scanned with the core/refs
// grammar; markup is never interpreted beyond locating text content, so
// any well-formed XML works, not just OSIS.
package osis

import (
	"io"
	"slices"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	referrors "github.com/FocuswithJustin/BibleRefs/core/errors"
	"github.com/FocuswithJustin/BibleRefs/core/refs"
)

// textNodes selects every text node in the document.
var textNodes = xpath.MustCompile("//text()")

// TextMatch is a citation found inside a document text node. Path is the
// slash-joined element path of the enclosing element; the match offsets
// are relative to the text node's content, not the serialized document.
type TextMatch struct {
	Path  string     `json:"path"`
	Match refs.Match `json:"match"`
}

// ExtractReferences parses an XML document and extracts all citations
// from its text content, in document order.
func ExtractReferences(r io.Reader) ([]TextMatch, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, referrors.NewParse("XML", "", err.Error())
	}
	return ExtractFromDocument(doc), nil
}

// ExtractFromDocument extracts citations from an already parsed document.
func ExtractFromDocument(doc *xmlquery.Node) []TextMatch {
	grammar := refs.Default()

	var out []TextMatch
	for _, node := range xmlquery.QuerySelectorAll(doc, textNodes) {
		matches := grammar.FindAll(node.Data)
		if len(matches) == 0 {
			continue
		}
		path := elementPath(node.Parent)
		for _, m := range matches {
			out = append(out, TextMatch{Path: path, Match: m})
		}
	}
	return out
}

// elementPath renders the element ancestry of a node as "/osis/div/p".
func elementPath(n *xmlquery.Node) string {
	var parts []string
	for ; n != nil; n = n.Parent {
		if n.Type == xmlquery.ElementNode {
			parts = append(parts, n.Data)
		}
	}
	slices.Reverse(parts)
	return "/" + strings.Join(parts, "/")
}
