// Package refs extracts structured scripture citations from free-form text.
//
// A citation is a book label followed by one or more chapter/verse
// locations: "Gen 1:1-3", "II Ki. 3:12-14, 25", "1 Пет 5-8, 10". Book
// labels may be written in any script and are returned verbatim as
// matched, including numeral or roman-numeral prefixes and trailing
// punctuation; mapping them to canonical book identifiers is the job of
// a higher layer.
//
// Range notation ("1-3"), sequence notation ("1,4") and mixed notation
// ("1-2,4") are expanded into explicit enumerations:
//
//	refs.Parse("Gen 1:1-3, Act 9")
//	// → [{Book: "Gen", Locations: [{Chapters: [1], Verses: [1 2 3]}]},
//	//    {Book: "Act", Locations: [{Chapters: [9]}]}]
package refs

import (
	"strconv"
	"strings"
)

// VerseLocation is one chapter specification, optionally paired with a
// verse specification. Chapters is never empty; Verses is nil when the
// location has no verse part and never empty otherwise. Both sequences
// preserve expansion order: a mixed notation like "1-3,2" keeps the
// trailing value after the expanded run. Locations are freshly allocated
// by the parser and must not be mutated.
type VerseLocation struct {
	Chapters []int `json:"chapters"`
	Verses   []int `json:"verses,omitempty"`
}

// Equal reports whether two locations hold the same chapter and verse
// sequences in the same order.
func (l VerseLocation) Equal(other VerseLocation) bool {
	if (l.Verses == nil) != (other.Verses == nil) {
		return false
	}
	return intsEqual(l.Chapters, other.Chapters) && intsEqual(l.Verses, other.Verses)
}

// String renders the location back in range/sequence notation. Parsing
// the rendered form yields an equal location.
func (l VerseLocation) String() string {
	var sb strings.Builder
	writeSequence(&sb, l.Chapters)
	if l.Verses != nil {
		sb.WriteByte(':')
		writeSequence(&sb, l.Verses)
	}
	return sb.String()
}

// BibleReference is one citation: a verbatim book label and the ordered,
// non-empty list of locations that followed it.
type BibleReference struct {
	Book      string          `json:"book"`
	Locations []VerseLocation `json:"locations"`
}

// Equal reports whether two references are identical by value.
func (r BibleReference) Equal(other BibleReference) bool {
	if r.Book != other.Book || len(r.Locations) != len(other.Locations) {
		return false
	}
	for i := range r.Locations {
		if !r.Locations[i].Equal(other.Locations[i]) {
			return false
		}
	}
	return true
}

// String renders the citation with its locations separated by single
// spaces, e.g. "Gen 1:1-2 2:2,5". Parsing the rendered form yields an
// equal reference.
func (r BibleReference) String() string {
	var sb strings.Builder
	sb.WriteString(r.Book)
	for _, loc := range r.Locations {
		sb.WriteByte(' ')
		sb.WriteString(loc.String())
	}
	return sb.String()
}

// Match is a citation found in a larger text, with the byte offsets of
// the matched span.
type Match struct {
	Reference BibleReference `json:"reference"`
	Start     int            `json:"start"`
	End       int            `json:"end"`
}

// Parse extracts all citations from the text, left to right, using the
// default grammar. Unmatched or malformed input yields no reference; the
// result is empty, never an error, when nothing matches.
func Parse(text string) []BibleReference {
	return Default().Parse(text)
}

// FindAll is like Parse but also reports the byte offsets of each
// citation within the text.
func FindAll(text string) []Match {
	return Default().FindAll(text)
}

// ParseLocations expands a locations substring (the text following a
// book label) into verse locations using the default grammar.
func ParseLocations(s string) []VerseLocation {
	return Default().ExpandLocations(s)
}

// Parse extracts all citations from the text, left to right.
func (g *Grammar) Parse(text string) []BibleReference {
	matches := g.FindAll(text)
	out := make([]BibleReference, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Reference)
	}
	return out
}

// FindAll scans the text for non-overlapping citations, left to right.
// A candidate missing either the book or the locations capture is
// discarded.
func (g *Grammar) FindAll(text string) []Match {
	indices := g.reference.FindAllStringSubmatchIndex(text, -1)
	matches := make([]Match, 0, len(indices))
	for _, m := range indices {
		book := captureAt(text, m, g.refBook)
		locations := captureAt(text, m, g.refLocations)
		if book == "" || locations == "" {
			continue
		}
		matches = append(matches, Match{
			Reference: BibleReference{
				Book:      book,
				Locations: g.ExpandLocations(locations),
			},
			Start: m[0],
			End:   m[1],
		})
	}
	return matches
}

// captureAt returns the capture group at index i of a submatch index
// vector, or "" when the group did not participate in the match.
func captureAt(text string, m []int, i int) string {
	if 2*i+1 >= len(m) || m[2*i] < 0 {
		return ""
	}
	return text[m[2*i]:m[2*i+1]]
}

// writeSequence renders an expanded sequence back into range notation
// for the contiguous run and sequence notation for a trailing discrete
// value, mirroring how expandRange builds sequences.
func writeSequence(sb *strings.Builder, values []int) {
	if len(values) == 0 {
		return
	}
	run := values
	next := -1
	if n := len(values); n >= 2 && values[n-1] != values[n-2]+1 {
		run, next = values[:n-1], values[n-1]
	}
	sb.WriteString(strconv.Itoa(run[0]))
	if len(run) > 1 {
		sb.WriteByte('-')
		sb.WriteString(strconv.Itoa(run[len(run)-1]))
	}
	if next >= 0 {
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(next))
	}
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
