// Package rangeref strictly parses a single scripture reference that may
// span a range, such as "Gen 1:1-5" or "Genesis 1-2". Unlike the
// scanning extractor in core/refs, which silently skips anything that is
// not citation-shaped, this parser accepts exactly one reference and
// reports an error for malformed input. Book labels are kept verbatim;
// no canonical book mapping is applied.
package rangeref

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	referrors "github.com/FocuswithJustin/BibleRefs/core/errors"
	"github.com/FocuswithJustin/BibleRefs/core/refs"
)

// Range is a parsed reference. Nil fields were absent from the input:
// a bare book has no ChapterStart, a whole chapter has no VerseStart.
type Range struct {
	Book         string `parser:"@Book"`
	ChapterStart *int   `parser:"( @Number"`
	VerseStart   *int   `parser:"( ':' @Number )?"`
	ChapterEnd   *int   `parser:"( '-' ( @Number"`
	VerseEnd     *int   `parser:"    ( ':' @Number )? )? )? )?"`
}

// rangeLexer tokenizes references. Book names may carry a leading
// numeral, span several words ("Song of Solomon") and end in a period,
// in any letter script.
var rangeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Book", Pattern: `(?:\d\s*)?\pL+(?:\s+(?:of\s+)?\pL+)*\.?`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var rangeParser = participle.MustBuild[Range](
	participle.Lexer(rangeLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a single reference string. Supported forms:
//
//	"Genesis 1:1"     book chapter:verse
//	"Gen.1.1"         dot separators
//	"Genesis 1:1-5"   verse range within a chapter
//	"Genesis 1:1-2:5" range across chapters
//	"Genesis 1-2"     chapter range
//	"Genesis 1"       whole chapter
//	"Genesis"         whole book
func Parse(input string) (*Range, error) {
	ref, err := rangeParser.ParseString("", normalizeSeparators(input))
	if err != nil {
		return nil, referrors.NewParse("reference", "", fmt.Sprintf("%q: %v", input, err))
	}

	// The grammar reads "1:1-5" as chapter 1, verse 1, chapter end 5.
	// When a start verse is present and nothing follows the dash's
	// number, that number is the verse end, not a chapter end.
	if ref.VerseStart != nil && ref.ChapterEnd != nil && ref.VerseEnd == nil {
		ref.VerseEnd = ref.ChapterEnd
		ref.ChapterEnd = nil
	}

	return ref, nil
}

// normalizeSeparators rewrites dot-separated forms like "Gen.1.1" or
// "Gen 1.1" into the canonical "Gen 1:1" before parsing.
func normalizeSeparators(input string) string {
	parts := strings.Split(input, ".")
	if len(parts) < 2 {
		return input
	}

	book, rest := parts[0], parts[1:]
	for _, p := range rest {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		for _, c := range p {
			if c < '0' || c > '9' {
				return input
			}
		}
	}

	if len(rest) == 1 {
		return book + " " + rest[0]
	}
	return book + " " + rest[0] + ":" + strings.Join(rest[1:], ":")
}

// String returns the canonical textual form of the range.
func (r *Range) String() string {
	if r.ChapterStart == nil {
		return r.Book
	}

	var sb strings.Builder
	sb.WriteString(r.Book)
	fmt.Fprintf(&sb, " %d", *r.ChapterStart)

	if r.VerseStart != nil {
		fmt.Fprintf(&sb, ":%d", *r.VerseStart)
	}

	if r.ChapterEnd != nil {
		fmt.Fprintf(&sb, "-%d", *r.ChapterEnd)
		if r.VerseEnd != nil {
			fmt.Fprintf(&sb, ":%d", *r.VerseEnd)
		}
	} else if r.VerseEnd != nil {
		fmt.Fprintf(&sb, "-%d", *r.VerseEnd)
	}

	return sb.String()
}

// IsRange reports whether the reference spans multiple verses or chapters.
func (r *Range) IsRange() bool {
	return r.ChapterEnd != nil || r.VerseEnd != nil
}

// IsChapterOnly reports whether the reference names whole chapter(s).
func (r *Range) IsChapterOnly() bool {
	return r.ChapterStart != nil && r.VerseStart == nil
}

// IsBookOnly reports whether the reference names an entire book.
func (r *Range) IsBookOnly() bool {
	return r.ChapterStart == nil
}

// Locations expands the range into the extraction model of core/refs.
// It reports ok == false for forms that cannot be expanded without canon
// data: a bare book (no chapter at all) and a range crossing a chapter
// boundary, whose verse run depends on the length of the first chapter.
// A descending chapter range degrades to its start chapter, matching the
// expansion policy of core/refs.
func (r *Range) Locations() ([]refs.VerseLocation, bool) {
	switch {
	case r.ChapterStart == nil:
		return nil, false
	case r.VerseStart != nil && r.ChapterEnd != nil:
		return nil, false
	case r.VerseStart == nil:
		return []refs.VerseLocation{{Chapters: ascending(*r.ChapterStart, r.ChapterEnd)}}, true
	default:
		return []refs.VerseLocation{{
			Chapters: []int{*r.ChapterStart},
			Verses:   ascending(*r.VerseStart, r.VerseEnd),
		}}, true
	}
}

func ascending(start int, end *int) []int {
	if end == nil || *end <= start {
		return []int{start}
	}
	run := make([]int, 0, *end-start+1)
	for v := start; v <= *end; v++ {
		run = append(run, v)
	}
	return run
}
