package refs

import (
	"fmt"
	"regexp"
	"sync"
)

// LocationPattern matches one chapter/verse location:
//
//	Single chapter: 1
//	Chapter range: 1-2
//	Chapter sequence: 1,4
//	Mixed chapters: 1-2,4
//	Single verse: 1:1
//	Verse range: 1:1-3
//	Verse sequence: 1:1,3
//	Mixed verses: 1:1-2,4
//
// The -end and ,next alternatives may repeat; only the last occurrence
// of each is retained (Go's regexp reports the final iteration of a
// repeated capture group).
const LocationPattern = `(?P<Chapter>1?[0-9]?[0-9])` +
	`(-(?P<ChapterEnd>\d+)|,\s*(?P<ChapterNext>\d+))*` +
	`(:\s*(?P<Verse>\d+))?` +
	`(-(?P<VerseEnd>\d+)|,\s*(?P<VerseNext>\d+))*`

// ReferencePattern matches a full citation: a book label followed by a
// run of locations.
//
//	Gen 1:1, 2
//	3 King 1:3-4
//	II Ki. 3:12-14, 25
//
// The book label is an optional numeral (1-4) or roman-numeral run
// (I-IIII) prefix, one or more letters in any script, and an optional
// trailing period; the whole span is captured verbatim. At least one
// letter is required, so bare numeric runs like "1 234 3:4" never match.
const ReferencePattern = `(?P<Book>(([1234]|I{1,4})\s*)?\pL+\.?)\s*` +
	`(?P<Locations>(` + LocationPattern + `\s?)+)`

// Grammar holds the two compiled citation patterns. A Grammar is
// immutable after Compile and safe for concurrent use; both patterns are
// data, so callers may supply alternative pattern strings as long as
// they expose the same named capture groups.
type Grammar struct {
	reference *regexp.Regexp
	location  *regexp.Regexp

	refBook      int
	refLocations int

	locChapter     int
	locChapterEnd  int
	locChapterNext int
	locVerse       int
	locVerseEnd    int
	locVerseNext   int
}

// Compile compiles a reference pattern and a location pattern into a
// Grammar. The reference pattern must define Book and Locations capture
// groups; the location pattern must define Chapter, ChapterEnd,
// ChapterNext, Verse, VerseEnd and VerseNext.
func Compile(referencePattern, locationPattern string) (*Grammar, error) {
	reference, err := regexp.Compile(referencePattern)
	if err != nil {
		return nil, fmt.Errorf("compiling reference pattern: %w", err)
	}
	location, err := regexp.Compile(locationPattern)
	if err != nil {
		return nil, fmt.Errorf("compiling location pattern: %w", err)
	}

	g := &Grammar{reference: reference, location: location}

	groups := []struct {
		re   *regexp.Regexp
		name string
		dst  *int
	}{
		{reference, "Book", &g.refBook},
		{reference, "Locations", &g.refLocations},
		{location, "Chapter", &g.locChapter},
		{location, "ChapterEnd", &g.locChapterEnd},
		{location, "ChapterNext", &g.locChapterNext},
		{location, "Verse", &g.locVerse},
		{location, "VerseEnd", &g.locVerseEnd},
		{location, "VerseNext", &g.locVerseNext},
	}
	for _, group := range groups {
		idx := group.re.SubexpIndex(group.name)
		if idx < 0 {
			return nil, fmt.Errorf("pattern is missing capture group %q", group.name)
		}
		*group.dst = idx
	}
	return g, nil
}

// MustCompile is like Compile but panics on error. Intended for
// package-level grammar construction from known-good patterns.
func MustCompile(referencePattern, locationPattern string) *Grammar {
	g, err := Compile(referencePattern, locationPattern)
	if err != nil {
		panic(fmt.Sprintf("refs: %v", err))
	}
	return g
}

// defaultGrammar compiles the built-in patterns once, on first use. The
// resulting Grammar is shared read-only by every subsequent Parse call.
var defaultGrammar = sync.OnceValue(func() *Grammar {
	return MustCompile(ReferencePattern, LocationPattern)
})

// Default returns the process-wide Grammar for the built-in patterns.
func Default() *Grammar {
	return defaultGrammar()
}
