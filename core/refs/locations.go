package refs

import "strconv"

// ExpandLocations scans a locations substring (the chapter/verse text
// following a book label) and produces one VerseLocation per disjoint
// match of the location pattern. A match without a usable chapter is
// skipped. The result is freshly allocated; ExpandLocations is stateless
// and re-entrant.
func (g *Grammar) ExpandLocations(s string) []VerseLocation {
	var out []VerseLocation
	for _, m := range g.location.FindAllStringSubmatch(s, -1) {
		chapter, ok := parseComponent(m[g.locChapter])
		if !ok {
			continue
		}

		loc := VerseLocation{
			Chapters: expandRange(chapter,
				optComponent(m[g.locChapterNext]),
				optComponent(m[g.locChapterEnd])),
		}
		if verse, ok := parseComponent(m[g.locVerse]); ok {
			loc.Verses = expandRange(verse,
				optComponent(m[g.locVerseNext]),
				optComponent(m[g.locVerseEnd]))
		}
		out = append(out, loc)
	}
	return out
}

// parseComponent parses a captured digit run. Chapter and verse numbers
// live in an 8-bit domain; a capture that is absent or does not fit is
// treated as not present.
func parseComponent(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// optComponent is parseComponent for optional captures, returning nil
// when the capture is absent or unusable.
func optComponent(s string) *int {
	if v, ok := parseComponent(s); ok {
		return &v
	}
	return nil
}
