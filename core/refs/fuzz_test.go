package refs

import (
	"testing"
)

// FuzzParse exercises the full pipeline with arbitrary input.
// Run with: go test -fuzz=FuzzParse -fuzztime=30s ./core/refs/...
func FuzzParse(f *testing.F) {
	seeds := []string{
		// Well-formed citations
		"Gen 1:1",
		"Gen 1:1-3, Act 9",
		"II Ki. 3:12-14, 25",
		"1Cor 1:1",
		"1 Пет 5-8, 10",
		"Gen 1:1-2 2:2,5",
		"Быт 1; Исх 1:2,4",

		// Near misses and junk
		"",
		"123",
		"1 234 3:4",
		"Gen",
		"Gen :",
		"Gen -1",
		"Gen 1:",
		"Gen 1-",
		"Gen 1,",
		":12",
		"-5",
		",5",

		// Numeric domain edges
		"Ps 199",
		"Ps 150-255",
		"Ps 1-300",
		"Ps 1:300",
		"Ps 0:0",
		"Ps 5-2",
		"Ps 5-2,9",

		// Repeated separators, odd whitespace
		"Gen 1-2-3",
		"Gen 1,2,3",
		"Gen 1:1-2-3,4,5",
		"Gen  1 : 1",
		"Gen\t1:1",

		// Prefixes and scripts
		"IIII Book 9",
		"4 Ezra 2",
		"I I I 1",
		"日本語 3:4",

		// Surrounding prose
		"as we read in Jh 1:2-4,7 yesterday",
		"see 1 John 4:8, then Rev 2,4.",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		matches := FindAll(input)

		for _, m := range matches {
			if m.Start < 0 || m.End > len(input) || m.Start >= m.End {
				t.Fatalf("bad match span [%d, %d) for input %q", m.Start, m.End, input)
			}

			ref := m.Reference
			if ref.Book == "" {
				t.Fatalf("empty book for input %q", input)
			}
			if len(ref.Locations) == 0 {
				t.Fatalf("reference %q has no locations (input %q)", ref.Book, input)
			}
			for _, loc := range ref.Locations {
				if len(loc.Chapters) == 0 {
					t.Fatalf("location with no chapters for input %q", input)
				}
				if loc.Verses != nil && len(loc.Verses) == 0 {
					t.Fatalf("location with empty verse list for input %q", input)
				}
			}

			// Semantic round trip: the rendered form of any extracted
			// reference parses back to an equal reference.
			rendered := ref.String()
			again := Parse(rendered)
			if len(again) != 1 {
				t.Fatalf("rendered %q parsed into %d references (input %q)",
					rendered, len(again), input)
			}
			if !again[0].Equal(ref) {
				t.Fatalf("round trip mismatch: %+v rendered as %q parsed as %+v",
					ref, rendered, again[0])
			}
		}
	})
}

// FuzzExpandLocations exercises the location sub-grammar directly.
// Run with: go test -fuzz=FuzzExpandLocations -fuzztime=30s ./core/refs/...
func FuzzExpandLocations(f *testing.F) {
	for _, seed := range []string{
		"1", "1-3", "1,4", "1-2,4", "1:1", "1:1-3", "1:1,3", "1:1-2,4",
		"3:12-14, 25", "1:1-2 2:2,5", "", " ", ":", "-", ",", "5-2", "300",
		"1-2-3,4:5-6-7,8",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		for _, loc := range ParseLocations(input) {
			if len(loc.Chapters) == 0 {
				t.Fatalf("location with no chapters for input %q", input)
			}
			if loc.Verses != nil && len(loc.Verses) == 0 {
				t.Fatalf("location with empty verse list for input %q", input)
			}
			for _, c := range loc.Chapters {
				if c < 0 || c > 255 {
					t.Fatalf("chapter %d outside numeric domain for input %q", c, input)
				}
			}
			for _, v := range loc.Verses {
				if v < 0 || v > 255 {
					t.Fatalf("verse %d outside numeric domain for input %q", v, input)
				}
			}
		}
	})
}
