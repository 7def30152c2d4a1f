// Command bibleref extracts scripture citations from free-form text.
// It provides commands for one-shot extraction, persistent indexing,
// and index queries.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/BibleRefs/core/osis"
	"github.com/FocuswithJustin/BibleRefs/core/rangeref"
	"github.com/FocuswithJustin/BibleRefs/core/refindex"
	"github.com/FocuswithJustin/BibleRefs/core/refs"
	"github.com/FocuswithJustin/BibleRefs/core/sqlite"
	"github.com/FocuswithJustin/BibleRefs/internal/fileutil"
	"github.com/FocuswithJustin/BibleRefs/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for bibleref.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log output format"`

	Extract ExtractCmd `cmd:"" help:"Extract scripture references from text or files"`
	Parse   ParseCmd   `cmd:"" help:"Parse a single strict reference range"`
	Index   IndexGroup `cmd:"" help:"Persistent reference index operations"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// IndexGroup contains index lifecycle operations.
type IndexGroup struct {
	Add    IndexAddCmd    `cmd:"" help:"Scan files and store their references"`
	Lookup IndexLookupCmd `cmd:"" help:"Look up stored references by book label"`
	List   IndexListCmd   `cmd:"" help:"List indexed documents"`
}

// ExtractCmd extracts references from inline text or files.
type ExtractCmd struct {
	Paths []string `arg:"" optional:"" help:"Files to scan (.gz and .xz are decompressed)" type:"existingfile"`
	Text  string   `name:"text" short:"t" help:"Scan this text instead of files"`
	OSIS  bool     `name:"osis" help:"Treat inputs as OSIS XML documents"`
	JSON  bool     `name:"json" help:"Emit JSON instead of plain text"`
}

func (c *ExtractCmd) Run() error {
	if c.Text != "" {
		return c.emit("-", refs.FindAll(c.Text))
	}

	// No paths and no --text: read stdin.
	if len(c.Paths) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		if c.OSIS {
			return c.emitOSIS("-", bytes.NewReader(data))
		}
		return c.emit("-", refs.FindAll(string(data)))
	}

	for _, path := range c.Paths {
		if c.OSIS {
			if err := c.extractOSIS(path); err != nil {
				return err
			}
			continue
		}
		data, err := fileutil.ReadSource(path)
		if err != nil {
			return err
		}
		if err := c.emit(path, refs.FindAll(string(data))); err != nil {
			return err
		}
	}
	return nil
}

func (c *ExtractCmd) extractOSIS(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return c.emitOSIS(path, f)
}

func (c *ExtractCmd) emitOSIS(source string, r io.Reader) error {
	matches, err := osis.ExtractReferences(r)
	if err != nil {
		return fmt.Errorf("parsing OSIS %s: %w", source, err)
	}
	if c.JSON {
		return printJSON(matches)
	}
	for _, tm := range matches {
		fmt.Printf("%s\t%s\t%s\n", source, tm.Path, tm.Match.Reference.String())
	}
	return nil
}

func (c *ExtractCmd) emit(source string, matches []refs.Match) error {
	if c.JSON {
		type jsonMatch struct {
			Source    string              `json:"source"`
			Start     int                 `json:"start"`
			End       int                 `json:"end"`
			Reference refs.BibleReference `json:"reference"`
		}
		out := make([]jsonMatch, 0, len(matches))
		for _, m := range matches {
			out = append(out, jsonMatch{source, m.Start, m.End, m.Reference})
		}
		return printJSON(out)
	}
	for _, m := range matches {
		fmt.Printf("%s\t%d-%d\t%s\n", source, m.Start, m.End, m.Reference.String())
	}
	return nil
}

// ParseCmd parses a single reference range in strict mode.
type ParseCmd struct {
	Reference string `arg:"" help:"Reference range, e.g. 'Gen 1:1-1:10'"`
	JSON      bool   `name:"json" help:"Emit JSON instead of plain text"`
}

func (c *ParseCmd) Run() error {
	r, err := rangeref.Parse(c.Reference)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(r)
	}
	fmt.Println(r.String())
	if locs, ok := r.Locations(); ok {
		for _, loc := range locs {
			fmt.Printf("  %s\n", loc.String())
		}
	}
	return nil
}

// IndexAddCmd scans files and stores their references.
type IndexAddCmd struct {
	DB    string   `name:"db" default:"bibleref.db" help:"Index database path" type:"path"`
	Paths []string `arg:"" help:"Files to index" type:"existingfile"`
}

func (c *IndexAddCmd) Run() error {
	ix, err := refindex.Open(c.DB)
	if err != nil {
		return err
	}
	defer ix.Close()

	sources := make([]refindex.Source, 0, len(c.Paths))
	for _, path := range c.Paths {
		data, err := fileutil.ReadSource(path)
		if err != nil {
			return err
		}
		sources = append(sources, refindex.Source{Name: fileutil.SourceName(path), Content: data})
	}

	result, err := ix.Scan(sources...)
	if err != nil {
		return err
	}
	fmt.Printf("Scan %s\n", result.ScanID)
	fmt.Printf("  Documents:  %d added, %d already indexed\n", result.Documents, result.Skipped)
	fmt.Printf("  References: %d\n", result.References)
	return nil
}

// IndexLookupCmd looks up stored references by book label.
type IndexLookupCmd struct {
	DB   string `name:"db" default:"bibleref.db" help:"Index database path" type:"path"`
	Book string `arg:"" help:"Book label exactly as extracted, e.g. 'Gen'"`
	JSON bool   `name:"json" help:"Emit JSON instead of plain text"`
}

func (c *IndexLookupCmd) Run() error {
	ix, err := refindex.Open(c.DB)
	if err != nil {
		return err
	}
	defer ix.Close()

	stored, err := ix.Lookup(c.Book)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(stored)
	}
	for _, sr := range stored {
		fmt.Printf("%s\t%d-%d\t%s %s\n", sr.DocName, sr.Start, sr.End, sr.Book, formatLocations(sr.Locations))
	}
	return nil
}

// IndexListCmd lists indexed documents.
type IndexListCmd struct {
	DB   string `name:"db" default:"bibleref.db" help:"Index database path" type:"path"`
	JSON bool   `name:"json" help:"Emit JSON instead of plain text"`
}

func (c *IndexListCmd) Run() error {
	ix, err := refindex.Open(c.DB)
	if err != nil {
		return err
	}
	defer ix.Close()

	docs, err := ix.Documents()
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(docs)
	}
	for _, doc := range docs {
		fmt.Printf("%s\t%s\t%s\n", doc.ID[:12], doc.AddedAt.Format("2006-01-02 15:04"), doc.Name)
	}
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("bibleref version %s\n", version)
	info := sqlite.GetInfo()
	fmt.Printf("  sqlite: %s (%s)\n", info.DriverType, info.Package)
	return nil
}

// Helper functions

func formatLocations(locations []refs.VerseLocation) string {
	parts := make([]string, 0, len(locations))
	for _, loc := range locations {
		parts = append(parts, loc.String())
	}
	return strings.Join(parts, " ")
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("bibleref"),
		kong.Description("Scripture citation extraction and indexing"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
