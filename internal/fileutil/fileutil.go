// Package fileutil reads input files for the extraction tools,
// transparently decompressing gzip and xz archives by extension.
package fileutil

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// ReadSource reads the file at path. Files ending in .gz or .xz are
// decompressed; everything else is read as-is.
func ReadSource(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reading gzip %s: %w", path, err)
		}
		defer gr.Close()
		r = gr
	case ".xz":
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reading xz %s: %w", path, err)
		}
		r = xr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// SourceName strips a compression extension so indexed documents keep
// their logical name: sermon.txt.gz is stored as sermon.txt.
func SourceName(path string) string {
	base := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".gz", ".xz":
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base
}
