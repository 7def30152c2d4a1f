// Package refindex persists extracted scripture references in a SQLite
// database. Documents are keyed by the BLAKE3 hash of their content, so
// re-adding an unchanged document is a cheap no-op; every stored
// reference keeps its source document, byte offsets and expanded
// locations, queryable by book label.
package refindex

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	referrors "github.com/FocuswithJustin/BibleRefs/core/errors"
	"github.com/FocuswithJustin/BibleRefs/core/refs"
	"github.com/FocuswithJustin/BibleRefs/core/sqlite"
	"github.com/FocuswithJustin/BibleRefs/internal/logging"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	scan_id  TEXT NOT NULL,
	added_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS refs (
	doc_id    TEXT NOT NULL REFERENCES documents(id),
	book      TEXT NOT NULL,
	start_off INTEGER NOT NULL,
	end_off   INTEGER NOT NULL,
	locations TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS refs_book ON refs(book);
CREATE INDEX IF NOT EXISTS refs_doc ON refs(doc_id);
`

// Index is an open reference index. Safe for concurrent use; all
// mutating operations run in transactions.
type Index struct {
	db  *sql.DB
	log *slog.Logger
}

// Document describes an indexed document.
type Document struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	ScanID  string    `json:"scan_id"`
	AddedAt time.Time `json:"added_at"`
}

// Source is a named piece of content to index.
type Source struct {
	Name    string
	Content []byte
}

// ScanResult summarizes one Scan call.
type ScanResult struct {
	ScanID     string `json:"scan_id"`
	Documents  int    `json:"documents"`
	Skipped    int    `json:"skipped"`
	References int    `json:"references"`
}

// StoredReference is one extracted reference as persisted in the index.
type StoredReference struct {
	DocID     string               `json:"doc_id"`
	DocName   string               `json:"doc_name"`
	Book      string               `json:"book"`
	Start     int                  `json:"start"`
	End       int                  `json:"end"`
	Locations []refs.VerseLocation `json:"locations"`
}

// DocumentID returns the BLAKE3 content hash used as a document ID.
func DocumentID(content []byte) string {
	h := blake3.Sum256(content)
	return hex.EncodeToString(h[:])
}

// Open opens (creating if necessary) a reference index at path.
func Open(path string) (*Index, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", path, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}
	return &Index{db: db, log: logging.GetLogger()}, nil
}

// Close closes the underlying database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// Scan extracts references from every source and stores them under a
// fresh scan ID. Sources whose content is already indexed are skipped.
func (ix *Index) Scan(sources ...Source) (*ScanResult, error) {
	result := &ScanResult{ScanID: uuid.NewString()}

	for _, src := range sources {
		added, count, err := ix.addDocument(result.ScanID, src.Name, src.Content)
		if err != nil {
			return nil, err
		}
		if !added {
			result.Skipped++
			continue
		}
		result.Documents++
		result.References += count
	}

	ix.log.Debug("scan complete",
		"scan_id", result.ScanID,
		"documents", result.Documents,
		"skipped", result.Skipped,
		"references", result.References)
	return result, nil
}

// AddDocument indexes a single document under its own scan ID. The
// returned Document reflects the stored row whether or not the content
// was already present.
func (ix *Index) AddDocument(name string, content []byte) (*Document, error) {
	scanID := uuid.NewString()
	if _, _, err := ix.addDocument(scanID, name, content); err != nil {
		return nil, err
	}

	id := DocumentID(content)
	row := ix.db.QueryRow(
		`SELECT id, name, scan_id, added_at FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

// addDocument stores one document and its references. Returns false
// when the content hash is already indexed.
func (ix *Index) addDocument(scanID, name string, content []byte) (added bool, refCount int, err error) {
	id := DocumentID(content)

	tx, err := ix.db.Begin()
	if err != nil {
		return false, 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT OR IGNORE INTO documents (id, name, scan_id, added_at) VALUES (?, ?, ?, ?)`,
		id, name, scanID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return false, 0, fmt.Errorf("inserting document %s: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		ix.log.Debug("document already indexed", "doc", id, "name", name)
		return false, 0, nil
	}

	matches := refs.FindAll(string(content))
	for _, m := range matches {
		locations, err := json.Marshal(m.Reference.Locations)
		if err != nil {
			return false, 0, fmt.Errorf("encoding locations: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT INTO refs (doc_id, book, start_off, end_off, locations) VALUES (?, ?, ?, ?, ?)`,
			id, m.Reference.Book, m.Start, m.End, string(locations)); err != nil {
			return false, 0, fmt.Errorf("inserting reference: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("committing document %s: %w", name, err)
	}

	ix.log.Debug("indexed document", "doc", id, "name", name, "references", len(matches))
	return true, len(matches), nil
}

// Lookup returns every stored reference whose book label matches
// exactly, ordered by document name and position. A book with no stored
// references yields a NotFoundError.
func (ix *Index) Lookup(book string) ([]StoredReference, error) {
	rows, err := ix.db.Query(`
		SELECT r.doc_id, d.name, r.book, r.start_off, r.end_off, r.locations
		FROM refs r JOIN documents d ON d.id = r.doc_id
		WHERE r.book = ?
		ORDER BY d.name, r.start_off`, book)
	if err != nil {
		return nil, fmt.Errorf("querying references: %w", err)
	}
	defer rows.Close()

	var out []StoredReference
	for rows.Next() {
		var sr StoredReference
		var locations string
		if err := rows.Scan(&sr.DocID, &sr.DocName, &sr.Book, &sr.Start, &sr.End, &locations); err != nil {
			return nil, fmt.Errorf("scanning reference row: %w", err)
		}
		if err := json.Unmarshal([]byte(locations), &sr.Locations); err != nil {
			return nil, fmt.Errorf("decoding locations: %w", err)
		}
		out = append(out, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating references: %w", err)
	}
	if len(out) == 0 {
		return nil, referrors.NewNotFound("book", book)
	}
	return out, nil
}

// Documents lists every indexed document, ordered by name.
func (ix *Index) Documents() ([]Document, error) {
	rows, err := ix.db.Query(
		`SELECT id, name, scan_id, added_at FROM documents ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*Document, error) {
	var doc Document
	var addedAt string
	if err := row.Scan(&doc.ID, &doc.Name, &doc.ScanID, &addedAt); err != nil {
		return nil, fmt.Errorf("scanning document row: %w", err)
	}
	t, err := time.Parse(time.RFC3339, addedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing added_at: %w", err)
	}
	doc.AddedAt = t
	return &doc, nil
}
