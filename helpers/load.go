package helpers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/spektr-org/tabula/dataset"
	"github.com/spektr-org/tabula/schema"
)

// ============================================================================
// LOAD — File → Source
// ============================================================================
// Format follows the file extension (.csv, .json), optionally wrapped in
// .gz or .zst compression. The loaded rows are a snapshot: nothing watches
// the file afterwards.
// ============================================================================

var (
	// ErrNoData reports input without a single non-empty row.
	ErrNoData = errors.New("file contains no data")
	// ErrNotArray reports JSON input that is not an array of objects.
	ErrNotArray = errors.New("JSON must be an array of objects")
	// ErrUnsupportedFormat reports an extension other than csv or json.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrDelimiter reports CSV input that seems to use another delimiter.
	ErrDelimiter = errors.New("CSV appears to use a different delimiter, convert it to comma-separated")
)

// SourceSnapshot is the only source type: data loaded once from a file.
const SourceSnapshot = "snapshot"

// Format names a supported input encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Source is a loaded dataset plus the schema inferred from its first row.
type Source struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Type        string        `json:"type"`
	LastUpdated time.Time     `json:"lastUpdated"`
	Schema      schema.Schema `json:"schema"`
	Rows        []dataset.Row `json:"-"`
}

// DetectFormat derives the format and compression from a file name.
// compression is "", "gzip" or "zstd".
func DetectFormat(name string) (format Format, compression string, err error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".gz":
		compression = "gzip"
	case ".zst", ".zstd":
		compression = "zstd"
	}
	if compression != "" {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(name, filepath.Ext(name))))
	}

	switch ext {
	case ".csv":
		return FormatCSV, compression, nil
	case ".json":
		return FormatJSON, compression, nil
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Base(name))
}

// LoadFile reads and parses the file at path.
func LoadFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Load(filepath.Base(path), bufio.NewReader(f))
}

// Load parses r as the file called name. The name picks the format and
// becomes the source's display name.
func Load(name string, r io.Reader) (*Source, error) {
	format, compression, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}

	data, err := readAll(r, compression)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	var rows []dataset.Row
	switch format {
	case FormatCSV:
		rows, err = ParseCSV(data)
	case FormatJSON:
		rows, err = ParseJSON(data)
	}
	if err != nil {
		return nil, err
	}

	s, err := schema.FromRows(rows)
	if err != nil {
		return nil, err
	}

	return &Source{
		ID:          uuid.NewString(),
		Name:        name,
		Type:        SourceSnapshot,
		LastUpdated: time.Now().UTC(),
		Schema:      s,
		Rows:        rows,
	}, nil
}

func readAll(r io.Reader, compression string) ([]byte, error) {
	switch compression {
	case "gzip":
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		return io.ReadAll(gz)
	case "zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	}
	return io.ReadAll(r)
}
