// Package refdata loads the authoritative city/county/prefix reference
// dataset. A statewide dataset of Montana county seats ships embedded in the
// binary; a configured file path takes precedence when set.
//
// Reference data is foundational: any format problem is a fatal startup
// error rather than something to recover from mid-session.
package refdata

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"bigskydata/mtcounties/internal/directory"
	"bigskydata/mtcounties/internal/util"
)

//go:embed counties.csv
var embeddedCounties []byte

// Required header columns, by name.
const (
	colCity   = "city"
	colCounty = "county"
	colPrefix = "prefix"
)

// FormatError describes a malformed reference file. Row 1 is the header.
type FormatError struct {
	Row    int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("refdata: row %d: %s", e.Row, e.Reason)
}

// LoadDefault parses the embedded statewide dataset.
func LoadDefault() (directory.Directory, error) {
	return Parse(bytes.NewReader(embeddedCounties))
}

// LoadFile parses the reference file at path. If path is empty the embedded
// dataset is used.
func LoadFile(path string) (directory.Directory, error) {
	if path == "" {
		return LoadDefault()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("refdata: failed to open %s: %w", path, err)
	}
	defer f.Close()

	dir, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("refdata: %s: %w", path, err)
	}
	return dir, nil
}

// Parse reads a reference dataset with a header row and required columns
// city, county, and prefix. The prefix column must parse as an integer.
func Parse(r io.Reader) (directory.Directory, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &FormatError{Row: 1, Reason: "missing header row"}
		}
		return nil, fmt.Errorf("refdata: failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[util.NormalizeKey(name)] = i
	}
	for _, required := range []string{colCity, colCounty, colPrefix} {
		if _, ok := columns[required]; !ok {
			return nil, &FormatError{Row: 1, Reason: fmt.Sprintf("missing required column %q", required)}
		}
	}

	dir := directory.New()
	row := 1
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("refdata: failed to read row %d: %w", row, err)
		}

		city := strings.TrimSpace(fields[columns[colCity]])
		county := strings.TrimSpace(fields[columns[colCounty]])
		prefixField := strings.TrimSpace(fields[columns[colPrefix]])

		prefix, err := strconv.Atoi(prefixField)
		if err != nil {
			return nil, &FormatError{Row: row, Reason: fmt.Sprintf("prefix %q is not a number", prefixField)}
		}

		dir[util.NormalizeKey(city)] = directory.Record{
			City:   util.TitleCase(city),
			County: county,
			Prefix: directory.KnownPrefix(prefix),
		}
	}

	return dir, nil
}
