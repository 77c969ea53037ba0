// Package userstore reads and appends the user-contributed city file: a
// plain-text, append-only log with one comma-delimited entry per line,
// `city,county[,prefix]`.
//
// The store is optional input — a missing file is an empty store, and the
// file is created by the first append. The file is not safe for concurrent
// writers; the tool assumes a single interactive user.
package userstore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"bigskydata/mtcounties/internal/directory"
	"bigskydata/mtcounties/internal/util"
)

const (
	appDir   = "mtcounties"
	fileName = "cities.txt"
)

// Warning reports a malformed line that was skipped during load.
type Warning struct {
	Line   int
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("user store line %d skipped: %s", w.Line, w.Reason)
}

// DefaultPath returns the default user store location under the platform
// config directory.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("userstore: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// Load reads the store at path. A missing file yields an empty directory.
// Lines with fewer than two fields are skipped and reported as warnings;
// when a line repeats a city, the later line wins. The load is never fatal
// for malformed content, only for I/O failure.
func Load(path string) (directory.Directory, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return directory.New(), nil, nil
		}
		return nil, nil, fmt.Errorf("userstore: failed to open %s: %w", path, err)
	}
	defer f.Close()

	dir, warnings, err := parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("userstore: %s: %w", path, err)
	}
	return dir, warnings, nil
}

func parse(r io.Reader) (directory.Directory, []Warning, error) {
	dir := directory.New()
	var warnings []Warning

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		parts := strings.Split(text, ",")
		if len(parts) < 2 {
			warnings = append(warnings, Warning{Line: line, Reason: "expected at least city and county"})
			continue
		}

		city := strings.TrimSpace(parts[0])
		county := strings.TrimSpace(parts[1])
		if city == "" || county == "" {
			warnings = append(warnings, Warning{Line: line, Reason: "empty city or county field"})
			continue
		}

		prefix := directory.UnknownPrefix()
		if len(parts) > 2 {
			prefix = directory.ParsePrefix(strings.TrimSpace(parts[2]))
		}

		dir[util.NormalizeKey(city)] = directory.Record{
			City:   util.TitleCase(city),
			County: county,
			Prefix: prefix,
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read failed: %w", err)
	}

	return dir, warnings, nil
}

// Append writes one entry to the end of the store, creating the file (and
// its parent directory) if needed. The handle is closed before returning so
// the line is durable once Append succeeds.
func Append(path string, rec directory.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("userstore: failed to create directory for %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("userstore: failed to open %s for append: %w", path, err)
	}

	_, writeErr := fmt.Fprintf(f, "%s,%s,%s\n", util.NormalizeKey(rec.City), rec.County, rec.Prefix)
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("userstore: failed to append to %s: %w", path, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("userstore: failed to close %s: %w", path, closeErr)
	}
	return nil
}
