// Package directory holds the in-memory city directory: the merged mapping
// from city name to county and license-plate prefix that every lookup and
// add operation works against.
//
// Keys are lowercase-normalized city names; display forms are kept on the
// records themselves. The directory is built once at startup from the
// reference dataset and the user store, and mutated in memory when the user
// confirms a new entry.
package directory

import (
	"fmt"
	"sort"

	"bigskydata/mtcounties/internal/util"
)

// Record is a single city entry.
type Record struct {
	// City is the display form of the city name (title-cased).
	City string

	// County is the county name without the "County" suffix.
	County string

	// Prefix is the county's license-plate prefix.
	Prefix Prefix
}

// Summary renders the record as the standard lookup result line.
func (r Record) Summary() string {
	return fmt.Sprintf("%s is in %s County (License Prefix %s)", r.City, r.County, r.Prefix)
}

// Directory maps normalized city names to records.
type Directory map[string]Record

// New returns an empty directory.
func New() Directory {
	return make(Directory)
}

// Insert adds or replaces the entry for city and returns the stored record.
// The key is lowercase-normalized; the stored city name is title-cased for
// display.
func (d Directory) Insert(city, county string, prefix Prefix) Record {
	rec := Record{
		City:   util.TitleCase(city),
		County: util.TitleCase(county),
		Prefix: prefix,
	}
	d[util.NormalizeKey(city)] = rec
	return rec
}

// Lookup probes the directory with a raw city name. Matching is exact after
// lowercase normalization; there is no partial or fuzzy matching.
func (d Directory) Lookup(city string) (Record, bool) {
	rec, ok := d[util.NormalizeKey(city)]
	return rec, ok
}

// PrefixForCounty returns the prefix of an existing county matching the
// given name case-insensitively, if any. Records are scanned in sorted key
// order so the result is deterministic when duplicate county spellings
// carry different prefixes.
func (d Directory) PrefixForCounty(county string) (Prefix, bool) {
	want := util.NormalizeKey(county)
	for _, key := range d.sortedKeys() {
		rec := d[key]
		if util.NormalizeKey(rec.County) == want {
			return rec.Prefix, true
		}
	}
	return UnknownPrefix(), false
}

// Records returns all entries sorted by city key.
func (d Directory) Records() []Record {
	keys := d.sortedKeys()
	records := make([]Record, 0, len(keys))
	for _, key := range keys {
		records = append(records, d[key])
	}
	return records
}

func (d Directory) sortedKeys() []string {
	keys := make([]string, 0, len(d))
	for key := range d {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
