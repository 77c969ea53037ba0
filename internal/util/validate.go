package util

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateName checks that a city or county name is acceptable directory
// input:
//   - Not empty after trimming surrounding whitespace
//   - Only letters once spaces are ignored (multi-word names are fine)
//
// The same rule applies to city names and county names.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name cannot be empty")
	}

	for _, r := range trimmed {
		if r == ' ' {
			continue
		}
		if !unicode.IsLetter(r) {
			return fmt.Errorf("name %q may only contain letters and spaces", trimmed)
		}
	}

	return nil
}
