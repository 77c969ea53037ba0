package directory

import "strconv"

// UnknownSentinel is the persisted representation of an unresolved prefix.
const UnknownSentinel = "unknown"

// Prefix is a county license-plate prefix. It is either a known number or
// the unknown sentinel; the zero value is unknown.
type Prefix struct {
	value int
	known bool
}

// KnownPrefix returns a resolved prefix with the given number.
func KnownPrefix(n int) Prefix {
	return Prefix{value: n, known: true}
}

// UnknownPrefix returns the unresolved prefix sentinel.
func UnknownPrefix() Prefix {
	return Prefix{}
}

// ParsePrefix interprets a stored prefix field. Numeric values become known
// prefixes; the empty string, the sentinel, and anything unparseable are
// unknown.
func ParsePrefix(s string) Prefix {
	n, err := strconv.Atoi(s)
	if err != nil {
		return UnknownPrefix()
	}
	return KnownPrefix(n)
}

// Known reports the prefix number and whether it is resolved.
func (p Prefix) Known() (int, bool) {
	return p.value, p.known
}

// String renders the prefix for display and persistence: the number when
// known, otherwise the unknown sentinel.
func (p Prefix) String() string {
	if !p.known {
		return UnknownSentinel
	}
	return strconv.Itoa(p.value)
}
