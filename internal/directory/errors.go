package directory

import "errors"

// ErrNotFound indicates that a city has no entry in the directory.
var ErrNotFound = errors.New("city not found")
