package repository

import "errors"

// ErrNotFound is returned when an id does not resolve to a document.
var ErrNotFound = errors.New("document not found")
