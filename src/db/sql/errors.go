package db

import "errors"

// ErrNotFound is returned when a row does not exist or is not visible to
// the calling user. Handlers surface both cases as 404.
var ErrNotFound = errors.New("not found")
