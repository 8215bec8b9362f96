// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrBookNotFound signals that a catalog lookup missed, which
// handlers translate into an HTTP 404, while ErrEmailExists (defined in
// user_repository.go) maps a duplicate signup to an HTTP 400.
package repository

import "errors"

// ErrBookNotFound is returned when a book id is absent from the
// catalog. Handlers should translate this into an HTTP 404 response.
var ErrBookNotFound = errors.New("book not found")
