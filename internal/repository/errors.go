// Package repository implements database/sql persistence for the
// registration service.  Sentinel errors defined here let handlers map
// failure scenarios onto HTTP responses without inspecting driver errors.
package repository

import "errors"

// ErrEmailExists is returned when an insert would violate the unique email
// constraint on the users table.  Handlers translate this into a field-level
// validation message rather than a 500.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when an update or delete matched no row.  Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")
