// Package repository implements data access over MySQL. This file defines
// sentinel error values shared across repositories so handlers can map
// failure modes to distinct HTTP responses. Not-found conditions are
// reported as sql.ErrNoRows, following the database/sql convention.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts a mutation on a
// resource owned by another account, such as fulfilling someone else's
// blood request. Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidState is returned when a lifecycle transition is illegal, such
// as fulfilling a request that is no longer pending. Handlers translate
// this into HTTP 409.
var ErrInvalidState = errors.New("invalid state")
