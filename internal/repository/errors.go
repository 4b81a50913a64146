// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios: for
// example, ErrDuplicateClaim signals that the caller already filed a
// claim for the same item and maps to an HTTP 400 response.
package repository

import "errors"

// ErrItemNotFound is returned when an item id does not resolve to a row.
var ErrItemNotFound = errors.New("item not found")

// ErrClaimNotFound is returned when a claim id does not resolve to a row.
var ErrClaimNotFound = errors.New("claim not found")

// ErrUserNotFound is returned when a user id or email does not resolve.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when registering with an email that is
// already taken. Handlers translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicateClaim is returned when the same claimant files a second
// claim against the same item.
var ErrDuplicateClaim = errors.New("duplicate claim")
