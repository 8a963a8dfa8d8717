package repository

import "errors"

// ErrDuplicateKey is returned by inserts that hit a uniqueness
// constraint. Usecases translate it into their own duplicate/idempotent
// semantics; it never reaches a handler directly.
var ErrDuplicateKey = errors.New("duplicate key")
