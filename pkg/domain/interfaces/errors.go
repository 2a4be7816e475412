package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned by all repository backends when a record does not
// exist. The accessor service recovers it to estimated defaults; it never
// surfaces as a user error.
var ErrNotFound = goerr.New("record not found")
