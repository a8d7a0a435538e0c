package repl

import "errors"

// ErrOutOfBounds is returned for history indexes outside the entry list.
var ErrOutOfBounds = errors.New("index out of range")
