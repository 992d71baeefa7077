package pathfind

import "errors"

var (
	// ErrMissingCallback indicates the Finder was run with one of its five
	// callbacks unset.
	ErrMissingCallback = errors.New("pathfind: all five callbacks must be set before Run")
	// ErrNoStartNode indicates Run was called before AddStart.
	ErrNoStartNode = errors.New("pathfind: no start node added")
)
