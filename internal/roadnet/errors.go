package roadnet

import "errors"

// ErrUnreachable indicates one or more settlements could not be connected
// to the network by any search in any round.
var ErrUnreachable = errors.New("roadnet: settlements unreachable by road")
