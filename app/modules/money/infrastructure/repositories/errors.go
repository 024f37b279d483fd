package moneydb

import "errors"

// ErrNotFound indicates no money round is stored for the round.
var ErrNotFound = errors.New("money round not found")
