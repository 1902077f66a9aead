package types

import "errors"

// ErrInvalidPrecondition marks data that must never reach the backtest core:
// non-positive closes, unordered dates or series of mismatched length.
var ErrInvalidPrecondition = errors.New("invalid precondition")
