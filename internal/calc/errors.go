package calc

import "errors"

// ErrInvariant marks an internal consistency failure in a calculator
// (period durations not summing, subdivision gaps). A chart computation
// that hits this must fail loudly rather than return wrong timing data.
var ErrInvariant = errors.New("calculator invariant violated")
