package record

import "errors"

// ErrInvalidCount indicates a negative insert count.
var ErrInvalidCount = errors.New("invalid insert count")
