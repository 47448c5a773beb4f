package ref

import "errors"

var (
	ErrFormatRequired    = errors.New("ref: persist requires a format")
	ErrAbsent            = errors.New("ref: reference has no stored value")
	ErrChecksumMismatch  = errors.New("ref: content hash not found in reference uri")
	ErrReadOnly          = errors.New("ref: reference is read-only")
	ErrNoAtomicSwap      = errors.New("ref: atomic_swap is not supported on this reference kind")
	ErrCacheTypeMismatch = errors.New("ref: cached value does not match the requested type")
)
