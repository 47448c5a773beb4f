package refcodec

import "errors"

var (
	ErrNoCodec         = errors.New("no codec registered for format")
	ErrNotByteSlice    = errors.New("wrapper codec requires a []byte value when no inner format is given")
	ErrNotByteSlicePtr = errors.New("wrapper codec requires a *[]byte destination when no inner format is given")
)
