package refbackend

import "errors"

var (
	ErrUnknownScheme  = errors.New("no backend registered for scheme")
	ErrNoAtomicSwap   = errors.New("backend does not support native atomic swap")
	ErrNoVersioning   = errors.New("backend does not support versioned writes")
	ErrMalformedInner = errors.New("inner uri has no scheme")
)
