package refuri

import "errors"

var (
	ErrEmptyURI     = errors.New("reference uri is empty")
	ErrUnknownKind  = errors.New("reference uri has an unrecognized kind prefix")
	ErrMissingInner = errors.New("reference uri has a kind prefix but no inner uri")
)
