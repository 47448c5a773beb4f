package ref

import (
	"context"

	"github.com/riverford/durable-ref/referr"
	"github.com/riverford/durable-ref/refopts"
)

// ReadOnly is a bare inner URI with no kind prefix: readable like Volatile,
// but every mutation is rejected with KindReadOnly.
type ReadOnly struct {
	base
}

var _ Reference = (*ReadOnly)(nil)

func (r *ReadOnly) derefBytes(ctx context.Context, opts *refopts.ReadOpts) ([]byte, referr.Error) {
	data, present, err := r.core.Backends.Read(ctx, r.innerURI, optsMap(opts))
	if err != nil {
		return nil, err
	}

	if !present {
		return nil, referr.FromError(referr.KindMissingValue, ErrAbsent, "deref "+r.uri)
	}

	return data, nil
}

func (r *ReadOnly) overwriteBytes(context.Context, []byte, *refopts.WriteOpts) referr.Error {
	return referr.FromError(referr.KindReadOnly, ErrReadOnly, "overwrite "+r.uri)
}

func (r *ReadOnly) deleteRef(context.Context, *refopts.DeleteOpts) referr.Error {
	return referr.FromError(referr.KindReadOnly, ErrReadOnly, "delete "+r.uri)
}

func (r *ReadOnly) atomicSwapBytes(
	context.Context,
	func(old []byte, present bool) ([]byte, error),
	*refopts.SharedOpts,
) ([]byte, referr.Error) {
	return nil, referr.FromError(referr.KindReadOnly, ErrReadOnly, "atomic_swap "+r.uri)
}
