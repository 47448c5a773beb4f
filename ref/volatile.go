package ref

import (
	"context"

	"github.com/riverford/durable-ref/referr"
	"github.com/riverford/durable-ref/refopts"
)

// Volatile is a mutable, uncached reference: every Deref and Overwrite
// round-trips through the backend. atomic_swap is rejected; use Atomic for
// compare-and-swap semantics.
type Volatile struct {
	base
}

var _ Reference = (*Volatile)(nil)

func (v *Volatile) derefBytes(ctx context.Context, opts *refopts.ReadOpts) ([]byte, referr.Error) {
	data, present, err := v.core.Backends.Read(ctx, v.innerURI, optsMap(opts))
	if err != nil {
		return nil, err
	}

	if !present {
		return nil, referr.FromError(referr.KindMissingValue, ErrAbsent, "deref "+v.uri)
	}

	return data, nil
}

func (v *Volatile) overwriteBytes(ctx context.Context, data []byte, opts *refopts.WriteOpts) referr.Error {
	return v.core.Backends.Write(ctx, v.innerURI, data, optsMap(opts))
}

func (v *Volatile) deleteRef(ctx context.Context, opts *refopts.DeleteOpts) referr.Error {
	return v.core.Backends.Delete(ctx, v.innerURI, optsMap(opts))
}

func (v *Volatile) atomicSwapBytes(
	context.Context,
	func(old []byte, present bool) ([]byte, error),
	*refopts.SharedOpts,
) ([]byte, referr.Error) {
	return nil, referr.FromError(referr.KindUnsupportedOperation, ErrNoAtomicSwap, "atomic_swap "+v.uri)
}

// Overwrite encodes value with r's own URI format and replaces the stored
// bytes unconditionally. It is rejected with KindReadOnly on a Value or
// ReadOnly reference.
func Overwrite[T any](ctx context.Context, r Reference, value T, opts *refopts.WriteOpts) referr.Error {
	data, err := r.coreOf().Codecs.Encode(r.URI(), value, optsMap(opts))
	if err != nil {
		return err
	}

	return r.overwriteBytes(ctx, data, opts)
}

// Delete removes v's stored value. Deleting an absent value is not an error.
func Delete(ctx context.Context, r Reference, opts *refopts.DeleteOpts) referr.Error {
	return r.deleteRef(ctx, opts)
}
