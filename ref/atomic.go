package ref

import (
	"bytes"
	"context"

	"github.com/riverford/durable-ref/referr"
	"github.com/riverford/durable-ref/refopts"
)

// Atomic is a Volatile reference that additionally supports atomic_swap: a
// compare-and-swap over its stored bytes, either delegated natively to a
// backend implementing refbackend.AtomicCapable or driven by a generic
// read-decode-apply-encode-write loop against refbackend.VersionedBackend.
type Atomic struct {
	Volatile
}

var _ Reference = (*Atomic)(nil)

func (a *Atomic) atomicSwapBytes(
	ctx context.Context,
	fn func(old []byte, present bool) ([]byte, error),
	opts *refopts.SharedOpts,
) ([]byte, referr.Error) {
	result, nativeErr := a.core.Backends.AtomicSwap(ctx, a.innerURI, fn, optsMap(opts))
	if nativeErr == nil {
		return result, nil
	}

	if nativeErr.Kind() != referr.KindUnsupportedOperation {
		return nil, nativeErr
	}

	return a.casLoop(ctx, fn, opts)
}

// casLoop implements the generic CAS loop (§4.4, §8 property 11) against
// refbackend.VersionedBackend: read the current bytes and version, apply
// fn, and write back conditioned on the version observed. A precondition
// failure retries after backing off; opts.CasBackOffFn governs the
// back-off and may bound the retry count by returning an error, which
// surfaces as referr.KindCasAborted. With no hook, retries back off
// through a.core.CASBackoff and never give up on their own.
func (a *Atomic) casLoop(
	ctx context.Context,
	fn func(old []byte, present bool) ([]byte, error),
	opts *refopts.SharedOpts,
) ([]byte, referr.Error) {
	optsM := optsMap(opts)
	backoff := a.core.CASBackoff()

	for retry := 0; ; retry++ {
		old, version, present, err := a.core.Backends.ReadVersioned(ctx, a.innerURI, optsM)
		if err != nil {
			return nil, err
		}

		next, applyErr := fn(old, present)
		if applyErr != nil {
			if re, ok := applyErr.(referr.Error); ok {
				return nil, re.Wrap("atomic_swap apply " + a.uri)
			}

			return nil, referr.FromError(referr.KindBackendError, applyErr, "atomic_swap apply "+a.uri)
		}

		if present && bytes.Equal(next, old) {
			return next, nil
		}

		_, ok, err := a.core.Backends.WriteVersioned(ctx, a.innerURI, next, version, optsM)
		if err != nil {
			return nil, err
		}

		if ok {
			return next, nil
		}

		if a.core.Log != nil {
			a.core.Log.Debugf("atomic_swap %s: version precondition failed, retry %d", a.uri, retry)
		}

		if opts != nil && opts.CasBackOffFn != nil {
			if hookErr := opts.CasBackOffFn(retry); hookErr != nil {
				return nil, referr.FromError(referr.KindCasAborted, hookErr, "atomic_swap aborted "+a.uri)
			}

			continue
		}

		backoff.Wait()
	}
}

// AtomicSwap applies fn to a's current decoded value and writes the
// result back, retrying on contention until it wins or the back-off hook
// aborts the loop. fn is called with present=false and a zero old when no
// value has been stored yet.
func AtomicSwap[T any](
	ctx context.Context,
	a *Atomic,
	fn func(old T, present bool) (T, error),
	opts *refopts.SharedOpts,
) (T, referr.Error) {
	var zero T

	rawFn := func(old []byte, present bool) ([]byte, error) {
		var oldVal T

		if present {
			if derr := a.core.Codecs.Decode(a.uri, old, &oldVal, optsMap(opts)); derr != nil {
				return nil, derr
			}
		}

		newVal, err := fn(oldVal, present)
		if err != nil {
			return nil, err
		}

		data, eerr := a.core.Codecs.Encode(a.uri, newVal, optsMap(opts))
		if eerr != nil {
			return nil, eerr
		}

		return data, nil
	}

	data, err := a.atomicSwapBytes(ctx, rawFn, opts)
	if err != nil {
		return zero, err
	}

	var out T
	if derr := a.core.Codecs.Decode(a.uri, data, &out, optsMap(opts)); derr != nil {
		return zero, derr
	}

	return out, nil
}

// Reset unconditionally overwrites a with value, bypassing the CAS loop.
func Reset[T any](ctx context.Context, a *Atomic, value T, opts *refopts.WriteOpts) (T, referr.Error) {
	var zero T

	data, err := a.core.Codecs.Encode(a.uri, value, optsMap(opts))
	if err != nil {
		return zero, err
	}

	if werr := a.overwriteBytes(ctx, data, opts); werr != nil {
		return zero, werr
	}

	return value, nil
}
