package ref

import (
	"context"
	"crypto/sha1" //nolint:gosec // content addressing, not a security digest
	"encoding/hex"
	"strings"
	"sync"

	"github.com/riverford/durable-ref/referr"
	"github.com/riverford/durable-ref/refopts"
	"github.com/riverford/durable-ref/refuri"
)

// Value is an immutable, content-addressed, cached, interned reference.
// Its final path segment embeds the lowercase hex SHA-1 of its encoded
// bytes, so two Values with equal content and format resolve to the same
// URI and, through the intern pool, the same canonical instance.
type Value struct {
	base

	mu    sync.Mutex
	cache *cacheCell
}

type cacheCell struct {
	value any
}

var _ Reference = (*Value)(nil)

// Evict clears the cache cell, forcing the next Deref to read and decode
// from storage again. It does not remove the stored bytes.
func (v *Value) Evict() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cache = nil
}

// derefBytes reads and verifies v's stored bytes; it is only called on a
// cache miss, from Deref[T].
func (v *Value) derefBytes(ctx context.Context, opts *refopts.ReadOpts) ([]byte, referr.Error) {
	data, present, err := v.core.Backends.Read(ctx, v.innerURI, optsMap(opts))
	if err != nil {
		return nil, err
	}

	if !present {
		return nil, referr.FromError(referr.KindMissingValue, ErrAbsent, "deref "+v.uri)
	}

	if v.core.HashVerification() && !(opts != nil && opts.NoVerify) {
		if err := verifyHash(v.uri, data); err != nil {
			return nil, err
		}
	}

	return data, nil
}

func verifyHash(uri string, data []byte) referr.Error {
	sum := sha1.Sum(data) //nolint:gosec
	hexSum := hex.EncodeToString(sum[:])

	if !strings.Contains(strings.ToLower(uri), hexSum) {
		return referr.FromError(referr.KindChecksumMismatch, ErrChecksumMismatch, "verify "+uri)
	}

	return nil
}

func (v *Value) overwriteBytes(context.Context, []byte, *refopts.WriteOpts) referr.Error {
	return referr.FromError(referr.KindReadOnly, ErrReadOnly, "overwrite "+v.uri)
}

func (v *Value) deleteRef(context.Context, *refopts.DeleteOpts) referr.Error {
	return referr.FromError(referr.KindReadOnly, ErrReadOnly, "delete "+v.uri)
}

func (v *Value) atomicSwapBytes(
	context.Context,
	func(old []byte, present bool) ([]byte, error),
	*refopts.SharedOpts,
) ([]byte, referr.Error) {
	return nil, referr.FromError(referr.KindReadOnly, ErrReadOnly, "atomic_swap "+v.uri)
}

func optsMap(o any) map[string]any {
	switch opts := o.(type) {
	case *refopts.ReadOpts:
		if opts == nil {
			return nil
		}

		return opts.Opts
	case *refopts.WriteOpts:
		if opts == nil {
			return nil
		}

		return opts.Opts
	case *refopts.DeleteOpts:
		if opts == nil {
			return nil
		}

		return opts.Opts
	case *refopts.SharedOpts:
		if opts == nil {
			return nil
		}

		return opts.Opts
	default:
		return nil
	}
}

// Deref returns r's current value, decoded as T. For a Value reference, a
// populated cache cell is returned directly without touching storage; for
// every other kind it always reads and decodes from storage.
func Deref[T any](ctx context.Context, r Reference, opts *refopts.ReadOpts) (T, referr.Error) {
	if v, ok := r.(*Value); ok {
		return derefValue[T](ctx, v, opts)
	}

	var zero T

	data, err := r.derefBytes(ctx, opts)
	if err != nil {
		return zero, err
	}

	var out T
	if derr := r.coreOf().Codecs.Decode(r.URI(), data, &out, optsMap(opts)); derr != nil {
		return zero, derr
	}

	return out, nil
}

// derefValue is Value's cache-aware deref path: a miss reads and decodes
// under v's lock, double-checking the cache so concurrent misses for the
// same reference decode only once, then populates the cell and attaches v
// as the decoded value's origin if it implements OriginAttacher.
func derefValue[T any](ctx context.Context, v *Value, opts *refopts.ReadOpts) (T, referr.Error) {
	var zero T

	v.mu.Lock()
	defer v.mu.Unlock()

	if opts == nil || !opts.SkipCache {
		if v.cache != nil {
			typed, ok := v.cache.value.(T)
			if !ok {
				return zero, referr.FromError(referr.KindCodecError, ErrCacheTypeMismatch, "deref "+v.uri)
			}

			return typed, nil
		}
	}

	data, err := v.derefBytes(ctx, opts)
	if err != nil {
		return zero, err
	}

	var out T
	if derr := v.core.Codecs.Decode(v.uri, data, &out, optsMap(opts)); derr != nil {
		return zero, derr
	}

	attachOrigin(&out, v)
	v.cache = &cacheCell{value: out}

	return out, nil
}

// Persist encodes value with opts.Format, computes its content-addressed
// URI under baseInnerURI, and writes it if no live canonical reference for
// that URI already exists. It returns the canonical *Value either way, its
// cache pre-populated with value when this call performed the write.
//
// baseInnerURI is the inner URI the value is stored under, without a kind
// prefix or trailing content segment, e.g. "mem://bucket".
func Persist[T any](
	ctx context.Context,
	core *Core,
	baseInnerURI string,
	value T,
	opts *refopts.WriteOpts,
) (*Value, referr.Error) {
	if opts == nil || opts.Format == "" {
		return nil, referr.FromError(referr.KindUnknownFormat, ErrFormatRequired, "persist "+baseInnerURI)
	}

	data, err := core.Codecs.EncodeFormat(opts.Format, value, optsMap(opts))
	if err != nil {
		return nil, err
	}

	sum := sha1.Sum(data) //nolint:gosec
	hexSum := hex.EncodeToString(sum[:])

	rawCandidate := refuri.KindValue.String() + ":" + joinChild(baseInnerURI, hexSum+"."+opts.Format)

	d, perr := refuri.Parse(rawCandidate)
	if perr != nil {
		return nil, perr
	}

	candidate := &Value{base: base{uri: d.Full, innerURI: d.Inner, kind: d.Kind, core: core}}

	if core.Intern.IsInterned(candidate) {
		return core.Intern.Intern(candidate), nil
	}

	if werr := core.Backends.Write(ctx, d.Inner, data, optsMap(opts)); werr != nil {
		return nil, werr
	}

	attachOrigin(&value, candidate)
	candidate.cache = &cacheCell{value: value}

	return core.Intern.Intern(candidate), nil
}
