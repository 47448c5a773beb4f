// Package ref implements the four reference kinds (§4.4): Value, Volatile,
// Atomic and ReadOnly, wired against the refbackend/refcodec registries and
// the refintern canonicalization pool. Callers obtain a Reference by
// parsing a URI through a Core, or by persisting a value with Persist; the
// typed Deref/Overwrite/AtomicSwap/Reset helpers then encode and decode
// through whichever codec the reference's URI suffix resolves to.
package ref

import (
	"context"

	"github.com/riverford/durable-ref/referr"
	"github.com/riverford/durable-ref/refopts"
	"github.com/riverford/durable-ref/refuri"
)

// Reference is the common capability set every kind exposes. Kinds that
// don't support a given mutation (Value and ReadOnly for writes, every
// kind but Atomic for atomic_swap) still implement the method and reject
// the call with a typed error, so callers can hold any kind behind this
// interface and discover its capabilities by calling them.
type Reference interface {
	// URI returns the full, normalized reference URI, kind prefix included.
	URI() string
	// Kind reports which of the four reference kinds this is.
	Kind() refuri.Kind

	derefBytes(ctx context.Context, opts *refopts.ReadOpts) ([]byte, referr.Error)
	overwriteBytes(ctx context.Context, data []byte, opts *refopts.WriteOpts) referr.Error
	deleteRef(ctx context.Context, opts *refopts.DeleteOpts) referr.Error
	atomicSwapBytes(
		ctx context.Context,
		fn func(old []byte, present bool) ([]byte, error),
		opts *refopts.SharedOpts,
	) ([]byte, referr.Error)
	coreOf() *Core
}

// base is embedded by every concrete reference kind; it carries the
// identity fields equality and hashing are defined over (§4.7).
type base struct {
	uri      string
	innerURI string
	kind     refuri.Kind
	core     *Core
}

func (b *base) URI() string       { return b.uri }
func (b *base) Kind() refuri.Kind { return b.kind }
func (b *base) coreOf() *Core     { return b.core }

// Equal reports whether a and b denote the same reference: equal kind and
// equal (normalized) URI. Cached values, origin back-links and interning
// status never participate.
func Equal(a, b Reference) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Kind() == b.Kind() && a.URI() == b.URI()
}

// Key returns a string solely derived from r's kind and URI, suitable as a
// map key or hash input for callers that need to deduplicate references.
func Key(r Reference) string {
	return r.Kind().String() + ":" + r.URI()
}

func joinChild(baseURI, name string) string {
	if baseURI == "" {
		return name
	}

	if baseURI[len(baseURI)-1] == '/' {
		return baseURI + name
	}

	return baseURI + "/" + name
}
