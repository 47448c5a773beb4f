// Package refbackend dispatches on a reference's inner URI scheme to a
// registered storage adapter and exposes the primitive read/write/delete
// contract every adapter must satisfy, plus two optional capabilities
// (native atomic swap, versioned writes) that let the core either
// delegate a CAS to the backend or drive its own generic CAS loop.
package refbackend

import (
	"context"
	"strings"

	"github.com/riverford/durable-ref/referr"
	"github.com/riverford/durable-ref/refflags"
	"github.com/riverford/durable-ref/threadsafemap"
)

// Backend is the primitive contract every storage adapter must satisfy.
type Backend interface {
	// Read returns the stored bytes, or present=false if the key is absent.
	// Absent is distinct from an error.
	Read(ctx context.Context, innerURI string, opts map[string]any) (data []byte, present bool, err referr.Error)
	// Write stores data durably; by the time it returns successfully the
	// write has taken effect.
	Write(ctx context.Context, innerURI string, data []byte, opts map[string]any) referr.Error
	// Delete removes innerURI. Deleting a missing key is not an error.
	Delete(ctx context.Context, innerURI string, opts map[string]any) referr.Error
}

// AtomicCapable is an optional capability: the backend can apply fn to
// the current value and store the result transactionally, without the
// core's generic CAS loop.
type AtomicCapable interface {
	AtomicSwap(
		ctx context.Context,
		innerURI string,
		fn func(old []byte, present bool) ([]byte, error),
		opts map[string]any,
	) ([]byte, referr.Error)
}

// VersionedBackend is an optional capability backing the core's generic
// CAS loop: a monotonic version travels alongside the stored bytes, and
// WriteVersioned only applies when expectedVersion matches what's
// currently stored.
type VersionedBackend interface {
	ReadVersioned(
		ctx context.Context,
		innerURI string,
		opts map[string]any,
	) (data []byte, version int64, present bool, err referr.Error)

	// WriteVersioned applies the write iff expectedVersion equals the
	// version currently stored (0 for absent). ok=false with err=nil means
	// the precondition failed and the caller should retry; err != nil is
	// a genuine backend failure.
	WriteVersioned(
		ctx context.Context,
		innerURI string,
		data []byte,
		expectedVersion int64,
		opts map[string]any,
	) (newVersion int64, ok bool, err referr.Error)
}

// Capability bit positions exposed via Registry.Capabilities.
const (
	CapRead uint8 = iota
	CapWrite
	CapDelete
	CapAtomicSwap
	CapVersioned
)

// Registry is the process-wide scheme → Backend table, built on the
// teacher's ThreadSafeMap rather than a hand-rolled mutex.
type Registry struct {
	backends *threadsafemap.ThreadSafeMap[string, Backend]
}

// NewRegistry returns an empty Registry. Concrete deployments register
// their own adapters (Memory, Redis, ...) against it.
func NewRegistry() *Registry {
	return &Registry{backends: threadsafemap.NewThreadSafeMap[string, Backend]()}
}

// Register binds a Backend to an inner-URI scheme, e.g. "mem" or "redis".
func (r *Registry) Register(scheme string, b Backend) {
	r.backends.Set(scheme, b)
}

// Schemes lists every scheme a backend is registered under.
func (r *Registry) Schemes() []string {
	return r.backends.Keys()
}

func schemeOf(innerURI string) (string, bool) {
	idx := strings.Index(innerURI, "://")
	if idx == -1 {
		return "", false
	}

	return innerURI[:idx], true
}

func (r *Registry) resolve(innerURI string) (Backend, referr.Error) {
	scheme, ok := schemeOf(innerURI)
	if !ok {
		return nil, referr.FromError(referr.KindUnknownScheme, ErrMalformedInner, "resolve backend for "+innerURI)
	}

	b, ok := r.backends.Get(scheme)
	if !ok {
		return nil, referr.FromError(referr.KindUnknownScheme, ErrUnknownScheme, "resolve backend for scheme "+scheme)
	}

	return b, nil
}

// Read dispatches to the backend registered for innerURI's scheme.
func (r *Registry) Read(ctx context.Context, innerURI string, opts map[string]any) ([]byte, bool, referr.Error) {
	b, err := r.resolve(innerURI)
	if err != nil {
		return nil, false, err
	}

	return b.Read(ctx, innerURI, opts)
}

// Write dispatches to the backend registered for innerURI's scheme.
func (r *Registry) Write(ctx context.Context, innerURI string, data []byte, opts map[string]any) referr.Error {
	b, err := r.resolve(innerURI)
	if err != nil {
		return err
	}

	return b.Write(ctx, innerURI, data, opts)
}

// Delete dispatches to the backend registered for innerURI's scheme.
func (r *Registry) Delete(ctx context.Context, innerURI string, opts map[string]any) referr.Error {
	b, err := r.resolve(innerURI)
	if err != nil {
		return err
	}

	return b.Delete(ctx, innerURI, opts)
}

// AtomicSwap dispatches to the backend's native atomic swap. Fails with
// referr.KindUnsupportedOperation if the resolved backend doesn't
// implement AtomicCapable.
func (r *Registry) AtomicSwap(
	ctx context.Context,
	innerURI string,
	fn func(old []byte, present bool) ([]byte, error),
	opts map[string]any,
) ([]byte, referr.Error) {
	b, err := r.resolve(innerURI)
	if err != nil {
		return nil, err
	}

	atomic, ok := b.(AtomicCapable)
	if !ok {
		return nil, referr.FromError(referr.KindUnsupportedOperation, ErrNoAtomicSwap, "atomic_swap on "+innerURI)
	}

	return atomic.AtomicSwap(ctx, innerURI, fn, opts)
}

// ReadVersioned dispatches to the backend's versioned read, for the
// generic CAS loop. Fails with referr.KindUnsupportedOperation if the
// resolved backend doesn't implement VersionedBackend.
func (r *Registry) ReadVersioned(
	ctx context.Context,
	innerURI string,
	opts map[string]any,
) ([]byte, int64, bool, referr.Error) {
	b, err := r.resolve(innerURI)
	if err != nil {
		return nil, 0, false, err
	}

	versioned, ok := b.(VersionedBackend)
	if !ok {
		return nil, 0, false, referr.FromError(
			referr.KindUnsupportedOperation,
			ErrNoVersioning,
			"read_versioned on "+innerURI,
		)
	}

	return versioned.ReadVersioned(ctx, innerURI, opts)
}

// WriteVersioned dispatches to the backend's versioned write, for the
// generic CAS loop. Fails with referr.KindUnsupportedOperation if the
// resolved backend doesn't implement VersionedBackend.
func (r *Registry) WriteVersioned(
	ctx context.Context,
	innerURI string,
	data []byte,
	expectedVersion int64,
	opts map[string]any,
) (int64, bool, referr.Error) {
	b, err := r.resolve(innerURI)
	if err != nil {
		return 0, false, err
	}

	versioned, ok := b.(VersionedBackend)
	if !ok {
		return 0, false, referr.FromError(
			referr.KindUnsupportedOperation,
			ErrNoVersioning,
			"write_versioned on "+innerURI,
		)
	}

	return versioned.WriteVersioned(ctx, innerURI, data, expectedVersion, opts)
}

// Capabilities reports the registered backend's supported operations for
// scheme as a refflags bitmask, so callers can decide up front whether
// Atomic kind is viable rather than discovering UnsupportedOperation at
// call time. ok is false if no backend is registered under scheme.
func (r *Registry) Capabilities(scheme string) (flags uint8, ok bool) {
	b, found := r.backends.Get(scheme)
	if !found {
		return 0, false
	}

	bits := []uint8{CapRead, CapWrite, CapDelete}

	if _, yes := b.(AtomicCapable); yes {
		bits = append(bits, CapAtomicSwap)
	}

	if _, yes := b.(VersionedBackend); yes {
		bits = append(bits, CapVersioned)
	}

	packed, packErr := refflags.PackBitIndexes[uint8](bits)
	if packErr != nil {
		return 0, false
	}

	return packed, true
}
