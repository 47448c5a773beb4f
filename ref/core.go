package ref

import (
	"sync/atomic"

	"github.com/riverford/durable-ref/refbackend"
	"github.com/riverford/durable-ref/refbackoff"
	"github.com/riverford/durable-ref/refcodec"
	"github.com/riverford/durable-ref/referr"
	"github.com/riverford/durable-ref/reflog"
	"github.com/riverford/durable-ref/refintern"
	"github.com/riverford/durable-ref/refuri"
)

// Core bundles the registries a deployment wires up once at startup: which
// backends serve which inner-URI schemes, which codecs serve which format
// suffixes, and the process-wide intern pool Value references canonicalize
// through. A Core is safe for concurrent use once constructed.
type Core struct {
	Backends *refbackend.Registry
	Codecs   *refcodec.Registry
	Intern   *refintern.Pool[Value]
	Log      reflog.Logger

	// CASBackoff builds the back-off a casLoop retries through when no
	// per-call refopts.CasBackOffFn is supplied. Called once per
	// Atomic.casLoop invocation, since an Exponential carries retry state
	// across its own Wait calls and must not be shared between loops.
	CASBackoff func() refbackoff.Backoff

	verify atomic.Bool
}

// NewCore builds a Core from the given registries. verifyHashes sets the
// initial hash-verification toggle (§4.6); SetHashVerification flips it at
// runtime. log may be nil, in which case Core logs nothing. CASBackoff
// defaults to an Exponential with package defaults; override it (e.g. from
// refconfig.Settings) to change the CAS loop's default retry delay.
func NewCore(backends *refbackend.Registry, codecs *refcodec.Registry, verifyHashes bool, log reflog.Logger) *Core {
	c := &Core{
		Backends: backends,
		Codecs:   codecs,
		Log:      log,
		CASBackoff: func() refbackoff.Backoff {
			b := refbackoff.NewExponential(0, 0, 0, 0)

			return &b
		},
	}
	c.Intern = refintern.New(func(v *Value) string { return v.uri }, 0)
	c.verify.Store(verifyHashes)

	return c
}

// HashVerification reports whether deref checks that a Value's content
// hash appears in its own URI before returning decoded bytes.
func (c *Core) HashVerification() bool { return c.verify.Load() }

// SetHashVerification flips the hash-verification toggle.
func (c *Core) SetHashVerification(enabled bool) { c.verify.Store(enabled) }

// Parse classifies uri into the matching reference kind. Value references
// are returned through the intern pool, so two Parse calls for the same
// URI while either result is still live return the identical pointer.
func (c *Core) Parse(uri string) (Reference, referr.Error) {
	d, err := refuri.Parse(uri)
	if err != nil {
		return nil, err
	}

	switch d.Kind {
	case refuri.KindValue:
		return c.internedValue(d), nil
	case refuri.KindVolatile:
		return &Volatile{base: base{uri: d.Full, innerURI: d.Inner, kind: d.Kind, core: c}}, nil
	case refuri.KindAtomic:
		return &Atomic{Volatile: Volatile{base: base{uri: d.Full, innerURI: d.Inner, kind: d.Kind, core: c}}}, nil
	default:
		return &ReadOnly{base: base{uri: d.Full, innerURI: d.Inner, kind: d.Kind, core: c}}, nil
	}
}

func (c *Core) internedValue(d refuri.Descriptor) *Value {
	candidate := &Value{base: base{uri: d.Full, innerURI: d.Inner, kind: d.Kind, core: c}}

	return c.Intern.Intern(candidate)
}
