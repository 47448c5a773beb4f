// Package refopts defines the nested options a reference operation
// accepts (§6.2): per-operation scoped maps plus a handful of named
// boolean toggles, with a Flags bitmask auto-derived from those toggles
// via refautoflags for logging/debugging. The named fields remain the
// public API; Flags is read-only convenience.
package refopts

import "github.com/riverford/durable-ref/refautoflags"

// ReadOpts configures a deref. Opts is the open, nested
// {scheme.<name>.<adapter>. …} / {format.<name>.<adapter>. …} map forwarded
// verbatim to the resolved backend and codec.
type ReadOpts struct {
	Consistent bool
	SkipCache  bool
	NoVerify   bool
	Opts       map[string]any
	Flags      uint8
}

// WriteOpts configures an overwrite or persist. Format selects the codec
// suffix persist encodes the value with (spec's `{as:f}`); it is ignored
// by Overwrite, which reuses the target reference's own URI suffix.
type WriteOpts struct {
	Consistent bool
	Format     string
	Opts       map[string]any
	Flags      uint8
}

// DeleteOpts configures a delete.
type DeleteOpts struct {
	Opts map[string]any
}

// CasBackOffFn is invoked by the generic CAS loop between retries, given
// the zero-based retry index. Returning a non-nil error bounds the retry
// count and surfaces as referr.KindCasAborted; returning nil retries
// again with no bound imposed by the core.
type CasBackOffFn func(retry int) error

// SharedOpts carries cross-cutting options not specific to one
// operation: credentials forwarded to the backend, and the CAS back-off
// hook used by Atomic.atomic_swap's generic loop.
type SharedOpts struct {
	Credentials  map[string]any
	CasBackOffFn CasBackOffFn
	Opts         map[string]any
}

// Opts bundles the per-operation option sets a Reference method accepts.
// Any field may be nil to take the zero value for that operation.
type Opts struct {
	Read   *ReadOpts
	Write  *WriteOpts
	Delete *DeleteOpts
	Shared *SharedOpts
}

const (
	keyReadOpts     = "read-opts"
	keyWriteOpts    = "write-opts"
	keyDeleteOpts   = "delete-opts"
	keySharedOpts   = "shared-opts"
	keyCredentials  = "credentials"
	keyCasBackOffFn = "cas-back-off-fn"
	keyConsistent   = "consistent"
)

// ToMap flattens Opts into the open map[string]any that refbackend and
// refcodec primitives expect, under the recognized keys of §6.2.
func (o *Opts) ToMap() map[string]any {
	m := make(map[string]any)

	if o == nil {
		return m
	}

	if o.Read != nil {
		m[keyReadOpts] = o.Read.Opts
		m[keyConsistent] = o.Read.Consistent
	}

	if o.Write != nil {
		m[keyWriteOpts] = o.Write.Opts
	}

	if o.Delete != nil {
		m[keyDeleteOpts] = o.Delete.Opts
	}

	if o.Shared != nil {
		m[keySharedOpts] = o.Shared.Opts
		m[keyCredentials] = o.Shared.Credentials
		m[keyCasBackOffFn] = o.Shared.CasBackOffFn
	}

	return m
}

// PackReadFlags derives ReadOpts.Flags from its boolean fields.
func PackReadFlags(o *ReadOpts) error {
	return refautoflags.PackFlags(o)
}

// PackWriteFlags derives WriteOpts.Flags from its boolean fields.
func PackWriteFlags(o *WriteOpts) error {
	return refautoflags.PackFlags(o)
}
