package ref

import "weak"

// OriginAttacher lets a decoded value carry a back-link to the Value
// reference it was derefed or persisted from (§3 Origin back-link, §13
// ExistingRef). Implementations should embed OriginLink rather than
// hand-rolling the weak pointer: the link must not keep the Value alive
// once its cache cell has been evicted or collected.
type OriginAttacher interface {
	AttachOrigin(origin *Value)
	Origin() (*Value, bool)
}

// OriginLink is an embeddable OriginAttacher backed by a weak pointer, so a
// value holding one never itself keeps its originating Value reference
// alive.
type OriginLink struct {
	origin weak.Pointer[Value]
}

func (o *OriginLink) AttachOrigin(v *Value) { o.origin = weak.Make(v) }

func (o *OriginLink) Origin() (*Value, bool) {
	v := o.origin.Value()

	return v, v != nil
}

// ExistingRef recovers the Value reference value originated from, if value
// implements OriginAttacher and that reference is still live.
func ExistingRef(value any) (*Value, bool) {
	attacher, ok := value.(OriginAttacher)
	if !ok {
		return nil, false
	}

	return attacher.Origin()
}

func attachOrigin[T any](value *T, origin *Value) {
	if attacher, ok := any(value).(OriginAttacher); ok {
		attacher.AttachOrigin(origin)
	}
}
