// Package refcodec resolves a codec from a reference URI's final path
// segment and encodes/decodes values through it. Dispatch walks the
// rightmost dotted suffix of the format portion of that segment, falling
// back to shorter suffixes, so a compression or text-safety wrapper (.gz,
// .b64) can be stacked on a base codec (.json, .gob, .msgpack) without a
// dedicated combined registration.
package refcodec

import (
	"strings"

	"github.com/riverford/durable-ref/referr"
	"github.com/riverford/durable-ref/threadsafemap"
	"github.com/riverford/durable-ref/threadsafeset"
)

// Codec encodes and decodes values for one registered format suffix.
// format is whatever remains of the requested format string once the
// suffix this Codec is registered under has been consumed; it is empty
// when this Codec is the innermost (or only) match. Wrapper codecs use a
// non-empty format to delegate the inner payload back through a Registry.
type Codec interface {
	Encode(value any, format string, opts map[string]any) ([]byte, referr.Error)
	Decode(data []byte, format string, out any, opts map[string]any) referr.Error
}

// Encoder is a Codec bound to a resolved format, ready to encode values.
type Encoder interface {
	Encode(value any, opts map[string]any) ([]byte, referr.Error)
}

// Decoder is a Codec bound to a resolved format, ready to decode bytes.
type Decoder interface {
	Decode(data []byte, out any, opts map[string]any) referr.Error
}

type encoderFunc func(value any, opts map[string]any) ([]byte, referr.Error)

func (f encoderFunc) Encode(value any, opts map[string]any) ([]byte, referr.Error) {
	return f(value, opts)
}

type decoderFunc func(data []byte, out any, opts map[string]any) referr.Error

func (f decoderFunc) Decode(data []byte, out any, opts map[string]any) referr.Error {
	return f(data, out, opts)
}

// Registry is the process-wide codec table, built on the teacher's
// generic thread-safe collections rather than a hand-rolled mutex: codecs
// live in a ThreadSafeMap, and wrapper suffixes (those that delegate an
// inner format onward, like .gz/.b64) are additionally tracked in a
// ThreadSafeSet for Wrappers() introspection.
type Registry struct {
	codecs   *threadsafemap.ThreadSafeMap[string, Codec]
	wrappers *threadsafeset.ThreadSafeSet[string]
}

// NewRegistry builds a Registry pre-populated with the standard codecs:
// json, gob, msgpack, and the gz/b64 wrappers that delegate to them.
func NewRegistry() *Registry {
	r := &Registry{
		codecs:   threadsafemap.NewThreadSafeMap[string, Codec](),
		wrappers: threadsafeset.NewThreadSafeSet[string](),
	}

	r.Register("json", &jsonCodec{})
	r.Register("gob", &gobCodec{})
	r.Register("msgpack", &msgpackCodec{})
	r.registerWrapper("gz", newGzipCodec(r))
	r.registerWrapper("b64", newBase64Codec(r))

	return r
}

// Register adds or replaces the codec for an exact format suffix.
func (r *Registry) Register(suffix string, c Codec) {
	r.codecs.Set(suffix, c)
}

// registerWrapper registers c as a Register-style codec and additionally
// marks suffix as a wrapper, for Wrappers() introspection.
func (r *Registry) registerWrapper(suffix string, c Codec) {
	r.Register(suffix, c)
	r.wrappers.Set(suffix)
}

// Formats lists every exact suffix a codec is registered under.
func (r *Registry) Formats() []string {
	return r.codecs.Keys()
}

// Wrappers lists the registered suffixes that delegate an inner format
// onward (.gz, .b64) rather than terminating the format chain.
func (r *Registry) Wrappers() []string {
	return r.wrappers.Values()
}

// IsWrapper reports whether suffix was registered via registerWrapper.
func (r *Registry) IsWrapper(suffix string) bool {
	return r.wrappers.Has(suffix)
}

// resolveFormat tries format as a whole, then progressively drops its
// leftmost dot-separated segment, matching §4.2's right-to-left fallback.
// It returns the matched codec and whatever leading segments were dropped
// to reach it (the "remainder" passed to the codec as its own format
// argument, letting wrapper codecs delegate further).
func (r *Registry) resolveFormat(format string) (Codec, string, bool) {
	if format == "" {
		return nil, "", false
	}

	parts := strings.Split(format, ".")

	for i := range parts {
		candidate := strings.Join(parts[i:], ".")

		if c, ok := r.codecs.Get(candidate); ok {
			return c, strings.Join(parts[:i], "."), true
		}
	}

	return nil, "", false
}

// formatOf returns the format portion of a reference URI's final path
// segment, i.e. everything after the first '.'. The part before that dot
// is the segment's stem (a content hash for Value kind, an arbitrary name
// otherwise) and is never itself part of the format.
func formatOf(uri string) (string, bool) {
	segment := uri
	if idx := strings.LastIndexByte(uri, '/'); idx != -1 {
		segment = uri[idx+1:]
	}

	if segment == "" {
		return "", false
	}

	dot := strings.IndexByte(segment, '.')
	if dot == -1 {
		return "", false
	}

	return segment[dot+1:], true
}

// GetEncoder resolves the codec registered for uri's format suffix and
// returns it bound as an Encoder. Fails with referr.KindUnknownFormat if
// no registered suffix matches.
func (r *Registry) GetEncoder(uri string) (Encoder, referr.Error) {
	codec, remainder, ok := r.resolve(uri)
	if !ok {
		return nil, referr.FromError(referr.KindUnknownFormat, ErrNoCodec, "resolve encoder for "+uri)
	}

	return encoderFunc(func(value any, opts map[string]any) ([]byte, referr.Error) {
		return codec.Encode(value, remainder, opts)
	}), nil
}

// GetDecoder resolves the codec registered for uri's format suffix and
// returns it bound as a Decoder. Fails with referr.KindUnknownFormat if
// no registered suffix matches.
func (r *Registry) GetDecoder(uri string) (Decoder, referr.Error) {
	codec, remainder, ok := r.resolve(uri)
	if !ok {
		return nil, referr.FromError(referr.KindUnknownFormat, ErrNoCodec, "resolve decoder for "+uri)
	}

	return decoderFunc(func(data []byte, out any, opts map[string]any) referr.Error {
		return codec.Decode(data, remainder, out, opts)
	}), nil
}

func (r *Registry) resolve(uri string) (Codec, string, bool) {
	format, ok := formatOf(uri)
	if !ok {
		return nil, "", false
	}

	return r.resolveFormat(format)
}

// Encode resolves uri's format and encodes value through it in one call.
func (r *Registry) Encode(uri string, value any, opts map[string]any) ([]byte, referr.Error) {
	enc, err := r.GetEncoder(uri)
	if err != nil {
		return nil, err
	}

	return enc.Encode(value, opts)
}

// Decode resolves uri's format and decodes data into out in one call.
func (r *Registry) Decode(uri string, data []byte, out any, opts map[string]any) referr.Error {
	dec, err := r.GetDecoder(uri)
	if err != nil {
		return err
	}

	return dec.Decode(data, out, opts)
}

// EncodeFormat encodes value using whatever codec resolveFormat matches
// for format directly, bypassing URI parsing. Wrapper codecs use this to
// delegate an inner payload to the next codec in the chain.
func (r *Registry) EncodeFormat(format string, value any, opts map[string]any) ([]byte, referr.Error) {
	codec, remainder, ok := r.resolveFormat(format)
	if !ok {
		return nil, referr.FromError(referr.KindUnknownFormat, ErrNoCodec, "resolve format "+format)
	}

	return codec.Encode(value, remainder, opts)
}

// DecodeFormat decodes data into out using whatever codec resolveFormat
// matches for format directly, bypassing URI parsing.
func (r *Registry) DecodeFormat(format string, data []byte, out any, opts map[string]any) referr.Error {
	codec, remainder, ok := r.resolveFormat(format)
	if !ok {
		return referr.FromError(referr.KindUnknownFormat, ErrNoCodec, "resolve format "+format)
	}

	return codec.Decode(data, remainder, out, opts)
}
