package refcodec

import (
	"encoding/base64"

	"github.com/riverford/durable-ref/referr"
)

// base64Codec is a text-safety wrapper, adapted from the teacher's
// yabase64 helpers. Registered under the "b64" suffix. Like gzipCodec, it
// delegates to the codec format resolves to when non-empty, otherwise it
// treats the value as raw bytes.
type base64Codec struct {
	registry *Registry
}

func newBase64Codec(registry *Registry) *base64Codec {
	return &base64Codec{registry: registry}
}

func (b *base64Codec) Encode(value any, format string, opts map[string]any) ([]byte, referr.Error) {
	payload, err := b.innerEncode(value, format, opts)
	if err != nil {
		return nil, err
	}

	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(payload)))
	base64.StdEncoding.Encode(encoded, payload)

	return encoded, nil
}

func (b *base64Codec) Decode(data []byte, format string, out any, opts map[string]any) referr.Error {
	decoded := make([]byte, base64.StdEncoding.DecodedLen(len(data)))

	n, err := base64.StdEncoding.Decode(decoded, data)
	if err != nil {
		return referr.FromError(referr.KindCodecError, err, "decode base64 payload")
	}

	return b.innerDecode(decoded[:n], format, out, opts)
}

func (b *base64Codec) innerEncode(value any, format string, opts map[string]any) ([]byte, referr.Error) {
	if format == "" {
		raw, ok := value.([]byte)
		if !ok {
			return nil, referr.FromError(referr.KindCodecError, ErrNotByteSlice, "encode via b64 wrapper")
		}

		return raw, nil
	}

	return b.registry.EncodeFormat(format, value, opts)
}

func (b *base64Codec) innerDecode(data []byte, format string, out any, opts map[string]any) referr.Error {
	if format == "" {
		dst, ok := out.(*[]byte)
		if !ok {
			return referr.FromError(referr.KindCodecError, ErrNotByteSlicePtr, "decode via b64 wrapper")
		}

		*dst = data

		return nil
	}

	return b.registry.DecodeFormat(format, data, out, opts)
}
