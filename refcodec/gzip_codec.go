package refcodec

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"errors"
	"io"

	"github.com/riverford/durable-ref/referr"
)

const defaultMaxDecompressedSize int64 = 64 << 20 // 64 MiB

var ErrDecompressedPayloadTooLarge = errors.New("decompressed payload exceeds configured limit")

// gzipCodec is a compression wrapper, adapted from the teacher's Gzip
// helper. Registered under the "gz" suffix. When format (the remainder
// left after the "gz" suffix is consumed) is non-empty, it delegates the
// inner payload to the codec that format resolves to; otherwise it
// compresses/decompresses raw bytes directly.
type gzipCodec struct {
	registry            *Registry
	level               int
	maxDecompressedSize int64
}

func newGzipCodec(registry *Registry) *gzipCodec {
	return &gzipCodec{
		registry:            registry,
		level:               flate.DefaultCompression,
		maxDecompressedSize: defaultMaxDecompressedSize,
	}
}

func (g *gzipCodec) Encode(value any, format string, opts map[string]any) ([]byte, referr.Error) {
	payload, err := g.innerEncode(value, format, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	w, werr := gzip.NewWriterLevel(&buf, g.level)
	if werr != nil {
		return nil, referr.FromError(referr.KindCodecError, werr, "create gzip writer")
	}

	if _, werr = w.Write(payload); werr != nil {
		return nil, referr.FromError(referr.KindCodecError, werr, "write payload to gzip writer")
	}

	if werr = w.Close(); werr != nil {
		return nil, referr.FromError(referr.KindCodecError, werr, "close gzip writer")
	}

	return buf.Bytes(), nil
}

func (g *gzipCodec) Decode(data []byte, format string, out any, opts map[string]any) referr.Error {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return referr.FromError(referr.KindCodecError, err, "create gzip reader")
	}
	defer r.Close()

	var decompressed bytes.Buffer

	_, err = io.Copy(&decompressed, io.LimitReader(r, g.maxDecompressedSize+1))
	if err != nil {
		return referr.FromError(referr.KindCodecError, err, "read gzip stream")
	}

	if int64(decompressed.Len()) > g.maxDecompressedSize {
		return referr.FromError(referr.KindCodecError, ErrDecompressedPayloadTooLarge, "decompress payload")
	}

	return g.innerDecode(decompressed.Bytes(), format, out, opts)
}

func (g *gzipCodec) innerEncode(value any, format string, opts map[string]any) ([]byte, referr.Error) {
	if format == "" {
		b, ok := value.([]byte)
		if !ok {
			return nil, referr.FromError(referr.KindCodecError, ErrNotByteSlice, "encode via gz wrapper")
		}

		return b, nil
	}

	return g.registry.EncodeFormat(format, value, opts)
}

func (g *gzipCodec) innerDecode(data []byte, format string, out any, opts map[string]any) referr.Error {
	if format == "" {
		dst, ok := out.(*[]byte)
		if !ok {
			return referr.FromError(referr.KindCodecError, ErrNotByteSlicePtr, "decode via gz wrapper")
		}

		*dst = data

		return nil
	}

	return g.registry.DecodeFormat(format, data, out, opts)
}
