package refcodec

import (
	"github.com/riverford/durable-ref/referr"
	"github.com/vmihailenco/msgpack/v5"
)

// msgpackCodec wraps vmihailenco/msgpack, adapted from the teacher's
// EncodeMessagePack/DecodeMessagePack helpers. Registered under the
// "msgpack" suffix.
type msgpackCodec struct{}

func (msgpackCodec) Encode(value any, _ string, _ map[string]any) ([]byte, referr.Error) {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return nil, referr.FromError(referr.KindCodecError, err, "encode value as msgpack")
	}

	return data, nil
}

func (msgpackCodec) Decode(data []byte, _ string, out any, _ map[string]any) referr.Error {
	if err := msgpack.Unmarshal(data, out); err != nil {
		return referr.FromError(referr.KindCodecError, err, "decode msgpack into value")
	}

	return nil
}
