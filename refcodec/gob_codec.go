package refcodec

import (
	"bytes"
	"encoding/gob"

	"github.com/riverford/durable-ref/referr"
)

// gobCodec wraps the standard library's gob encoder, adapted from the
// teacher's EncodeGob/DecodeGob helpers. Registered under the "gob" suffix.
type gobCodec struct{}

func (gobCodec) Encode(value any, _ string, _ map[string]any) ([]byte, referr.Error) {
	var buf bytes.Buffer

	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return nil, referr.FromError(referr.KindCodecError, err, "encode value as gob")
	}

	return buf.Bytes(), nil
}

func (gobCodec) Decode(data []byte, _ string, out any, _ map[string]any) referr.Error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(out); err != nil {
		return referr.FromError(referr.KindCodecError, err, "decode gob into value")
	}

	return nil
}
