package refcodec

import (
	"encoding/json"

	"github.com/riverford/durable-ref/referr"
)

// jsonCodec wraps the standard library's JSON encoder. Registered under
// the "json" suffix.
type jsonCodec struct{}

func (jsonCodec) Encode(value any, _ string, _ map[string]any) ([]byte, referr.Error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, referr.FromError(referr.KindCodecError, err, "encode value as json")
	}

	return data, nil
}

func (jsonCodec) Decode(data []byte, _ string, out any, _ map[string]any) referr.Error {
	if err := json.Unmarshal(data, out); err != nil {
		return referr.FromError(referr.KindCodecError, err, "decode json into value")
	}

	return nil
}
