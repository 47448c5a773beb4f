package refcodec_test

import (
	"testing"

	"github.com/riverford/durable-ref/refcodec"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID    int
	Name  string
	Tags  []string
	Meta  map[string]string
	Bytes []byte
}

func TestJSONRoundTrip(t *testing.T) {
	r := refcodec.NewRegistry()
	in := sample{ID: 7, Name: "abc", Tags: []string{"a", "b"}, Meta: map[string]string{"k": "v"}}

	data, err := r.Encode("value:mem://base/deadbeef.json", in, nil)
	require.Nil(t, err)

	var out sample

	err = r.Decode("value:mem://base/deadbeef.json", data, &out, nil)
	require.Nil(t, err)
	require.Equal(t, in, out)
}

func TestGobRoundTrip(t *testing.T) {
	r := refcodec.NewRegistry()
	in := sample{ID: 42, Name: "xyz", Bytes: []byte{1, 2, 3}}

	data, err := r.Encode("value:mem://base/deadbeef.gob", in, nil)
	require.Nil(t, err)

	var out sample

	err = r.Decode("value:mem://base/deadbeef.gob", data, &out, nil)
	require.Nil(t, err)
	require.Equal(t, in, out)
}

func TestMsgpackRoundTrip(t *testing.T) {
	r := refcodec.NewRegistry()
	in := sample{ID: 9, Name: "msgpack"}

	data, err := r.Encode("value:mem://base/deadbeef.msgpack", in, nil)
	require.Nil(t, err)

	var out sample

	err = r.Decode("value:mem://base/deadbeef.msgpack", data, &out, nil)
	require.Nil(t, err)
	require.Equal(t, in, out)
}

func TestGzipWrapsJSONFallback(t *testing.T) {
	r := refcodec.NewRegistry()
	in := sample{ID: 1, Name: "wrapped"}

	data, err := r.Encode("value:mem://base/deadbeef.json.gz", in, nil)
	require.Nil(t, err)

	var out sample

	err = r.Decode("value:mem://base/deadbeef.json.gz", data, &out, nil)
	require.Nil(t, err)
	require.Equal(t, in, out)
}

func TestGzipRawBytes(t *testing.T) {
	r := refcodec.NewRegistry()
	in := []byte("plain payload")

	data, err := r.Encode("value:mem://base/deadbeef.gz", in, nil)
	require.Nil(t, err)

	var out []byte

	err = r.Decode("value:mem://base/deadbeef.gz", data, &out, nil)
	require.Nil(t, err)
	require.Equal(t, in, out)
}

func TestBase64WrapsGob(t *testing.T) {
	r := refcodec.NewRegistry()
	in := sample{ID: 3, Name: "b64"}

	data, err := r.Encode("value:mem://base/deadbeef.gob.b64", in, nil)
	require.Nil(t, err)

	var out sample

	err = r.Decode("value:mem://base/deadbeef.gob.b64", data, &out, nil)
	require.Nil(t, err)
	require.Equal(t, in, out)
}

func TestUnknownFormatFails(t *testing.T) {
	r := refcodec.NewRegistry()

	_, err := r.Encode("value:mem://base/deadbeef.toml", sample{}, nil)
	require.NotNil(t, err)
	require.Equal(t, 2, int(err.Kind()))
}

func TestNoSuffixFails(t *testing.T) {
	r := refcodec.NewRegistry()

	_, err := r.Encode("value:mem://base/deadbeef", sample{}, nil)
	require.NotNil(t, err)
}

func TestRegistryIntrospection(t *testing.T) {
	r := refcodec.NewRegistry()

	require.ElementsMatch(t, []string{"json", "gob", "msgpack", "gz", "b64"}, r.Formats())
	require.ElementsMatch(t, []string{"gz", "b64"}, r.Wrappers())

	require.True(t, r.IsWrapper("gz"))
	require.True(t, r.IsWrapper("b64"))
	require.False(t, r.IsWrapper("json"))
	require.False(t, r.IsWrapper("unknown"))
}
