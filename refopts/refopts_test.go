package refopts_test

import (
	"testing"

	"github.com/riverford/durable-ref/refopts"
	"github.com/stretchr/testify/require"
)

func TestPackReadFlags(t *testing.T) {
	o := &refopts.ReadOpts{Consistent: true, NoVerify: true}

	require.NoError(t, refopts.PackReadFlags(o))
	require.Equal(t, uint8(0b101), o.Flags)
}

func TestPackWriteFlags(t *testing.T) {
	o := &refopts.WriteOpts{Consistent: true}

	require.NoError(t, refopts.PackWriteFlags(o))
	require.Equal(t, uint8(0b1), o.Flags)
}

func TestOptsToMap(t *testing.T) {
	o := &refopts.Opts{
		Read:   &refopts.ReadOpts{Consistent: true, Opts: map[string]any{"region": "us-east"}},
		Write:  &refopts.WriteOpts{Opts: map[string]any{"class": "standard"}},
		Delete: &refopts.DeleteOpts{Opts: map[string]any{"soft": true}},
		Shared: &refopts.SharedOpts{Credentials: map[string]any{"token": "abc"}},
	}

	m := o.ToMap()

	require.Equal(t, true, m["consistent"])
	require.Equal(t, map[string]any{"region": "us-east"}, m["read-opts"])
	require.Equal(t, map[string]any{"class": "standard"}, m["write-opts"])
	require.Equal(t, map[string]any{"soft": true}, m["delete-opts"])
	require.Equal(t, map[string]any{"token": "abc"}, m["credentials"])
}

func TestOptsToMapNil(t *testing.T) {
	var o *refopts.Opts

	require.Empty(t, o.ToMap())
}
