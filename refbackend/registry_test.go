package refbackend_test

import (
	"context"
	"testing"

	"github.com/riverford/durable-ref/refbackend"
	"github.com/stretchr/testify/require"
)

func TestRegistryDispatchAndUnknownScheme(t *testing.T) {
	r := refbackend.NewRegistry()
	m := refbackend.NewMemory(0, nil)
	defer m.Close()

	r.Register("mem", m)

	ctx := context.Background()

	require.Nil(t, r.Write(ctx, "mem://base/a.json", []byte("v"), nil))

	data, present, err := r.Read(ctx, "mem://base/a.json", nil)
	require.Nil(t, err)
	require.True(t, present)
	require.Equal(t, []byte("v"), data)

	_, _, err = r.Read(ctx, "s3://base/a.json", nil)
	require.NotNil(t, err)
	require.Equal(t, 1, int(err.Kind())) // KindUnknownScheme
}

func TestRegistryCapabilities(t *testing.T) {
	r := refbackend.NewRegistry()
	m := refbackend.NewMemory(0, nil)
	defer m.Close()

	r.Register("mem", m)

	flags, ok := r.Capabilities("mem")
	require.True(t, ok)
	require.NotZero(t, flags&(1<<refbackend.CapRead))
	require.NotZero(t, flags&(1<<refbackend.CapVersioned))
	require.Zero(t, flags&(1<<refbackend.CapAtomicSwap))

	_, ok = r.Capabilities("unknown")
	require.False(t, ok)
}

func TestRegistrySchemes(t *testing.T) {
	r := refbackend.NewRegistry()
	m := refbackend.NewMemory(0, nil)
	defer m.Close()

	r.Register("mem", m)
	r.Register("mem2", m)

	require.ElementsMatch(t, []string{"mem", "mem2"}, r.Schemes())
}

func TestRegistryAtomicSwapUnsupported(t *testing.T) {
	r := refbackend.NewRegistry()
	m := refbackend.NewMemory(0, nil)
	defer m.Close()

	r.Register("mem", m)

	ctx := context.Background()

	_, err := r.AtomicSwap(ctx, "mem://base/a.json", func(old []byte, present bool) ([]byte, error) {
		return old, nil
	}, nil)
	require.NotNil(t, err)
	require.Equal(t, 6, int(err.Kind())) // KindUnsupportedOperation
}
