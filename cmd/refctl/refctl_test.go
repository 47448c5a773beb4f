package main

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/riverford/durable-ref/ref"
	"github.com/riverford/durable-ref/refbackend"
	"github.com/riverford/durable-ref/refcodec"
	"github.com/riverford/durable-ref/refconfig"
	"github.com/stretchr/testify/require"
)

func testCore() *ref.Core {
	backends := refbackend.NewRegistry()
	backends.Register("mem", refbackend.NewMemory(0, nil))

	return ref.NewCore(backends, refcodec.NewRegistry(), true, nil)
}

func TestBuildCoreSkipsRedisForMemURI(t *testing.T) {
	core := buildCore(refconfig.Settings{}, nil, "mem://bucket/x.json")

	require.ElementsMatch(t, []string{"mem"}, core.Backends.Schemes())
}

func TestTargetURI(t *testing.T) {
	require.Equal(t, "mem://bucket/x.json", targetURI([]string{"refctl", "get", "mem://bucket/x.json"}))
	require.Equal(t, "", targetURI([]string{"refctl", "get"}))
}

func withStdin(t *testing.T, content string, fn func()) {
	t.Helper()

	r, w, err := os.Pipe()
	require.Nil(t, err)

	_, err = w.WriteString(content)
	require.Nil(t, err)
	require.Nil(t, w.Close())

	orig := os.Stdin
	os.Stdin = r

	defer func() { os.Stdin = orig }()

	fn()
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.Nil(t, err)

	orig := os.Stdout
	os.Stdout = w

	fn()

	require.Nil(t, w.Close())

	os.Stdout = orig

	out, err := io.ReadAll(r)
	require.Nil(t, err)

	return string(out)
}

func TestRunPutThenGet(t *testing.T) {
	core := testCore()
	ctx := context.Background()

	var uri string

	withStdin(t, `{"name":"a","count":1}`, func() {
		out := captureStdout(t, func() {
			require.Nil(t, runPut(ctx, core, []string{"mem://bucket", "json"}))
		})
		uri = strings.TrimSpace(out)
	})

	require.Contains(t, uri, "value:mem://bucket/")

	out := captureStdout(t, func() {
		require.Nil(t, runGet(ctx, core, []string{uri}))
	})
	require.Contains(t, out, `"name":"a"`)
}

func TestRunCasIncrements(t *testing.T) {
	core := testCore()
	ctx := context.Background()

	out := captureStdout(t, func() {
		require.Nil(t, runCas(ctx, core, []string{"atomic:mem://bucket/counter.json", "3"}))
	})
	require.Equal(t, "3\n", out)

	out = captureStdout(t, func() {
		require.Nil(t, runCas(ctx, core, []string{"atomic:mem://bucket/counter.json", "4"}))
	})
	require.Equal(t, "7\n", out)
}

func TestRunGetUsageError(t *testing.T) {
	core := testCore()
	ctx := context.Background()

	require.NotNil(t, runGet(ctx, core, nil))
}

func TestRunCasRejectsNonAtomic(t *testing.T) {
	core := testCore()
	ctx := context.Background()

	err := runCas(ctx, core, []string{"volatile:mem://bucket/x.json", "1"})
	require.NotNil(t, err)
}
