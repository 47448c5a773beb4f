// Command refctl is a thin shell wrapper over a ref.Core, for persisting
// and dereferencing a value against a memory or Redis backend without
// writing a Go program. It is ambient tooling built for manual
// smoke-testing, not part of the module's tested library surface; the
// teacher ships no comparable CLI, so this follows a plain
// os.Args-driven single-main.go shape rather than a specific
// teacher file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riverford/durable-ref/ref"
	"github.com/riverford/durable-ref/refbackend"
	"github.com/riverford/durable-ref/refbackoff"
	"github.com/riverford/durable-ref/refcodec"
	"github.com/riverford/durable-ref/refconfig"
	"github.com/riverford/durable-ref/reflog"
	"github.com/riverford/durable-ref/refopts"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var settings refconfig.Settings

	log := reflog.NewBaseLogger(nil).NewLogger()
	refconfig.LoadFromEnv(&settings, log)

	core := buildCore(settings, log, targetURI(os.Args))
	ctx := context.Background()

	var err error

	switch os.Args[1] {
	case "get":
		err = runGet(ctx, core, os.Args[2:])
	case "put":
		err = runPut(ctx, core, os.Args[2:])
	case "cas":
		err = runCas(ctx, core, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "refctl:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  refctl get <uri>
  refctl put <base-uri> <format>     (value read as JSON from stdin)
  refctl cas <atomic-uri> <delta>    (value treated as an int64 counter)`)
}

// targetURI picks out the reference URI argument common to every
// subcommand (get/put/cas all take it first), so buildCore can decide
// which backends it actually needs to dial.
func targetURI(args []string) string {
	if len(args) < 3 {
		return ""
	}

	return args[2]
}

// buildCore wires a registry with the memory backend (always, it dials
// nothing) and the Redis backend only when uri's inner scheme is "redis" —
// NewRedisClient fatals the process on an unreachable server, so dialing it
// unconditionally would break every mem:// invocation whenever Redis
// happens to be down.
func buildCore(settings refconfig.Settings, log reflog.Logger, uri string) *ref.Core {
	backends := refbackend.NewRegistry()
	backends.Register("mem", refbackend.NewMemory(time.Duration(settings.InternSweepSeconds)*time.Second, log))

	if strings.Contains(uri, "redis://") {
		backends.Register("redis", refbackend.NewRedis(
			refbackend.NewRedisClient(settings.RedisHost, settings.RedisPort, settings.RedisPassword, settings.RedisDB, log),
		))
	}

	core := ref.NewCore(backends, refcodec.NewRegistry(), settings.HashVerification, log)
	core.CASBackoff = func() refbackoff.Backoff {
		b := refbackoff.NewExponential(
			time.Duration(settings.CASInitialIntervalMillis)*time.Millisecond,
			settings.CASMultiplier,
			time.Duration(settings.CASMaxIntervalMillis)*time.Millisecond,
			time.Duration(settings.CASResetAfterMillis)*time.Millisecond,
		)

		return &b
	}

	return core
}

func runGet(ctx context.Context, core *ref.Core, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	r, perr := core.Parse(args[0])
	if perr != nil {
		return perr
	}

	value, derr := ref.Deref[any](ctx, r, nil)
	if derr != nil {
		return derr
	}

	return json.NewEncoder(os.Stdout).Encode(value)
}

func runPut(ctx context.Context, core *ref.Core, args []string) error {
	if len(args) != 2 {
		return errUsage
	}

	baseURI, format := args[0], args[1]

	raw, rerr := io.ReadAll(os.Stdin)
	if rerr != nil {
		return rerr
	}

	var value any
	if jerr := json.Unmarshal(raw, &value); jerr != nil {
		value = raw
	}

	v, perr := ref.Persist(ctx, core, baseURI, value, &refopts.WriteOpts{Format: format})
	if perr != nil {
		return perr
	}

	fmt.Println(v.URI())

	return nil
}

func runCas(ctx context.Context, core *ref.Core, args []string) error {
	if len(args) != 2 {
		return errUsage
	}

	delta, cerr := strconv.ParseInt(args[1], 10, 64)
	if cerr != nil {
		return cerr
	}

	r, perr := core.Parse(args[0])
	if perr != nil {
		return perr
	}

	atomic, ok := r.(*ref.Atomic)
	if !ok {
		return errNotAtomic
	}

	result, serr := ref.AtomicSwap(ctx, atomic, func(old int64, present bool) (int64, error) {
		if !present {
			return delta, nil
		}

		return old + delta, nil
	}, nil)
	if serr != nil {
		return serr
	}

	fmt.Println(result)

	return nil
}
