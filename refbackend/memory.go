package refbackend

import (
	"context"
	"time"
	"weak"

	"github.com/riverford/durable-ref/referr"
	"github.com/riverford/durable-ref/reflog"
	"github.com/riverford/durable-ref/threadsafemap"
)

// Memory is an in-process backend keyed by inner URI, its storage built on
// the teacher's ThreadSafeMap rather than a hand-rolled mutex, and its
// background goroutine adapted from the teacher's weak-pointer-swept
// in-memory cache. Durable-ref has no TTL concept, so unlike the teacher's
// cache this map never expires entries; the sweep goroutine instead logs
// periodic occupancy at Trace level, which still exercises the same
// weak.Pointer-guarded pattern without inventing an eviction policy the
// specification doesn't ask for. A nil *memoryItem denotes absence, so
// ThreadSafeMap.Update can reject a stale write by returning the entry
// unchanged without ever fabricating a present-but-empty key.
type Memory struct {
	items *threadsafemap.ThreadSafeMap[string, *memoryItem]
	done  chan struct{}
	log   reflog.Logger
}

type memoryItem struct {
	data    []byte
	version int64
}

// NewMemory builds an empty Memory backend and starts its sweep goroutine
// at the given interval. A zero or negative interval disables the
// goroutine entirely.
func NewMemory(sweepInterval time.Duration, log reflog.Logger) *Memory {
	m := &Memory{
		items: threadsafemap.NewThreadSafeMap[string, *memoryItem](),
		done:  make(chan struct{}),
		log:   log,
	}

	if sweepInterval > 0 {
		go sweep(weak.Make(m), sweepInterval, m.done, log)
	}

	return m
}

func sweep(pointer weak.Pointer[Memory], interval time.Duration, done <-chan struct{}, log reflog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m := pointer.Value()
			if m == nil {
				return
			}

			if log != nil {
				log.Tracef("memory backend holds %d items", m.items.Length())
			}
		case <-done:
			return
		}
	}
}

// Close stops the sweep goroutine.
func (m *Memory) Close() {
	close(m.done)
}

func (m *Memory) Read(_ context.Context, innerURI string, _ map[string]any) ([]byte, bool, referr.Error) {
	item, _ := m.items.Get(innerURI)
	if item == nil {
		return nil, false, nil
	}

	return item.data, true, nil
}

func (m *Memory) Write(_ context.Context, innerURI string, data []byte, _ map[string]any) referr.Error {
	m.items.Update(innerURI, func(old *memoryItem, _ bool) *memoryItem {
		version := int64(1)
		if old != nil {
			version = old.version + 1
		}

		return &memoryItem{data: data, version: version}
	})

	return nil
}

func (m *Memory) Delete(_ context.Context, innerURI string, _ map[string]any) referr.Error {
	m.items.Delete(innerURI)

	return nil
}

func (m *Memory) ReadVersioned(
	_ context.Context,
	innerURI string,
	_ map[string]any,
) ([]byte, int64, bool, referr.Error) {
	item, _ := m.items.Get(innerURI)
	if item == nil {
		return nil, 0, false, nil
	}

	return item.data, item.version, true, nil
}

func (m *Memory) WriteVersioned(
	_ context.Context,
	innerURI string,
	data []byte,
	expectedVersion int64,
	_ map[string]any,
) (int64, bool, referr.Error) {
	var newVersion int64

	var ok bool

	m.items.Update(innerURI, func(old *memoryItem, _ bool) *memoryItem {
		currentVersion := int64(0)
		if old != nil {
			currentVersion = old.version
		}

		if currentVersion != expectedVersion {
			ok = false
			newVersion = currentVersion

			return old
		}

		ok = true
		newVersion = currentVersion + 1

		return &memoryItem{data: data, version: newVersion}
	})

	return newVersion, ok, nil
}
