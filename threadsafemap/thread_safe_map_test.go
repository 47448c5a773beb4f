package threadsafemap_test

import (
	"encoding/json"
	"reflect"
	"sort"
	"sync"
	"testing"

	"github.com/riverford/durable-ref/threadsafemap"
)

func TestThreadSafeMap_BasicOps(t *testing.T) {
	m := threadsafemap.NewThreadSafeMap[string, int]()

	m.Set("a", 1)
	m.Set("b", 2)

	if v, ok := m.Get("a"); !ok || v != 1 {
		t.Fatalf("expected a=1, got %v ok=%v", v, ok)
	}

	if !m.Has("b") {
		t.Fatal("expected b to be present")
	}

	if m.Length() != 2 {
		t.Fatalf("expected length 2, got %d", m.Length())
	}

	m.Delete("a")
	if m.Has("a") {
		t.Fatal("expected a to be deleted")
	}
}

func TestThreadSafeMap_GetOrDefault(t *testing.T) {
	m := threadsafemap.NewThreadSafeMap[string, int]()

	if v := m.GetOrDefault("missing", 42); v != 42 {
		t.Fatalf("expected default 42, got %d", v)
	}

	m.Set("present", 7)

	if v := m.GetOrDefault("present", 42); v != 7 {
		t.Fatalf("expected 7, got %d", v)
	}
}

func TestThreadSafeMap_GetOrSet(t *testing.T) {
	m := threadsafemap.NewThreadSafeMap[string, int]()

	val, existed := m.GetOrSet("key", 1)
	if existed || val != 1 {
		t.Fatalf("expected fresh set, got val=%d existed=%v", val, existed)
	}

	val, existed = m.GetOrSet("key", 2)
	if !existed || val != 1 {
		t.Fatalf("expected existing value 1, got val=%d existed=%v", val, existed)
	}
}

func TestThreadSafeMap_Pop(t *testing.T) {
	m := threadsafemap.NewThreadSafeMap[string, int]()
	m.Set("k", 9)

	val, ok := m.Pop("k")
	if !ok || val != 9 {
		t.Fatalf("expected pop to return 9, got %d ok=%v", val, ok)
	}

	if m.Has("k") {
		t.Fatal("expected key removed after pop")
	}

	if _, ok := m.Pop("k"); ok {
		t.Fatal("expected second pop to miss")
	}
}

func TestThreadSafeMap_Update(t *testing.T) {
	m := threadsafemap.NewThreadSafeMap[string, int]()

	m.Update("counter", func(old int, exists bool) int {
		if exists {
			t.Fatal("expected counter to not exist yet")
		}

		return old + 1
	})

	m.Update("counter", func(old int, exists bool) int {
		if !exists {
			t.Fatal("expected counter to exist")
		}

		return old + 1
	})

	if v, _ := m.Get("counter"); v != 2 {
		t.Fatalf("expected counter=2, got %d", v)
	}
}

func TestThreadSafeMap_Copy(t *testing.T) {
	m := threadsafemap.NewThreadSafeMap[string, int]()
	m.Set("a", 1)

	snapshot := m.Copy()
	m.Set("b", 2)

	if len(snapshot) != 1 {
		t.Fatalf("expected snapshot to be isolated, got %v", snapshot)
	}
}

func TestThreadSafeMap_KeysAndValues(t *testing.T) {
	m := threadsafemap.NewThreadSafeMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	keys := m.Keys()
	sort.Strings(keys)

	if !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Fatalf("unexpected keys: %v", keys)
	}

	values := m.Values()
	sort.Ints(values)

	if !reflect.DeepEqual(values, []int{1, 2}) {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestThreadSafeMap_IterateWithBreak(t *testing.T) {
	m := threadsafemap.NewThreadSafeMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	visited := 0

	m.IterateWithBreak(func(_ string, _ int) bool {
		visited++

		return visited < 2
	})

	if visited != 2 {
		t.Fatalf("expected break after 2 visits, got %d", visited)
	}
}

func TestThreadSafeMap_MarshalJSON(t *testing.T) {
	m := threadsafemap.NewThreadSafeMap[string, int]()
	m.Set("a", 1)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]int
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}

	if decoded["a"] != 1 {
		t.Fatalf("unexpected decoded map: %v", decoded)
	}
}

func TestThreadSafeMap_ConcurrentAccess(t *testing.T) {
	m := threadsafemap.NewThreadSafeMap[int, int]()

	var wg sync.WaitGroup

	for i := range 100 {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			m.Set(i, i*i)
		}(i)
	}

	wg.Wait()

	if m.Length() != 100 {
		t.Fatalf("expected 100 entries, got %d", m.Length())
	}
}

func TestThreadSafeMap_ZeroValue(t *testing.T) {
	var m threadsafemap.ThreadSafeMap[string, int]

	m.Set("a", 1)

	if v, ok := m.Get("a"); !ok || v != 1 {
		t.Fatalf("expected zero-value map to self-initialise, got %v ok=%v", v, ok)
	}
}
