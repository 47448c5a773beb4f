package valueparser_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/riverford/durable-ref/valueparser"
)

type customCode uint8

func (c *customCode) Unmarshal(data string) error {
	switch data {
	case "FIRST":
		*c = 1
	case "SECOND":
		*c = 2
	default:
		return errors.New("unknown value: " + data)
	}

	return nil
}

func TestParseValue_Int(t *testing.T) {
	v, err := valueparser.ParseValue[int]("42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v != 42 {
		t.Fatalf("expected 42, got %d", v)
	}
}

func TestParseValue_Bool(t *testing.T) {
	v, err := valueparser.ParseValue[bool]("true")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !v {
		t.Fatal("expected true")
	}
}

func TestParseValueWithCustomType_Unmarshalable(t *testing.T) {
	v, err := valueparser.ParseValueWithCustomType[uint8](
		"SECOND",
		reflect.TypeOf(customCode(0)),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v != 2 {
		t.Fatalf("expected 2, got %d", v)
	}
}

func TestParseArray_Ints(t *testing.T) {
	arr, err := valueparser.ParseArray[int]("1,2,3", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int{1, 2, 3}
	if len(arr) != len(want) {
		t.Fatalf("expected %v, got %v", want, arr)
	}

	for i := range want {
		if arr[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, arr)
		}
	}
}

func TestParseArray_Empty(t *testing.T) {
	arr, err := valueparser.ParseArray[int]("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(arr) != 0 {
		t.Fatalf("expected empty slice, got %v", arr)
	}
}

func TestParseMap_Simple(t *testing.T) {
	m, err := valueparser.ParseMap[string, int]("a:1,b:2", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m["a"] != 1 || m["b"] != 2 {
		t.Fatalf("unexpected map: %v", m)
	}
}

func TestParseMap_InvalidEntry(t *testing.T) {
	_, err := valueparser.ParseMap[string, int]("a:1:2", nil, nil)
	if !errors.Is(err, valueparser.ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
}
