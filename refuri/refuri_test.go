package refuri_test

import (
	"testing"

	"github.com/riverford/durable-ref/refuri"
)

func TestParseKinds(t *testing.T) {
	cases := []struct {
		name      string
		uri       string
		wantKind  refuri.Kind
		wantInner string
	}{
		{"value", "value:file:///tmp/a.json", refuri.KindValue, "file:///tmp/a.json"},
		{"volatile", "volatile:mem://counter", refuri.KindVolatile, "mem://counter"},
		{"atomic", "atomic:redis://host/key", refuri.KindAtomic, "redis://host/key"},
		{"bare is readonly", "file:///tmp/a.json", refuri.KindReadOnly, "file:///tmp/a.json"},
		{"uppercase normalizes", "VALUE:FILE:///TMP/A.JSON", refuri.KindValue, "file:///tmp/a.json"},
		{"unknown prefix is readonly", "unknown:thing", refuri.KindReadOnly, "unknown:thing"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := refuri.Parse(tc.uri)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if d.Kind != tc.wantKind {
				t.Errorf("kind: got %v, want %v", d.Kind, tc.wantKind)
			}

			if d.Inner != tc.wantInner {
				t.Errorf("inner: got %q, want %q", d.Inner, tc.wantInner)
			}
		})
	}
}

func TestParseEmptyIsInvalid(t *testing.T) {
	_, err := refuri.Parse("   ")
	if err == nil {
		t.Fatal("expected error for empty uri")
	}

	if err.Kind() != 0 {
		t.Errorf("expected KindInvalidURI (0), got %v", err.Kind())
	}
}

func TestParseMissingInnerIsInvalid(t *testing.T) {
	_, err := refuri.Parse("value:")
	if err == nil {
		t.Fatal("expected error for missing inner uri")
	}
}

func TestReparseIdempotence(t *testing.T) {
	uris := []string{
		"value:file:///tmp/a.json",
		"volatile:mem://counter",
		"atomic:redis://host/key",
		"file:///tmp/a.json",
	}

	for _, uri := range uris {
		d, err := refuri.Parse(uri)
		if err != nil {
			t.Fatalf("parse(%q): %v", uri, err)
		}

		s := refuri.StringOf(d)

		d2, err := refuri.Parse(s)
		if err != nil {
			t.Fatalf("reparse(%q): %v", s, err)
		}

		if d2 != d {
			t.Errorf("reparse mismatch for %q: got %+v, want %+v", uri, d2, d)
		}
	}
}

func TestInnerURIIdentityForReadOnly(t *testing.T) {
	d, err := refuri.Parse("file:///tmp/a.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if refuri.InnerURI(d) != "file:///tmp/a.json" {
		t.Errorf("inner uri mismatch: got %q", refuri.InnerURI(d))
	}
}
