// Package refuri parses, normalizes and classifies reference URIs into a
// typed Descriptor. A reference URI has the shape "<kind>:<inner-uri>"
// where kind is one of value, volatile, atomic, or is a bare inner URI
// denoting a read-only reference.
package refuri

import (
	"strings"

	"github.com/riverford/durable-ref/referr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies which reference semantics a Descriptor carries.
type Kind uint8

const (
	KindReadOnly Kind = iota
	KindValue
	KindAtomic
	KindVolatile
)

// String renders the kind prefix as it appears in a reference URI.
// KindReadOnly has no prefix.
func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindVolatile:
		return "volatile"
	case KindAtomic:
		return "atomic"
	case KindReadOnly:
		return ""
	default:
		return ""
	}
}

const kindSeparator = ":"

var lowerCaser = cases.Lower(language.Und)

// Descriptor is a parsed, normalized reference URI: the kind, the inner
// URI (scheme-specific, with the kind prefix stripped), and the full
// normalized string form.
type Descriptor struct {
	Kind  Kind
	Inner string
	Full  string
}

// Parse normalizes s to lowercase and classifies it into a Descriptor.
// A recognized kind prefix ("value:", "volatile:", "atomic:") followed by
// a non-empty inner URI produces that kind; anything else is treated as a
// bare inner URI and produces KindReadOnly. An empty or whitespace-only
// string, or a recognized kind prefix with no inner URI, fails with
// referr.KindInvalidURI.
func Parse(s string) (Descriptor, referr.Error) {
	if strings.TrimSpace(s) == "" {
		return Descriptor{}, referr.FromError(referr.KindInvalidURI, ErrEmptyURI, "parse reference uri")
	}

	normalized := lowerCaser.String(s)

	kindStr, inner, hasSeparator := strings.Cut(normalized, kindSeparator)
	if !hasSeparator {
		return Descriptor{Kind: KindReadOnly, Inner: normalized, Full: normalized}, nil
	}

	kind, ok := parseKindPrefix(kindStr)
	if !ok {
		return Descriptor{Kind: KindReadOnly, Inner: normalized, Full: normalized}, nil
	}

	if inner == "" {
		return Descriptor{}, referr.FromError(referr.KindInvalidURI, ErrMissingInner, "parse reference uri "+s)
	}

	return Descriptor{Kind: kind, Inner: inner, Full: kindStr + kindSeparator + inner}, nil
}

func parseKindPrefix(s string) (Kind, bool) {
	switch s {
	case "value":
		return KindValue, true
	case "volatile":
		return KindVolatile, true
	case "atomic":
		return KindAtomic, true
	default:
		return 0, false
	}
}

// StringOf renders a Descriptor back to its canonical string form.
// Parse(StringOf(d)) always yields a Descriptor equal to d.
func StringOf(d Descriptor) string {
	if d.Kind == KindReadOnly {
		return d.Inner
	}

	return d.Kind.String() + kindSeparator + d.Inner
}

// InnerURI returns the inner URI of d, stripping the kind prefix.
// It is the identity function for KindReadOnly.
func InnerURI(d Descriptor) string {
	return d.Inner
}
