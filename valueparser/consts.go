package valueparser

// Unmarshalable is implemented by types that know how to parse themselves
// from a string. TryUnmarshal prefers encoding.TextUnmarshaler when a type
// implements both.
type Unmarshalable interface {
	Unmarshal(data string) error
}

const (
	// DefaultEntrySeparator separates entries in array and map values, e.g. "a,b,c".
	DefaultEntrySeparator = ","
	// DefaultKVSeparator separates a key from its value within a map entry, e.g. "a:1".
	DefaultKVSeparator = ":"
	// MapPartsCount is the number of parts a "key:value" entry must split into.
	MapPartsCount = 2
)
