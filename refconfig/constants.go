package refconfig

import "regexp"

const (
	DefaultTagName = "default"
	DotEnvFile     = ".env"
	DotEnvKVParts  = 2
)

var (
	matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
	matchAllCap   = regexp.MustCompile("([a-z0-9])([A-Z])")
)

// mapType identifies the key/value kind pairing of a struct field so that
// LoadFromEnv can dispatch to the right generic loader.
type mapType uint8

const (
	stringStringMap mapType = iota
	stringIntMap
	stringUintMap
	stringFloatMap
	stringBoolMap
	stringByteSliceMap
	intStringMap
	intIntMap
	intUintMap
	intFloatMap
	intBoolMap
	intByteSliceMap
	uintStringMap
	uintIntMap
	uintUintMap
	uintFloatMap
	uintBoolMap
	uintByteSliceMap
	floatStringMap
	floatIntMap
	floatUintMap
	floatFloatMap
	floatBoolMap
	floatByteSliceMap
	boolStringMap
	boolIntMap
	boolUintMap
	boolFloatMap
	boolBoolMap
	boolByteSliceMap
	invalidMap
)
