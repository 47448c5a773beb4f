package refconfig

import (
	"reflect"
	"strings"

	"github.com/riverford/durable-ref/reflog"
	"github.com/riverford/durable-ref/valueparser"
)

// safetyCheck ensures that the logger is not nil before performing any operations.
// If the logger is nil, it replaces it with a logger from reflog.NewBaseLogger(nil).
func safetyCheck(log *reflog.Logger) {
	if *log != nil {
		return
	}

	*log = reflog.NewBaseLogger(nil).NewLogger()
}

// toScreamingSnakeCase converts a string to SCREAMING_SNAKE_CASE.
// It replaces camelCase and PascalCase with underscores and converts to uppercase.
// For example, "myVariableName" becomes "MY_VARIABLE_NAME" and "MyVariableName" becomes "MY_VARIABLE_NAME".
// It also handles acronyms and abbreviations, ensuring they are treated as separate words.
// For example, "HTTPResponse" becomes "HTTP_RESPONSE" and "XMLParser" becomes "XML_PARSER".
func toScreamingSnakeCase(s string) string {
	s = matchFirstCap.ReplaceAllString(s, "${1}_${2}")
	s = matchAllCap.ReplaceAllString(s, "${1}_${2}")

	return strings.ToUpper(s)
}

func copyMap(src reflect.Value, dst reflect.Value) {
	if src.Kind() != reflect.Map || dst.Kind() != reflect.Map {
		panic("Both src and dst must be maps")
	}

	if dst.IsNil() {
		dst.Set(reflect.MakeMap(dst.Type()))
	}

	if src.IsNil() {
		return
	}

	var (
		convertedKey reflect.Value
		convertedVal reflect.Value
		err          error
	)

	for _, key := range src.MapKeys() {
		val := src.MapIndex(key)

		convertedKey, err = valueparser.ConvertValue(key, dst.Type().Key())
		if err != nil {
			panic("Cannot convert key: " + err.Error())
		}

		convertedVal, err = valueparser.ConvertValue(val, dst.Type().Elem())
		if err != nil {
			panic("Cannot convert value: " + err.Error())
		}

		dst.SetMapIndex(convertedKey, convertedVal)
	}
}

// copyArray copies elements from the source slice to the destination slice.
// It ensures that the destination slice is initialized and has the same length as the source slice.
// If the source slice is nil, the destination slice remains unchanged.
// If the source slice is not nil, it copies each element from the source to the destination,
// converting the type if necessary.
// It panics if the source or destination is not a slice.
func copyArray(src, dst reflect.Value) {
	if !dst.IsValid() {
		panic("Destination slice is not valid")
	}

	if src.Kind() != reflect.Slice || dst.Kind() != reflect.Slice {
		panic("Both src and dst must be slices")
	}

	if !dst.CanSet() {
		panic("Destination slice cannot be set")
	}

	if dst.IsNil() {
		dst.Set(reflect.MakeSlice(dst.Type(), src.Len(), src.Cap()))
	}

	if src.IsNil() {
		return
	}

	if src.Len() != dst.Len() {
		dst.Set(reflect.MakeSlice(dst.Type(), src.Len(), src.Cap()))
	}

	for i := range src.Len() {
		val := src.Index(i)

		if val.IsValid() {
			converted, err := valueparser.ConvertValue(val, dst.Type().Elem())
			if err != nil {
				panic("Cannot convert value: " + err.Error())
			}

			dst.Index(i).Set(converted)
		}
	}
}

func isByteSlice(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

// getMapType determines the type of a map based on its key and value types.
// It returns a mapType constant that represents the specific type of the map.
// If the key or value type is not supported, it returns invalidMap.
func getMapType(v reflect.Value) mapType {
	keyKind := v.Type().Key().Kind()
	elemType := v.Type().Elem()
	elemKind := elemType.Kind()

	switch keyKind {
	case reflect.String:
		return mapTypeForElem(elemType, elemKind, stringStringMap, stringIntMap,
			stringUintMap, stringFloatMap, stringBoolMap, stringByteSliceMap)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return mapTypeForElem(elemType, elemKind, intStringMap, intIntMap,
			intUintMap, intFloatMap, intBoolMap, intByteSliceMap)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return mapTypeForElem(elemType, elemKind, uintStringMap, uintIntMap,
			uintUintMap, uintFloatMap, uintBoolMap, uintByteSliceMap)

	case reflect.Float32, reflect.Float64:
		return mapTypeForElem(elemType, elemKind, floatStringMap, floatIntMap,
			floatUintMap, floatFloatMap, floatBoolMap, floatByteSliceMap)

	case reflect.Bool:
		return mapTypeForElem(elemType, elemKind, boolStringMap, boolIntMap,
			boolUintMap, boolFloatMap, boolBoolMap, boolByteSliceMap)

	default:
		return invalidMap
	}
}

func mapTypeForElem(
	elemType reflect.Type,
	elemKind reflect.Kind,
	strVariant, intVariant, uintVariant, floatVariant, boolVariant, byteSliceVariant mapType,
) mapType {
	switch elemKind {
	case reflect.String:
		return strVariant

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intVariant

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return uintVariant

	case reflect.Float32, reflect.Float64:
		return floatVariant

	case reflect.Bool:
		return boolVariant

	case reflect.Slice:
		if isByteSlice(elemType) {
			return byteSliceVariant
		}

		return invalidMap

	default:
		return invalidMap
	}
}
