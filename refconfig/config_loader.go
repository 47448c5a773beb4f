// Package refconfig loads typed settings structs from the process
// environment, the way a long-running reference server reads its backend
// credentials, intern sweep interval, and CAS back-off tuning at startup.
package refconfig

import (
	"errors"
	"reflect"

	"github.com/joho/godotenv"
	"github.com/riverford/durable-ref/reflog"
	"github.com/riverford/durable-ref/valueparser"
)

// LoadFromEnv loads environment variables into a struct.
// It uses the field names of the struct as keys to look up values in the
// environment; the keys are converted to SCREAMING_SNAKE_CASE. If a field
// is not set in the environment, it falls back to the zero value of the
// field, or the value of a `default:"..."` struct tag if present. A field
// that is zero and has no default tag is required: if its variable is
// missing, an error is logged, the field keeps its zero value and loading
// continues with the next field.
//
// It supports maps, slices and the basic scalar kinds (int, uint, float,
// bool, string) and their named derivatives, and any type implementing
// valueparser.Unmarshalable or encoding.TextUnmarshaler (e.g. logrus.Level).
//
// Example usage:
//
//	type Settings struct {
//		RedisAddr     string
//		RedisDB       int           `default:"0"`
//		HashVerify    bool          `default:"true"`
//		BackendWeight map[string]int
//	}
//
//	var cfg Settings
//	refconfig.LoadFromEnv(&cfg, log)
func LoadFromEnv[T any](instance *T, log reflog.Logger) {
	safetyCheck(&log)

	if err := godotenv.Load(); err != nil {
		log.Warnf("Error loading .env file: %v", err)
	}

	v := reflect.ValueOf(instance)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		log.Fatalf("Target must be a pointer to a struct, got %T", instance)
	}

	v = v.Elem()
	t := v.Type()

	for i := range v.NumField() {
		field := t.Field(i)
		fieldVal := v.Field(i)
		defaultValStr := field.Tag.Get(DefaultTagName)

		if !fieldVal.CanSet() {
			log.Warnf("Field %s cannot be set", field.Name)

			continue
		}

		envKey := toScreamingSnakeCase(field.Name)
		required := fieldVal.IsZero() && defaultValStr == ""
		useDefaultFromTag := fieldVal.IsZero() && defaultValStr != ""

		loadField(fieldVal, field, envKey, defaultValStr, required, useDefaultFromTag, log)
	}
}

//nolint:cyclop // one dispatch site per supported reflect.Kind, mirrors the struct tag contract
func loadField(
	fieldVal reflect.Value,
	field reflect.StructField,
	envKey, defaultValStr string,
	required, useDefaultFromTag bool,
	log reflog.Logger,
) {
	switch field.Type.Kind() {
	case reflect.Map:
		loadMapField(fieldVal, field, envKey, defaultValStr, required, useDefaultFromTag, log)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		loadIntField(fieldVal, field, envKey, defaultValStr, required, useDefaultFromTag, log)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		loadUintField(fieldVal, field, envKey, defaultValStr, required, useDefaultFromTag, log)

	case reflect.Float32, reflect.Float64:
		loadFloatField(fieldVal, field, envKey, defaultValStr, required, useDefaultFromTag, log)

	case reflect.Bool:
		loadBoolField(fieldVal, field, envKey, defaultValStr, required, useDefaultFromTag, log)

	case reflect.String:
		loadStringField(fieldVal, field, envKey, defaultValStr, required, useDefaultFromTag, log)

	case reflect.Slice:
		loadSliceField(fieldVal, field, envKey, required, log)

	default:
		log.Warnf("Unsupported field type for field %s", field.Name)
	}
}

func loadIntField(
	fieldVal reflect.Value,
	field reflect.StructField,
	envKey, defaultValStr string,
	required, useDefaultFromTag bool,
	log reflog.Logger,
) {
	if useDefaultFromTag {
		val, err := valueparser.TryUnmarshal[int64](defaultValStr, field.Type)
		if err != nil {
			val, err = valueparser.ParseValue[int64](defaultValStr)
			if err != nil {
				log.Fatalf("Failed to parse default value tag for field %s: %v", field.Name, err)
			}
		}

		fieldVal.SetInt(val)
	}

	value, _ := GetEnv(envKey, "", false, log)

	val, err := valueparser.TryUnmarshal[int64](value, field.Type)
	if err == nil {
		fieldVal.SetInt(val)

		return
	}

	if !errors.Is(err, valueparser.ErrUnparsableValue) {
		log.Warnf("Failed to unmarshal value %s to int64: %v", value, err)
	}

	got, _ := GetEnv(envKey, fieldVal.Int(), required, log)
	fieldVal.SetInt(got)
}

func loadUintField(
	fieldVal reflect.Value,
	field reflect.StructField,
	envKey, defaultValStr string,
	required, useDefaultFromTag bool,
	log reflog.Logger,
) {
	if useDefaultFromTag {
		val, err := valueparser.TryUnmarshal[uint64](defaultValStr, field.Type)
		if err != nil {
			val, err = valueparser.ParseValue[uint64](defaultValStr)
			if err != nil {
				log.Fatalf("Failed to parse default value tag for field %s: %v", field.Name, err)
			}
		}

		fieldVal.SetUint(val)
	}

	value, _ := GetEnv(envKey, "", false, log)

	val, err := valueparser.TryUnmarshal[uint64](value, field.Type)
	if err == nil {
		fieldVal.SetUint(val)

		return
	}

	if !errors.Is(err, valueparser.ErrUnparsableValue) {
		log.Warnf("Failed to unmarshal value %s to uint64: %v", value, err)
	}

	got, _ := GetEnv(envKey, fieldVal.Uint(), required, log)
	fieldVal.SetUint(got)
}

func loadFloatField(
	fieldVal reflect.Value,
	field reflect.StructField,
	envKey, defaultValStr string,
	required, useDefaultFromTag bool,
	log reflog.Logger,
) {
	if useDefaultFromTag {
		val, err := valueparser.TryUnmarshal[float64](defaultValStr, field.Type)
		if err != nil {
			val, err = valueparser.ParseValue[float64](defaultValStr)
			if err != nil {
				log.Fatalf("Failed to parse default value tag for field %s: %v", field.Name, err)
			}
		}

		fieldVal.SetFloat(val)
	}

	value, _ := GetEnv(envKey, "", false, log)

	val, err := valueparser.TryUnmarshal[float64](value, field.Type)
	if err == nil {
		fieldVal.SetFloat(val)

		return
	}

	if !errors.Is(err, valueparser.ErrUnparsableValue) {
		log.Warnf("Failed to unmarshal value %s to float64: %v", value, err)
	}

	got, _ := GetEnv(envKey, fieldVal.Float(), required, log)
	fieldVal.SetFloat(got)
}

func loadBoolField(
	fieldVal reflect.Value,
	field reflect.StructField,
	envKey, defaultValStr string,
	required, useDefaultFromTag bool,
	log reflog.Logger,
) {
	if useDefaultFromTag {
		val, err := valueparser.TryUnmarshal[bool](defaultValStr, field.Type)
		if err != nil {
			val, err = valueparser.ParseValue[bool](defaultValStr)
			if err != nil {
				log.Fatalf("Failed to parse default value tag for field %s: %v", field.Name, err)
			}
		}

		fieldVal.SetBool(val)
	}

	value, _ := GetEnv(envKey, "", false, log)

	val, err := valueparser.TryUnmarshal[bool](value, field.Type)
	if err == nil {
		fieldVal.SetBool(val)

		return
	}

	if !errors.Is(err, valueparser.ErrUnparsableValue) {
		log.Warnf("Failed to unmarshal value %s to bool: %v", value, err)
	}

	got, _ := GetEnv(envKey, fieldVal.Bool(), required, log)
	fieldVal.SetBool(got)
}

func loadStringField(
	fieldVal reflect.Value,
	field reflect.StructField,
	envKey, defaultValStr string,
	required, useDefaultFromTag bool,
	log reflog.Logger,
) {
	if useDefaultFromTag {
		val, err := valueparser.TryUnmarshal[string](defaultValStr, field.Type)
		if err != nil {
			fieldVal.SetString(defaultValStr)
		} else {
			fieldVal.SetString(val)
		}
	}

	value, _ := GetEnv(envKey, "", false, log)

	val, err := valueparser.TryUnmarshal[string](value, field.Type)
	if err == nil {
		fieldVal.SetString(val)

		return
	}

	if !errors.Is(err, valueparser.ErrUnparsableValue) {
		log.Warnf("Failed to unmarshal value %s to string: %v", value, err)
	}

	got, _ := GetEnv(envKey, fieldVal.String(), required, log)
	fieldVal.SetString(got)
}

func loadSliceField(fieldVal reflect.Value, field reflect.StructField, envKey string, required bool, log reflog.Logger) {
	switch field.Type.Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		loadArrayInto[int64](fieldVal, envKey, required, log)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		loadArrayInto[uint64](fieldVal, envKey, required, log)

	case reflect.Float32, reflect.Float64:
		loadArrayInto[float64](fieldVal, envKey, required, log)

	case reflect.Bool:
		loadArrayInto[bool](fieldVal, envKey, required, log)

	case reflect.String:
		loadArrayInto[string](fieldVal, envKey, required, log)

	case reflect.Slice:
		if isByteSlice(field.Type.Elem()) {
			loadArrayInto[[]byte](fieldVal, envKey, required, log)
		} else {
			log.Warnf("Unsupported slice type for field %s", field.Name)
		}

	default:
		log.Warnf("Unsupported slice type for field %s", field.Name)
	}
}

func loadArrayInto[T valueparser.ParsableType](fieldVal reflect.Value, envKey string, required bool, log reflog.Logger) {
	array := make([]T, fieldVal.Len())
	copyArray(fieldVal, reflect.ValueOf(array))

	array, _ = GetEnvArray(envKey, array, nil, required, log)
	copyArray(reflect.ValueOf(array), fieldVal)
}

func loadMapField(
	fieldVal reflect.Value,
	field reflect.StructField,
	envKey, defaultValStr string,
	required, useDefaultFromTag bool,
	log reflog.Logger,
) {
	switch getMapType(fieldVal) {
	case stringStringMap:
		loadMapInto[string, string](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case stringIntMap:
		loadMapInto[string, int64](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case stringUintMap:
		loadMapInto[string, uint64](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case stringFloatMap:
		loadMapInto[string, float64](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case stringBoolMap:
		loadMapInto[string, bool](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case stringByteSliceMap:
		loadMapInto[string, []byte](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case intStringMap:
		loadMapInto[int64, string](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case intIntMap:
		loadMapInto[int64, int64](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case intUintMap:
		loadMapInto[int64, uint64](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case intFloatMap:
		loadMapInto[int64, float64](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case intBoolMap:
		loadMapInto[int64, bool](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case intByteSliceMap:
		loadMapInto[int64, []byte](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case uintStringMap:
		loadMapInto[uint64, string](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case uintIntMap:
		loadMapInto[uint64, int64](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case uintUintMap:
		loadMapInto[uint64, uint64](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case uintFloatMap:
		loadMapInto[uint64, float64](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case uintBoolMap:
		loadMapInto[uint64, bool](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case uintByteSliceMap:
		loadMapInto[uint64, []byte](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case floatStringMap:
		loadMapInto[float64, string](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case floatIntMap:
		loadMapInto[float64, int64](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case floatUintMap:
		loadMapInto[float64, uint64](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case floatFloatMap:
		loadMapInto[float64, float64](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case floatBoolMap:
		loadMapInto[float64, bool](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case floatByteSliceMap:
		loadMapInto[float64, []byte](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case boolStringMap:
		loadMapInto[bool, string](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case boolIntMap:
		loadMapInto[bool, int64](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case boolUintMap:
		loadMapInto[bool, uint64](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case boolFloatMap:
		loadMapInto[bool, float64](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case boolBoolMap:
		loadMapInto[bool, bool](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case boolByteSliceMap:
		loadMapInto[bool, []byte](fieldVal, envKey, defaultValStr, required, useDefaultFromTag, log)
	case invalidMap:
		log.Warnf("Unsupported map type for field %s", field.Name)
	}
}

func loadMapInto[K valueparser.ParsableComparableType, V valueparser.ParsableType](
	fieldVal reflect.Value,
	envKey, defaultValStr string,
	required, useDefaultFromTag bool,
	log reflog.Logger,
) {
	if useDefaultFromTag {
		val, err := valueparser.ParseMap[K, V](defaultValStr, nil, nil)
		if err != nil {
			log.Fatalf("Failed to parse default value tag for field %s: %v", envKey, err)
		}

		copyMap(reflect.ValueOf(val), fieldVal)
	}

	mapCopy := make(map[K]V)
	copyMap(fieldVal, reflect.ValueOf(mapCopy))

	mapCopy, _ = GetEnvMap(envKey, mapCopy, required, nil, nil, log)
	copyMap(reflect.ValueOf(mapCopy), fieldVal)
}
