package refconfig

import (
	"fmt"
	"os"
	"reflect"

	"github.com/riverford/durable-ref/referr"
	"github.com/riverford/durable-ref/reflog"
	"github.com/riverford/durable-ref/valueparser"
)

// GetEnv retrieves the value of an environment variable, parses it to the specified type T,
// and returns it. If the variable is not set, it returns a fallback value.
// If the variable is required and not set, it logs and returns an error.
//
// Example usage:
//
//	myInt, err := GetEnv("MY_ENV_VAR", 42, true, log)
//	if err != nil {
//	    // handle error
//	}
func GetEnv[T valueparser.ParsableType](
	key string,
	fallback T,
	required bool,
	log reflog.Logger,
) (T, referr.Error) {
	return GetEnvWithCustomType(
		key,
		fallback,
		required,
		reflect.TypeOf(new(T)).Elem(),
		log,
	)
}

// GetEnvWithCustomType retrieves the value of an environment variable, parses it to the specified type T,
// and returns it. If the variable is not set, it returns a fallback value.
// If the variable is required and not set, it logs an error and returns an error.
// This function is useful when you need to specify a custom type for parsing.
func GetEnvWithCustomType[T valueparser.ParsableType](
	key string,
	fallback T,
	required bool,
	vType reflect.Type,
	log reflog.Logger,
) (T, referr.Error) {
	safetyCheck(&log)

	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := valueparser.ParseValueWithCustomType[T](value, vType); err == nil {
			return parsed, nil
		}
	}

	if required {
		return fallback, referr.FromErrorWithLog(
			referr.KindMissingValue,
			ErrValueIsRequired,
			fmt.Sprintf("get env: environment variable %s is required", key),
			log,
		)
	}

	log.Warnf(
		"Environment variable %s is not set or failed to parse, using default value %v",
		key,
		fallback,
	)

	return fallback, nil
}

// GetEnvArray retrieves the value of an environment variable, splits it by a specified separator, (default is ","),
// parses each part into the specified type T, and returns a slice of T.
// If the variable is not set, it returns a fallback value.
// If the variable is required and not set, it logs and returns an error.
func GetEnvArray[T valueparser.ParsableType](
	key string,
	fallback []T,
	separator *string,
	required bool,
	log reflog.Logger,
) ([]T, referr.Error) {
	return GetEnvArrayWithCustomType(
		key,
		fallback,
		separator,
		required,
		reflect.TypeOf(new(T)).Elem(),
		log,
	)
}

// GetEnvArrayWithCustomType retrieves the value of an environment variable, splits it by a specified separator
// (default is ","), parses each part into the specified type T, and returns a slice of T.
// If the variable is not set, it returns a fallback value.
// If the variable is required and not set, it logs and returns an error.
// This function is useful when you need to specify a custom type for parsing.
func GetEnvArrayWithCustomType[T valueparser.ParsableType](
	key string,
	fallback []T,
	separator *string,
	required bool,
	vType reflect.Type,
	log reflog.Logger,
) ([]T, referr.Error) {
	safetyCheck(&log)

	if value, exists := os.LookupEnv(key); exists {
		parsed, err := valueparser.ParseArrayWithCustomType[T](value, separator, vType)
		if err == nil {
			return parsed, nil
		}

		log.Errorf("Failed to parse environment variable %s: %v", key, err)
	}

	if required {
		return nil, referr.FromErrorWithLog(
			referr.KindMissingValue,
			ErrValueIsRequired,
			fmt.Sprintf(
				"get env array: environment variable %s is required",
				key,
			),
			log,
		)
	}

	log.Warnf("Environment variable %s is not set, using default value %v", key, fallback)

	return fallback, nil
}

// GetEnvMap retrieves the value of an environment variable, splits it by a specified entry separator (default is ","),
// and each entry by a specified key-value separator (default is ":").
// It parses the key and value into the specified types K and V, and returns a map of K to V.
// If the variable is not set, it returns a fallback value.
// If the variable is required and not set, it logs and returns an error.
func GetEnvMap[K valueparser.ParsableComparableType, V valueparser.ParsableType](
	key string,
	fallback map[K]V,
	required bool,
	entrySeparator *string,
	kvSeparator *string,
	log reflog.Logger,
) (map[K]V, referr.Error) {
	return GetEnvMapWithCustomType(
		key,
		fallback,
		required,
		entrySeparator,
		kvSeparator,
		reflect.TypeOf(new(K)).Elem(),
		reflect.TypeOf(new(V)).Elem(),
		log,
	)
}

// GetEnvMapWithCustomType retrieves the value of an environment variable, splits it by a specified entry separator
// (default is ","), and each entry by a specified key-value separator (default is ":").
// It parses the key and value into the specified types K and V, and returns a map of K to V.
// If the variable is not set, it returns a fallback value.
// If the variable is required and not set, it logs and returns an error.
// This function is useful when you need to specify custom types for parsing keys and/or values.
func GetEnvMapWithCustomType[K valueparser.ParsableComparableType, V valueparser.ParsableType](
	key string,
	fallback map[K]V,
	required bool,
	entrySeparator *string,
	kvSeparator *string,
	kType reflect.Type,
	vType reflect.Type,
	log reflog.Logger,
) (map[K]V, referr.Error) {
	safetyCheck(&log)

	if value, exists := os.LookupEnv(key); exists {
		parsed, err := valueparser.ParseMapWithCustomType[K, V](
			value,
			entrySeparator,
			kvSeparator,
			kType,
			vType,
		)
		if err == nil {
			return parsed, nil
		}

		log.Errorf("Failed to parse environment variable %s: %v", key, err)
	}

	if required {
		return nil, referr.FromErrorWithLog(
			referr.KindMissingValue,
			ErrValueIsRequired,
			fmt.Sprintf(
				"get env map: environment variable %s is required",
				key,
			),
			log,
		)
	}

	log.Warnf("Environment variable %s is not set, using default value %v", key, fallback)

	return fallback, nil
}
