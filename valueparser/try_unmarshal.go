package valueparser

import (
	"encoding"
	"fmt"
	"reflect"

	"github.com/riverford/durable-ref/referr"
)

// TryUnmarshal is a generic function that converts a string value to the specified type T.
// It returns the converted value and an error if the conversion fails.
//
// Example usage:
//
//	// *reflog.Level implements encoding.TextUnmarshaler
//	level, err := TryUnmarshal[uint64]("info", reflect.TypeOf(reflog.Level(0))) // level == 2
//	if err != nil {
//		// Handle error
//	}
func TryUnmarshal[T ParsableType](value string, valueType reflect.Type) (T, referr.Error) {
	var zero T

	typ := reflect.TypeOf(zero)
	ptr := reflect.New(valueType)

	if unmarshaler, ok := ptr.Interface().(encoding.TextUnmarshaler); ok {
		if err := unmarshaler.UnmarshalText([]byte(value)); err != nil {
			return zero, referr.FromError(
				referr.KindInvalidValue,
				err,
				fmt.Sprintf(
					"try unmarshal: cannot convert value %v to type %s",
					value,
					valueType,
				),
			)
		}
	} else if unmarshaler, ok := ptr.Interface().(Unmarshalable); ok {
		if err := unmarshaler.Unmarshal(value); err != nil {
			return zero, referr.FromError(
				referr.KindInvalidValue,
				ErrUnparsableValue,
				fmt.Sprintf(
					"try unmarshal: %v cannot be unmarshaled to type %s: %v",
					value,
					valueType,
					err,
				),
			)
		}
	} else {
		return zero, referr.FromError(
			referr.KindInvalidValue,
			ErrUnparsableValue,
			"try unmarshal: Unmarshalable interface not implemented",
		)
	}

	val, err := ConvertValue(ptr.Elem(), typ)
	if err != nil {
		return zero, err.Wrap(
			fmt.Sprintf(
				"try unmarshal: cannot convert value %v to type %s",
				value,
				typ,
			),
		)
	}

	if val, ok := val.Interface().(T); ok {
		return val, nil
	}

	return zero, referr.FromError(referr.KindInvalidValue, ErrInvalidValue, "try unmarshal")
}
