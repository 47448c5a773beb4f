// Package refautoflags packs the boolean fields of a struct into a single
// unsigned integer field named "Flags", and unpacks them back. It backs
// refopts.Flags, which is derived automatically from the boolean toggles on
// refopts.ReadOpts and refopts.WriteOpts instead of being maintained as a parallel bitmask by hand.
package refautoflags

import (
	"fmt"
	"reflect"
)

const (
	flagsFieldName       = "Flags"
	bitsInByte     uint8 = 8
)

// PackFlags packs boolean fields of a struct into a single flags field.
// The struct must have a field named "Flags" of type uint64, uint32, uint16,
// uint8, uint or uintptr. The boolean fields are packed into the flags
// field, where each bit represents a boolean field. The first boolean field
// corresponds to the least significant bit of the flags field. If the
// number of boolean fields exceeds the size of the flags field, an error is
// returned.
//
// Example usage:
//
//	type MyFlags struct {
//	    A, B, C bool
//	    Flags  uint8 // or uint64, uint32, uint16, uint, uintptr
//	}
//
//	err := PackFlags(&MyFlags{A: true, B: false, C: true})
func PackFlags[T any](instance *T) error {
	if instance == nil {
		return fmt.Errorf("pack flags: %w", ErrInstanceNil)
	}

	reflectValue := reflect.ValueOf(instance).Elem()
	reflectType := reflectValue.Type()

	if reflectValue.Kind() != reflect.Struct {
		return fmt.Errorf("pack flags: %w", ErrInstanceNotStruct)
	}

	var flagsField reflect.Value

	var nextFlagIndex uint8

	var flags uint64

	var flagsSize uint8

	for i := range reflectValue.NumField() {
		fieldValue := reflectValue.Field(i)
		fieldType := reflectType.Field(i)

		if fieldValue.Kind() == reflect.Bool {
			if fieldValue.Bool() {
				flags |= 1 << nextFlagIndex
			}

			nextFlagIndex++
		}

		if fieldType.Name == flagsFieldName {
			flagsField = fieldValue
			flagsSize = uint8( //nolint:gosec,lll // the maximum size of any uint type is 8 bytes, well within uint8
				uint64(flagsField.Type().Size()) * uint64(bitsInByte),
			)

			//nolint:exhaustive // the flags field must be an unsigned integer type
			switch flagsField.Kind() {
			case reflect.Uint64,
				reflect.Uint32,
				reflect.Uint16,
				reflect.Uint8,
				reflect.Uint,
				reflect.Uintptr:
			default:
				return fmt.Errorf(
					"pack flags: got %s: %w",
					flagsField.Kind().String(),
					ErrFlagsFieldTypeMismatch,
				)
			}
		}
	}

	if flagsSize == 0 {
		return fmt.Errorf("pack flags: %w", ErrFlagsFieldNotFound)
	}

	if nextFlagIndex > flagsSize {
		return fmt.Errorf(
			"pack flags: maximum is %d for %s: %w",
			flagsSize,
			flagsField.Kind().String(),
			ErrTooManyFlags,
		)
	}

	flagsField.SetUint(flags)

	return nil
}

// UnpackFlags unpacks a flags field into the boolean fields of a struct.
// It is the inverse of PackFlags.
func UnpackFlags[T any](instance *T) error {
	if instance == nil {
		return fmt.Errorf("unpack flags: %w", ErrInstanceNil)
	}

	reflectValue := reflect.ValueOf(instance).Elem()

	if reflectValue.Kind() != reflect.Struct {
		return fmt.Errorf("unpack flags: %w", ErrInstanceNotStruct)
	}

	flagsField := reflectValue.FieldByName(flagsFieldName)

	if !flagsField.IsValid() {
		return fmt.Errorf("unpack flags: %w", ErrFlagsFieldNotFound)
	}

	//nolint:exhaustive // the flags field must be an unsigned integer type
	switch flagsField.Kind() {
	case reflect.Uint64,
		reflect.Uint32,
		reflect.Uint16,
		reflect.Uint8,
		reflect.Uint,
		reflect.Uintptr:
	default:
		return fmt.Errorf(
			"unpack flags: got %s: %w",
			flagsField.Kind().String(),
			ErrFlagsFieldTypeMismatch,
		)
	}

	flags := flagsField.Uint()

	flagsSize := uint8( //nolint:gosec,lll // the maximum size of any uint type is 8 bytes, well within uint8
		uint64(flagsField.Type().Size()) * uint64(bitsInByte),
	)

	var nextFlagIndex uint8

	for i := range reflectValue.NumField() {
		fieldValue := reflectValue.Field(i)

		if fieldValue.Kind() != reflect.Bool {
			continue
		}

		if nextFlagIndex >= flagsSize {
			return fmt.Errorf(
				"unpack flags: maximum is %d for %s: %w",
				flagsSize,
				flagsField.Kind().String(),
				ErrTooManyFlags,
			)
		}

		val := (flags>>nextFlagIndex)&1 == 1
		fieldValue.SetBool(val)

		nextFlagIndex++
	}

	return nil
}
