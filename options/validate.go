package options

import (
	"fmt"
	"os"
	"reflect"
	"strings"
)

// In returns a validator that accepts only values equal to one of the
// allowed values. Equality is reflect.DeepEqual, so slices and maps work
// as allowed values too.
func In(allowed ...any) Validator {
	return func(val any) error {
		for _, a := range allowed {
			if reflect.DeepEqual(val, a) {
				return nil
			}
		}
		return fmt.Errorf("unsupported value %v, should be one of: %s", val, joinValues(allowed))
	}
}

// OfType returns a validator that accepts only values whose dynamic type
// equals the type of one of the samples. A nil sample admits nil values.
//
//	options.OfType("", 0, nil) // string, int, or nil
func OfType(samples ...any) Validator {
	types := make([]reflect.Type, len(samples))
	for i, sample := range samples {
		types[i] = reflect.TypeOf(sample) // nil sample yields a nil Type
	}

	return func(val any) error {
		valType := reflect.TypeOf(val)
		for _, t := range types {
			if t == nil {
				if val == nil {
					return nil
				}
				continue
			}
			if valType == t {
				return nil
			}
		}
		return fmt.Errorf("unsupported value %v, must be of type %s", val, joinTypes(types))
	}
}

// PathExists validates that the value names an existing filesystem path.
// Empty and nil values pass, so optional path options validate cleanly
// when unset.
func PathExists(val any) error {
	if val == nil {
		return nil
	}
	path, ok := val.(string)
	if !ok {
		if s, isStringer := val.(fmt.Stringer); isStringer {
			path = s.String()
		} else {
			return fmt.Errorf("value %v (%T) is not a path", val, val)
		}
	}
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("path %s does not exist", path)
	}
	return nil
}

func joinValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

func joinTypes(types []reflect.Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		if t == nil {
			parts[i] = "nil"
			continue
		}
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
