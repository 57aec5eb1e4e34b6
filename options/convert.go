package options

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

var boolStrings = map[string]bool{
	"1":     true,
	"0":     false,
	"y":     true,
	"n":     false,
	"yes":   true,
	"no":    false,
	"true":  true,
	"false": false,
}

// ToBool converts an option value to bool. Native booleans pass through.
// Strings are matched case-insensitively against 1/0, y/n, yes/no,
// true/false; a string outside that table converts to true. Any other
// type converts by truthiness: nil, zero values, and empty containers
// are false.
func ToBool(val any) (any, error) {
	switch v := val.(type) {
	case bool:
		return v, nil
	case string:
		if b, known := boolStrings[strings.ToLower(strings.TrimSpace(v))]; known {
			return b, nil
		}
		// Unrecognized strings convert to true, not to their truthiness.
		return true, nil
	default:
		return truthy(val), nil
	}
}

// ToPath converts a string option into a cleaned filesystem path. The
// string is decoded as a YAML scalar first, so quoted values from config
// files come out unquoted. Non-string values pass through unchanged.
func ToPath(val any) (any, error) {
	s, ok := val.(string)
	if !ok {
		return val, nil
	}

	var decoded any
	if err := yaml.Unmarshal([]byte(s), &decoded); err != nil {
		return nil, fmt.Errorf("path value %q: %w", s, err)
	}
	if decoded == nil {
		return "", nil
	}
	path, ok := decoded.(string)
	if !ok {
		return nil, fmt.Errorf("path value %q decodes to %T, not a string", s, decoded)
	}
	return filepath.Clean(path), nil
}

// RelPath returns a convertor that joins a string option under parent.
// Falsy values (nil, empty string) pass through unchanged, preserving
// "option not set" markers.
func RelPath(parent string) Convertor {
	return func(val any) (any, error) {
		if !truthy(val) {
			return val, nil
		}
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("value %v (%T) is not a path", val, val)
		}
		return filepath.Join(parent, s), nil
	}
}

// truthy reports whether val would be considered true in a boolean
// context: non-nil, non-zero, and for containers non-empty.
func truthy(val any) bool {
	if val == nil {
		return false
	}
	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String, reflect.Chan:
		return v.Len() > 0
	case reflect.Ptr, reflect.Interface, reflect.Func:
		return !v.IsNil()
	default:
		return !v.IsZero()
	}
}
