package options

import (
	"fmt"
	"reflect"
	"strconv"
)

// String retrieves a string option value by key.
// Attempts conversion from common types if the stored value isn't already a string.
func (o *Options) String(key string) (string, error) {
	val, present := o.Get(key)
	if !present {
		return "", fmt.Errorf("option not set: %s", key)
	}
	if val == nil {
		return "", nil // Treat nil as empty string for convenience
	}

	if strVal, ok := val.(string); ok {
		return strVal, nil
	}

	// Attempt conversion for common types
	switch v := val.(type) {
	case fmt.Stringer:
		return v.String(), nil
	case []byte:
		return string(v), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case error:
		return v.Error(), nil
	default:
		return "", fmt.Errorf("cannot convert type %T to string for option %s", val, key)
	}
}

// Int64 retrieves an int64 option value by key.
// Attempts conversion from numeric types, parsable strings, and booleans.
func (o *Options) Int64(key string) (int64, error) {
	val, present := o.Get(key)
	if !present {
		return 0, fmt.Errorf("option not set: %s", key)
	}
	if val == nil {
		return 0, fmt.Errorf("value for option %s is nil, cannot convert to int64", key)
	}

	// Use reflection for broader compatibility with numeric types
	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		// Check for potential overflow converting uint64 to int64
		maxInt64 := int64(^uint64(0) >> 1)
		if u > uint64(maxInt64) {
			return 0, fmt.Errorf("cannot convert unsigned integer %d (type %T) to int64 for option %s: overflow", u, val, key)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		// Truncate float to int
		return int64(v.Float()), nil
	case reflect.String:
		s := v.String()
		if i, err := strconv.ParseInt(s, 0, 64); err == nil { // Use base 0 for auto-detection (e.g., "0xFF")
			return i, nil
		} else {
			if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
				return int64(f), nil // Truncate
			}
			// Return the original integer parsing error if float also fails
			return 0, fmt.Errorf("cannot convert string %q to int64 for option %s: %w", s, key, err)
		}
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("cannot convert type %T to int64 for option %s", val, key)
}

// Bool retrieves a boolean option value by key.
// Attempts conversion from numeric types (0=false, non-zero=true) and parsable strings.
func (o *Options) Bool(key string) (bool, error) {
	val, present := o.Get(key)
	if !present {
		return false, fmt.Errorf("option not set: %s", key)
	}
	if val == nil {
		return false, fmt.Errorf("value for option %s is nil, cannot convert to bool", key)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		s := v.String()
		if b, err := strconv.ParseBool(s); err == nil {
			return b, nil
		} else {
			return false, fmt.Errorf("cannot convert string %q to bool for option %s: %w", s, key, err)
		}
	// Numeric interpretation: 0 is false, non-zero is true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0, nil
	}

	return false, fmt.Errorf("cannot convert type %T to bool for option %s", val, key)
}

// Float64 retrieves a float64 option value by key.
// Attempts conversion from numeric types, parsable strings, and booleans.
func (o *Options) Float64(key string) (float64, error) {
	val, present := o.Get(key)
	if !present {
		return 0.0, fmt.Errorf("option not set: %s", key)
	}
	if val == nil {
		return 0.0, fmt.Errorf("value for option %s is nil, cannot convert to float64", key)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.String:
		s := v.String()
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, nil
		} else {
			return 0.0, fmt.Errorf("cannot convert string %q to float64 for option %s: %w", s, key, err)
		}
	case reflect.Bool:
		if v.Bool() {
			return 1.0, nil
		}
		return 0.0, nil
	}

	return 0.0, fmt.Errorf("cannot convert type %T to float64 for option %s", val, key)
}
