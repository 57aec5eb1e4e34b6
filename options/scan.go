package options

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the effective mapping into the target struct or map.
// The target must be a non-nil pointer. Fields are matched via the
// "yaml" struct tag with weakly typed conversions, so "8080" decodes
// into an int field and "5s" into a time.Duration.
func (o *Options) Scan(target any) error {
	return decodeValues(o.effective, target)
}

// ScanKey decodes the sub-mapping stored under key into the target. The
// effective value for key must be a map[string]any.
func (o *Options) ScanKey(key string, target any) error {
	val, present := o.effective[key]
	if !present {
		return fmt.Errorf("option not set: %s", key)
	}
	sub, ok := val.(map[string]any)
	if !ok {
		return fmt.Errorf("option %q does not hold a mapping, got %T", key, val)
	}
	return decodeValues(sub, target)
}

func decodeValues(values map[string]any, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("failed to decode options into %T: %w", target, err)
	}
	return nil
}
