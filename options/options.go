package options

import (
	"fmt"
	"reflect"
	"sort"
)

// Validator checks a single option value and returns a non-nil error when
// the value is unacceptable.
type Validator func(val any) error

// Convertor transforms a raw option value into its canonical in-memory
// form. Convertors keyed to different options must not depend on each
// other's results: the per-key application order is unspecified.
type Convertor func(val any) (any, error)

// settings collects the optional construction parameters shared by New
// and NewLayered.
type settings struct {
	defaults    map[string]any
	validators  map[string]Validator
	convertors  map[string]Convertor
	required    [][]string
	priority    []string
	hasPriority bool
}

// Option configures New and NewLayered.
type Option func(*settings)

// WithDefaults sets the always-present, lowest-priority defaults mapping.
func WithDefaults(defaults map[string]any) Option {
	return func(s *settings) {
		s.defaults = defaults
	}
}

// WithValidators sets the per-key validators. A validator is invoked only
// when its key is present in the merged mapping.
func WithValidators(validators map[string]Validator) Option {
	return func(s *settings) {
		s.validators = validators
	}
}

// WithConvertors sets the per-key convertors, applied after validation.
func WithConvertors(convertors map[string]Convertor) Option {
	return func(s *settings) {
		s.convertors = convertors
	}
}

// WithRequired requires every listed key to be present in the merged
// mapping.
func WithRequired(keys ...string) Option {
	return func(s *settings) {
		s.required = [][]string{keys}
	}
}

// WithRequiredOneOf requires at least one of the listed key combinations
// to be fully present in the merged mapping.
func WithRequiredOneOf(combinations ...[]string) Option {
	return func(s *settings) {
		s.required = combinations
	}
}

// WithPriority sets the initial priority order for NewLayered, most
// significant layer name first. New ignores it.
func WithPriority(names ...string) Option {
	return func(s *settings) {
		s.priority = names
		s.hasPriority = true
	}
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Options holds a single merged option mapping together with its
// defaults, validators, convertors and required-key spec. It is the
// degenerate single-layer case of Layered and the shared read interface
// for both.
type Options struct {
	defaults   map[string]any
	effective  map[string]any
	validators map[string]Validator
	convertors map[string]Convertor
	required   [][]string
}

// New builds an Options from one values mapping. The defaults are
// overlaid by values, then the result is validated and converted.
//
// On a validation or conversion failure the returned Options is still
// usable for inspection: it holds the merged values, with no conversion
// applied. Callers must not trust the mapping when err is non-nil.
func New(values map[string]any, opts ...Option) (*Options, error) {
	s := newSettings(opts)

	o := &Options{
		defaults:   deepCopyMap(s.defaults),
		validators: s.validators,
		convertors: s.convertors,
		required:   s.required,
	}

	o.effective = deepCopyMap(o.defaults)
	for key, val := range values {
		o.effective[key] = val
	}

	if err := o.Validate(); err != nil {
		return o, err
	}
	return o, o.convert()
}

// Validate runs every registered validator against the effective mapping
// and then checks the required-key combinations.
//
// A validator failure is reported as ErrInvalidValue wrapping the key
// name and the validator's own error. A required-combination failure is
// reported as ErrMissingRequired enumerating the combinations attempted.
func (o *Options) Validate() error {
	for _, key := range sortedKeys(o.validators) {
		val, present := o.effective[key]
		if !present {
			continue
		}
		if err := o.validators[key](val); err != nil {
			return fmt.Errorf("%w: option %q: %w", ErrInvalidValue, key, err)
		}
	}
	return o.checkRequired()
}

func (o *Options) checkRequired() error {
	if len(o.required) == 0 {
		return nil
	}
	for _, combination := range o.required {
		if o.hasAll(combination) {
			return nil
		}
	}
	return missingRequiredError(o.required)
}

func (o *Options) hasAll(keys []string) bool {
	for _, key := range keys {
		if _, present := o.effective[key]; !present {
			return false
		}
	}
	return true
}

// convert rewrites effective values in place with the registered
// convertors. It stops at the first failing convertor.
func (o *Options) convert() error {
	for _, key := range sortedKeys(o.convertors) {
		val, present := o.effective[key]
		if !present {
			continue
		}
		converted, err := o.convertors[key](val)
		if err != nil {
			return fmt.Errorf("convert option %q: %w", key, err)
		}
		o.effective[key] = converted
	}
	return nil
}

// Get returns the effective value for key and whether the key is present.
func (o *Options) Get(key string) (any, bool) {
	val, present := o.effective[key]
	return val, present
}

// GetOr returns the effective value for key, or fallback when the key is
// absent.
func (o *Options) GetOr(key string, fallback any) any {
	if val, present := o.effective[key]; present {
		return val
	}
	return fallback
}

// Has reports whether key is present in the effective mapping.
func (o *Options) Has(key string) bool {
	_, present := o.effective[key]
	return present
}

// IsDefault reports whether key has a registered default and its
// effective value equals that default. Keys without a default report
// false even when present in the effective mapping.
func (o *Options) IsDefault(key string) bool {
	def, present := o.defaults[key]
	if !present {
		return false
	}
	return reflect.DeepEqual(o.effective[key], def)
}

// Set writes value for key directly into the effective mapping,
// bypassing the layers, and re-runs validation. It does not re-merge and
// does not re-run conversion; callers storing raw values must convert
// them first.
func (o *Options) Set(key string, value any) error {
	o.effective[key] = value
	return o.Validate()
}

// Keys returns the effective keys in sorted order.
func (o *Options) Keys() []string {
	return sortedKeys(o.effective)
}

// Len returns the number of effective keys.
func (o *Options) Len() int {
	return len(o.effective)
}

// Map returns a copy of the effective mapping. Mutating the copy does
// not affect the Options.
func (o *Options) Map() map[string]any {
	return deepCopyMap(o.effective)
}

// sortedKeys returns the keys of m in sorted order, for deterministic
// iteration.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// deepCopyMap copies a mapping, descending into nested map[string]any
// and []any values. Other values are copied by assignment.
func deepCopyMap(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = deepCopyValue(val)
	}
	return dst
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = deepCopyValue(elem)
		}
		return out
	default:
		return v
	}
}
