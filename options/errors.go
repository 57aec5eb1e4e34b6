package options

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownLayer is returned when a priority order names a layer
	// that was never registered. The previous effective mapping is left
	// untouched.
	ErrUnknownLayer = errors.New("unknown layer")

	// ErrInvalidValue is returned when a per-key validator rejects the
	// merged value. The wrapped error carries the offending key and the
	// validator's original message.
	ErrInvalidValue = errors.New("invalid option value")

	// ErrMissingRequired is returned when none of the required key
	// combinations is fully present in the effective mapping.
	ErrMissingRequired = errors.New("missing required options")

	// ErrLayerNotFound is returned by LoadLayerFile when the layer file
	// does not exist.
	ErrLayerNotFound = errors.New("layer file not found")
)

// missingRequiredError builds the ErrMissingRequired message, enumerating
// every combination that was attempted when alternatives exist.
func missingRequiredError(combinations [][]string) error {
	if len(combinations) == 1 {
		return fmt.Errorf("%w: not all required options are supplied: %s",
			ErrMissingRequired, strings.Join(combinations[0], ", "))
	}

	parts := make([]string, len(combinations))
	for i, combination := range combinations {
		parts[i] = strings.Join(combination, ", ")
	}
	return fmt.Errorf("%w: not all required options are supplied; required combinations are:\n%s",
		ErrMissingRequired, strings.Join(parts, "\nor:\n"))
}
