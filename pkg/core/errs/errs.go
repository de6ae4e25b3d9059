package errs

import (
	"fmt"
	"strings"
)

// InsufficientDataError signals that an engine was called with fewer periods
// or data points than it needs. Distinct from a zero/default result.
type InsufficientDataError struct {
	Required int
	Got      int
	What     string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient %s: need at least %d, got %d", e.What, e.Required, e.Got)
}

// ValidationError carries every violated constraint, not just the first.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// ConfigurationError signals an input combination that makes the calculation
// undefined (e.g. variable cost ratio >= 1 for break-even).
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}

// InvalidComparisonError signals a product comparison request that resolved
// to fewer than two known products.
type InvalidComparisonError struct {
	Category string
	Found    int
}

func (e *InvalidComparisonError) Error() string {
	return fmt.Sprintf("need at least 2 products to compare in category %q, found %d", e.Category, e.Found)
}
