package errors

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
)

// NumericalInstabilityError reports a computation that produced NaN or Inf.
// It is classified as IllDefinedModel: the inputs were finite but the
// requested quantity could not be represented.
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("adspend: numerical instability detected in %s. Values: [%s]", e.Operation, valStr)
}

// Is reports IllDefinedModel membership.
func (e *NumericalInstabilityError) Is(target error) bool {
	return target == ErrIllDefinedModel
}

// NewNumericalInstabilityError creates a NumericalInstabilityError with a stack.
func NewNumericalInstabilityError(operation string, values []float64) error {
	return errors.WithStack(&NumericalInstabilityError{Operation: operation, Values: values})
}

// CheckFinite validates that every value of an input is finite. The
// returned error is a ValidationError naming the first offending index.
func CheckFinite(param string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValidationError(fmt.Sprintf("%s[%d]", param, i), "must be finite", v)
		}
	}
	return nil
}

// CheckScalar checks a single computed value for numerical instability.
func CheckScalar(operation string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalInstabilityError(operation, []float64{value})
	}
	return nil
}
