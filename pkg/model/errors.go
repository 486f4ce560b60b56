package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is matched by every InvalidParameterError.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDomain is matched by every DomainError.
	ErrDomain = errors.New("outside utility domain")
)

// InvalidParameterError reports a consumer parameter that failed validation.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s = %g: %s", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is match ErrInvalidParameter.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// DomainError reports a non-positive consumption value reaching the utility
// function. The budget constraint produced it, so the parameters are at fault.
type DomainError struct {
	Consumption float64
	Labor       float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("consumption %g at labor %g is not positive, log utility undefined", e.Consumption, e.Labor)
}

// Is lets errors.Is match ErrDomain.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}
