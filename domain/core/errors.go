package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors: caller-supplied data violates a precondition
	ErrInvalidInput   = errors.New("invalid input")
	ErrSeriesTooShort = fmt.Errorf("%w: series too short", ErrInvalidInput)
	ErrLengthMismatch = fmt.Errorf("%w: series length mismatch", ErrInvalidInput)
	ErrInvalidPeriod  = fmt.Errorf("%w: invalid period", ErrInvalidInput)

	// Domain errors: a mathematically undefined operation
	ErrDomain              = errors.New("domain error")
	ErrUnitAutocorrelation = fmt.Errorf("%w: autocorrelation coefficient of 1", ErrDomain)
	ErrNonPositiveVariance = fmt.Errorf("%w: non-positive variance with nonzero score", ErrDomain)
	ErrZeroSampleSize      = fmt.Errorf("%w: sample size driven to zero", ErrDomain)

	// Unsupported errors: the referenced method does not define the case
	ErrUnsupported     = errors.New("unsupported")
	ErrTiesUnsupported = fmt.Errorf("%w: tied values in covariate-adjusted test", ErrUnsupported)
)

// Error constructors with context
func NewSeriesTooShortError(name string, n, min int) error {
	return fmt.Errorf("%w: %s has %d observations, need at least %d", ErrSeriesTooShort, name, n, min)
}

func NewLengthMismatchError(nx, ny int) error {
	return fmt.Errorf("%w: len(x)=%d, len(y)=%d", ErrLengthMismatch, nx, ny)
}

func NewInvalidPeriodError(period, n int) error {
	return fmt.Errorf("%w: period=%d with %d observations", ErrInvalidPeriod, period, n)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsDomainError(err error) bool {
	return errors.Is(err, ErrDomain)
}

func IsUnsupportedError(err error) bool {
	return errors.Is(err, ErrUnsupported)
}
