package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	// ErrInvalidRequest wraps every request validation failure
	ErrInvalidRequest = errors.New("invalid request")

	// ErrComputationFailed is returned when a calculation fails unexpectedly.
	// The whole request fails; no partial result is returned.
	ErrComputationFailed = errors.New("computation failed")
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateRequest runs struct validation on a request
func validateRequest(request any) error {
	if err := validate.Struct(request); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

// guard runs fn, converting a panic into ErrComputationFailed
func guard(operation string, logger *zap.Logger, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Calculation failed",
				zap.String("operation", operation),
				zap.Any("panic", r))
			err = fmt.Errorf("%w: %s: %v", ErrComputationFailed, operation, r)
		}
	}()

	return fn()
}
