package services

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all services. Controllers translate these to
// HTTP statuses; raw store errors never cross the controller boundary.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrForbidden     = errors.New("forbidden")
	ErrSelfFollow    = errors.New("you cannot subscribe to yourself")

	ErrRecipeNotFound     = fmt.Errorf("recipe %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrIngredientNotFound = fmt.Errorf("ingredient %w", ErrNotFound)
	ErrTagNotFound        = fmt.Errorf("tag %w", ErrNotFound)
)

// ValidationError carries a per-field, client-fixable message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
