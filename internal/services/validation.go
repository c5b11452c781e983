package services

import (
	"errors"
	"fmt"
	"strings"

	"ordermgr/internal/errs"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateEntity runs the struct's validate tags and reports failures as a
// constraint violation on entity.
func validateEntity(entity string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate %s: %w", entity, err)
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
	}
	return errs.NewConstraintViolationError(entity, strings.Join(msgs, "; "))
}
