package repositories

import (
	"errors"
	"fmt"

	"ordermgr/internal/errs"

	"gorm.io/gorm"
)

// translateError maps GORM errors onto the errs taxonomy. Unknown errors are
// wrapped with op.
func translateError(err error, op, entity string, id any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NewNotFoundError(entity, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.NewConstraintViolationErrorWithCause(entity, "duplicate value for a unique field", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errs.NewConstraintViolationErrorWithCause(entity, "referenced record does not exist", err)
	default:
		return fmt.Errorf("failed to %s %s: %w", op, entity, err)
	}
}
