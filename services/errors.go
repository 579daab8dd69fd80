package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrDuplicate and ErrReference both match ErrConstraintViolation.
	ErrDuplicate = fmt.Errorf("%w: duplicate key", ErrConstraintViolation)
	ErrReference = fmt.Errorf("%w: missing reference", ErrConstraintViolation)
)

// castErr replaces driver and GORM errors with the package sentinels. The
// original error text is kept for logs.
func castErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrConstraintViolation),
		errors.Is(err, ErrStorageUnavailable), errors.Is(err, ErrInvalidInput):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isDuplicateMessage(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated), isReferenceMessage(err):
		return fmt.Errorf("%w: %v", ErrReference, err)
	default:
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
}

// Drivers without error translation still report these messages.
func isDuplicateMessage(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

func isReferenceMessage(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "a foreign key constraint fails") ||
		strings.Contains(msg, "violates foreign key constraint")
}
