package repository

import (
	"errors"

	"github.com/autospa/autospa-api/internal/domain/repository"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// isUniqueViolation reports whether err came from a unique constraint
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// translate maps driver errors onto the domain repository errors
func translate(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}
