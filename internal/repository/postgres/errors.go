package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolationCode - код ошибки PostgreSQL unique_violation
const uniqueViolationCode = "23505"

// isUniqueViolation проверяет, является ли ошибка нарушением уникального
// ограничения. GORM v2 с драйвером pgx возвращает *pgconn.PgError;
// gorm.ErrDuplicatedKey проверяется для случаев с включенным TranslateError.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
