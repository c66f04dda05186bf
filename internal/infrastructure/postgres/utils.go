package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE de violación de constraint.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// describe agrega a la operación el tipo de constraint violado, si lo hay, para que el log
// distinga un conflicto de datos de una caída de la base.
func describe(op string, err error) string {
	switch pgErrorCode(err) {
	case codeUniqueViolation:
		return op + " (unique violation)"
	case codeForeignKeyViolation:
		return op + " (foreign key violation)"
	case codeCheckViolation:
		return op + " (check violation)"
	}
	return op
}
