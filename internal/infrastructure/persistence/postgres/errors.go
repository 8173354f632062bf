package postgres

import (
	"errors"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// pgx reports server errors as *pgconn.PgError, which exposes SQLState.
type sqlStateError interface {
	SQLState() string
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}

	var stateErr sqlStateError
	return errors.As(err, &stateErr) && stateErr.SQLState() == uniqueViolation
}
