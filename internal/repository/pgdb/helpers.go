package pgdb

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"
)

const uniqueViolationCode = "23505"

// postgresDuplicate распознаёт нарушение уникального ограничения.
func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// vectorParam передаёт вектор связанным параметром запроса.
// Интерполяция векторов в SQL-текст запрещена.
func vectorParam(v []float32) any {
	if v == nil {
		return nil
	}

	return pgvector.NewVector(v)
}
