package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/paging"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// códigos SQLSTATE que se traducen a la taxonomía de apperr
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// mapErr traduce errores del driver. entity se usa para el mensaje de NotFound.
func mapErr(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return apperr.Conflict(entity + " already exists")
		case foreignKeyViolation:
			return apperr.Validation("referenced record does not exist")
		case checkViolation:
			return apperr.Validation(pgErr.Message)
		}
	}
	return err
}

func getOne(ctx context.Context, q sqlx.QueryerContext, dest any, b sq.Sqlizer, entity string) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	return mapErr(sqlx.GetContext(ctx, q, dest, query, args...), entity)
}

func selectAll(ctx context.Context, q sqlx.QueryerContext, dest any, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	return mapErr(sqlx.SelectContext(ctx, q, dest, query, args...), "")
}

// insertID ejecuta el INSERT con RETURNING id.
func insertID(ctx context.Context, q sqlx.QueryerContext, b sq.InsertBuilder, entity string) (int64, error) {
	query, args, err := b.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := q.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapErr(err, entity)
	}
	return id, nil
}

// execOne falla con NotFound si no tocó ninguna fila.
func execOne(ctx context.Context, e sqlx.ExecerContext, b sq.Sqlizer, entity string) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err, entity)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound(entity)
	}
	return nil
}

func exec(ctx context.Context, e sqlx.ExecerContext, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	_, err = e.ExecContext(ctx, query, args...)
	return mapErr(err, "")
}

func withPage(b sq.SelectBuilder, p paging.Page) sq.SelectBuilder {
	if p.Limit > 0 {
		b = b.Limit(uint64(p.Limit))
	}
	if p.Offset > 0 {
		b = b.Offset(uint64(p.Offset))
	}
	return b
}

// ownedDog es el filtro estándar "el perro de la fila es del usuario".
// alias es el alias de la tabla dogs en la query.
func ownedDog(alias string, userID int64, dogID *int64) sq.And {
	w := sq.And{sq.Eq{alias + ".owner_user_id": userID}}
	if dogID != nil {
		w = append(w, sq.Eq{alias + ".id": *dogID})
	}
	return w
}

func joinCols(cols []string) string {
	return strings.Join(cols, ", ")
}

// prefixed antepone el alias de tabla a cada columna ("v.id", "v.date", ...).
func prefixed(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}

// textArray: nil se guardaría como NULL y las columnas TEXT[] son NOT NULL.
func textArray(s []string) pq.StringArray {
	if s == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(s)
}
