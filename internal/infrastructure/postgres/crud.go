package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vacinas-ubs/estoque-vacinas/internal/domain"
)

type scanner interface {
	Scan(dest ...any) error
}

// tableDef describe cómo mapear T a una tabla. columns[0] es siempre "id" y values(e)
// devuelve los valores en el mismo orden que columns.
type tableDef[T any] struct {
	name    string
	columns []string
	scan    func(s scanner, e *T) error
	values  func(e *T) []any
}

// crudRepo implementa repository.Repository[T] una sola vez para todas las tablas.
type crudRepo[T any] struct {
	q   Querier
	def tableDef[T]
}

func (r *crudRepo[T]) selectSQL() string {
	return "SELECT " + strings.Join(r.def.columns, ", ") + " FROM " + r.def.name
}

func (r *crudRepo[T]) Create(ctx context.Context, e *T) error {
	placeholders := make([]string, len(r.def.columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := "INSERT INTO " + r.def.name + " (" + strings.Join(r.def.columns, ", ") +
		") VALUES (" + strings.Join(placeholders, ", ") + ")"
	if _, err := r.q.Exec(ctx, query, r.def.values(e)...); err != nil {
		return domain.Persistence(describe("insert "+r.def.name, err), err)
	}
	return nil
}

func (r *crudRepo[T]) GetByID(ctx context.Context, id string) (*T, error) {
	return r.queryOne(ctx, "get "+r.def.name, r.selectSQL()+" WHERE id = $1", id)
}

// Update reescribe todas las columnas salvo id. Sin filas afectadas devuelve ErrNotFound.
func (r *crudRepo[T]) Update(ctx context.Context, e *T) error {
	sets := make([]string, 0, len(r.def.columns)-1)
	for i, c := range r.def.columns[1:] {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+2))
	}
	query := "UPDATE " + r.def.name + " SET " + strings.Join(sets, ", ") + " WHERE id = $1"
	cmd, err := r.q.Exec(ctx, query, r.def.values(e)...)
	if err != nil {
		return domain.Persistence(describe("update "+r.def.name, err), err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra por id. Si otras filas aún referencian el registro (ON DELETE RESTRICT)
// devuelve ErrConflict.
func (r *crudRepo[T]) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, "DELETE FROM "+r.def.name+" WHERE id = $1", id); err != nil {
		op := describe("delete "+r.def.name, err)
		if pgErrorCode(err) == codeForeignKeyViolation {
			return domain.Conflict(op, err)
		}
		return domain.Persistence(op, err)
	}
	return nil
}

// queryOne devuelve (nil, nil) si no hay filas.
func (r *crudRepo[T]) queryOne(ctx context.Context, op, query string, args ...any) (*T, error) {
	var e T
	if err := r.def.scan(r.q.QueryRow(ctx, query, args...), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Persistence(op, err)
	}
	return &e, nil
}

func (r *crudRepo[T]) queryList(ctx context.Context, op, query string, args ...any) ([]*T, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence(op, err)
	}
	defer rows.Close()
	var list []*T
	for rows.Next() {
		var e T
		if err := r.def.scan(rows, &e); err != nil {
			return nil, domain.Persistence("scan "+r.def.name, err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence(op, err)
	}
	return list, nil
}
