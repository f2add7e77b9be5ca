package db

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound cobre tanto recursos inexistentes quanto recursos que o viewer
// não tem direito de ver; quem chama não consegue distinguir os dois casos.
var ErrNotFound = errors.New("resource not found")

type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

func wrapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
