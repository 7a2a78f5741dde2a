package repository

import (
	"context"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRow scans values positionally or fails with err.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i := range dest {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

// fakeTx records what a repository did inside a transaction. Methods not
// overridden here panic through the nil embedded interface.
type fakeTx struct {
	pgx.Tx
	db *fakeDB
}

func (tx *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return tx.db.QueryRow(ctx, sql, args...)
}

func (tx *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return tx.db.Exec(ctx, sql, args...)
}

func (tx *fakeTx) Commit(context.Context) error {
	if tx.db.commitErr != nil {
		return tx.db.commitErr
	}
	tx.db.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	if !tx.db.committed {
		tx.db.rolledBack = true
	}
	return nil
}

// fakeDB hands out queued rows in order and answers every Exec with tag/err.
type fakeDB struct {
	rows      []pgx.Row
	execTag   pgconn.CommandTag
	execErr   error
	beginErr  error
	commitErr error

	queries    []string
	committed  bool
	rolledBack bool
}

func (db *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("Query not expected")
}

func (db *fakeDB) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	db.queries = append(db.queries, sql)
	if len(db.rows) == 0 {
		return fakeRow{err: pgx.ErrNoRows}
	}
	row := db.rows[0]
	db.rows = db.rows[1:]
	return row
}

func (db *fakeDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	db.queries = append(db.queries, sql)
	return db.execTag, db.execErr
}

func (db *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	return &fakeTx{db: db}, nil
}

func (db *fakeDB) Ping(context.Context) error { return nil }

func (db *fakeDB) Close() {}
