package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Knetic/go-namedParameterQuery"
	"github.com/go-sql-driver/mysql"
	"github.com/jekabolt/wedding-rsvp/internal/dependency"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// maxTxAttempts bounds how many times Tx re-runs a function after a retryable failure.
const maxTxAttempts = 5

type ltx struct {
	*sqlx.Tx
}

func (t ltx) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return nil, fmt.Errorf("already in transaction")
}

type txDB interface {
	Commit() error
	Rollback() error
}

func (ms *SQLStore) DB() dependency.DB {
	return ms.db
}

// Tx starts transaction and executes the function passing to it Handler
// using this transaction. It automatically rolls the transaction back if
// function returns an error. If the error has been caused by serialization
// error or by a concurrent insert of the same key, it calls the function again.
// In order for this to work, the function should return Handler errors
// unchanged, or wrap them using %w.
func (ms *SQLStore) Tx(ctx context.Context, f func(context.Context, dependency.Repository) error) error {
	if ms.InTx() {
		return f(ctx, ms)
	}
	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		var pst *SQLStore
		pst, err = ms.TxBegin(ctx)
		if err != nil {
			return err
		}
		err = f(ctx, pst)
		if err == nil {
			if err = pst.TxCommit(ctx); err == nil {
				return nil
			}
		}
		_ = pst.TxRollback(ctx)
		if !ms.IsErrorRepeat(err) && !ms.IsErrUniqueViolation(err) {
			return err
		}
	}
	return fmt.Errorf("transaction retries exhausted: %w", err)
}

// InTx returns true if the object is in transaction
func (ms *SQLStore) InTx() bool {
	return ms.txDB != nil
}

func (ms *SQLStore) txOptions() *sql.TxOptions {
	if ms.db.DriverName() == DriverSQLite {
		return nil
	}
	return &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	}
}

func (ms *SQLStore) TxBegin(ctx context.Context) (*SQLStore, error) {
	tx, err := ms.DB().BeginTxx(ctx, ms.txOptions())
	if err != nil {
		return nil, err
	}

	return &SQLStore{
		db:    ltx{Tx: tx},
		txDB:  tx,
		ts:    ms.Now(),
		close: ms.close,
	}, nil
}

// Now returns current time for the store. It is frozen during transactions.
func (ms *SQLStore) Now() time.Time {
	if ms.ts.IsZero() {
		return time.Now().UTC()
	}
	return ms.ts
}

func (ms *SQLStore) TxCommit(ctx context.Context) error {
	if ms.txDB == nil {
		return fmt.Errorf("not in transaction")
	}
	err := ms.txDB.Commit()
	if err == nil {
		ms.db = nil
		ms.txDB = nil
	}
	return err
}

func (ms *SQLStore) TxRollback(ctx context.Context) error {
	if ms.txDB == nil {
		return fmt.Errorf("not in transaction")
	}
	err := ms.txDB.Rollback()
	if err == nil {
		ms.db = nil
		ms.txDB = nil
	}
	return err
}

// IsErrorRepeat reports serialization failures and deadlocks that are safe to retry.
func (ms *SQLStore) IsErrorRepeat(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1213 || myErr.Number == 1205
	}
	var liteErr *msqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3lib.SQLITE_BUSY
	}
	return false
}

func (ms *SQLStore) IsErrUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var liteErr *msqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}

func bindNamed(conn dependency.DB, query string, params map[string]any) (string, []any, error) {
	queryNamed := namedParameterQuery.NewNamedParameterQuery(query)
	queryNamed.SetValuesFromMap(params)
	query, args, err := sqlx.In(queryNamed.GetParsedQuery(), queryNamed.GetParsedParameters()...)
	if err != nil {
		return "", nil, fmt.Errorf("sqlx in: %w", err)
	}
	return conn.Rebind(query), args, nil
}

func QueryListNamed[T any](
	ctx context.Context,
	conn dependency.DB,
	query string,
	params map[string]any,
) ([]T, error) {
	query, args, err := bindNamed(conn, query, params)
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	var target []T
	for rows.Next() {
		var t T
		if err := rows.StructScan(&t); err != nil {
			return nil, fmt.Errorf("struct scan: %w", err)
		}
		target = append(target, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return target, nil
}

// QueryNamedOne returns sql.ErrNoRows (wrapped) when nothing matches.
func QueryNamedOne[T any](ctx context.Context, conn dependency.DB, query string, params map[string]any) (T, error) {
	var target T
	query, args, err := bindNamed(conn, query, params)
	if err != nil {
		return target, err
	}

	row := conn.QueryRowxContext(ctx, query, args...)
	if err := row.Err(); err != nil {
		return target, fmt.Errorf("query row: %w", err)
	}

	if err := row.StructScan(&target); err != nil {
		return target, fmt.Errorf("struct scan: %w", err)
	}
	return target, nil
}

// ExecNamed returns the number of affected rows.
// nolint: interfacer
func ExecNamed(
	ctx context.Context,
	conn dependency.DB,
	query string,
	params map[string]any,
) (int64, error) {
	query, args, err := bindNamed(conn, query, params)
	if err != nil {
		return 0, err
	}
	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("RowsAffected: %w", err)
	}
	return n, nil
}
