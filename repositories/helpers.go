package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

var (
	// ErrStorageUnavailable - хранилище недоступно (соединение потеряно или не установлено).
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrIntegrity - нарушено ограничение целостности (FK, CHECK, UNIQUE).
	ErrIntegrity = errors.New("integrity constraint violated")
	// ErrConcurrentUpdate - транзакция не может быть сериализована с параллельной.
	ErrConcurrentUpdate = errors.New("concurrent update conflict")
	// ErrInvalidData - значение не помещается в столбец (переполнение, NUL в тексте и т.п.).
	ErrInvalidData = errors.New("invalid data for storage")
)

// sqliteCoder matches *sqlite.Error, whose fields are unexported.
type sqliteCoder interface {
	error
	Code() int
}

var _ sqliteCoder = (*sqlite.Error)(nil)

// Dialect describes the few places where postgres and sqlite SQL differ.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Rebind turns '?' placeholders into '$n' for postgres. Queries are written
// with '?' and contain no literal question marks.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// TxOptions returns the isolation used for read-modify-write units.
// SQLite serializes writers on its own.
func (d Dialect) TxOptions(readOnly bool) *sql.TxOptions {
	if d == DialectPostgres {
		return &sql.TxOptions{Isolation: sql.LevelSerializable, ReadOnly: readOnly}
	}
	return nil
}

// ClassifyError wraps driver errors into the storage error kinds. The original
// error stays in the chain.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorageUnavailable) || errors.Is(err, ErrIntegrity) ||
		errors.Is(err, ErrConcurrentUpdate) || errors.Is(err, ErrInvalidData) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code.Class() == "08", pqErr.Code.Class() == "57":
			return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		case pqErr.Code.Class() == "22":
			return fmt.Errorf("%w: %w", ErrInvalidData, err)
		case pqErr.Code.Class() == "23":
			return fmt.Errorf("%w: %s: %w", ErrIntegrity, pqErr.Constraint, err)
		case pqErr.Code == "40001", pqErr.Code == "40P01":
			return fmt.Errorf("%w: %w", ErrConcurrentUpdate, err)
		}
		return err
	}

	var liteErr sqliteCoder
	if errors.As(err, &liteErr) {
		// Расширенные коды (например SQLITE_CONSTRAINT_FOREIGNKEY) несут основной код в младшем байте.
		switch liteErr.Code() & 0xff {
		case sqlite3lib.SQLITE_CONSTRAINT:
			return fmt.Errorf("%w: %w", ErrIntegrity, err)
		case sqlite3lib.SQLITE_MISMATCH, sqlite3lib.SQLITE_TOOBIG, sqlite3lib.SQLITE_RANGE:
			return fmt.Errorf("%w: %w", ErrInvalidData, err)
		case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED:
			return fmt.Errorf("%w: %w", ErrConcurrentUpdate, err)
		case sqlite3lib.SQLITE_CANTOPEN, sqlite3lib.SQLITE_IOERR:
			return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
		return err
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if strings.Contains(err.Error(), "sql: database is closed") {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return err
}
