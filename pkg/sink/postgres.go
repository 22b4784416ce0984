package sink

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dd0wney/cluso-fraudgen/pkg/validation"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgDB is the slice of pgxpool.Pool the sink needs.
type pgDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Close()
}

// PostgresSink copies each table into a TEXT-typed table of the same name.
// Values keep their CSV rendering so the database copy matches the files.
type PostgresSink struct {
	db     pgDB
	schema string

	mu     sync.Mutex
	closed bool
}

// DefaultPostgresSchema is used when no schema is configured.
const DefaultPostgresSchema = "public"

// DefaultPostgresMaxConns is the pool size used when maxConns is zero.
const DefaultPostgresMaxConns = 2

// NewPostgresSink connects to databaseURL and verifies the connection.
// A zero maxConns selects DefaultPostgresMaxConns.
func NewPostgresSink(ctx context.Context, databaseURL, schema string, maxConns int) (*PostgresSink, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, writeErr("postgres", "", "parse url", err)
	}

	config.MaxConns = int32(validation.DefaultOr(maxConns, DefaultPostgresMaxConns))
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, writeErr("postgres", "", "connect", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, writeErr("postgres", "", "ping", err)
	}
	return newPostgresSink(pool, schema), nil
}

func newPostgresSink(db pgDB, schema string) *PostgresSink {
	return &PostgresSink{db: db, schema: validation.DefaultOr(schema, DefaultPostgresSchema)}
}

// Name returns "postgres".
func (p *PostgresSink) Name() string { return "postgres" }

// Write creates the table if needed, empties it and copies the rows in.
func (p *PostgresSink) Write(ctx context.Context, t Table) error {
	if err := t.Validate(); err != nil {
		return writeErr(p.Name(), t.Name, "validate", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return writeErr(p.Name(), t.Name, "copy", ErrSinkClosed)
	}

	ident := pgx.Identifier{p.schema, t.Name}
	if _, err := p.db.Exec(ctx, createTableSQL(ident, t.Header)); err != nil {
		return writeErr(p.Name(), t.Name, "create", err)
	}
	if _, err := p.db.Exec(ctx, "TRUNCATE "+ident.Sanitize()); err != nil {
		return writeErr(p.Name(), t.Name, "truncate", err)
	}

	rows := t.Rows
	n, err := p.db.CopyFrom(ctx, ident, t.Header, pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
		values := make([]any, len(rows[i]))
		for j, v := range rows[i] {
			values[j] = v
		}
		return values, nil
	}))
	if err != nil {
		return writeErr(p.Name(), t.Name, "copy", err)
	}
	if n != int64(len(rows)) {
		return writeErr(p.Name(), t.Name, "copy", fmt.Errorf("copied %d of %d rows", n, len(rows)))
	}
	return nil
}

func createTableSQL(ident pgx.Identifier, header []string) string {
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = pgx.Identifier{h}.Sanitize() + " TEXT NOT NULL"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", ident.Sanitize(), strings.Join(cols, ", "))
}

// Close releases the connection pool.
func (p *PostgresSink) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		p.db.Close()
	}
	return nil
}
