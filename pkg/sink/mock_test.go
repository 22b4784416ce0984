package sink

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// putterMock is a mock implementation of objectPutter.
type putterMock struct {
	PutObjectFunc func(ctx context.Context, params *s3.PutObjectInput) (*s3.PutObjectOutput, error)
}

func (m *putterMock) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return m.PutObjectFunc(ctx, params)
}

// pgMock records statements and copied rows.
type pgMock struct {
	mu       sync.Mutex
	ExecFunc func(sql string) error
	CopyFunc func(table pgx.Identifier, columns []string, rows [][]any) (int64, error)
	execs    []string
	copied   map[string][][]any
	closed   int
}

func newPGMock() *pgMock {
	return &pgMock{copied: make(map[string][][]any)}
}

func (m *pgMock) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.execs = append(m.execs, sql)
	if m.ExecFunc != nil {
		if err := m.ExecFunc(sql); err != nil {
			return pgconn.CommandTag{}, err
		}
	}
	return pgconn.NewCommandTag("OK"), nil
}

func (m *pgMock) CopyFrom(_ context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	var rows [][]any
	for src.Next() {
		values, err := src.Values()
		if err != nil {
			return 0, err
		}
		rows = append(rows, values)
	}
	if err := src.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CopyFunc != nil {
		return m.CopyFunc(table, columns, rows)
	}
	m.copied[table.Sanitize()] = rows
	return int64(len(rows)), nil
}

func (m *pgMock) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
}

// recordingSink keeps every table it is given.
type recordingSink struct {
	name     string
	tables   []Table
	writeErr error
	closeErr error
	closed   bool
}

func (r *recordingSink) Name() string { return r.name }

func (r *recordingSink) Write(_ context.Context, t Table) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.tables = append(r.tables, t)
	return nil
}

func (r *recordingSink) Close() error {
	r.closed = true
	return r.closeErr
}
