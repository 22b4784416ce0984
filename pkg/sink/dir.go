package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang/snappy"
)

// DirSink writes each table as a CSV file in one directory, optionally
// wrapped in the snappy framing format.
type DirSink struct {
	dir    string
	snappy bool

	mu     sync.Mutex
	paths  map[string]string
	closed bool
}

// NewDirSink creates dir and any missing parents.
func NewDirSink(dir string, compress bool) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, writeErr("dir", "", "mkdir", err)
	}
	return &DirSink{
		dir:    dir,
		snappy: compress,
		paths:  make(map[string]string),
	}, nil
}

// Name returns "dir".
func (d *DirSink) Name() string { return "dir" }

// Dir returns the output directory.
func (d *DirSink) Dir() string { return d.dir }

// Write replaces <dir>/<name>.csv (or .csv.sz) with the table. The file is
// written under a temporary name and renamed into place.
func (d *DirSink) Write(ctx context.Context, t Table) error {
	if err := ctx.Err(); err != nil {
		return writeErr(d.Name(), t.Name, "write", err)
	}
	if err := t.Validate(); err != nil {
		return writeErr(d.Name(), t.Name, "validate", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return writeErr(d.Name(), t.Name, "write", ErrSinkClosed)
	}

	path := filepath.Join(d.dir, FileName(t.Name, d.snappy))
	tmp := path + ".tmp"
	if err := d.writeFile(tmp, t); err != nil {
		_ = os.Remove(tmp)
		return writeErr(d.Name(), t.Name, "write", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return writeErr(d.Name(), t.Name, "rename", err)
	}
	d.paths[t.Name] = path
	return nil
}

func (d *DirSink) writeFile(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	var w io.Writer = f
	var sw *snappy.Writer
	if d.snappy {
		sw = snappy.NewBufferedWriter(f)
		w = sw
	}

	if err := EncodeCSV(w, t); err != nil {
		f.Close()
		return err
	}
	if sw != nil {
		if err := sw.Close(); err != nil {
			f.Close()
			return err
		}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Path returns the file a table was written to.
func (d *DirSink) Path(table string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.paths[table]
	return p, ok
}

// Close marks the sink closed. Files already written are kept.
func (d *DirSink) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// ReadCSV reads a table file written by DirSink, header included. Files
// ending in .sz are decoded from the snappy framing format.
func ReadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".sz") {
		r = snappy.NewReader(f)
	}
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}
