package sink

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(a, []byte("x,y\n1,2\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("x,y\n1,3\n"), 0o644))
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	sumA, size, err := ChecksumFile(a)
	require.NoError(t, err)
	assert.Equal(t, int64(8), size)
	assert.Len(t, sumA, 64)

	again, _, err := ChecksumFile(a)
	require.NoError(t, err)
	assert.Equal(t, sumA, again)

	sumB, _, err := ChecksumFile(b)
	require.NoError(t, err)
	assert.NotEqual(t, sumA, sumB)

	// BLAKE2b-256 of the empty input.
	sumEmpty, size, err := ChecksumFile(empty)
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)
	assert.Equal(t, "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8", sumEmpty)

	_, _, err = ChecksumFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestManifestRoundTripAndVerify(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDirSink(dir, false)
	require.NoError(t, err)

	tbl := sampleTable()
	require.NoError(t, d.Write(context.Background(), tbl))
	path, _ := d.Path(tbl.Name)

	m := &Manifest{
		RunID:        "6f1c1c3e-0000-4000-8000-000000000000",
		CreatedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Seed:         42,
		Accounts:     2,
		Transactions: 1,
		FraudRatio:   0,
		Compression:  "none",
	}
	require.NoError(t, m.Add(tbl.Name, path, len(tbl.Rows)))
	require.Len(t, m.Tables, 1)
	assert.Equal(t, "graph_nodes.csv", m.Tables[0].File)
	assert.Equal(t, 2, m.Tables[0].Rows)

	manifestPath := filepath.Join(dir, ManifestFile)
	require.NoError(t, m.WriteFile(manifestPath))

	loaded, err := ReadManifest(manifestPath)
	require.NoError(t, err)
	assert.Equal(t, m.RunID, loaded.RunID)
	assert.True(t, m.CreatedAt.Equal(loaded.CreatedAt))
	assert.Equal(t, m.Tables, loaded.Tables)
	require.NoError(t, loaded.Verify(dir))

	require.NoError(t, os.WriteFile(path, []byte("tampered\n"), 0o644))
	assert.ErrorIs(t, loaded.Verify(dir), ErrChecksumMismatch)
}

func TestManifestAddMissingFile(t *testing.T) {
	m := &Manifest{}
	assert.Error(t, m.Add("graph_edges", filepath.Join(t.TempDir(), "nope.csv"), 0))
	assert.Empty(t, m.Tables)
}

func TestReadManifestErrors(t *testing.T) {
	_, err := ReadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), ManifestFile)
	require.NoError(t, os.WriteFile(bad, []byte("tables: [unterminated"), 0o644))
	_, err = ReadManifest(bad)
	assert.Error(t, err)
}
