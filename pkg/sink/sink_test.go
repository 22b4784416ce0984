package sink

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Name:   "graph_nodes",
		Header: []string{"account_id", "country"},
		Rows: [][]string{
			{"A00001", "US"},
			{"A00002", "DE"},
		},
	}
}

func TestTableValidate(t *testing.T) {
	require.NoError(t, sampleTable().Validate())

	assert.ErrorIs(t, Table{Header: []string{"a"}}.Validate(), ErrEmptyTableName)

	ragged := sampleTable()
	ragged.Rows = append(ragged.Rows, []string{"A00003"})
	assert.ErrorIs(t, ragged.Validate(), ErrRowWidth)
}

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, sampleTable()))
	assert.Equal(t, "account_id,country\nA00001,US\nA00002,DE\n", buf.String())
}

func TestEncodeCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	tbl := sampleTable()
	tbl.Rows = nil
	require.NoError(t, EncodeCSV(&buf, tbl))
	assert.Equal(t, "account_id,country\n", buf.String())
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "graph_edges.csv", FileName("graph_edges", false))
	assert.Equal(t, "graph_edges.csv.sz", FileName("graph_edges", true))
}

func TestWriteError(t *testing.T) {
	cause := errors.New("disk full")
	err := writeErr("dir", "graph_edges", "write", cause)

	assert.Equal(t, "dir sink: write graph_edges: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	var we *WriteError
	require.ErrorAs(t, error(err), &we)
	assert.Equal(t, "dir", we.Sink)

	noTable := writeErr("s3", "", "load aws config", cause)
	assert.Equal(t, "s3 sink: load aws config: disk full", noTable.Error())
	assert.False(t, noTable.Is(nil))
}
