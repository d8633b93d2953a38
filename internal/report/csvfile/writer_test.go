package csvfile

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportgen/internal/model"
)

func writeAndRead(t *testing.T, result model.Result) string {
	t.Helper()

	fs := afero.NewMemMapFs()
	w := NewWriter(fs)
	require.NoError(t, w.Write(result, "/out.csv"))

	data, err := afero.ReadFile(fs, "/out.csv")
	require.NoError(t, err)
	return string(data)
}

func TestWriter_Format(t *testing.T) {
	w := NewWriter(nil)
	if got := w.Format(); got != "csv" {
		t.Errorf("Format() = %v, want %v", got, "csv")
	}
}

func TestWriter_Write_Records(t *testing.T) {
	got := writeAndRead(t, model.RecordsResult(
		model.NewRecord("a", 1, "b", 2),
		model.NewRecord("a", 3, "b", 4),
	))

	assert.Equal(t, "a,b\n1,2\n3,4\n", got)
}

func TestWriter_Write_Empty(t *testing.T) {
	got := writeAndRead(t, model.RecordsResult())
	assert.Equal(t, "No Results Found", got)

	got = writeAndRead(t, model.ValueResult([]interface{}{}))
	assert.Equal(t, NoResults, got)
}

func TestWriter_Write_LineCount(t *testing.T) {
	for _, n := range []int{1, 2, 10, 57} {
		records := make([]model.Record, n)
		for i := range records {
			records[i] = model.NewRecord("id", i, "name", "row")
		}

		got := writeAndRead(t, model.RecordsResult(records...))
		lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
		assert.Len(t, lines, n+1, "records=%d", n)
		assert.Equal(t, "id,name", lines[0])
	}
}

func TestWriter_Write_HeaderFromFirstRecord(t *testing.T) {
	got := writeAndRead(t, model.RecordsResult(
		model.NewRecord("zeta", "z1", "alpha", "a1"),
		model.NewRecord("alpha", "a2", "zeta", "z2"),
	))

	assert.Equal(t, "zeta,alpha\nz1,a1\nz2,a2\n", got)
}

func TestWriter_Write_CellFormatting(t *testing.T) {
	got := writeAndRead(t, model.RecordsResult(
		model.NewRecord(
			"nil", nil,
			"bool", true,
			"float", 1.5,
			"number", json.Number("10"),
			"quoted", `say "hi", ok`,
			"nested", model.NewRecord("k", []interface{}{1, 2}),
		),
	))

	r := csv.NewReader(strings.NewReader(got))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"", "true", "1.5", "10", `say "hi", ok`, `{"k":[1,2]}`}, rows[1])
}

func TestWriter_Write_ParsedJSONInput(t *testing.T) {
	result, err := model.ParseResult([]byte(`[{"host":"web-01","cpu":12.50},{"host":"web-02","cpu":80}]`))
	require.NoError(t, err)

	got := writeAndRead(t, result)
	assert.Equal(t, "host,cpu\nweb-01,12.50\nweb-02,80\n", got)
}

func TestWriter_Write_NotRecords(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)

	err := w.Write(model.ValueResult(map[string]interface{}{"a": 1}), "/out.csv")
	assert.True(t, errors.Is(err, model.ErrNotRecords))

	err = w.Write(model.NoResult(), "/out.csv")
	assert.True(t, errors.Is(err, model.ErrNotRecords))

	exists, _ := afero.Exists(fs, "/out.csv")
	assert.False(t, exists)
}

func TestWriter_Write_NonUniform(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)

	err := w.Write(model.RecordsResult(
		model.NewRecord("a", 1, "b", 2),
		model.NewRecord("a", 3),
	), "/out.csv")
	assert.True(t, errors.Is(err, model.ErrNonUniformRecords))

	exists, _ := afero.Exists(fs, "/out.csv")
	assert.False(t, exists)
}

func TestWriter_Write_RepeatedKey(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)

	err := w.Write(model.RecordsResult(
		model.Record{{Key: "a", Value: 1}, {Key: "b", Value: 2}},
		model.Record{{Key: "a", Value: 3}, {Key: "a", Value: 4}},
	), "/out.csv")
	assert.True(t, errors.Is(err, model.ErrNonUniformRecords))

	exists, _ := afero.Exists(fs, "/out.csv")
	assert.False(t, exists)
}

func TestWriter_Write_Quoting(t *testing.T) {
	got := writeAndRead(t, model.RecordsResult(
		model.NewRecord("name", " x", "note", "a,b", "quote", `say "hi"`, "plain", "y"),
	))

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `" x","a,b","say ""hi""",y`, lines[1])

	rows, err := csv.NewReader(strings.NewReader(got)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{" x", "a,b", `say "hi"`, "y"}, rows[1])
}

func TestWriter_Write_Overwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out.csv", []byte("old,header\nold,row\nanother,row\n"), 0o644))

	w := NewWriter(fs)
	require.NoError(t, w.Write(model.RecordsResult(model.NewRecord("a", 1)), "/out.csv"))

	data, err := afero.ReadFile(fs, "/out.csv")
	require.NoError(t, err)
	assert.Equal(t, "a\n1\n", string(data))
}

func TestWriter_Write_ReadOnlyFs(t *testing.T) {
	w := NewWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()))

	err := w.Write(model.RecordsResult(model.NewRecord("a", 1)), "/out.csv")
	assert.Error(t, err)

	err = w.Write(model.RecordsResult(), "/empty.csv")
	assert.Error(t, err)
}
