// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package csvutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead(t *testing.T) {
	path := writeFile(t, "\uFEFFcode,description\n001,cholera\n002,\"typhoid, unspecified\"\n")

	tbl, err := Read(path)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)

	// BOM on the first header cell must not break column lookup.
	_, ok := tbl.Column("code")
	assert.True(t, ok, "column code not found, header = %v", tbl.Header)
	assert.Equal(t, "typhoid, unspecified", tbl.Get(tbl.Rows[1], "description"))
}

func TestReadErrors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err, "missing file")

	empty := writeFile(t, "")
	_, err = Read(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestColumnCaseInsensitive(t *testing.T) {
	path := writeFile(t, "Code,MatchStage\n001,manual\n")
	tbl, err := Read(path)
	require.NoError(t, err)

	_, ok := tbl.Column("matchstage")
	assert.True(t, ok, "case-insensitive lookup failed")
	assert.Equal(t, "001", tbl.Get(tbl.Rows[0], "CODE"))
}

func TestRequire(t *testing.T) {
	path := writeFile(t, "code,description\n001,cholera\n")
	tbl, err := Read(path)
	require.NoError(t, err)

	assert.NoError(t, tbl.Require("code", "description"))

	err = tbl.Require("code", "commoncat", "subcategory")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commoncat")
	assert.Contains(t, err.Error(), "subcategory")
}

func TestGetShortRow(t *testing.T) {
	path := writeFile(t, "code,description,category\n001,cholera\n")
	tbl, err := Read(path)
	require.NoError(t, err)

	assert.Empty(t, tbl.Get(tbl.Rows[0], "category"), "Get on short row")
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "table.csv")
	header := []string{"code", "description"}
	rows := [][]string{
		{"001", "cholera"},
		{"002", "typhoid, unspecified"},
	}
	require.NoError(t, Write(path, header, rows))

	tbl, err := Read(path)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "typhoid, unspecified", tbl.Get(tbl.Rows[1], "description"))
}
