package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() *Table {
	return &Table{
		Title:   "Tasks: May/2024",
		Headers: []string{"Task", "Client", "Status"},
		Rows: [][]string{
			{"Launch reel", "Acme", "pending"},
			{"Poster series", "Globex", "completed"},
		},
	}
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, sampleTable()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	assert.Equal(t, "Tasks  May 2024", sheets[0])

	rows, err := f.GetRows(sheets[0])
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Task", "Client", "Status"}, rows[0])
	assert.Equal(t, []string{"Poster series", "Globex", "completed"}, rows[2])
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	table := sampleTable()
	for i := 0; i < 80; i++ {
		table.Rows = append(table.Rows, []string{strings.Repeat("long task name ", 10), "Client", "pending"})
	}
	require.NoError(t, WritePDF(&buf, table))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWritePDF_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, &Table{Title: "Nothing"}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestFor(t *testing.T) {
	_, ct, err := For("")
	require.NoError(t, err)
	assert.Contains(t, ct, "spreadsheetml")

	_, ct, err = For("PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)

	_, _, err = For("csv")
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "tasks-2024-05.xlsx", Filename("tasks", "2024-05", ""))
	assert.Equal(t, "clients.pdf", Filename("clients", "", "pdf"))
	assert.Equal(t, "tasks-May-2024.pdf", Filename("tasks", "May 2024", "pdf"))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet1", sheetName("  "))
	assert.Len(t, sheetName(strings.Repeat("x", 40)), maxSheetName)
}
