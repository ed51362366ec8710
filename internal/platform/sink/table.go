package sink

import (
	"bytes"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Table renders header and rows as a light box-drawn table
func Table(header []string, rows [][]any) []byte {
	var buf bytes.Buffer
	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.SetStyle(table.StyleLight)

	h := make(table.Row, len(header))
	for i, v := range header {
		h[i] = v
	}
	t.AppendHeader(h)
	for _, r := range rows {
		t.AppendRow(table.Row(r))
	}
	t.Render()
	return buf.Bytes()
}
