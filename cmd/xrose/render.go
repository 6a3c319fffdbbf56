package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lychee-technology/xrosedb"
	"github.com/lychee-technology/xrosedb/internal/layers"
	"github.com/olekukonko/tablewriter"
)

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.AppendBulk(rows)
	table.Render()
}

// renderRows prints query results using the first row's column order.
func renderRows(w io.Writer, rows []xrosedb.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no results)")
		return
	}

	header := rows[0].Columns()
	body := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, len(header))
		for i, col := range header {
			if v, ok := row.Get(col); ok {
				line[i] = v.String()
			}
		}
		body = append(body, line)
	}
	renderTable(w, header, body)

	if len(rows) == 1 {
		fmt.Fprintln(w, "(1 result)")
	} else {
		fmt.Fprintf(w, "(%d results)\n", len(rows))
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func formatColor(c layers.RGBA) string {
	return fmt.Sprintf("%s,%s,%s,%s", formatFloat(c.Red), formatFloat(c.Green), formatFloat(c.Blue), formatFloat(c.Alpha))
}
