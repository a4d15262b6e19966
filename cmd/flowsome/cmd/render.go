package cmd

import (
	"fmt"
	"io"

	"github.com/flowsome/flowsome"
	"github.com/olekukonko/tablewriter"
)

const maxCellWidth = 40

// renderTable writes a Table as a bordered text table, with a footer counting its rows
func renderTable(w io.Writer, table flowsome.Table) error {
	schema := table.Schema()
	colTypes := schema.ColumnTypes()
	header := make([]string, schema.NumColumns())
	for i, name := range schema.ColumnNames() {
		header[i] = fmt.Sprintf("%s (%s)", name, colTypes[i].Name())
	}
	writer := tablewriter.NewWriter(w)
	writer.SetHeader(header)
	writer.SetAutoFormatHeaders(false)
	writer.SetAutoWrapText(false)
	err := table.ForEachRow(func(row flowsome.Row) error {
		record := make([]string, len(colTypes))
		for i, v := range row.Values() {
			record[i] = formatCell(colTypes[i], v)
		}
		writer.Append(record)
		return nil
	})
	if err != nil {
		return err
	}
	writer.Render()
	_, err = fmt.Fprintf(w, "(%d rows)\n", table.NumRows())
	return err
}

func formatCell(colType flowsome.ColumnType, v interface{}) string {
	if v == nil {
		return "null"
	}
	s, ok := v.(string)
	if !ok {
		s = colType.ToString(v)
	}
	if runes := []rune(s); len(runes) > maxCellWidth {
		s = string(runes[:maxCellWidth-3]) + "..."
	}
	return s
}
