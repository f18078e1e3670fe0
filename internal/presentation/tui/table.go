package tui

import (
	"io"

	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/olekukonko/tablewriter"
)

// PrintRows writes labelled rows of a set as an aligned table.
func PrintRows(w io.Writer, set domain.Set, rows []domain.Row) {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{string(set), r.Expression, r.Label})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"SET", "EXPRESSION", "LABEL"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
