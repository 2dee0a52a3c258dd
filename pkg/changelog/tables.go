package changelog

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/announcer/pkg/mdast"
)

// Table style names accepted by TableFormatterFor.
const (
	TableStylePlain = "plain"
	TableStyleBox   = "box"
)

// pipeSeparator joins cells in the plain table layout.
const pipeSeparator = " | "

// TableFormatter lays out a table as fixed-width text.
// headers is empty when the table has no header row.
type TableFormatter interface {
	FormatTable(headers []string, rows [][]string, aligns []mdast.Alignment) string
}

// PipeTableFormatter is the built-in plain layout: the header line, then one
// line per body row, each made of its cells joined by " | ". There is no
// padding, alignment, or box drawing.
type PipeTableFormatter struct{}

// FormatTable implements TableFormatter.
func (PipeTableFormatter) FormatTable(headers []string, rows [][]string, _ []mdast.Alignment) string {
	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, strings.Join(headers, pipeSeparator))
	}
	for _, row := range rows {
		lines = append(lines, strings.Join(row, pipeSeparator))
	}
	return strings.Join(lines, "\n")
}

// BoxTableFormatter draws a bordered table with lipgloss, honouring the
// declared column alignments. AlignNone columns are left-aligned.
type BoxTableFormatter struct {
	// Border defaults to lipgloss.NormalBorder when zero.
	Border *lipgloss.Border
}

// FormatTable implements TableFormatter.
func (f BoxTableFormatter) FormatTable(headers []string, rows [][]string, aligns []mdast.Alignment) string {
	border := lipgloss.NormalBorder()
	if f.Border != nil {
		border = *f.Border
	}

	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	tbl := table.New().
		Border(border).
		Rows(rows...).
		StyleFunc(func(_, col int) lipgloss.Style {
			return cellStyle.Align(columnPosition(aligns, col))
		})
	if len(headers) > 0 {
		tbl = tbl.Headers(headers...)
	}

	return tbl.String()
}

func columnPosition(aligns []mdast.Alignment, col int) lipgloss.Position {
	if col < 0 || col >= len(aligns) {
		return lipgloss.Left
	}
	switch aligns[col] {
	case mdast.AlignCenter:
		return lipgloss.Center
	case mdast.AlignRight:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

// TableFormatterFor returns the formatter registered under style.
// The empty style selects the plain layout.
//
//nolint:ireturn // callers pick a strategy by name
func TableFormatterFor(style string) (TableFormatter, error) {
	switch style {
	case "", TableStylePlain:
		return PipeTableFormatter{}, nil
	case TableStyleBox:
		return BoxTableFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown table style %q (want %s or %s)", style, TableStylePlain, TableStyleBox)
	}
}

// tableCells extracts plain-text cells from a Table node.
func tableCells(tbl *mdast.Node) (headers []string, rows [][]string, aligns []mdast.Alignment) {
	if tbl.Block != nil && tbl.Block.Table != nil {
		aligns = tbl.Block.Table.Alignments
	}

	for _, row := range mdast.FindByKind(tbl, mdast.NodeTableRow) {
		var cells []string
		for _, cell := range mdast.FindByKind(row, mdast.NodeTableCell) {
			cells = append(cells, mdast.PlainText(cell))
		}
		if row.Block != nil && row.Block.Header {
			headers = cells
			continue
		}
		rows = append(rows, cells)
	}

	return headers, rows, aligns
}
