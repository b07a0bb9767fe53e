package console

import (
	"fmt"
	"io"
	"strings"

	"janus/domain/orderbook"
)

// printBook renders the two-column tabular view: one row per resting order,
// best priority first.
func printBook(w io.Writer, d orderbook.Depth) {
	buyRows := levelRows(d.Buys)
	sellRows := levelRows(d.Sells)

	rows := max(len(buyRows), len(sellRows), 1)
	for len(buyRows) < rows {
		buyRows = append(buyRows, "")
	}
	for len(sellRows) < rows {
		sellRows = append(sellRows, "")
	}

	const buyHeader = "Buy Orders"
	const sellHeader = "Sell Orders"

	col1 := columnWidth(buyHeader, buyRows)
	col2 := columnWidth(sellHeader, sellRows)

	sep := "+" + strings.Repeat("-", col1) + "+" + strings.Repeat("-", col2) + "+"

	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "| %-*s | %-*s |\n", col1-2, buyHeader, col2-2, sellHeader)
	fmt.Fprintln(w, sep)
	for i := 0; i < rows; i++ {
		fmt.Fprintf(w, "| %-*s | %-*s |\n", col1-2, buyRows[i], col2-2, sellRows[i])
	}
	fmt.Fprintln(w, sep)
}

func levelRows(levels []orderbook.Level) []string {
	rows := make([]string, 0, len(levels))
	for _, lvl := range levels {
		rows = append(rows, fmt.Sprintf("%d @ %d", lvl.Qty, lvl.Price))
	}
	return rows
}

func columnWidth(header string, rows []string) int {
	width := len(header)
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	return width + 2
}
