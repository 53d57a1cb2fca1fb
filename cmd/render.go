package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
)

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatPercent(v int) string {
	return fmt.Sprintf("%d%%", v)
}
