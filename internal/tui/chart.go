package tui

import (
	"fmt"
	"strings"

	"github.com/cwren/pennyledger/internal/ledger"
)

// cashFlowChart renders the six-month series as paired income/expense bars,
// one month per row, oldest first.
type cashFlowChart struct {
	series []ledger.CashFlowBucket
	symbol string
}

func (c cashFlowChart) Render(width int) string {
	if len(c.series) == 0 {
		return "(no data)"
	}
	var maxV ledger.Cents = 1
	for _, b := range c.series {
		if b.Income > maxV {
			maxV = b.Income
		}
		if b.Expenses > maxV {
			maxV = b.Expenses
		}
	}
	barWidth := width - 24
	if barWidth < 8 {
		barWidth = 8
	}
	bar := func(v ledger.Cents) string {
		w := int(float64(v) / float64(maxV) * float64(barWidth))
		if v > 0 && w < 1 {
			w = 1
		}
		return strings.Repeat("#", w)
	}
	var lines []string
	for _, b := range c.series {
		lines = append(lines,
			fmt.Sprintf("%-4s in  %s %s", b.Label(), incomeStyle.Render(bar(b.Income)), b.Income.Format(c.symbol)),
			fmt.Sprintf("     out %s %s", expenseStyle.Render(bar(b.Expenses)), b.Expenses.Format(c.symbol)),
		)
	}
	return strings.Join(lines, "\n")
}

// gauge renders a [0,100] value as a fixed-width meter.
func gauge(value float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(value / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
