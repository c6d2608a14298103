package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwren/pennyledger/internal/ledger"
)

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("pennyledger"))
	b.WriteString("\n")
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")

	if a.modal != modalNone {
		b.WriteString(a.renderForm())
	} else {
		switch a.state {
		case viewDashboard:
			b.WriteString(a.renderDashboard())
		case viewTransactions:
			b.WriteString(a.renderTransactions())
		case viewGoals:
			b.WriteString(a.renderGoals())
		case viewSettings:
			b.WriteString(a.renderSettings())
		}
	}

	b.WriteString("\n\n")
	b.WriteString(a.renderStatusLine())
	return b.String()
}

func (a *App) renderTabs() string {
	tabs := []struct {
		state appState
		label string
	}{
		{viewDashboard, "[d] Dashboard"},
		{viewTransactions, "[t] Transactions"},
		{viewGoals, "[g] Goals"},
		{viewSettings, "[s] Settings"},
	}
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		style := tabStyle
		if t.state == a.state {
			style = activeTabStyle
		}
		parts = append(parts, style.Render(t.label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) renderDashboard() string {
	sym := a.cfg.UI.CurrencySymbol
	bd := a.ledger.ComputeBreakdown()

	var b strings.Builder
	b.WriteString(headerStyle.Render("Balances"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Chequing "), a.ledger.ChequingBalance().Format(sym))
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Savings  "), a.ledger.SavingsBalance().Format(sym))
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Income   "), incomeStyle.Render(a.ledger.Income().Format(sym)))
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Expenses "), expenseStyle.Render(a.ledger.Expenses().Format(sym)))
	if bd.Debt > 0 {
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Debt     "), warnStyle.Render(bd.Debt.Format(sym)))
	}
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Net worth"), bd.NetWorth.Format(sym))
	b.WriteString("\n")

	score := a.ledger.HealthScore()
	b.WriteString(headerStyle.Render("Financial health"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %.0f/100\n\n", gauge(score, 30), score)

	b.WriteString(headerStyle.Render("Cash flow, last 6 months"))
	b.WriteString("\n")
	chart := cashFlowChart{series: a.ledger.ComputeCashFlowSeries(), symbol: sym}
	b.WriteString(indent(chart.Render(a.width-4), 2))
	b.WriteString("\n\n")

	recs := a.ledger.GenerateBudgetRecommendations()
	if len(recs) > 0 {
		b.WriteString(headerStyle.Render("Recommendations"))
		b.WriteString("\n")
		for _, r := range recs {
			fmt.Fprintf(&b, "  - %s\n", r.Message)
		}
	}
	return b.String()
}

func (a *App) renderTransactions() string {
	txs := a.ledger.Transactions()
	if len(txs) == 0 {
		return labelStyle.Render("No transactions yet. Press 'a' to add one.")
	}
	sym := a.cfg.UI.CurrencySymbol
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %-26s %-14s %-9s %11s", "Date", "Description", "Category", "Account", "Amount")))
	b.WriteString("\n")
	for i, tx := range txs {
		cursor := "  "
		if i == a.txCursor {
			cursor = cursorStyle.Render("> ")
		}
		amount := tx.Amount.Format(sym)
		if tx.Type == ledger.TypeIncome {
			amount = incomeStyle.Render(amount)
		} else {
			amount = expenseStyle.Render(amount)
		}
		fmt.Fprintf(&b, "%s%-12s %-26s %-14s %-9s %11s\n",
			cursor, tx.Date.Format("2006-01-02"), truncate(tx.Description, 26), tx.Category, tx.Account, amount)
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("a add  x delete  up/down navigate"))
	return b.String()
}

func (a *App) renderGoals() string {
	goals := a.ledger.Goals()
	if len(goals) == 0 {
		return labelStyle.Render("No goals yet. Press 'a' to add one.")
	}
	sym := a.cfg.UI.CurrencySymbol
	var b strings.Builder
	for i, g := range goals {
		cursor := "  "
		if i == a.glCursor {
			cursor = cursorStyle.Render("> ")
		}
		progress := 0.0
		if g.Target > 0 {
			progress = float64(g.Current) / float64(g.Target) * 100
		}
		if progress > 100 {
			progress = 100
		}
		fmt.Fprintf(&b, "%s%s  %s / %s by %s\n", cursor, headerStyle.Render(g.Name),
			g.Current.Format(sym), g.Target.Format(sym), g.Deadline.Format("2006-01-02"))
		fmt.Fprintf(&b, "   %s %.0f%%\n", gauge(progress, 24), progress)
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("a add  x delete  up/down navigate"))
	return b.String()
}

func (a *App) renderSettings() string {
	p := a.ledger.Profile()
	sym := a.cfg.UI.CurrencySymbol
	var b strings.Builder
	b.WriteString(headerStyle.Render("Profile"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Name            "), p.Name)
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Chequing balance"), p.ChequingBalance)
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Savings balance "), p.SavingsBalance)
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Monthly income  "), p.MonthlyIncome)
	fmt.Fprintf(&b, "  %s %s\n\n", labelStyle.Render("Monthly expenses"), p.MonthlyExpenses)

	b.WriteString(headerStyle.Render("This month by category"))
	b.WriteString("\n")
	for _, cs := range a.ledger.MonthlyCategorySpending() {
		line := fmt.Sprintf("  %-14s %11s", cs.Category, cs.Spent.Format(sym))
		if cs.HasLimit {
			line += fmt.Sprintf(" of %s", cs.Limit.Format(sym))
			if cs.Spent > cs.Limit {
				line += " " + warnStyle.Render("over budget")
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("b set budget"))
	return b.String()
}

func (a *App) renderForm() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(a.form.title))
	b.WriteString("\n\n")
	for i, f := range a.form.fields {
		cursor := "  "
		if i == a.form.focus {
			cursor = cursorStyle.Render("> ")
		}
		value := f.value
		if value == "" {
			value = labelStyle.Render(f.placeholder)
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, labelStyle.Render(fmt.Sprintf("%-18s", f.label)), value)
		if f.err != "" {
			fmt.Fprintf(&b, "  %s\n", errorStyle.Render(f.err))
		}
	}
	b.WriteString("\n")
	help := "enter confirm  tab next field  esc cancel"
	if a.modal == modalOnboarding {
		help = "enter confirm  tab next field"
	}
	b.WriteString(labelStyle.Render(help))
	return boxStyle.Render(b.String())
}

func (a *App) renderStatusLine() string {
	if a.status == "" {
		return statusStyle.Render("q quit")
	}
	if a.isErr {
		return errorStyle.Render(a.status)
	}
	return statusStyle.Render(a.status)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
