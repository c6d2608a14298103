package ledger

import "fmt"

// Recommendation is one advisory message from the budget rules.
type Recommendation struct {
	Kind    string
	Message string
}

const (
	AdviceSavingsRate   = "savings_rate"
	AdviceEmergencyFund = "emergency_fund"
	AdviceExpenseGap    = "expense_gap"
)

// GenerateBudgetRecommendations produces the advisory list in fixed order:
// the savings-rate message (always one of its two variants), then the
// emergency-fund alert, then the income-expense gap warning, each appended
// only while its condition holds.
func (l *Ledger) GenerateBudgetRecommendations() []Recommendation {
	var out []Recommendation

	savingsRate := 0.0
	if l.income > 0 {
		savingsRate = float64(l.savings) / float64(l.income) * 100
	}
	if savingsRate < 20 {
		out = append(out, Recommendation{
			Kind:    AdviceSavingsRate,
			Message: fmt.Sprintf("Your savings rate is %.1f%%. Aim for at least 20%% of income to build a cushion.", savingsRate),
		})
	} else {
		out = append(out, Recommendation{
			Kind:    AdviceSavingsRate,
			Message: fmt.Sprintf("Savings superstar: you are putting away %.1f%% of income. Keep it up.", savingsRate),
		})
	}

	if target := l.expenses * 3; l.savings < target {
		out = append(out, Recommendation{
			Kind: AdviceEmergencyFund,
			Message: fmt.Sprintf("Emergency fund alert: savings of %s cover less than 3 months of expenses (%s needed).",
				l.savings.Format("$"), target.Format("$")),
		})
	}

	if l.income > 0 && float64(l.expenses)/float64(l.income) > 0.7 {
		pct := float64(l.expenses) / float64(l.income) * 100
		out = append(out, Recommendation{
			Kind:    AdviceExpenseGap,
			Message: fmt.Sprintf("Expenses are %.1f%% of income. Narrow the gap to free up cash flow.", pct),
		})
	}
	return out
}
