package ledger

import "time"

// CashFlowBucket is one month of the trailing cash-flow series.
type CashFlowBucket struct {
	Month    time.Month
	Year     int
	Income   Cents
	Expenses Cents
	Savings  Cents // Income - Expenses
}

// Label returns a short month label, e.g. "Jan".
func (b CashFlowBucket) Label() string { return b.Month.String()[:3] }

const cashFlowMonths = 6

// ComputeCashFlowSeries buckets transactions into the six calendar months
// ending at the current one, oldest first. Entries outside the window are
// ignored, and opening-balance entries are excluded like everywhere else
// cash flow is aggregated.
func (l *Ledger) ComputeCashFlowSeries() []CashFlowBucket {
	now := l.now()
	buckets := make([]CashFlowBucket, cashFlowMonths)
	for i := 0; i < cashFlowMonths; i++ {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, i-cashFlowMonths+1, 0)
		buckets[i] = CashFlowBucket{Month: m.Month(), Year: m.Year()}
	}
	for _, t := range l.transactions {
		if t.opening() || t.Date.IsZero() {
			continue
		}
		offset := (now.Year()-t.Date.Year())*12 + int(now.Month()) - int(t.Date.Month())
		if offset < 0 || offset >= cashFlowMonths {
			continue
		}
		b := &buckets[cashFlowMonths-1-offset]
		if t.Amount > 0 {
			b.Income += t.Amount
		} else {
			b.Expenses += -t.Amount
		}
	}
	for i := range buckets {
		buckets[i].Savings = buckets[i].Income - buckets[i].Expenses
	}
	return buckets
}

// CategorySpend is the current-month expense total for one category,
// paired with its budget limit when one is set.
type CategorySpend struct {
	Category string
	Spent    Cents
	Limit    Cents
	HasLimit bool
}

// MonthlyCategorySpending sums this month's expenses per category and joins
// in the configured budget limits, in the standard category order with any
// extra categories appended in first-seen order.
func (l *Ledger) MonthlyCategorySpending() []CategorySpend {
	now := l.now()
	spent := map[string]Cents{}
	var extras []string
	for _, t := range l.transactions {
		if t.Amount >= 0 || t.opening() {
			continue
		}
		if t.Date.Year() != now.Year() || t.Date.Month() != now.Month() {
			continue
		}
		if _, seen := spent[t.Category]; !seen && !standardCategory(t.Category) {
			extras = append(extras, t.Category)
		}
		spent[t.Category] += -t.Amount
	}

	limits := map[string]Cents{}
	for _, b := range l.budgets {
		limits[b.Category] = b.Limit
	}

	var out []CategorySpend
	add := func(cat string) {
		s, spentOK := spent[cat]
		limit, limitOK := limits[cat]
		if !spentOK && !limitOK {
			return
		}
		out = append(out, CategorySpend{Category: cat, Spent: s, Limit: limit, HasLimit: limitOK})
	}
	for _, cat := range Categories {
		add(cat)
	}
	for _, cat := range extras {
		add(cat)
	}
	return out
}

func standardCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}
