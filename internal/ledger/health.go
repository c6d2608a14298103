package ledger

// The health score is a composite of four rates, weighted 30/20/25/25 and
// clamped to [0,100]. Rates above 1 (expenses exceeding income, say) push the
// raw value far outside the range, so the clamp is load-bearing.

type healthInputs struct {
	Income      Cents
	Expenses    Cents
	Chequing    Cents
	Savings     Cents
	Investments []Investment
	Cryptos     []Cryptocurrency
}

func computeHealthScore(in healthInputs) float64 {
	if in.Income == 0 {
		return 0
	}
	var holdings Cents
	for _, inv := range in.Investments {
		holdings += inv.Value()
	}
	for _, c := range in.Cryptos {
		holdings += c.Value()
	}
	debt := Cents(0)
	if in.Chequing < 0 {
		debt = -in.Chequing
	}

	income := float64(in.Income)
	savingsRate := float64(in.Savings) / income
	investmentRate := float64(holdings) / income
	debtRatio := float64(debt) / income
	expenseRatio := float64(in.Expenses) / income

	raw := savingsRate*30 + investmentRate*20 + (1-debtRatio)*25 + (1-expenseRatio)*25
	return clamp(raw*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Breakdown is the four-way net-worth split used by the composition chart.
type Breakdown struct {
	Chequing Cents // floored at zero; a negative balance shows up as Debt
	Savings  Cents
	Debt     Cents
	NetWorth Cents
}

// ComputeBreakdown derives the visualization split from current balances.
func (l *Ledger) ComputeBreakdown() Breakdown {
	b := Breakdown{Chequing: l.chequing, Savings: l.savings}
	if b.Chequing < 0 {
		b.Debt = -b.Chequing
		b.Chequing = 0
	}
	b.NetWorth = b.Chequing + b.Savings - b.Debt
	return b
}
