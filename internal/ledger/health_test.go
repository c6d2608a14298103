package ledger

import (
	"context"
	"testing"
)

func TestHealthScoreZeroIncome(t *testing.T) {
	if got := computeHealthScore(healthInputs{Savings: 100000}); got != 0 {
		t.Fatalf("score = %v, want 0 for zero income", got)
	}
}

func TestHealthScoreDeterministicAndClamped(t *testing.T) {
	cases := []struct {
		name string
		in   healthInputs
		want float64
	}{
		{
			// expenses dwarf income: raw goes deeply negative, clamp to 0.
			name: "expenses exceed income",
			in:   healthInputs{Income: 100000, Expenses: 500000},
			want: 0,
		},
		{
			// healthy ratios overflow upward, clamp to 100.
			name: "healthy ratios",
			in:   healthInputs{Income: 300000, Expenses: 150000, Savings: 100000},
			want: 100,
		},
		{
			name: "debt and spending cancel the rest",
			in:   healthInputs{Income: 100000, Expenses: 100000, Chequing: -100000},
			want: 0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := computeHealthScore(tc.in)
			if got != tc.want {
				t.Fatalf("score = %v, want %v", got, tc.want)
			}
			if again := computeHealthScore(tc.in); again != got {
				t.Fatalf("score not deterministic: %v then %v", got, again)
			}
			if got < 0 || got > 100 {
				t.Fatalf("score %v outside [0,100]", got)
			}
		})
	}
}

func TestHealthScoreCountsHoldings(t *testing.T) {
	base := healthInputs{Income: 100000, Expenses: 99000, Chequing: -200000}
	without := computeHealthScore(base)

	base.Investments = []Investment{{Name: "Index fund", Balance: 50000}}
	base.Cryptos = []Cryptocurrency{{Symbol: "BTC", Amount: 0.5, CurrentPrice: 100000}}
	with := computeHealthScore(base)
	if with <= without {
		t.Fatalf("holdings should raise the score: %v -> %v", without, with)
	}
}

func TestComputeBreakdown(t *testing.T) {
	l := New(WithClock(fixedClock(t, "2026-08-30")))
	ctx := context.Background()
	seed := func(desc, amount, typ, account string) {
		t.Helper()
		if _, err := l.AddTransaction(ctx, AddTransactionInput{Description: desc, Amount: amount, Type: typ, Category: "Other", Account: account}); err != nil {
			t.Fatal(err)
		}
	}
	seed("pay", "100", "income", "chequing")
	seed("rent", "350", "expense", "chequing")
	seed("stash", "400", "income", "savings")

	b := l.ComputeBreakdown()
	if b.Chequing != 0 {
		t.Fatalf("chequing = %d, want floored 0", b.Chequing)
	}
	if b.Debt != 25000 {
		t.Fatalf("debt = %d, want 25000", b.Debt)
	}
	if b.Savings != 40000 {
		t.Fatalf("savings = %d, want 40000", b.Savings)
	}
	if b.NetWorth != 15000 {
		t.Fatalf("net worth = %d, want 15000", b.NetWorth)
	}
}
