package ledger

import (
	"context"
	"testing"
	"time"
)

func addDated(t *testing.T, l *Ledger, desc, amount, typ, category, date string) {
	t.Helper()
	_, err := l.AddTransaction(context.Background(), AddTransactionInput{
		Description: desc, Amount: amount, Type: typ, Category: category, Account: "chequing", Date: date,
	})
	if err != nil {
		t.Fatalf("add %q: %v", desc, err)
	}
}

func TestCashFlowSeriesBucketsSixMonths(t *testing.T) {
	l := New(WithClock(fixedClock(t, "2026-08-30")))

	addDated(t, l, "Pay Aug", "3000", "income", "Other", "2026-08-01")
	addDated(t, l, "Rent Aug", "1200", "expense", "Rent", "2026-08-02")
	addDated(t, l, "Pay Mar", "2800", "income", "Other", "2026-03-15")
	addDated(t, l, "Old", "999", "income", "Other", "2026-02-28")     // outside window
	addDated(t, l, "Future", "50", "expense", "Food", "2026-09-01")   // outside window
	addDated(t, l, "Mid", "100", "expense", "Food", "2026-05-20")

	series := l.ComputeCashFlowSeries()
	if len(series) != 6 {
		t.Fatalf("buckets = %d, want 6", len(series))
	}
	if series[0].Month != time.March || series[0].Year != 2026 {
		t.Fatalf("first bucket = %v %d, want March 2026", series[0].Month, series[0].Year)
	}
	if series[5].Month != time.August {
		t.Fatalf("last bucket = %v, want August", series[5].Month)
	}

	if series[0].Income != 280000 || series[0].Expenses != 0 {
		t.Fatalf("March = %+v, want income 280000", series[0])
	}
	if series[2].Expenses != 10000 {
		t.Fatalf("May expenses = %d, want 10000", series[2].Expenses)
	}
	if series[5].Income != 300000 || series[5].Expenses != 120000 {
		t.Fatalf("August = %+v", series[5])
	}
	if series[5].Savings != 180000 {
		t.Fatalf("August savings = %d, want income-expenses", series[5].Savings)
	}

	var total Cents
	for _, b := range series {
		total += b.Income + b.Expenses
	}
	if total != 280000+10000+300000+120000 {
		t.Fatalf("out-of-window transactions leaked into buckets: total %d", total)
	}
}

func TestCashFlowSeriesExcludesOpeningEntries(t *testing.T) {
	l := onboarded(t, &capturePersister{})

	series := l.ComputeCashFlowSeries()
	current := series[5]
	if current.Income != 300000 {
		t.Fatalf("current month income = %d, want 300000 (opening balances excluded)", current.Income)
	}
	if current.Expenses != 200000 {
		t.Fatalf("current month expenses = %d, want 200000", current.Expenses)
	}
}

func TestMonthlyCategorySpending(t *testing.T) {
	l := New(WithClock(fixedClock(t, "2026-08-30")))
	ctx := context.Background()

	addDated(t, l, "Groceries", "80", "expense", "Food", "2026-08-03")
	addDated(t, l, "Takeaway", "20", "expense", "Food", "2026-08-10")
	addDated(t, l, "Train", "40", "expense", "Transport", "2026-08-05")
	addDated(t, l, "July groceries", "70", "expense", "Food", "2026-07-03") // previous month
	addDated(t, l, "Pay", "3000", "income", "Other", "2026-08-01")          // income ignored

	if err := l.SetBudget(ctx, "Food", "150"); err != nil {
		t.Fatal(err)
	}
	if err := l.SetBudget(ctx, "Rent", "1200"); err != nil {
		t.Fatal(err)
	}

	rows := l.MonthlyCategorySpending()
	byCat := map[string]CategorySpend{}
	for _, r := range rows {
		byCat[r.Category] = r
	}
	food := byCat["Food"]
	if food.Spent != 10000 || !food.HasLimit || food.Limit != 15000 {
		t.Fatalf("Food = %+v", food)
	}
	if byCat["Transport"].Spent != 4000 {
		t.Fatalf("Transport = %+v", byCat["Transport"])
	}
	rent := byCat["Rent"]
	if rent.Spent != 0 || !rent.HasLimit {
		t.Fatalf("Rent = %+v, want zero spend with limit", rent)
	}
	if _, ok := byCat["Other"]; ok {
		t.Fatal("income-only category should not appear")
	}
}
