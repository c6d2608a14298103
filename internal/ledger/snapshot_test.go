package ledger

import (
	"context"
	"reflect"
	"testing"
)

func TestExportImportRoundTrip(t *testing.T) {
	l := onboarded(t, &capturePersister{})
	ctx := context.Background()
	if _, err := l.AddTransaction(ctx, AddTransactionInput{Description: "Coffee", Amount: "5", Type: "expense", Category: "Food", Account: "chequing"}); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddGoal(ctx, "Holiday", "5000", "2027-01-01"); err != nil {
		t.Fatal(err)
	}
	if err := l.SetBudget(ctx, "Food", "300"); err != nil {
		t.Fatal(err)
	}
	if err := l.SetInvestment(ctx, Investment{Name: "Index fund", Kind: "etf", Balance: 250000}); err != nil {
		t.Fatal(err)
	}
	if err := l.SetCryptocurrency(ctx, Cryptocurrency{Symbol: "btc", Amount: 0.25, PurchasePrice: 3000000, CurrentPrice: 4000000}); err != nil {
		t.Fatal(err)
	}

	data, err := l.ExportJSON()
	if err != nil {
		t.Fatal(err)
	}

	restored := New()
	if err := restored.ImportJSON(context.Background(), data); err != nil {
		t.Fatalf("import: %v", err)
	}
	if !reflect.DeepEqual(l.Export(), restored.Export()) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", l.Export(), restored.Export())
	}
	if restored.HealthScore() != l.HealthScore() {
		t.Fatal("health score must survive the round trip")
	}
}

func TestImportMalformedLeavesStateUntouched(t *testing.T) {
	l := onboarded(t, &capturePersister{})
	before := l.Export()

	for name, blob := range map[string]string{
		"not json":    "{nope",
		"wrong shape": `{"transactions": "many"}`,
	} {
		t.Run(name, func(t *testing.T) {
			if err := l.ImportJSON(context.Background(), []byte(blob)); err == nil {
				t.Fatal("want import error")
			}
			if !reflect.DeepEqual(before, l.Export()) {
				t.Fatal("failed import must not change state")
			}
		})
	}
}

func TestImportDefaultsMissingFields(t *testing.T) {
	l := New()
	blob := `{"transactions":[{"id":3,"date":"2026-01-05","description":"legacy","amount":-12.5}]}`
	if err := l.ImportJSON(context.Background(), []byte(blob)); err != nil {
		t.Fatal(err)
	}

	txs := l.Transactions()
	if len(txs) != 1 {
		t.Fatalf("transactions = %d, want 1", len(txs))
	}
	tx := txs[0]
	if tx.ID != "3" {
		t.Fatalf("legacy numeric id = %q, want \"3\"", tx.ID)
	}
	if tx.Type != TypeExpense {
		t.Fatalf("type = %s, want derived expense", tx.Type)
	}
	if tx.Account != AccountChequing {
		t.Fatalf("account = %s, want default chequing", tx.Account)
	}
	if tx.Amount != -1250 {
		t.Fatalf("amount = %d, want -1250", tx.Amount)
	}

	p := l.Profile()
	if p.Name != "" || p.ChequingBalance != "0" || p.MonthlyIncome != "0" {
		t.Fatalf("profile defaults = %+v", p)
	}
	if l.Goals() == nil || l.Budgets() == nil {
		t.Fatal("absent arrays must default to empty")
	}
	if l.ChequingBalance() != -1250 {
		t.Fatalf("balance rederived = %d, want -1250", l.ChequingBalance())
	}
	if l.Expenses() != 1250 {
		t.Fatalf("expenses rederived = %d, want 1250", l.Expenses())
	}
}
