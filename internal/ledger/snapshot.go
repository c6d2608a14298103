package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Snapshot is the full state tuple in its wire shape: one JSON document,
// amounts as signed decimal numbers, dates as YYYY-MM-DD. It is both the
// export file format and what the persistence adapters store.
type Snapshot struct {
	ChequingBalance      Cents            `json:"chequingBalance"`
	SavingsBalance       Cents            `json:"savingsBalance"`
	Income               Cents            `json:"income"`
	Expenses             Cents            `json:"expenses"`
	Transactions         []Transaction    `json:"transactions"`
	Goals                []Goal           `json:"goals"`
	BudgetCategories     []BudgetCategory `json:"budgetCategories"`
	Investments          []Investment     `json:"investments"`
	Cryptocurrencies     []Cryptocurrency `json:"cryptocurrencies"`
	UserData             Profile          `json:"userData"`
	FinancialHealthScore float64          `json:"financialHealthScore"`
}

// UnmarshalJSON accepts legacy numeric transaction ids alongside strings.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type alias Transaction
	aux := struct {
		ID json.RawMessage `json:"id"`
		*alias
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.ID = strings.Trim(string(aux.ID), `"`)
	if t.ID == "null" {
		t.ID = ""
	}
	return nil
}

// normalize fills the defaults the import contract promises: absent arrays
// become empty, absent strings become "" (or "0" for the numeric echoes),
// and transactions get ids and a type agreeing with their sign.
func (s *Snapshot) normalize() {
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.Goals == nil {
		s.Goals = []Goal{}
	}
	if s.BudgetCategories == nil {
		s.BudgetCategories = []BudgetCategory{}
	}
	if s.Investments == nil {
		s.Investments = []Investment{}
	}
	if s.Cryptocurrencies == nil {
		s.Cryptocurrencies = []Cryptocurrency{}
	}
	zeroDefault := func(v *string) {
		if strings.TrimSpace(*v) == "" {
			*v = "0"
		}
	}
	zeroDefault(&s.UserData.ChequingBalance)
	zeroDefault(&s.UserData.SavingsBalance)
	zeroDefault(&s.UserData.MonthlyIncome)
	zeroDefault(&s.UserData.MonthlyExpenses)

	for i := range s.Transactions {
		t := &s.Transactions[i]
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if t.Type == "" {
			if t.Amount < 0 {
				t.Type = TypeExpense
			} else {
				t.Type = TypeIncome
			}
		}
		if t.Account == "" {
			t.Account = AccountChequing
		}
	}
	for i := range s.Goals {
		if s.Goals[i].ID == "" {
			s.Goals[i].ID = uuid.NewString()
		}
	}
}

// Export serializes the full state tuple. The scalar balance and total
// fields are projections of the transaction list, included for wire compat.
func (l *Ledger) Export() *Snapshot {
	return &Snapshot{
		ChequingBalance:      l.chequing,
		SavingsBalance:       l.savings,
		Income:               l.income,
		Expenses:             l.expenses,
		Transactions:         l.Transactions(),
		Goals:                l.Goals(),
		BudgetCategories:     l.Budgets(),
		Investments:          l.Investments(),
		Cryptocurrencies:     l.Cryptocurrencies(),
		UserData:             l.profile,
		FinancialHealthScore: l.healthScore,
	}
}

// ExportJSON renders the snapshot as an indented JSON document.
func (l *Ledger) ExportJSON() ([]byte, error) {
	data, err := json.MarshalIndent(l.Export(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return data, nil
}

// ImportSnapshot replaces the entire state tuple with the snapshot's
// contents. Balances, totals, and the health score are re-derived from the
// imported transactions rather than trusted from the blob's scalars.
func (l *Ledger) ImportSnapshot(ctx context.Context, snap *Snapshot) {
	snap.normalize()
	l.transactions = snap.Transactions
	l.goals = snap.Goals
	l.budgets = snap.BudgetCategories
	l.investments = snap.Investments
	l.cryptos = snap.Cryptocurrencies
	l.profile = snap.UserData
	l.recalc()
	l.commit(ctx)
}

// ImportJSON parses and applies an exported document. A structurally invalid
// blob leaves the existing state untouched.
func (l *Ledger) ImportJSON(ctx context.Context, data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	l.ImportSnapshot(ctx, &snap)
	return nil
}
