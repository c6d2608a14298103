package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cwren/pennyledger/internal/database"
	"github.com/cwren/pennyledger/internal/ledger"
)

// SQLite persists snapshots in a sqlite database. Every save replaces the
// whole snapshot inside one transaction, keeping the same overwrite-the-
// document semantics as the JSON file store.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an open, migrated database handle.
func NewSQLite(db *sql.DB) *SQLite { return &SQLite{db: db} }

func (s *SQLite) Save(ctx context.Context, snap *ledger.Snapshot) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, table := range []string{"transactions", "goals", "budget_categories", "investments", "cryptocurrencies", "profile"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		for i, t := range snap.Transactions {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO transactions(id, date_iso, description, amount_cents, type, category, account, position)
				VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
				t.ID, t.Date.String(), t.Description, int64(t.Amount), string(t.Type), t.Category, string(t.Account), i)
			if err != nil {
				return fmt.Errorf("insert transaction %s: %w", t.ID, err)
			}
		}
		for _, g := range snap.Goals {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO goals(id, name, target_cents, current_cents, deadline_iso)
				VALUES(?, ?, ?, ?, ?)`,
				g.ID, g.Name, int64(g.Target), int64(g.Current), g.Deadline.String())
			if err != nil {
				return fmt.Errorf("insert goal %s: %w", g.ID, err)
			}
		}
		for _, b := range snap.BudgetCategories {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO budget_categories(category, limit_cents) VALUES(?, ?)`,
				b.Category, int64(b.Limit)); err != nil {
				return fmt.Errorf("insert budget %s: %w", b.Category, err)
			}
		}
		for _, inv := range snap.Investments {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO investments(name, kind, balance_cents, interest_rate, maturity_iso)
				VALUES(?, ?, ?, ?, ?)`,
				inv.Name, inv.Kind, int64(inv.Balance), inv.InterestRate, inv.Maturity.String())
			if err != nil {
				return fmt.Errorf("insert investment %s: %w", inv.Name, err)
			}
		}
		for _, c := range snap.Cryptocurrencies {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO cryptocurrencies(symbol, amount, purchase_price_cents, current_price_cents)
				VALUES(?, ?, ?, ?)`,
				c.Symbol, c.Amount, int64(c.PurchasePrice), int64(c.CurrentPrice))
			if err != nil {
				return fmt.Errorf("insert crypto %s: %w", c.Symbol, err)
			}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO profile(id, name, chequing_raw, savings_raw, monthly_income_raw, monthly_expenses_raw)
			VALUES(1, ?, ?, ?, ?, ?)`,
			snap.UserData.Name, snap.UserData.ChequingBalance, snap.UserData.SavingsBalance,
			snap.UserData.MonthlyIncome, snap.UserData.MonthlyExpenses)
		if err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}
		return nil
	})
}

func (s *SQLite) Load(ctx context.Context) (*ledger.Snapshot, error) {
	snap := &ledger.Snapshot{}

	var haveProfile bool
	err := s.db.QueryRowContext(ctx, `
		SELECT name, chequing_raw, savings_raw, monthly_income_raw, monthly_expenses_raw
		FROM profile WHERE id = 1`).Scan(
		&snap.UserData.Name, &snap.UserData.ChequingBalance, &snap.UserData.SavingsBalance,
		&snap.UserData.MonthlyIncome, &snap.UserData.MonthlyExpenses)
	switch {
	case err == nil:
		haveProfile = true
	case errors.Is(err, sql.ErrNoRows):
	default:
		return nil, fmt.Errorf("load profile: %w", err)
	}

	if err := s.loadTransactions(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.loadRest(ctx, snap); err != nil {
		return nil, err
	}
	if !haveProfile && len(snap.Transactions) == 0 {
		return nil, ErrNotFound
	}
	return snap, nil
}

func (s *SQLite) loadTransactions(ctx context.Context, snap *ledger.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date_iso, description, amount_cents, type, category, account
		FROM transactions ORDER BY position ASC`)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t ledger.Transaction
		var dateISO, typ, account string
		var cents int64
		if err := rows.Scan(&t.ID, &dateISO, &t.Description, &cents, &typ, &t.Category, &account); err != nil {
			return fmt.Errorf("scan transaction: %w", err)
		}
		t.Amount = ledger.Cents(cents)
		t.Type = ledger.Type(typ)
		t.Account = ledger.Account(account)
		if t.Date, err = parseDate(dateISO); err != nil {
			return err
		}
		snap.Transactions = append(snap.Transactions, t)
	}
	return rows.Err()
}

func (s *SQLite) loadRest(ctx context.Context, snap *ledger.Snapshot) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, target_cents, current_cents, deadline_iso FROM goals`)
	if err != nil {
		return fmt.Errorf("load goals: %w", err)
	}
	for rows.Next() {
		var g ledger.Goal
		var target, current int64
		var deadline string
		if err := rows.Scan(&g.ID, &g.Name, &target, &current, &deadline); err != nil {
			rows.Close()
			return fmt.Errorf("scan goal: %w", err)
		}
		g.Target, g.Current = ledger.Cents(target), ledger.Cents(current)
		if g.Deadline, err = parseDate(deadline); err != nil {
			rows.Close()
			return err
		}
		snap.Goals = append(snap.Goals, g)
	}
	if err := closeRows(rows); err != nil {
		return err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT category, limit_cents FROM budget_categories`)
	if err != nil {
		return fmt.Errorf("load budgets: %w", err)
	}
	for rows.Next() {
		var b ledger.BudgetCategory
		var limit int64
		if err := rows.Scan(&b.Category, &limit); err != nil {
			rows.Close()
			return fmt.Errorf("scan budget: %w", err)
		}
		b.Limit = ledger.Cents(limit)
		snap.BudgetCategories = append(snap.BudgetCategories, b)
	}
	if err := closeRows(rows); err != nil {
		return err
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT name, kind, balance_cents, interest_rate, maturity_iso FROM investments`)
	if err != nil {
		return fmt.Errorf("load investments: %w", err)
	}
	for rows.Next() {
		var inv ledger.Investment
		var balance int64
		var maturity string
		if err := rows.Scan(&inv.Name, &inv.Kind, &balance, &inv.InterestRate, &maturity); err != nil {
			rows.Close()
			return fmt.Errorf("scan investment: %w", err)
		}
		inv.Balance = ledger.Cents(balance)
		if inv.Maturity, err = parseDate(maturity); err != nil {
			rows.Close()
			return err
		}
		snap.Investments = append(snap.Investments, inv)
	}
	if err := closeRows(rows); err != nil {
		return err
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT symbol, amount, purchase_price_cents, current_price_cents FROM cryptocurrencies`)
	if err != nil {
		return fmt.Errorf("load cryptos: %w", err)
	}
	for rows.Next() {
		var c ledger.Cryptocurrency
		var purchase, current int64
		if err := rows.Scan(&c.Symbol, &c.Amount, &purchase, &current); err != nil {
			rows.Close()
			return fmt.Errorf("scan crypto: %w", err)
		}
		c.PurchasePrice, c.CurrentPrice = ledger.Cents(purchase), ledger.Cents(current)
		snap.Cryptocurrencies = append(snap.Cryptocurrencies, c)
	}
	return closeRows(rows)
}

func parseDate(iso string) (ledger.Date, error) {
	if iso == "" {
		return ledger.Date{}, nil
	}
	d, err := ledger.ParseDate(iso)
	if err != nil {
		return ledger.Date{}, fmt.Errorf("stored date: %w", err)
	}
	return d, nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}
