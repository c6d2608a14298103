package ledger

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Account identifies which balance a transaction moves.
type Account string

const (
	AccountChequing Account = "chequing"
	AccountSavings  Account = "savings"
)

// ParseAccount normalizes an account name.
func ParseAccount(s string) (Account, error) {
	switch Account(strings.ToLower(strings.TrimSpace(s))) {
	case AccountChequing:
		return AccountChequing, nil
	case AccountSavings:
		return AccountSavings, nil
	}
	return "", fmt.Errorf("unknown account %q", s)
}

// Type is the direction of a transaction.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// ParseType normalizes a transaction type.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeIncome:
		return TypeIncome, nil
	case TypeExpense:
		return TypeExpense, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// Date is a calendar date with no time component, serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Transaction is one financial event. Amount carries the sign: it is
// positive for income and negative for expenses, always agreeing with Type.
type Transaction struct {
	ID          string  `json:"id"`
	Date        Date    `json:"date"`
	Description string  `json:"description"`
	Amount      Cents   `json:"amount"`
	Type        Type    `json:"type"`
	Category    string  `json:"category"`
	Account     Account `json:"account"`
}

// opening reports whether this is a synthetic opening-balance entry created
// by onboarding. Opening entries count toward account balances but not
// toward the income/expense aggregates.
func (t Transaction) opening() bool { return t.Category == CategoryOpening }

// Goal is a savings target. Current moves only with income events: it grows
// when an income transaction is applied and shrinks when one is deleted,
// floored at zero. Expenses never touch it.
type Goal struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Target   Cents  `json:"target"`
	Current  Cents  `json:"current"`
	Deadline Date   `json:"deadline"`
}

// BudgetCategory is a monthly spending limit for one category.
type BudgetCategory struct {
	Category string `json:"category"`
	Limit    Cents  `json:"limit"`
}

// Investment is a valuation input for the health score.
type Investment struct {
	Name         string  `json:"name"`
	Kind         string  `json:"type"`
	Balance      Cents   `json:"balance"`
	InterestRate float64 `json:"interestRate,omitempty"`
	Maturity     Date    `json:"maturity,omitempty"`
}

// Value returns the investment's contribution to net holdings.
func (i Investment) Value() Cents { return i.Balance }

// Cryptocurrency is a holding valued at Amount * CurrentPrice.
type Cryptocurrency struct {
	Symbol        string  `json:"symbol"`
	Amount        float64 `json:"amount"`
	PurchasePrice Cents   `json:"purchasePrice"`
	CurrentPrice  Cents   `json:"currentPrice"`
}

// Value returns the holding's current valuation in cents.
func (c Cryptocurrency) Value() Cents {
	return Cents(c.Amount * float64(c.CurrentPrice))
}

// Profile holds the onboarding answers. The numeric fields are kept as the
// raw strings the user typed so settings forms can echo them back; the
// parsed values live in the seeded transactions.
type Profile struct {
	Name            string `json:"name"`
	ChequingBalance string `json:"chequingBalance"`
	SavingsBalance  string `json:"savingsBalance"`
	MonthlyIncome   string `json:"monthlyIncome"`
	MonthlyExpenses string `json:"monthlyExpenses"`
}
