package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwren/pennyledger/internal/ledger"
)

// formField is one labelled text input in a modal form.
type formField struct {
	key         string // matches the ledger FieldErrors key
	label       string
	value       string
	placeholder string
	err         string
}

// form is a minimal sequential-focus text form.
type form struct {
	title  string
	fields []formField
	focus  int
}

func (f *form) field(key string) *formField {
	for i := range f.fields {
		if f.fields[i].key == key {
			return &f.fields[i]
		}
	}
	return nil
}

func (f *form) value(key string) string {
	if fld := f.field(key); fld != nil {
		return strings.TrimSpace(fld.value)
	}
	return ""
}

func (f *form) next() { f.focus = (f.focus + 1) % len(f.fields) }
func (f *form) prev() { f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields) }

func (f *form) clearErrors() {
	for i := range f.fields {
		f.fields[i].err = ""
	}
}

// applyErrors marks fields named by a validation failure.
func (f *form) applyErrors(errs ledger.FieldErrors) {
	f.clearErrors()
	for key, msg := range errs {
		if fld := f.field(key); fld != nil {
			fld.err = msg
		}
	}
}

// handleKey edits the focused field. It returns false for keys the form does
// not consume (confirm/cancel/navigation), which the caller routes.
func (f *form) handleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace:
		fld := &f.fields[f.focus]
		if len(fld.value) > 0 {
			fld.value = fld.value[:len(fld.value)-1]
		}
		return true
	case tea.KeyTab, tea.KeyDown:
		f.next()
		return true
	case tea.KeyShiftTab, tea.KeyUp:
		f.prev()
		return true
	case tea.KeyRunes, tea.KeySpace:
		fld := &f.fields[f.focus]
		for _, r := range msg.Runes {
			if r >= 32 && r < 127 {
				fld.value += string(r)
			}
		}
		if msg.Type == tea.KeySpace {
			fld.value += " "
		}
		return true
	}
	return false
}

func newOnboardingForm() form {
	return form{
		title: "Welcome to Pennyledger",
		fields: []formField{
			{key: "name", label: "Name", placeholder: "2-30 letters"},
			{key: "chequingBalance", label: "Chequing balance", placeholder: "0.00"},
			{key: "savingsBalance", label: "Savings balance", placeholder: "0.00"},
			{key: "monthlyIncome", label: "Monthly income", placeholder: "0.00"},
			{key: "monthlyExpenses", label: "Monthly expenses", placeholder: "0.00"},
		},
	}
}

func (f *form) onboardingInput() ledger.OnboardingInput {
	return ledger.OnboardingInput{
		Name:            f.value("name"),
		ChequingBalance: f.value("chequingBalance"),
		SavingsBalance:  f.value("savingsBalance"),
		MonthlyIncome:   f.value("monthlyIncome"),
		MonthlyExpenses: f.value("monthlyExpenses"),
	}
}

func newTransactionForm() form {
	return form{
		title: "Add transaction",
		fields: []formField{
			{key: "description", label: "Description"},
			{key: "amount", label: "Amount", placeholder: "0.00"},
			{key: "type", label: "Type", placeholder: "income or expense"},
			{key: "category", label: "Category", placeholder: "Food, Rent, ..."},
			{key: "account", label: "Account", placeholder: "chequing or savings"},
			{key: "date", label: "Date", placeholder: "YYYY-MM-DD (today)"},
		},
	}
}

func (f *form) transactionInput() ledger.AddTransactionInput {
	return ledger.AddTransactionInput{
		Description: f.value("description"),
		Amount:      f.value("amount"),
		Type:        f.value("type"),
		Category:    f.value("category"),
		Account:     f.value("account"),
		Date:        f.value("date"),
	}
}

func newGoalForm() form {
	return form{
		title: "Add goal",
		fields: []formField{
			{key: "name", label: "Name"},
			{key: "target", label: "Target amount", placeholder: "0.00"},
			{key: "deadline", label: "Deadline", placeholder: "YYYY-MM-DD (optional)"},
		},
	}
}

func newBudgetForm() form {
	return form{
		title: "Set category budget",
		fields: []formField{
			{key: "category", label: "Category", placeholder: "Food, Rent, ..."},
			{key: "limit", label: "Monthly limit", placeholder: "0.00"},
		},
	}
}
