package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwren/pennyledger/internal/config"
	"github.com/cwren/pennyledger/internal/ledger"
)

func testConfig() config.Config {
	cfg := config.Config{}
	cfg.UI.CurrencySymbol = "$"
	cfg.UI.DateFormat = "2006-01-02"
	return cfg
}

func onboardedLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l := ledger.New()
	err := l.InitializeFromOnboarding(context.Background(), ledger.OnboardingInput{
		Name:            "Alex",
		ChequingBalance: "1000",
		SavingsBalance:  "500",
		MonthlyIncome:   "3000",
		MonthlyExpenses: "2000",
	})
	if err != nil {
		t.Fatalf("onboarding: %v", err)
	}
	return l
}

func press(t *testing.T, m tea.Model, keys ...string) tea.Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func typeText(t *testing.T, m tea.Model, s string) tea.Model {
	t.Helper()
	for _, r := range s {
		if r == ' ' {
			m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestFreshLedgerOpensOnboarding(t *testing.T) {
	app := New(context.Background(), testConfig(), ledger.New())
	if app.modal != modalOnboarding {
		t.Fatalf("modal = %q, want onboarding", app.modal)
	}
	view := app.View()
	if !strings.Contains(view, "Welcome to Pennyledger") {
		t.Fatalf("view missing onboarding form:\n%s", view)
	}

	// esc must not dismiss onboarding
	m := press(t, app, "esc")
	if m.(*App).modal != modalOnboarding {
		t.Fatal("esc dismissed the onboarding form")
	}
}

func TestOnboardingSubmitShowsDashboard(t *testing.T) {
	app := New(context.Background(), testConfig(), ledger.New())
	var m tea.Model = app
	m = typeText(t, m, "Alex")
	m = press(t, m, "tab")
	m = typeText(t, m, "1000")
	m = press(t, m, "tab")
	m = typeText(t, m, "500")
	m = press(t, m, "tab")
	m = typeText(t, m, "3000")
	m = press(t, m, "tab")
	m = typeText(t, m, "2000")
	m = press(t, m, "enter")

	a := m.(*App)
	if a.modal != modalNone {
		t.Fatalf("modal = %q after submit, want none", a.modal)
	}
	if !a.ledger.Onboarded() {
		t.Fatal("ledger not onboarded after submit")
	}
	view := a.View()
	// chequing carries the opening 1000 plus the income/expense seeds
	for _, want := range []string{"Balances", "$2000.00", "$500.00", "Financial health", "Cash flow"} {
		if !strings.Contains(view, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestOnboardingValidationMarksFields(t *testing.T) {
	app := New(context.Background(), testConfig(), ledger.New())
	var m tea.Model = app
	m = typeText(t, m, "A1")
	m = press(t, m, "enter")

	a := m.(*App)
	if a.modal != modalOnboarding {
		t.Fatal("invalid submit closed the form")
	}
	if fld := a.form.field("name"); fld == nil || fld.err == "" {
		t.Fatal("name field not marked with an error")
	}
	if a.ledger.Onboarded() {
		t.Fatal("ledger onboarded from invalid input")
	}
}

func TestAddTransactionThroughForm(t *testing.T) {
	l := onboardedLedger(t)
	app := New(context.Background(), testConfig(), l)
	var m tea.Model = app
	m = press(t, m, "t", "a")
	if m.(*App).modal != modalTransaction {
		t.Fatalf("modal = %q, want transaction", m.(*App).modal)
	}
	m = typeText(t, m, "Coffee")
	m = press(t, m, "tab")
	m = typeText(t, m, "5.00")
	m = press(t, m, "tab")
	m = typeText(t, m, "expense")
	m = press(t, m, "tab")
	m = typeText(t, m, "Food")
	m = press(t, m, "enter")

	a := m.(*App)
	if a.modal != modalNone {
		t.Fatalf("modal still open; status = %q", a.status)
	}
	if got := len(l.Transactions()); got != 5 {
		t.Fatalf("transactions = %d, want 5 (4 seeds + coffee)", got)
	}
	if l.ChequingBalance() != 199500 {
		t.Fatalf("chequing = %d, want 199500", l.ChequingBalance())
	}
	if !strings.Contains(a.View(), "Coffee") {
		t.Fatal("transaction list missing new entry")
	}
}

func TestDeleteSelectedTransaction(t *testing.T) {
	l := onboardedLedger(t)
	app := New(context.Background(), testConfig(), l)
	before := len(l.Transactions())
	top := l.Transactions()[0]

	m := press(t, app, "t", "x")
	a := m.(*App)
	if got := len(l.Transactions()); got != before-1 {
		t.Fatalf("transactions = %d, want %d", got, before-1)
	}
	for _, tx := range l.Transactions() {
		if tx.ID == top.ID {
			t.Fatal("selected transaction still present")
		}
	}
	if a.isErr {
		t.Fatalf("unexpected error status %q", a.status)
	}
}

func TestGoalFormAndProgress(t *testing.T) {
	l := onboardedLedger(t)
	app := New(context.Background(), testConfig(), l)
	var m tea.Model = app
	m = press(t, m, "g", "a")
	m = typeText(t, m, "Vacation")
	m = press(t, m, "tab")
	m = typeText(t, m, "1200")
	m = press(t, m, "enter")

	a := m.(*App)
	if a.modal != modalNone {
		t.Fatalf("goal form still open; status = %q", a.status)
	}
	if len(l.Goals()) != 1 {
		t.Fatalf("goals = %d, want 1", len(l.Goals()))
	}
	if !strings.Contains(a.View(), "Vacation") {
		t.Fatal("goals view missing new goal")
	}
}

func TestBudgetFormFromSettings(t *testing.T) {
	l := onboardedLedger(t)
	app := New(context.Background(), testConfig(), l)
	var m tea.Model = app
	m = press(t, m, "s", "b")
	m = typeText(t, m, "Food")
	m = press(t, m, "tab")
	m = typeText(t, m, "400")
	m = press(t, m, "enter")

	a := m.(*App)
	if len(l.Budgets()) != 1 {
		t.Fatalf("budgets = %d, want 1", len(l.Budgets()))
	}
	if !strings.Contains(a.View(), "of $400.00") {
		t.Fatalf("settings view missing budget limit:\n%s", a.View())
	}
}

func TestTabSwitching(t *testing.T) {
	app := New(context.Background(), testConfig(), onboardedLedger(t))
	cases := []struct {
		key  string
		want appState
	}{
		{"t", viewTransactions},
		{"g", viewGoals},
		{"s", viewSettings},
		{"d", viewDashboard},
	}
	var m tea.Model = app
	for _, tc := range cases {
		m = press(t, m, tc.key)
		if got := m.(*App).state; got != tc.want {
			t.Fatalf("after %q state = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestQuitKey(t *testing.T) {
	app := New(context.Background(), testConfig(), onboardedLedger(t))
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q produced no command")
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	l := onboardedLedger(t)
	app := New(context.Background(), testConfig(), l)
	m := press(t, app, "t", "up", "up")
	if got := m.(*App).txCursor; got != 0 {
		t.Fatalf("cursor = %d after up past top, want 0", got)
	}
	for i := 0; i < 20; i++ {
		m = press(t, m, "down")
	}
	if got, max := m.(*App).txCursor, len(l.Transactions())-1; got != max {
		t.Fatalf("cursor = %d after down past bottom, want %d", got, max)
	}
}
