package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwren/pennyledger/internal/config"
	"github.com/cwren/pennyledger/internal/ledger"
)

type appState string

const (
	viewDashboard    appState = "dashboard"
	viewTransactions appState = "transactions"
	viewGoals        appState = "goals"
	viewSettings     appState = "settings"
)

type modalState string

const (
	modalNone        modalState = ""
	modalOnboarding  modalState = "onboarding"
	modalTransaction modalState = "transaction"
	modalGoal        modalState = "goal"
	modalBudget      modalState = "budget"
)

type keyMap struct {
	Dashboard    key.Binding
	Transactions key.Binding
	Goals        key.Binding
	Settings     key.Binding
	Add          key.Binding
	Delete       key.Binding
	Budget       key.Binding
	UpDown       key.Binding
	Confirm      key.Binding
	Cancel       key.Binding
	Quit         key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Dashboard:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dashboard")),
		Transactions: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "transactions")),
		Goals:        key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "goals")),
		Settings:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Add:          key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Budget:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "budget")),
		UpDown:       key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("up/down", "navigate")),
		Confirm:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// App ties together views. It holds no financial logic: every mutation goes
// through the ledger and every render reads back from it.
type App struct {
	ctx    context.Context
	ledger *ledger.Ledger
	cfg    config.Config
	keys   keyMap

	state    appState
	modal    modalState
	form     form
	txCursor int
	glCursor int
	status   string
	isErr    bool
	width    int
	height   int
}

// New builds the app around a loaded ledger. A ledger without a profile opens
// straight into the onboarding form.
func New(ctx context.Context, cfg config.Config, l *ledger.Ledger) *App {
	a := &App{
		ctx:    ctx,
		ledger: l,
		cfg:    cfg,
		keys:   newKeyMap(),
		state:  viewDashboard,
		width:  100,
		height: 40,
	}
	if !l.Onboarded() {
		a.modal = modalOnboarding
		a.form = newOnboardingForm()
	}
	return a
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case tea.KeyMsg:
		if key.Matches(m, a.keys.Quit) && a.modal == modalNone {
			return a, tea.Quit
		}
		if a.modal != modalNone {
			return a.updateModal(m)
		}
		return a.updateView(m)
	}
	return a, nil
}

func (a *App) updateView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Dashboard):
		a.state = viewDashboard
	case key.Matches(msg, a.keys.Transactions):
		a.state = viewTransactions
	case key.Matches(msg, a.keys.Goals):
		a.state = viewGoals
	case key.Matches(msg, a.keys.Settings):
		a.state = viewSettings
	case key.Matches(msg, a.keys.Add):
		switch a.state {
		case viewTransactions:
			a.openModal(modalTransaction, newTransactionForm())
		case viewGoals:
			a.openModal(modalGoal, newGoalForm())
		}
	case key.Matches(msg, a.keys.Budget):
		if a.state == viewSettings {
			a.openModal(modalBudget, newBudgetForm())
		}
	case key.Matches(msg, a.keys.Delete):
		return a.deleteSelected()
	case key.Matches(msg, a.keys.UpDown):
		a.moveCursor(msg.String())
	}
	return a, nil
}

func (a *App) openModal(m modalState, f form) {
	a.modal = m
	a.form = f
	a.setStatus("")
}

func (a *App) moveCursor(dir string) {
	delta := 1
	if dir == "up" {
		delta = -1
	}
	switch a.state {
	case viewTransactions:
		a.txCursor = clampInt(a.txCursor+delta, 0, len(a.ledger.Transactions())-1)
	case viewGoals:
		a.glCursor = clampInt(a.glCursor+delta, 0, len(a.ledger.Goals())-1)
	}
}

func (a *App) deleteSelected() (tea.Model, tea.Cmd) {
	switch a.state {
	case viewTransactions:
		txs := a.ledger.Transactions()
		if len(txs) == 0 {
			return a, nil
		}
		tx := txs[a.txCursor]
		if err := a.ledger.DeleteTransaction(a.ctx, tx.ID); err != nil {
			a.setError(err.Error())
			return a, nil
		}
		a.txCursor = clampInt(a.txCursor, 0, len(txs)-2)
		a.setStatus(fmt.Sprintf("Deleted %q.", tx.Description))
	case viewGoals:
		goals := a.ledger.Goals()
		if len(goals) == 0 {
			return a, nil
		}
		g := goals[a.glCursor]
		if err := a.ledger.DeleteGoal(a.ctx, g.ID); err != nil {
			a.setError(err.Error())
			return a, nil
		}
		a.glCursor = clampInt(a.glCursor, 0, len(goals)-2)
		a.setStatus(fmt.Sprintf("Deleted goal %q.", g.Name))
	}
	return a, nil
}

func (a *App) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		if a.modal == modalOnboarding {
			// onboarding cannot be dismissed, the ledger needs a profile
			return a, nil
		}
		a.modal = modalNone
		a.setStatus("Cancelled.")
		return a, nil
	case key.Matches(msg, a.keys.Confirm):
		return a.submitModal()
	}
	a.form.handleKey(msg)
	return a, nil
}

func (a *App) submitModal() (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalOnboarding:
		if err := a.ledger.InitializeFromOnboarding(a.ctx, a.form.onboardingInput()); err != nil {
			a.applyFormError(err)
			return a, nil
		}
		a.modal = modalNone
		a.setStatus(fmt.Sprintf("Welcome, %s.", a.ledger.Profile().Name))
	case modalTransaction:
		tx, err := a.ledger.AddTransaction(a.ctx, a.form.transactionInput())
		if err != nil {
			a.applyFormError(err)
			return a, nil
		}
		a.modal = modalNone
		a.txCursor = 0
		a.setStatus(fmt.Sprintf("Added %q (%s).", tx.Description, tx.Amount.Format(a.cfg.UI.CurrencySymbol)))
	case modalGoal:
		g, err := a.ledger.AddGoal(a.ctx, a.form.value("name"), a.form.value("target"), a.form.value("deadline"))
		if err != nil {
			a.applyFormError(err)
			return a, nil
		}
		a.modal = modalNone
		a.setStatus(fmt.Sprintf("Goal %q added.", g.Name))
	case modalBudget:
		if err := a.ledger.SetBudget(a.ctx, a.form.value("category"), a.form.value("limit")); err != nil {
			a.applyFormError(err)
			return a, nil
		}
		a.modal = modalNone
		a.setStatus("Budget saved.")
	}
	return a, nil
}

func (a *App) applyFormError(err error) {
	if fe, ok := ledger.AsFieldErrors(err); ok {
		a.form.applyErrors(fe)
		a.setError("Fix the highlighted fields.")
		return
	}
	a.setError(err.Error())
}

func (a *App) setStatus(s string) { a.status, a.isErr = s, false }
func (a *App) setError(s string)  { a.status, a.isErr = s, true }

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
