package ledger

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Persister is the write side of the persistence adapter. The ledger writes
// through after every successful mutation; a failed write is logged and the
// in-memory state is kept.
type Persister interface {
	Save(ctx context.Context, snap *Snapshot) error
}

// Ledger owns the financial state and every rule that transforms it.
// Balances and income/expense totals are always derived from the transaction
// list, never maintained as independent counters, so they cannot drift.
// It is not safe for concurrent use; the caller is the single mutator.
type Ledger struct {
	transactions []Transaction // most-recent-first
	goals        []Goal
	budgets      []BudgetCategory
	investments  []Investment
	cryptos      []Cryptocurrency
	profile      Profile

	chequing    Cents
	savings     Cents
	income      Cents
	expenses    Cents
	healthScore float64

	persist   Persister
	log       zerolog.Logger
	now       func() time.Time
	observers []func()
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithPersister enables write-through persistence.
func WithPersister(p Persister) Option { return func(l *Ledger) { l.persist = p } }

// WithLogger sets the logger used for persistence warnings.
func WithLogger(log zerolog.Logger) Option { return func(l *Ledger) { l.log = log } }

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option { return func(l *Ledger) { l.now = now } }

// New returns an empty ledger awaiting onboarding.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		log: zerolog.Nop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.recalc()
	return l
}

// FromSnapshot restores a ledger from a persisted snapshot. The snapshot's
// scalar balances are ignored: state is re-derived from the transaction list.
func FromSnapshot(snap *Snapshot, opts ...Option) *Ledger {
	l := New(opts...)
	snap.normalize()
	l.transactions = snap.Transactions
	l.goals = snap.Goals
	l.budgets = snap.BudgetCategories
	l.investments = snap.Investments
	l.cryptos = snap.Cryptocurrencies
	l.profile = snap.UserData
	l.recalc()
	return l
}

// Subscribe registers fn to run after every successful mutation, once the
// new state is settled and persisted.
func (l *Ledger) Subscribe(fn func()) { l.observers = append(l.observers, fn) }

// Accessors. Slices are copied so callers cannot mutate ledger state.

func (l *Ledger) Transactions() []Transaction {
	out := make([]Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

func (l *Ledger) Goals() []Goal {
	out := make([]Goal, len(l.goals))
	copy(out, l.goals)
	return out
}

func (l *Ledger) Budgets() []BudgetCategory {
	out := make([]BudgetCategory, len(l.budgets))
	copy(out, l.budgets)
	return out
}

func (l *Ledger) Investments() []Investment {
	out := make([]Investment, len(l.investments))
	copy(out, l.investments)
	return out
}

func (l *Ledger) Cryptocurrencies() []Cryptocurrency {
	out := make([]Cryptocurrency, len(l.cryptos))
	copy(out, l.cryptos)
	return out
}

func (l *Ledger) Profile() Profile         { return l.profile }
func (l *Ledger) ChequingBalance() Cents   { return l.chequing }
func (l *Ledger) SavingsBalance() Cents    { return l.savings }
func (l *Ledger) Income() Cents            { return l.income }
func (l *Ledger) Expenses() Cents          { return l.expenses }
func (l *Ledger) HealthScore() float64     { return l.healthScore }

// Onboarded reports whether the initial profile has been captured.
func (l *Ledger) Onboarded() bool { return l.profile.Name != "" }

var namePattern = regexp.MustCompile(`^[A-Za-z ]{2,30}$`)

// OnboardingInput carries the raw onboarding form fields.
type OnboardingInput struct {
	Name            string
	ChequingBalance string
	SavingsBalance  string
	MonthlyIncome   string
	MonthlyExpenses string
}

func (in OnboardingInput) validate() (cheq, sav, inc, exp Cents, _ error) {
	errs := FieldErrors{}
	if !namePattern.MatchString(strings.TrimSpace(in.Name)) {
		errs["name"] = "must be 2-30 letters or spaces"
	}
	parse := func(field, raw string) Cents {
		c, err := ParseAmount(raw)
		if err != nil {
			errs[field] = "must be a non-negative number with at most 2 decimal places"
		}
		return c
	}
	cheq = parse("chequingBalance", in.ChequingBalance)
	sav = parse("savingsBalance", in.SavingsBalance)
	inc = parse("monthlyIncome", in.MonthlyIncome)
	exp = parse("monthlyExpenses", in.MonthlyExpenses)
	if len(errs) > 0 {
		return 0, 0, 0, 0, errs
	}
	return cheq, sav, inc, exp, nil
}

// InitializeFromOnboarding validates the onboarding form and seeds the
// ledger: the two opening-balance entries plus the first month's income and
// expenses, all dated today. On validation failure the state is untouched.
func (l *Ledger) InitializeFromOnboarding(ctx context.Context, in OnboardingInput) error {
	cheq, sav, inc, exp, err := in.validate()
	if err != nil {
		return err
	}

	today := NewDate(l.now())
	seeds := []Transaction{
		{ID: uuid.NewString(), Date: today, Description: "Initial chequing balance", Amount: cheq, Type: TypeIncome, Category: CategoryOpening, Account: AccountChequing},
		{ID: uuid.NewString(), Date: today, Description: "Initial savings balance", Amount: sav, Type: TypeIncome, Category: CategoryOpening, Account: AccountSavings},
		{ID: uuid.NewString(), Date: today, Description: "Monthly income", Amount: inc, Type: TypeIncome, Category: "Other", Account: AccountChequing},
		{ID: uuid.NewString(), Date: today, Description: "Monthly expenses", Amount: -exp, Type: TypeExpense, Category: "Other", Account: AccountChequing},
	}
	for _, t := range seeds {
		l.transactions = append([]Transaction{t}, l.transactions...)
	}
	l.profile = Profile{
		Name:            strings.TrimSpace(in.Name),
		ChequingBalance: in.ChequingBalance,
		SavingsBalance:  in.SavingsBalance,
		MonthlyIncome:   in.MonthlyIncome,
		MonthlyExpenses: in.MonthlyExpenses,
	}
	l.recalc()
	l.commit(ctx)
	return nil
}

// UpdateProfile revalidates and replaces the stored profile strings without
// reseeding transactions. Settings forms echo these values back.
func (l *Ledger) UpdateProfile(ctx context.Context, in OnboardingInput) error {
	if _, _, _, _, err := in.validate(); err != nil {
		return err
	}
	l.profile = Profile{
		Name:            strings.TrimSpace(in.Name),
		ChequingBalance: in.ChequingBalance,
		SavingsBalance:  in.SavingsBalance,
		MonthlyIncome:   in.MonthlyIncome,
		MonthlyExpenses: in.MonthlyExpenses,
	}
	l.commit(ctx)
	return nil
}

// AddTransactionInput carries the raw add-transaction form fields. Amount is
// unsigned; the sign is derived from Type. Date defaults to today.
type AddTransactionInput struct {
	Description string
	Amount      string
	Type        string
	Category    string
	Date        string
	Account     string
}

// AddTransaction validates, applies, and persists one transaction. The new
// entry goes to the head of the list (most-recent-first). Goal progress
// grows by the amount of every income transaction.
func (l *Ledger) AddTransaction(ctx context.Context, in AddTransactionInput) (Transaction, error) {
	errs := FieldErrors{}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		errs["description"] = "required"
	}
	if strings.TrimSpace(in.Category) == "" {
		errs["category"] = "required"
	}
	txType, err := ParseType(in.Type)
	if err != nil {
		errs["type"] = "must be income or expense"
	}
	account, err := ParseAccount(in.Account)
	if err != nil {
		errs["account"] = "must be chequing or savings"
	}
	amount, err := ParseAmount(in.Amount)
	if err != nil {
		errs["amount"] = "must be a non-negative number with at most 2 decimal places"
	}
	date := NewDate(l.now())
	if strings.TrimSpace(in.Date) != "" {
		date, err = ParseDate(in.Date)
		if err != nil {
			errs["date"] = "must be YYYY-MM-DD"
		}
	}
	if len(errs) > 0 {
		return Transaction{}, errs
	}

	signed := amount
	if txType == TypeExpense {
		signed = -amount
	}
	t := Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: desc,
		Amount:      signed,
		Type:        txType,
		Category:    NormalizeCategory(in.Category),
		Account:     account,
	}
	l.transactions = append([]Transaction{t}, l.transactions...)
	l.adjustGoals(t, +1)
	l.recalc()
	l.commit(ctx)
	return t, nil
}

// DeleteTransaction removes a transaction by id and applies the inverse of
// the add: balances, totals, and goal progress all step back. An unknown id
// returns ErrNotFound without mutating anything; callers treat it as a
// notice, not a failure.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	idx := -1
	for i, t := range l.transactions {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	t := l.transactions[idx]
	l.transactions = append(l.transactions[:idx], l.transactions[idx+1:]...)
	l.adjustGoals(t, -1)
	l.recalc()
	l.commit(ctx)
	return nil
}

// adjustGoals moves every goal's progress by the signed amount of an income
// event. direction is +1 on apply and -1 on delete. Progress never drops
// below zero, and expense or opening entries are ignored.
func (l *Ledger) adjustGoals(t Transaction, direction Cents) {
	if t.Type != TypeIncome || t.opening() || t.Amount <= 0 {
		return
	}
	for i := range l.goals {
		l.goals[i].Current += direction * t.Amount
		if l.goals[i].Current < 0 {
			l.goals[i].Current = 0
		}
	}
}

// AddGoal creates a savings goal with zero progress.
func (l *Ledger) AddGoal(ctx context.Context, name, target, deadline string) (Goal, error) {
	errs := FieldErrors{}
	name = strings.TrimSpace(name)
	if name == "" {
		errs["name"] = "required"
	}
	amount, err := ParseAmount(target)
	if err != nil || amount == 0 {
		errs["target"] = "must be a positive number with at most 2 decimal places"
	}
	var due Date
	if strings.TrimSpace(deadline) != "" {
		due, err = ParseDate(deadline)
		if err != nil {
			errs["deadline"] = "must be YYYY-MM-DD"
		}
	}
	if len(errs) > 0 {
		return Goal{}, errs
	}
	g := Goal{ID: uuid.NewString(), Name: name, Target: amount, Deadline: due}
	l.goals = append(l.goals, g)
	l.commit(ctx)
	return g, nil
}

// DeleteGoal removes a goal by id.
func (l *Ledger) DeleteGoal(ctx context.Context, id string) error {
	for i, g := range l.goals {
		if g.ID == id {
			l.goals = append(l.goals[:i], l.goals[i+1:]...)
			l.commit(ctx)
			return nil
		}
	}
	return fmt.Errorf("goal %s: %w", id, ErrNotFound)
}

// SetBudget upserts the monthly limit for a category.
func (l *Ledger) SetBudget(ctx context.Context, category, limit string) error {
	errs := FieldErrors{}
	category = NormalizeCategory(category)
	if category == "" {
		errs["category"] = "required"
	}
	amount, err := ParseAmount(limit)
	if err != nil {
		errs["limit"] = "must be a non-negative number with at most 2 decimal places"
	}
	if len(errs) > 0 {
		return errs
	}
	for i := range l.budgets {
		if l.budgets[i].Category == category {
			l.budgets[i].Limit = amount
			l.commit(ctx)
			return nil
		}
	}
	l.budgets = append(l.budgets, BudgetCategory{Category: category, Limit: amount})
	l.commit(ctx)
	return nil
}

// SetInvestment upserts an investment by name and refreshes the health score.
func (l *Ledger) SetInvestment(ctx context.Context, inv Investment) error {
	if strings.TrimSpace(inv.Name) == "" {
		return FieldErrors{"name": "required"}
	}
	for i := range l.investments {
		if l.investments[i].Name == inv.Name {
			l.investments[i] = inv
			l.recalc()
			l.commit(ctx)
			return nil
		}
	}
	l.investments = append(l.investments, inv)
	l.recalc()
	l.commit(ctx)
	return nil
}

// SetCryptocurrency upserts a holding by symbol and refreshes the health score.
func (l *Ledger) SetCryptocurrency(ctx context.Context, c Cryptocurrency) error {
	if strings.TrimSpace(c.Symbol) == "" {
		return FieldErrors{"symbol": "required"}
	}
	c.Symbol = strings.ToUpper(strings.TrimSpace(c.Symbol))
	for i := range l.cryptos {
		if l.cryptos[i].Symbol == c.Symbol {
			l.cryptos[i] = c
			l.recalc()
			l.commit(ctx)
			return nil
		}
	}
	l.cryptos = append(l.cryptos, c)
	l.recalc()
	l.commit(ctx)
	return nil
}

// recalc re-derives every projection from the transaction list: account
// balances, income/expense totals (opening entries count toward balances
// only), and the health score. It runs synchronously inside every mutation,
// before persistence.
func (l *Ledger) recalc() {
	l.chequing, l.savings, l.income, l.expenses = 0, 0, 0, 0
	for _, t := range l.transactions {
		switch t.Account {
		case AccountSavings:
			l.savings += t.Amount
		default:
			l.chequing += t.Amount
		}
		if t.opening() {
			continue
		}
		if t.Amount > 0 {
			l.income += t.Amount
		} else {
			l.expenses += -t.Amount
		}
	}
	l.healthScore = computeHealthScore(healthInputs{
		Income:      l.income,
		Expenses:    l.expenses,
		Chequing:    l.chequing,
		Savings:     l.savings,
		Investments: l.investments,
		Cryptos:     l.cryptos,
	})
}

// commit is the tail of every successful mutation: best-effort write-through
// persistence, then observer notification. A failed save keeps the in-memory
// state and is surfaced only as a warning.
func (l *Ledger) commit(ctx context.Context) {
	if l.persist != nil {
		if err := l.persist.Save(ctx, l.Export()); err != nil {
			l.log.Warn().Err(err).Msg("state not persisted")
		}
	}
	for _, fn := range l.observers {
		fn()
	}
}
