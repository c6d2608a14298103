package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/cwren/pennyledger/internal/config"
	"github.com/cwren/pennyledger/internal/database"
	"github.com/cwren/pennyledger/internal/ledger"
	"github.com/cwren/pennyledger/internal/logger"
	"github.com/cwren/pennyledger/internal/store"
	"github.com/cwren/pennyledger/internal/tui"
)

// appContext carries the wired-up ledger into each subcommand.
type appContext struct {
	ctx    context.Context
	cfg    config.Config
	ledger *ledger.Ledger
	log    zerolog.Logger
}

var cli struct {
	Tui    tuiCmd    `cmd:"" default:"1" help:"Open the interactive dashboard."`
	Add    addCmd    `cmd:"" help:"Record a transaction without opening the dashboard."`
	Export exportCmd `cmd:"" help:"Write the full ledger as JSON."`
	Import importCmd `cmd:"" help:"Replace the ledger with a JSON export."`
	Score  scoreCmd  `cmd:"" help:"Print the financial health score."`
}

type tuiCmd struct{}

func (c *tuiCmd) Run(app *appContext) error {
	p := tea.NewProgram(tui.New(app.ctx, app.cfg, app.ledger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type addCmd struct {
	Description string `arg:"" help:"What the money was for."`
	Amount      string `arg:"" help:"Positive amount, e.g. 19.95."`
	Type        string `default:"expense" help:"income or expense."`
	Category    string `default:"Other" help:"Spending category."`
	Account     string `default:"chequing" help:"chequing or savings."`
	Date        string `help:"YYYY-MM-DD, defaults to today."`
}

func (c *addCmd) Run(app *appContext) error {
	if !app.ledger.Onboarded() {
		return errors.New("no profile yet, run the dashboard once to set up")
	}
	tx, err := app.ledger.AddTransaction(app.ctx, ledger.AddTransactionInput{
		Description: c.Description,
		Amount:      c.Amount,
		Type:        c.Type,
		Category:    c.Category,
		Account:     c.Account,
		Date:        c.Date,
	})
	if err != nil {
		return err
	}
	fmt.Printf("recorded %s %s (%s, %s)\n", tx.Description, tx.Amount.Format(app.cfg.UI.CurrencySymbol), tx.Category, tx.Account)
	return nil
}

type exportCmd struct {
	Out string `help:"File to write, stdout when omitted." type:"path"`
}

func (c *exportCmd) Run(app *appContext) error {
	data, err := app.ledger.ExportJSON()
	if err != nil {
		return err
	}
	if c.Out == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(c.Out, data, 0o644)
}

type importCmd struct {
	File string `arg:"" help:"JSON export to load." type:"existingfile"`
}

func (c *importCmd) Run(app *appContext) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	if err := app.ledger.ImportJSON(app.ctx, data); err != nil {
		return err
	}
	fmt.Printf("imported %d transactions\n", len(app.ledger.Transactions()))
	return nil
}

type scoreCmd struct{}

func (c *scoreCmd) Run(app *appContext) error {
	if !app.ledger.Onboarded() {
		return errors.New("no profile yet, run the dashboard once to set up")
	}
	sym := app.cfg.UI.CurrencySymbol
	fmt.Printf("%.0f/100\n", app.ledger.HealthScore())
	bd := app.ledger.ComputeBreakdown()
	fmt.Printf("chequing %s  savings %s  debt %s  net worth %s\n",
		bd.Chequing.Format(sym), bd.Savings.Format(sym), bd.Debt.Format(sym), bd.NetWorth.Format(sym))
	for _, r := range app.ledger.GenerateBudgetRecommendations() {
		fmt.Printf("- %s\n", r.Message)
	}
	return nil
}

func openStore(cfg config.Config) (store.Store, func() error, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			return nil, nil, err
		}
		db, err := database.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store.NewSQLite(db), db.Close, nil
	default:
		return store.NewJSONFile(cfg.Store.Path), func() error { return nil }, nil
	}
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("pennyledger"),
		kong.Description("A personal finance ledger for the terminal."),
	)

	cfg, err := config.Load()
	kctx.FatalIfErrorf(err)

	// the dashboard owns the terminal, so interactive runs log to a file
	var log zerolog.Logger
	closeLog := func() error { return nil }
	if kctx.Command() == "tui" {
		log, closeLog, err = logger.NewFile(cfg.Log.Path, cfg.Log.Level)
		kctx.FatalIfErrorf(err)
	} else {
		log = logger.NewConsole(cfg.Log.Level)
	}
	defer closeLog()

	st, closeStore, err := openStore(cfg)
	kctx.FatalIfErrorf(err)
	defer closeStore()

	ctx := context.Background()
	opts := []ledger.Option{ledger.WithPersister(st), ledger.WithLogger(log)}

	var l *ledger.Ledger
	snap, err := st.Load(ctx)
	switch {
	case err == nil:
		l = ledger.FromSnapshot(snap, opts...)
	case errors.Is(err, store.ErrNotFound):
		l = ledger.New(opts...)
	default:
		kctx.FatalIfErrorf(err)
	}

	err = kctx.Run(&appContext{ctx: ctx, cfg: cfg, ledger: l, log: log})
	kctx.FatalIfErrorf(err)
}
