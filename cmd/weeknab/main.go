package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"weeknab/internal/amqp"
	"weeknab/internal/cli"
	"weeknab/internal/config"
	"weeknab/internal/core"
	"weeknab/internal/render"
	"weeknab/internal/report"
	"weeknab/internal/sheets"
	"weeknab/internal/storage"
	"weeknab/internal/ynab"
)

func main() {
	var (
		configPath = flag.String("config", "weeknab.json", "path to the JSON config file (empty = environment only)")
		dateFlag   = flag.String("date", "", "resolution date YYYY-MM-DD (default: config, then today)")
		allFlag    = flag.Bool("all", false, "show all rows, including categories with no spending")
		formatFlag = flag.String("format", "", "output format: console, csv, html or sheets (default: config)")
		history    = flag.Int("history", 0, "list the N most recent stored report runs and exit")
	)
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger, *configPath)

	if *allFlag {
		cfg.ShowAllRows = true
	}
	if *formatFlag != "" {
		cfg.OutputFormat = config.OutputFormat(*formatFlag)
		if err := cfg.Validate(); err != nil {
			logger.Error("Invalid format override", "error", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()

	if *history > 0 {
		listHistory(ctx, logger, cfg, *history)
		return
	}

	resolutionDate := cfg.ResolutionDate
	if *dateFlag != "" {
		parsed, err := core.ParseDate(*dateFlag)
		if err != nil {
			logger.Error("Invalid -date flag", "error", err, "value", *dateFlag)
			os.Exit(1)
		}
		resolutionDate = parsed
	}
	if resolutionDate.IsZero() {
		resolutionDate = core.Today()
	}

	week, err := core.ResolveWeek(resolutionDate)
	if err != nil {
		logger.Error("Failed to resolve reporting week", "error", err, "date", resolutionDate.String())
		os.Exit(1)
	}

	if err := run(ctx, logger, cfg, week); err != nil {
		logger.Error("Report failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, week core.ReportingWeek) error {
	client := ynab.NewClient(cfg.AccessToken)

	budgets, err := client.Budgets(ctx)
	if err != nil {
		return err
	}
	budgetID, ok := report.BudgetID(budgets, cfg.BudgetName)
	if !ok {
		return fmt.Errorf("budget %q not found among %d budgets", cfg.BudgetName, len(budgets))
	}

	data, err := ynab.FetchBudgetData(ctx, client, budgetID, week.Start)
	if err != nil {
		return err
	}
	logger.Info("Budget data fetched",
		"budget_id", budgetID,
		"groups", len(data.Groups),
		"transactions", len(data.Transactions))

	for group := range report.MissingGroups(data.Groups, cfg.WatchList) {
		logger.Warn("Watched category group no longer exists", "group", group)
	}

	watched := report.CategoriesToWatch(data.Groups, cfg.WatchList)
	categories, err := report.CategoryRows(watched)
	if err != nil {
		return err
	}
	events, err := report.SpendEvents(data.Transactions)
	if err != nil {
		return err
	}
	events = report.FilterRange(events, week.Start, week.End)

	rows := report.BuildTable(categories, events, report.CategoryNames(categories))
	totals := report.BuildGroupTotals(rows, cfg.UngroupedLabel)

	display := rows
	if !cfg.ShowAllRows {
		display = report.NonZeroSpent(rows)
	}

	if err := emit(ctx, cfg, week, display, totals); err != nil {
		return err
	}

	if cfg.SQLiteDBPath != "" {
		saveHistory(ctx, logger, cfg, budgetID, week, rows)
	}
	if cfg.AMQPURL != "" {
		publishEvent(ctx, logger, cfg, budgetID, week, rows)
	}
	return nil
}

func emit(ctx context.Context, cfg *config.Config, week core.ReportingWeek, rows []report.Row, totals []report.GroupTotal) error {
	switch cfg.OutputFormat {
	case config.FormatConsole:
		return render.Console(os.Stdout, week.Label(), rows, totals)
	case config.FormatCSV:
		if _, err := fmt.Println(week.Label()); err != nil {
			return err
		}
		if err := render.CSV(os.Stdout, rows); err != nil {
			return err
		}
		if _, err := fmt.Println("category_group_totals"); err != nil {
			return err
		}
		return render.GroupTotalsCSV(os.Stdout, totals)
	case config.FormatHTML:
		return render.HTML(os.Stdout, week.ShortLabel(), week.Start.Year(), rows, cfg.WatchList)
	case config.FormatSheets:
		exporter, err := sheets.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			return err
		}
		return exporter.AppendReport(ctx, week.Label(), rows)
	default:
		return fmt.Errorf("unsupported output format %q", cfg.OutputFormat)
	}
}

// History and event publishing are best effort: a broken sidecar must not
// fail a report that already rendered.
func saveHistory(ctx context.Context, logger *slog.Logger, cfg *config.Config, budgetID string, week core.ReportingWeek, rows []report.Row) {
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Warn("Report history unavailable", "error", err, "path", cfg.SQLiteDBPath)
		return
	}
	defer repo.Close()

	if _, err := repo.SaveRun(ctx, budgetID, week, rows); err != nil {
		logger.Warn("Failed to save report run", "error", err)
	}
}

func publishEvent(ctx context.Context, logger *slog.Logger, cfg *config.Config, budgetID string, week core.ReportingWeek, rows []report.Row) {
	broker, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("AMQP broker unavailable", "error", err)
		return
	}
	defer broker.Close()

	var totalSpent float64
	for _, r := range rows {
		totalSpent += r.Spent
	}
	msg := amqp.NewReportPublishedMessage(budgetID, week.Start.String(), week.End.String(), week.Number, totalSpent)
	if err := broker.PublishReport(ctx, msg); err != nil {
		logger.Warn("Failed to publish report event", "error", err)
	}
}

func listHistory(ctx context.Context, logger *slog.Logger, cfg *config.Config, limit int) {
	if cfg.SQLiteDBPath == "" {
		logger.Error("No history database configured (set WEEKNAB_DB_PATH)")
		os.Exit(1)
	}
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	runs, err := repo.ListRuns(ctx, limit)
	if err != nil {
		logger.Error("Failed to list report runs", "error", err)
		os.Exit(1)
	}
	for _, run := range runs {
		fmt.Printf("%d\t%s\t%s\n", run.ID, run.Week.Label(), run.CreatedAt.Format("2006-01-02 15:04"))
	}
}
