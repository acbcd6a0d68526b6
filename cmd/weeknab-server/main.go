package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"weeknab/internal/cli"
	"weeknab/internal/config"
	"weeknab/internal/core"
	"weeknab/internal/render"
	"weeknab/internal/report"
	"weeknab/internal/ynab"
)

// weeknab-server serves the visual weekly report over HTTP, fetching fresh
// budget data on every request. Intended for a home dashboard, not the
// public internet.
func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger, "")

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/", func(c *gin.Context) {
		resolutionDate := core.Today()
		if raw := c.Query("date"); raw != "" {
			parsed, err := core.ParseDate(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
				return
			}
			resolutionDate = parsed
		}

		week, err := core.ResolveWeek(resolutionDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rows, err := buildReport(c.Request.Context(), cfg, week, c.Query("all") == "true")
		if err != nil {
			logger.Error("Report build failed", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Type", "text/html; charset=utf-8")
		if err := render.HTML(c.Writer, week.ShortLabel(), week.Start.Year(), rows, cfg.WatchList); err != nil {
			logger.Error("Render failed", "error", err)
		}
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting weeknab server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

func buildReport(ctx context.Context, cfg *config.Config, week core.ReportingWeek, showAll bool) ([]report.Row, error) {
	client := ynab.NewClient(cfg.AccessToken)

	budgets, err := client.Budgets(ctx)
	if err != nil {
		return nil, err
	}
	budgetID, ok := report.BudgetID(budgets, cfg.BudgetName)
	if !ok {
		return nil, fmt.Errorf("budget %q not found among %d budgets", cfg.BudgetName, len(budgets))
	}

	data, err := ynab.FetchBudgetData(ctx, client, budgetID, week.Start)
	if err != nil {
		return nil, err
	}

	watched := report.CategoriesToWatch(data.Groups, cfg.WatchList)
	categories, err := report.CategoryRows(watched)
	if err != nil {
		return nil, err
	}
	events, err := report.SpendEvents(data.Transactions)
	if err != nil {
		return nil, err
	}
	events = report.FilterRange(events, week.Start, week.End)

	rows := report.BuildTable(categories, events, report.CategoryNames(categories))
	if !showAll && !cfg.ShowAllRows {
		rows = report.NonZeroSpent(rows)
	}
	return rows, nil
}
