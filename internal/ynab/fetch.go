package ynab

import (
	"context"

	"golang.org/x/sync/errgroup"

	"weeknab/internal/core"
)

// BudgetData is everything a single report run needs from the API.
type BudgetData struct {
	Groups       []core.CategoryGroup
	Transactions []core.Transaction
}

// FetchBudgetData retrieves a budget's category groups and its transactions
// since the given date concurrently. Either request failing fails the
// whole fetch; the report never builds from partial data.
func FetchBudgetData(ctx context.Context, client *Client, budgetID string, since core.Date) (BudgetData, error) {
	var data BudgetData

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		groups, err := client.Categories(ctx, budgetID)
		if err != nil {
			return err
		}
		data.Groups = groups
		return nil
	})
	g.Go(func() error {
		transactions, err := client.Transactions(ctx, budgetID, since)
		if err != nil {
			return err
		}
		data.Transactions = transactions
		return nil
	})

	if err := g.Wait(); err != nil {
		return BudgetData{}, err
	}
	return data, nil
}
