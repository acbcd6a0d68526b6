// Package ynab fetches budgets, categories and transactions from the YNAB
// REST API and converts them into the core domain types. All genuine I/O of
// the reporting tool lives here; the report engine only ever sees
// in-memory records.
package ynab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"weeknab/internal/core"
)

const defaultBaseURL = "https://api.ynab.com/v1"

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates an API client authenticated with a personal access
// token.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
	}
}

// NewClientWithBaseURL points the client at a different API root, used by
// tests against a local server.
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

// Budgets lists the budget summaries visible to the token.
func (c *Client) Budgets(ctx context.Context) ([]core.BudgetSummary, error) {
	var resp budgetsResponse
	if err := c.get(ctx, "/budgets", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch budgets: %w", err)
	}

	summaries := make([]core.BudgetSummary, len(resp.Data.Budgets))
	for i, b := range resp.Data.Budgets {
		summaries[i] = b.toDomain()
	}
	return summaries, nil
}

// Categories fetches the category groups of a budget, nested categories
// included, in source order.
func (c *Client) Categories(ctx context.Context, budgetID string) ([]core.CategoryGroup, error) {
	var resp categoriesResponse
	path := fmt.Sprintf("/budgets/%s/categories", url.PathEscape(budgetID))
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}

	groups := make([]core.CategoryGroup, len(resp.Data.CategoryGroups))
	for i, g := range resp.Data.CategoryGroups {
		groups[i] = g.toDomain()
	}
	return groups, nil
}

// Transactions fetches a budget's transactions dated on or after since.
func (c *Client) Transactions(ctx context.Context, budgetID string, since core.Date) ([]core.Transaction, error) {
	var resp transactionsResponse
	path := fmt.Sprintf("/budgets/%s/transactions", url.PathEscape(budgetID))
	query := url.Values{}
	if !since.IsZero() {
		query.Set("since_date", since.String())
	}
	if err := c.get(ctx, path, query, &resp); err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	transactions := make([]core.Transaction, len(resp.Data.Transactions))
	for i, t := range resp.Data.Transactions {
		transactions[i] = t.toDomain()
	}
	return transactions, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Name != "" {
			return fmt.Errorf("api error %s (%s): %s", apiErr.Error.ID, apiErr.Error.Name, apiErr.Error.Detail)
		}
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	slog.DebugContext(ctx, "YNAB request completed", "path", path, "status", resp.StatusCode)
	return nil
}
