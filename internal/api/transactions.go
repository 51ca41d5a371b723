package api

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

// createTransactionRequest sends the amount as a plain JSON number, which is
// what the server's schema expects.
type createTransactionRequest struct {
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

// ListTransactions returns the user's transactions as the server orders them.
func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	var out []core.Transaction
	if err := c.doJSON(ctx, http.MethodGet, "/transactions/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTransaction submits a transaction; the server assigns id, category,
// and timestamps.
func (c *Client) CreateTransaction(ctx context.Context, description string, amount decimal.Decimal, typ core.TransactionType) (core.Transaction, error) {
	var out core.Transaction
	req := createTransactionRequest{
		Amount:      amount.InexactFloat64(),
		Type:        string(typ),
		Description: description,
	}
	if err := c.doJSON(ctx, http.MethodPost, "/transactions/", req, &out); err != nil {
		return core.Transaction{}, err
	}
	return out, nil
}

// FinanceSummary fetches the server-aggregated income/expense/balance figures.
func (c *Client) FinanceSummary(ctx context.Context) (core.FinanceSummary, error) {
	var out core.FinanceSummary
	if err := c.doJSON(ctx, http.MethodGet, "/transactions/summary", nil, &out); err != nil {
		return core.FinanceSummary{}, err
	}
	return out, nil
}
