package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	// Priority is assigned by the server's classifier; the client only displays it.
	Priority string

	TransactionType string

	// UserProfile is owned by the server and refreshed on session establishment.
	UserProfile struct {
		Email  string `json:"email"`
		Streak int    `json:"streak"`
	}

	Task struct {
		ID          int64     `json:"id"`
		Title       string    `json:"title"`
		IsCompleted bool      `json:"is_completed"`
		Priority    Priority  `json:"priority"`
		Subtasks    []string  `json:"subtasks,omitempty"`
		CreatedAt   time.Time `json:"created_at"`
	}

	Transaction struct {
		ID          int64           `json:"id"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		CreatedAt   time.Time       `json:"created_at"`
	}

	// FinanceSummary is aggregated entirely by the server; the client caches it.
	FinanceSummary struct {
		TotalIncome  decimal.Decimal `json:"total_income"`
		TotalExpense decimal.Decimal `json:"total_expense"`
		NetBalance   decimal.Decimal `json:"net_balance"`
	}
)

var (
	ErrEmptyTitle       = errors.New("empty task title")
	ErrEmptyDescription = errors.New("empty transaction description")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Decomposed reports whether the server has populated a subtask breakdown.
func (t Task) Decomposed() bool {
	return len(t.Subtasks) > 0
}

// ValidateTaskTitle is the local pre-submission check for task creation.
// An empty trimmed title is rejected here and never reaches the server.
func ValidateTaskTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// ValidateTransaction is the local pre-submission check for transaction creation.
func ValidateTransaction(description string, amount decimal.Decimal, typ TransactionType) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !typ.Valid() {
		return ErrInvalidType
	}
	return nil
}
