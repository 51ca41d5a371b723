package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateTaskTitle(t *testing.T) {
	if err := ValidateTaskTitle("Buy milk"); err != nil {
		t.Errorf("valid title rejected: %v", err)
	}
	if err := ValidateTaskTitle(""); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("empty title: got %v, want ErrEmptyTitle", err)
	}
	if err := ValidateTaskTitle("   \t  "); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("whitespace title: got %v, want ErrEmptyTitle", err)
	}
}

func TestValidateTransaction(t *testing.T) {
	amount := decimal.NewFromInt(25000)

	cases := []struct {
		name    string
		desc    string
		amount  decimal.Decimal
		typ     TransactionType
		wantErr error
	}{
		{name: "valid expense", desc: "Lunch", amount: amount, typ: Expense},
		{name: "valid income", desc: "Salary", amount: amount, typ: Income},
		{name: "empty description", desc: "", amount: amount, typ: Expense, wantErr: ErrEmptyDescription},
		{name: "whitespace description", desc: "  ", amount: amount, typ: Expense, wantErr: ErrEmptyDescription},
		{name: "zero amount", desc: "Lunch", amount: decimal.Zero, typ: Expense, wantErr: ErrInvalidAmount},
		{name: "negative amount", desc: "Lunch", amount: decimal.NewFromInt(-1), typ: Expense, wantErr: ErrInvalidAmount},
		{name: "unknown type", desc: "Lunch", amount: amount, typ: TransactionType("transfer"), wantErr: ErrInvalidType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTransaction(tc.desc, tc.amount, tc.typ)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestTaskDecomposed(t *testing.T) {
	if (Task{}).Decomposed() {
		t.Error("task without subtasks reported as decomposed")
	}
	task := Task{Subtasks: []string{"Check the fridge", "Cook or order"}}
	if !task.Decomposed() {
		t.Error("task with subtasks not reported as decomposed")
	}
}
