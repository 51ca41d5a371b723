// Package inputmode governs what a pending user-composed entry becomes: a
// task, an income transaction, or an expense transaction.
package inputmode

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

const (
	ModeTask    Mode = "task"
	ModeIncome  Mode = "income"
	ModeExpense Mode = "expense"
)

var ErrUnknownMode = errors.New("unknown input mode")

type Mode string

// Submitter is the mutation engine surface a submission invokes.
type Submitter interface {
	CreateTask(ctx context.Context, title string) (core.Task, error)
	CreateTransaction(ctx context.Context, description string, amount decimal.Decimal, typ core.TransactionType) (core.Transaction, error)
}

// Result carries the entity created by a successful submission. Exactly one
// field is set.
type Result struct {
	Task        *core.Task
	Transaction *core.Transaction
}

// Machine holds the current mode and the composed entry. The transition graph
// is fully connected: any explicit selection is legal at any time. A failed
// submission leaves mode, text, and amount exactly as entered.
type Machine struct {
	mode   Mode
	text   string
	amount string
}

// NewMachine starts in task mode with an empty entry.
func NewMachine() *Machine {
	return &Machine{mode: ModeTask}
}

func (m *Machine) Mode() Mode { return m.mode }

// Select moves to the given mode. The composed entry is kept so a user can
// retype nothing when switching what an entry should become.
func (m *Machine) Select(mode Mode) error {
	switch mode {
	case ModeTask, ModeIncome, ModeExpense:
		m.mode = mode
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

func (m *Machine) SetText(text string)     { m.text = text }
func (m *Machine) Text() string            { return m.text }
func (m *Machine) SetAmount(amount string) { m.amount = amount }
func (m *Machine) Amount() string          { return m.amount }

// RequiresAmount reports whether the current mode needs the amount field.
func (m *Machine) RequiresAmount() bool {
	return m.mode != ModeTask
}

// Placeholder is the composer hint for the current mode.
func (m *Machine) Placeholder() string {
	switch m.mode {
	case ModeIncome:
		return "Amount and source, e.g. 500 Salary"
	case ModeExpense:
		return "Amount and description, e.g. 25000 Lunch"
	default:
		return "What needs to be done?"
	}
}

// Submit sends the composed entry through the engine operation the current
// mode selects. On success the entry is cleared and a transaction submission
// resets the mode to task; a task submission stays in task. On failure
// nothing changes.
func (m *Machine) Submit(ctx context.Context, s Submitter) (Result, error) {
	switch m.mode {
	case ModeTask:
		task, err := s.CreateTask(ctx, m.text)
		if err != nil {
			return Result{}, err
		}
		m.text = ""
		return Result{Task: &task}, nil

	case ModeIncome, ModeExpense:
		amount, err := core.ParseAmount(m.amount)
		if err != nil {
			return Result{}, err
		}
		typ := core.Income
		if m.mode == ModeExpense {
			typ = core.Expense
		}
		tx, err := s.CreateTransaction(ctx, m.text, amount, typ)
		if err != nil {
			return Result{}, err
		}
		m.text = ""
		m.amount = ""
		m.mode = ModeTask
		return Result{Transaction: &tx}, nil

	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownMode, m.mode)
	}
}
