// Package engine issues mutations against the remote API and reconciles the
// local entity store with the authoritative responses. Every mutation is
// confirm-then-apply: the store changes only after the server has accepted
// the operation, so failures never need a rollback.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"tally/internal/api"
	"tally/internal/core"
	"tally/internal/log"
	"tally/internal/session"
	"tally/internal/store"
	"tally/internal/summary"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrTaskNotFound     = errors.New("task not found")
)

// Engine orchestrates the API client, the entity store, and the finance
// summary cache. The session manager gates every operation.
type Engine struct {
	client  *api.Client
	store   *store.Store
	summary *summary.Cache
	session *session.Manager
	logger  *log.Logger
}

func New(client *api.Client, st *store.Store, cache *summary.Cache, sess *session.Manager, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Engine{
		client:  client,
		store:   st,
		summary: cache,
		session: sess,
		logger:  logger.WithComponent(log.ComponentEngine),
	}
}

// Bootstrap loads the three entity collections after session establishment.
// The fetches run concurrently and independently; a failure in one does not
// cancel the others.
func (e *Engine) Bootstrap(ctx context.Context) error {
	if !e.session.Authenticated() {
		return ErrNotAuthenticated
	}

	var g errgroup.Group

	g.Go(func() error {
		tasks, err := e.client.ListTasks(ctx)
		if err != nil {
			return fmt.Errorf("load tasks: %w", err)
		}
		e.store.SetTasks(tasks)
		return nil
	})

	g.Go(func() error {
		transactions, err := e.client.ListTransactions(ctx)
		if err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		e.store.SetTransactions(transactions)
		return nil
	})

	g.Go(func() error {
		if err := e.summary.Refresh(ctx); err != nil {
			return fmt.Errorf("load finance summary: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		e.logger.WarnContext(ctx, "Initial load incomplete",
			log.FieldOperation, log.OpBootstrap,
			log.FieldError, err)
		return err
	}

	e.logger.InfoContext(ctx, "Initial load complete",
		log.FieldOperation, log.OpBootstrap)
	return nil
}

// CreateTask validates the title locally, submits it, and prepends the
// server's representation of the new task.
func (e *Engine) CreateTask(ctx context.Context, title string) (core.Task, error) {
	if !e.session.Authenticated() {
		return core.Task{}, ErrNotAuthenticated
	}
	title = strings.TrimSpace(title)
	if err := core.ValidateTaskTitle(title); err != nil {
		return core.Task{}, err
	}

	task, err := e.client.CreateTask(ctx, title)
	if err != nil {
		return core.Task{}, err
	}
	e.store.PrependTask(task)

	e.logger.InfoContext(ctx, "Task created",
		log.FieldOperation, log.OpCreate,
		log.FieldTaskID, task.ID,
		log.FieldPriority, string(task.Priority))
	return task, nil
}

// SetTaskCompletion sends an explicit target state and replaces the local
// entry with the server's response.
func (e *Engine) SetTaskCompletion(ctx context.Context, id int64, completed bool) (core.Task, error) {
	if !e.session.Authenticated() {
		return core.Task{}, ErrNotAuthenticated
	}

	task, err := e.client.UpdateTask(ctx, id, completed)
	if err != nil {
		return core.Task{}, err
	}
	e.store.ReplaceTask(task)

	e.logger.InfoContext(ctx, "Task updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldTaskID, task.ID)
	return task, nil
}

// ToggleTaskCompletion derives the target from the locally known state and
// delegates to SetTaskCompletion. Two toggles racing from the same stale
// state can land on the same outcome; last response wins.
func (e *Engine) ToggleTaskCompletion(ctx context.Context, id int64) (core.Task, error) {
	current, ok := e.store.TaskByID(id)
	if !ok {
		return core.Task{}, ErrTaskNotFound
	}
	return e.SetTaskCompletion(ctx, id, !current.IsCompleted)
}

// DeleteTask removes the task locally only after the remote delete succeeds.
func (e *Engine) DeleteTask(ctx context.Context, id int64) error {
	if !e.session.Authenticated() {
		return ErrNotAuthenticated
	}

	if err := e.client.DeleteTask(ctx, id); err != nil {
		return err
	}
	e.store.RemoveTask(id)

	e.logger.InfoContext(ctx, "Task deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldTaskID, id)
	return nil
}

// DecomposeTask asks the server for a subtask breakdown and replaces the
// local entry with the response. Repeat invocation is not blocked here; the
// shell may hide the affordance once subtasks exist.
func (e *Engine) DecomposeTask(ctx context.Context, id int64) (core.Task, error) {
	if !e.session.Authenticated() {
		return core.Task{}, ErrNotAuthenticated
	}

	task, err := e.client.DecomposeTask(ctx, id)
	if err != nil {
		return core.Task{}, err
	}
	e.store.ReplaceTask(task)

	e.logger.InfoContext(ctx, "Task decomposed",
		log.FieldOperation, log.OpDecompose,
		log.FieldTaskID, task.ID)
	return task, nil
}

// CreateTransaction validates locally, submits, prepends the server's
// representation, and refreshes the finance summary cache. The refresh is
// mandatory after every successful creation; if it fails the creation still
// succeeded and the previous cached value stands until the next refresh.
func (e *Engine) CreateTransaction(ctx context.Context, description string, amount decimal.Decimal, typ core.TransactionType) (core.Transaction, error) {
	if !e.session.Authenticated() {
		return core.Transaction{}, ErrNotAuthenticated
	}
	description = strings.TrimSpace(description)
	if err := core.ValidateTransaction(description, amount, typ); err != nil {
		return core.Transaction{}, err
	}

	tx, err := e.client.CreateTransaction(ctx, description, amount, typ)
	if err != nil {
		return core.Transaction{}, err
	}
	e.store.PrependTransaction(tx)

	if err := e.summary.Refresh(ctx); err != nil {
		e.logger.WarnContext(ctx, "Summary refresh failed after transaction",
			log.FieldOperation, log.OpRefresh,
			log.FieldTransactionID, tx.ID,
			log.FieldError, err)
	}

	e.logger.InfoContext(ctx, "Transaction created",
		log.FieldOperation, log.OpCreate,
		log.FieldTransactionID, tx.ID,
		log.FieldType, string(tx.Type),
		log.FieldCategory, tx.Category)
	return tx, nil
}
