// Package feed derives the merged activity view from the entity store. The
// feed is never stored; it is recomputed from the current collections on every
// read.
package feed

import (
	"sort"
	"time"

	"tally/internal/core"
)

const (
	KindTask        Kind = "task"
	KindTransaction Kind = "transaction"
)

type (
	Kind string

	// Item is a tagged union over Task and Transaction. Exactly one of the
	// two pointers is set, matching Kind.
	Item struct {
		Kind        Kind
		CreatedAt   time.Time
		Task        *core.Task
		Transaction *core.Transaction
	}
)

// Build concatenates both collections and sorts by created_at descending.
// The sort is stable, so ties keep concatenation order (tasks first, each
// collection in store order) and the result is deterministic for a given
// store state. Inputs are never mutated.
func Build(tasks []core.Task, transactions []core.Transaction) []Item {
	items := make([]Item, 0, len(tasks)+len(transactions))
	for i := range tasks {
		t := tasks[i]
		items = append(items, Item{Kind: KindTask, CreatedAt: t.CreatedAt, Task: &t})
	}
	for i := range transactions {
		tx := transactions[i]
		items = append(items, Item{Kind: KindTransaction, CreatedAt: tx.CreatedAt, Transaction: &tx})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	return items
}
