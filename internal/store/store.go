// Package store keeps the in-memory mirror of the server's task and
// transaction collections for the active session. Entries enter the store only
// as the server returned them; the client never stores a locally composed
// payload.
package store

import (
	"sync"

	"tally/internal/core"
)

// Store holds both collections. Creates prepend, so each slice is
// most-recent-created-first regardless of the created_at values, which only
// the feed aggregator looks at.
type Store struct {
	mu           sync.Mutex
	tasks        []core.Task
	transactions []core.Transaction
}

func New() *Store {
	return &Store{}
}

// Tasks returns a copy of the task collection in storage order.
func (s *Store) Tasks() []core.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Task(nil), s.tasks...)
}

// Transactions returns a copy of the transaction collection in storage order.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...)
}

// SetTasks replaces the whole task collection, keeping the server's order.
func (s *Store) SetTasks(tasks []core.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]core.Task(nil), tasks...)
}

// SetTransactions replaces the whole transaction collection.
func (s *Store) SetTransactions(transactions []core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append([]core.Transaction(nil), transactions...)
}

// PrependTask puts a newly created task at the front.
func (s *Store) PrependTask(t core.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]core.Task{t}, s.tasks...)
}

// PrependTransaction puts a newly created transaction at the front.
func (s *Store) PrependTransaction(t core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append([]core.Transaction{t}, s.transactions...)
}

// ReplaceTask swaps the entry with the same id for the server's version,
// keeping its position. Returns false when the id is unknown.
func (s *Store) ReplaceTask(t core.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			s.tasks[i] = t
			return true
		}
	}
	return false
}

// RemoveTask drops the entry with the given id. Returns false when absent.
func (s *Store) RemoveTask(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// TaskByID looks a task up by id.
func (s *Store) TaskByID(id int64) (core.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return core.Task{}, false
}

// Reset empties both collections. Called on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
	s.transactions = nil
}
