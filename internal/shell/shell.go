// Package shell is the interactive surface: a prompt bound to the input mode
// machine, plus commands for the feed, task actions, and the session.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tally/internal/core"
	"tally/internal/engine"
	"tally/internal/feed"
	"tally/internal/inputmode"
	"tally/internal/log"
	"tally/internal/session"
	"tally/internal/store"
	"tally/internal/summary"
)

// Shell reads lines from in and writes rendered output to out. Plain text is
// submitted under the current input mode; lines starting with ':' are
// commands.
type Shell struct {
	session *session.Manager
	engine  *engine.Engine
	store   *store.Store
	summary *summary.Cache
	machine *inputmode.Machine
	logger  *log.Logger
	in      io.Reader
	out     io.Writer
}

func New(sess *session.Manager, eng *engine.Engine, st *store.Store, cache *summary.Cache, logger *log.Logger, in io.Reader, out io.Writer) *Shell {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Shell{
		session: sess,
		engine:  eng,
		store:   st,
		summary: cache,
		machine: inputmode.NewMachine(),
		logger:  logger.WithComponent(log.ComponentShell),
		in:      in,
		out:     out,
	}
}

// Run processes input until :quit, :logout, EOF, or context cancellation.
func (s *Shell) Run(ctx context.Context) error {
	s.printf("Type :help for commands. %s\n", s.machine.Placeholder())

	scanner := bufio.NewScanner(s.in)
	s.prompt()
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			s.prompt()
			continue
		}

		if quit := s.handleLine(ctx, line); quit {
			return nil
		}
		s.prompt()
	}
	return scanner.Err()
}

func (s *Shell) prompt() {
	s.printf("tally[%s]> ", s.machine.Mode())
}

func (s *Shell) handleLine(ctx context.Context, line string) (quit bool) {
	if !strings.HasPrefix(line, ":") {
		s.submit(ctx, line)
		return false
	}

	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case ":task", ":income", ":expense":
		if err := s.machine.Select(inputmode.Mode(strings.TrimPrefix(cmd, ":"))); err != nil {
			s.printf("error: %v\n", err)
			return false
		}
		s.printf("%s\n", s.machine.Placeholder())
	case ":feed":
		s.renderFeed()
	case ":tasks":
		s.renderTasks()
	case ":summary":
		s.renderSummary()
	case ":whoami":
		s.renderUser()
	case ":done":
		s.setCompletion(ctx, args, true)
	case ":undo":
		s.setCompletion(ctx, args, false)
	case ":rm":
		if id, ok := s.parseID(args); ok {
			if err := s.engine.DeleteTask(ctx, id); err != nil {
				s.printf("error: %v\n", err)
				return false
			}
			s.printf("deleted task %d\n", id)
		}
	case ":split":
		if id, ok := s.parseID(args); ok {
			task, err := s.engine.DecomposeTask(ctx, id)
			if err != nil {
				s.printf("error: %v\n", err)
				return false
			}
			s.renderTask(task.ID)
		}
	case ":logout":
		s.session.Clear(ctx)
		s.printf("logged out\n")
		return true
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		s.renderHelp()
	default:
		s.printf("unknown command %s (try :help)\n", cmd)
	}
	return false
}

// submit routes a plain line through the input mode machine. Outside task
// mode the first field is the amount and the rest the description.
func (s *Shell) submit(ctx context.Context, line string) {
	if s.machine.RequiresAmount() {
		amount, text, found := strings.Cut(line, " ")
		if !found {
			s.printf("error: %s entries need an amount and a description, e.g. %s\n",
				s.machine.Mode(), s.machine.Placeholder())
			return
		}
		s.machine.SetAmount(amount)
		s.machine.SetText(strings.TrimSpace(text))
	} else {
		s.machine.SetText(line)
	}

	result, err := s.machine.Submit(ctx, s.engine)
	if err != nil {
		s.printf("error: %v\n", err)
		return
	}

	switch {
	case result.Task != nil:
		s.printf("added task %d [%s] %s\n", result.Task.ID, result.Task.Priority, result.Task.Title)
	case result.Transaction != nil:
		tx := result.Transaction
		s.printf("recorded %s %s (%s) %s\n", tx.Type, tx.Amount, tx.Category, tx.Description)
		s.renderSummary()
	}
}

func (s *Shell) setCompletion(ctx context.Context, args []string, target bool) {
	id, ok := s.parseID(args)
	if !ok {
		return
	}
	task, err := s.engine.SetTaskCompletion(ctx, id, target)
	if err != nil {
		s.printf("error: %v\n", err)
		return
	}
	s.renderTask(task.ID)
}

func (s *Shell) parseID(args []string) (int64, bool) {
	if len(args) != 1 {
		s.printf("error: expected exactly one task id\n")
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		s.printf("error: invalid task id %q\n", args[0])
		return 0, false
	}
	return id, true
}

func (s *Shell) renderFeed() {
	items := feed.Build(s.store.Tasks(), s.store.Transactions())
	if len(items) == 0 {
		s.printf("nothing here yet\n")
		return
	}
	for _, item := range items {
		when := item.CreatedAt.Format("Jan 02 15:04")
		switch item.Kind {
		case feed.KindTask:
			t := item.Task
			s.printf("%s  %s #%d [%s] %s%s\n", when, checkbox(t.IsCompleted), t.ID, t.Priority, t.Title, subtaskNote(len(t.Subtasks)))
		case feed.KindTransaction:
			tx := item.Transaction
			s.printf("%s  %s #%d %s %s (%s)\n", when, sign(tx.Type == core.Income), tx.ID, tx.Amount, tx.Description, tx.Category)
		}
	}
}

func (s *Shell) renderTasks() {
	tasks := s.store.Tasks()
	if len(tasks) == 0 {
		s.printf("no tasks\n")
		return
	}
	for _, t := range tasks {
		s.printf("%s #%d [%s] %s\n", checkbox(t.IsCompleted), t.ID, t.Priority, t.Title)
		for i, sub := range t.Subtasks {
			s.printf("    %d. %s\n", i+1, sub)
		}
	}
}

func (s *Shell) renderTask(id int64) {
	t, ok := s.store.TaskByID(id)
	if !ok {
		return
	}
	s.printf("%s #%d [%s] %s\n", checkbox(t.IsCompleted), t.ID, t.Priority, t.Title)
	for i, sub := range t.Subtasks {
		s.printf("    %d. %s\n", i+1, sub)
	}
}

func (s *Shell) renderSummary() {
	v := s.summary.Get()
	s.printf("income %s | expense %s | balance %s\n", v.TotalIncome, v.TotalExpense, v.NetBalance)
}

func (s *Shell) renderUser() {
	user, ok := s.session.User()
	if !ok {
		s.printf("not logged in\n")
		return
	}
	s.printf("%s (streak %d)\n", user.Email, user.Streak)
}

func (s *Shell) renderHelp() {
	s.printf(`:task :income :expense  switch what typed entries become
:feed                   merged activity feed, newest first
:tasks                  task list with subtasks
:summary                income/expense/balance
:done ID  :undo ID      set task completion
:rm ID                  delete a task
:split ID               ask the server for a subtask breakdown
:whoami                 current account
:logout                 clear the session and exit
:quit                   exit, keeping the session
`)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func sign(income bool) string {
	if income {
		return "+"
	}
	return "-"
}

func subtaskNote(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf(" (%d subtasks)", n)
}
