package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"tally/internal/cli"
	"tally/internal/engine"
	"tally/internal/log"
	"tally/internal/session"
	"tally/internal/shell"
	"tally/internal/store"
	"tally/internal/summary"
)

// app bundles everything a command needs after bootstrap.
type app struct {
	logger  *log.Logger
	session *session.Manager
	engine  *engine.Engine
	store   *store.Store
	summary *summary.Cache
	cleanup func()
}

func newApp() *app {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	tokens := cli.InitTokenStore(logger, cfg.DBPath)
	client := cli.NewAPIClient(cfg, logger)

	st := store.New()
	cache := summary.NewCache(client)
	sess := session.NewManager(client, tokens, logger, st, cache)
	eng := engine.New(client, st, cache, sess, logger)

	return &app{
		logger:  logger,
		session: sess,
		engine:  eng,
		store:   st,
		summary: cache,
		cleanup: func() { tokens.Close() },
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:   "tally",
		Short: "Unified task and finance feed",
		Long:  "tally keeps tasks and financial transactions in one chronological activity feed, backed by the remote tally service.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(ctx)
		},
		SilenceUsage: true,
	}
	root.AddCommand(loginCmd(ctx), signupCmd(ctx), logoutCmd(ctx))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runShell(ctx context.Context) error {
	a := newApp()
	defer a.cleanup()

	resumed, err := a.session.Resume(ctx)
	if err != nil {
		return err
	}
	if !resumed {
		if err := promptLogin(ctx, a.session); err != nil {
			return err
		}
	}

	if err := a.engine.Bootstrap(ctx); err != nil {
		// A partial initial load is survivable; the session itself is intact.
		a.logger.Warn("Continuing with incomplete initial load", log.FieldError, err)
	}

	if user, ok := a.session.User(); ok {
		fmt.Printf("Welcome back, %s (streak %d).\n", user.Email, user.Streak)
	}

	sh := shell.New(a.session, a.engine, a.store, a.summary, a.logger, os.Stdin, os.Stdout)
	return sh.Run(ctx)
}

func promptLogin(ctx context.Context, sess *session.Manager) error {
	reader := bufio.NewReader(os.Stdin)
	email, err := promptField(reader, "Email: ")
	if err != nil {
		return err
	}
	password, err := promptField(reader, "Password: ")
	if err != nil {
		return err
	}
	return sess.Login(ctx, email, password)
}

func promptField(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	value, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}
