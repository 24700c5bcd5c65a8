package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"moneymanager/internal/cli"
	"moneymanager/internal/core"
	"moneymanager/internal/log"
)

const usage = `usage: moneymanager <command> [flags]

commands:
  add     -type income|expense -amount N -category C -desc D [-date YYYY-MM-DD]
  rm      <id>
  list    [-filter all|income|expense]
  summary [-filter all|income|expense]
  info
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		fmt.Fprint(stderr, usage)
		return 2
	}

	if err := cli.LoadEnvFile(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger := cli.SetupLogger(cfg.LogLevel)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	svc, opened, err := cli.OpenLedger(ctx, logger, cfg)
	if err != nil {
		logger.Error("Failed to open ledger", log.FieldError, err)
		return 1
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("Failed to close ledger", log.FieldError, err)
		}
	}()
	if opened.Discarded != nil {
		fmt.Fprintf(stderr, "warning: saved data was unreadable and has been ignored: %v\n", opened.Discarded)
	}
	for _, w := range opened.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", w)
	}

	cmd := &command{svc: svc, out: stdout}
	switch args[0] {
	case "add":
		err = cmd.add(ctx, args[1:])
	case "rm", "remove":
		err = cmd.remove(ctx, args[1:])
	case "list":
		err = cmd.list(ctx, args[1:])
	case "summary":
		err = cmd.summary(ctx, args[1:])
	case "info":
		err = cmd.info(ctx)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	var perr *core.PersistenceError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &perr):
		// the change is applied in memory but could not be saved
		fmt.Fprintf(stderr, "warning: %v\n", err)
		return 1
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		return 2
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}
