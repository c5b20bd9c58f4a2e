package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"codeberg.org/mutker/oserr/internal/config"
	"codeberg.org/mutker/oserr/internal/errors"
	"codeberg.org/mutker/oserr/internal/journal"
	"codeberg.org/mutker/oserr/internal/logger"
	"codeberg.org/mutker/oserr/internal/syserr"
)

// errReported means the failure was already printed and logged.
var errReported = stderrors.New("failure reported")

var errFactory = errors.New()

type app struct {
	cfg     *config.Config
	journal journal.Recorder
	out     io.Writer
	errOut  io.Writer
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	a := &app{out: os.Stdout, errOut: os.Stderr}
	if err := run(ctx, a, os.Args[1:]); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(a.errOut, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

// run executes one command line and closes the journal afterwards, also
// when the command failed.
func run(ctx context.Context, a *app, args []string) error {
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)

	return multierr.Append(err, a.teardown())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "oserr",
		Short:         "Run system primitives and report their failures",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, false)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newUnlinkCmd(a),
		newStrerrorCmd(a),
		newOpsCmd(a),
		newGetenvCmd(a),
		newStrtolCmd(a),
		newResolveCmd(a),
		newHostnameCmd(a),
		newGPUsCmd(a),
		newJournalCmd(a),
	)

	return root
}

// setup loads the configuration and opens the journal. withJournal opens
// it even when recording is disabled.
func (a *app) setup(cmd *cobra.Command, withJournal bool) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger.Init(cfg.LogLevel.String(), logger.IsService())
	logger.Debug().Str("command", cmd.Name()).Msg("Config loaded")

	rec, err := journal.NewService(journal.Config{
		DBPath:       cfg.JournalDB,
		BatchSize:    cfg.JournalBatchSize,
		BatchTimeout: cfg.JournalBatchTimeout,
		Enabled:      cfg.Journal || withJournal,
	}, logger.Default())
	if err != nil {
		return err
	}
	a.journal = rec

	return nil
}

func (a *app) teardown() error {
	if a.journal == nil {
		return nil
	}

	err := a.journal.Close()
	a.journal = nil
	if err != nil {
		var appErr errors.Error
		if errors.As(err, &appErr) {
			logger.ErrorWithContext(appErr, "journal", "close").Msg("Failed to close journal")
		}
	}

	return err
}

// fail reports err. Translated system errors are logged with their
// fields, journaled and printed as "Error: <message>".
func (a *app) fail(ctx context.Context, err error) error {
	e, ok := syserr.As(err)
	if !ok {
		return err
	}

	logger.SysError(e).Msg("System call failed")
	if a.journal != nil {
		if jerr := a.journal.Record(ctx, e); jerr != nil {
			logger.Warn().Err(jerr).Msg("Failed to journal failure")
		}
	}

	fmt.Fprintf(a.errOut, "Error: %s\n", e.Error())

	return errReported
}

// emit writes v as JSON when configured, otherwise calls text.
func (a *app) emit(v any, text func(w io.Writer)) error {
	if a.cfg != nil && a.cfg.JSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return errFactory.Wrap(errors.ErrEncodeOutput, err)
		}
		return nil
	}

	text(a.out)

	return nil
}
