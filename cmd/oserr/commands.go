package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/mutker/oserr/internal/ansi"
	"codeberg.org/mutker/oserr/internal/errors"
	"codeberg.org/mutker/oserr/internal/gpu"
	"codeberg.org/mutker/oserr/internal/journal"
	"codeberg.org/mutker/oserr/internal/netdb"
	"codeberg.org/mutker/oserr/internal/pid"
	"codeberg.org/mutker/oserr/internal/posix"
	"codeberg.org/mutker/oserr/internal/syserr"
)

func newUnlinkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink PATH...",
		Short: "Remove files, reporting every failure",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed error
			for _, path := range args {
				if err := posix.Unlink(path); err != nil {
					failed = a.fail(cmd.Context(), err)
				}
			}
			return failed
		},
	}
}

type strerrorResult struct {
	Domain string `json:"domain"`
	Code   int    `json:"code"`
	Text   string `json:"text"`
}

func newStrerrorCmd(a *app) *cobra.Command {
	var domainName string

	cmd := &cobra.Command{
		Use:   "strerror CODE",
		Short: "Print the text for an error code",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			domain, ok := syserr.ParseDomain(domainName)
			if !ok {
				return errFactory.WithData(errors.ErrUnknownDomain, domainName)
			}

			code, end, err := ansi.Strtol(args[0], 0)
			if err != nil || end != len(args[0]) {
				return errFactory.WithData(errors.ErrInvalidCode, args[0])
			}

			res := strerrorResult{
				Domain: domain.String(),
				Code:   int(code),
				Text:   syserr.Strerror(domain, int(code)),
			}

			return a.emit(res, func(w io.Writer) {
				fmt.Fprintln(w, res.Text)
			})
		},
	}
	cmd.Flags().StringVar(&domainName, "domain", "errno", "Code space (errno, resolver, nvml)")

	return cmd
}

type opResult struct {
	Op   int    `json:"op"`
	Name string `json:"name"`
}

func newOpsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the known operations",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			ops := syserr.Ops()
			res := make([]opResult, 0, len(ops))
			for _, op := range ops {
				res = append(res, opResult{Op: int(op), Name: op.String()})
			}

			return a.emit(res, func(w io.Writer) {
				for _, r := range res {
					fmt.Fprintf(w, "%d\t%s\n", r.Op, r.Name)
				}
			})
		},
	}
}

func newGetenvCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "getenv NAME",
		Short: "Print an environment variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := ansi.Getenv(args[0])
			if err != nil {
				return a.fail(cmd.Context(), err)
			}

			return a.emit(map[string]string{args[0]: value}, func(w io.Writer) {
				fmt.Fprintln(w, value)
			})
		},
	}
}

type strtolResult struct {
	Value int64 `json:"value"`
	End   int   `json:"end"`
}

func newStrtolCmd(a *app) *cobra.Command {
	var base int

	cmd := &cobra.Command{
		Use:   "strtol TEXT",
		Short: "Parse an integer the way strtol does",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, end, err := ansi.Strtol(args[0], base)
			if err != nil {
				return a.fail(cmd.Context(), err)
			}

			res := strtolResult{Value: value, End: end}

			return a.emit(res, func(w io.Writer) {
				fmt.Fprintln(w, res.Value)
			})
		},
	}
	cmd.Flags().IntVar(&base, "base", 10, "Numeric base, 0 to detect from the prefix")

	return cmd
}

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve HOST",
		Short: "Resolve a host name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addrs, err := netdb.Getaddrinfo(cmd.Context(), nil, args[0])
			if err != nil {
				return a.fail(cmd.Context(), err)
			}

			return a.emit(addrs, func(w io.Writer) {
				fmt.Fprintln(w, strings.Join(addrs, "\n"))
			})
		},
	}
}

func newHostnameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hostname",
		Short: "Print the host name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			buf := make([]byte, 256)
			n, err := netdb.Gethostname(buf)
			if err != nil {
				return a.fail(cmd.Context(), err)
			}

			name := string(buf[:n])

			return a.emit(map[string]string{"hostname": name}, func(w io.Writer) {
				fmt.Fprintln(w, name)
			})
		},
	}
}

func newGPUsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "gpus",
		Short: "List NVIDIA GPUs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			devices, err := gpu.List()
			if err != nil {
				return a.fail(cmd.Context(), err)
			}

			return a.emit(devices, func(w io.Writer) {
				for _, d := range devices {
					fmt.Fprintf(w, "%d\t%s\n", d.Index, d.Name)
				}
			})
		},
	}
}

func newJournalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect the failure journal",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, true)
		},
	}
	cmd.AddCommand(newJournalListCmd(a), newJournalPruneCmd(a))

	return cmd
}

func newJournalListCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recorded failures, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := a.journal.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []journal.Entry{}
			}

			return a.emit(entries, func(w io.Writer) {
				for _, e := range entries {
					fmt.Fprintf(w, "%s\t%s\t%s\n", e.Timestamp.Format(time.RFC3339), e.ID, e.Message)
				}
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries, 0 for all")

	return cmd
}

func newJournalPruneCmd(a *app) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old failures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if olderThan <= 0 {
				return errFactory.WithData(errors.ErrInvalidInterval, olderThan)
			}

			lock := filepath.Join(filepath.Dir(a.cfg.JournalDB), "oserr-prune.pid")
			if err := pid.Acquire(lock); err != nil {
				if _, ok := syserr.As(err); ok {
					return a.fail(cmd.Context(), err)
				}
				return err
			}
			defer pid.Release(lock)

			removed, err := a.journal.Prune(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return err
			}

			return a.emit(map[string]int64{"removed": removed}, func(w io.Writer) {
				fmt.Fprintf(w, "removed %d entries\n", removed)
			})
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Age of the entries to delete")

	return cmd
}
