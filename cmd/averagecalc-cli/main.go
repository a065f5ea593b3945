// Package main is the CLI entry point for AverageCalc.
// It fetches one sequence, prints it with its average and exits.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/juju/gnuflag"

	"github.com/whhaicheng/AverageCalc/internal/app/usecase"
	"github.com/whhaicheng/AverageCalc/internal/domain/config"
	"github.com/whhaicheng/AverageCalc/internal/domain/execution"
	domainreport "github.com/whhaicheng/AverageCalc/internal/domain/report"
	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
	"github.com/whhaicheng/AverageCalc/internal/infra/logging"
	"github.com/whhaicheng/AverageCalc/internal/infra/report"
	"github.com/whhaicheng/AverageCalc/internal/infra/source"
)

const Version = "1.0.0"

// errInterrupted is returned by resolve when a signal cancels the request.
var errInterrupted = errors.New("interrupted")

// Exit codes.
const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	exitAborted = 130
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		showHelp(stderr)
		return exitUsage
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}

	// Logs go to stderr so stdout stays machine-readable.
	_, closer, err := logging.Setup("averagecalc-cli", cfg.Advanced.LogLevel, cfg.Advanced.LogDir, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}
	defer closer.Close()

	slog.Debug("AverageCalc CLI started", "version", Version, "command", args[0])

	switch args[0] {
	case "version", "-v", "--version":
		fmt.Fprintf(stdout, "AverageCalc CLI v%s\n", Version)
	case "help", "-h", "--help":
		showHelp(stdout)
	case "kinds":
		listKinds(stdout)
	case "fetch":
		return fetch(cfg, args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		showHelp(stderr)
		return exitUsage
	}
	return exitOK
}

func showHelp(w io.Writer) {
	fmt.Fprintf(w, `AverageCalc CLI v%s - fetch a number sequence and compute its average

USAGE:
    averagecalc-cli <command> [flags]

COMMANDS:
    fetch       Fetch a sequence and print it with its average
    kinds       List the available number types
    version     Show version information
    help        Show this help message

FETCH FLAGS:
    --kind, -k     Number type: p, f, e, r or its name (default from config)
    --count, -n    How many numbers to request (default from config)
    --format, -o   Output format: text, markdown, json (default text)
    --chart        Include a bar chart of the values
    --timeout      Remote call timeout, e.g. 5s (default from config)

EXAMPLES:
    averagecalc-cli fetch -k e -n 5
    averagecalc-cli fetch --kind fibonacci --count 10 --format json
`, Version)
}

func listKinds(w io.Writer) {
	for _, kind := range sequence.AllKinds {
		where := "local"
		if kind.IsRemote() {
			where = "remote"
		}
		fmt.Fprintf(w, "%s  %-10s %-18s %s\n", kind.Code(), kind, kind.Label(), where)
	}
}

// fetchOptions holds the parsed fetch flags.
type fetchOptions struct {
	Kind    sequence.SourceKind
	Count   int
	Format  domainreport.ReportFormat
	Chart   bool
	Timeout time.Duration
}

// parseFetchFlags parses fetch flags over the configured defaults.
func parseFetchFlags(cfg *config.Config, args []string, stderr io.Writer) (fetchOptions, error) {
	var (
		kindText  string
		countText string
		format    string
		opts      fetchOptions
	)

	fs := gnuflag.NewFlagSet("fetch", gnuflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&kindText, "kind", cfg.Defaults.Kind.String(), "number type")
	fs.StringVar(&kindText, "k", cfg.Defaults.Kind.String(), "number type")
	fs.StringVar(&countText, "count", fmt.Sprintf("%d", cfg.Defaults.Count), "how many numbers")
	fs.StringVar(&countText, "n", fmt.Sprintf("%d", cfg.Defaults.Count), "how many numbers")
	fs.StringVar(&format, "format", string(domainreport.FormatText), "output format")
	fs.StringVar(&format, "o", string(domainreport.FormatText), "output format")
	fs.BoolVar(&opts.Chart, "chart", false, "include a bar chart")
	fs.DurationVar(&opts.Timeout, "timeout", cfg.Remote.Timeout, "remote call timeout")

	if err := fs.Parse(true, args); err != nil {
		return fetchOptions{}, err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return fetchOptions{}, fmt.Errorf("unexpected arguments: %v", rest)
	}

	kind, err := sequence.ParseKind(kindText)
	if err != nil {
		return fetchOptions{}, err
	}
	count, err := sequence.ParseCount(countText)
	if err != nil {
		return fetchOptions{}, err
	}
	if err := sequence.CheckCount(kind, count, cfg.Limits.MaxCount); err != nil {
		return fetchOptions{}, err
	}
	f, err := domainreport.ParseFormat(format)
	if err != nil {
		return fetchOptions{}, err
	}
	if opts.Timeout <= 0 {
		return fetchOptions{}, fmt.Errorf("timeout must be positive, got %s", opts.Timeout)
	}

	opts.Kind = kind
	opts.Count = count
	opts.Format = f
	return opts, nil
}

func fetch(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFetchFlags(cfg, args, stderr)
	if err != nil {
		if errors.Is(err, gnuflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	remote := cfg.Remote
	remote.Timeout = opts.Timeout
	provider := usecase.NewSequenceUseCase(source.NewDefaultRegistry(remote, nil), nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snap, err := resolve(ctx, provider, opts, cfg.Limits.MaxCount)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, errInterrupted) {
			return exitAborted
		}
		return exitFailed
	}

	rcfg := domainreport.DefaultConfig(opts.Format)
	rcfg.IncludeChart = opts.Chart
	rep, err := report.Render(snap, rcfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}

	if _, err := stdout.Write(rep.Content); err != nil {
		fmt.Fprintf(stderr, "Error: write report: %v\n", err)
		return exitFailed
	}
	if opts.Format == domainreport.FormatJSON {
		fmt.Fprintln(stdout)
	}

	if snap.State == execution.StateFailed {
		return exitFailed
	}
	return exitOK
}

// resolve runs one request through the controller and waits for it to settle.
// Cancelling ctx abandons the request and returns errInterrupted.
func resolve(ctx context.Context, resolver usecase.SequenceResolver, opts fetchOptions, maxCount int) (execution.Snapshot, error) {
	ctrl := usecase.NewRequestController(resolver, usecase.ControllerOptions{MaxCount: maxCount})

	settled := make(chan execution.Snapshot, 1)
	ctrl.Subscribe(func(s execution.Snapshot) {
		if s.State.IsTerminal() {
			settled <- s
		}
	})

	if _, err := ctrl.Run(opts.Kind, opts.Count); err != nil {
		ctrl.Close()
		return execution.Snapshot{}, err
	}

	select {
	case snap := <-settled:
		ctrl.Close()
		return snap, nil
	case <-ctx.Done():
		ctrl.Close()
		return execution.Snapshot{}, errInterrupted
	}
}
