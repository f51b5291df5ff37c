package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/kakuyomu"
	"github.com/fwojciec/kakuyomu/goquery"
	kakuhttp "github.com/fwojciec/kakuyomu/http"
	"github.com/fwojciec/kakuyomu/rod"
	"github.com/fwojciec/kakuyomu/site"
	kakuslog "github.com/fwojciec/kakuyomu/slog"
	"github.com/fwojciec/kakuyomu/tool"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher replaces the HTTP or browser fetcher. Set before calling Run().
	Fetcher kakuyomu.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("kakuyomu"),
		kong.Description("Read works, episodes and rankings from kakuyomu.jp"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'kakuyomu --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher, err = newFetcher(cli)
		if err != nil {
			return err
		}
	}
	fetcher = kakuslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	svc := &site.Service{
		Fetcher:     fetcher,
		States:      goquery.NewNextDataExtractor(),
		Scraper:     goquery.NewRankingScraper(),
		Bodies:      goquery.NewBodyExtractor(),
		BaseURL:     cli.BaseURL,
		Concurrency: cli.Concurrency,
	}
	deps.Service = kakuslog.NewLoggingService(svc, logger)
	deps.Tools = tool.NewRegistry(deps.Service)

	return kongCtx.Run(deps)
}

func newFetcher(cli *CLI) (kakuyomu.Fetcher, error) {
	if cli.Browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		return f, nil
	}
	return kakuhttp.NewFetcher(
		kakuhttp.WithTimeout(cli.Timeout),
		kakuhttp.WithUserAgent(cli.UserAgent),
		kakuhttp.WithRateLimit(cli.RPS),
	), nil
}
