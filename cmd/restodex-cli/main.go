// Command restodex-cli browses a restodex server from the terminal.
//
// Usage:
//
//	restodex-cli [-server URL] [-api-key KEY] <command> [flags]
//
// Commands: list, browse, show, near, search, health.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	restodex "github.com/kailas-cloud/restodex/pkg/sdk"
)

const usage = `usage: restodex-cli [-server URL] [-api-key KEY] [-v] <command> [flags]

commands:
  list    [-page N] [-limit N] [-search TEXT]   print one listing page
  browse  [-limit N] [-search TEXT]             page through the listing (n, p, r, q)
  show    ID                                    print one restaurant
  near    -lat LAT -lon LON [-radius KM]        restaurants near a point
  search  -mode name|location|image ...        submit the search form
  health                                        server health
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case errors.Is(err, errUsage):
		os.Exit(2)
	case err != nil:
		fmt.Fprintln(os.Stderr, "restodex-cli:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("restodex-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { _, _ = io.WriteString(stderr, usage) }

	server := fs.String("server", envOr("RESTODEX_URL", "http://localhost:8080"), "restodex server base URL")
	apiKey := fs.String("api-key", os.Getenv("RESTODEX_API_KEY"), "bearer API key")
	timeout := fs.Duration("timeout", 10*time.Second, "per-request timeout")
	verbose := fs.Bool("v", false, "log every request to stderr")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	opts := []restodex.Option{restodex.WithTimeout(*timeout), restodex.WithAPIKey(*apiKey)}
	if *verbose {
		opts = append(opts, restodex.WithLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}
	client, err := restodex.New(*server, opts...)
	if err != nil {
		return err
	}

	a := &app{client: client, in: stdin, out: stdout, errOut: stderr}
	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "list":
		return a.list(ctx, rest)
	case "browse":
		return a.browse(ctx, rest)
	case "show":
		return a.show(ctx, rest)
	case "near":
		return a.near(ctx, rest)
	case "search":
		return a.search(ctx, rest)
	case "health":
		return a.health(ctx)
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return errUsage
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
