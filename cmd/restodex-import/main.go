// Command restodex-import loads a Zomato restaurant dump into the catalog store.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/backend"
	"github.com/kailas-cloud/restodex/internal/config"
	"github.com/kailas-cloud/restodex/internal/dataset"
	dombatch "github.com/kailas-cloud/restodex/internal/domain/batch"
	logpkg "github.com/kailas-cloud/restodex/internal/logger"
	ingestuc "github.com/kailas-cloud/restodex/internal/usecase/ingest"
)

type options struct {
	file     string
	replace  bool
	batch    int
	workers  int
	maxShown int
}

func main() {
	var opts options
	flag.StringVar(&opts.file, "file", "restaurants.json", "path to the restaurant dump")
	flag.BoolVar(&opts.replace, "replace", false, "drop existing catalog data before importing")
	flag.IntVar(&opts.batch, "batch", 0, "records per write batch (default from config)")
	flag.IntVar(&opts.workers, "workers", 0, "concurrent batch writers (default from config)")
	flag.IntVar(&opts.maxShown, "show-failed", 20, "max failed records to print")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "restodex-import:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := dataset.ReadFile(opts.file)
	if err != nil {
		return err
	}
	logger.Info("Dataset loaded",
		zap.String("file", opts.file),
		zap.Int("records", len(ds.Records)),
		zap.Int("rejected", len(ds.Rejected)),
	)

	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	batch := cfg.Catalog.ImportBatchSize
	if opts.batch > 0 {
		batch = opts.batch
	}
	workers := cfg.Catalog.ImportWorkers
	if opts.workers > 0 {
		workers = opts.workers
	}

	svc := ingestuc.New(store.Backend, logger).WithBatchSize(batch).WithWorkers(workers)
	report, err := svc.Import(ctx, ds.Records, ds.Rejected, opts.replace)
	if err != nil {
		return err
	}

	printReport(os.Stdout, report, opts.maxShown)
	if report.Count(dombatch.StatusError) > 0 {
		return fmt.Errorf("%d records failed to write", report.Count(dombatch.StatusError))
	}
	return nil
}

func printReport(w io.Writer, report dombatch.Report, maxShown int) {
	_, _ = fmt.Fprintf(w, "imported: %d  skipped: %d  failed: %d\n",
		report.Count(dombatch.StatusOK),
		report.Count(dombatch.StatusSkipped),
		report.Count(dombatch.StatusError),
	)

	failed := report.Failed()
	for i, r := range failed {
		if i == maxShown {
			_, _ = fmt.Fprintf(w, "  ... and %d more\n", len(failed)-maxShown)
			break
		}
		id := r.ID()
		if id == "" {
			id = "(no id)"
		}
		_, _ = fmt.Fprintf(w, "  %-8s %s: %v\n", r.Status(), id, r.Err())
	}
}
