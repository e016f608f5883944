package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/restodex/internal/domain"
	dombatch "github.com/kailas-cloud/restodex/internal/domain/batch"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/metrics"
)

// Import defaults.
const (
	DefaultBatchSize = 500
	DefaultWorkers   = 4
)

// Service loads restaurant records into the catalog store.
type Service struct {
	w         Writer
	batchSize int
	workers   int
	logger    *zap.Logger
}

// New creates an import service.
func New(w Writer, logger *zap.Logger) *Service {
	return &Service{w: w, batchSize: DefaultBatchSize, workers: DefaultWorkers, logger: logger}
}

// WithBatchSize configures how many records go into one pipelined write.
func (s *Service) WithBatchSize(n int) *Service {
	if n > 0 {
		s.batchSize = n
	}
	return s
}

// WithWorkers configures how many batches are written concurrently.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

// Import validates, de-duplicates and stores records, assigning sequence
// numbers in input order. With replace, existing data is dropped first.
// rejected are records the decoder already skipped; they lead the report.
// Per-record failures land in the report; the returned error is reserved for
// failures that stop the whole run.
func (s *Service) Import(
	ctx context.Context, records []restaurant.Restaurant, rejected []dombatch.Result, replace bool,
) (dombatch.Report, error) {
	start := time.Now()

	if replace {
		if err := s.w.Reset(ctx); err != nil {
			return dombatch.Report{}, fmt.Errorf("reset catalog: %w", err)
		}
		s.logger.Info("Catalog reset")
	}
	if err := s.w.EnsureSchema(ctx); err != nil {
		return dombatch.Report{}, fmt.Errorf("ensure schema: %w", err)
	}

	results := make([]dombatch.Result, len(records))
	valid, validIdx := s.screen(records, results)

	if len(valid) > 0 {
		first, err := s.w.ReserveSeq(ctx, len(valid))
		if err != nil {
			return dombatch.Report{}, fmt.Errorf("reserve sequence: %w", err)
		}
		if err := s.write(ctx, valid, validIdx, first, results); err != nil {
			return dombatch.Report{}, err
		}
	}

	all := make([]dombatch.Result, 0, len(rejected)+len(results))
	all = append(all, rejected...)
	report := dombatch.Report{Results: append(all, results...)}
	for _, st := range []dombatch.ItemStatus{dombatch.StatusOK, dombatch.StatusSkipped, dombatch.StatusError} {
		metrics.ImportRecordsTotal.WithLabelValues(string(st)).Add(float64(report.Count(st)))
	}

	s.logger.Info("Import finished",
		zap.Int("records", len(records)+len(rejected)),
		zap.Int("ok", report.Count(dombatch.StatusOK)),
		zap.Int("skipped", report.Count(dombatch.StatusSkipped)),
		zap.Int("errors", report.Count(dombatch.StatusError)),
		zap.Duration("duration", time.Since(start)),
	)
	return report, nil
}

// screen marks invalid and duplicate records as skipped and returns the rest
// together with their positions in records.
func (s *Service) screen(
	records []restaurant.Restaurant, results []dombatch.Result,
) ([]restaurant.Restaurant, []int) {
	valid := make([]restaurant.Restaurant, 0, len(records))
	validIdx := make([]int, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for i := range records {
		r := &records[i]
		if err := r.Validate(); err != nil {
			results[i] = dombatch.NewSkipped(r.ID, err)
			continue
		}
		if _, dup := seen[r.ID]; dup {
			results[i] = dombatch.NewSkipped(r.ID, fmt.Errorf("%w: duplicate id %s", domain.ErrInvalidRecord, r.ID))
			continue
		}
		seen[r.ID] = struct{}{}
		valid = append(valid, *r)
		validIdx = append(validIdx, i)
	}
	return valid, validIdx
}

// write stores valid records in batches on a bounded worker pool. A failed
// batch marks its records as errors without stopping the others.
func (s *Service) write(
	ctx context.Context, valid []restaurant.Restaurant, validIdx []int,
	firstSeq int64, results []dombatch.Result,
) error {
	var g errgroup.Group
	g.SetLimit(s.workers)

	for lo := 0; lo < len(valid); lo += s.batchSize {
		hi := min(lo+s.batchSize, len(valid))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunk := valid[lo:hi]
			_, err := s.w.Save(ctx, chunk, firstSeq+int64(lo))
			for j := lo; j < hi; j++ {
				if err != nil {
					results[validIdx[j]] = dombatch.NewError(valid[j].ID, err)
				} else {
					results[validIdx[j]] = dombatch.NewOK(valid[j].ID)
				}
			}
			if err != nil {
				s.logger.Warn("Batch write failed",
					zap.Int("from", lo), zap.Int("to", hi), zap.Error(err))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("import interrupted: %w", err)
	}
	return nil
}
