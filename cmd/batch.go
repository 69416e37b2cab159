package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/intel-engine/internal/intel"
	"github.com/sells-group/intel-engine/internal/model"
)

var (
	batchFile  string
	batchLimit int
	batchOut   string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Process many customer data records concurrently",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		records, err := loadBatchRecords(batchFile)
		if err != nil {
			return err
		}

		processor, err := intel.New(cfg.Anthropic)
		if err != nil {
			return err
		}

		reports, err := processBatch(ctx, records, batchLimit, cfg.Batch.MaxConcurrentAccounts, cfg.Batch.RequestsPerSecond,
			func(ctx context.Context, data model.CustomerData) (*model.IntelligenceReport, error) {
				return processor.ProcessCustomerData(ctx, data)
			})
		if err != nil {
			return err
		}

		out := os.Stdout
		if batchOut != "" {
			f, createErr := os.Create(batchOut)
			if createErr != nil {
				return eris.Wrap(createErr, "create output file")
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "file with a list of customer data records, JSON or YAML (required)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of records to process (0 = all)")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "write reports to this file instead of stdout")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}

// loadBatchRecords reads a list of CustomerData records from a JSON or YAML file.
func loadBatchRecords(path string) ([]model.CustomerData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "read batch file")
	}

	var records []model.CustomerData
	if isYAMLPath(path) {
		if err := yaml.Unmarshal(raw, &records); err != nil {
			return nil, eris.Wrap(err, "parse batch yaml")
		}
	} else {
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, eris.Wrap(err, "parse batch json")
		}
	}

	return records, nil
}

// processFunc is the callback signature for processing one customer record.
type processFunc func(ctx context.Context, data model.CustomerData) (*model.IntelligenceReport, error)

// processBatch applies limit, then processes records concurrently under a
// shared request-rate ceiling. Individual failures are logged and skipped;
// the batch itself only fails on cancellation.
func processBatch(ctx context.Context, records []model.CustomerData, limit, concurrency int, rps float64, process processFunc) ([]*model.IntelligenceReport, error) {
	if len(records) == 0 {
		zap.L().Info("no records to process")
		return []*model.IntelligenceReport{}, nil
	}

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	limiter := rate.NewLimiter(rate.Limit(rps), 1)
	if rps <= 0 {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	zap.L().Info("processing batch",
		zap.Int("records", len(records)),
		zap.Int("concurrency", concurrency),
		zap.Float64("requests_per_second", rps),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	reports := make([]*model.IntelligenceReport, len(records))
	var succeeded, failed atomic.Int64

	for i, record := range records {
		g.Go(func() error {
			log := zap.L().With(zap.String("company", record.CompanyName))

			if err := limiter.Wait(gctx); err != nil {
				return err // context canceled
			}

			report, err := process(gctx, record)
			if err != nil {
				failed.Add(1)
				log.Error("processing failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			succeeded.Add(1)
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "batch canceled")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)

	// Compact out failed slots.
	out := make([]*model.IntelligenceReport, 0, len(reports))
	for _, r := range reports {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}
