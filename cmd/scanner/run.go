package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/goran-ethernal/ChainScanner/internal/common"
	"github.com/goran-ethernal/ChainScanner/internal/config"
	"github.com/goran-ethernal/ChainScanner/internal/logger"
	"github.com/goran-ethernal/ChainScanner/internal/metrics"
	"github.com/goran-ethernal/ChainScanner/internal/registry"
	"github.com/goran-ethernal/ChainScanner/internal/rpc"
	"github.com/goran-ethernal/ChainScanner/internal/scanner"
	"github.com/goran-ethernal/ChainScanner/internal/store"
	pkgconfig "github.com/goran-ethernal/ChainScanner/pkg/config"
	pkgscanner "github.com/goran-ethernal/ChainScanner/pkg/scanner"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	errDegraded    = errors.New("run completed with write errors")
	errInterrupted = errors.New("run interrupted")
)

const shutdownTimeout = 5 * time.Second

func runScan(cmd *cobra.Command, _ []string) error {
	fmt.Printf(banner, version)

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	selected, err := selectScanners(cfg, startBlock, endBlock, only)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewComponentLoggerFromConfig(common.ComponentCLI, cfg.Logging)

	metricsServer := metrics.NewServer(cfg.Metrics,
		logger.NewComponentLoggerFromConfig(common.ComponentMetrics, cfg.Logging))
	if err := metricsServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := metricsServer.Stop(shutdownCtx); err != nil {
			log.Warnw("failed to stop metrics server", "error", err)
		}
	}()

	log.Infow("connecting to RPC source", "url", cfg.Source.URL, "protocol", cfg.Source.Protocol)
	src, err := rpc.NewClient(ctx, cfg.Source,
		logger.NewComponentLoggerFromConfig(common.ComponentRPCSource, cfg.Logging))
	if err != nil {
		metrics.ComponentHealthSet(common.ComponentRPCSource, false)
		return fmt.Errorf("failed to connect to RPC source: %w", err)
	}
	defer src.Close()
	metrics.ComponentHealthSet(common.ComponentRPCSource, true)

	st, err := store.Open(ctx, cfg.Store, logger.NewComponentLoggerFromConfig(common.ComponentStore, cfg.Logging))
	if err != nil {
		metrics.ComponentHealthSet(common.ComponentStore, false)
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warnw("failed to close store", "error", err)
		}
	}()
	metrics.ComponentHealthSet(common.ComponentStore, true)

	contracts, err := registry.FromConfig(cfg.Registry)
	if err != nil {
		return fmt.Errorf("failed to build contract registry: %w", err)
	}

	loopLog := logger.NewComponentLoggerFromConfig(common.ComponentScanLoop, cfg.Logging)
	loops := make([]*scanner.Loop, 0, len(selected))
	for _, sc := range selected {
		strategy, err := pkgscanner.Create(sc, contracts, loopLog)
		if err != nil {
			return fmt.Errorf("scanner %s: %w", sc.Name, err)
		}

		loop, err := scanner.New(sc, strategy, src, st, loopLog, scanner.WithSharedKind(cfg.SharesKind(sc.Name)))
		if err != nil {
			return err
		}
		loops = append(loops, loop)

		log.Infow("scanner ready", "scanner", sc.Name, "kind", sc.Kind, "run_id", loop.RunID())
	}

	reports := make([]scanner.RunReport, len(loops))
	failures := make([]error, len(loops))

	// Scanners are independent: one failing does not stop the others.
	var g errgroup.Group
	for i, loop := range loops {
		g.Go(func() error {
			reports[i], failures[i] = loop.Run(ctx)
			return nil
		})
	}
	_ = g.Wait()

	return summarize(ctx, log, reports, failures)
}

// summarize logs one line per scanner and maps the outcome to the run error.
func summarize(ctx context.Context, log *logger.Logger, reports []scanner.RunReport, failures []error) error {
	var (
		fatal    []error
		degraded bool
	)

	for i, r := range reports {
		fields := []any{
			"scanner", r.Scanner,
			"run_id", r.RunID,
			"from", r.First,
			"to", r.Ceiling,
			"last_block", r.LastBlock,
			"windows", r.Windows,
			"inserted", r.Inserted,
			"conflicts", r.Conflicts,
			"other_errors", r.OtherErrors,
			"decode_failures", r.DecodeFailures,
			"map_failures", r.MapFailures,
		}

		switch err := failures[i]; {
		case err != nil:
			log.Errorw("scanner failed", append(fields, "error", err)...)
			fatal = append(fatal, err)
		case r.Degraded():
			log.Warnw("scanner finished degraded", append(fields, "errors", r.Errors)...)
			degraded = true
		default:
			log.Infow("scanner finished", fields...)
		}
	}

	switch {
	case ctx.Err() != nil:
		return errInterrupted
	case len(fatal) > 0:
		return errors.Join(fatal...)
	case degraded:
		return errDegraded
	default:
		return nil
	}
}

// selectScanners applies the command line range overrides and name filter.
func selectScanners(cfg *pkgconfig.Config, start, end, names string) ([]pkgconfig.ScannerConfig, error) {
	startN, err := common.ParseBlockFlag("start-block", start)
	if err != nil {
		return nil, err
	}
	endN, err := common.ParseBlockFlag("end-block", end)
	if err != nil {
		return nil, err
	}

	wanted := common.SplitList(names)
	for _, name := range wanted {
		if _, ok := cfg.Scanner(name); !ok {
			return nil, fmt.Errorf("unknown scanner %q", name)
		}
	}

	var selected []pkgconfig.ScannerConfig
	for _, sc := range cfg.Scanners {
		if len(wanted) > 0 && !slices.Contains(wanted, sc.Name) {
			continue
		}
		if startN != 0 {
			sc.StartBlock = startN
		}
		if endN != 0 {
			sc.EndBlock = endN
		}
		selected = append(selected, sc)
	}

	return selected, nil
}
