package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/riskibarqy/hiking-league/internal/app"
	"github.com/riskibarqy/hiking-league/internal/config"
	"github.com/riskibarqy/hiking-league/internal/observability"
	"github.com/riskibarqy/hiking-league/internal/platform/logging"
	"github.com/riskibarqy/hiking-league/internal/usecase"
	"go.uber.org/zap/zapcore"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}

	input, err := parseFlags(args, cfg.RecalcWorkers, stderr)
	if err != nil {
		return 2
	}

	logger := logging.NewJSONWriter(cfg.LogLevel, zapcore.Lock(zapcore.AddSync(stderr))).Named("recalculate")
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("shutdown uptrace", "error", err)
		}
	}()

	stopProfiling, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return 1
	}
	defer func() {
		if err := stopProfiling(); err != nil {
			logger.Warn("stop pyroscope", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.Warn("close app", "error", err)
		}
	}()

	result, runErr := container.Recalculation.Recalculate(ctx, input)

	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := observability.PushMetrics(pushCtx, cfg, "recalculate", prometheus.DefaultGatherer, logger); err != nil {
		logger.Warn("push metrics", "error", err)
	}

	if result.RunID != "" {
		out, err := sonic.ConfigStd.MarshalIndent(result, "", "  ")
		if err != nil {
			logger.Error("encode result", "error", err)
			return 1
		}
		fmt.Fprintln(stdout, string(out))
	}

	if runErr != nil {
		logger.Error("recalculation failed", "error", runErr)
		return 1
	}
	if result.FailedCount > 0 {
		return 3
	}
	return 0
}

func parseFlags(args []string, defaultWorkers int, output io.Writer) (usecase.RecalculationInput, error) {
	fs := flag.NewFlagSet("recalculate", flag.ContinueOnError)
	fs.SetOutput(output)

	var input usecase.RecalculationInput
	fs.StringVar(&input.VisitID, "visit", "", "recalculate a single visit by id")
	fs.IntVar(&input.Season, "season", 0, "limit to one season (0 = current season)")
	fs.BoolVar(&input.AllSeasons, "all-seasons", false, "recalculate every season instead of the current one")
	fs.StringVar(&input.UserID, "user", "", "limit to visits of one user")
	fs.IntVar(&input.MaxWorkers, "workers", defaultWorkers, "number of concurrent workers")
	fs.BoolVar(&input.DryRun, "dry-run", false, "compute scores without writing or publishing")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: recalculate [flags]\n\nRescores approved visits with the active scoring config.\nExit codes: 0 ok, 1 error, 2 usage, 3 some visits failed.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return usecase.RecalculationInput{}, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %v", fs.Args())
		fmt.Fprintln(output, err)
		fs.Usage()
		return usecase.RecalculationInput{}, err
	}
	if input.Season < 0 {
		err := fmt.Errorf("-season must be >= 0")
		fmt.Fprintln(output, err)
		return usecase.RecalculationInput{}, err
	}
	if input.Season > 0 && input.AllSeasons {
		err := fmt.Errorf("-season and -all-seasons are exclusive")
		fmt.Fprintln(output, err)
		return usecase.RecalculationInput{}, err
	}
	return input, nil
}
