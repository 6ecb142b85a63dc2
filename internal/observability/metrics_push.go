package observability

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/riskibarqy/hiking-league/internal/config"
	"github.com/riskibarqy/hiking-league/internal/platform/logging"
)

// PushMetrics sends everything registered in gatherer to the configured
// Pushgateway under the given job name. Batch commands call it once before
// exiting; it is a no-op when no gateway is configured.
func PushMetrics(ctx context.Context, cfg config.Config, job string, gatherer prometheus.Gatherer, logger *logging.Logger) error {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MetricsPushURL == "" {
		logger.DebugContext(ctx, "metrics push skipped", "reason", "METRICS_PUSHGATEWAY_URL empty")
		return nil
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	err := push.New(cfg.MetricsPushURL, job).
		Gatherer(gatherer).
		Grouping("service", cfg.ServiceName).
		Grouping("env", cfg.AppEnv).
		PushContext(ctx)
	if err != nil {
		return crerr.Wrapf(err, "push metrics to %s", cfg.MetricsPushURL)
	}

	logger.InfoContext(ctx, "metrics pushed", "gateway", cfg.MetricsPushURL, "job", job)
	return nil
}
