package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// QuotePurger deletes expired route quotes.
type QuotePurger interface {
	Purge(ctx context.Context) (int64, error)
}

// RouteCachePurgeJob removes expired route quotes hourly.
type RouteCachePurgeJob struct {
	purger QuotePurger
	cron   *cron.Cron
	logger *slog.Logger
}

func NewRouteCachePurgeJob(purger QuotePurger, logger *slog.Logger) *RouteCachePurgeJob {
	return &RouteCachePurgeJob{
		purger: purger,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "route_cache_purge_job"),
	}
}

// Start begins the purge job to run at the top of every hour.
func (j *RouteCachePurgeJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() { j.Run(context.Background()) })
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Route cache purge job started (running hourly)")
	return nil
}

func (j *RouteCachePurgeJob) Run(ctx context.Context) {
	n, err := j.purger.Purge(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Route cache purge job failed", "error", err)
		return
	}
	if n > 0 {
		j.logger.InfoContext(ctx, "Route cache purged", "removed", n)
	}
}

func (j *RouteCachePurgeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Route cache purge job stopped")
}
