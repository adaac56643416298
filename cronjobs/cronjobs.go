package cronjobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"go-kiezmap/logger"
)

const warmupTimeout = 30 * time.Second

// Refresher re-fetches the slow-changing upstream values and reports how many were refreshed.
type Refresher interface {
	Refresh(ctx context.Context) int
}

// CrimeWarmer loads and memoizes the crime table.
type CrimeWarmer interface {
	Warm(ctx context.Context) int
}

// Warmup runs one refresh pass. It is called at startup and by the scheduled job.
func Warmup(ctx context.Context, gw Refresher, crime CrimeWarmer, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(ctx, warmupTimeout)
	defer cancel()

	start := time.Now()
	refreshed := gw.Refresh(ctx)
	rows := 0
	if crime != nil {
		rows = crime.Warm(ctx)
	}
	log.Info("cache warm-up finished",
		"refreshed", refreshed,
		"crime_rows", rows,
		"duration", time.Since(start).String())
}

// InitCronJobs schedules Warmup. An empty schedule disables the job and returns a nil scheduler.
func InitCronJobs(schedule string, gw Refresher, crime CrimeWarmer, log *logger.Logger) (*cron.Cron, error) {
	log = log.With("component", "CronJobs")
	if schedule == "" {
		log.Info("warm-up schedule not set, cron jobs disabled")
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		log.Debug("CronJob: cache warm-up running")
		Warmup(context.Background(), gw, crime, log)
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling cache warm-up %q: %w", schedule, err)
	}

	c.Start()
	log.Info("cron jobs started", "schedule", schedule)
	return c, nil
}
