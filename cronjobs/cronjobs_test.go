package cronjobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go-kiezmap/logger"
)

type countingRefresher struct{ calls atomic.Int32 }

func (r *countingRefresher) Refresh(ctx context.Context) int {
	if _, ok := ctx.Deadline(); !ok {
		panic("refresh without deadline")
	}
	r.calls.Add(1)
	return 3
}

type countingWarmer struct{ calls atomic.Int32 }

func (w *countingWarmer) Warm(context.Context) int {
	w.calls.Add(1)
	return 12
}

func TestWarmup(t *testing.T) {
	r, w := &countingRefresher{}, &countingWarmer{}
	Warmup(context.Background(), r, w, logger.Nop())
	if r.calls.Load() != 1 || w.calls.Load() != 1 {
		t.Fatalf("Warmup: want one call each, got refresh=%d warm=%d", r.calls.Load(), w.calls.Load())
	}
	Warmup(context.Background(), r, nil, logger.Nop())
	if r.calls.Load() != 2 {
		t.Fatalf("Warmup without crime warmer: refresh=%d", r.calls.Load())
	}
}

func TestInitCronJobsDisabled(t *testing.T) {
	c, err := InitCronJobs("", &countingRefresher{}, nil, logger.Nop())
	if err != nil || c != nil {
		t.Fatalf("InitCronJobs(\"\"): want nil scheduler and no error, got %v %v", c, err)
	}
}

func TestInitCronJobsInvalidSchedule(t *testing.T) {
	if _, err := InitCronJobs("every now and then", &countingRefresher{}, nil, logger.Nop()); err == nil {
		t.Fatalf("InitCronJobs: want error for invalid schedule")
	}
}

func TestInitCronJobsRuns(t *testing.T) {
	r := &countingRefresher{}
	c, err := InitCronJobs("@every 1s", r, nil, logger.Nop())
	if err != nil {
		t.Fatalf("InitCronJobs: %v", err)
	}
	defer c.Stop()

	deadline := time.Now().Add(3 * time.Second)
	for r.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if r.calls.Load() == 0 {
		t.Fatalf("scheduled warm-up never ran")
	}
}
