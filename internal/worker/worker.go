package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Lazycharm/Careerpilot-sub001/internal/config"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/usage"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
)

// Worker runs scheduled background jobs alongside the API server
type Worker struct {
	cron   *cron.Cron
	usage  usage.Service
	logger *logger.Logger
	cfg    config.WorkerConfig
}

// New creates a new background worker
func New(cfg config.WorkerConfig, u usage.Service, log *logger.Logger) *Worker {
	return &Worker{
		cron:   cron.New(),
		usage:  u,
		logger: log,
		cfg:    cfg,
	}
}

// Start registers and starts the scheduled jobs
func (w *Worker) Start() error {
	_, err := w.cron.AddFunc(w.cfg.NearLimitDigestSpec, w.nearLimitDigest)
	if err != nil {
		return err
	}

	w.cron.Start()
	w.logger.Infof("Worker started, near-limit digest scheduled at %q", w.cfg.NearLimitDigestSpec)
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (w *Worker) Stop(ctx context.Context) {
	stopped := w.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		w.logger.Warn("Worker shutdown timed out with jobs still running")
	}
}

// nearLimitDigest logs every user at or above the near-limit threshold so
// operators can follow up with upgrade prompts.
func (w *Worker) nearLimitDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	summaries, err := w.usage.NearLimit(ctx)
	if err != nil {
		w.logger.ErrorWithErr(err, "Near-limit digest failed")
		return
	}

	for _, s := range summaries {
		for _, cu := range s.Categories {
			if !cu.NearLimit {
				continue
			}
			w.logger.WithFields(map[string]interface{}{
				"user_id":  s.UserID,
				"plan":     s.PlanType,
				"category": cu.Category,
				"used":     cu.Used,
				"quota":    cu.Quota,
			}).Info("User near AI quota")
		}
	}

	w.logger.Infof("Near-limit digest complete, %d users flagged", len(summaries))
}
