package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const purgeTimeout = time.Minute

// SessionPurger deletes session revocations whose tokens have expired.
type SessionPurger interface {
	Handle(ctx context.Context, now time.Time) (int64, error)
}

// SessionPurgeJob periodically empties the revocation list of entries that
// can no longer matter: an expired token is rejected on its own.
type SessionPurgeJob struct {
	purger   SessionPurger
	schedule string
	cron     *cron.Cron
	now      func() time.Time
	logger   *zap.Logger
}

// NewSessionPurgeJob creates the job. schedule is a cron expression with an
// optional seconds field, or a descriptor such as "@every 1h".
func NewSessionPurgeJob(purger SessionPurger, schedule string, logger *zap.Logger) *SessionPurgeJob {
	parser := cron.NewParser(
		cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)
	return &SessionPurgeJob{
		purger:   purger,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(parser)),
		now:      time.Now,
		logger:   logger.With(zap.String("component", "session_purge_job")),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *SessionPurgeJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Session purge job started", zap.String("schedule", j.schedule))
	return nil
}

// Run performs one purge.
func (j *SessionPurgeJob) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, purgeTimeout)
	defer cancel()

	purged, err := j.purger.Handle(ctx, j.now())
	if err != nil {
		j.logger.Error("Session purge failed", zap.Error(err))
		return
	}
	if purged > 0 {
		j.logger.Info("Expired session revocations purged", zap.Int64("count", purged))
	}
}

// Stop stops the scheduler and waits for a running purge to finish.
func (j *SessionPurgeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Session purge job stopped")
}
