// Package jobs provides scheduled background tasks.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and are managed through
// JobManager:
//
//	jobManager := jobs.NewJobManager(&purgeHandler, "@every 1h", logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// SessionPurgeJob deletes revoked session ids whose tokens have expired.
// It only touches the revoked_sessions table. Failures are logged and the
// next run tries again.
package jobs
