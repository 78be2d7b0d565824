package cron

import log "log/slog"

// InitCron registers the scheduled jobs and starts the engine
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	log.Info("Cron Jobs starting...", "entries", mgr.Entries())
	mgr.Start()
	return nil
}
