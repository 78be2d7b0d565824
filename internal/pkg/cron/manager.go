package cron

import (
	"Orbit/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine            *cron.Cron
	dashboardWarmSpec string
	dashboardWarmJob  *job.DashboardWarmJob
}

func NewCronManager(dashboardWarmSpec string, dashboardWarmJob *job.DashboardWarmJob) *Manager {
	return &Manager{
		engine:            cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		dashboardWarmSpec: dashboardWarmSpec,
		dashboardWarmJob:  dashboardWarmJob,
	}
}

// RegisterJobs adds every scheduled job, an empty spec disables the job
func (s *Manager) RegisterJobs() error {
	if s.dashboardWarmSpec == "" {
		return nil
	}
	if _, err := s.engine.AddJob(s.dashboardWarmSpec, s.dashboardWarmJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

func (s *Manager) Start() {
	log.Info("Cron engine started")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron engine stopping")
	<-s.engine.Stop().Done()
}
