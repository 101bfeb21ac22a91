package worker

import (
	"context"
	"droboapp-panel/models"
	"droboapp-panel/utils/logger"
	"errors"
	"fmt"
	"io/fs"
	"time"
)

// Service wraps the state monitor for easy integration
type Service struct {
	worker *Worker
	status *StatusManager
	probe  StateProbe
	logger logger.Logger
}

// NewService creates a new monitor service
func NewService(cfg *models.Config, probe StateProbe, status *StatusManager, log logger.Logger) (*Service, error) {
	w, err := NewWorker(cfg, probe, status, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create state monitor: %w", err)
	}

	return &Service{
		worker: w,
		status: status,
		probe:  probe,
		logger: log,
	}, nil
}

// StartInBackground starts the state monitor
func (s *Service) StartInBackground() error {
	s.logger.Info("Starting state monitor service in background")
	if err := s.worker.Start(); err != nil {
		return fmt.Errorf("state monitor failed to start: %w", err)
	}
	return nil
}

// Stop stops the state monitor
func (s *Service) Stop() error {
	return s.worker.Stop()
}

// Snapshot returns a live running state merged with the stored snapshot
func (s *Service) Snapshot(ctx context.Context) (*models.StateSnapshot, error) {
	stored, err := s.status.LoadStatus()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		stored = &models.StateSnapshot{
			App:     s.status.AppID,
			Monitor: models.MonitorIdle,
		}
	}

	stored.Running = s.probe.IsRunning(ctx)
	stored.CheckedAt = time.Now()
	// the file may predate this process
	if !s.worker.IsRunning() && stored.Monitor == models.MonitorRunning {
		stored.Monitor = models.MonitorStopped
	}
	return stored, nil
}
