package worker

import (
	"context"
	"droboapp-panel/models"
	"droboapp-panel/utils"
	"droboapp-panel/utils/logger"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron"
)

// probeTimeout bounds a single scheduled state query
const probeTimeout = 30 * time.Second

// StateProbe reports whether the app is running
type StateProbe interface {
	IsRunning(ctx context.Context) bool
}

// Worker drives a models.Monitor
type Worker struct {
	Monitor *models.Monitor // Use pointer to avoid copying mutex
	probe   StateProbe
	status  *StatusManager
}

// NewWorker creates the state monitor worker
func NewWorker(cfg *models.Config, probe StateProbe, status *StatusManager, log logger.Logger) (*Worker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if probe == nil || status == nil {
		return nil, fmt.Errorf("probe and status manager are required")
	}

	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "localhost"
	}

	monitorConfig := &models.MonitorConfig{
		CronSchedule:   cfg.MonitorSchedule,
		StatusFilePath: status.StatusFilePath,
		AppID:          cfg.AppID,
		OwnerID:        fmt.Sprintf("monitor-%s-%s", hostname, uuid.New().String()[:8]),
	}

	log.Debugf("Monitor configuration: %s", utils.PrintPrettyJSON(monitorConfig))

	if err := validateMonitorConfig(monitorConfig); err != nil {
		return nil, fmt.Errorf("invalid monitor configuration: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		Monitor: &models.Monitor{
			Logger:        log,
			CronJob:       cron.New(),
			MonitorConfig: monitorConfig,
			Ctx:           ctx,
			Cancel:        cancel,
		},
		probe:  probe,
		status: status,
	}, nil
}

func validateMonitorConfig(config *models.MonitorConfig) error {
	if config.CronSchedule == "" {
		return fmt.Errorf("cron schedule cannot be empty")
	}
	if _, err := cron.Parse(config.CronSchedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", config.CronSchedule, err)
	}
	if config.StatusFilePath == "" {
		return fmt.Errorf("status file path cannot be empty")
	}
	return nil
}

// Start schedules the state probe and runs it once immediately
func (w *Worker) Start() error {
	w.Monitor.Mu.Lock()
	defer w.Monitor.Mu.Unlock()

	if w.Monitor.IsRunning {
		return fmt.Errorf("monitor is already running")
	}

	select {
	case <-w.Monitor.Ctx.Done():
		return fmt.Errorf("monitor context is cancelled, cannot start")
	default:
	}

	if err := w.Monitor.CronJob.AddFunc(w.Monitor.MonitorConfig.CronSchedule, w.probeJob); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	w.Monitor.Logger.Infof("Starting state monitor %s with schedule: %s",
		w.Monitor.MonitorConfig.OwnerID, w.Monitor.MonitorConfig.CronSchedule)

	w.Monitor.CronJob.Start()
	w.Monitor.IsRunning = true

	if err := w.status.RecordMonitor(models.MonitorRunning); err != nil {
		w.Monitor.Logger.Errorf("Failed to record monitor state: %v", err)
	}

	go w.probeJob()

	return nil
}

// probeJob queries the running state and stores it
func (w *Worker) probeJob() {
	defer func() {
		if r := recover(); r != nil {
			w.Monitor.Logger.Errorf("State probe panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(w.Monitor.Ctx, probeTimeout)
	defer cancel()

	running := w.probe.IsRunning(ctx)
	if ctx.Err() != nil && w.Monitor.Ctx.Err() != nil {
		return // stopping
	}

	if err := w.status.RecordState(running); err != nil {
		w.Monitor.Logger.Errorf("Failed to record state: %v", err)
		return
	}
	w.Monitor.Logger.Debugf("Recorded state of %s: running=%v", w.Monitor.MonitorConfig.AppID, running)
}

// IsRunning returns whether the monitor is currently scheduled
func (w *Worker) IsRunning() bool {
	w.Monitor.Mu.RLock()
	defer w.Monitor.Mu.RUnlock()
	return w.Monitor.IsRunning
}

// Stop cancels the schedule. It is safe to call more than once.
func (w *Worker) Stop() error {
	var err error
	w.Monitor.StopOnce.Do(func() {
		w.Monitor.Mu.Lock()
		defer w.Monitor.Mu.Unlock()

		w.Monitor.Cancel()

		if !w.Monitor.IsRunning {
			return
		}

		w.Monitor.Logger.Info("Stopping state monitor")
		w.Monitor.CronJob.Stop()
		w.Monitor.IsRunning = false

		err = w.status.RecordMonitor(models.MonitorStopped)
	})
	return err
}
