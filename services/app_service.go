package services

import (
	"context"
	"droboapp-panel/models"
	"droboapp-panel/utils"
	"droboapp-panel/utils/logger"
	"strings"
	"time"

	"github.com/google/uuid"
)

type operationHandler func(ctx context.Context) *models.OperationOutcome

// AppControlService starts, stops and reloads the app through its scripts
type AppControlService struct {
	config   *models.Config
	runner   ProcessRunner
	recorder OperationRecorder
	logger   logger.Logger
	handlers map[models.Operation]operationHandler
}

// NewAppControlService creates the control service. recorder may be nil.
func NewAppControlService(cfg *models.Config, runner ProcessRunner, recorder OperationRecorder, log logger.Logger) *AppControlService {
	s := &AppControlService{
		config:   cfg,
		runner:   runner,
		recorder: recorder,
		logger:   log,
	}
	s.handlers = map[models.Operation]operationHandler{
		models.OpStart:  s.Start,
		models.OpStop:   s.Stop,
		models.OpReload: s.Reload,
	}
	return s
}

// Identity returns the display variables of the app
func (s *AppControlService) Identity() models.AppIdentity {
	return s.config.Identity()
}

// Dispatch runs the handler for op. Operations without a handler are no-ops.
func (s *AppControlService) Dispatch(ctx context.Context, op models.Operation) *models.OperationOutcome {
	handler, ok := s.handlers[op]
	if !ok {
		return models.NewSkippedOutcome(op)
	}
	return handler(ctx)
}

// Start asks the appliance lifecycle manager to start the app
func (s *AppControlService) Start(ctx context.Context) *models.OperationOutcome {
	return s.invoke(ctx, models.OpStart, s.config.Shell, s.config.DroboAppsPath, "start_app", s.config.AppID)
}

// Stop asks the appliance lifecycle manager to stop the app
func (s *AppControlService) Stop(ctx context.Context) *models.OperationOutcome {
	return s.invoke(ctx, models.OpStop, s.config.Shell, s.config.DroboAppsPath, "stop_app", s.config.AppID)
}

// Reload runs the app's own service script with "reload"
func (s *AppControlService) Reload(ctx context.Context) *models.OperationOutcome {
	return s.invoke(ctx, models.OpReload, utils.ServiceScriptPath(s.config), "reload")
}

// IsRunning queries the lifecycle manager for the app status
func (s *AppControlService) IsRunning(ctx context.Context) bool {
	result, err := s.runner.Run(ctx, s.config.Shell, s.config.DroboAppsPath, "status_app", s.config.AppID)
	if err != nil {
		s.logger.Warnf("Failed to query status of %s: %v", s.config.AppID, err)
		return false
	}
	if result.ExitCode != 0 {
		return false
	}
	return !strings.Contains(strings.ToLower(result.Output), "not running")
}

func (s *AppControlService) invoke(ctx context.Context, op models.Operation, name string, args ...string) *models.OperationOutcome {
	outcome := &models.OperationOutcome{
		ID:        uuid.New().String(),
		Operation: op,
		Op:        op.String(),
		StartedAt: time.Now(),
	}
	log := s.logger.WithFields(map[string]interface{}{
		"op_id": outcome.ID,
		"op":    outcome.Op,
		"app":   s.config.AppID,
	})
	log.Infof("Running %s %s", name, strings.Join(args, " "))

	result, err := s.runner.Run(ctx, name, args...)
	outcome.Duration = time.Since(outcome.StartedAt)
	switch {
	case err != nil:
		outcome.Result = models.ResultFailed
		outcome.ExitCode = -1
		if result != nil {
			outcome.ExitCode = result.ExitCode
		}
		log.Warnf("Operation could not complete: %v", err)
	case result.ExitCode != 0:
		outcome.Result = models.ResultFailed
		outcome.ExitCode = result.ExitCode
		log.Warnf("Operation failed with exit code %d: %s", result.ExitCode, strings.TrimSpace(result.Output))
	default:
		outcome.Result = models.ResultOK
		log.Infof("Operation completed in %s", outcome.Duration)
	}

	if s.recorder != nil {
		if err := s.recorder.RecordOperation(outcome); err != nil {
			log.Errorf("Failed to record operation: %v", err)
		}
	}
	return outcome
}
