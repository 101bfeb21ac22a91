package services

import (
	"context"
	"droboapp-panel/models"
	"html/template"
)

// AppControlServiceInterface defines the contract for the app control service
type AppControlServiceInterface interface {
	Dispatch(ctx context.Context, op models.Operation) *models.OperationOutcome
	IsRunning(ctx context.Context) bool
	Identity() models.AppIdentity
}

// ContentServiceInterface defines the contract for the informational panels
type ContentServiceInterface interface {
	ConfigView() models.ConfigView
	Fragments() map[string]template.HTML
	Logs() []models.LogExcerpt
}

// OperationRecorder receives the outcome of every attempted operation
type OperationRecorder interface {
	RecordOperation(outcome *models.OperationOutcome) error
}

// StateServiceInterface defines the contract for the state snapshot provider
type StateServiceInterface interface {
	Snapshot(ctx context.Context) (*models.StateSnapshot, error)
}
