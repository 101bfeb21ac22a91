package worker

import (
	"droboapp-panel/models"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// StatusManager wraps models.StatusManager to allow method definitions
type StatusManager struct {
	*models.StatusManager
}

// NewStatusManager creates a new status manager
func NewStatusManager(statusPath, appID string) *StatusManager {
	return &StatusManager{
		StatusManager: &models.StatusManager{
			StatusFilePath: statusPath,
			AppID:          appID,
		},
	}
}

func (sm *StatusManager) saveStatus(snapshot *models.StateSnapshot) error {
	if err := os.MkdirAll(filepath.Dir(sm.StatusFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create status directory: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	// Write atomically
	tempFile := sm.StatusFilePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp status file: %w", err)
	}

	if err := os.Rename(tempFile, sm.StatusFilePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename status file: %w", err)
	}

	return nil
}

func (sm *StatusManager) loadStatus() (*models.StateSnapshot, error) {
	data, err := os.ReadFile(sm.StatusFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read status file: %w", err)
	}

	var snapshot models.StateSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status: %w", err)
	}

	return &snapshot, nil
}

// LoadStatus returns the last saved snapshot
func (sm *StatusManager) LoadStatus() (*models.StateSnapshot, error) {
	sm.Mu.Lock()
	defer sm.Mu.Unlock()
	return sm.loadStatus()
}

// update loads the current snapshot (or starts a fresh one), applies fn and saves it
func (sm *StatusManager) update(fn func(*models.StateSnapshot)) error {
	sm.Mu.Lock()
	defer sm.Mu.Unlock()

	snapshot, err := sm.loadStatus()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			fmt.Printf("Discarding unreadable status file %s: %v\n", sm.StatusFilePath, err)
		}
		snapshot = &models.StateSnapshot{
			App:     sm.AppID,
			Monitor: models.MonitorIdle,
		}
	}

	fn(snapshot)
	return sm.saveStatus(snapshot)
}

// RecordState stores the observed running state
func (sm *StatusManager) RecordState(running bool) error {
	return sm.update(func(s *models.StateSnapshot) {
		s.Running = running
		s.CheckedAt = time.Now()
	})
}

// RecordMonitor stores the lifecycle state of the monitor
func (sm *StatusManager) RecordMonitor(status models.MonitorStatus) error {
	return sm.update(func(s *models.StateSnapshot) {
		s.Monitor = status
	})
}

// RecordOperation stores the outcome of the last attempted operation
func (sm *StatusManager) RecordOperation(outcome *models.OperationOutcome) error {
	if !outcome.Attempted() {
		return nil
	}
	return sm.update(func(s *models.StateSnapshot) {
		s.LastOperation = outcome
	})
}
