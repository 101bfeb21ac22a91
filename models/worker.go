package models

import (
	"context"
	"droboapp-panel/utils/logger"
	"sync"
	"time"

	"github.com/robfig/cron"
)

// StatusManager handles state snapshot persistence
type StatusManager struct {
	StatusFilePath string
	AppID          string
	Mu             sync.Mutex
}

// MonitorConfig holds configuration for the state monitor
type MonitorConfig struct {
	CronSchedule   string `json:"cron_schedule"`
	StatusFilePath string `json:"status_file_path"`
	AppID          string `json:"app_id"`
	OwnerID        string `json:"owner_id"`
}

// Monitor periodically records the running state of the application
type Monitor struct {
	Logger        logger.Logger
	CronJob       *cron.Cron
	MonitorConfig *MonitorConfig

	IsRunning bool

	Mu       sync.RWMutex
	Ctx      context.Context
	Cancel   context.CancelFunc
	StopOnce sync.Once
}

// MonitorStatus is the lifecycle state of the monitor itself
type MonitorStatus string

const (
	MonitorIdle    MonitorStatus = "idle"
	MonitorRunning MonitorStatus = "running"
	MonitorStopped MonitorStatus = "stopped"
)

// StateSnapshot is what the status file holds
type StateSnapshot struct {
	App           string            `json:"app"`
	Running       bool              `json:"running"`
	CheckedAt     time.Time         `json:"checked_at"`
	Monitor       MonitorStatus     `json:"monitor"`
	LastOperation *OperationOutcome `json:"last_operation,omitempty"`
}
