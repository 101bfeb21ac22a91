package models

import (
	"strings"
	"time"
)

// Operation is a control action requested through the op parameter
type Operation int

const (
	OpNone Operation = iota
	OpStart
	OpStop
	OpReload
	OpLogs
)

var operationNames = map[Operation]string{
	OpNone:   "none",
	OpStart:  "start",
	OpStop:   "stop",
	OpReload: "reload",
	OpLogs:   "logs",
}

// ParseOperation maps a raw op value to an Operation. Anything unknown is OpNone.
func ParseOperation(raw string) Operation {
	switch strings.TrimSpace(raw) {
	case "start":
		return OpStart
	case "stop":
		return OpStop
	case "reload":
		return OpReload
	case "logs":
		return OpLogs
	default:
		return OpNone
	}
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return "none"
}

// Invokes reports whether the operation runs an external command
func (o Operation) Invokes() bool {
	return o == OpStart || o == OpStop || o == OpReload
}

// OperationResult is the outcome of an operation
type OperationResult string

const (
	ResultOK      OperationResult = "ok"
	ResultFailed  OperationResult = "failed"
	ResultSkipped OperationResult = "skipped"
)

// OperationOutcome pairs an operation with its result
type OperationOutcome struct {
	ID        string          `json:"id,omitempty"`
	Operation Operation       `json:"-"`
	Op        string          `json:"op"`
	Result    OperationResult `json:"result"`
	ExitCode  int             `json:"exit_code"`
	StartedAt time.Time       `json:"started_at"`
	Duration  time.Duration   `json:"duration"`
}

// NewSkippedOutcome returns the outcome of an operation that invokes nothing
func NewSkippedOutcome(op Operation) *OperationOutcome {
	return &OperationOutcome{
		Operation: op,
		Op:        op.String(),
		Result:    ResultSkipped,
		StartedAt: time.Now(),
	}
}

// Attempted reports whether an external command was run
func (o *OperationOutcome) Attempted() bool {
	return o != nil && o.Result != ResultSkipped
}

// Succeeded reports whether the external command exited with status 0
func (o *OperationOutcome) Succeeded() bool {
	return o != nil && o.Result == ResultOK
}
