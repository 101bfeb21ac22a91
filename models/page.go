package models

import (
	"fmt"
	"html/template"
)

// ConfigMode tells how the application is currently configured
type ConfigMode string

const (
	ConfigModeAuto   ConfigMode = "auto"
	ConfigModeManual ConfigMode = "manual"
	ConfigModeNone   ConfigMode = "none"
)

// ConfigView is the configuration panel content
type ConfigView struct {
	Mode      ConfigMode
	Path      string
	Content   string
	ReadError string
}

// Rescannable reports whether the Rescan (reload) control is offered
func (v ConfigView) Rescannable() bool {
	return v.Mode != ConfigModeManual
}

// LogExcerpt is the tail of one log file
type LogExcerpt struct {
	Name     string
	Path     string
	Missing  bool
	Size     string
	Modified string
	Lines    string
}

// AppIdentity holds the display variables of the application
type AppIdentity struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Version string `json:"version"`
	Site    string `json:"site,omitempty"`
	Help    string `json:"help,omitempty"`
	Page    string `json:"page,omitempty"`
}

// Banner is the operation feedback shown above the panels
type Banner struct {
	Success bool
	Message string
}

// Page is everything the status page needs to render
type Page struct {
	App        AppIdentity
	Outcome    *OperationOutcome
	Running    bool
	Config     ConfigView
	Fragments  map[string]template.HTML
	Logs       []LogExcerpt
	AuthActive bool
}

var bannerVerbs = map[Operation][2]string{
	OpStart:  {"started", "start"},
	OpStop:   {"stopped", "stop"},
	OpReload: {"reloaded", "reload"},
}

// Banner returns the feedback banner, or nil when no command was attempted
func (p *Page) Banner() *Banner {
	if !p.Outcome.Attempted() {
		return nil
	}
	verbs, ok := bannerVerbs[p.Outcome.Operation]
	if !ok {
		return nil
	}
	if p.Outcome.Succeeded() {
		return &Banner{
			Success: true,
			Message: fmt.Sprintf("%s was successfully %s.", p.App.Name, verbs[0]),
		}
	}
	return &Banner{
		Message: fmt.Sprintf("%s failed to %s. See logs below for more information.", p.App.Name, verbs[1]),
	}
}

// LogsExpanded reports whether the log panel starts expanded
func (p *Page) LogsExpanded() bool {
	return p.Outcome != nil && p.Outcome.Operation == OpLogs
}

// Fragment returns a named informational fragment
func (p *Page) Fragment(name string) template.HTML {
	return p.Fragments[name]
}
