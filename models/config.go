package models

import "time"

// Config holds all configuration for the application
type Config struct {
	// Application
	AppName    string `mapstructure:"app_name" validate:"required"`
	AppID      string `mapstructure:"app_id" validate:"required"`
	AppVersion string `mapstructure:"app_version"`
	AppSite    string `mapstructure:"app_site" validate:"omitempty,url"`
	AppHelp    string `mapstructure:"app_help" validate:"omitempty,url"`
	AppPage    string `mapstructure:"app_page" validate:"omitempty,url"`
	AppEnv     string `mapstructure:"app_env"`
	AppHost    string `mapstructure:"app_host"`
	AppPort    string `mapstructure:"app_port" validate:"required,numeric"`

	// Optional JSON file supplying app identity (name, version, site, help, page)
	MetadataFile string `mapstructure:"metadata_file"`

	// External control scripts
	Shell          string        `mapstructure:"shell" validate:"required"`
	DroboAppsPath  string        `mapstructure:"droboapps_path" validate:"required"`
	AppsDir        string        `mapstructure:"apps_dir" validate:"required"`
	ServiceScript  string        `mapstructure:"service_script" validate:"required"`
	CommandTimeout time.Duration `mapstructure:"command_timeout" validate:"gte=0"`

	// Configuration artifacts
	ConfPath     string `mapstructure:"conf_path"`
	AutoConfPath string `mapstructure:"autoconf_path"`

	// Informational panels
	ContentDir   string   `mapstructure:"content_dir"`
	StaticDir    string   `mapstructure:"static_dir"`
	LogFiles     []string `mapstructure:"log_files"`
	LogTailLines int      `mapstructure:"log_tail_lines" validate:"gte=1"`

	// Session auth (disabled when AdminPasswordHash is empty)
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	JWTSecret         string        `mapstructure:"jwt_secret"`
	JWTExpiresIn      time.Duration `mapstructure:"jwt_expires_in"`

	// State monitor
	MonitorSchedule string `mapstructure:"monitor_schedule"`
	StatusFile      string `mapstructure:"status_file"`

	// Logging
	LogLevel  string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"omitempty,oneof=json text"`

	// CORS
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Base Path of the JSON API
	BasePath string `mapstructure:"basePath"`
}

// AuthEnabled reports whether the panel requires a login
func (c *Config) AuthEnabled() bool {
	return c.AdminPasswordHash != ""
}

// Identity returns the display variables of the app
func (c *Config) Identity() AppIdentity {
	return AppIdentity{
		Name:    c.AppName,
		ID:      c.AppID,
		Version: c.AppVersion,
		Site:    c.AppSite,
		Help:    c.AppHelp,
		Page:    c.AppPage,
	}
}
