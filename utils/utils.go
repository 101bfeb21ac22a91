package utils

import (
	"droboapp-panel/models"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/tidwall/gjson"
)

// EnvPrefix is prepended to every environment override, e.g. DROBOAPP_APP_PORT
const EnvPrefix = "DROBOAPP"

// GetConfig read the configuration from environment variables or config files
func GetConfig() (*models.Config, error) {
	config, err := Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return config, nil
}

// Load initializes and returns the application configuration using Viper
func Load(searchPaths ...string) (*models.Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("./etc")

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		fmt.Printf("Config file not found, using defaults and environment variables\n")
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	flattenNestedConfig(v)
	if err := checkDurations(v); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	var config models.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.MetadataFile != "" {
		if err := applyMetadata(&config, config.MetadataFile); err != nil {
			return nil, err
		}
	}

	deriveAppPaths(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("app_name", "NFS")
	v.SetDefault("app_id", "nfs")
	v.SetDefault("app_version", "")
	v.SetDefault("app_site", "")
	v.SetDefault("app_help", "")
	v.SetDefault("app_page", "")
	v.SetDefault("app_env", "production")
	v.SetDefault("app_host", "0.0.0.0")
	v.SetDefault("app_port", "8080")
	v.SetDefault("metadata_file", "")

	// Appliance script defaults
	v.SetDefault("shell", "/bin/sh")
	v.SetDefault("droboapps_path", "/usr/bin/DroboApps.sh")
	v.SetDefault("apps_dir", "/mnt/DroboFS/Shares/DroboApps")
	v.SetDefault("service_script", "service.sh")
	v.SetDefault("command_timeout", 2*time.Minute)

	// Derived from apps_dir and app_id when empty
	v.SetDefault("conf_path", "")
	v.SetDefault("autoconf_path", "")
	v.SetDefault("content_dir", "")
	v.SetDefault("static_dir", "")
	v.SetDefault("log_files", []string{})
	v.SetDefault("log_tail_lines", 100)

	// Auth defaults
	v.SetDefault("admin_password_hash", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_expires_in", 12*time.Hour)

	// Monitor defaults
	v.SetDefault("monitor_schedule", "@every 30s")
	v.SetDefault("status_file", "")

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.SetDefault("cors_origins", []string{})
	v.SetDefault("basePath", "/api/v1")
}

// flattenNestedConfig flattens the nested JSON structure to flat keys for easier mapping.
// A flat key set from the environment keeps precedence over the file section.
func flattenNestedConfig(v *viper.Viper) {
	sections := map[string]string{
		"app.name":            "app_name",
		"app.id":              "app_id",
		"app.version":         "app_version",
		"app.site":            "app_site",
		"app.help":            "app_help",
		"app.page":            "app_page",
		"app.env":             "app_env",
		"app.host":            "app_host",
		"app.port":            "app_port",
		"scripts.shell":       "shell",
		"scripts.droboapps":   "droboapps_path",
		"scripts.apps_dir":    "apps_dir",
		"scripts.service":     "service_script",
		"scripts.timeout":     "command_timeout",
		"logging.level":       "log_level",
		"logging.format":      "log_format",
		"auth.password_hash":  "admin_password_hash",
		"auth.jwt_secret":     "jwt_secret",
		"auth.expires_in":     "jwt_expires_in",
		"monitor.schedule":    "monitor_schedule",
		"monitor.status_file": "status_file",
	}
	for nested, flat := range sections {
		if v.IsSet(nested) && !envSet(flat) {
			v.Set(flat, v.Get(nested))
		}
	}
	if v.IsSet("logs.files") && !envSet("log_files") {
		v.Set("log_files", v.GetStringSlice("logs.files"))
	}
	if v.IsSet("logs.tail_lines") && !envSet("log_tail_lines") {
		v.Set("log_tail_lines", v.GetInt("logs.tail_lines"))
	}
	if v.IsSet("cors.origins") && !envSet("cors_origins") {
		v.Set("cors_origins", v.GetStringSlice("cors.origins"))
	}
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(EnvPrefix + "_" + strings.ToUpper(key))
	return ok
}

// checkDurations rejects bare numbers for duration keys, which would
// otherwise be read as nanoseconds.
func checkDurations(v *viper.Viper) error {
	for _, key := range []string{"command_timeout", "jwt_expires_in"} {
		switch v.Get(key).(type) {
		case string, time.Duration:
		default:
			return fmt.Errorf("%s must be a duration string like \"90s\", got %v", key, v.Get(key))
		}
	}
	return nil
}

// applyMetadata overlays app identity from a JSON metadata file
func applyMetadata(c *models.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read metadata file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("metadata file %s is not valid JSON", path)
	}

	fields := map[string]*string{
		"name":    &c.AppName,
		"id":      &c.AppID,
		"version": &c.AppVersion,
		"site":    &c.AppSite,
		"help":    &c.AppHelp,
		"page":    &c.AppPage,
	}
	for key, target := range fields {
		if r := gjson.GetBytes(data, key); r.Exists() && r.String() != "" {
			*target = r.String()
		}
	}
	return nil
}

// deriveAppPaths fills per-app paths that were left empty
func deriveAppPaths(c *models.Config) {
	appDir := filepath.Join(c.AppsDir, c.AppID)
	if c.ConfPath == "" {
		c.ConfPath = filepath.Join(appDir, "etc", c.AppID+".conf")
	}
	if c.AutoConfPath == "" {
		c.AutoConfPath = c.ConfPath + ".auto"
	}
	if len(c.LogFiles) == 0 {
		c.LogFiles = []string{filepath.Join("/tmp/DroboApps", c.AppID, "log.txt")}
	}
	if c.StatusFile == "" {
		c.StatusFile = filepath.Join(os.TempDir(), fmt.Sprintf("droboapp-%s-status.json", c.AppID))
	}
}

// validate checks if all required configuration is provided
func validate(c *models.Config) error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.AuthEnabled() && c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret must be set when admin_password_hash is configured")
	}
	if strings.ContainsAny(c.AppID, `/\ `) {
		return fmt.Errorf("app_id %q must be a plain directory name", c.AppID)
	}

	return nil
}

// ServiceScriptPath returns the per-instance service script of the app
func ServiceScriptPath(c *models.Config) string {
	if filepath.IsAbs(c.ServiceScript) {
		return c.ServiceScript
	}
	return filepath.Join(c.AppsDir, c.AppID, c.ServiceScript)
}

// PrintPrettyJSON takes any struct or map and prints it as pretty JSON
func PrintPrettyJSON(data interface{}) string {
	prettyJSON, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		fmt.Println("Failed to generate JSON:", err)
		return ""
	}
	return string(prettyJSON)
}
