package utils

import (
	"droboapp-panel/models"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// UtilsTestSuite defines a test suite for utils functions
type UtilsTestSuite struct {
	suite.Suite
	originalEnv map[string]string
	dir         string
}

// SetupTest runs before each test
func (suite *UtilsTestSuite) SetupTest() {
	// Store original environment variables
	suite.originalEnv = make(map[string]string)
	for _, kv := range os.Environ() {
		key, value, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, EnvPrefix+"_") {
			suite.originalEnv[key] = value
			os.Unsetenv(key)
		}
	}
	suite.dir = suite.T().TempDir()
}

// TearDownTest runs after each test
func (suite *UtilsTestSuite) TearDownTest() {
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, EnvPrefix+"_") {
			os.Unsetenv(key)
		}
	}
	for envVar, value := range suite.originalEnv {
		os.Setenv(envVar, value)
	}
}

func (suite *UtilsTestSuite) writeConfig(content string) {
	require.NoError(suite.T(), os.WriteFile(filepath.Join(suite.dir, "config.json"), []byte(content), 0o644))
}

// TestDefaults tests the values used when nothing is configured
func (suite *UtilsTestSuite) TestDefaults() {
	config, err := Load(suite.dir)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "NFS", config.AppName)
	assert.Equal(suite.T(), "nfs", config.AppID)
	assert.Equal(suite.T(), "8080", config.AppPort)
	assert.Equal(suite.T(), "/bin/sh", config.Shell)
	assert.Equal(suite.T(), "/usr/bin/DroboApps.sh", config.DroboAppsPath)
	assert.Equal(suite.T(), "/mnt/DroboFS/Shares/DroboApps", config.AppsDir)
	assert.Equal(suite.T(), 2*time.Minute, config.CommandTimeout)
	assert.Equal(suite.T(), 100, config.LogTailLines)
	assert.Equal(suite.T(), "@every 30s", config.MonitorSchedule)
	assert.Equal(suite.T(), "/api/v1", config.BasePath)
	assert.False(suite.T(), config.AuthEnabled())

	// derived paths
	assert.Equal(suite.T(), "/mnt/DroboFS/Shares/DroboApps/nfs/etc/nfs.conf", config.ConfPath)
	assert.Equal(suite.T(), "/mnt/DroboFS/Shares/DroboApps/nfs/etc/nfs.conf.auto", config.AutoConfPath)
	assert.Equal(suite.T(), []string{"/tmp/DroboApps/nfs/log.txt"}, config.LogFiles)
	assert.Contains(suite.T(), config.StatusFile, "droboapp-nfs-status.json")
}

// TestGetConfig tests the GetConfig wrapper
func (suite *UtilsTestSuite) TestGetConfig() {
	config, err := GetConfig()
	require.NoError(suite.T(), err)
	assert.NotNil(suite.T(), config)
}

// TestEnvironmentOverrides tests DROBOAPP_ prefixed environment variables
func (suite *UtilsTestSuite) TestEnvironmentOverrides() {
	os.Setenv("DROBOAPP_APP_NAME", "AFP")
	os.Setenv("DROBOAPP_APP_ID", "afp")
	os.Setenv("DROBOAPP_APP_PORT", "8090")
	os.Setenv("DROBOAPP_COMMAND_TIMEOUT", "45s")
	os.Setenv("DROBOAPP_LOG_LEVEL", "debug")

	config, err := Load(suite.dir)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "AFP", config.AppName)
	assert.Equal(suite.T(), "afp", config.AppID)
	assert.Equal(suite.T(), "8090", config.AppPort)
	assert.Equal(suite.T(), 45*time.Second, config.CommandTimeout)
	assert.Equal(suite.T(), "debug", config.LogLevel)
	assert.Equal(suite.T(), "/mnt/DroboFS/Shares/DroboApps/afp/etc/afp.conf", config.ConfPath)
}

// TestNestedConfigFile tests the sectioned JSON config file
func (suite *UtilsTestSuite) TestNestedConfigFile() {
	suite.writeConfig(`{
		"app": {"name": "Transmission", "id": "transmission", "port": "9091", "page": "http://drobo.local:9091/"},
		"scripts": {"apps_dir": "/opt/apps", "timeout": "10s"},
		"logs": {"files": ["/var/log/a.log", "/var/log/b.log"], "tail_lines": 20},
		"monitor": {"schedule": "@every 1m"},
		"cors": {"origins": ["http://dashboard.local"]}
	}`)

	config, err := Load(suite.dir)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "Transmission", config.AppName)
	assert.Equal(suite.T(), "transmission", config.AppID)
	assert.Equal(suite.T(), "9091", config.AppPort)
	assert.Equal(suite.T(), "http://drobo.local:9091/", config.AppPage)
	assert.Equal(suite.T(), "/opt/apps", config.AppsDir)
	assert.Equal(suite.T(), 10*time.Second, config.CommandTimeout)
	assert.Equal(suite.T(), []string{"/var/log/a.log", "/var/log/b.log"}, config.LogFiles)
	assert.Equal(suite.T(), 20, config.LogTailLines)
	assert.Equal(suite.T(), "@every 1m", config.MonitorSchedule)
	assert.Equal(suite.T(), []string{"http://dashboard.local"}, config.CORSOrigins)
	assert.Equal(suite.T(), "/opt/apps/transmission/etc/transmission.conf", config.ConfPath)
}

// TestEnvironmentBeatsNestedConfigFile tests that env overrides win over file sections
func (suite *UtilsTestSuite) TestEnvironmentBeatsNestedConfigFile() {
	suite.writeConfig(`{
		"app": {"port": "9091", "name": "Transmission"},
		"scripts": {"timeout": "10s"},
		"logs": {"tail_lines": 20}
	}`)
	os.Setenv("DROBOAPP_APP_PORT", "8090")
	os.Setenv("DROBOAPP_COMMAND_TIMEOUT", "45s")
	os.Setenv("DROBOAPP_LOG_TAIL_LINES", "5")

	config, err := Load(suite.dir)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "8090", config.AppPort)
	assert.Equal(suite.T(), 45*time.Second, config.CommandTimeout)
	assert.Equal(suite.T(), 5, config.LogTailLines)
	assert.Equal(suite.T(), "Transmission", config.AppName)
}

// TestNumericDurationsRejected tests that durations must be written as strings
func (suite *UtilsTestSuite) TestNumericDurationsRejected() {
	tests := []struct {
		name    string
		content string
	}{
		{"nested timeout", `{"scripts": {"timeout": 90}}`},
		{"flat timeout", `{"command_timeout": 90}`},
		{"session expiry", `{"auth": {"expires_in": 3600}}`},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.writeConfig(tt.content)
			_, err := Load(suite.dir)
			require.Error(suite.T(), err)
			assert.Contains(suite.T(), err.Error(), "duration string")
		})
	}
}

// TestMetadataOverlay tests reading app identity from a metadata file
func (suite *UtilsTestSuite) TestMetadataOverlay() {
	metadata := filepath.Join(suite.dir, "app.json")
	require.NoError(suite.T(), os.WriteFile(metadata, []byte(`{
		"name": "Plex",
		"id": "plex",
		"version": "1.2.3",
		"site": "https://plex.tv/",
		"help": "",
		"extra": {"ignored": true}
	}`), 0o644))
	os.Setenv("DROBOAPP_METADATA_FILE", metadata)

	config, err := Load(suite.dir)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "Plex", config.AppName)
	assert.Equal(suite.T(), "plex", config.AppID)
	assert.Equal(suite.T(), "1.2.3", config.AppVersion)
	assert.Equal(suite.T(), "https://plex.tv/", config.AppSite)
	assert.Empty(suite.T(), config.AppHelp)
}

// TestMetadataErrors tests unreadable and invalid metadata files
func (suite *UtilsTestSuite) TestMetadataErrors() {
	os.Setenv("DROBOAPP_METADATA_FILE", filepath.Join(suite.dir, "missing.json"))
	_, err := Load(suite.dir)
	assert.Error(suite.T(), err)

	invalid := filepath.Join(suite.dir, "invalid.json")
	require.NoError(suite.T(), os.WriteFile(invalid, []byte(`{"name": `), 0o644))
	os.Setenv("DROBOAPP_METADATA_FILE", invalid)
	_, err = Load(suite.dir)
	assert.Error(suite.T(), err)
}

// TestInvalidConfigFile tests a config file that is not JSON
func (suite *UtilsTestSuite) TestInvalidConfigFile() {
	suite.writeConfig(`{"app": `)

	_, err := Load(suite.dir)
	assert.Error(suite.T(), err)
}

// TestValidation tests configuration validation
func (suite *UtilsTestSuite) TestValidation() {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"non numeric port", map[string]string{"DROBOAPP_APP_PORT": "http"}},
		{"bad log level", map[string]string{"DROBOAPP_LOG_LEVEL": "verbose"}},
		{"bad log format", map[string]string{"DROBOAPP_LOG_FORMAT": "xml"}},
		{"app id with slash", map[string]string{"DROBOAPP_APP_ID": "../etc"}},
		{"password without secret", map[string]string{"DROBOAPP_ADMIN_PASSWORD_HASH": "$2a$10$abcdefghijklmnopqrstuv"}},
		{"zero tail lines", map[string]string{"DROBOAPP_LOG_TAIL_LINES": "0"}},
		{"bad site url", map[string]string{"DROBOAPP_APP_SITE": "not a url"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			for k, v := range tt.env {
				os.Setenv(k, v)
				defer os.Unsetenv(k)
			}
			_, err := Load(suite.dir)
			assert.Error(suite.T(), err)
		})
	}
}

// TestAuthConfig tests a complete auth configuration
func (suite *UtilsTestSuite) TestAuthConfig() {
	os.Setenv("DROBOAPP_ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	os.Setenv("DROBOAPP_JWT_SECRET", "secret")

	config, err := Load(suite.dir)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), config.AuthEnabled())
	assert.Equal(suite.T(), 12*time.Hour, config.JWTExpiresIn)
}

// TestServiceScriptPath tests resolving the per-app service script
func (suite *UtilsTestSuite) TestServiceScriptPath() {
	config := &models.Config{AppsDir: "/mnt/DroboFS/Shares/DroboApps", AppID: "nfs", ServiceScript: "service.sh"}
	assert.Equal(suite.T(), "/mnt/DroboFS/Shares/DroboApps/nfs/service.sh", ServiceScriptPath(config))

	config.ServiceScript = "/opt/nfs/service.sh"
	assert.Equal(suite.T(), "/opt/nfs/service.sh", ServiceScriptPath(config))
}

// TestPrintPrettyJSON tests the PrintPrettyJSON function
func (suite *UtilsTestSuite) TestPrintPrettyJSON() {
	identity := models.AppIdentity{Name: "NFS", ID: "nfs", Version: "1.0.0"}

	result := PrintPrettyJSON(identity)

	var decoded map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal([]byte(result), &decoded))
	assert.Equal(suite.T(), "NFS", decoded["name"])
	assert.Contains(suite.T(), result, "\n    ")
}

func TestUtilsTestSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}
