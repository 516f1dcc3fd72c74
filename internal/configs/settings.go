package configs

import (
	"log"
	"os"
	"path/filepath"
)

type UserSettings struct {
	UserConfigsPath string
	AuditLogPath    string
}

var UserVellumSettings *UserSettings

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	UserVellumSettings = NewUserSettings(filepath.Join(configDir, "vellum"))
}

// NewUserSettings returns settings rooted at dir.
func NewUserSettings(dir string) *UserSettings {
	return &UserSettings{
		UserConfigsPath: dir,
		AuditLogPath:    filepath.Join(dir, "audit.jsonl"),
	}
}

// ConfigPath is the location of config.toml.
func (s *UserSettings) ConfigPath() string {
	return filepath.Join(s.UserConfigsPath, "config.toml")
}
