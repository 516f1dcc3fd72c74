package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/PolarWolf314/vellum/internal/codec"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
)

// MaxRecentFiles caps the recent files list.
const MaxRecentFiles = 10

type Config struct {
	Editor Editor `toml:"editor"`
	User   User   `toml:"user"`
	Recent Recent `toml:"recent"`
}

type Editor struct {
	UntitledPrefix string `toml:"untitled_prefix"`
	EnvelopeFormat string `toml:"envelope_format"`
	CipherSuite    string `toml:"cipher_suite"`
}

type User struct {
	InstallUUID string `toml:"install_uuid"`
}

type Recent struct {
	Files []string `toml:"files"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Editor: Editor{
			UntitledPrefix: "Untitled",
			EnvelopeFormat: codec.FormatLegacy.String(),
			CipherSuite:    string(codec.DefaultSuite),
		},
	}
}

// LoadConfig loads the user configuration, falling back to defaults for a
// missing file or missing keys.
func LoadConfig() (*Config, error) {
	configPath := UserVellumSettings.ConfigPath()

	config := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig validates and saves the user configuration.
func SaveConfig(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if err := SaveTOML(UserVellumSettings.ConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// GenerateInstallUUID generates a new installation UUID.
func GenerateInstallUUID() string {
	return uuid.New().String()
}

// EnsureConfig loads the configuration and makes sure it has an install UUID.
func EnsureConfig() (*Config, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	if config.User.InstallUUID == "" {
		config.User.InstallUUID = GenerateInstallUUID()
		if err := SaveConfig(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// Validate checks the values that have a fixed set of choices.
func (c *Config) Validate() error {
	if _, err := codec.ParseFormat(c.Editor.EnvelopeFormat); err != nil {
		return fmt.Errorf("%w: editor.envelope_format: %v", verrors.ErrInvalidConfig, err)
	}
	if _, err := codec.ParseSuite(c.Editor.CipherSuite); err != nil {
		return fmt.Errorf("%w: editor.cipher_suite: %v", verrors.ErrInvalidConfig, err)
	}
	if strings.TrimSpace(c.Editor.UntitledPrefix) == "" {
		return fmt.Errorf("%w: editor.untitled_prefix must not be empty", verrors.ErrInvalidConfig)
	}
	if c.User.InstallUUID != "" {
		if _, err := uuid.Parse(c.User.InstallUUID); err != nil {
			return fmt.Errorf("%w: user.install_uuid: %v", verrors.ErrInvalidConfig, err)
		}
	}
	return nil
}

// SealOptions returns the envelope settings for newly encrypted documents.
func (c *Config) SealOptions() (codec.Options, error) {
	format, err := codec.ParseFormat(c.Editor.EnvelopeFormat)
	if err != nil {
		return codec.Options{}, fmt.Errorf("%w: %v", verrors.ErrInvalidConfig, err)
	}
	suite, err := codec.ParseSuite(c.Editor.CipherSuite)
	if err != nil {
		return codec.Options{}, fmt.Errorf("%w: %v", verrors.ErrInvalidConfig, err)
	}
	return codec.Options{Format: format, Suite: suite}, nil
}

// settableKeys maps user-editable keys to their fields.
var settableKeys = map[string]func(c *Config) *string{
	"editor.untitled_prefix": func(c *Config) *string { return &c.Editor.UntitledPrefix },
	"editor.envelope_format": func(c *Config) *string { return &c.Editor.EnvelopeFormat },
	"editor.cipher_suite":    func(c *Config) *string { return &c.Editor.CipherSuite },
}

// SettableKeys returns the keys accepted by Set, sorted.
func SettableKeys() []string {
	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set changes a single value. The config is left unchanged if the new value
// does not validate.
func (c *Config) Set(key, value string) error {
	field, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("%w: %q", verrors.ErrUnknownConfigKey, key)
	}

	ptr := field(c)
	old := *ptr
	*ptr = strings.TrimSpace(value)
	if err := c.Validate(); err != nil {
		*ptr = old
		return err
	}
	return nil
}

// AddRecent moves path to the front of the recent files list.
func (c *Config) AddRecent(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	files := []string{path}
	for _, f := range c.Recent.Files {
		if f != path {
			files = append(files, f)
		}
	}
	if len(files) > MaxRecentFiles {
		files = files[:MaxRecentFiles]
	}
	c.Recent.Files = files
}
