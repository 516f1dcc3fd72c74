// Package configs manages user configuration for Vellum.
//
// Configuration is stored in TOML format in the user config directory,
// usually ~/.config/vellum/config.toml:
//
//	[editor]
//	untitled_prefix = "Untitled"
//	envelope_format = "legacy"     # legacy | v2
//	cipher_suite = "aes-256-gcm"   # used by v2 only
//
//	[user]
//	install_uuid = "..."
//
//	[recent]
//	files = ["/home/me/notes.txt.vlm"]
//
// Missing files and missing keys fall back to DefaultConfig. Unknown keys
// and invalid values are reported as ErrInvalidConfig.
//
// The install UUID is generated on first use by EnsureConfig and tags the
// entries of the audit log.
//
// # Settings
//
// UserVellumSettings holds the paths of the config file and the audit log.
// It is initialized at startup and tests point it at a temporary directory:
//
//	old := configs.UserVellumSettings
//	configs.UserVellumSettings = configs.NewUserSettings(t.TempDir())
//	defer func() { configs.UserVellumSettings = old }()
package configs
