package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/internal/configs"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Displays the current vellum configuration, including defaults for
settings that were never changed.

Examples:
  vellum config show
  vellum config show --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")
		ConfigLogger.Debugf("Loading config from %s", configs.UserVellumSettings.ConfigPath())

		config, err := configs.LoadConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load config: %v", err)
		}

		if configShowJSON {
			output, err := json.MarshalIndent(config, "", "  ")
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		outputConfigText(config)
		return nil
	},
}

// outputConfigText outputs the config in human-readable format.
func outputConfigText(config *configs.Config) {
	fmt.Println(color.CyanString("Configuration") + " (" + configs.UserVellumSettings.ConfigPath() + "):")
	fmt.Println()
	fmt.Printf("  %-18s %s\n", "Untitled prefix:", color.GreenString(config.Editor.UntitledPrefix))
	fmt.Printf("  %-18s %s\n", "Envelope format:", color.GreenString(config.Editor.EnvelopeFormat))
	fmt.Printf("  %-18s %s\n", "Cipher suite:", color.GreenString(config.Editor.CipherSuite))
	if config.User.InstallUUID != "" {
		fmt.Printf("  %-18s %s\n", "Install ID:", color.YellowString(config.User.InstallUUID))
	}

	if len(config.Recent.Files) > 0 {
		fmt.Println()
		fmt.Println(color.CyanString("Recent files:"))
		for _, f := range config.Recent.Files {
			fmt.Printf("  %s\n", f)
		}
	}
}
