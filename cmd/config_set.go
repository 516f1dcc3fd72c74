package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/internal/configs"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"github.com/PolarWolf314/vellum/internal/ui"
)

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration value",
	Long: `Changes a single configuration value. Invalid values are rejected and the
configuration file is left as it was.

Keys:
  ` + strings.Join(configs.SettableKeys(), "\n  ") + `

Examples:
  vellum config set editor.envelope_format v2
  vellum config set editor.untitled_prefix Draft`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		ConfigLogger.Infof("Setting %s", key)

		config, err := configs.LoadConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load config: %v", err)
		}

		if err := config.Set(key, value); err != nil {
			ConfigLogger.Debugf("Rejected %s=%q: %v", key, value, err)
			fmt.Println(ui.Failed(verrors.UserMessage(err)))
			fmt.Println(ui.Hint("Valid keys: " + strings.Join(configs.SettableKeys(), ", ")))
			return nil
		}

		if err := configs.SaveConfig(config); err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to save config: %v", err)
		}

		fmt.Println(ui.Done("Set " + ui.Code.Sprint(key) + " to " + ui.Highlight.Sprint(value)))
		return nil
	},
}
