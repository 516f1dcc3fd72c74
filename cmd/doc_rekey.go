package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/internal/codec"
	"github.com/PolarWolf314/vellum/internal/configs"
	"github.com/PolarWolf314/vellum/internal/ui"
	"github.com/PolarWolf314/vellum/internal/utils"
	"github.com/PolarWolf314/vellum/internal/workflows"
)

var rekeyEnvelope envelopeFlags

func init() {
	rekeyEnvelope.register(rekeyCmd.Flags())
}

// resetRekeyCommandState resets the rekey command's global state for testing.
func resetRekeyCommandState() {
	rekeyEnvelope.reset()
}

var rekeyCmd = &cobra.Command{
	Use:   "rekey <file>",
	Short: "Re-encrypt a .vlm envelope with a new password",
	Long: `Opens a .vlm envelope with its current password and replaces it with one
sealed by a new password. The envelope keeps its format unless --format or
--suite is given, which makes rekey the way to upgrade legacy envelopes.

Examples:
  vellum doc rekey notes.txt.vlm
  vellum doc rekey notes.txt.vlm --format v2
  vellum doc rekey notes.txt.vlm --suite xchacha20-poly1305`,
	Args: cobra.ExactArgs(1),
	RunE: runRekey,
}

func runRekey(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting rekey command for %s", args[0])

	var envelope *codec.Options
	if rekeyEnvelope.changed(cmd.Flags()) {
		config, err := configs.EnsureConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}
		opts, err := rekeyEnvelope.resolve(cmd.Flags(), config)
		if err != nil {
			fmt.Println(formatDocError(err))
			return nil
		}
		envelope = &opts
	}

	oldPassword, err := promptPassword("Current password: ", false)
	if err != nil {
		fmt.Println(formatDocError(err))
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}
	defer utils.Wipe(oldPassword)

	newPassword, err := promptNewPassword(false)
	if err != nil {
		fmt.Println(formatDocError(err))
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}
	defer utils.Wipe(newPassword)

	spinner, cleanup := startSpinner("Re-encrypting...", verbose)
	defer cleanup()

	result, err := workflows.Rekey(context.Background(), workflows.RekeyOptions{
		Path:        args[0],
		OldPassword: oldPassword,
		NewPassword: newPassword,
		Envelope:    envelope,
	})
	if err != nil {
		Logger.Debugf("Rekey failed: %v", err)
		spinner.FinalMSG = formatDocError(err)
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	msg := ui.Done("Re-encrypted " + ui.Path.Sprint(result.Path))
	if result.FromFormat != result.ToFormat {
		msg += fmt.Sprintf(" (%s %s %s)", ui.Badge.Sprint(result.FromFormat.String()), ui.Arrow, ui.Badge.Sprint(result.ToFormat.String()))
	}
	spinner.FinalMSG = msg
	return nil
}
