package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/internal/ui"
	"github.com/PolarWolf314/vellum/internal/utils"
	"github.com/PolarWolf314/vellum/internal/workflows"
)

var (
	unsealForce         bool
	unsealDryRun        bool
	unsealPasswordStdin bool
)

func init() {
	unsealCmd.Flags().BoolVar(&unsealForce, "force", false, "overwrite existing plain files")
	unsealCmd.Flags().BoolVar(&unsealDryRun, "dry-run", false, "check the password and preview without writing files")
	unsealCmd.Flags().BoolVar(&unsealPasswordStdin, "password-stdin", false, "read the password from stdin")
}

// resetUnsealCommandState resets the unseal command's global state for testing.
func resetUnsealCommandState() {
	unsealForce = false
	unsealDryRun = false
	unsealPasswordStdin = false
}

var unsealCmd = &cobra.Command{
	Use:   "unseal <files...>",
	Short: "Decrypt .vlm envelopes back to plain files",
	Long: `Decrypts .vlm files back to their plain names. Both legacy and v2 envelopes
are accepted. The envelopes are kept.

Every file is decrypted before anything is written, so a wrong password
leaves your files as they were.

Examples:
  vellum doc unseal notes.txt.vlm           # Unseal one file
  vellum doc unseal 'journal/**/*.vlm'      # Unseal a tree
  vellum doc unseal notes.txt.vlm --force   # Overwrite notes.txt
  vellum doc unseal . --dry-run             # Check the password only`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUnseal,
}

func runUnseal(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting unseal command")
	Logger.Debugf("Patterns: %v, force=%t, dry-run=%t", args, unsealForce, unsealDryRun)

	password, err := promptPassword("Password: ", unsealPasswordStdin)
	if err != nil {
		fmt.Println(formatDocError(err))
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}
	defer utils.Wipe(password)

	spinner, cleanup := startSpinner("Unsealing files...", verbose)
	defer cleanup()

	result, err := workflows.Unseal(context.Background(), workflows.UnsealOptions{
		FilePatterns: args,
		Password:     password,
		Force:        unsealForce,
		DryRun:       unsealDryRun,
	})
	if err != nil {
		Logger.Debugf("Unseal failed: %v", err)
		spinner.FinalMSG = formatDocError(err)
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Infof("Unsealed %d files", len(result.PlainFiles))
	spinner.FinalMSG = formatUnsealResult(result)
	return nil
}

func formatUnsealResult(result *workflows.UnsealResult) string {
	var b strings.Builder
	n := len(result.PlainFiles)
	if result.DryRun {
		b.WriteString(ui.Warning.Sprint("[dry-run]") + fmt.Sprintf(" Would unseal %d %s", n, utils.Plural(n, "file")))
	} else {
		b.WriteString(ui.Done(fmt.Sprintf("Unsealed %d %s", n, utils.Plural(n, "file"))))
	}

	existing := make(map[string]bool, len(result.ExistingFiles))
	for _, f := range result.ExistingFiles {
		existing[f] = true
	}
	for i, plain := range result.PlainFiles {
		line := fmt.Sprintf("\n  %s %s %s %s", ui.Path.Sprint(result.SourceFiles[i]),
			ui.Badge.Sprint(result.Formats[i].String()), ui.Arrow, ui.Path.Sprint(plain))
		if result.DryRun && existing[plain] {
			line += " " + ui.Warning.Sprint("(exists)")
		}
		b.WriteString(line)
	}

	if result.DryRun {
		b.WriteString("\n\n" + ui.Muted.Sprint("No changes made."))
	}
	return b.String()
}
