package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/internal/configs"
	"github.com/PolarWolf314/vellum/internal/ui"
	"github.com/PolarWolf314/vellum/internal/utils"
	"github.com/PolarWolf314/vellum/internal/workflows"
)

var (
	sealKeep          bool
	sealForce         bool
	sealDryRun        bool
	sealPasswordStdin bool
	sealEnvelope      envelopeFlags
)

func init() {
	sealCmd.Flags().BoolVar(&sealKeep, "keep", false, "keep the plain files after sealing")
	sealCmd.Flags().BoolVar(&sealForce, "force", false, "overwrite existing .vlm files")
	sealCmd.Flags().BoolVar(&sealDryRun, "dry-run", false, "preview which files would be sealed without making changes")
	sealCmd.Flags().BoolVar(&sealPasswordStdin, "password-stdin", false, "read the password from stdin")
	sealEnvelope.register(sealCmd.Flags())
}

// resetSealCommandState resets the seal command's global state for testing.
func resetSealCommandState() {
	sealKeep = false
	sealForce = false
	sealDryRun = false
	sealPasswordStdin = false
	sealEnvelope.reset()
}

var sealCmd = &cobra.Command{
	Use:   "seal <files...>",
	Short: "Encrypt files into password-protected .vlm envelopes",
	Long: `Encrypts plain text files with a password. Each file is written next to the
original with the .vlm extension, and the original is removed unless --keep
is given.

Arguments can be files, directories or glob patterns. Every file is
encrypted before anything is written, so a failure leaves your files as
they were.

Examples:
  vellum doc seal notes.txt                 # Seal one file
  vellum doc seal 'journal/**/*.md'         # Seal all markdown files in journal/
  vellum doc seal notes.txt --format v2     # Use the authenticated v2 envelope
  vellum doc seal notes.txt --keep          # Keep notes.txt
  vellum doc seal . --dry-run               # Preview without sealing
  echo "$PW" | vellum doc seal a.txt --password-stdin`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSeal,
}

func runSeal(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting seal command")
	Logger.Debugf("Patterns: %v, keep=%t, force=%t, dry-run=%t", args, sealKeep, sealForce, sealDryRun)

	config, err := configs.EnsureConfig()
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
	}
	envelope, err := sealEnvelope.resolve(cmd.Flags(), config)
	if err != nil {
		fmt.Println(formatDocError(err))
		return nil
	}
	Logger.Debugf("Envelope: format=%s, suite=%s", envelope.Format, envelope.Suite)

	var password []byte
	if !sealDryRun {
		password, err = promptNewPassword(sealPasswordStdin)
		if err != nil {
			fmt.Println(formatDocError(err))
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}
		defer utils.Wipe(password)
	}

	spinner, cleanup := startSpinner("Sealing files...", verbose)
	defer cleanup()

	result, err := workflows.Seal(context.Background(), workflows.SealOptions{
		FilePatterns: args,
		Password:     password,
		Envelope:     envelope,
		Keep:         sealKeep,
		Force:        sealForce,
		DryRun:       sealDryRun,
	})
	if err != nil {
		Logger.Debugf("Seal failed: %v", err)
		spinner.FinalMSG = formatDocError(err)
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	if result.DryRun {
		spinner.FinalMSG = formatSealDryRun(result)
		return nil
	}

	Logger.Infof("Sealed %d files", len(result.SealedFiles))
	spinner.FinalMSG = formatSealResult(result)
	return nil
}

func formatSealResult(result *workflows.SealResult) string {
	var b strings.Builder
	n := len(result.SealedFiles)
	b.WriteString(ui.Done(fmt.Sprintf("Sealed %d %s with the %s envelope",
		n, utils.Plural(n, "file"), ui.Badge.Sprint(result.Envelope.Format.String()))))
	for i, sealed := range result.SealedFiles {
		fmt.Fprintf(&b, "\n  %s %s %s", ui.Path.Sprint(result.SourceFiles[i]), ui.Arrow, ui.Path.Sprint(sealed))
	}
	if len(result.RemovedFiles) == 0 {
		b.WriteString("\n" + ui.Hint("The plain files were kept"))
	}
	return b.String()
}

func formatSealDryRun(result *workflows.SealResult) string {
	var b strings.Builder
	n := len(result.SourceFiles)
	b.WriteString(ui.Warning.Sprint("[dry-run]") + fmt.Sprintf(" Would seal %d %s with the %s envelope",
		n, utils.Plural(n, "file"), ui.Badge.Sprint(result.Envelope.Format.String())))
	existing := make(map[string]bool, len(result.ExistingFiles))
	for _, f := range result.ExistingFiles {
		existing[f] = true
	}
	for i, sealed := range result.SealedFiles {
		line := fmt.Sprintf("\n  %s %s %s", ui.Path.Sprint(result.SourceFiles[i]), ui.Arrow, ui.Path.Sprint(sealed))
		if existing[sealed] {
			line += " " + ui.Warning.Sprint("(exists)")
		}
		b.WriteString(line)
	}
	b.WriteString("\n\n" + ui.Muted.Sprint("No changes made."))
	return b.String()
}
