package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"github.com/PolarWolf314/vellum/internal/ui"
	"github.com/PolarWolf314/vellum/internal/utils"
)

// Swapped out in tests.
var (
	readPassword          = utils.ReadPassphrase
	readConfirmedPassword = utils.ReadConfirmedPassphrase
	readPasswordStdin     = utils.ReadPasswordStdin
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// promptPassword reads an existing password from stdin or the terminal.
func promptPassword(prompt string, fromStdin bool) ([]byte, error) {
	var (
		pw  []byte
		err error
	)
	if fromStdin {
		pw, err = readPasswordStdin()
	} else {
		pw, err = readPassword(prompt)
	}
	if err != nil {
		return nil, err
	}
	if len(pw) == 0 {
		return nil, verrors.ErrEmptyPassword
	}
	return pw, nil
}

// promptNewPassword reads a password that will seal something. On a
// terminal it must be typed twice.
func promptNewPassword(fromStdin bool) ([]byte, error) {
	if fromStdin {
		return promptPassword("", true)
	}
	return readConfirmedPassword("New password: ", "Confirm password: ")
}

// formatDocError formats a doc command error for display to the user.
func formatDocError(err error) string {
	msg := ui.Failed(verrors.UserMessage(err))
	switch {
	case errors.Is(err, verrors.ErrFileExists):
		msg += "\n" + ui.Hint("Run again with "+ui.Flag.Sprint("--force")+" to overwrite")
	case errors.Is(err, verrors.ErrNoFilesFound):
		msg += "\n" + ui.Hint("Check the paths, or quote globs like "+ui.Code.Sprint("'**/*.txt'"))
	}
	return msg
}

// isUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isUnexpectedError(err error) bool {
	for _, expected := range []error{
		verrors.ErrDecryption,
		verrors.ErrEmptyPassword,
		verrors.ErrPasswordMismatch,
		verrors.ErrNoFilesFound,
		verrors.ErrRead,
		verrors.ErrFileExists,
		verrors.ErrUnknownFormat,
		verrors.ErrInvalidDateFormat,
	} {
		if errors.Is(err, expected) {
			return false
		}
	}
	return true
}

// resetCobraFlagState marks every flag of c and its subcommands unchanged
// to prevent test pollution.
func resetCobraFlagState(c *cobra.Command) {
	reset := func(flag *pflag.Flag) { flag.Changed = false }
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}
