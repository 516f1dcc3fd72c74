package cmd

import (
	logger "github.com/PolarWolf314/vellum/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	DocCmd = &cobra.Command{
		Use:   "doc",
		Short: "Encrypt, decrypt and edit password-protected documents",
		Long: `Provides sealing, unsealing, viewing, re-keying and interactive editing of
password-protected text documents.

Sealed documents are written next to the original with the .vlm extension.
Both the legacy envelope and the authenticated v2 envelope can be read.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing doc command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	DocCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	DocCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	DocCmd.AddCommand(sealCmd)
	DocCmd.AddCommand(unsealCmd)
	DocCmd.AddCommand(catCmd)
	DocCmd.AddCommand(rekeyCmd)
	DocCmd.AddCommand(editCmd)
	DocCmd.AddCommand(logCmd)
}

// Helper functions for testing

// GetDocCmd returns the DocCmd for testing.
func GetDocCmd() *cobra.Command {
	return DocCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetSealCommandState()
	resetUnsealCommandState()
	resetCatCommandState()
	resetRekeyCommandState()
	resetEditCommandState()
	resetLogCommandState()
	resetCobraFlagState(DocCmd)
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
