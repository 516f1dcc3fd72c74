package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/internal/utils"
	"github.com/PolarWolf314/vellum/internal/workflows"
)

var catPasswordStdin bool

func init() {
	catCmd.Flags().BoolVar(&catPasswordStdin, "password-stdin", false, "read the password from stdin")
}

// resetCatCommandState resets the cat command's global state for testing.
func resetCatCommandState() {
	catPasswordStdin = false
}

var catCmd = &cobra.Command{
	Use:   "cat <file>",
	Short: "Print a decrypted document to stdout",
	Long: `Decrypts a .vlm envelope and prints the text to stdout without writing
anything to disk.

Examples:
  vellum doc cat notes.txt.vlm
  vellum doc cat notes.txt.vlm | grep TODO`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting cat command for %s", args[0])

		password, err := promptPassword("Password: ", catPasswordStdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, formatDocError(err))
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}
		defer utils.Wipe(password)

		result, err := workflows.Cat(context.Background(), workflows.CatOptions{
			Path:     args[0],
			Password: password,
		})
		if err != nil {
			Logger.Debugf("Cat failed: %v", err)
			fmt.Fprintln(os.Stderr, formatDocError(err))
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}
		defer clear(result.Plaintext)

		Logger.Debugf("Opened %s envelope (%d bytes)", result.Format, len(result.Plaintext))
		if _, err := os.Stdout.Write(result.Plaintext); err != nil {
			return Logger.ErrorfAndReturn("Failed to write output: %v", err)
		}
		return nil
	},
}
