package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "vellum",
	Short: "Vellum - password-protected text documents from the command line.",
	Long: `Vellum encrypts, decrypts and edits password-protected text documents.

Features:
  - Seal files into .vlm envelopes and unseal them again
  - Read legacy envelopes and write authenticated v2 envelopes
  - Edit several documents at once in an interactive session

Usage:
  vellum <command> [flags]

Available Commands:
  doc        Seal, unseal, view and edit documents
  config     View and change settings

Run 'vellum help <command>' for more details on a specific command.
`,
	Run: func(c *cobra.Command, args []string) {
		figure.NewColorFigure("vellum", "", "cyan", true).Print()
		fmt.Println()
		fmt.Println("Welcome to vellum! Run 'vellum --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.DocCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
