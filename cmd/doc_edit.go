package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/internal/audit"
	"github.com/PolarWolf314/vellum/internal/configs"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"github.com/PolarWolf314/vellum/internal/repl"
	"github.com/PolarWolf314/vellum/internal/session"
	"github.com/PolarWolf314/vellum/internal/storage"
	"github.com/PolarWolf314/vellum/internal/ui"
)

// Swapped out in tests.
var (
	editInput    io.Reader
	editPrompter repl.Prompter = repl.TTYPrompter
)

var editNoBanner bool

func init() {
	editCmd.Flags().BoolVar(&editNoBanner, "no-banner", false, "do not print the banner")
}

// resetEditCommandState resets the edit command's global state for testing.
func resetEditCommandState() {
	editNoBanner = false
}

var editCmd = &cobra.Command{
	Use:   "edit [files...]",
	Short: "Edit documents in an interactive session",
	Long: `Starts an interactive session for editing plain and encrypted documents.
Files ending in .vlm are opened as encrypted and ask for their password.
With no files, the session starts with an empty untitled document.

Closing a document with unsaved changes asks whether to save it first.
Type help in the session for the list of commands.

Examples:
  vellum doc edit
  vellum doc edit notes.txt journal.md.vlm`,
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting edit session")

	config, err := configs.EnsureConfig()
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
	}
	seal, err := config.SealOptions()
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to read envelope settings: %v", err)
	}
	Logger.Debugf("Default envelope: format=%s, suite=%s", seal.Format, seal.Suite)

	mgr := session.NewManager(session.Options{
		Files:          storage.NewFiles(),
		Logger:         Logger,
		UntitledPrefix: config.Editor.UntitledPrefix,
		Seal:           seal,
		Observer:       audit.Observer(config.User.InstallUUID),
	})

	in := editInput
	if in == nil {
		in = os.Stdin
	}
	reader := bufio.NewReader(in)

	editor := repl.NewEditor(repl.Options{
		Manager:  mgr,
		Reader:   reader,
		Out:      os.Stdout,
		Prompter: editPrompter,
		OnPersist: func(path string) {
			config.AddRecent(path)
			if err := configs.SaveConfig(config); err != nil {
				Logger.Warnf("Failed to update recent files: %v", err)
			}
		},
		OnCloseAll: func(closed []uint64) {
			entry := audit.LogWithUser("close-all")
			entry.Count = len(closed)
			audit.Log(entry)
		},
	})

	if !editNoBanner {
		fmt.Println()
		figure.NewColorFigure("vellum", "", "cyan", true).Print()
		fmt.Println()
		fmt.Println(ui.Hint("Type " + ui.Code.Sprint("help") + " for commands and " + ui.Code.Sprint("quit") + " to leave"))
	}

	ctx := context.Background()
	for _, path := range args {
		encrypted := storage.IsSealed(path)
		Logger.Debugf("Opening %s (encrypted=%t)", path, encrypted)
		if err := editor.Open(ctx, path, encrypted); err != nil {
			fmt.Println(ui.Failed(verrors.UserMessage(err)))
		}
	}
	if len(args) == 0 {
		if err := editor.New(ctx); err != nil {
			return err
		}
	}

	repl.Run(ctx, editor, editor.Status, reader)
	Logger.Infof("Edit session ended")
	return nil
}
