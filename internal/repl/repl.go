package repl

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the loop dispatches to. Editor
// implements it; tests provide a stub.
type execIface interface {
	New(ctx context.Context) error
	Open(ctx context.Context, path string, encrypted bool) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Use(ctx context.Context, id string) error
	Set(ctx context.Context) error
	Append(ctx context.Context) error
	Save(ctx context.Context, path string, mode SaveMode) error
	Close(ctx context.Context, id string) error
	CloseAll(ctx context.Context) error
	CloseOthers(ctx context.Context) error
	Stats(ctx context.Context) error
}

const helpText = `Available commands:
  new                 create an untitled document
  open <path>         open a plain text file
  open-enc <path>     open an encrypted file
  list                list open documents
  show [id]           print a document
  use <id>            switch the current document
  set                 replace the current document's text
  append              append text to the current document
  save [path]         save the current document
  save-enc [path]     save the current document encrypted
  save-plain [path]   save the current document unencrypted
  close [id]          close a document
  close-all           close every document
  close-others        close every document except the current one
  stats               show line and character counts
  help                show this help
  quit | exit         close everything and leave`

// Run reads commands from reader until end of input or quit. Quitting
// closes every document first and only leaves once all of them closed.
//
// Handler errors are printed with errors.UserMessage and do not stop the
// loop.
func Run(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("vellum> %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], ""
		if len(parts) > 1 {
			arg = strings.Join(parts[1:], " ")
		}

		var cmdErr error
		switch cmd {
		case "help", "?":
			printlnFn(helpText)

		case "new":
			cmdErr = a.New(ctx)

		case "open", "open-enc":
			if arg == "" {
				printlnFn("Usage:", cmd, "<path>")
				continue
			}
			cmdErr = a.Open(ctx, arg, cmd == "open-enc")

		case "l", "list":
			cmdErr = a.List(ctx)

		case "show":
			cmdErr = a.Show(ctx, arg)

		case "use":
			if arg == "" {
				printlnFn("Usage: use <id>")
				continue
			}
			cmdErr = a.Use(ctx, arg)

		case "set":
			cmdErr = a.Set(ctx)

		case "append":
			cmdErr = a.Append(ctx)

		case "save":
			cmdErr = a.Save(ctx, arg, SaveAsIs)

		case "save-enc":
			cmdErr = a.Save(ctx, arg, SaveEncrypted)

		case "save-plain":
			cmdErr = a.Save(ctx, arg, SavePlain)

		case "close":
			cmdErr = a.Close(ctx, arg)

		case "close-all":
			cmdErr = a.CloseAll(ctx)

		case "close-others":
			cmdErr = a.CloseOthers(ctx)

		case "stats":
			cmdErr = a.Stats(ctx)

		case "exit", "quit":
			if err := a.CloseAll(ctx); err != nil {
				printlnFn(verrors.UserMessage(err))
				continue
			}
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(verrors.UserMessage(cmdErr))
		}
	}
}
