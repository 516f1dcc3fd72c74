package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PolarWolf314/vellum/internal/document"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"github.com/PolarWolf314/vellum/internal/session"
	"github.com/PolarWolf314/vellum/internal/ui"
	"github.com/PolarWolf314/vellum/internal/utils"
)

// SaveMode selects how the save command treats encryption.
type SaveMode int

const (
	// SaveAsIs re-encrypts documents loaded from an envelope and writes the
	// rest as plain text.
	SaveAsIs SaveMode = iota
	SaveEncrypted
	SavePlain
)

// Prompter reads a password without echo.
type Prompter interface {
	Password(prompt string) ([]byte, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(prompt string) ([]byte, error)

func (f PrompterFunc) Password(prompt string) ([]byte, error) { return f(prompt) }

// TTYPrompter reads passwords from the controlling terminal, leaving stdin
// to the command loop.
var TTYPrompter Prompter = PrompterFunc(utils.ReadPassphraseFromTTY)

// Options configures an Editor.
type Options struct {
	Manager  *session.Manager
	Reader   *bufio.Reader
	Out      io.Writer
	Prompter Prompter

	// OnPersist is called with the path of every document opened or saved.
	OnPersist func(path string)

	// OnCloseAll is called with the ids closed by close-all and quit.
	OnCloseAll func(closed []uint64)
}

// Editor runs REPL commands against a session.Manager. It tracks the
// current document and asks the user for close decisions, paths and
// passwords.
type Editor struct {
	mgr      *session.Manager
	reader   *bufio.Reader
	out      io.Writer
	prompter Prompter

	onPersist  func(path string)
	onCloseAll func(closed []uint64)

	current uint64
	pending [][]byte
}

// NewEditor returns an Editor with no current document.
func NewEditor(opts Options) *Editor {
	prompter := opts.Prompter
	if prompter == nil {
		prompter = TTYPrompter
	}
	return &Editor{
		mgr:        opts.Manager,
		reader:     opts.Reader,
		out:        opts.Out,
		prompter:   prompter,
		onPersist:  opts.OnPersist,
		onCloseAll: opts.OnCloseAll,
	}
}

// Status describes the current document for the prompt.
func (e *Editor) Status() string {
	rec, err := e.mgr.Get(e.current)
	if err != nil {
		return "no document"
	}
	return fmt.Sprintf("%s (%d open)", rec.Title(), e.mgr.Len())
}

// Current returns the id of the current document, or 0.
func (e *Editor) Current() uint64 {
	return e.current
}

func (e *Editor) printf(format string, args ...any) {
	fmt.Fprintf(e.out, format+"\n", args...)
}

func (e *Editor) New(ctx context.Context) error {
	rec := e.mgr.New()
	e.current = rec.ID
	e.printf("%s", ui.Done("Created "+ui.Highlight.Sprint(rec.Title())))
	return nil
}

// Open loads path. An untitled, unmodified, empty current document is
// reused instead of creating a new one.
func (e *Editor) Open(ctx context.Context, path string, encrypted bool) error {
	opts := session.OpenOptions{Encrypted: encrypted}
	if encrypted {
		pw, err := e.prompter.Password(fmt.Sprintf("Password for %s: ", path))
		if err != nil {
			return err
		}
		defer utils.Wipe(pw)
		opts.Password = pw
	}

	var (
		rec document.Record
		err error
	)
	if cur, getErr := e.mgr.Get(e.current); getErr == nil && reusable(cur) {
		rec, err = e.mgr.OpenInto(ctx, cur.ID, path, opts)
	} else {
		rec, err = e.mgr.Open(ctx, path, opts)
	}
	if err != nil {
		return err
	}

	e.current = rec.ID
	e.persisted(path)
	e.printf("%s", ui.Done("Opened "+ui.Highlight.Sprint(rec.Title())))
	return nil
}

func reusable(rec document.Record) bool {
	return rec.BackingPath == "" && !rec.Dirty && rec.Content() == ""
}

func (e *Editor) List(ctx context.Context) error {
	records := e.mgr.List()
	if len(records) == 0 {
		e.printf("No open documents.")
		return nil
	}
	for _, rec := range records {
		marker := " "
		if rec.ID == e.current {
			marker = ui.Info.Sprint(ui.Arrow)
		}
		title := rec.Title()
		if rec.Dirty {
			title = ui.Dirty.Sprint(document.DirtyMarker) + strings.TrimPrefix(title, document.DirtyMarker)
		}
		line := fmt.Sprintf("%s %3d  %s", marker, rec.ID, title)
		if rec.Encrypted {
			line += " " + ui.Badge.Sprint(rec.Format.String())
		}
		e.printf("%s", line)
	}
	return nil
}

func (e *Editor) Show(ctx context.Context, id string) error {
	rec, err := e.resolve(id)
	if err != nil {
		return err
	}
	e.printf("%s", rec.Content())
	return nil
}

func (e *Editor) Use(ctx context.Context, id string) error {
	rec, err := e.resolve(id)
	if err != nil {
		return err
	}
	e.current = rec.ID
	return nil
}

func (e *Editor) Set(ctx context.Context) error {
	rec, err := e.resolve("")
	if err != nil {
		return err
	}
	text, err := GetMultiline(e.reader, "Enter the new text:", e.out)
	if err != nil {
		return err
	}
	return e.mgr.SetContent(rec.ID, text)
}

func (e *Editor) Append(ctx context.Context) error {
	rec, err := e.resolve("")
	if err != nil {
		return err
	}
	text, err := GetMultiline(e.reader, "Enter the text to append:", e.out)
	if err != nil {
		return err
	}
	if content := rec.Content(); content != "" && !strings.HasSuffix(content, "\n") {
		text = "\n" + text
	}
	return e.mgr.Append(rec.ID, text)
}

func (e *Editor) Save(ctx context.Context, path string, mode SaveMode) error {
	defer e.wipePending()

	rec, err := e.resolve("")
	if err != nil {
		return err
	}
	opts, err := e.saveOptions(rec, path, mode)
	if err != nil {
		return err
	}
	saved, err := e.mgr.Save(ctx, rec.ID, opts)
	if err != nil {
		return err
	}
	e.persisted(saved.BackingPath)
	e.printf("%s", ui.Done("Saved "+ui.Path.Sprint(saved.BackingPath)))
	return nil
}

func (e *Editor) Close(ctx context.Context, id string) error {
	defer e.wipePending()

	rec, err := e.resolve(id)
	if err != nil {
		return err
	}

	decision, opts := session.DecisionAbort, session.SaveOptions{}
	if rec.Dirty {
		decision, opts = e.decide(rec)
	}

	closed, err := e.mgr.Close(ctx, rec.ID, decision, opts)
	if err != nil {
		return err
	}
	if !closed {
		e.printf("Close cancelled.")
		return nil
	}
	e.printf("%s", ui.Done("Closed "+ui.Highlight.Sprint(rec.Name())))
	e.afterClose()
	return nil
}

func (e *Editor) CloseAll(ctx context.Context) error {
	defer e.wipePending()

	closed, err := e.mgr.CloseAll(ctx, e.decide)
	e.reportClosed(closed)
	if e.onCloseAll != nil && len(closed) > 0 {
		e.onCloseAll(closed)
	}
	return err
}

func (e *Editor) CloseOthers(ctx context.Context) error {
	defer e.wipePending()

	rec, err := e.resolve("")
	if err != nil {
		return err
	}
	closed, err := e.mgr.CloseOthers(ctx, rec.ID, e.decide)
	e.reportClosed(closed)
	return err
}

func (e *Editor) Stats(ctx context.Context) error {
	rec, err := e.resolve("")
	if err != nil {
		return err
	}
	stats := rec.Stats()
	content := rec.Content()
	col := utf8.RuneCountInString(content[strings.LastIndex(content, "\n")+1:]) + 1
	e.printf("Ln %d, Col %d | %d characters | %d bytes | %s",
		stats.Lines, col, stats.Characters, stats.Bytes, stats.Encoding)
	if !stats.ValidUTF8 {
		e.printf("%s", ui.Warning.Sprint("The document contains invalid UTF-8."))
	}
	return nil
}

// decide asks what to do with a dirty document. Any failure to collect a
// save target or password cancels the close.
func (e *Editor) decide(rec document.Record) (session.Decision, session.SaveOptions) {
	prompt := fmt.Sprintf("Save changes to %s? [y]es / [n]o / [c]ancel", ui.Highlight.Sprint(rec.Name()))
	answer, err := GetSimpleText(e.reader, prompt, e.out)
	if err != nil {
		return session.DecisionAbort, session.SaveOptions{}
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		opts, err := e.saveOptions(rec, "", SaveAsIs)
		if err != nil {
			e.printf("%s", verrors.UserMessage(err))
			return session.DecisionAbort, session.SaveOptions{}
		}
		return session.DecisionSave, opts
	case "n", "no":
		return session.DecisionDiscard, session.SaveOptions{}
	default:
		return session.DecisionAbort, session.SaveOptions{}
	}
}

// saveOptions collects the target path and passwords for a save. Passwords
// are queued on e.pending and wiped by the calling command.
func (e *Editor) saveOptions(rec document.Record, path string, mode SaveMode) (session.SaveOptions, error) {
	opts := session.SaveOptions{Path: path, Plain: mode == SavePlain}

	if path == "" && rec.BackingPath == "" {
		target, err := GetSimpleText(e.reader, fmt.Sprintf("Save %s as:", rec.Name()), e.out)
		if err != nil {
			return opts, err
		}
		if target == "" {
			return opts, verrors.ErrNoBackingPath
		}
		opts.Path = target
	}

	encrypt := mode == SaveEncrypted || (mode == SaveAsIs && rec.Encrypted)
	if !encrypt {
		return opts, nil
	}

	pw, err := e.prompter.Password("Password: ")
	if err != nil {
		return opts, err
	}
	e.pending = append(e.pending, pw)
	confirm, err := e.prompter.Password("Confirm password: ")
	if err != nil {
		return opts, err
	}
	e.pending = append(e.pending, confirm)

	opts.Password = pw
	opts.Confirm = confirm
	return opts, nil
}

func (e *Editor) wipePending() {
	for _, pw := range e.pending {
		utils.Wipe(pw)
	}
	e.pending = nil
}

// resolve returns the document named by id, or the current one when id is empty.
func (e *Editor) resolve(id string) (document.Record, error) {
	if id == "" {
		if e.current == 0 {
			return document.Record{}, fmt.Errorf("%w: no current document", verrors.ErrDocumentNotFound)
		}
		return e.mgr.Get(e.current)
	}
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return document.Record{}, fmt.Errorf("%w: %q is not a document id", verrors.ErrDocumentNotFound, id)
	}
	return e.mgr.Get(n)
}

func (e *Editor) reportClosed(closed []uint64) {
	if len(closed) > 0 {
		e.printf("%s", ui.Done(fmt.Sprintf("Closed %d %s", len(closed), utils.Plural(len(closed), "document"))))
	}
	e.afterClose()
}

// afterClose moves the current document to the last open one if it was closed.
func (e *Editor) afterClose() {
	if _, err := e.mgr.Get(e.current); err == nil {
		return
	}
	e.current = 0
	if records := e.mgr.List(); len(records) > 0 {
		e.current = records[len(records)-1].ID
	}
}

func (e *Editor) persisted(path string) {
	if e.onPersist != nil && path != "" {
		e.onPersist(path)
	}
}
