package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"

	"github.com/PolarWolf314/vellum/internal/codec"
	"github.com/PolarWolf314/vellum/internal/document"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
	logger "github.com/PolarWolf314/vellum/internal/logging"
)

// Options configures a Manager.
type Options struct {
	// Files is required.
	Files FileAccess

	Logger logger.Logger

	// UntitledPrefix replaces "Untitled" in the names of unsaved documents.
	UntitledPrefix string

	// Seal is the envelope used when a document is first saved encrypted.
	// Documents loaded from an envelope keep their own format.
	Seal codec.Options

	Observer Observer
}

// OpenOptions controls how a file is loaded.
type OpenOptions struct {
	// Encrypted expects an envelope. It is implied by a non-empty Password.
	Encrypted bool
	Password  []byte
}

func (o OpenOptions) encrypted() bool {
	return o.Encrypted || len(o.Password) > 0
}

// SaveOptions controls a save.
type SaveOptions struct {
	// Path overrides the record's backing path ("save as").
	Path string

	// Password seals the content. It is required when saving a record that
	// was loaded from an envelope, unless Plain is set.
	Password []byte

	// Confirm, when non-nil, must equal Password.
	Confirm []byte

	// Plain writes the text unencrypted even if the record was encrypted.
	Plain bool

	// Seal overrides the envelope format for this save.
	Seal *codec.Options

	// Force writes a clean record even when nothing about it changed.
	Force bool
}

// DecideFunc chooses what to do with a dirty record during CloseAll and
// CloseOthers.
type DecideFunc func(rec document.Record) (Decision, SaveOptions)

// Manager is the set of open documents.
type Manager struct {
	mu sync.Mutex

	files          FileAccess
	log            logger.Logger
	untitledPrefix string
	seal           codec.Options
	observer       Observer

	lastID       uint64
	lastUntitled int
	records      []*document.Record
}

// NewManager returns an empty Manager.
func NewManager(opts Options) *Manager {
	return &Manager{
		files:          opts.Files,
		log:            opts.Logger,
		untitledPrefix: opts.UntitledPrefix,
		seal:           opts.Seal,
		observer:       opts.Observer,
	}
}

// New creates an empty, clean, unsaved document.
func (m *Manager) New() document.Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastUntitled++
	rec := m.allocate(m.lastUntitled)
	m.log.Debugf("Created document %d (%s)", rec.ID, rec.Name())
	m.notify(OpNew, rec)
	return rec.Snapshot()
}

// Open reads path into a new document. Nothing is created when the read or
// decryption fails.
func (m *Manager) Open(ctx context.Context, path string, opts OpenOptions) (document.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content, format, err := m.load(ctx, path, opts)
	if err != nil {
		return document.Record{}, err
	}

	rec := m.allocate(0)
	rec.Load(content, path, opts.encrypted(), format)
	m.log.Infof("Opened %s as document %d", path, rec.ID)
	m.notify(OpOpen, rec)
	return rec.Snapshot(), nil
}

// OpenInto reads path into an existing document, replacing its content. The
// document is unchanged when the read or decryption fails.
func (m *Manager) OpenInto(ctx context.Context, id uint64, path string, opts OpenOptions) (document.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, rec, err := m.find(id)
	if err != nil {
		return document.Record{}, err
	}

	content, format, err := m.load(ctx, path, opts)
	if err != nil {
		return document.Record{}, err
	}

	rec.Load(content, path, opts.encrypted(), format)
	m.log.Infof("Opened %s into document %d", path, rec.ID)
	m.notify(OpOpen, rec)
	return rec.Snapshot(), nil
}

// SetContent replaces a document's text.
func (m *Manager) SetContent(id uint64, text string) error {
	return m.edit(id, func(rec *document.Record) {
		rec.Edit(text)
	})
}

// Append adds text to the end of a document.
func (m *Manager) Append(id uint64, text string) error {
	return m.edit(id, func(rec *document.Record) {
		rec.Edit(rec.Content() + text)
	})
}

// ContentChanged marks a document dirty after its text was changed by an
// external editing surface.
func (m *Manager) ContentChanged(id uint64) error {
	return m.edit(id, func(rec *document.Record) {
		rec.MarkChanged()
	})
}

func (m *Manager) edit(id uint64, fn func(rec *document.Record)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, rec, err := m.find(id)
	if err != nil {
		return err
	}
	fn(rec)
	return nil
}

// Content returns a document's text.
func (m *Manager) Content(id uint64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, rec, err := m.find(id)
	if err != nil {
		return "", err
	}
	return rec.Content(), nil
}

// Get returns a snapshot of a document.
func (m *Manager) Get(id uint64) (document.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, rec, err := m.find(id)
	if err != nil {
		return document.Record{}, err
	}
	return rec.Snapshot(), nil
}

// List returns snapshots of all open documents in the order they were created.
func (m *Manager) List() []document.Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]document.Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec.Snapshot())
	}
	return out
}

// DirtyIDs returns the ids of documents with unsaved changes.
func (m *Manager) DirtyIDs() []uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []uint64
	for _, rec := range m.records {
		if rec.Dirty {
			ids = append(ids, rec.ID)
		}
	}
	return ids
}

// Len returns the number of open documents.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// Save writes a document. On any failure the document stays as it was,
// including its dirty state and content.
func (m *Manager) Save(ctx context.Context, id uint64, opts SaveOptions) (document.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, rec, err := m.find(id)
	if err != nil {
		return document.Record{}, err
	}
	if err := m.save(ctx, rec, opts); err != nil {
		return rec.Snapshot(), err
	}
	return rec.Snapshot(), nil
}

// Close closes a document following ResolveClose. It reports whether the
// document was removed. A failed save returns ErrCloseAborted wrapping the
// save error and leaves the document open.
func (m *Manager) Close(ctx context.Context, id uint64, decision Decision, opts SaveOptions) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, rec, err := m.find(id)
	if err != nil {
		return false, err
	}

	op := OpClose
	switch ResolveClose(rec.Dirty, decision) {
	case ResolutionKeep:
		m.log.Debugf("Close of document %d aborted", id)
		return false, nil
	case ResolutionSaveThenRemove:
		if err := m.save(ctx, rec, opts); err != nil {
			return false, fmt.Errorf("%w: %w", verrors.ErrCloseAborted, err)
		}
	case ResolutionRemove:
		if rec.Dirty {
			op = OpDiscard
		}
	}

	m.records = append(m.records[:idx], m.records[idx+1:]...)
	m.log.Infof("Closed document %d (%s)", rec.ID, rec.Name())
	m.notify(op, rec)
	return true, nil
}

// CloseAll closes every document, last first. It returns the ids it closed
// and stops at the first document that stays open.
func (m *Manager) CloseAll(ctx context.Context, decide DecideFunc) ([]uint64, error) {
	return m.closeMany(ctx, decide, func(document.Record) bool { return true })
}

// CloseOthers closes every document except keep, last first.
func (m *Manager) CloseOthers(ctx context.Context, keep uint64, decide DecideFunc) ([]uint64, error) {
	if _, err := m.Get(keep); err != nil {
		return nil, err
	}
	return m.closeMany(ctx, decide, func(rec document.Record) bool { return rec.ID != keep })
}

func (m *Manager) closeMany(ctx context.Context, decide DecideFunc, include func(document.Record) bool) ([]uint64, error) {
	records := m.List()
	var closed []uint64
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if !include(rec) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return closed, err
		}

		// Ask with a fresh snapshot; an earlier decision may have saved it.
		current, err := m.Get(rec.ID)
		if errors.Is(err, verrors.ErrDocumentNotFound) {
			continue
		}
		if err != nil {
			return closed, err
		}

		decision, opts := DecisionAbort, SaveOptions{}
		if current.Dirty && decide != nil {
			decision, opts = decide(current)
		}

		ok, err := m.Close(ctx, rec.ID, decision, opts)
		if err != nil {
			return closed, err
		}
		if !ok {
			return closed, fmt.Errorf("%w: %s", verrors.ErrCloseAborted, current.Name())
		}
		closed = append(closed, rec.ID)
	}
	return closed, nil
}

func (m *Manager) allocate(ordinal int) *document.Record {
	m.lastID++
	rec := document.New(m.lastID, m.untitledPrefix, ordinal)
	m.records = append(m.records, rec)
	return rec
}

func (m *Manager) find(id uint64) (int, *document.Record, error) {
	for i, rec := range m.records {
		if rec.ID == id {
			return i, rec, nil
		}
	}
	return -1, nil, fmt.Errorf("%w: %d", verrors.ErrDocumentNotFound, id)
}

func (m *Manager) load(ctx context.Context, path string, opts OpenOptions) (string, codec.Format, error) {
	if opts.encrypted() && len(opts.Password) == 0 {
		return "", codec.FormatLegacy, verrors.ErrEmptyPassword
	}

	data, err := m.files.ReadFile(ctx, path)
	if err != nil {
		if !errors.Is(err, verrors.ErrRead) {
			err = fmt.Errorf("%w: %v", verrors.ErrRead, err)
		}
		return "", codec.FormatLegacy, err
	}

	if !opts.encrypted() {
		return string(data), codec.FormatLegacy, nil
	}

	plaintext, format, err := codec.OpenAny(data, opts.Password)
	if err != nil {
		m.log.Debugf("Decryption of %s failed: %v", path, err)
		return "", format, err
	}
	content := string(plaintext)
	clear(plaintext)
	return content, format, nil
}

func (m *Manager) save(ctx context.Context, rec *document.Record, opts SaveOptions) error {
	path := opts.Path
	if path == "" {
		path = rec.BackingPath
	}
	if path == "" {
		return verrors.ErrNoBackingPath
	}

	encrypt := !opts.Plain && (len(opts.Password) > 0 || rec.Encrypted)

	unchanged := path == rec.BackingPath && len(opts.Password) == 0 && encrypt == rec.Encrypted
	if !rec.Dirty && !opts.Force && unchanged {
		m.log.Debugf("Document %d is clean, nothing to save", rec.ID)
		return nil
	}

	if encrypt {
		if len(opts.Password) == 0 {
			return verrors.ErrEmptyPassword
		}
		if opts.Confirm != nil && subtle.ConstantTimeCompare(opts.Password, opts.Confirm) != 1 {
			return verrors.ErrPasswordMismatch
		}
	}

	var (
		data   []byte
		format = codec.FormatLegacy
	)
	if encrypt {
		sealOpts := m.sealOptionsFor(rec, opts)
		sealed, err := codec.SealWith([]byte(rec.Content()), opts.Password, sealOpts)
		if err != nil {
			return err
		}
		data, format = sealed, sealOpts.Format
	} else {
		data = []byte(rec.Content())
	}

	write := m.files.WriteFile
	if encrypt {
		write = m.files.WriteSealed
	}
	if err := write(ctx, path, data); err != nil {
		if !errors.Is(err, verrors.ErrWrite) {
			err = fmt.Errorf("%w: %v", verrors.ErrWrite, err)
		}
		m.log.Debugf("Write of document %d to %s failed: %v", rec.ID, path, err)
		return err
	}

	rec.Saved(path, encrypt, format)
	m.log.Infof("Saved document %d to %s", rec.ID, path)
	m.notify(OpSave, rec)
	return nil
}

func (m *Manager) sealOptionsFor(rec *document.Record, opts SaveOptions) codec.Options {
	if opts.Seal != nil {
		return *opts.Seal
	}
	if rec.Encrypted {
		seal := m.seal
		seal.Format = rec.Format
		return seal
	}
	return m.seal
}

func (m *Manager) notify(op Op, rec *document.Record) {
	if m.observer == nil {
		return
	}
	m.observer(Event{
		Op:        op,
		ID:        rec.ID,
		Path:      rec.BackingPath,
		Encrypted: rec.Encrypted,
		Format:    rec.Format,
	})
}
