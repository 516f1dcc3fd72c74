package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/vellum/internal/audit"
	"github.com/PolarWolf314/vellum/internal/codec"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"github.com/PolarWolf314/vellum/internal/storage"
)

// RekeyOptions configures the rekey workflow.
type RekeyOptions struct {
	Path string

	// OldPassword opens the existing envelope.
	OldPassword []byte

	// NewPassword seals the replacement envelope.
	NewPassword []byte

	// Envelope selects the new format. Nil keeps the current one.
	Envelope *codec.Options
}

// RekeyResult contains the outcome of a rekey operation.
type RekeyResult struct {
	Path       string
	FromFormat codec.Format
	ToFormat   codec.Format
}

// Rekey re-encrypts an envelope in place with a new password and optionally
// a new format. The file is replaced atomically, so a failure leaves the
// old envelope intact.
//
// Returns ErrEmptyPassword if either password is empty.
// Returns ErrDecryption if the old password does not open the envelope.
func Rekey(ctx context.Context, opts RekeyOptions) (*RekeyResult, error) {
	if len(opts.OldPassword) == 0 || len(opts.NewPassword) == 0 {
		return nil, verrors.ErrEmptyPassword
	}

	files := storage.NewFiles()
	envelope, err := files.ReadFile(ctx, opts.Path)
	if err != nil {
		return nil, err
	}

	plaintext, from, err := codec.OpenAny(envelope, opts.OldPassword)
	if err != nil {
		return nil, err
	}
	defer clear(plaintext)

	target := codec.Options{Format: from}
	if opts.Envelope != nil {
		target = *opts.Envelope
	}

	resealed, err := codec.SealWith(plaintext, opts.NewPassword, target)
	if err != nil {
		return nil, fmt.Errorf("sealing %s: %w", opts.Path, err)
	}

	if err := files.WriteSealed(ctx, opts.Path, resealed); err != nil {
		return nil, err
	}

	auditEntry := audit.LogWithUser("rekey")
	auditEntry.Files = []string{opts.Path}
	auditEntry.Format = target.Format.String()
	audit.Log(auditEntry)

	return &RekeyResult{
		Path:       opts.Path,
		FromFormat: from,
		ToFormat:   target.Format,
	}, nil
}
