package workflows

import (
	"context"

	"github.com/PolarWolf314/vellum/internal/codec"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"github.com/PolarWolf314/vellum/internal/storage"
)

// CatOptions configures the cat workflow.
type CatOptions struct {
	Path     string
	Password []byte
}

// CatResult contains the decrypted document.
type CatResult struct {
	// Plaintext is owned by the caller, who should clear it after use.
	Plaintext []byte
	Format    codec.Format
}

// Cat decrypts a single envelope without writing anything to disk.
//
// Returns ErrEmptyPassword if no password is given.
// Returns ErrRead if the file cannot be read.
// Returns ErrDecryption if the envelope cannot be opened with the password.
func Cat(ctx context.Context, opts CatOptions) (*CatResult, error) {
	if len(opts.Password) == 0 {
		return nil, verrors.ErrEmptyPassword
	}

	envelope, err := storage.NewFiles().ReadFile(ctx, opts.Path)
	if err != nil {
		return nil, err
	}

	plaintext, format, err := codec.OpenAny(envelope, opts.Password)
	if err != nil {
		return nil, err
	}

	return &CatResult{Plaintext: plaintext, Format: format}, nil
}
