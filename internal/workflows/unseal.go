package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/vellum/internal/audit"
	"github.com/PolarWolf314/vellum/internal/codec"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"github.com/PolarWolf314/vellum/internal/storage"
)

// UnsealOptions configures the unseal workflow.
type UnsealOptions struct {
	// FilePatterns specifies .vlm files, directories or globs to unseal.
	FilePatterns []string

	// BasePath resolves relative patterns. Empty means the working directory.
	BasePath string

	// Password opens every file.
	Password []byte

	// Force overwrites existing plain files.
	Force bool

	// DryRun previews which files would be unsealed without making changes.
	DryRun bool
}

// UnsealResult contains the outcome of an unseal operation.
type UnsealResult struct {
	// SourceFiles lists the envelope files that were opened.
	SourceFiles []string

	// PlainFiles lists the files that were written.
	PlainFiles []string

	// Formats holds the detected envelope format of each source file.
	Formats []codec.Format

	// ExistingFiles lists plain files that already exist and would be overwritten.
	ExistingFiles []string

	// DryRun indicates whether this was a dry-run (no files modified).
	DryRun bool
}

// Unseal decrypts .vlm files of any envelope format back to their plain
// names. The envelopes are kept.
//
// Every file is opened before anything is written, so a wrong password for
// any file leaves the filesystem untouched.
//
// Returns ErrEmptyPassword if no password is given.
// Returns ErrNoFilesFound if no .vlm files match the specified patterns.
// Returns ErrDecryption if any file cannot be opened with the password.
// Returns ErrFileExists if a plain file exists and Force is not set.
func Unseal(ctx context.Context, opts UnsealOptions) (*UnsealResult, error) {
	if len(opts.Password) == 0 {
		return nil, verrors.ErrEmptyPassword
	}

	sources, err := resolve(opts.FilePatterns, opts.BasePath, storage.KindSealed)
	if err != nil {
		return nil, err
	}

	result := &UnsealResult{
		SourceFiles: sources,
		DryRun:      opts.DryRun,
	}
	for _, f := range sources {
		result.PlainFiles = append(result.PlainFiles, storage.PlainPath(f))
	}
	result.ExistingFiles = findExistingFiles(result.PlainFiles)

	files := &storage.Files{Mode: storage.SealedFileMode}
	plaintexts := make([][]byte, len(sources))
	defer func() {
		for _, p := range plaintexts {
			clear(p)
		}
	}()

	for i, f := range sources {
		envelope, err := files.ReadFile(ctx, f)
		if err != nil {
			return nil, err
		}
		plaintext, format, err := codec.OpenAny(envelope, opts.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, f)
		}
		plaintexts[i] = plaintext
		result.Formats = append(result.Formats, format)
	}

	if opts.DryRun {
		return result, nil
	}
	if len(result.ExistingFiles) > 0 && !opts.Force {
		return nil, fmt.Errorf("%w: %s", verrors.ErrFileExists, result.ExistingFiles[0])
	}

	for i, f := range result.PlainFiles {
		if err := files.WriteFile(ctx, f, plaintexts[i]); err != nil {
			return nil, err
		}
	}

	auditEntry := audit.LogWithUser("unseal")
	auditEntry.Files = sources
	audit.Log(auditEntry)

	return result, nil
}
