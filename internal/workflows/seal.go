package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/vellum/internal/audit"
	"github.com/PolarWolf314/vellum/internal/codec"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"github.com/PolarWolf314/vellum/internal/storage"
)

// SealOptions configures the seal workflow.
type SealOptions struct {
	// FilePatterns specifies files, directories or globs to seal.
	FilePatterns []string

	// BasePath resolves relative patterns. Empty means the working directory.
	BasePath string

	// Password seals every file.
	Password []byte

	// Envelope selects the envelope format.
	Envelope codec.Options

	// Keep leaves the plain files in place after sealing.
	Keep bool

	// Force overwrites existing sealed files.
	Force bool

	// DryRun previews which files would be sealed without making changes.
	DryRun bool
}

// SealResult contains the outcome of a seal operation.
type SealResult struct {
	// SourceFiles lists the plain files that were sealed.
	SourceFiles []string

	// SealedFiles lists the envelope files that were written.
	SealedFiles []string

	// ExistingFiles lists envelope files that already exist.
	ExistingFiles []string

	// RemovedFiles lists plain files deleted after sealing.
	RemovedFiles []string

	Envelope codec.Options

	// DryRun indicates whether this was a dry-run (no files modified).
	DryRun bool
}

// Seal encrypts plain files into envelopes written alongside them with the
// .vlm extension.
//
// Every file is read and sealed before anything is written, so a read error
// leaves the filesystem untouched.
//
// Returns ErrEmptyPassword if no password is given. A dry run needs none.
// Returns ErrNoFilesFound if no plain files match the specified patterns.
// Returns ErrFileExists if an envelope exists and Force is not set.
func Seal(ctx context.Context, opts SealOptions) (*SealResult, error) {
	if len(opts.Password) == 0 && !opts.DryRun {
		return nil, verrors.ErrEmptyPassword
	}

	sources, err := resolve(opts.FilePatterns, opts.BasePath, storage.KindPlain)
	if err != nil {
		return nil, err
	}

	result := &SealResult{
		SourceFiles: sources,
		Envelope:    opts.Envelope,
		DryRun:      opts.DryRun,
	}
	for _, f := range sources {
		result.SealedFiles = append(result.SealedFiles, storage.SealedPath(f))
	}
	result.ExistingFiles = findExistingFiles(result.SealedFiles)

	if opts.DryRun {
		return result, nil
	}
	if len(result.ExistingFiles) > 0 && !opts.Force {
		return nil, fmt.Errorf("%w: %s", verrors.ErrFileExists, result.ExistingFiles[0])
	}

	files := storage.NewFiles()
	sealed := make([][]byte, len(sources))
	for i, f := range sources {
		plaintext, err := files.ReadFile(ctx, f)
		if err != nil {
			return nil, err
		}
		sealed[i], err = codec.SealWith(plaintext, opts.Password, opts.Envelope)
		clear(plaintext)
		if err != nil {
			return nil, fmt.Errorf("sealing %s: %w", f, err)
		}
	}

	for i, f := range result.SealedFiles {
		if err := files.WriteSealed(ctx, f, sealed[i]); err != nil {
			return nil, err
		}
	}

	if !opts.Keep {
		for _, f := range sources {
			if err := os.Remove(f); err != nil {
				return nil, fmt.Errorf("%w: removing %s: %v", verrors.ErrWrite, f, err)
			}
			result.RemovedFiles = append(result.RemovedFiles, f)
		}
	}

	auditEntry := audit.LogWithUser("seal")
	auditEntry.Files = sources
	auditEntry.Format = opts.Envelope.Format.String()
	audit.Log(auditEntry)

	return result, nil
}

// resolve expands patterns against basePath, defaulting to the working directory.
func resolve(patterns []string, basePath string, kind storage.Kind) ([]string, error) {
	if basePath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		basePath = wd
	}
	return storage.ResolveFiles(patterns, basePath, kind)
}

// findExistingFiles returns which of the given paths already exist on disk.
func findExistingFiles(paths []string) []string {
	var existing []string
	for _, path := range paths {
		if storage.Exists(path) {
			existing = append(existing, path)
		}
	}
	return existing
}
