// Package errors provides typed error values for Vellum.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - I/O errors: ErrRead, ErrWrite, ErrNoFilesFound, ErrFileExists
//   - Crypto errors: ErrDecryption, ErrEmptyPassword, ErrPasswordMismatch,
//     ErrKeyDerivation, ErrUnknownFormat
//   - Session errors: ErrDocumentNotFound, ErrNoBackingPath, ErrCloseAborted
//   - Config errors: ErrInvalidConfig, ErrUnknownConfigKey
//
// # Usage
//
// Wrap errors with the underlying cause:
//
//	return fmt.Errorf("%w: %v", errors.ErrRead, err)
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, verrors.ErrDecryption) {
//	    fmt.Println(verrors.UserMessage(err))
//	}
//
// ErrDecryption deliberately covers both a wrong password and a damaged
// envelope; the legacy format carries no integrity tag to tell them apart.
package errors
