package errors

import "errors"

// I/O errors indicate the file-access collaborator failed.
var (
	// ErrRead indicates a document source could not be read.
	ErrRead = errors.New("failed to read document")

	// ErrWrite indicates a document could not be persisted.
	ErrWrite = errors.New("failed to write document")

	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrFileExists indicates an output file already exists and overwriting was not requested.
	ErrFileExists = errors.New("output file already exists")
)

// Cryptographic errors indicate failures while sealing or opening envelopes.
var (
	// ErrDecryption indicates the envelope could not be opened. A wrong password
	// and a corrupted envelope both produce this error.
	ErrDecryption = errors.New("failed to decrypt document")

	// ErrEmptyPassword indicates a password was required but none was given.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrPasswordMismatch indicates the confirmation password did not match.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrKeyDerivation indicates the key derivation parameters are unusable.
	ErrKeyDerivation = errors.New("key derivation is misconfigured")

	// ErrUnknownFormat indicates an unsupported envelope format or cipher suite name.
	ErrUnknownFormat = errors.New("unknown envelope format")
)

// Session errors indicate invalid document lifecycle requests.
var (
	// ErrDocumentNotFound indicates no open document has the given id.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrNoBackingPath indicates a save needs a path but the document has none.
	ErrNoBackingPath = errors.New("document has no file path")

	// ErrCloseAborted indicates a close request was cancelled or its save failed.
	ErrCloseAborted = errors.New("close aborted")
)

// Configuration errors.
var (
	// ErrInvalidConfig indicates the configuration file or a value is malformed.
	ErrInvalidConfig = errors.New("configuration is invalid")

	// ErrUnknownConfigKey indicates a config key that does not exist.
	ErrUnknownConfigKey = errors.New("unknown configuration key")

	// ErrInvalidDateFormat indicates a date flag is not in YYYY-MM-DD format.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
