package errors

import "errors"

// UserMessage returns the message shown to a user for err.
// Each error kind maps to its own message; unknown errors fall back to err.Error().
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCloseAborted) && errors.Is(err, ErrWrite):
		return "The document could not be saved, so it was left open with your changes."
	case errors.Is(err, ErrCloseAborted):
		return "Close cancelled. The document is still open."
	case errors.Is(err, ErrDecryption):
		return "Could not decrypt the file. Please check your password."
	case errors.Is(err, ErrEmptyPassword):
		return "Password cannot be empty."
	case errors.Is(err, ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, ErrRead):
		return "Error reading file: " + err.Error()
	case errors.Is(err, ErrWrite):
		return "Error saving file: " + err.Error()
	case errors.Is(err, ErrNoBackingPath):
		return "This document has not been saved yet. Provide a file path."
	case errors.Is(err, ErrDocumentNotFound):
		return "No open document with that id."
	case errors.Is(err, ErrNoFilesFound):
		return "No matching files found."
	case errors.Is(err, ErrFileExists):
		return "The output file already exists. Use --force to overwrite it."
	case errors.Is(err, ErrUnknownFormat):
		return "Unsupported envelope format: " + err.Error()
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrUnknownConfigKey):
		return "Configuration problem: " + err.Error()
	case errors.Is(err, ErrInvalidDateFormat):
		return "Invalid date. Use the YYYY-MM-DD format."
	case errors.Is(err, ErrKeyDerivation):
		return "Encryption is not available: " + err.Error()
	default:
		return err.Error()
	}
}
