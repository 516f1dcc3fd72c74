// Package storage is the file-access layer for documents.
//
// Files reads and writes whole documents on the local filesystem. Writes go
// to a temporary file in the target directory which is then renamed over the
// target, so a failed save never leaves a half-written document behind.
// Read and write failures are wrapped in errors.ErrRead and errors.ErrWrite.
//
// ResolveFiles expands user-supplied paths, directories and globs (including
// ** via doublestar) into the plain or sealed documents a command operates on.
package storage
