package session

import "context"

// FileAccess is the durable storage a Manager reads and writes documents
// through. storage.Files is the filesystem implementation.
type FileAccess interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error

	// WriteSealed writes an encrypted envelope. Implementations must not
	// leave it readable by other users.
	WriteSealed(ctx context.Context, path string, data []byte) error
}
