// Package utils provides shared helpers used across vellum's packages.
//
// # Terminal Utilities
//
// Functions for reading passwords without echo:
//   - ReadPassphrase and ReadConfirmedPassphrase read from stdin
//   - ReadPassphraseFromTTY reads from the controlling terminal, leaving
//     stdin free for the interactive session's commands
//   - Wipe zeroes a password buffer once it is no longer needed
//
// # I/O Utilities
//
// Functions for reading piped input:
//   - ReadStdin reads all data from standard input
//   - ReadPasswordStdin reads a password piped to a command
//
// # System Utilities
//
//   - Identity returns "user@host" for audit entries
//
// # String Utilities
//
// Functions for formatting paths and counts in messages.
package utils
