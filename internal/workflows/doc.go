// Package workflows provides high-level orchestration for Vellum commands.
//
// Workflows coordinate storage, codec and audit to implement complete
// user-facing features. Each workflow handles a single command's business
// logic, independent of CLI concerns like flag parsing, password prompts,
// spinners and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Prompts for passwords
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Resolving file patterns
//   - Validating inputs before touching the filesystem
//   - Performing the core operation
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Seal: encrypts plain files into .vlm envelopes
//   - Unseal: decrypts .vlm envelopes of any format back to plain files
//   - Cat: decrypts one envelope in memory
//   - Rekey: re-encrypts an envelope with a new password or format
//   - Log: reads and filters the audit trail
//
// The interactive editing session is not a workflow; it lives in the repl
// package on top of session.Manager.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Unseal(ctx, opts)
//	if errors.Is(err, verrors.ErrDecryption) {
//	    // ask the user to check the password
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
package workflows
