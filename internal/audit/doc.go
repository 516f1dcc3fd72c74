// Package audit provides audit trail logging for Vellum operations.
//
// Every document operation (seal, unseal, rekey, and the open, save and
// close transitions of an interactive session) is recorded in a per-user
// audit log. Entries name files and formats, never contents or passwords.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) next to
// the user configuration:
//
//	~/.config/vellum/audit.jsonl
//
// Each entry contains:
//   - Timestamp (UTC, microseconds)
//   - Install UUID and a per-process session UUID
//   - Operation name
//   - Operation-specific details (files, document id, envelope format)
//
// # Usage
//
//	entry := audit.LogWithUser("seal")
//	entry.Files = sealedFiles
//	audit.Log(entry)
//
// Sessions pass Observer to session.Options so each transition is logged.
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package audit
