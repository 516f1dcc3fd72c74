// Package document models one open document: its text, where it lives, how it
// was encrypted and whether it has unsaved changes.
//
// A Record is owned by the session that created it. Other packages receive
// copies (see Record.Snapshot) and mutate documents only through the session.
package document
