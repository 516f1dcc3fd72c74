// Package repl implements vellum's interactive editing loop.
//
// Run reads one command per line and dispatches it to an Editor, which
// drives a session.Manager. Text is entered with set and append and ends at
// a line holding a single ".". Passwords are read from the terminal rather
// than the command stream.
//
// Closing a document with unsaved changes asks whether to save it, discard
// it or cancel. quit closes every document the same way and leaves only
// once all of them are gone.
package repl
