// Package session tracks the set of open documents and their modification
// state.
//
// A Manager owns every document.Record it creates. Records are Clean after
// New, Open and a successful Save, and become Dirty on any edit. Only a
// confirmed durable write through FileAccess makes a record Clean again; a
// failed encryption or write leaves it Dirty with its content intact.
//
// # Closing
//
// Closing a dirty record needs a Decision from the caller (save, discard or
// abort). ResolveClose maps a record's state and the decision to a
// Resolution without side effects, and Manager.Close applies it with at most
// one save attempt:
//
//	closed, err := mgr.Close(ctx, id, session.DecisionSave, session.SaveOptions{})
//	if errors.Is(err, verrors.ErrCloseAborted) {
//	    // the save failed; the record is still open and dirty
//	}
//
// CloseAll and CloseOthers walk the records from last to first and stop at
// the first close that does not complete.
//
// # Concurrency
//
// All Manager methods are safe for concurrent use. Each transition runs to
// completion under the manager's lock, including its file I/O and codec
// calls. Decision callbacks passed to CloseAll and CloseOthers run without
// the lock held, so they may prompt the user or call back into the Manager.
package session
