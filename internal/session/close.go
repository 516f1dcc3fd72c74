package session

// Decision is the user's answer when a dirty document is about to close.
type Decision int

const (
	// DecisionAbort keeps the document open. It is the zero value.
	DecisionAbort Decision = iota
	DecisionSave
	DecisionDiscard
)

func (d Decision) String() string {
	switch d {
	case DecisionSave:
		return "save"
	case DecisionDiscard:
		return "discard"
	default:
		return "abort"
	}
}

// Resolution is what a close does to a record.
type Resolution int

const (
	ResolutionKeep Resolution = iota
	ResolutionRemove
	ResolutionSaveThenRemove
)

func (r Resolution) String() string {
	switch r {
	case ResolutionRemove:
		return "remove"
	case ResolutionSaveThenRemove:
		return "save-then-remove"
	default:
		return "keep"
	}
}

// ResolveClose decides the outcome of closing a record. Clean records are
// always removed; dirty ones follow the decision, and anything other than
// save or discard keeps the record open.
func ResolveClose(dirty bool, decision Decision) Resolution {
	if !dirty {
		return ResolutionRemove
	}
	switch decision {
	case DecisionSave:
		return ResolutionSaveThenRemove
	case DecisionDiscard:
		return ResolutionRemove
	default:
		return ResolutionKeep
	}
}
