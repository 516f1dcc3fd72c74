package session

import "github.com/PolarWolf314/vellum/internal/codec"

// Op names a completed transition reported to an Observer.
type Op string

const (
	OpNew     Op = "new"
	OpOpen    Op = "open"
	OpSave    Op = "save"
	OpClose   Op = "close"
	OpDiscard Op = "discard"
)

// Event describes a completed transition.
type Event struct {
	Op        Op
	ID        uint64
	Path      string
	Encrypted bool
	Format    codec.Format
}

// Observer is called after each completed transition, with the manager's
// lock held. It must not call back into the Manager.
type Observer func(Event)
