package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// Mode names the two counterparty addressing modes.
type Mode string

const (
	ModeByID   Mode = "id"
	ModeByName Mode = "name"
)

// CounterpartyRef addresses a counterparty either by its stable partner id or
// by the free-typed name historical records were entered under. The two modes
// are deliberately kept as independent lookup paths: records created before a
// partner was registered only match by name, and vice versa. The engine never
// merges results across modes.
type CounterpartyRef struct {
	mode Mode
	id   uuid.UUID
	name string
}

// ByID builds a reference for a registered partner.
func ByID(id uuid.UUID) CounterpartyRef {
	return CounterpartyRef{mode: ModeByID, id: id}
}

// ByName builds a reference for a free-typed partner name.
func ByName(name string) CounterpartyRef {
	return CounterpartyRef{mode: ModeByName, name: name}
}

func (r CounterpartyRef) Mode() Mode {
	return r.mode
}

func (r CounterpartyRef) ID() uuid.UUID {
	return r.id
}

func (r CounterpartyRef) Name() string {
	return r.name
}

// Validate checks the reference carries the value its mode requires.
func (r CounterpartyRef) Validate() error {
	switch r.mode {
	case ModeByID:
		if r.id == uuid.Nil {
			return fmt.Errorf("partner id is required")
		}
	case ModeByName:
		if r.name == "" {
			return fmt.Errorf("partner name is required")
		}
	default:
		return fmt.Errorf("invalid counterparty mode %q", r.mode)
	}
	return nil
}
