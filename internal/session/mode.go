package session

import (
	"encoding/json"
	"fmt"
)

type ModeKind int

const (
	Idle ModeKind = iota
	Renaming
	CreatingEdge
)

func (k ModeKind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Renaming:
		return "renaming"
	case CreatingEdge:
		return "creatingEdge"
	default:
		return fmt.Sprintf("ModeKind(%d)", int(k))
	}
}

// Mode is the editor's interaction state. Only one mode is active at a time.
//
// In Renaming, Target is the node being renamed. In CreatingEdge, Source and
// Target are the nodes captured so far; either may be empty.
type Mode struct {
	Kind   ModeKind
	Source string
	Target string
}

func IdleMode() Mode { return Mode{Kind: Idle} }

func RenamingMode(target string) Mode { return Mode{Kind: Renaming, Target: target} }

func CreatingEdgeMode() Mode { return Mode{Kind: CreatingEdge} }

func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   string `json:"kind"`
		Source string `json:"source,omitempty"`
		Target string `json:"target,omitempty"`
	}{m.Kind.String(), m.Source, m.Target})
}

func (m *Mode) UnmarshalJSON(b []byte) error {
	var raw struct {
		Kind   string `json:"kind"`
		Source string `json:"source"`
		Target string `json:"target"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch raw.Kind {
	case "", "idle":
		m.Kind = Idle
	case "renaming":
		m.Kind = Renaming
	case "creatingEdge":
		m.Kind = CreatingEdge
	default:
		return fmt.Errorf("unknown mode %q", raw.Kind)
	}
	m.Source, m.Target = raw.Source, raw.Target
	return nil
}

// Panels are the dialogue panels the page shows for a mode.
type Panels struct {
	CurrentName        bool `json:"currentName"`
	NewName            bool `json:"newName"`
	RenameDialogue     bool `json:"renameDialogue"`
	SourceNode         bool `json:"sourceNode"`
	TargetNode         bool `json:"targetNode"`
	CreateEdgeDialogue bool `json:"createEdgeDialogue"`
}

func (m Mode) Panels() Panels {
	switch m.Kind {
	case Renaming:
		return Panels{CurrentName: true, NewName: true, RenameDialogue: true}
	case CreatingEdge:
		return Panels{SourceNode: true, TargetNode: true, CreateEdgeDialogue: true}
	default:
		return Panels{}
	}
}
