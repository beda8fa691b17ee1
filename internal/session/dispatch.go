package session

import (
	"errors"
	"fmt"
	"sort"

	"github.com/psidex/graphedit/internal/graph"
)

var ErrUnknownTrigger = errors.New("unknown trigger")

// Trigger is the id of the page component that produced an event.
type Trigger string

const (
	TriggerRemoveNodes      Trigger = "remove-nodes-button"
	TriggerRemoveEdges      Trigger = "remove-edges-button"
	TriggerRenameNode       Trigger = "rename-node-button"
	TriggerCancelRename     Trigger = "cancel-rename-node-button"
	TriggerApplyRename      Trigger = "apply-rename-node-button"
	TriggerNewNameValue     Trigger = "new-name-value"
	TriggerAddNewEdge       Trigger = "add-new-edge-button"
	TriggerCancelCreateEdge Trigger = "cancel-create-new-edge-button"
	TriggerApplyCreateEdge  Trigger = "apply-create-new-edge-button"
	TriggerSelectedNodeData Trigger = "cytoscape.selectedNodeData"
	TriggerSelectedEdgeData Trigger = "cytoscape.selectedEdgeData"
	TriggerTapNodeData      Trigger = "cytoscape.tapNodeData"
	TriggerTapEdgeData      Trigger = "cytoscape.tapEdgeData"
)

// Event is one user action as reported by the page, with the viewer's current
// selection and the new-name input value at the time of the action.
type Event struct {
	Trigger       Trigger      `json:"trigger"`
	SelectedNodes []graph.Data `json:"selectedNodeData,omitempty"`
	SelectedEdges []graph.Data `json:"selectedEdgeData,omitempty"`
	Tapped        *graph.Data  `json:"tapData,omitempty"`
	Value         string       `json:"value,omitempty"`
}

type Handler func(State, Event) State

var handlers = map[Trigger][]Handler{
	TriggerRemoveNodes: {
		func(st State, ev Event) State { return RemoveSelectedNodes(st, ev.SelectedNodes) },
	},
	TriggerRemoveEdges: {
		func(st State, ev Event) State { return RemoveSelectedEdges(st, ev.SelectedEdges) },
	},
	TriggerRenameNode: {
		func(st State, ev Event) State { return BeginRename(st, ev.SelectedNodes) },
	},
	TriggerCancelRename: {
		func(st State, _ Event) State { return CancelRename(st) },
	},
	TriggerApplyRename: {applyRename},
	TriggerNewNameValue: {applyRename},
	// Opening the edge panels immediately captures the current selection as
	// the source.
	TriggerAddNewEdge: {
		func(st State, _ Event) State { return BeginCreateEdge(st) },
		func(st State, ev Event) State { return SourceNodeLabel(st, ev.SelectedNodes) },
	},
	TriggerCancelCreateEdge: {
		func(st State, _ Event) State { return CancelCreateEdge(st) },
	},
	TriggerApplyCreateEdge: {
		func(st State, _ Event) State { return ApplyCreateEdge(st) },
	},
	TriggerSelectedNodeData: {
		func(st State, ev Event) State { return TargetNodeLabel(st, ev.SelectedNodes) },
		func(st State, ev Event) State { return EchoSelectedNodes(st, ev.SelectedNodes) },
	},
	TriggerSelectedEdgeData: {
		func(st State, ev Event) State { return EchoSelectedEdges(st, ev.SelectedEdges) },
	},
	TriggerTapNodeData: {
		func(st State, ev Event) State { return EchoTapNode(st, ev.Tapped) },
	},
	TriggerTapEdgeData: {
		func(st State, ev Event) State { return EchoTapEdge(st, ev.Tapped) },
	},
}

// applyRename mirrors the submitted input into the state while a rename is in
// progress; a successful rename clears it again. The page fires both the input
// change and the button click for one rename, so the second event arrives idle
// and must not put the old text back.
func applyRename(st State, ev Event) State {
	if st.Mode.Kind != Renaming {
		return st
	}
	st.NewName = ev.Value
	return ApplyRename(st, ev.Value, ev.SelectedNodes)
}

// Dispatch runs the handlers bound to ev.Trigger in order. The too-many-selected
// alert only ever describes the event that raised it, so it is cleared first.
func Dispatch(st State, ev Event) (State, error) {
	hs, ok := handlers[ev.Trigger]
	if !ok {
		return st, fmt.Errorf("%w: %q", ErrUnknownTrigger, ev.Trigger)
	}

	st.TooManySelected = false
	for _, h := range hs {
		st = h(st, ev)
	}
	return st, nil
}

// Triggers lists every trigger Dispatch accepts, sorted.
func Triggers() []Trigger {
	triggers := make([]Trigger, 0, len(handlers))
	for t := range handlers {
		triggers = append(triggers, t)
	}
	sort.Slice(triggers, func(i, j int) bool { return triggers[i] < triggers[j] })
	return triggers
}
