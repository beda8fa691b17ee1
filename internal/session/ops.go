package session

import (
	"github.com/psidex/graphedit/internal/graph"
	"github.com/psidex/graphedit/internal/lib"
)

// Every transition here returns st unchanged when the elements or the selection
// it needs are empty. The page is expected to ignore such clicks but may not.

// RemoveSelectedNodes removes every element whose id is in selection. Edges that
// referenced a removed node are left in place.
func RemoveSelectedNodes(st State, selection []graph.Data) State {
	if len(st.Elements) == 0 || len(selection) == 0 {
		return st
	}

	ids := lib.NewSet()
	for _, d := range selection {
		if d.ID != "" {
			ids.Add(d.ID)
		}
	}

	st.Elements = filter(st.Elements, func(e graph.Element) bool {
		return e.Data.ID != "" && ids.Contains(e.Data.ID)
	})
	return st
}

// RemoveSelectedEdges removes every edge whose id, or endpoint pair when it has
// no id, is in selection.
func RemoveSelectedEdges(st State, selection []graph.Data) State {
	if len(st.Elements) == 0 || len(selection) == 0 {
		return st
	}

	keys := lib.NewSet()
	for _, d := range selection {
		keys.Add(d.EdgeKey())
	}

	st.Elements = filter(st.Elements, func(e graph.Element) bool {
		return e.IsEdge() && keys.Contains(e.Data.EdgeKey())
	})
	return st
}

// BeginRename enters Renaming for the single selected node. More than one
// selected node raises the too-many-selected alert and changes nothing else.
func BeginRename(st State, selection []graph.Data) State {
	if len(st.Elements) == 0 || len(selection) == 0 {
		st.TooManySelected = false
		return st
	}

	ids := lib.NewSet()
	for _, d := range selection {
		ids.Add(d.ID)
	}
	if ids.Size() > 1 {
		st.TooManySelected = true
		return st
	}

	target := selection[0]
	st = resetMode(st)
	st.TooManySelected = false

	// Lock every other element so the selection can't drift while renaming.
	st.Elements = graph.Clone(st.Elements)
	for i := range st.Elements {
		if st.Elements[i].Data.ID != target.ID {
			st.Elements[i].Selectable = false
		}
	}

	st.Mode = RenamingMode(target.ID)
	st.CurrentName = labelOf(st.Elements, target)
	return st
}

// CancelRename makes every element selectable again and leaves Renaming.
func CancelRename(st State) State {
	if len(st.Elements) == 0 {
		return st
	}

	st.Elements = allSelectable(st.Elements)
	if st.Mode.Kind == Renaming {
		st.Mode = IdleMode()
		st.CurrentName = ""
	}
	return st
}

// ApplyRename sets the label of the node being renamed and returns to Idle.
func ApplyRename(st State, label string, selection []graph.Data) State {
	if label == "" || len(st.Elements) == 0 || len(selection) == 0 || st.Mode.Kind != Renaming {
		return st
	}

	st.Elements = allSelectable(st.Elements)
	if i := graph.FindNode(st.Elements, st.Mode.Target); i >= 0 {
		st.Elements[i].Data.Label = label
	}

	st.Mode = IdleMode()
	st.CurrentName = ""
	st.NewName = ""
	return st
}

// BeginCreateEdge enters CreatingEdge with no endpoints captured.
func BeginCreateEdge(st State) State {
	if len(st.Elements) == 0 {
		return st
	}
	st = resetMode(st)
	st.Mode = CreatingEdgeMode()
	return st
}

// SourceNodeLabel captures the first selected node as the new edge's source.
// Capturing a source drops any target chosen against the previous one.
func SourceNodeLabel(st State, selection []graph.Data) State {
	if len(st.Elements) == 0 || len(selection) == 0 || st.Mode.Kind != CreatingEdge {
		return st
	}

	source := selection[0]
	st.Mode.Source = source.ID
	st.Mode.Target = ""
	st.SourceLabel = labelOf(st.Elements, source)
	st.TargetLabel = ""
	return st
}

// TargetNodeLabel captures the first selected node whose label differs from the
// source label as the new edge's target.
func TargetNodeLabel(st State, selection []graph.Data) State {
	if len(st.Elements) == 0 || len(selection) == 0 || st.Mode.Kind != CreatingEdge || st.SourceLabel == "" {
		return st
	}

	for _, d := range selection {
		if label := labelOf(st.Elements, d); label != st.SourceLabel {
			st.Mode.Target = d.ID
			st.TargetLabel = label
			return st
		}
	}
	return st
}

// CancelCreateEdge abandons edge creation.
func CancelCreateEdge(st State) State {
	if st.Mode.Kind != CreatingEdge {
		return st
	}
	return resetMode(st)
}

// ApplyCreateEdge appends an edge between the captured source and target, both
// of which must still exist, and returns to Idle.
func ApplyCreateEdge(st State) State {
	m := st.Mode
	if m.Kind != CreatingEdge || m.Source == "" || m.Target == "" {
		return st
	}
	if graph.FindNode(st.Elements, m.Source) < 0 || graph.FindNode(st.Elements, m.Target) < 0 {
		return st
	}

	st.Elements = append(graph.Clone(st.Elements), graph.NewEdge(graph.EdgeID(st.NextEdge), m.Source, m.Target))
	st.NextEdge++
	return resetMode(st)
}

func EchoTapNode(st State, d *graph.Data) State {
	st.Echo.TapNode = graph.FormatData(d)
	return st
}

func EchoTapEdge(st State, d *graph.Data) State {
	st.Echo.TapEdge = graph.FormatData(d)
	return st
}

func EchoSelectedNodes(st State, selection []graph.Data) State {
	st.Echo.SelectedNodes = graph.FormatData(selection)
	return st
}

func EchoSelectedEdges(st State, selection []graph.Data) State {
	st.Echo.SelectedEdges = graph.FormatData(selection)
	return st
}

// resetMode returns to Idle from any mode, unlocking elements and clearing the
// panel text the previous mode left behind. The new-name input is kept.
func resetMode(st State) State {
	if st.Mode.Kind == Renaming {
		st.Elements = allSelectable(st.Elements)
	}
	st.Mode = IdleMode()
	st.CurrentName = ""
	st.SourceLabel = ""
	st.TargetLabel = ""
	return st
}

// filter returns a new slice without the elements drop reports true for.
func filter(elements []graph.Element, drop func(graph.Element) bool) []graph.Element {
	out := make([]graph.Element, 0, len(elements))
	for _, e := range elements {
		if !drop(e) {
			out = append(out, e)
		}
	}
	return out
}

func allSelectable(elements []graph.Element) []graph.Element {
	out := graph.Clone(elements)
	for i := range out {
		out[i].Selectable = true
	}
	return out
}

// labelOf prefers the label carried by the selection and falls back to the
// node's label in elements.
func labelOf(elements []graph.Element, d graph.Data) string {
	if d.Label != "" {
		return d.Label
	}
	if i := graph.FindNode(elements, d.ID); i >= 0 {
		return elements[i].Data.Label
	}
	return ""
}
