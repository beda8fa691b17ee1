package session

import (
	"strconv"
	"strings"

	"github.com/psidex/graphedit/internal/graph"
)

// Echo holds the formatted text of the tap and selection panels.
type Echo struct {
	TapNode       string `json:"tapNode"`
	TapEdge       string `json:"tapEdge"`
	SelectedNodes string `json:"selectedNodes"`
	SelectedEdges string `json:"selectedEdges"`
}

// State is everything one editing session knows. Transitions take a State by
// value and return the next one; they never write through to the caller's
// element slice.
type State struct {
	Elements        []graph.Element `json:"elements"`
	Mode            Mode            `json:"mode"`
	CurrentName     string          `json:"currentName"`
	NewName         string          `json:"newName"`
	SourceLabel     string          `json:"sourceLabel"`
	TargetLabel     string          `json:"targetLabel"`
	TooManySelected bool            `json:"tooManySelected"`
	Echo            Echo            `json:"echo"`

	// NextEdge numbers the next edge created in this session.
	NextEdge int `json:"-"`
}

func NewState(elements []graph.Element) State {
	elements = graph.Clone(elements)
	if elements == nil {
		elements = []graph.Element{}
	}
	return State{
		Elements: elements,
		Mode:     IdleMode(),
		Echo:     Echo{TapNode: "null", TapEdge: "null", SelectedNodes: "null", SelectedEdges: "null"},
		NextEdge: nextEdgeNumber(elements),
	}
}

// View is what the page receives after every event.
type View struct {
	State
	Panels Panels `json:"panels"`
}

func (st State) View() View {
	st.Elements = graph.Clone(st.Elements)
	return View{State: st, Panels: st.Mode.Panels()}
}

// nextEdgeNumber returns one past the largest "eN" edge id in elements, so new
// edges never collide with seeded ones.
func nextEdgeNumber(elements []graph.Element) int {
	highest := 0
	for _, e := range elements {
		if !e.IsEdge() {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(e.Data.ID, "e"))
		if err == nil && strings.HasPrefix(e.Data.ID, "e") && n > highest {
			highest = n
		}
	}
	return highest + 1
}
