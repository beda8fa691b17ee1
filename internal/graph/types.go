package graph

import (
	"encoding/json"
)

// Group tags an Element as a node or an edge, using cytoscape.js group names.
type Group string

const (
	GroupNodes Group = "nodes"
	GroupEdges Group = "edges"
)

// Data is the payload cytoscape.js keeps under an element's "data" key. Nodes
// use ID and Label, edges use Source and Target and optionally ID.
type Data struct {
	ID     string `json:"id,omitempty"`
	Label  string `json:"label,omitempty"`
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
}

// EdgeKey identifies an edge: its id if it has one, otherwise its endpoint pair.
// A tab separates the endpoints as it can't appear in the ids we generate.
func (d Data) EdgeKey() string {
	if d.ID != "" {
		return d.ID
	}
	return d.Source + "\t" + d.Target
}

type Element struct {
	Group      Group `json:"group"`
	Data       Data  `json:"data"`
	Selectable bool  `json:"selectable"`
	Grabbable  bool  `json:"grabbable"`
}

func NewNode(id, label string) Element {
	return Element{
		Group:      GroupNodes,
		Data:       Data{ID: id, Label: label},
		Selectable: true,
	}
}

func NewEdge(id, source, target string) Element {
	return Element{
		Group:      GroupEdges,
		Data:       Data{ID: id, Source: source, Target: target},
		Selectable: true,
		Grabbable:  true,
	}
}

func (e Element) IsNode() bool { return e.Group == GroupNodes }

func (e Element) IsEdge() bool { return e.Group == GroupEdges }

// Clone returns a copy of elements that shares no backing array with it. Element
// holds no pointers, so a slice copy is a deep copy. Clone(nil) is nil.
func Clone(elements []Element) []Element {
	if elements == nil {
		return nil
	}
	out := make([]Element, len(elements))
	copy(out, elements)
	return out
}

// Nodes returns just the nodes of elements, in order.
func Nodes(elements []Element) []Element {
	var nodes []Element
	for _, e := range elements {
		if e.IsNode() {
			nodes = append(nodes, e)
		}
	}
	return nodes
}

// Edges returns just the edges of elements, in order.
func Edges(elements []Element) []Element {
	var edges []Element
	for _, e := range elements {
		if e.IsEdge() {
			edges = append(edges, e)
		}
	}
	return edges
}

// FindNode returns the index of the node with the given id, or -1.
func FindNode(elements []Element, id string) int {
	for i, e := range elements {
		if e.IsNode() && e.Data.ID == id {
			return i
		}
	}
	return -1
}

// FormatData renders tap and selection payloads for the echo panels: indented
// JSON, "null" when nothing has been tapped or selected yet.
func FormatData(v interface{}) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "null"
	}
	return string(out)
}
