package graphs

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/psidex/graphedit/internal/graph"
	. "github.com/psidex/graphedit/internal/lib"
)

// Adjacency defines a Provider that keeps track of node connections using a
// map[string]Set and renders this to a JSON file mapping each node id to the
// ids it has edges to. Parallel edges collapse; dangling edges are kept since
// the ids are all that's written.
type Adjacency struct {
	mu        *sync.RWMutex
	adjacency map[string]Set
}

var _ Provider = (*Adjacency)(nil)

func NewAdjacency() *Adjacency {
	return &Adjacency{
		mu:        &sync.RWMutex{},
		adjacency: make(map[string]Set),
	}
}

func (a *Adjacency) Load(elements []graph.Element) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.adjacency = make(map[string]Set)
	for _, n := range graph.Nodes(elements) {
		a.adjacency[n.Data.ID] = NewSet()
	}
	for _, e := range graph.Edges(elements) {
		if _, ok := a.adjacency[e.Data.Source]; !ok {
			a.adjacency[e.Data.Source] = NewSet()
		}
		a.adjacency[e.Data.Source].Add(e.Data.Target)
	}
}

func (a *Adjacency) toJson() ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	slicedSets := make(map[string][]string)
	for key, value := range a.adjacency {
		slicedSets[key] = value.AsSlice()
	}

	return json.MarshalIndent(slicedSets, "", "  ")
}

func (a *Adjacency) RenderToFile(filename string) (string, error) {
	filename = filename + ".json"

	jsonData, err := a.toJson()
	if err != nil {
		return "", err
	}

	return filename, os.WriteFile(filename, jsonData, 0o644)
}
