package graphs

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/psidex/graphedit/internal/graph"
)

// CytoscapeJSON defines a Provider that writes the elements in the shape
// cytoscape.js accepts for cy.add, so a snapshot can be loaded straight back.
type CytoscapeJSON struct {
	mu       *sync.Mutex
	elements []graph.Element
}

var _ Provider = (*CytoscapeJSON)(nil)

func NewCytoscapeJSON() *CytoscapeJSON {
	return &CytoscapeJSON{
		mu:       &sync.Mutex{},
		elements: []graph.Element{},
	}
}

func (c *CytoscapeJSON) Load(elements []graph.Element) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elements = graph.Clone(elements)
	if c.elements == nil {
		c.elements = []graph.Element{}
	}
}

func (c *CytoscapeJSON) RenderToFile(filename string) (string, error) {
	filename = filename + ".json"

	c.mu.Lock()
	defer c.mu.Unlock()

	marshalled, err := json.MarshalIndent(c.elements, "", "  ")
	if err != nil {
		return "", err
	}

	return filename, os.WriteFile(filename, marshalled, 0o644)
}
