package graphs

import (
	"fmt"
	"sort"

	"github.com/psidex/graphedit/internal/graph"
)

// Provider renders a snapshot of a session's elements to a file.
type Provider interface {
	// Load replaces whatever the provider holds with elements.
	Load(elements []graph.Element)

	// RenderToFile is not assumed to be thread-safe.
	// filename should be the desired file name without an extension. The full
	// name of the written file is returned.
	RenderToFile(filename string) (string, error)
}

var providers = map[string]func() Provider{
	"echarts":   func() Provider { return NewECharts() },
	"json":      func() Provider { return NewCytoscapeJSON() },
	"adjacency": func() Provider { return NewAdjacency() },
}

// New returns the provider registered under name.
func New(name string) (Provider, error) {
	p, ok := providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown graph provider: %s", name)
	}
	return p(), nil
}

// Names lists the registered provider names, sorted.
func Names() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
