package graphs

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/psidex/graphedit/internal/graph"
	. "github.com/psidex/graphedit/internal/lib"
)

// ECharts defines a Provider that renders a go-echarts HTML file.
type ECharts struct {
	mu    *sync.Mutex
	nodes []opts.GraphNode
	links []opts.GraphLink
}

var _ Provider = (*ECharts)(nil)

func NewECharts() *ECharts {
	return &ECharts{
		mu:    &sync.Mutex{},
		nodes: []opts.GraphNode{},
		links: []opts.GraphLink{},
	}
}

// nodeName is what echarts shows and links refer to. Labels can repeat after a
// rename, so the id is part of the name.
func nodeName(d graph.Data) string {
	return fmt.Sprintf("%s (%s)", d.Label, d.ID)
}

func (e *ECharts) Load(elements []graph.Element) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nodes = []opts.GraphNode{}
	e.links = []opts.GraphLink{}

	names := make(map[string]string)
	for _, n := range graph.Nodes(elements) {
		names[n.Data.ID] = nodeName(n.Data)
		e.nodes = append(e.nodes, opts.GraphNode{Name: names[n.Data.ID]})
	}

	seen := NewSet()
	for _, edge := range graph.Edges(elements) {
		source, okSource := names[edge.Data.Source]
		target, okTarget := names[edge.Data.Target]
		if !okSource || !okTarget {
			// Removing a node leaves its edges behind; echarts can't draw them.
			continue
		}
		key := source + "\t" + target
		if seen.Contains(key) {
			continue
		}
		seen.Add(key)
		e.links = append(e.links, opts.GraphLink{Source: source, Target: target})
	}
}

func (e *ECharts) RenderToFile(filename string) (string, error) {
	filename = filename + ".html"

	e.mu.Lock()
	defer e.mu.Unlock()

	chart := graphBase(e.nodes, e.links)

	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return filename, chart.Render(f)
}

func graphBase(nodes []opts.GraphNode, links []opts.GraphLink) *charts.Graph {
	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "graphedit snapshot",
			Height:    "100vh",
			Width:     "100vw",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	graph.AddSeries(
		"graph",
		nodes,
		links,
		charts.WithGraphChartOpts(
			opts.GraphChart{
				Draggable:  opts.Bool(true),
				Roam:       opts.Bool(true),
				Force:      &opts.GraphForce{Repulsion: 400},
				EdgeSymbol: []string{"none", "arrow"},
			},
		),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    "black",
			Position: "top",
		}),
	)
	return graph
}
