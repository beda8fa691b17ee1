package graphs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/psidex/graphedit/internal/graph"
)

func testElements() []graph.Element {
	return []graph.Element{
		graph.NewNode("1", "Node 1"),
		graph.NewNode("2", "Node 2"),
		graph.NewNode("3", "Node 3"),
		graph.NewEdge("e1", "1", "2"),
		graph.NewEdge("e2", "1", "2"),
		graph.NewEdge("e3", "2", "3"),
		// Dangling: node 9 was removed.
		graph.NewEdge("e4", "3", "9"),
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		p, err := New(name)
		require.NoError(t, err, name)
		assert.NotNil(t, p)
	}
	_, err := New("vis")
	assert.Error(t, err)
	assert.Equal(t, []string{"adjacency", "echarts", "json"}, Names())
}

func TestEChartsLoad(t *testing.T) {
	e := NewECharts()
	e.Load(testElements())

	require.Len(t, e.nodes, 3)
	assert.Equal(t, "Node 1 (1)", e.nodes[0].Name)
	// Parallel edge and dangling edge are dropped.
	require.Len(t, e.links, 2)
	assert.Equal(t, "Node 1 (1)", e.links[0].Source)
	assert.Equal(t, "Node 3 (3)", e.links[1].Target)

	e.Load(nil)
	assert.Empty(t, e.nodes)
	assert.Empty(t, e.links)
}

func TestEChartsRenderToFile(t *testing.T) {
	e := NewECharts()
	e.Load(testElements())

	name, err := e.RenderToFile(filepath.Join(t.TempDir(), "snap"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, "snap.html"))

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()

	doc, err := html.Parse(f)
	require.NoError(t, err)

	var title string
	var scripts int
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if n.FirstChild != nil {
					title = n.FirstChild.Data
				}
			case "script":
				scripts++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)

	assert.Equal(t, "graphedit snapshot", title)
	assert.Greater(t, scripts, 0)
}

func TestCytoscapeJSONRenderToFile(t *testing.T) {
	c := NewCytoscapeJSON()
	c.Load(testElements())

	name, err := c.RenderToFile(filepath.Join(t.TempDir(), "snap"))
	require.NoError(t, err)

	data, err := os.ReadFile(name)
	require.NoError(t, err)

	var got []graph.Element
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, testElements(), got)
}

func TestAdjacencyRenderToFile(t *testing.T) {
	a := NewAdjacency()
	a.Load(testElements())

	name, err := a.RenderToFile(filepath.Join(t.TempDir(), "snap"))
	require.NoError(t, err)

	data, err := os.ReadFile(name)
	require.NoError(t, err)

	var got map[string][]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, map[string][]string{
		"1": {"2"},
		"2": {"3"},
		"3": {"9"},
	}, got)
}
