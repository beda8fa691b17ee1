package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedShape(t *testing.T) {
	elements := Seed(DefaultSeed, DefaultNodes, DefaultEdges)
	require.Len(t, elements, DefaultNodes+DefaultEdges)

	nodes := Nodes(elements)
	edges := Edges(elements)
	require.Len(t, nodes, DefaultNodes)
	require.Len(t, edges, DefaultEdges)

	// Nodes come first.
	for i := 0; i < DefaultNodes; i++ {
		assert.True(t, elements[i].IsNode(), "element %d should be a node", i)
	}

	assert.Equal(t, Data{ID: "1", Label: "Node 1"}, nodes[0].Data)
	assert.Equal(t, Data{ID: "20", Label: "Node 20"}, nodes[19].Data)
	assert.True(t, nodes[0].Selectable)
	assert.False(t, nodes[0].Grabbable)

	for i, e := range edges {
		assert.Equal(t, EdgeID(i+1), e.Data.ID)
		assert.NotEqual(t, -1, FindNode(elements, e.Data.Source), "edge %s source", e.Data.ID)
		assert.NotEqual(t, -1, FindNode(elements, e.Data.Target), "edge %s target", e.Data.ID)
		assert.True(t, e.Selectable)
	}
}

func TestSeedDeterministic(t *testing.T) {
	assert.Equal(t, Seed(7, 5, 8), Seed(7, 5, 8))
	assert.NotEqual(t, Seed(7, 5, 8), Seed(8, 5, 8))
}

func TestSeedNoNodes(t *testing.T) {
	assert.Empty(t, Seed(1, 0, 10))
}

func TestEdgeKey(t *testing.T) {
	assert.Equal(t, "e4", Data{ID: "e4", Source: "1", Target: "2"}.EdgeKey())
	assert.Equal(t, "1\t2", Data{Source: "1", Target: "2"}.EdgeKey())
}

func TestCloneDoesNotAlias(t *testing.T) {
	orig := []Element{NewNode("1", "Node 1")}
	c := Clone(orig)
	c[0].Data.Label = "changed"
	c[0].Selectable = false

	assert.Equal(t, "Node 1", orig[0].Data.Label)
	assert.True(t, orig[0].Selectable)
	assert.Nil(t, Clone(nil))
}

func TestElementJSON(t *testing.T) {
	out, err := json.Marshal(NewEdge("e1", "1", "2"))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"group": "edges", "data": {"id": "e1", "source": "1", "target": "2"}, "selectable": true, "grabbable": true}`,
		string(out),
	)
}

func TestFormatData(t *testing.T) {
	assert.Equal(t, "null", FormatData(nil))
	assert.Equal(t, "[]", FormatData([]Data{}))
	assert.Equal(t,
		"{\n  \"id\": \"3\",\n  \"label\": \"Node 3\"\n}",
		FormatData(&Data{ID: "3", Label: "Node 3"}),
	)
}
