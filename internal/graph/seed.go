package graph

import (
	"fmt"
	"math/rand"
	"strconv"
)

const (
	DefaultSeed  int64 = 2019
	DefaultNodes       = 20
	DefaultEdges       = 30
)

// Seed generates the starting graph: nodes "1".."n" labelled "Node i", followed by
// edges "e1".."eM" between uniformly random nodes. Self loops and parallel edges
// are allowed. The same seed always produces the same elements.
func Seed(seed int64, nodes, edges int) []Element {
	r := rand.New(rand.NewSource(seed))

	elements := make([]Element, 0, nodes+edges)
	for i := 1; i <= nodes; i++ {
		id := strconv.Itoa(i)
		elements = append(elements, NewNode(id, fmt.Sprintf("Node %d", i)))
	}

	if nodes == 0 {
		return elements
	}

	for i := 1; i <= edges; i++ {
		source := strconv.Itoa(r.Intn(nodes) + 1)
		target := strconv.Itoa(r.Intn(nodes) + 1)
		elements = append(elements, NewEdge(EdgeID(i), source, target))
	}

	return elements
}

// EdgeID is the id given to the n-th edge created in a session.
func EdgeID(n int) string {
	return "e" + strconv.Itoa(n)
}
