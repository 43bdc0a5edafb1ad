package guidance

import (
	"sort"
	"testing"

	"github.com/lintang-b-s/maneuverx/pkg"
	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
	"github.com/lintang-b-s/maneuverx/pkg/geo"
)

type testNode struct {
	lat, lon     float64
	trafficLight bool
	barrier      bool
}

type testEdge struct {
	from, to   int
	name       string
	class      pkg.OsmHighwayType
	link       bool
	lanes      uint8
	oneWay     bool
	roundabout bool
	circular   bool
}

// buildTestGraph assembles a real road graph from a compact description.
// every test edge becomes a forward and a backward directed edge, the
// backward copy of a oneway street is kept with reversed=true.
func buildTestGraph(t *testing.T, nodes []testNode, edges []testEdge) *datastructure.Graph {
	t.Helper()

	names := make([]string, 0)
	nameIdMap := make(map[string]datastructure.Index)
	nameId := func(name string) datastructure.Index {
		if name == "" {
			return datastructure.InvalidNameId
		}
		if id, ok := nameIdMap[name]; ok {
			return id
		}
		id := datastructure.Index(len(names))
		nameIdMap[name] = id
		names = append(names, name)
		return id
	}

	type directedEdge struct {
		tail, head datastructure.Index
		source     *testEdge
		reversed   bool
	}
	directed := make([]directedEdge, 0, len(edges)*2)
	for i := range edges {
		e := &edges[i]
		directed = append(directed,
			directedEdge{datastructure.Index(e.from), datastructure.Index(e.to), e, false},
			directedEdge{datastructure.Index(e.to), datastructure.Index(e.from), e, e.oneWay},
		)
	}
	sort.SliceStable(directed, func(i, j int) bool {
		return directed[i].tail < directed[j].tail
	})

	vertices := make([]datastructure.Vertex, len(nodes))
	for i, n := range nodes {
		v := datastructure.NewVertex(n.lat, n.lon, datastructure.Index(i))
		v.SetTrafficLight(n.trafficLight)
		v.SetBarrier(n.barrier)
		vertices[i] = *v
	}

	outEdges := make([]datastructure.OutEdge, 0, len(directed))
	firstOut := make([]datastructure.Index, len(nodes)+1)
	for i := range directed {
		de := &directed[i]
		tail, head := nodes[de.tail], nodes[de.head]
		dist := geo.CalculateHaversineDistance(tail.lat, tail.lon, head.lat, head.lon) * 1000.0

		edge := datastructure.NewOutEdge(datastructure.Index(len(outEdges)), de.tail, de.head, dist)
		edge.SetNameId(nameId(de.source.name))
		edge.SetRoadClass(de.source.class, de.source.link)
		if de.source.lanes > 0 {
			edge.SetLanes(de.source.lanes)
		}
		edge.SetReversed(de.reversed)
		edge.SetRoundabout(de.source.roundabout)
		edge.SetCircular(de.source.circular)
		outEdges = append(outEdges, *edge)

		firstOut[de.tail+1]++
	}
	for u := 1; u <= len(nodes); u++ {
		firstOut[u] += firstOut[u-1]
	}
	for u := range vertices {
		vertices[u].SetFirstOut(firstOut[u])
	}

	return datastructure.NewGraph(vertices, outEdges, names)
}

// mustFindEdge resolves the directed edge u->v or fails the test.
func mustFindEdge(t *testing.T, g *datastructure.Graph, u, v int) datastructure.Index {
	t.Helper()
	eid := g.FindEdge(datastructure.Index(u), datastructure.Index(v))
	if eid == datastructure.InvalidIndex {
		t.Fatalf("no edge %d->%d in test graph", u, v)
	}
	return eid
}
