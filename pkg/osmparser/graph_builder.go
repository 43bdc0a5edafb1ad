package osmparser

import (
	"sort"

	"github.com/lintang-b-s/maneuverx/pkg"
	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
	"github.com/lintang-b-s/maneuverx/pkg/geo"
	"go.uber.org/zap"
)

// Edge is one scanned road segment before graph construction, still keyed by
// openstreetmap node ids.
type Edge struct {
	fromOsmId  int64
	toOsmId    int64
	nameId     datastructure.Index
	roadClass  pkg.OsmHighwayType
	link       bool
	lanes      uint8
	oneWay     bool
	roundabout bool
	circular   bool
}

func (p *OsmParser) vertexIndex(osmId int64) datastructure.Index {
	if id, ok := p.nodeIDMap[osmId]; ok {
		return id
	}
	id := datastructure.Index(len(p.nodeIDMap))
	p.nodeIDMap[osmId] = id
	return id
}

// BuildGraph flattens the scanned segments into the CSR adjacency arrays.
// every segment becomes two directed edges; the against-oneway copy is kept
// with reversed=true.
func (p *OsmParser) BuildGraph(scannedEdges []Edge, logger *zap.Logger) *datastructure.Graph {
	type directedEdge struct {
		tail, head datastructure.Index
		dist       float64
		source     *Edge
		reversed   bool
	}

	directed := make([]directedEdge, 0, len(scannedEdges)*2)
	for i := range scannedEdges {
		e := &scannedEdges[i]
		fromCoord, okFrom := p.acceptedNodeMap[e.fromOsmId]
		toCoord, okTo := p.acceptedNodeMap[e.toOsmId]
		if !okFrom || !okTo {
			// segment references a node outside the extract
			continue
		}

		tail := p.vertexIndex(e.fromOsmId)
		head := p.vertexIndex(e.toOsmId)
		if tail == head {
			continue
		}
		dist := geo.CalculateHaversineDistance(fromCoord.lat, fromCoord.lon,
			toCoord.lat, toCoord.lon) * 1000.0

		directed = append(directed,
			directedEdge{tail: tail, head: head, dist: dist, source: e, reversed: false},
			directedEdge{tail: head, head: tail, dist: dist, source: e, reversed: e.oneWay},
		)
	}

	sort.SliceStable(directed, func(i, j int) bool {
		return directed[i].tail < directed[j].tail
	})

	numVertices := len(p.nodeIDMap)
	vertices := make([]datastructure.Vertex, numVertices)
	for osmId, id := range p.nodeIDMap {
		coord := p.acceptedNodeMap[osmId]
		v := datastructure.NewVertex(coord.lat, coord.lon, id)
		v.SetOsmId(osmId)
		v.SetTrafficLight(p.trafficSignals[osmId])
		v.SetBarrier(p.barrierNodes[osmId])
		vertices[id] = *v
	}

	outEdges := make([]datastructure.OutEdge, 0, len(directed))
	firstOut := make([]datastructure.Index, numVertices+1)
	for i := range directed {
		de := &directed[i]
		edgeId := datastructure.Index(len(outEdges))

		edge := datastructure.NewOutEdge(edgeId, de.tail, de.head, de.dist)
		edge.SetNameId(de.source.nameId)
		edge.SetRoadClass(de.source.roadClass, de.source.link)
		edge.SetLanes(de.source.lanes)
		edge.SetReversed(de.reversed)
		edge.SetRoundabout(de.source.roundabout)
		edge.SetCircular(de.source.circular)
		outEdges = append(outEdges, *edge)

		firstOut[de.tail+1]++
	}
	for u := 1; u <= numVertices; u++ {
		firstOut[u] += firstOut[u-1]
	}
	for u := 0; u < numVertices; u++ {
		vertices[u].SetFirstOut(firstOut[u])
	}

	logger.Sugar().Infof("built road graph: %d vertices, %d directed edges",
		numVertices, len(outEdges))

	return datastructure.NewGraph(vertices, outEdges, p.streetNames)
}
