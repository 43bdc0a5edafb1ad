package datastructure

import (
	"github.com/lintang-b-s/maneuverx/pkg"
)

type Index uint32

const (
	InvalidIndex  = Index(^uint32(0))
	InvalidNameId = InvalidIndex
)

type Vertex struct {
	lat          float64
	lon          float64
	firstOut     Index // index of the first outEdge of this vertex in the flattened graph.outEdges array
	id           Index
	osmId        int64
	trafficLight bool
	barrier      bool
}

func NewVertex(lat, lon float64, id Index) *Vertex {
	return &Vertex{
		lat: lat,
		lon: lon,
		id:  id,
	}
}

func (v *Vertex) SetFirstOut(firstOut Index) {
	v.firstOut = firstOut
}

func (v *Vertex) SetOsmId(osmId int64) {
	v.osmId = osmId
}

func (v *Vertex) SetTrafficLight(tl bool) {
	v.trafficLight = tl
}

func (v *Vertex) SetBarrier(b bool) {
	v.barrier = b
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetFirstOut() Index {
	return v.firstOut
}

func (v *Vertex) GetOsmId() int64 {
	return v.osmId
}

func (v *Vertex) IsTrafficLight() bool {
	return v.trafficLight
}

func (v *Vertex) IsBarrier() bool {
	return v.barrier
}

// OutEdge is one directed edge of the node-based road graph. every road
// segment is stored twice (u->v and v->u) so that the full shape of an
// intersection is visible from any arrival edge; the against-oneway copy
// carries reversed=true and never allows entry.
type OutEdge struct {
	dist          float64 // meter
	edgeId        Index   // index of this edge in graph.outEdges
	head          Index
	tail          Index
	nameId        Index
	roadClass     pkg.OsmHighwayType
	lanes         uint8
	reversed      bool
	roadClassLink bool
	roundabout    bool
	circular      bool
}

func NewOutEdge(edgeId, tail, head Index, dist float64) *OutEdge {
	return &OutEdge{
		edgeId: edgeId,
		tail:   tail,
		head:   head,
		dist:   dist,
		nameId: InvalidNameId,
		lanes:  pkg.DEFAULT_LANES,
	}
}

func (e *OutEdge) GetEdgeId() Index { return e.edgeId }

func (e *OutEdge) GetHead() Index { return e.head }

func (e *OutEdge) GetTail() Index { return e.tail }

func (e *OutEdge) GetDist() float64 { return e.dist }

func (e *OutEdge) GetNameId() Index { return e.nameId }

func (e *OutEdge) GetRoadClass() pkg.OsmHighwayType { return e.roadClass }

func (e *OutEdge) GetLanes() uint8 { return e.lanes }

func (e *OutEdge) IsReversed() bool { return e.reversed }

func (e *OutEdge) IsLink() bool { return e.roadClassLink }

func (e *OutEdge) IsRoundabout() bool { return e.roundabout }

func (e *OutEdge) IsCircular() bool { return e.circular }

func (e *OutEdge) SetEdgeId(edgeId Index) { e.edgeId = edgeId }

func (e *OutEdge) SetNameId(nameId Index) { e.nameId = nameId }

func (e *OutEdge) SetRoadClass(rc pkg.OsmHighwayType, link bool) {
	e.roadClass = rc
	e.roadClassLink = link
}

func (e *OutEdge) SetLanes(lanes uint8) { e.lanes = lanes }

func (e *OutEdge) SetReversed(r bool) { e.reversed = r }

func (e *OutEdge) SetRoundabout(ra bool) { e.roundabout = ra }

func (e *OutEdge) SetCircular(c bool) { e.circular = c }

// Graph is the node-based road graph. vertices and outEdges are CSR-flattened:
// the out edges of vertex u live in outEdges[vertices[u].firstOut :
// vertices[u+1].firstOut]. read-only after construction, safe for concurrent
// classification workers.
type Graph struct {
	vertices   []Vertex
	outEdges   []OutEdge
	streetName []string // nameId -> street name
}

func NewGraph(vertices []Vertex, outEdges []OutEdge, streetName []string) *Graph {
	return &Graph{
		vertices:   vertices,
		outEdges:   outEdges,
		streetName: streetName,
	}
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.outEdges)
}

func (g *Graph) GetVertex(u Index) *Vertex {
	return &g.vertices[u]
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	v := &g.vertices[u]
	return v.lat, v.lon
}

func (g *Graph) GetOutEdge(edgeId Index) *OutEdge {
	return &g.outEdges[edgeId]
}

func (g *Graph) GetTarget(edgeId Index) Index {
	return g.outEdges[edgeId].head
}

func (g *Graph) GetTail(edgeId Index) Index {
	return g.outEdges[edgeId].tail
}

func (g *Graph) ForOutEdgesOf(u Index, handle func(e *OutEdge, id Index)) {
	begin := g.vertices[u].firstOut
	end := Index(len(g.outEdges))
	if int(u)+1 < len(g.vertices) {
		end = g.vertices[u+1].firstOut
	}
	for id := begin; id < end; id++ {
		handle(&g.outEdges[id], id)
	}
}

// GetOutDegree counts every connected road at u, including against-oneway
// copies (the geometric degree of the junction).
func (g *Graph) GetOutDegree(u Index) int {
	begin := g.vertices[u].firstOut
	end := Index(len(g.outEdges))
	if int(u)+1 < len(g.vertices) {
		end = g.vertices[u+1].firstOut
	}
	return int(end - begin)
}

// GetDirectedOutDegree counts only the edges routing may actually leave on.
func (g *Graph) GetDirectedOutDegree(u Index) int {
	degree := 0
	g.ForOutEdgesOf(u, func(e *OutEdge, id Index) {
		if !e.reversed {
			degree++
		}
	})
	return degree
}

// FindEdge returns the edge id of u->v, or InvalidIndex when the vertices are
// not adjacent.
func (g *Graph) FindEdge(u, v Index) Index {
	found := InvalidIndex
	g.ForOutEdgesOf(u, func(e *OutEdge, id Index) {
		if e.head == v && found == InvalidIndex {
			found = id
		}
	})
	return found
}

func (g *Graph) GetStreetName(edgeId Index) string {
	nameId := g.outEdges[edgeId].nameId
	if nameId == InvalidNameId {
		return ""
	}
	return g.streetName[nameId]
}

func (g *Graph) GetNameId(edgeId Index) Index {
	return g.outEdges[edgeId].nameId
}

func (g *Graph) GetNameById(nameId Index) string {
	if nameId == InvalidNameId {
		return ""
	}
	return g.streetName[nameId]
}

func (g *Graph) GetRoadClass(edgeId Index) pkg.OsmHighwayType {
	return g.outEdges[edgeId].roadClass
}

func (g *Graph) IsRoadClassLink(edgeId Index) bool {
	return g.outEdges[edgeId].roadClassLink
}

func (g *Graph) GetRoadLanes(edgeId Index) uint8 {
	return g.outEdges[edgeId].lanes
}

func (g *Graph) GetDist(edgeId Index) float64 {
	return g.outEdges[edgeId].dist
}

func (g *Graph) IsReversed(edgeId Index) bool {
	return g.outEdges[edgeId].reversed
}

func (g *Graph) IsRoundabout(edgeId Index) bool {
	return g.outEdges[edgeId].roundabout
}

func (g *Graph) IsCircular(edgeId Index) bool {
	return g.outEdges[edgeId].circular
}

func (g *Graph) IsTrafficLight(u Index) bool {
	return g.vertices[u].trafficLight
}

func (g *Graph) IsBarrier(u Index) bool {
	return g.vertices[u].barrier
}

func (g *Graph) GetStreetNames() []string {
	return g.streetName
}
