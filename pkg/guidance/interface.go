package guidance

import (
	"github.com/lintang-b-s/maneuverx/pkg"
	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
)

type Graph interface {
	GetVertex(u datastructure.Index) *datastructure.Vertex
	GetVertexCoordinates(u datastructure.Index) (float64, float64)
	GetTarget(edgeId datastructure.Index) datastructure.Index
	GetTail(edgeId datastructure.Index) datastructure.Index
	ForOutEdgesOf(u datastructure.Index, handle func(e *datastructure.OutEdge, id datastructure.Index))
	GetOutDegree(u datastructure.Index) int
	GetDirectedOutDegree(u datastructure.Index) int
	FindEdge(u, v datastructure.Index) datastructure.Index
	GetNameId(edgeId datastructure.Index) datastructure.Index
	GetNameById(nameId datastructure.Index) string
	GetRoadClass(edgeId datastructure.Index) pkg.OsmHighwayType
	IsRoadClassLink(edgeId datastructure.Index) bool
	GetRoadLanes(edgeId datastructure.Index) uint8
	GetDist(edgeId datastructure.Index) float64
	IsReversed(edgeId datastructure.Index) bool
	IsRoundabout(edgeId datastructure.Index) bool
	IsCircular(edgeId datastructure.Index) bool
	IsTrafficLight(u datastructure.Index) bool
	IsBarrier(u datastructure.Index) bool
	NumberOfVertices() int
}
