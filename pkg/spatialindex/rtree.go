package spatialindex

import (
	"math"

	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
	"github.com/lintang-b-s/maneuverx/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

type Rtree struct {
	tr    *rtree.RTreeG[EdgeEndpoint]
	graph *datastructure.Graph
}

// EdgeEndpoint is one indexed road segment. queries snap a raw coordinate to
// the nearest segment so classification can start from a real arrival edge.
type EdgeEndpoint struct {
	edgeId datastructure.Index
}

func (ee EdgeEndpoint) GetEdgeId() datastructure.Index {
	return ee.edgeId
}

func newEdgeEndpoint(edgeId datastructure.Index) EdgeEndpoint {
	return EdgeEndpoint{edgeId: edgeId}
}

func NewRtree(graph *datastructure.Graph) *Rtree {
	var tr rtree.RTreeG[EdgeEndpoint]
	return &Rtree{
		tr:    &tr,
		graph: graph,
	}
}

// Build. build r-tree, with each leaf having bounding box with radius boundingBoxRadius (in km)
func (rt *Rtree) Build(boundingBoxRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")

	for u := datastructure.Index(0); int(u) < rt.graph.NumberOfVertices(); u++ {
		rt.graph.ForOutEdgesOf(u, func(e *datastructure.OutEdge, id datastructure.Index) {
			if e.IsReversed() {
				// the forward copy of the segment is enough for snapping
				return
			}
			fromLat, fromLon := rt.graph.GetVertexCoordinates(e.GetTail())
			toLat, toLon := rt.graph.GetVertexCoordinates(e.GetHead())

			lowerFromLat, lowerFromLon := geo.GetDestinationPoint(fromLat, fromLon, 225, boundingBoxRadius)
			upperFromLat, upperFromLon := geo.GetDestinationPoint(fromLat, fromLon, 45, boundingBoxRadius)
			lowerToLat, lowerToLon := geo.GetDestinationPoint(toLat, toLon, 225, boundingBoxRadius)
			upperToLat, upperToLon := geo.GetDestinationPoint(toLat, toLon, 45, boundingBoxRadius)

			minLat := math.Min(lowerFromLat, lowerToLat)
			minLon := math.Min(lowerFromLon, lowerToLon)
			maxLat := math.Max(upperFromLat, upperToLat)
			maxLon := math.Max(upperFromLon, upperToLon)

			rt.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat},
				newEdgeEndpoint(id))
		})
	}

	log.Info("R-tree spatial index built.")
}

// SearchWithinRadius search for all edge endpoints within radius (in km) from the query point (qLat, qLon)
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []EdgeEndpoint {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]EdgeEndpoint, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data EdgeEndpoint) bool {
			results = append(results, data)
			if len(results) >= 20 {
				return false
			}
			return true
		})
	return results
}

// SnapToNearestEdge picks the indexed segment whose geometry lies closest to
// the query point, growing the search radius until something is found.
// returns InvalidIndex if the point is nowhere near the road network.
func (rt *Rtree) SnapToNearestEdge(qLat, qLon float64) datastructure.Index {
	for radius := 0.1; radius <= 3.2; radius *= 2 {
		candidates := rt.SearchWithinRadius(qLat, qLon, radius)
		if len(candidates) == 0 {
			continue
		}

		best := datastructure.InvalidIndex
		bestDist := math.Inf(1)
		for _, cand := range candidates {
			edgeId := cand.GetEdgeId()
			fromLat, fromLon := rt.graph.GetVertexCoordinates(rt.graph.GetTail(edgeId))
			toLat, toLon := rt.graph.GetVertexCoordinates(rt.graph.GetTarget(edgeId))

			dist := geo.PointLinePerpendicularDistance(geo.NewCoordinate(fromLat, fromLon),
				geo.NewCoordinate(toLat, toLon), geo.NewCoordinate(qLat, qLon))
			if dist < bestDist {
				best, bestDist = edgeId, dist
			}
		}
		return best
	}
	return datastructure.InvalidIndex
}
