package guidance

import (
	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
	"github.com/lintang-b-s/maneuverx/pkg/geo"
	"github.com/lintang-b-s/maneuverx/pkg/util"
)

// IntersectionBuilder turns raw graph topology into angle-sorted intersection
// values. the classification engine never assembles one from scratch.
type IntersectionBuilder struct {
	graph Graph
}

func NewIntersectionBuilder(graph Graph) *IntersectionBuilder {
	return &IntersectionBuilder{graph: graph}
}

// arrivalBearing is the compass direction of the via edge where it enters the
// junction.
func (ib *IntersectionBuilder) arrivalBearing(via datastructure.Index) float64 {
	fromLat, fromLon := ib.graph.GetVertexCoordinates(ib.graph.GetTail(via))
	atLat, atLon := ib.graph.GetVertexCoordinates(ib.graph.GetTarget(via))
	return geo.BearingTo(fromLat, fromLon, atLat, atLon)
}

// BuildView assembles the IntersectionView of the junction reached over
// `via`: every outgoing road with bearing, relative turn angle and entry
// permission, sorted by ascending angle.
func (ib *IntersectionBuilder) BuildView(via datastructure.Index) IntersectionView {
	at := ib.graph.GetTarget(via)
	from := ib.graph.GetTail(via)
	atLat, atLon := ib.graph.GetVertexCoordinates(at)
	inBearing := ib.arrivalBearing(via)

	view := make(IntersectionView, 0, ib.graph.GetOutDegree(at))
	uturnSeen := false

	ib.graph.ForOutEdgesOf(at, func(e *datastructure.OutEdge, id datastructure.Index) {
		headLat, headLon := ib.graph.GetVertexCoordinates(e.GetHead())
		bearing := geo.BearingTo(atLat, atLon, headLat, headLon)
		angle := geo.TurnAngleFromBearings(inBearing, bearing)

		if e.GetHead() == from && !uturnSeen {
			// the road back where we came from is the U-turn candidate and
			// pins the angle-minimal slot
			angle = 0
			uturnSeen = true
		}

		shape := IntersectionShapeData{
			Eid:           id,
			Bearing:       bearing,
			SegmentLength: e.GetDist(),
		}
		view = append(view, NewIntersectionViewData(shape, !e.IsReversed(), angle))
	})

	view.Sort()
	return view
}

// Build assembles the mutable Intersection for the junction reached over
// `via`. instructions start out invalid and get assigned by the handlers.
func (ib *IntersectionBuilder) Build(via datastructure.Index) Intersection {
	view := ib.BuildView(via)

	intersection := make(Intersection, 0, len(view))
	for _, road := range view {
		intersection = append(intersection, NewConnectedRoad(road, InvalidTurn(), datastructure.InvalidIndex))
	}

	util.AssertPanic(len(intersection) > 0, "intersection builder produced no connected roads")
	return intersection
}
