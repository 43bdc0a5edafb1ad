package guidance

import (
	"math"
	"sort"

	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
	"github.com/lintang-b-s/maneuverx/pkg/geo"
)

// RoundaboutHandler classifies turns at junctions touching a roundabout or a
// circular way: entering, staying on, and leaving the circle. it runs before
// the generic turn handler.
type RoundaboutHandler struct {
	*IntersectionHandler

	leftHandDriving bool
}

func NewRoundaboutHandler(base *IntersectionHandler, leftHandDriving bool) *RoundaboutHandler {
	return &RoundaboutHandler{IntersectionHandler: base, leftHandDriving: leftHandDriving}
}

type roundaboutFlags struct {
	onRoundabout      bool
	canEnter          bool
	canExitSeparately bool
}

func (rh *RoundaboutHandler) CanProcess(node, via datastructure.Index, intersection Intersection) bool {
	flags := rh.getRoundaboutFlags(node, via, intersection)
	if !flags.onRoundabout && !flags.canEnter {
		return false
	}
	return rh.getRoundaboutType(rh.graph.GetTarget(via)) != RoundaboutTypeNone
}

func (rh *RoundaboutHandler) Process(node, via datastructure.Index, intersection Intersection) Intersection {
	rh.invalidateExitAgainstDirection(node, via, intersection)
	flags := rh.getRoundaboutFlags(node, via, intersection)
	roundaboutType := rh.getRoundaboutType(rh.graph.GetTarget(via))
	return rh.handleRoundabouts(roundaboutType, via, flags.onRoundabout, flags.canExitSeparately, intersection)
}

func (rh *RoundaboutHandler) onCircle(edgeId datastructure.Index) bool {
	return rh.graph.IsRoundabout(edgeId) || rh.graph.IsCircular(edgeId)
}

// forEachRoadInDrivingOrder visits the intersection roads in the order a
// driver passes them: ascending angle for right-hand traffic, descending for
// left-hand traffic.
func (rh *RoundaboutHandler) forEachRoadInDrivingOrder(intersection Intersection,
	visit func(road *ConnectedRoad)) {
	if rh.leftHandDriving {
		for i := len(intersection) - 1; i >= 0; i-- {
			visit(&intersection[i])
		}
		return
	}
	for i := range intersection {
		visit(&intersection[i])
	}
}

func (rh *RoundaboutHandler) getRoundaboutFlags(node, via datastructure.Index,
	intersection Intersection) roundaboutFlags {
	flags := roundaboutFlags{onRoundabout: rh.onCircle(via)}

	rh.forEachRoadInDrivingOrder(intersection, func(road *ConnectedRoad) {
		if rh.graph.IsReversed(road.Eid) || !road.EntryAllowed {
			return
		}
		if rh.onCircle(road.Eid) {
			flags.canEnter = true
			return
		}
		// an exit right at the entry point is a data-modelling artifact. we
		// only count exits leading away from the node we came from that show
		// up before the roundabout in driving order.
		if rh.graph.GetTarget(road.Eid) != node && !flags.canEnter {
			flags.canExitSeparately = true
		}
	})
	return flags
}

// invalidateExitAgainstDirection drops exits that would only be reachable by
// driving the circle against its direction: any non-roundabout road appearing
// after the incoming roundabout arm in driving order.
func (rh *RoundaboutHandler) invalidateExitAgainstDirection(node, via datastructure.Index,
	intersection Intersection) {
	if rh.onCircle(via) {
		return
	}

	pastRoundaboutAngle := false
	rh.forEachRoadInDrivingOrder(intersection, func(road *ConnectedRoad) {
		if rh.graph.IsReversed(road.Eid) {
			if rh.onCircle(road.Eid) {
				pastRoundaboutAngle = true
			}
			return
		}
		if !rh.onCircle(road.Eid) && rh.graph.GetTarget(road.Eid) != node && pastRoundaboutAngle {
			road.EntryAllowed = false
		}
	})
}

// nextOnRoundabout follows the circle one arc forward from node, collecting
// the street names seen on and next to the circle. InvalidIndex signals a
// fork in the circle, which disqualifies the whole structure.
func (rh *RoundaboutHandler) nextOnRoundabout(node datastructure.Index, circular bool,
	circleNames, connectedNames map[datastructure.Index]struct{}) datastructure.Index {
	continueEdge := datastructure.InvalidIndex
	forked := false

	rh.graph.ForOutEdgesOf(node, func(e *datastructure.OutEdge, id datastructure.Index) {
		if !e.IsReversed() && e.IsCircular() == circular && e.IsRoundabout() == !circular {
			if continueEdge != datastructure.InvalidIndex {
				forked = true
				return
			}
			if nameId := e.GetNameId(); nameId != datastructure.InvalidNameId {
				name := rh.graph.GetNameById(nameId)
				distinct := true
				for seen := range circleNames {
					if !RequiresNameAnnounced(rh.graph.GetNameById(seen), name, rh.suffixTable) {
						distinct = false
						break
					}
				}
				if distinct {
					circleNames[nameId] = struct{}{}
				}
			}
			continueEdge = id
			return
		}
		if !e.IsRoundabout() && !e.IsCircular() {
			connectedNames[e.GetNameId()] = struct{}{}
		}
	})

	if forked {
		return datastructure.InvalidIndex
	}
	return continueEdge
}

func (rh *RoundaboutHandler) countCircleEdges(node datastructure.Index) int {
	count := 0
	rh.graph.ForOutEdgesOf(node, func(e *datastructure.OutEdge, id datastructure.Index) {
		if e.IsRoundabout() || e.IsCircular() {
			count++
		}
	})
	return count
}

// qualifiesAsRoundaboutIntersection decides whether a tiny roundabout can be
// narrated as a plain intersection: at most four simple entry/exit nodes
// whose exit bearings differ by more than a narrow turn.
func (rh *RoundaboutHandler) qualifiesAsRoundaboutIntersection(circleNodes map[datastructure.Index]struct{}) bool {
	if len(circleNodes) > 4 {
		return false
	}
	for node := range circleNodes {
		if rh.graph.GetOutDegree(node) > 3 {
			return false
		}
	}

	bearings := make([]float64, 0, len(circleNodes))
	for node := range circleNodes {
		nodeLat, nodeLon := rh.graph.GetVertexCoordinates(node)
		rh.graph.ForOutEdgesOf(node, func(e *datastructure.OutEdge, id datastructure.Index) {
			if e.IsRoundabout() || e.IsCircular() {
				return
			}
			headLat, headLon := rh.graph.GetVertexCoordinates(e.GetHead())
			bearings = append(bearings, geo.BearingTo(nodeLat, nodeLon, headLat, headLon))
		})
	}
	sort.Float64s(bearings)

	for i := range bearings {
		next := bearings[(i+1)%len(bearings)]
		if geo.AngularDeviation(next, bearings[i]) <= narrowTurnAngle {
			return false
		}
	}
	return true
}

/*
getRoundaboutType walks the full circle starting at nid and classifies the
structure:

  - Rotary: a named circle whose name is its own (or any circular way, or one
    larger than the roundabout radius cap),
  - RoundaboutIntersection: a tiny circle readable as a plain crossing,
  - Roundabout: everything else that is well formed,
  - None: broken tagging (forks in the circle, mixed flags, self-loops).
*/
func (rh *RoundaboutHandler) getRoundaboutType(nid datastructure.Index) RoundaboutType {
	roundabout, circular := false, false
	rh.graph.ForOutEdgesOf(nid, func(e *datastructure.OutEdge, id datastructure.Index) {
		roundabout = roundabout || e.IsRoundabout()
		circular = circular || e.IsCircular()
	})
	if roundabout == circular {
		return RoundaboutTypeNone
	}

	circleNames := make(map[datastructure.Index]struct{})
	connectedNames := make(map[datastructure.Index]struct{})
	circleNodes := make(map[datastructure.Index]struct{})
	visited := make(map[datastructure.Index]struct{})
	circleLength := 0.0

	lastNode := nid
	for {
		if _, seen := visited[lastNode]; seen {
			break
		}
		visited[lastNode] = struct{}{}

		// only entry/exit locations matter for the shape of the circle
		if rh.graph.GetOutDegree(lastNode) > 2 {
			circleNodes[lastNode] = struct{}{}
		}

		if rh.countCircleEdges(lastNode) != 2 {
			return RoundaboutTypeNone
		}

		eid := rh.nextOnRoundabout(lastNode, circular, circleNames, connectedNames)
		if eid == datastructure.InvalidIndex {
			return RoundaboutTypeNone
		}

		circleLength += rh.graph.GetDist(eid)
		lastNode = rh.graph.GetTarget(eid)
		if lastNode == nid {
			break
		}
	}

	if len(circleNodes) == 0 {
		return RoundaboutTypeNone
	}

	// more a traffic loop than anything else
	if len(circleNodes) == 1 && roundabout {
		return RoundaboutTypeRoundaboutIntersection
	}

	radius := circleLength / (2 * math.Pi)

	isRotary := len(circleNames) == 1 && func() bool {
		if circular {
			return true
		}
		for nameId := range circleNames {
			if _, shared := connectedNames[nameId]; shared {
				return false
			}
		}
		return radius > maxRoundaboutRadiusMeter
	}()
	if isRotary {
		return RoundaboutTypeRotary
	}

	// circular ways without a dedicated name are not narrated as roundabouts
	if circular {
		return RoundaboutTypeNone
	}

	if rh.qualifiesAsRoundaboutIntersection(circleNodes) && radius < maxRoundaboutIntersectionRadiusMeter {
		return RoundaboutTypeRoundaboutIntersection
	}

	return RoundaboutTypeRoundabout
}

func (rh *RoundaboutHandler) handleRoundabouts(roundaboutType RoundaboutType,
	via datastructure.Index, onRoundabout, canExitSeparately bool,
	intersection Intersection) Intersection {
	center := rh.graph.GetTarget(via)

	if onRoundabout {
		rh.forEachRoadInDrivingOrder(intersection, func(road *ConnectedRoad) {
			if !rh.onCircle(road.Eid) {
				road.Instruction = ExitRoundabout(roundaboutType, getTurnDirection(road.Angle))
				return
			}
			if rh.graph.GetDirectedOutDegree(center) == 1 {
				// no turn possible here
				if len(intersection) == 2 {
					road.Instruction = NoTurn()
				} else {
					road.Instruction = SuppressedTurn(getTurnDirection(road.Angle))
				}
				return
			}
			if rh.hasNonIgnorableExit(center) {
				road.Instruction = RemainOnRoundabout(roundaboutType, getTurnDirection(road.Angle))
			} else {
				road.Instruction = SuppressedTurn(getTurnDirection(road.Angle))
			}
		})
		return intersection
	}

	rh.forEachRoadInDrivingOrder(intersection, func(road *ConnectedRoad) {
		if !road.EntryAllowed {
			return
		}
		if rh.onCircle(road.Eid) {
			if canExitSeparately {
				road.Instruction = EnterRoundaboutAtExit(roundaboutType, getTurnDirection(road.Angle))
			} else {
				road.Instruction = EnterRoundabout(roundaboutType, getTurnDirection(road.Angle))
			}
			return
		}
		road.Instruction = EnterAndExitRoundabout(roundaboutType, getTurnDirection(road.Angle))
	})
	return intersection
}

// hasNonIgnorableExit reports whether the circle node offers an exit worth
// announcing, i.e. one that is not a low-priority service road.
func (rh *RoundaboutHandler) hasNonIgnorableExit(node datastructure.Index) bool {
	found := false
	rh.graph.ForOutEdgesOf(node, func(e *datastructure.OutEdge, id datastructure.Index) {
		if e.IsReversed() || e.IsRoundabout() || e.IsCircular() {
			return
		}
		if !rh.graph.GetRoadClass(id).IsLowPriorityRoadClass() {
			found = true
		}
	})
	return found
}
