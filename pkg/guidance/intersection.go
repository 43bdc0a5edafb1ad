package guidance

import (
	"fmt"
	"sort"

	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
	"github.com/lintang-b-s/maneuverx/pkg/util"
)

// IntersectionShapeData is one outgoing road of a junction before any arrival
// edge is fixed: just the edge, its compass bearing and its segment length.
type IntersectionShapeData struct {
	Eid           datastructure.Index
	Bearing       float64 // absolute compass direction, [0,360)
	SegmentLength float64 // meter
}

// IntersectionViewData is the shape seen from a specific arrival edge: the
// turn angle is relative to the approach (0/360 = U-turn, 180 = straight) and
// entry tells whether routing may legally turn onto the road.
type IntersectionViewData struct {
	IntersectionShapeData
	EntryAllowed bool
	Angle        float64
}

func NewIntersectionViewData(shape IntersectionShapeData, entryAllowed bool, angle float64) IntersectionViewData {
	return IntersectionViewData{
		IntersectionShapeData: shape,
		EntryAllowed:          entryAllowed,
		Angle:                 angle,
	}
}

func (v IntersectionViewData) CompareByAngle(other IntersectionViewData) bool {
	return v.Angle < other.Angle
}

// ConnectedRoad is the internal representation of a potential turn. the full
// list of connected roads is required throughout classification: even roads
// that forbid entry shape the perceived angles and therefore the instructions
// of their neighbours.
type ConnectedRoad struct {
	IntersectionViewData
	Instruction TurnInstruction
	LaneDataId  datastructure.Index
}

func NewConnectedRoad(view IntersectionViewData, instruction TurnInstruction, laneDataId datastructure.Index) ConnectedRoad {
	return ConnectedRoad{
		IntersectionViewData: view,
		Instruction:          instruction,
		LaneDataId:           laneDataId,
	}
}

func (r ConnectedRoad) compareByAngle(other ConnectedRoad) bool {
	return r.Angle < other.Angle
}

var mirroredModifiers = [MaxDirectionModifier]DirectionModifier{
	DirectionModifierUTurn:       DirectionModifierUTurn,
	DirectionModifierSharpRight:  DirectionModifierSharpLeft,
	DirectionModifierRight:       DirectionModifierLeft,
	DirectionModifierSlightRight: DirectionModifierSlightLeft,
	DirectionModifierStraight:    DirectionModifierStraight,
	DirectionModifierSlightLeft:  DirectionModifierSlightRight,
	DirectionModifierLeft:        DirectionModifierRight,
	DirectionModifierSharpLeft:   DirectionModifierSharpRight,
}

// Mirror turns a left turn into the equivalent right turn and vice versa.
// edge identity, bearing and length stay untouched so the opposite-handed
// computation still refers to the same physical road. the U-turn angle is a
// fixed point of the reflection.
func (r *ConnectedRoad) Mirror() {
	if !isUTurnAngle(r.Angle) {
		r.Angle = 360 - r.Angle
		r.Instruction.DirectionModifier = mirroredModifiers[r.Instruction.DirectionModifier]
	}
}

func (r ConnectedRoad) GetMirroredCopy() ConnectedRoad {
	copied := r
	copied.Mirror()
	return copied
}

func (r ConnectedRoad) String() string {
	return fmt.Sprintf("[connection] %d allows entry: %t angle: %f bearing: %f instruction: %d %d %d",
		r.Eid, r.EntryAllowed, r.Angle, r.Bearing, r.Instruction.Type,
		r.Instruction.DirectionModifier, r.LaneDataId)
}

type IntersectionShape = []IntersectionShapeData

// IntersectionView is the ordered set of IntersectionViewData, sorted by
// ascending turn angle. angle adjacency in the slice means adjacency in
// physical direction.
type IntersectionView []IntersectionViewData

func (iv IntersectionView) Valid() bool {
	return sort.SliceIsSorted(iv, func(i, j int) bool {
		return iv[i].CompareByAngle(iv[j])
	})
}

func (iv IntersectionView) Sort() {
	sort.SliceStable(iv, func(i, j int) bool {
		return iv[i].CompareByAngle(iv[j])
	})
}

// FindClosestTurn returns the index of the road whose angle has the least
// circular deviation from the query angle. ties resolve to the first element
// in sequence order. -1 for an empty view.
func (iv IntersectionView) FindClosestTurn(angle float64) int {
	best := -1
	bestDeviation := 0.0
	for i := range iv {
		deviation := angularDeviation(iv[i].Angle, angle)
		if best == -1 || deviation < bestDeviation {
			best, bestDeviation = i, deviation
		}
	}
	return best
}

// FindClosestBearing returns the index of the road with minimal
// absolute-bearing deviation, useful before relative angles exist.
func (iv IntersectionView) FindClosestBearing(bearing float64) int {
	best := -1
	bestDeviation := 0.0
	for i := range iv {
		deviation := angularDeviation(iv[i].Bearing, bearing)
		if best == -1 || deviation < bestDeviation {
			best, bestDeviation = i, deviation
		}
	}
	return best
}

// Intersection is an IntersectionView with classification results layered on
// top. same sort invariant; index 0 is the U-turn candidate (angle near 0)
// whenever the arrival edge is reversible.
type Intersection []ConnectedRoad

// Valid reports the standing invariant every classification step relies on: a
// non-empty set of connected roads in strictly ascending angle order with the
// U-turn candidate first.
func (in Intersection) Valid() bool {
	return len(in) > 0 &&
		sort.SliceIsSorted(in, func(i, j int) bool {
			return in[i].compareByAngle(in[j])
		}) &&
		in[0].Angle < 1e-9
}

func (in Intersection) Sort() {
	sort.SliceStable(in, func(i, j int) bool {
		return in[i].compareByAngle(in[j])
	})
}

/*
FindClosestTurn. find the turn whose angle offers the least angularDeviation
to the specified angle. E.g. for turn angles [0,90,260] and a query of 180 we
return the 260 degree turn (difference 80 over the difference of 90 to the 90
degree turn). -1 for an empty intersection.
*/
func (in Intersection) FindClosestTurn(angle float64) int {
	best := -1
	bestDeviation := 0.0
	for i := range in {
		deviation := angularDeviation(in[i].Angle, angle)
		if best == -1 || deviation < bestDeviation {
			best, bestDeviation = i, deviation
		}
	}
	return best
}

// FindClosestTurnFiltered behaves like FindClosestTurn but deprioritizes
// roads the filter wants removed: filtered status is the primary sort key,
// deviation the secondary. when even the minimum is filtered there is no
// candidate and -1 is returned.
func (in Intersection) FindClosestTurnFiltered(angle float64, filter func(road ConnectedRoad) bool) int {
	best := -1
	bestFiltered := false
	bestDeviation := 0.0
	for i := range in {
		filtered := filter(in[i])
		deviation := angularDeviation(in[i].Angle, angle)
		if best == -1 ||
			(!filtered && bestFiltered) ||
			(filtered == bestFiltered && deviation < bestDeviation) {
			best, bestFiltered, bestDeviation = i, filtered, deviation
		}
	}
	// make sure only to return valid elements
	if best != -1 && bestFiltered {
		return -1
	}
	return best
}

// FindRoadForEid finds the road belonging to the given edge, -1 when the edge
// does not leave this junction.
func (in Intersection) FindRoadForEid(eid datastructure.Index) int {
	for i := range in {
		if in[i].Eid == eid {
			return i
		}
	}
	return -1
}

// FindClosestBearing returns the index of the road with minimal
// absolute-bearing deviation from the query bearing.
func (in Intersection) FindClosestBearing(bearing float64) int {
	best := -1
	bestDeviation := 0.0
	for i := range in {
		deviation := angularDeviation(in[i].Bearing, bearing)
		if best == -1 || deviation < bestDeviation {
			best, bestDeviation = i, deviation
		}
	}
	return best
}

// GetHighestConnectedLaneCount returns the maximum lane count over all
// candidate roads. an empty intersection is a contract violation of the
// upstream builder, not a data condition.
func (in Intersection) GetHighestConnectedLaneCount(graph Graph) uint8 {
	util.AssertPanic(len(in) > 0, "getHighestConnectedLaneCount on empty intersection")

	maxLanes := uint8(0)
	for i := range in {
		maxLanes = util.MaxG(maxLanes, graph.GetRoadLanes(in[i].Eid))
	}
	return maxLanes
}
