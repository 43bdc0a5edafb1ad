package guidance

import (
	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
)

// TurnHandler is the fallback strategy for ordinary junctions: pick the
// obvious continuation if one exists, carve out fork patterns, classify the
// rest road by road.
type TurnHandler struct {
	*IntersectionHandler
}

func NewTurnHandler(base *IntersectionHandler) *TurnHandler {
	return &TurnHandler{IntersectionHandler: base}
}

// CanProcess always holds. the turn handler sits last in the strategy chain
// and accepts whatever the specialized handlers declined.
func (th *TurnHandler) CanProcess(node, via datastructure.Index, intersection Intersection) bool {
	return true
}

func (th *TurnHandler) Process(node, via datastructure.Index, intersection Intersection) Intersection {
	switch len(intersection) {
	case 1:
		intersection = th.handleDeadEnd(via, intersection)
	case 2:
		intersection = th.handleTwoWay(via, intersection)
	default:
		intersection = th.handleComplex(via, intersection)
	}

	// when turning back is the only legal move, the U-turn itself becomes the
	// narrated instruction
	if intersection[0].EntryAllowed && !hasNarratableRoad(intersection[1:]) {
		intersection[0].Instruction = TurnInstruction{TurnTypeTurn, DirectionModifierUTurn}
	}

	return intersection
}

// handleDeadEnd covers a junction whose only road leads back where we came
// from.
func (th *TurnHandler) handleDeadEnd(via datastructure.Index, intersection Intersection) Intersection {
	if intersection[0].EntryAllowed {
		intersection[0].Instruction = TurnInstruction{TurnTypeTurn, DirectionModifierUTurn}
	}
	return intersection
}

// handleTwoWay covers the single-candidate junction: one road on besides the
// U-turn slot.
func (th *TurnHandler) handleTwoWay(via datastructure.Index, intersection Intersection) Intersection {
	road := &intersection[1]
	if !road.EntryAllowed {
		return intersection
	}
	road.Instruction = th.getInstructionForObvious(1, via, th.isThroughStreet(1, intersection), road)
	return intersection
}

func (th *TurnHandler) handleComplex(via datastructure.Index, intersection Intersection) Intersection {
	obvious := th.findObviousTurn(via, intersection)
	if obvious != 0 {
		road := &intersection[obvious]
		road.Instruction = th.getInstructionForObvious(countEnterableRoads(intersection), via,
			th.isThroughStreet(obvious, intersection), road)
		th.assignTrivialTurns(via, intersection, 1, len(intersection))
		return intersection
	}

	begin, end := th.findFork(via, intersection)
	switch end - begin {
	case 2:
		// the higher angle is the left branch
		th.assignFork(via, &intersection[end-1], &intersection[begin])
	case 3:
		th.assignFork3(via, &intersection[end-1], &intersection[begin+1], &intersection[begin])
	}

	th.assignTrivialTurns(via, intersection, 1, len(intersection))
	return intersection
}

// findFork locates a run of adjacent enterable roads clustered around
// straight ahead that stands apart from the rest of the junction. returns the
// half-open index range, (0,0) when the junction holds no fork.
func (th *TurnHandler) findFork(via datastructure.Index, intersection Intersection) (int, int) {
	begin, end := -1, -1
	for i := 1; i < len(intersection); i++ {
		if angularDeviation(intersection[i].Angle, straightAngle) <= narrowTurnAngle {
			if begin == -1 {
				begin = i
			}
			end = i + 1
		} else if begin != -1 {
			break
		}
	}
	if begin == -1 {
		return 0, 0
	}
	if size := end - begin; size < 2 || size > 3 {
		return 0, 0
	}

	// every branch must be enterable and of comparable standing. a service
	// driveway next to a primary road is an exit, not a fork.
	anyLowPriority, allLowPriority := false, true
	for i := begin; i < end; i++ {
		if !intersection[i].EntryAllowed {
			return 0, 0
		}
		if th.graph.GetRoadClass(intersection[i].Eid).IsLowPriorityRoadClass() {
			anyLowPriority = true
		} else {
			allLowPriority = false
		}
	}
	if anyLowPriority && !allLowPriority {
		return 0, 0
	}

	// the fork cluster has to separate cleanly from its angular neighbours
	if begin > 1 {
		if intersection[begin].Angle-intersection[begin-1].Angle < fuzzyAngleDifference {
			return 0, 0
		}
	}
	if end < len(intersection) {
		if intersection[end].Angle-intersection[end-1].Angle < fuzzyAngleDifference {
			return 0, 0
		}
	}

	return begin, end
}

func countEnterableRoads(intersection Intersection) int {
	count := 0
	for i := 1; i < len(intersection); i++ {
		if intersection[i].EntryAllowed {
			count++
		}
	}
	return count
}

func hasNarratableRoad(roads []ConnectedRoad) bool {
	for i := range roads {
		if roads[i].EntryAllowed && roads[i].Instruction.Type != TurnTypeInvalid {
			return true
		}
	}
	return false
}
