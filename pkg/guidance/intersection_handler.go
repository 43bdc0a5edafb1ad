package guidance

import (
	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
	"github.com/lintang-b-s/maneuverx/pkg/util"
)

// IntersectionHandler carries the shared classification algorithms every
// strategy builds on. it holds no per-junction state: each call works on the
// intersection value passed in and the read-only graph.
type IntersectionHandler struct {
	graph       Graph
	suffixTable *SuffixTable
	builder     *IntersectionBuilder
	walker      *GraphWalker

	// margin by which a center fork road must be closer to straight than both
	// sides before it reads as fork-straight
	forkStraightMargin float64
}

func NewIntersectionHandler(graph Graph, suffixTable *SuffixTable) *IntersectionHandler {
	return &IntersectionHandler{
		graph:              graph,
		suffixTable:        suffixTable,
		builder:            NewIntersectionBuilder(graph),
		walker:             NewGraphWalker(graph),
		forkStraightMargin: defaultForkStraightMargin,
	}
}

func (h *IntersectionHandler) SetForkStraightMargin(margin float64) {
	h.forkStraightMargin = margin
}

func (h *IntersectionHandler) streetName(edgeId datastructure.Index) string {
	return h.graph.GetNameById(h.graph.GetNameId(edgeId))
}

func (h *IntersectionHandler) sameStreetName(inEdge, outEdge datastructure.Index) bool {
	inName := h.streetName(inEdge)
	if inName == "" {
		return false
	}
	return !RequiresNameAnnounced(inName, h.streetName(outEdge), h.suffixTable)
}

// findBasicTurnType decides the coarse turn category of a candidate from its
// angle relative to the via edge, ramp relationships, and whether the street
// name carries over.
func (h *IntersectionHandler) findBasicTurnType(viaEdge datastructure.Index, road *ConnectedRoad) TurnType {
	onRamp := h.graph.IsRoadClassLink(road.Eid)
	fromRamp := h.graph.IsRoadClassLink(viaEdge)

	if onRamp && !fromRamp {
		return TurnTypeOnRamp
	}
	if !onRamp && fromRamp {
		return TurnTypeMerge
	}

	// near the turn-back angle the name does not matter anymore
	if angularDeviation(road.Angle, uturnAngle) < maximalAllowedNoTurnDeviation {
		return TurnTypeTurn
	}

	continuationLike := angularDeviation(road.Angle, straightAngle) < 2*narrowTurnAngle
	sameClass := h.graph.GetRoadClass(viaEdge) == h.graph.GetRoadClass(road.Eid)
	if h.sameStreetName(viaEdge, road.Eid) && sameClass && continuationLike {
		return TurnTypeContinue
	}

	return TurnTypeTurn
}

/*
findObviousTurn decides whether one candidate is the natural continuation that
needs no narrated decision and returns its index; 0 (the U-turn slot) signals
that none is obvious. precedence:

 1. at most one other plausible candidate may sit in a comparable angular
    band around straight ahead,
 2. a materially higher road class close to straight beats a same-angle
    lower-class alternative,
 3. lane-count dominance breaks a remaining tie,
 4. a single viable candidate is obvious by elimination even off-axis.

total for every well-formed intersection.
*/
func (h *IntersectionHandler) findObviousTurn(viaEdge datastructure.Index, intersection Intersection) int {
	util.AssertPanic(len(intersection) > 0, "findObviousTurn on empty intersection")

	numValid, lastValid := 0, 0
	for i := 1; i < len(intersection); i++ {
		if intersection[i].EntryAllowed {
			numValid++
			lastValid = i
		}
	}
	if numValid == 0 {
		return 0
	}
	if numValid == 1 {
		// obvious by elimination, regardless of angle
		return lastValid
	}

	best, bestDeviation := 0, straightAngle
	for i := 1; i < len(intersection); i++ {
		road := &intersection[i]
		if !road.EntryAllowed {
			continue
		}
		deviation := angularDeviation(road.Angle, straightAngle)
		if deviation < bestDeviation {
			best, bestDeviation = i, deviation
		}
	}
	if best == 0 {
		return 0
	}

	// far off straight, an enterable road is a turn, not a continuation
	if bestDeviation > 2*narrowTurnAngle {
		return 0
	}

	inClass := h.graph.GetRoadClass(viaEdge)
	bestClass := h.graph.GetRoadClass(intersection[best].Eid)
	bestLanes := h.graph.GetRoadLanes(intersection[best].Eid)

	for i := 1; i < len(intersection); i++ {
		road := &intersection[i]
		if i == best || !road.EntryAllowed {
			continue
		}
		deviation := angularDeviation(road.Angle, straightAngle)

		// the comparable band never shrinks below the fuzzy width, so a
		// dead-straight best road still competes with its side branches
		distinctlyWorse := deviation > distinctionRatio*util.MaxG(bestDeviation, fuzzyAngleDifference) &&
			deviation-bestDeviation > fuzzyAngleDifference
		if distinctlyWorse {
			continue
		}

		// the competitor sits in the comparable band; only class or lane
		// dominance keeps the best obvious
		competitorClass := h.graph.GetRoadClass(road.Eid)
		if obviousByRoadClass(inClass, bestClass, competitorClass) {
			continue
		}
		if obviousByRoadClass(inClass, competitorClass, bestClass) {
			return 0
		}
		if bestLanes > h.graph.GetRoadLanes(road.Eid) {
			continue
		}
		return 0
	}

	return best
}

// getInstructionForObvious refines an already-obvious candidate into its
// final instruction. the directional modifier always comes from the angle
// bucket, independent of the chosen kind.
func (h *IntersectionHandler) getInstructionForObvious(numberOfCandidates int,
	viaEdge datastructure.Index, throughStreet bool, road *ConnectedRoad) TurnInstruction {

	mod := getTurnDirection(road.Angle)
	basic := h.findBasicTurnType(viaEdge, road)

	switch basic {
	case TurnTypeOnRamp:
		return TurnInstruction{TurnTypeOnRamp, mod}
	case TurnTypeMerge:
		return TurnInstruction{TurnTypeMerge, mod}
	}

	if angularDeviation(road.Angle, uturnAngle) < maximalAllowedNoTurnDeviation {
		return TurnInstruction{TurnTypeTurn, DirectionModifierUTurn}
	}

	if basic == TurnTypeContinue && throughStreet {
		if numberOfCandidates == 1 {
			return NoTurn()
		}
		return TurnInstruction{TurnTypeContinue, mod}
	}

	nameChanges := RequiresNameAnnounced(h.streetName(viaEdge), h.streetName(road.Eid), h.suffixTable)
	sameClass := h.graph.GetRoadClass(viaEdge) == h.graph.GetRoadClass(road.Eid)
	if nameChanges && sameClass && angularDeviation(road.Angle, straightAngle) < narrowTurnAngle {
		return TurnInstruction{TurnTypeNewName, mod}
	}

	return SuppressedTurn(mod)
}

// assignFork classifies a symmetric two-way fork. the right branch is
// mirrored into the left-hand frame so both branches run the identical
// algorithm, then its result is mirrored back.
func (h *IntersectionHandler) assignFork(viaEdge datastructure.Index, left, right *ConnectedRoad) {
	h.assignForkHanded(viaEdge, left)

	mirrored := right.GetMirroredCopy()
	h.assignForkHanded(viaEdge, &mirrored)
	mirrored.Mirror()
	right.Instruction = mirrored.Instruction
}

// assignForkHanded treats the road as the left-hand branch of a fork. a
// mirrored right-hand branch is indistinguishable from one.
func (h *IntersectionHandler) assignForkHanded(viaEdge datastructure.Index, road *ConnectedRoad) {
	forkType := TurnTypeFork
	if h.findBasicTurnType(viaEdge, road) == TurnTypeOnRamp {
		forkType = TurnTypeOnRamp
	}

	mod := DirectionModifierSlightLeft
	if angularDeviation(road.Angle, straightAngle) > narrowTurnAngle {
		// too wide to read as a fork branch, keep the real direction
		mod = getTurnDirection(road.Angle)
	}
	road.Instruction = TurnInstruction{forkType, mod}
}

// assignFork3 handles a three-way fork. the center road becomes fork-straight
// only when it is closer to straight ahead than both sides by more than the
// configured margin; otherwise the closest two roads form the fork and the
// remaining one is classified as a distinct turn.
func (h *IntersectionHandler) assignFork3(viaEdge datastructure.Index, left, center, right *ConnectedRoad) {
	devLeft := angularDeviation(left.Angle, straightAngle)
	devCenter := angularDeviation(center.Angle, straightAngle)
	devRight := angularDeviation(right.Angle, straightAngle)

	if devCenter+h.forkStraightMargin < util.MinG(devLeft, devRight) {
		center.Instruction = TurnInstruction{TurnTypeFork, DirectionModifierStraight}
		h.assignFork(viaEdge, left, right)
		return
	}

	if devLeft <= devRight {
		// left and center carry the fork, the right road is its own turn
		h.assignFork(viaEdge, left, center)
		right.Instruction = TurnInstruction{h.findBasicTurnType(viaEdge, right), getTurnDirection(right.Angle)}
		return
	}

	h.assignFork(viaEdge, center, right)
	left.Instruction = TurnInstruction{h.findBasicTurnType(viaEdge, left), getTurnDirection(left.Angle)}
}

// assignTrivialTurns assigns instructions in [begin,end) directly from the
// basic turn type and the angle bucket, with no cross-candidate reasoning.
// fallback once obvious and fork cases are carved out.
func (h *IntersectionHandler) assignTrivialTurns(viaEdge datastructure.Index,
	intersection Intersection, begin, end int) {
	for i := begin; i < end && i < len(intersection); i++ {
		road := &intersection[i]
		if !road.EntryAllowed {
			continue
		}
		if road.Instruction.Type != TurnTypeInvalid {
			continue
		}
		road.Instruction = TurnInstruction{h.findBasicTurnType(viaEdge, road), getTurnDirection(road.Angle)}
	}
}

// isThroughStreet reports whether the road at index, paired with a same-name
// road on the roughly opposite side of the junction, forms a street passing
// straight through the node.
func (h *IntersectionHandler) isThroughStreet(index int, intersection Intersection) bool {
	name := h.streetName(intersection[index].Eid)
	if name == "" {
		return false
	}
	for i := range intersection {
		road := &intersection[i]
		if road.Eid == intersection[index].Eid {
			continue
		}
		sameName := !RequiresNameAnnounced(name, h.streetName(road.Eid), h.suffixTable)
		opposite := angularDeviation(road.Angle, intersection[index].Angle) > (straightAngle - narrowTurnAngle)
		if sameName && opposite {
			return true
		}
	}
	return false
}

// IntersectionViewAndNode is the result of looking ahead across artificial
// nodes: the first real decision point and its intersection view.
type IntersectionViewAndNode struct {
	Intersection IntersectionView
	Node         datastructure.Index
}

/*
getNextIntersection skips over artificial intersections i.e. traffic lights,
barriers etc. and returns the next real intersection and its node, or nil if
the walk runs off the graph.

	a ... tl ... b .. c
	             .
	             .
	             d

	^ at
	   ^ via

for this scenario returns the intersection at `b` and `b`.
*/
func (h *IntersectionHandler) getNextIntersection(at, via datastructure.Index) *IntersectionViewAndNode {
	util.AssertPanic(h.graph.GetTail(via) == at, "via edge does not leave the given node")

	visited := map[datastructure.Index]struct{}{at: {}}
	edge := via
	node := h.walker.Advance(edge)

	for {
		if _, seen := visited[node]; seen {
			// cyclic chain of artificial nodes, nothing real to report
			return nil
		}
		visited[node] = struct{}{}

		if h.graph.GetOutDegree(node) <= 1 {
			// dead end
			return nil
		}

		if !h.walker.IsArtificialNode(node, edge) {
			return &IntersectionViewAndNode{
				Intersection: h.builder.BuildView(edge),
				Node:         node,
			}
		}

		onward := h.walker.SelectOnwardEdge(node, edge)
		if onward == datastructure.InvalidIndex {
			return nil
		}
		edge = onward
		node = h.walker.Advance(edge)
	}
}
