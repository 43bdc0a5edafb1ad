package guidance

import (
	"testing"

	"github.com/lintang-b-s/maneuverx/pkg"
	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
	"github.com/stretchr/testify/require"
)

// branches leaving 15 degrees either side of straight ahead
func forkNodes() []testNode {
	return []testNode{
		{-0.001, 0, false, false},
		{0, 0, false, false},
		{0.000966, 0.000259, false, false},  // bearing 15, the right branch
		{0.000966, -0.000259, false, false}, // bearing 345, the left branch
		{0.001, 0, false, false},            // straight ahead, only used by the 3-way case
	}
}

func TestTwoWayFork(t *testing.T) {
	g := buildTestGraph(t, forkNodes(),
		[]testEdge{
			{from: 0, to: 1, name: "jalan ahmad yani", class: pkg.RESIDENTIAL},
			{from: 1, to: 2, name: "jalan veteran", class: pkg.RESIDENTIAL, oneWay: true},
			{from: 1, to: 3, name: "jalan gajah mada", class: pkg.RESIDENTIAL, oneWay: true},
		})

	analysis := NewTurnAnalysis(g, DefaultSuffixTable(), false)
	via := mustFindEdge(t, g, 0, 1)
	intersection := analysis.GetTurns(0, via)

	right := intersection.FindRoadForEid(mustFindEdge(t, g, 1, 2))
	left := intersection.FindRoadForEid(mustFindEdge(t, g, 1, 3))

	require.Equal(t, TurnInstruction{TurnTypeFork, DirectionModifierSlightRight},
		intersection[right].Instruction)
	require.Equal(t, TurnInstruction{TurnTypeFork, DirectionModifierSlightLeft},
		intersection[left].Instruction)
}

func TestThreeWayFork(t *testing.T) {
	g := buildTestGraph(t, forkNodes(),
		[]testEdge{
			{from: 0, to: 1, name: "jalan ahmad yani", class: pkg.RESIDENTIAL},
			{from: 1, to: 2, name: "jalan veteran", class: pkg.RESIDENTIAL, oneWay: true},
			{from: 1, to: 3, name: "jalan gajah mada", class: pkg.RESIDENTIAL, oneWay: true},
			{from: 1, to: 4, name: "jalan merdeka", class: pkg.RESIDENTIAL, oneWay: true},
		})

	analysis := NewTurnAnalysis(g, DefaultSuffixTable(), false)
	via := mustFindEdge(t, g, 0, 1)
	intersection := analysis.GetTurns(0, via)

	right := intersection.FindRoadForEid(mustFindEdge(t, g, 1, 2))
	center := intersection.FindRoadForEid(mustFindEdge(t, g, 1, 4))
	left := intersection.FindRoadForEid(mustFindEdge(t, g, 1, 3))

	require.Equal(t, TurnInstruction{TurnTypeFork, DirectionModifierSlightRight},
		intersection[right].Instruction)
	require.Equal(t, TurnInstruction{TurnTypeFork, DirectionModifierStraight},
		intersection[center].Instruction)
	require.Equal(t, TurnInstruction{TurnTypeFork, DirectionModifierSlightLeft},
		intersection[left].Instruction)
}

// the dead-straight center of a symmetric fork must not be picked as the
// obvious continuation: its side branches sit inside the comparable band
// even though their deviation ratio against ~0 is unbounded
func TestCenterOfSymmetricForkIsNotObvious(t *testing.T) {
	g := buildTestGraph(t, forkNodes(),
		[]testEdge{
			{from: 0, to: 1, name: "jalan ahmad yani", class: pkg.RESIDENTIAL},
			{from: 1, to: 2, name: "jalan veteran", class: pkg.RESIDENTIAL, oneWay: true},
			{from: 1, to: 3, name: "jalan gajah mada", class: pkg.RESIDENTIAL, oneWay: true},
			{from: 1, to: 4, name: "jalan merdeka", class: pkg.RESIDENTIAL, oneWay: true},
		})

	handler := NewIntersectionHandler(g, DefaultSuffixTable())
	via := mustFindEdge(t, g, 0, 1)
	intersection := NewIntersectionBuilder(g).Build(via)

	require.Equal(t, 0, handler.findObviousTurn(via, intersection))
}

// a fork classified on mirrored input must come out as the mirrored
// classification: the algorithm is blind to handedness
func TestAssignForkIsMirrorSymmetric(t *testing.T) {
	g := buildTestGraph(t, forkNodes(),
		[]testEdge{
			{from: 0, to: 1, name: "jalan ahmad yani", class: pkg.RESIDENTIAL},
			{from: 1, to: 2, name: "jalan veteran", class: pkg.RESIDENTIAL, oneWay: true},
			{from: 1, to: 3, name: "jalan gajah mada", class: pkg.RESIDENTIAL, oneWay: true},
		})

	handler := NewIntersectionHandler(g, DefaultSuffixTable())
	builder := NewIntersectionBuilder(g)
	via := mustFindEdge(t, g, 0, 1)
	intersection := builder.Build(via)
	require.Len(t, intersection, 3)

	left, right := intersection[2], intersection[1]
	handler.assignFork(via, &left, &right)

	mirroredLeft, mirroredRight := right.GetMirroredCopy(), left.GetMirroredCopy()
	mirroredLeft.Instruction, mirroredRight.Instruction = InvalidTurn(), InvalidTurn()
	handler.assignFork(via, &mirroredLeft, &mirroredRight)

	require.Equal(t, left.Instruction, mirroredRight.GetMirroredCopy().Instruction)
	require.Equal(t, right.Instruction, mirroredLeft.GetMirroredCopy().Instruction)
}

func TestServiceDrivewayNextToPrimaryIsNoFork(t *testing.T) {
	g := buildTestGraph(t, forkNodes(),
		[]testEdge{
			{from: 0, to: 1, name: "jalan sudirman", class: pkg.PRIMARY},
			{from: 1, to: 2, name: "jalan veteran", class: pkg.PRIMARY, oneWay: true},
			{from: 1, to: 3, name: "", class: pkg.SERVICE, oneWay: true},
		})

	handler := NewTurnHandler(NewIntersectionHandler(g, DefaultSuffixTable()))
	via := mustFindEdge(t, g, 0, 1)
	begin, end := handler.findFork(via, NewIntersectionBuilder(g).Build(via))

	require.Equal(t, 0, begin)
	require.Equal(t, 0, end)
}

func TestGetNextIntersectionSkipsTrafficLights(t *testing.T) {
	// a chain of traffic lights on a straight street, then a real branching
	// node
	g := buildTestGraph(t,
		[]testNode{
			{-0.003, 0, false, false},
			{-0.002, 0, true, false},
			{-0.001, 0, true, false},
			{0, 0, true, false},
			{0.001, 0, false, false},
			{0.002, 0.0005, false, false},
			{0.002, -0.0005, false, false},
		},
		[]testEdge{
			{from: 0, to: 1, name: "jalan pemuda", class: pkg.SECONDARY},
			{from: 1, to: 2, name: "jalan pemuda", class: pkg.SECONDARY},
			{from: 2, to: 3, name: "jalan pemuda", class: pkg.SECONDARY},
			{from: 3, to: 4, name: "jalan pemuda", class: pkg.SECONDARY},
			{from: 4, to: 5, name: "jalan kenanga", class: pkg.RESIDENTIAL},
			{from: 4, to: 6, name: "jalan melati", class: pkg.RESIDENTIAL},
		})

	handler := NewIntersectionHandler(g, DefaultSuffixTable())
	via := mustFindEdge(t, g, 0, 1)

	result := handler.getNextIntersection(0, via)
	require.NotNil(t, result)
	require.Equal(t, datastructure.Index(4), result.Node)
	require.Len(t, result.Intersection, 3)
	require.True(t, result.Intersection.Valid())
}

func TestGetNextIntersectionDeadEnd(t *testing.T) {
	g := buildTestGraph(t,
		[]testNode{
			{-0.002, 0, false, false},
			{-0.001, 0, true, false},
			{0, 0, false, false},
		},
		[]testEdge{
			{from: 0, to: 1, name: "jalan buntu", class: pkg.RESIDENTIAL},
			{from: 1, to: 2, name: "jalan buntu", class: pkg.RESIDENTIAL},
		})

	handler := NewIntersectionHandler(g, DefaultSuffixTable())
	via := mustFindEdge(t, g, 0, 1)

	require.Nil(t, handler.getNextIntersection(0, via))
}
