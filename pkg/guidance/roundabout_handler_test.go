package guidance

import (
	"testing"

	"github.com/lintang-b-s/maneuverx/pkg"
	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
	"github.com/stretchr/testify/require"
)

/*
a four-node roundabout circulating counterclockwise with one entry in the
south and one exit in the north:

	      5 (exit street)
	      |
	      2
	    /   \
	   3     1
	    \   /
	      0
	      |
	      4 (entry street)

rdeg scales the circle: 0.0001 degrees puts the radius around ten meters.
*/
func buildRoundaboutGraph(t *testing.T, rdeg float64, circleName string) *datastructure.Graph {
	return buildTestGraph(t,
		[]testNode{
			{-rdeg, 0, false, false}, // 0 south
			{0, rdeg, false, false},  // 1 east
			{rdeg, 0, false, false},  // 2 north
			{0, -rdeg, false, false}, // 3 west
			{-0.001, 0, false, false},
			{0.001, 0, false, false},
		},
		[]testEdge{
			{from: 0, to: 1, name: circleName, class: pkg.TERTIARY, oneWay: true, roundabout: true},
			{from: 1, to: 2, name: circleName, class: pkg.TERTIARY, oneWay: true, roundabout: true},
			{from: 2, to: 3, name: circleName, class: pkg.TERTIARY, oneWay: true, roundabout: true},
			{from: 3, to: 0, name: circleName, class: pkg.TERTIARY, oneWay: true, roundabout: true},
			{from: 4, to: 0, name: "jalan kartini", class: pkg.RESIDENTIAL},
			{from: 2, to: 5, name: "jalan pemuda", class: pkg.RESIDENTIAL},
		})
}

func TestGetRoundaboutType(t *testing.T) {
	rh := func(g *datastructure.Graph) *RoundaboutHandler {
		return NewRoundaboutHandler(NewIntersectionHandler(g, DefaultSuffixTable()), false)
	}

	t.Run("unnamed small circle is a roundabout", func(t *testing.T) {
		g := buildRoundaboutGraph(t, 0.0001, "")
		require.Equal(t, RoundaboutTypeRoundabout, rh(g).getRoundaboutType(0))
	})

	t.Run("named wide circle is a rotary", func(t *testing.T) {
		g := buildRoundaboutGraph(t, 0.0003, "bundaran simpang lima")
		require.Equal(t, RoundaboutTypeRotary, rh(g).getRoundaboutType(0))
	})

	t.Run("plain street node is none", func(t *testing.T) {
		g := buildRoundaboutGraph(t, 0.0001, "")
		require.Equal(t, RoundaboutTypeNone, rh(g).getRoundaboutType(4))
	})
}

func TestEnterRoundabout(t *testing.T) {
	g := buildRoundaboutGraph(t, 0.0001, "")
	analysis := NewTurnAnalysis(g, DefaultSuffixTable(), false)

	via := mustFindEdge(t, g, 4, 0)
	intersection := analysis.GetTurns(4, via)

	circleRoad := intersection.FindRoadForEid(mustFindEdge(t, g, 0, 1))
	require.NotEqual(t, -1, circleRoad)
	require.Equal(t, TurnTypeEnterRoundabout, intersection[circleRoad].Instruction.Type)
	require.True(t, EntersRoundabout(intersection[circleRoad].Instruction))
}

func TestStayOnAndExitRoundabout(t *testing.T) {
	// already driving the circle, arriving at the node carrying the northern
	// exit street
	g := buildRoundaboutGraph(t, 0.0001, "")
	analysis := NewTurnAnalysis(g, DefaultSuffixTable(), false)

	via := mustFindEdge(t, g, 1, 2)
	intersection := analysis.GetTurns(1, via)
	require.True(t, intersection.Valid())

	onward := intersection.FindRoadForEid(mustFindEdge(t, g, 2, 3))
	require.Equal(t, TurnTypeStayOnRoundabout, intersection[onward].Instruction.Type)

	exit := intersection.FindRoadForEid(mustFindEdge(t, g, 2, 5))
	require.Equal(t, TurnTypeExitRoundabout, intersection[exit].Instruction.Type)
	require.Equal(t, DirectionModifierRight, intersection[exit].Instruction.DirectionModifier)
	require.True(t, LeavesRoundabout(intersection[exit].Instruction))
}

func TestRoundaboutPassThroughNodeIsSilent(t *testing.T) {
	// the eastern circle node has no exit at all, the circle road is the only
	// way on
	g := buildRoundaboutGraph(t, 0.0001, "")
	analysis := NewTurnAnalysis(g, DefaultSuffixTable(), false)

	via := mustFindEdge(t, g, 0, 1)
	intersection := analysis.GetTurns(0, via)

	onward := intersection.FindRoadForEid(mustFindEdge(t, g, 1, 2))
	require.NotEqual(t, -1, onward)
	require.True(t, intersection[onward].Instruction.IsSilent())
}

func TestEnterRotaryUsesRotaryInstructions(t *testing.T) {
	g := buildRoundaboutGraph(t, 0.0003, "bundaran simpang lima")
	analysis := NewTurnAnalysis(g, DefaultSuffixTable(), false)

	via := mustFindEdge(t, g, 4, 0)
	intersection := analysis.GetTurns(4, via)

	circleRoad := intersection.FindRoadForEid(mustFindEdge(t, g, 0, 1))
	require.Equal(t, TurnTypeEnterRotary, intersection[circleRoad].Instruction.Type)
}
