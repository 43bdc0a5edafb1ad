package guidance

import (
	"testing"

	"github.com/lintang-b-s/maneuverx/pkg"
	"github.com/stretchr/testify/require"
)

func TestThroughStreetContinuesSilently(t *testing.T) {
	// a straight two-way street with one side road. driving along the street
	// is no decision worth narrating.
	g := buildTestGraph(t,
		[]testNode{
			{-0.001, 0, false, false}, // south, where we come from
			{0, 0, false, false},      // the junction
			{0.001, 0, false, false},  // north, street goes on
			{0, 0.001, false, false},  // east side road
		},
		[]testEdge{
			{from: 0, to: 1, name: "jalan pemuda", class: pkg.RESIDENTIAL},
			{from: 1, to: 2, name: "jalan pemuda", class: pkg.RESIDENTIAL},
			{from: 1, to: 3, name: "jalan slamet riyadi", class: pkg.RESIDENTIAL},
		})

	analysis := NewTurnAnalysis(g, DefaultSuffixTable(), false)
	via := mustFindEdge(t, g, 0, 1)
	intersection := analysis.GetTurns(0, via)

	require.True(t, intersection.Valid())
	require.Len(t, intersection, 3)

	onward := intersection.FindRoadForEid(mustFindEdge(t, g, 1, 2))
	require.NotEqual(t, -1, onward)
	require.Equal(t, TurnTypeContinue, intersection[onward].Instruction.Type)
	require.Equal(t, DirectionModifierStraight, intersection[onward].Instruction.DirectionModifier)

	sideRoad := intersection.FindRoadForEid(mustFindEdge(t, g, 1, 3))
	require.NotEqual(t, -1, sideRoad)
	require.Equal(t, TurnTypeTurn, intersection[sideRoad].Instruction.Type)
	require.Equal(t, DirectionModifierRight, intersection[sideRoad].Instruction.DirectionModifier)

	// the u-turn back home needs no instruction while other options exist
	require.Equal(t, TurnTypeInvalid, intersection[0].Instruction.Type)
}

func TestNameChangeOnStraightRoad(t *testing.T) {
	// the street continues straight but under a new name
	g := buildTestGraph(t,
		[]testNode{
			{-0.001, 0, false, false},
			{0, 0, false, false},
			{0.001, 0, false, false},
			{0, 0.001, false, false},
		},
		[]testEdge{
			{from: 0, to: 1, name: "jalan pemuda", class: pkg.RESIDENTIAL},
			{from: 1, to: 2, name: "jalan diponegoro", class: pkg.RESIDENTIAL},
			{from: 1, to: 3, name: "gang mawar", class: pkg.RESIDENTIAL},
		})

	analysis := NewTurnAnalysis(g, DefaultSuffixTable(), false)
	via := mustFindEdge(t, g, 0, 1)
	intersection := analysis.GetTurns(0, via)

	onward := intersection.FindRoadForEid(mustFindEdge(t, g, 1, 2))
	require.Equal(t, TurnTypeNewName, intersection[onward].Instruction.Type)
	require.Equal(t, DirectionModifierStraight, intersection[onward].Instruction.DirectionModifier)
}

func TestDeadEndTurnsBack(t *testing.T) {
	g := buildTestGraph(t,
		[]testNode{
			{-0.001, 0, false, false},
			{0, 0, false, false},
		},
		[]testEdge{
			{from: 0, to: 1, name: "jalan buntu", class: pkg.RESIDENTIAL},
		})

	analysis := NewTurnAnalysis(g, DefaultSuffixTable(), false)
	via := mustFindEdge(t, g, 0, 1)
	intersection := analysis.GetTurns(0, via)

	require.Len(t, intersection, 1)
	require.Equal(t, TurnTypeTurn, intersection[0].Instruction.Type)
	require.Equal(t, DirectionModifierUTurn, intersection[0].Instruction.DirectionModifier)
}

func TestObviousTurnIsTotal(t *testing.T) {
	// whatever the junction looks like, findObviousTurn answers with an index
	// inside the intersection
	layouts := [][]testEdge{
		{
			{from: 0, to: 1, name: "a", class: pkg.RESIDENTIAL},
		},
		{
			{from: 0, to: 1, name: "a", class: pkg.RESIDENTIAL},
			{from: 1, to: 2, name: "a", class: pkg.RESIDENTIAL},
		},
		{
			{from: 0, to: 1, name: "a", class: pkg.PRIMARY},
			{from: 1, to: 2, name: "b", class: pkg.SERVICE},
			{from: 1, to: 3, name: "c", class: pkg.SERVICE},
		},
		{
			{from: 0, to: 1, name: "a", class: pkg.RESIDENTIAL},
			{from: 1, to: 2, name: "b", class: pkg.RESIDENTIAL, oneWay: true},
			{from: 1, to: 3, name: "c", class: pkg.RESIDENTIAL},
		},
	}
	nodes := []testNode{
		{-0.001, 0, false, false},
		{0, 0, false, false},
		{0.001, 0.0002, false, false},
		{0.001, -0.0002, false, false},
	}

	for _, edges := range layouts {
		g := buildTestGraph(t, nodes, edges)
		handler := NewIntersectionHandler(g, DefaultSuffixTable())
		builder := NewIntersectionBuilder(g)

		via := mustFindEdge(t, g, 0, 1)
		intersection := builder.Build(via)

		obvious := handler.findObviousTurn(via, intersection)
		require.GreaterOrEqual(t, obvious, 0)
		require.Less(t, obvious, len(intersection))
	}
}

func TestObviousByRoadClassBeatsSameAngleServiceRoad(t *testing.T) {
	// continuing on the primary road is obvious even though a service road
	// leaves at a comparable angle
	g := buildTestGraph(t,
		[]testNode{
			{-0.001, 0, false, false},
			{0, 0, false, false},
			{0.001, 0.00005, false, false},  // primary, nearly straight
			{0.001, -0.00021, false, false}, // service, also close to straight
		},
		[]testEdge{
			{from: 0, to: 1, name: "jalan sudirman", class: pkg.PRIMARY},
			{from: 1, to: 2, name: "jalan sudirman", class: pkg.PRIMARY},
			{from: 1, to: 3, name: "", class: pkg.SERVICE},
		})

	analysis := NewTurnAnalysis(g, DefaultSuffixTable(), false)
	via := mustFindEdge(t, g, 0, 1)
	intersection := analysis.GetTurns(0, via)

	onward := intersection.FindRoadForEid(mustFindEdge(t, g, 1, 2))
	require.True(t, intersection[onward].Instruction.IsSilent() ||
		intersection[onward].Instruction.Type == TurnTypeContinue)
}

func TestMergeFromRamp(t *testing.T) {
	g := buildTestGraph(t,
		[]testNode{
			{-0.001, 0, false, false},
			{0, 0, false, false},
			{0.001, 0, false, false},
		},
		[]testEdge{
			{from: 0, to: 1, name: "", class: pkg.MOTORWAY, link: true, oneWay: true},
			{from: 1, to: 2, name: "jalan tol", class: pkg.MOTORWAY, oneWay: true},
		})

	analysis := NewTurnAnalysis(g, DefaultSuffixTable(), false)
	via := mustFindEdge(t, g, 0, 1)
	intersection := analysis.GetTurns(0, via)

	onward := intersection.FindRoadForEid(mustFindEdge(t, g, 1, 2))
	require.Equal(t, TurnTypeMerge, intersection[onward].Instruction.Type)
}

func TestUTurnOnlyOption(t *testing.T) {
	// arriving over a two-way road at a junction whose other roads all forbid
	// entry: turning back is the narrated move
	g := buildTestGraph(t,
		[]testNode{
			{-0.001, 0, false, false},
			{0, 0, false, false},
			{0.001, 0, false, false},
		},
		[]testEdge{
			{from: 0, to: 1, name: "a", class: pkg.RESIDENTIAL},
			// oneway towards the junction, cannot be entered
			{from: 2, to: 1, name: "b", class: pkg.RESIDENTIAL, oneWay: true},
		})

	analysis := NewTurnAnalysis(g, DefaultSuffixTable(), false)
	via := mustFindEdge(t, g, 0, 1)
	intersection := analysis.GetTurns(0, via)

	require.Equal(t, TurnTypeTurn, intersection[0].Instruction.Type)
	require.Equal(t, DirectionModifierUTurn, intersection[0].Instruction.DirectionModifier)
}
