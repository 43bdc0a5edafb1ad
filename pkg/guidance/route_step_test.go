package guidance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func step(turnType TurnType) RouteStep {
	return RouteStep{Maneuver: Maneuver{Instruction: TurnInstruction{turnType, DirectionModifierStraight}}}
}

func TestForEachRoundabout(t *testing.T) {
	steps := []RouteStep{
		step(TurnTypeTurn),
		step(TurnTypeEnterRoundabout),
		step(TurnTypeStayOnRoundabout),
		step(TurnTypeStayOnRoundabout),
		step(TurnTypeExitRoundabout),
		step(TurnTypeNewName),
		step(TurnTypeEnterRotary),
		step(TurnTypeExitRotary),
		step(TurnTypeTurn),
	}

	var passages [][]RouteStep
	ForEachRoundabout(steps, func(passage []RouteStep) {
		passages = append(passages, passage)
	})

	require.Len(t, passages, 2)
	require.Len(t, passages[0], 4)
	require.Len(t, passages[1], 2)
	require.Equal(t, TurnTypeEnterRoundabout, passages[0][0].Maneuver.Instruction.Type)
	require.Equal(t, TurnTypeExitRotary, passages[1][1].Maneuver.Instruction.Type)
}

func TestForEachRoundaboutSkipsPartialPassage(t *testing.T) {
	// a route ending while still on the roundabout has no complete passage
	steps := []RouteStep{
		step(TurnTypeTurn),
		step(TurnTypeEnterRoundabout),
		step(TurnTypeStayOnRoundabout),
	}

	calls := 0
	ForEachRoundabout(steps, func([]RouteStep) { calls++ })
	require.Equal(t, 0, calls)
}

func TestCountRoundaboutExit(t *testing.T) {
	firstExit := []RouteStep{step(TurnTypeEnterRoundabout), step(TurnTypeExitRoundabout)}
	require.Equal(t, 1, CountRoundaboutExit(firstExit))

	thirdExit := []RouteStep{
		step(TurnTypeEnterRoundabout),
		step(TurnTypeStayOnRoundabout),
		step(TurnTypeStayOnRoundabout),
		step(TurnTypeExitRoundabout),
	}
	require.Equal(t, 3, CountRoundaboutExit(thirdExit))
}

func TestAnnotateRoundaboutExits(t *testing.T) {
	steps := []RouteStep{
		step(TurnTypeTurn),
		step(TurnTypeEnterRoundabout),
		step(TurnTypeStayOnRoundabout),
		step(TurnTypeExitRoundabout),
		step(TurnTypeTurn),
	}

	AnnotateRoundaboutExits(steps)
	require.Equal(t, 2, steps[1].Maneuver.ExitNumber)
	require.Equal(t, 0, steps[0].Maneuver.ExitNumber)
}

func TestAngleToDirectionModifier(t *testing.T) {
	testCases := []struct {
		bearing float64
		want    DirectionModifier
	}{
		{0, DirectionModifierRight},
		{90, DirectionModifierRight},
		{180, DirectionModifierStraight},
		{225, DirectionModifierStraight},
		{300, DirectionModifierLeft},
	}
	for _, tt := range testCases {
		if got := AngleToDirectionModifier(tt.bearing); got != tt.want {
			t.Errorf("AngleToDirectionModifier(%f) = %v, want %v", tt.bearing, got, tt.want)
		}
	}
}
