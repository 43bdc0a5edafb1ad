package guidance

import (
	"github.com/lintang-b-s/maneuverx/pkg/geo"
)

// Maneuver is the narratable part of a route step: what to do at its first
// junction.
type Maneuver struct {
	Instruction   TurnInstruction
	Location      geo.Coordinate
	BearingBefore float64
	BearingAfter  float64
	ExitNumber    int
}

// RouteStep is one leg of a narrated route: travel along a single named road
// after executing a maneuver.
type RouteStep struct {
	Maneuver Maneuver
	Name     string
	Distance float64
}

// AngleToDirectionModifier buckets a coarse bearing difference into the three
// directions used for depart/arrive style maneuvers.
func AngleToDirectionModifier(bearing float64) DirectionModifier {
	if bearing < 135 {
		return DirectionModifierRight
	}
	if bearing <= 225 {
		return DirectionModifierStraight
	}
	return DirectionModifierLeft
}

// ForEachRoundabout runs fn on every complete [enter, ..., leave] sub-range
// of steps forming a roundabout passage. partial passages (enter without
// leave or vice versa) and data issues are skipped.
func ForEachRoundabout(steps []RouteStep, fn func(enterLeave []RouteStep)) {
	first := 0
	for first < len(steps) {
		enter := first
		for enter < len(steps) && !EntersRoundabout(steps[enter].Maneuver.Instruction) {
			enter++
		}
		leave := enter
		for leave < len(steps) && !LeavesRoundabout(steps[leave].Maneuver.Instruction) {
			leave++
		}
		if enter == len(steps) || leave == len(steps) {
			break
		}

		fn(steps[enter : leave+1])
		first = leave + 1
	}
}

// CountRoundaboutExit returns the ordinal of the exit taken by a complete
// roundabout passage as produced by ForEachRoundabout: every intermediate
// stay-on step passes one exit, the leaving step takes the next.
func CountRoundaboutExit(passage []RouteStep) int {
	exit := 1
	for i := 1; i < len(passage)-1; i++ {
		if passage[i].Maneuver.Instruction.Type == TurnTypeStayOnRoundabout {
			exit++
		}
	}
	return exit
}

// AnnotateRoundaboutExits rewrites a step sequence in place, stamping the
// exit number onto the maneuver entering each complete roundabout passage.
func AnnotateRoundaboutExits(steps []RouteStep) {
	ForEachRoundabout(steps, func(passage []RouteStep) {
		passage[0].Maneuver.ExitNumber = CountRoundaboutExit(passage)
	})
}
