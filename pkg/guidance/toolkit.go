package guidance

import (
	"github.com/lintang-b-s/maneuverx/pkg"
	"github.com/lintang-b-s/maneuverx/pkg/geo"
)

const (
	// relative turn angles, [0,360). 0/360 = turn back onto the arrival edge,
	// 180 = straight through the junction.
	uturnAngle    = 0.0
	straightAngle = 180.0

	// deviations below this are not perceivable as a turn at all
	maximalAllowedNoTurnDeviation = 3.0

	// angular band within which two candidates compete for the same perceived
	// direction
	narrowTurnAngle = 40.0

	// candidates this close to each other are indistinguishable by angle alone
	fuzzyAngleDifference = 15.0

	// the obvious candidate has to beat the runner-up by this deviation ratio
	distinctionRatio = 2.0

	// a road needs this much priority advantage before road class alone makes
	// it the obvious continuation. priorities grow downward (motorway = 0,
	// service = 13), so the ratio clause only fires for motorway/trunk grade
	// continuations over much smaller roads; everything below trunk relies on
	// the low-priority-class clause instead
	priorityDistinctionFactor = 4.25

	// default margin by which a center fork road must be closer to straight
	// than both sides to be called fork-straight (tunable on the handler)
	defaultForkStraightMargin = 10.0

	// roundabouts larger than this radius read as named rotaries
	maxRoundaboutRadiusMeter = 15.0

	// roundabout-as-intersection only below this radius
	maxRoundaboutIntersectionRadiusMeter = 5.0
)

// getTurnDirection maps a relative turn angle onto the modifier buckets.
// independent of the turn kind chosen for the candidate.
func getTurnDirection(angle float64) DirectionModifier {
	if angle > 0 && angle < 60 {
		return DirectionModifierSharpRight
	}
	if angle >= 60 && angle < 140 {
		return DirectionModifierRight
	}
	if angle >= 140 && angle < 160 {
		return DirectionModifierSlightRight
	}
	if angle >= 160 && angle <= 200 {
		return DirectionModifierStraight
	}
	if angle > 200 && angle <= 220 {
		return DirectionModifierSlightLeft
	}
	if angle > 220 && angle <= 300 {
		return DirectionModifierLeft
	}
	if angle > 300 && angle < 360 {
		return DirectionModifierSharpLeft
	}
	return DirectionModifierUTurn
}

func angularDeviation(angle, from float64) float64 {
	return geo.AngularDeviation(angle, from)
}

// obviousByRoadClass decides whether the obvious candidate wins by road class
// alone against the compare candidate, given the class we arrived on.
func obviousByRoadClass(inClass, obviousCandidate, compareCandidate pkg.OsmHighwayType) bool {
	// lower numbers are of higher priority
	hasHighPriority := priorityDistinctionFactor*obviousCandidate.GetPriority() <
		compareCandidate.GetPriority()

	continuesOnSameClass := inClass == obviousCandidate
	return (hasHighPriority && continuesOnSameClass) ||
		(!obviousCandidate.IsLowPriorityRoadClass() &&
			!inClass.IsLowPriorityRoadClass() &&
			compareCandidate.IsLowPriorityRoadClass())
}

// isUTurnAngle treats float fuzz around 0/360 as the exact turn-back angle.
func isUTurnAngle(angle float64) bool {
	return angularDeviation(angle, uturnAngle) < 1e-9
}
