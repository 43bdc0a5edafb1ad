package osmparser

import (
	"strconv"
	"strings"

	"github.com/lintang-b-s/maneuverx/pkg"
	"github.com/paulmach/osm"
)

type NodeType int32

const (
	END_NODE NodeType = iota
	BETWEEN_NODE
	JUNCTION_NODE
)

// barrier types that physically block through traffic when access is denied
var acceptedBarrierType = map[string]struct{}{
	"gate":          {},
	"lift_gate":     {},
	"swing_gate":    {},
	"bollard":       {},
	"block":         {},
	"cycle_barrier": {},
	"barrier":       {},
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return false
	}
	if pkg.GetHighwayType(strings.TrimSuffix(highway, "_link")) == pkg.UNKNOWN {
		return false
	}
	if way.Tags.Find("area") == "yes" {
		return false
	}
	return true
}

func parseLanes(value string) uint8 {
	if value == "" {
		return pkg.DEFAULT_LANES
	}
	// "3;2" style values keep the first component
	if idx := strings.IndexAny(value, ";|"); idx != -1 {
		value = value[:idx]
	}
	lanes, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || lanes < 1 {
		return pkg.DEFAULT_LANES
	}
	if lanes > 16 {
		lanes = 16
	}
	return uint8(lanes)
}

type wayExtraInfo struct {
	oneWay  bool
	forward bool
}

// getReversedOneWay reports access restrictions that imply a oneway street:
// vehicle/motor_vehicle forbidden in forward or backward direction.
func getReversedOneWay(way *osm.Way) (bool, bool, bool, bool) {
	vf := way.Tags.Find("vehicle:forward") == "no"
	mvf := way.Tags.Find("motor_vehicle:forward") == "no"
	vb := way.Tags.Find("vehicle:backward") == "no"
	mvb := way.Tags.Find("motor_vehicle:backward") == "no"
	return vf, mvf, vb, mvb
}

func parseWayExtraInfo(way *osm.Way) wayExtraInfo {
	info := wayExtraInfo{forward: true}

	okvf, okmvf, okvb, okmvb := getReversedOneWay(way)
	oneway := way.Tags.Find("oneway")
	if oneway == "yes" || oneway == "-1" || okvf || okmvf || okvb || okmvb {
		info.oneWay = true
	}
	if oneway == "-1" || okvf || okmvf {
		info.forward = false
	}

	// roundabouts are oneway along their tagged direction
	junction := way.Tags.Find("junction")
	if junction == "roundabout" || junction == "circular" {
		info.oneWay = true
		info.forward = true
	}
	return info
}
