package osmparser

import (
	"testing"

	"github.com/paulmach/osm"
)

func wayWithTags(pairs ...string) *osm.Way {
	way := &osm.Way{}
	for i := 0; i+1 < len(pairs); i += 2 {
		way.Tags = append(way.Tags, osm.Tag{Key: pairs[i], Value: pairs[i+1]})
	}
	return way
}

func TestAcceptOsmWay(t *testing.T) {
	testCases := []struct {
		name string
		way  *osm.Way
		want bool
	}{
		{"residential street", wayWithTags("highway", "residential"), true},
		{"motorway link", wayWithTags("highway", "motorway_link"), true},
		{"no highway tag", wayWithTags("building", "yes"), false},
		{"footway", wayWithTags("highway", "footway"), false},
		{"highway area", wayWithTags("highway", "residential", "area", "yes"), false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := acceptOsmWay(tt.way); got != tt.want {
				t.Errorf("acceptOsmWay = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLanes(t *testing.T) {
	testCases := []struct {
		value string
		want  uint8
	}{
		{"", 1},
		{"2", 2},
		{"3;2", 3},
		{"4|2", 4},
		{" 2 ", 2},
		{"banana", 1},
		{"0", 1},
		{"-3", 1},
		{"99", 16},
	}

	for _, tt := range testCases {
		if got := parseLanes(tt.value); got != tt.want {
			t.Errorf("parseLanes(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestParseWayExtraInfo(t *testing.T) {
	testCases := []struct {
		name string
		way  *osm.Way
		want wayExtraInfo
	}{
		{"plain two way", wayWithTags("highway", "residential"),
			wayExtraInfo{oneWay: false, forward: true}},
		{"oneway", wayWithTags("oneway", "yes"),
			wayExtraInfo{oneWay: true, forward: true}},
		{"reversed oneway", wayWithTags("oneway", "-1"),
			wayExtraInfo{oneWay: true, forward: false}},
		{"vehicle forward forbidden", wayWithTags("vehicle:forward", "no"),
			wayExtraInfo{oneWay: true, forward: false}},
		{"motor vehicle backward forbidden", wayWithTags("motor_vehicle:backward", "no"),
			wayExtraInfo{oneWay: true, forward: true}},
		{"roundabout implies oneway", wayWithTags("junction", "roundabout"),
			wayExtraInfo{oneWay: true, forward: true}},
		{"circular implies oneway", wayWithTags("junction", "circular"),
			wayExtraInfo{oneWay: true, forward: true}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseWayExtraInfo(tt.way); got != tt.want {
				t.Errorf("parseWayExtraInfo = %+v, want %+v", got, tt.want)
			}
		})
	}
}
