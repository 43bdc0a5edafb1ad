package pkg

type OsmHighwayType uint8

// enum buat osm highway buat turn classification: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	MOTORROAD      OsmHighwayType = 16
	UNKNOWN        OsmHighwayType = 17
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "unclassified":
		return UNCLASSIFIED
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "motorroad":
		return MOTORROAD
	default:
		return UNKNOWN
	}
}

func (h OsmHighwayType) String() string {
	return [...]string{"motorway", "trunk", "primary", "secondary", "tertiary", "residential",
		"service", "unclassified", "motorway_link", "trunk_link", "primary_link", "secondary_link",
		"tertiary_link", "living_street", "road", "track", "motorroad", "unknown"}[h]
}

// lower value = higher road priority. link classes sit right below the class they
// branch off from.
var highwayPriority = [...]float64{
	MOTORWAY:       0,
	MOTORWAY_LINK:  1,
	MOTORROAD:      1,
	TRUNK:          2,
	TRUNK_LINK:     3,
	PRIMARY:        4,
	PRIMARY_LINK:   5,
	SECONDARY:      6,
	SECONDARY_LINK: 7,
	TERTIARY:       8,
	TERTIARY_LINK:  9,
	RESIDENTIAL:    10,
	LIVING_STREET:  11,
	UNCLASSIFIED:   12,
	ROAD:           12,
	SERVICE:        13,
	TRACK:          14,
	UNKNOWN:        15,
}

func (h OsmHighwayType) GetPriority() float64 {
	return highwayPriority[h]
}

// service roads, tracks and the like never win an obvious-turn comparison
// against a real street.
func (h OsmHighwayType) IsLowPriorityRoadClass() bool {
	return h == SERVICE || h == TRACK || h == LIVING_STREET || h == UNKNOWN
}

func (h OsmHighwayType) IsLinkClass() bool {
	return h == MOTORWAY_LINK || h == TRUNK_LINK || h == PRIMARY_LINK ||
		h == SECONDARY_LINK || h == TERTIARY_LINK
}

const (
	DEFAULT_LANES uint8 = 1
)

const (
	DEBUG = false
)
