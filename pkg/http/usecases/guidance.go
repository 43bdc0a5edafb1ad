package usecases

import (
	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
	"github.com/lintang-b-s/maneuverx/pkg/geo"
	"github.com/lintang-b-s/maneuverx/pkg/guidance"
	"github.com/lintang-b-s/maneuverx/pkg/spatialindex"
	"github.com/lintang-b-s/maneuverx/pkg/util"
	"go.uber.org/zap"
)

// ClassifiedRoad is one outgoing road of a classified junction, ready for
// serialization.
type ClassifiedRoad struct {
	EdgeId       datastructure.Index
	Bearing      float64
	Angle        float64
	EntryAllowed bool
	TurnType     string
	Modifier     string
	StreetName   string
	Polyline     string
}

// JunctionTurns is the full classification result at one junction.
type JunctionTurns struct {
	NodeLat        float64
	NodeLon        float64
	ArrivalBearing float64
	Roads          []ClassifiedRoad
}

// JunctionShape is the raw geometric view of a junction before any turn
// classification.
type JunctionShape struct {
	NodeLat float64
	NodeLon float64
	Roads   []ShapeRoad
}

type ShapeRoad struct {
	EdgeId        datastructure.Index
	Bearing       float64
	Angle         float64
	EntryAllowed  bool
	SegmentLength float64
	StreetName    string
}

type GuidanceService struct {
	graph    *datastructure.Graph
	index    *spatialindex.Rtree
	analysis *guidance.TurnAnalysis
	builder  *guidance.IntersectionBuilder
	log      *zap.Logger
}

func NewGuidanceService(graph *datastructure.Graph, index *spatialindex.Rtree,
	leftHandDriving bool, log *zap.Logger) *GuidanceService {
	return &GuidanceService{
		graph:    graph,
		index:    index,
		analysis: guidance.NewTurnAnalysis(graph, guidance.DefaultSuffixTable(), leftHandDriving),
		builder:  guidance.NewIntersectionBuilder(graph),
		log:      log,
	}
}

// snapToArrivalEdge snaps the coordinate to the nearest road segment and
// picks the directed copy whose heading best matches the given bearing.
func (s *GuidanceService) snapToArrivalEdge(lat, lon, bearing float64) (datastructure.Index, error) {
	edgeId := s.index.SnapToNearestEdge(lat, lon)
	if edgeId == datastructure.InvalidIndex {
		return datastructure.InvalidIndex, util.WrapErrorf(nil, util.ErrNotFound,
			"no road segment near (%f, %f)", lat, lon)
	}

	tail, head := s.graph.GetTail(edgeId), s.graph.GetTarget(edgeId)
	tailLat, tailLon := s.graph.GetVertexCoordinates(tail)
	headLat, headLon := s.graph.GetVertexCoordinates(head)
	forwardBearing := geo.BearingTo(tailLat, tailLon, headLat, headLon)

	if geo.AngularDeviation(bearing, forwardBearing) > 90 {
		if reverse := s.graph.FindEdge(head, tail); reverse != datastructure.InvalidIndex {
			edgeId = reverse
		}
	}
	return edgeId, nil
}

// ClassifyTurns classifies every road of the junction reached when driving
// over the road nearest to (lat, lon) with the given compass bearing.
func (s *GuidanceService) ClassifyTurns(lat, lon, bearing float64) (*JunctionTurns, error) {
	via, err := s.snapToArrivalEdge(lat, lon, bearing)
	if err != nil {
		return nil, err
	}

	from := s.graph.GetTail(via)
	at := s.graph.GetTarget(via)
	atLat, atLon := s.graph.GetVertexCoordinates(at)
	fromLat, fromLon := s.graph.GetVertexCoordinates(from)

	intersection := s.analysis.GetTurns(from, via)

	roads := make([]ClassifiedRoad, 0, len(intersection))
	for _, road := range intersection {
		headLat, headLon := s.graph.GetVertexCoordinates(s.graph.GetTarget(road.Eid))
		roads = append(roads, ClassifiedRoad{
			EdgeId:       road.Eid,
			Bearing:      road.Bearing,
			Angle:        road.Angle,
			EntryAllowed: road.EntryAllowed,
			TurnType:     road.Instruction.Type.String(),
			Modifier:     road.Instruction.DirectionModifier.String(),
			StreetName:   s.graph.GetStreetName(road.Eid),
			Polyline: geo.PolylineFromCoords([]geo.Coordinate{
				geo.NewCoordinate(atLat, atLon),
				geo.NewCoordinate(headLat, headLon),
			}),
		})
	}

	return &JunctionTurns{
		NodeLat:        atLat,
		NodeLon:        atLon,
		ArrivalBearing: geo.BearingTo(fromLat, fromLon, atLat, atLon),
		Roads:          roads,
	}, nil
}

// JunctionView returns the raw intersection shape at the junction reached
// when driving over the road nearest to (lat, lon) with the given bearing.
func (s *GuidanceService) JunctionView(lat, lon, bearing float64) (*JunctionShape, error) {
	via, err := s.snapToArrivalEdge(lat, lon, bearing)
	if err != nil {
		return nil, err
	}

	at := s.graph.GetTarget(via)
	atLat, atLon := s.graph.GetVertexCoordinates(at)

	view := s.builder.BuildView(via)
	roads := make([]ShapeRoad, 0, len(view))
	for _, road := range view {
		roads = append(roads, ShapeRoad{
			EdgeId:        road.Eid,
			Bearing:       road.Bearing,
			Angle:         road.Angle,
			EntryAllowed:  road.EntryAllowed,
			SegmentLength: road.SegmentLength,
			StreetName:    s.graph.GetStreetName(road.Eid),
		})
	}

	return &JunctionShape{
		NodeLat: atLat,
		NodeLon: atLon,
		Roads:   roads,
	}, nil
}
