package controllers

import (
	"github.com/lintang-b-s/maneuverx/pkg/http/usecases"
)

type classifyTurnsRequest struct {
	Lat     float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon     float64 `json:"lon" validate:"required,min=-180,max=180"`
	Bearing float64 `json:"bearing" validate:"min=0,max=360"`
}

type classifiedRoadResponse struct {
	EdgeId       uint32  `json:"edge_id"`
	Bearing      float64 `json:"bearing"`
	Angle        float64 `json:"angle"`
	EntryAllowed bool    `json:"entry_allowed"`
	TurnType     string  `json:"turn_type"`
	Modifier     string  `json:"modifier"`
	StreetName   string  `json:"street_name"`
	Polyline     string  `json:"polyline"`
}

type classifyTurnsResponse struct {
	NodeLat        float64                  `json:"node_lat"`
	NodeLon        float64                  `json:"node_lon"`
	ArrivalBearing float64                  `json:"arrival_bearing"`
	Roads          []classifiedRoadResponse `json:"roads"`
}

func NewClassifyTurnsResponse(turns *usecases.JunctionTurns) classifyTurnsResponse {
	roads := make([]classifiedRoadResponse, 0, len(turns.Roads))
	for _, road := range turns.Roads {
		roads = append(roads, classifiedRoadResponse{
			EdgeId:       uint32(road.EdgeId),
			Bearing:      road.Bearing,
			Angle:        road.Angle,
			EntryAllowed: road.EntryAllowed,
			TurnType:     road.TurnType,
			Modifier:     road.Modifier,
			StreetName:   road.StreetName,
			Polyline:     road.Polyline,
		})
	}
	return classifyTurnsResponse{
		NodeLat:        turns.NodeLat,
		NodeLon:        turns.NodeLon,
		ArrivalBearing: turns.ArrivalBearing,
		Roads:          roads,
	}
}

type shapeRoadResponse struct {
	EdgeId        uint32  `json:"edge_id"`
	Bearing       float64 `json:"bearing"`
	Angle         float64 `json:"angle"`
	EntryAllowed  bool    `json:"entry_allowed"`
	SegmentLength float64 `json:"segment_length"`
	StreetName    string  `json:"street_name"`
}

type junctionViewResponse struct {
	NodeLat float64             `json:"node_lat"`
	NodeLon float64             `json:"node_lon"`
	Roads   []shapeRoadResponse `json:"roads"`
}

func NewJunctionViewResponse(shape *usecases.JunctionShape) junctionViewResponse {
	roads := make([]shapeRoadResponse, 0, len(shape.Roads))
	for _, road := range shape.Roads {
		roads = append(roads, shapeRoadResponse{
			EdgeId:        uint32(road.EdgeId),
			Bearing:       road.Bearing,
			Angle:         road.Angle,
			EntryAllowed:  road.EntryAllowed,
			SegmentLength: road.SegmentLength,
			StreetName:    road.StreetName,
		})
	}
	return junctionViewResponse{
		NodeLat: shape.NodeLat,
		NodeLon: shape.NodeLon,
		Roads:   roads,
	}
}
