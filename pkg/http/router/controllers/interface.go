package controllers

import (
	"github.com/lintang-b-s/maneuverx/pkg/http/usecases"
)

type GuidanceService interface {
	ClassifyTurns(lat, lon, bearing float64) (*usecases.JunctionTurns, error)
	JunctionView(lat, lon, bearing float64) (*usecases.JunctionShape, error)
}
