package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
	"github.com/lintang-b-s/maneuverx/pkg/http"
	"github.com/lintang-b-s/maneuverx/pkg/http/usecases"
	"github.com/lintang-b-s/maneuverx/pkg/logger"
	"github.com/lintang-b-s/maneuverx/pkg/spatialindex"
	"github.com/lintang-b-s/maneuverx/pkg/util"
	"go.uber.org/zap"
)

var (
	graphFile             = flag.String("graph", "./data/road_network.graph", "road network graph file")
	leafBoundingBoxRadius = flag.Float64("leaf_bounding_box_radius", 0.05, "leaf node (r-tree) bounding box radius in km")
	leftHandDriving       = flag.Bool("left_hand_driving", true, "traffic drives on the left side of the road")
	useRateLimit          = flag.Bool("rate_limit", false, "rate limit api requests per client ip")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		logger.Warn("no config file found, using server defaults", zap.Error(err))
	}

	graph, err := datastructure.ReadGraph(*graphFile)
	if err != nil {
		panic(err)
	}

	rtree := spatialindex.NewRtree(graph)
	rtree.Build(*leafBoundingBoxRadius, logger)

	api := http.NewServer(logger)

	guidanceService := usecases.NewGuidanceService(graph, rtree, *leftHandDriving, logger)
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx, logger, *useRateLimit, guidanceService)

	signal := http.GracefulShutdown()

	logger.Info("Maneuverx Guidance Server Stopped", zap.String("signal", signal.String()))
	cleanup()
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
