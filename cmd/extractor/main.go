package main

import (
	"flag"
	"runtime"

	"github.com/lintang-b-s/maneuverx/pkg/concurrent"
	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
	"github.com/lintang-b-s/maneuverx/pkg/guidance"
	"github.com/lintang-b-s/maneuverx/pkg/logger"
	"github.com/lintang-b-s/maneuverx/pkg/osmparser"
)

var (
	mapFile         = flag.String("map", "./data/solo_jogja.osm.pbf", "openstreetmap pbf file")
	outFile         = flag.String("out", "./data/road_network.graph", "output graph file")
	leftHandDriving = flag.Bool("left_hand_driving", true, "traffic drives on the left side of the road")
	forkMargin      = flag.Float64("fork_straight_margin", 10,
		"degrees by which the center fork road must be closer to straight than both sides")
)

type edgeRange struct {
	begin, end datastructure.Index
}

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	osmParser := osmparser.NewOsmParser()
	graph, err := osmParser.Parse(*mapFile, logger)
	if err != nil {
		panic(err)
	}

	analysis := guidance.NewTurnAnalysis(graph, guidance.DefaultSuffixTable(), *leftHandDriving)
	analysis.Handler().SetForkStraightMargin(*forkMargin)

	numWorkers := runtime.NumCPU()
	pool := concurrent.NewWorkerPool[edgeRange, map[string]int](numWorkers, numWorkers*2)

	pool.Start(func(job edgeRange) map[string]int {
		counts := make(map[string]int)
		for via := job.begin; via < job.end; via++ {
			if graph.IsReversed(via) {
				continue
			}
			from := graph.GetTail(via)
			intersection := analysis.GetTurns(from, via)
			for _, road := range intersection {
				if !road.EntryAllowed {
					continue
				}
				counts[road.Instruction.Type.String()]++
			}
		}
		return counts
	})

	// drain results while jobs are still being queued so neither channel
	// blocks the other
	total := make(map[string]int)
	collected := make(chan struct{})
	go func() {
		for counts := range pool.CollectResults() {
			for turnType, count := range counts {
				total[turnType] += count
			}
		}
		close(collected)
	}()

	numEdges := datastructure.Index(graph.NumberOfEdges())
	chunkSize := datastructure.Index(8192)
	for begin := datastructure.Index(0); begin < numEdges; begin += chunkSize {
		end := begin + chunkSize
		if end > numEdges {
			end = numEdges
		}
		pool.AddJob(edgeRange{begin: begin, end: end})
	}
	pool.Close()
	pool.Wait()
	<-collected
	for turnType, count := range total {
		logger.Sugar().Infof("turn type %q: %d", turnType, count)
	}

	if err := graph.WriteGraph(*outFile); err != nil {
		panic(err)
	}
	logger.Sugar().Infof("road network written to %s", *outFile)
}
