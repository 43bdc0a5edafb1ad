package osmparser

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/lintang-b-s/maneuverx/pkg"
	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

type NodeCoord struct {
	lat float64
	lon float64
}

func NewNodeCoord(lat, lon float64) NodeCoord {
	return NodeCoord{lat, lon}
}

type OsmParser struct {
	wayNodeMap      map[int64]NodeType
	acceptedNodeMap map[int64]NodeCoord
	barrierNodes    map[int64]bool
	trafficSignals  map[int64]bool
	nodeIDMap       map[int64]datastructure.Index
	nameIdMap       map[string]datastructure.Index
	streetNames     []string
}

func NewOsmParser() *OsmParser {
	return &OsmParser{
		wayNodeMap:      make(map[int64]NodeType),
		acceptedNodeMap: make(map[int64]NodeCoord),
		barrierNodes:    make(map[int64]bool),
		trafficSignals:  make(map[int64]bool),
		nodeIDMap:       make(map[int64]datastructure.Index),
		nameIdMap:       make(map[string]datastructure.Index),
		streetNames:     make([]string, 0),
	}
}

func (p *OsmParser) getNameId(name string) datastructure.Index {
	if name == "" {
		return datastructure.InvalidNameId
	}
	if id, ok := p.nameIdMap[name]; ok {
		return id
	}
	id := datastructure.Index(len(p.streetNames))
	p.nameIdMap[name] = id
	p.streetNames = append(p.streetNames, name)
	return id
}

// Parse reads an openstreetmap pbf extract and builds the node-based road
// graph. two sequential scans: the first marks the nodes used by accepted
// highway ways, the second collects node coordinates/attributes and emits the
// directed edges.
func (p *OsmParser) Parse(mapFile string, logger *zap.Logger) (*datastructure.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, 0)
	// must not be parallel
	countWays := 0
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}
		way := o.(*osm.Way)
		if len(way.Nodes) < 2 || !acceptOsmWay(way) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		for i, node := range way.Nodes {
			if _, ok := p.wayNodeMap[int64(node.ID)]; !ok {
				if i == 0 || i == len(way.Nodes)-1 {
					p.wayNodeMap[int64(node.ID)] = END_NODE
				} else {
					p.wayNodeMap[int64(node.ID)] = BETWEEN_NODE
				}
			} else {
				p.wayNodeMap[int64(node.ID)] = JUNCTION_NODE
			}
		}
	}
	scanner.Close()

	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	scanner = osmpbf.New(context.Background(), f, 0)
	defer scanner.Close()

	scannedEdges := make([]Edge, 0, countWays*2)
	countWays = 0
	countNodes := 0
	for scanner.Scan() {
		o := scanner.Object()

		switch o.ObjectID().Type() {
		case osm.TypeWay:
			way := o.(*osm.Way)
			if len(way.Nodes) < 2 || !acceptOsmWay(way) {
				continue
			}
			if (countWays+1)%100000 == 0 {
				logger.Sugar().Infof("processing openstreetmap ways: %d...", countWays+1)
			}
			countWays++

			p.processWay(way, &scannedEdges)
		case osm.TypeNode:
			if (countNodes+1)%500000 == 0 {
				logger.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes+1)
			}
			countNodes++
			node := o.(*osm.Node)

			if _, ok := p.wayNodeMap[int64(node.ID)]; !ok {
				continue
			}
			p.acceptedNodeMap[int64(node.ID)] = NodeCoord{
				lat: node.Lat,
				lon: node.Lon,
			}

			barrierType := node.Tags.Find("barrier")
			if _, ok := acceptedBarrierType[barrierType]; ok && node.Tags.Find("access") == "no" {
				p.barrierNodes[int64(node.ID)] = true
			}
			if node.Tags.Find("highway") == "traffic_signals" {
				p.trafficSignals[int64(node.ID)] = true
			}
		}
	}

	graph := p.BuildGraph(scannedEdges, logger)

	logger.Sugar().Infof("number of vertices: %v", graph.NumberOfVertices())
	logger.Sugar().Infof("number of edges: %v", graph.NumberOfEdges())

	return graph, nil
}

// processWay turns every consecutive node pair of the way into a forward and
// a backward edge. against-oneway copies stay in the graph with the reversed
// flag set so intersections keep their full shape.
func (p *OsmParser) processWay(way *osm.Way, scannedEdges *[]Edge) {
	info := parseWayExtraInfo(way)

	highway := way.Tags.Find("highway")
	link := strings.HasSuffix(highway, "_link")
	roadClass := pkg.GetHighwayType(strings.TrimSuffix(highway, "_link"))

	junction := way.Tags.Find("junction")
	roundabout := junction == "roundabout"
	circular := junction == "circular"

	nameId := p.getNameId(way.Tags.Find("name"))
	lanes := parseLanes(way.Tags.Find("lanes"))

	for i := 0; i+1 < len(way.Nodes); i++ {
		from := int64(way.Nodes[i].ID)
		to := int64(way.Nodes[i+1].ID)
		if !info.forward {
			from, to = to, from
		}

		*scannedEdges = append(*scannedEdges, Edge{
			fromOsmId:  from,
			toOsmId:    to,
			nameId:     nameId,
			roadClass:  roadClass,
			link:       link,
			lanes:      lanes,
			oneWay:     info.oneWay,
			roundabout: roundabout,
			circular:   circular,
		})
	}
}
