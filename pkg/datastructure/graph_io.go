package datastructure

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/maneuverx/pkg"
)

// WriteGraph serializes the road graph as bzip2-compressed text. vertices
// first, then the flattened outEdges, then the street-name table.
func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%d %d %d\n", len(g.vertices), len(g.outEdges), len(g.streetName))

	for vId := 0; vId < len(g.vertices); vId++ {
		v := &g.vertices[vId]
		latF := strconv.FormatFloat(v.lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(v.lon, 'f', -1, 64)

		fmt.Fprintf(w, "%d %s %s %d %d %d %d\n",
			v.firstOut, latF, lonF, v.osmId, boolToInt(v.trafficLight), boolToInt(v.barrier), v.id)
	}

	for i := range g.outEdges {
		e := &g.outEdges[i]
		distF := strconv.FormatFloat(e.dist, 'f', -1, 64)

		fmt.Fprintf(w, "%d %d %d %s %d %d %d %d %d %d\n",
			e.tail, e.head, e.nameId, distF, e.roadClass, e.lanes,
			boolToInt(e.reversed), boolToInt(e.roadClassLink),
			boolToInt(e.roundabout), boolToInt(e.circular))
	}

	for _, name := range g.streetName {
		fmt.Fprintf(w, "%s\n", name)
	}

	return w.Flush()
}

// ReadGraph loads a graph written by WriteGraph.
func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	sc := bufio.NewScanner(bz)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)

	if !sc.Scan() {
		return nil, fmt.Errorf("graph file %s: missing header", filename)
	}
	var numVertices, numEdges, numNames int
	if _, err := fmt.Sscanf(sc.Text(), "%d %d %d", &numVertices, &numEdges, &numNames); err != nil {
		return nil, fmt.Errorf("graph file %s: bad header: %w", filename, err)
	}

	vertices := make([]Vertex, numVertices)
	for i := 0; i < numVertices; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("graph file %s: truncated vertex section", filename)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != 7 {
			return nil, fmt.Errorf("graph file %s: bad vertex line %q", filename, sc.Text())
		}
		firstOut, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, err
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, err
		}
		lon, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, err
		}
		osmId, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			return nil, err
		}
		tl, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, err
		}
		barrier, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, err
		}
		id, err := strconv.ParseUint(fields[6], 10, 32)
		if err != nil {
			return nil, err
		}

		vertices[i] = Vertex{
			lat:          lat,
			lon:          lon,
			firstOut:     Index(firstOut),
			id:           Index(id),
			osmId:        osmId,
			trafficLight: tl == 1,
			barrier:      barrier == 1,
		}
	}

	outEdges := make([]OutEdge, numEdges)
	for i := 0; i < numEdges; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("graph file %s: truncated edge section", filename)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != 10 {
			return nil, fmt.Errorf("graph file %s: bad edge line %q", filename, sc.Text())
		}
		tail, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, err
		}
		head, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, err
		}
		nameId, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return nil, err
		}
		dist, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, err
		}
		roadClass, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, err
		}
		lanes, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, err
		}
		reversed, err := strconv.Atoi(fields[6])
		if err != nil {
			return nil, err
		}
		link, err := strconv.Atoi(fields[7])
		if err != nil {
			return nil, err
		}
		roundabout, err := strconv.Atoi(fields[8])
		if err != nil {
			return nil, err
		}
		circular, err := strconv.Atoi(fields[9])
		if err != nil {
			return nil, err
		}

		outEdges[i] = OutEdge{
			edgeId:        Index(i),
			tail:          Index(tail),
			head:          Index(head),
			nameId:        Index(nameId),
			dist:          dist,
			roadClass:     pkg.OsmHighwayType(roadClass),
			lanes:         uint8(lanes),
			reversed:      reversed == 1,
			roadClassLink: link == 1,
			roundabout:    roundabout == 1,
			circular:      circular == 1,
		}
	}

	streetName := make([]string, 0, numNames)
	for i := 0; i < numNames; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("graph file %s: truncated name section", filename)
		}
		streetName = append(streetName, sc.Text())
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return NewGraph(vertices, outEdges, streetName), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
