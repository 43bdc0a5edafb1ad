package guidance

import (
	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
)

// IntersectionProcessor is one classification strategy. CanProcess declares
// whether the strategy applies at the given junction; Process assigns the
// instructions. strategies are tried in registration order and the first
// match wins.
type IntersectionProcessor interface {
	CanProcess(node, via datastructure.Index, intersection Intersection) bool
	Process(node, via datastructure.Index, intersection Intersection) Intersection
}

// TurnAnalysis is the entry point of the classification engine. it builds the
// intersection reached over an edge and runs it through the strategy chain.
type TurnAnalysis struct {
	graph      Graph
	builder    *IntersectionBuilder
	processors []IntersectionProcessor
}

// NewTurnAnalysis wires the default strategy chain: roundabouts first, the
// generic turn handler as catch-all.
func NewTurnAnalysis(graph Graph, suffixTable *SuffixTable, leftHandDriving bool) *TurnAnalysis {
	base := NewIntersectionHandler(graph, suffixTable)
	return &TurnAnalysis{
		graph:   graph,
		builder: NewIntersectionBuilder(graph),
		processors: []IntersectionProcessor{
			NewRoundaboutHandler(base, leftHandDriving),
			NewTurnHandler(base),
		},
	}
}

// Handler exposes the intersection handler shared by the strategy chain for
// callers that need the lookahead helpers.
func (ta *TurnAnalysis) Handler() *IntersectionHandler {
	return ta.processors[len(ta.processors)-1].(*TurnHandler).IntersectionHandler
}

// GetTurns classifies every road of the junction reached over `via` when
// arriving from `from`. the returned intersection is angle sorted, entry
// permissions honored, instructions assigned.
func (ta *TurnAnalysis) GetTurns(from, via datastructure.Index) Intersection {
	intersection := ta.builder.Build(via)
	return ta.process(from, via, intersection)
}

func (ta *TurnAnalysis) process(from, via datastructure.Index, intersection Intersection) Intersection {
	for _, processor := range ta.processors {
		if processor.CanProcess(from, via, intersection) {
			return processor.Process(from, via, intersection)
		}
	}
	// the turn handler accepts everything, so this is unreachable for a
	// well-formed chain
	return intersection
}
