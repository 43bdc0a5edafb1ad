package guidance

import (
	"github.com/lintang-b-s/maneuverx/pkg/datastructure"
)

// GraphWalker advances through the node-based graph one edge at a time. used
// for looking past nodes that carry no routing decision (traffic signals,
// barriers) when classifying a turn.
type GraphWalker struct {
	graph Graph
}

func NewGraphWalker(graph Graph) *GraphWalker {
	return &GraphWalker{graph: graph}
}

// Advance performs a single traversal step: from node `at` along edge `via`
// to the head of via. returns the reached node.
func (gw *GraphWalker) Advance(via datastructure.Index) datastructure.Index {
	return gw.graph.GetTarget(via)
}

// SelectOnwardEdge picks the single edge continuing past an artificial node
// reached via `via`: the one outgoing, enterable road that does not turn back
// onto the arrival edge. InvalidIndex when no such road exists (dead end) or
// when the node offers a genuine decision (more than one way on).
func (gw *GraphWalker) SelectOnwardEdge(node, via datastructure.Index) datastructure.Index {
	from := gw.graph.GetTail(via)

	onward := datastructure.InvalidIndex
	count := 0
	gw.graph.ForOutEdgesOf(node, func(e *datastructure.OutEdge, id datastructure.Index) {
		if e.IsReversed() {
			return
		}
		if e.GetHead() == from {
			// turning back is not continuing
			return
		}
		onward = id
		count++
	})

	if count != 1 {
		return datastructure.InvalidIndex
	}
	return onward
}

// IsArtificialNode reports whether the node exists only to carry map
// attributes (signal, barrier) on an otherwise undivided road: it offers no
// branching beyond going on or turning back.
func (gw *GraphWalker) IsArtificialNode(node, via datastructure.Index) bool {
	if !gw.graph.IsTrafficLight(node) && !gw.graph.IsBarrier(node) {
		return false
	}
	return gw.SelectOnwardEdge(node, via) != datastructure.InvalidIndex
}
