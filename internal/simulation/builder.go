package simulation

import (
	"sort"

	"github.com/PMeeske/hypergrid/internal/domain"
)

// ActivationFunc provides the initial activation for a cell when a
// space is projected into a simulation state.
type ActivationFunc func(*domain.Cell) float64

// ZeroActivation is the default initializer: every cell starts at 0.
func ZeroActivation(*domain.Cell) float64 {
	return 0.0
}

type edgeTriple struct {
	target int32
	source int32
	weight float64
}

// BuildState projects a space into a CSR simulation state.
//
// Cells are indexed in space insertion order, which keeps the build
// deterministic. Edges whose endpoints do not both resolve to a cell
// are skipped silently.
func BuildState(space *domain.Space, init ActivationFunc) (*State, error) {
	if init == nil {
		init = ZeroActivation
	}

	cells := space.Cells()
	n := len(cells)
	index := make(map[string]int32, n)
	activations := make([]float64, n)
	for i, cell := range cells {
		index[cell.Position().Key()] = int32(i)
		activations[i] = init(cell)
	}

	var triples []edgeTriple
	for _, e := range space.Edges() {
		srcIdx, ok := index[e.Source().Key()]
		if !ok {
			continue
		}
		tgtIdx, ok := index[e.Target().Key()]
		if !ok {
			continue
		}
		triples = append(triples, edgeTriple{target: tgtIdx, source: srcIdx, weight: e.Weight()})
	}

	sort.SliceStable(triples, func(i, j int) bool {
		return triples[i].target < triples[j].target
	})

	m := len(triples)
	rowPtr := make([]int32, n+1)
	sources := make([]int32, m)
	weights := make([]float64, m)
	for i, tr := range triples {
		rowPtr[tr.target+1]++
		sources[i] = tr.source
		weights[i] = tr.weight
	}
	for i := 0; i < n; i++ {
		rowPtr[i+1] += rowPtr[i]
	}

	return NewState(activations, rowPtr, sources, weights)
}
