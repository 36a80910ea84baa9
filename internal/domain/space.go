package domain

import (
	"fmt"
)

// Space is the mutable container of cells and edges over an
// N-dimensional coordinate system. The dimension list is fixed at
// construction and defines the rank every cell must have.
//
// Cell insertion order is retained: it defines the stable indexing used
// when the space is projected into a simulation state. Edges keep
// insertion order as well and duplicates are allowed.
//
// The space is not internally synchronized. It is expected to be fully
// constructed before it is queried; callers interleaving writers and
// readers must serialize those phases themselves.
type Space struct {
	dimensions []DimensionDescriptor
	cells      map[string]*Cell
	order      []string
	edges      []Edge
}

// NewSpace creates a space over the given dimensions.
func NewSpace(dimensions []DimensionDescriptor) (*Space, error) {
	if len(dimensions) == 0 {
		return nil, NewDomainError(
			ErrCodeInvalidInput,
			"space requires at least one dimension",
			nil,
		)
	}
	seen := make(map[int]bool, len(dimensions))
	for _, d := range dimensions {
		if seen[d.Index] {
			return nil, NewDomainError(
				ErrCodeInvalidInput,
				fmt.Sprintf("duplicate dimension index %d", d.Index),
				nil,
			)
		}
		seen[d.Index] = true
	}
	dims := make([]DimensionDescriptor, len(dimensions))
	copy(dims, dimensions)
	return &Space{
		dimensions: dims,
		cells:      make(map[string]*Cell),
	}, nil
}

// Rank returns the number of dimensions of the space.
func (s *Space) Rank() int {
	return len(s.dimensions)
}

// Dimensions returns a copy of the dimension descriptors.
func (s *Space) Dimensions() []DimensionDescriptor {
	out := make([]DimensionDescriptor, len(s.dimensions))
	copy(out, s.dimensions)
	return out
}

// AddCell inserts a cell at the given position, replacing any existing
// cell there. A replaced position keeps its original order slot.
func (s *Space) AddCell(position Coordinate, nodeID string) (*Cell, error) {
	if position.Rank() != s.Rank() {
		return nil, NewDomainError(
			ErrCodeRankMismatch,
			fmt.Sprintf("cell rank %d does not match space rank %d", position.Rank(), s.Rank()),
			nil,
		)
	}
	cell := NewCell(position, nodeID)
	key := position.Key()
	if _, exists := s.cells[key]; !exists {
		s.order = append(s.order, key)
	}
	s.cells[key] = cell
	return cell, nil
}

// Connect records a directed edge with the default weight. Neither
// endpoint is required to hold a cell; dangling edges are ignored when
// the space is projected into a simulation state.
func (s *Space) Connect(source, target Coordinate, dimension int, label string) Edge {
	e := NewEdge(source, target, dimension, label)
	s.edges = append(s.edges, e)
	return e
}

// AddEdge records a pre-built edge, preserving insertion order.
func (s *Space) AddEdge(e Edge) {
	s.edges = append(s.edges, e)
}

// GetCell returns the cell at position, if any.
func (s *Space) GetCell(position Coordinate) (*Cell, bool) {
	c, ok := s.cells[position.Key()]
	return c, ok
}

// Cells returns the cells in insertion order.
func (s *Space) Cells() []*Cell {
	out := make([]*Cell, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.cells[key])
	}
	return out
}

// CellCount returns the number of cells in the space.
func (s *Space) CellCount() int {
	return len(s.cells)
}

// Edges returns all edges in insertion order.
func (s *Space) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// EdgeCount returns the number of recorded edges.
func (s *Space) EdgeCount() int {
	return len(s.edges)
}

// EdgesFrom returns the edges whose source equals position, in
// insertion order.
func (s *Space) EdgesFrom(position Coordinate) []Edge {
	var out []Edge
	for _, e := range s.edges {
		if e.Source().Equal(position) {
			out = append(out, e)
		}
	}
	return out
}
