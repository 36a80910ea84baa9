package domain

// Cell is a vertex in the space, potentially occupied by a processing
// stage. Its position is fixed for life; the state is caller-driven and
// transitions are unordered. Cells are owned by the Space that created
// them.
type Cell struct {
	position Coordinate
	nodeID   string
	state    CellState
}

// NewCell creates a cell at the given position in the idle state.
func NewCell(position Coordinate, nodeID string) *Cell {
	return &Cell{
		position: position,
		nodeID:   nodeID,
		state:    CellStateIdle,
	}
}

// Position returns the fixed position of the cell.
func (c *Cell) Position() Coordinate {
	return c.position
}

// NodeID returns the identifier of the node occupying the cell.
func (c *Cell) NodeID() string {
	return c.nodeID
}

// State returns the current cell state.
func (c *Cell) State() CellState {
	return c.state
}

// SetState transitions the cell to the given state.
func (c *Cell) SetState(state CellState) error {
	if !state.IsValid() {
		return NewDomainError(
			ErrCodeInvalidState,
			"unknown cell state: "+state.String(),
			nil,
		)
	}
	c.state = state
	return nil
}
