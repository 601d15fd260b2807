package grid

import "slices"

// Snapshot is an opaque copy of a grid's contents.
type Snapshot struct {
	state
}

type state struct {
	capacity  int
	dims      Dimensions
	cells     [][]string
	instances []placed
}

// Snapshot captures the current contents for a later Restore.
func (g *Grid) Snapshot() Snapshot {
	return Snapshot{state: g.capture()}
}

// Restore replaces the grid contents with a snapshot. The id counter is not
// rewound, so ids issued after the snapshot are never handed out twice.
func (g *Grid) Restore(s Snapshot) {
	if s.cells == nil {
		return
	}
	g.apply(s.state)
}

func (g *Grid) capture() state {
	s := state{
		capacity:  g.capacity,
		dims:      g.dims,
		cells:     g.Cells(),
		instances: make([]placed, 0, len(g.order)),
	}
	for _, id := range g.order {
		s.instances = append(s.instances, *g.instances[id])
	}
	return s
}

func (g *Grid) apply(s state) {
	g.capacity = s.capacity
	g.dims = s.dims
	g.cells = make([][]string, len(s.cells))
	for i, row := range s.cells {
		g.cells[i] = slices.Clone(row)
	}
	clear(g.instances)
	g.order = g.order[:0]
	for _, p := range s.instances {
		g.instances[p.ID] = &p
		g.order = append(g.order, p.ID)
	}
}
