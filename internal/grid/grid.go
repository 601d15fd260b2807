package grid

import (
	"fmt"
	"slices"

	"github.com/eugenenazirov/summit-pack/internal/catalog"
	"go.uber.org/zap"
)

// ItemSource resolves catalog entries by id.
type ItemSource interface {
	Item(id string) (catalog.Item, bool)
}

// Instance is one placed copy of a catalog item. X and Y are the top-left cell.
type Instance struct {
	ID      string `json:"id"`
	ItemID  string `json:"itemId"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Rotated bool   `json:"rotated"`
	Pressed bool   `json:"pressed"`
}

// Placement is an instance together with its effective footprint and weight.
type Placement struct {
	Instance
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Weight float64 `json:"weight"`
}

// Bottom returns the row just below the placement.
func (p Placement) Bottom() int {
	return p.Y + p.Height
}

type placed struct {
	Instance
	item catalog.Item
}

type rect struct {
	x, y, w, h int
}

// Grid is the occupancy matrix plus the instances placed on it.
type Grid struct {
	items  ItemSource
	logger *zap.Logger

	capacity  int
	dims      Dimensions
	cells     [][]string
	instances map[string]*placed
	order     []string
	next      int
}

// Option customises a Grid.
type Option func(*Grid)

// WithLogger sets the logger used for rejected operations.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Grid) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithCapacity sets the initial capacity.
func WithCapacity(capacity int) Option {
	return func(g *Grid) {
		g.capacity = capacity
	}
}

// New creates an empty grid backed by items.
func New(items ItemSource, opts ...Option) (*Grid, error) {
	g := &Grid{
		items:     items,
		logger:    zap.NewNop(),
		capacity:  DefaultCapacity,
		instances: make(map[string]*placed),
	}
	for _, opt := range opts {
		opt(g)
	}

	dims, err := DimensionsFor(g.capacity)
	if err != nil {
		return nil, err
	}
	g.dims = dims
	g.cells = newCells(dims)
	return g, nil
}

// Capacity returns the current backpack capacity.
func (g *Grid) Capacity() int { return g.capacity }

// Dimensions returns the current grid size.
func (g *Grid) Dimensions() Dimensions { return g.dims }

// SetCapacity resizes the grid and removes every instance. An unsupported
// capacity leaves the grid untouched.
func (g *Grid) SetCapacity(capacity int) error {
	dims, err := DimensionsFor(capacity)
	if err != nil {
		g.logger.Debug("capacity rejected", zap.Int("capacity", capacity))
		return err
	}
	g.capacity = capacity
	g.dims = dims
	g.Reset()
	return nil
}

// Reset empties the grid. Instance ids issued earlier are never reused.
func (g *Grid) Reset() {
	g.cells = newCells(g.dims)
	clear(g.instances)
	g.order = g.order[:0]
}

// Place puts a fresh, unrotated and unpressed instance of itemID with its
// top-left corner at (x, y) and returns the new instance id.
func (g *Grid) Place(itemID string, x, y int) (string, error) {
	item, ok := g.items.Item(itemID)
	if !ok {
		g.logger.Warn("place: unknown item", zap.String("item_id", itemID))
		return "", ErrUnknownItem
	}

	w, h := footprint(item, false, false)
	target := rect{x: x, y: y, w: w, h: h}
	if err := g.check(target); err != nil {
		g.logger.Debug("place rejected",
			zap.String("item_id", itemID), zap.Int("x", x), zap.Int("y", y), zap.Error(err))
		return "", err
	}

	g.next++
	id := fmt.Sprintf("%s_%d", itemID, g.next)
	g.instances[id] = &placed{
		Instance: Instance{ID: id, ItemID: itemID, X: x, Y: y},
		item:     item,
	}
	g.order = append(g.order, id)
	g.fill(target, id)
	return id, nil
}

// PlaceAtDrop places itemID so that the dropped row lands near the item's
// vertical centre, using AnchorRow.
func (g *Grid) PlaceAtDrop(itemID string, x, targetRow int) (string, error) {
	item, ok := g.items.Item(itemID)
	if !ok {
		g.logger.Warn("place: unknown item", zap.String("item_id", itemID))
		return "", ErrUnknownItem
	}
	_, h := footprint(item, false, false)
	return g.Place(itemID, x, AnchorRow(targetRow, h, g.dims.Rows))
}

// Remove deletes an instance and frees its cells. Unknown ids are ignored;
// the result reports whether anything was removed.
func (g *Grid) Remove(id string) bool {
	p, ok := g.instances[id]
	if !ok {
		return false
	}
	g.clear(p.rect())
	delete(g.instances, id)
	g.order = slices.DeleteFunc(g.order, func(v string) bool { return v == id })
	return true
}

// Move relocates an instance keeping its rotation. Moving always releases
// compression. On failure the instance stays where it was, still pressed if
// it was.
func (g *Grid) Move(id string, x, y int) error {
	p, ok := g.instances[id]
	if !ok {
		g.logger.Warn("move: unknown instance", zap.String("instance_id", id))
		return ErrUnknownInstance
	}

	current := p.rect()
	g.clear(current)

	w, h := footprint(p.item, p.Rotated, false)
	target := rect{x: x, y: y, w: w, h: h}
	if err := g.check(target); err != nil {
		g.fill(current, id)
		g.logger.Debug("move rejected",
			zap.String("instance_id", id), zap.Int("x", x), zap.Int("y", y), zap.Error(err))
		return err
	}

	p.X, p.Y, p.Pressed = x, y, false
	g.fill(target, id)
	return nil
}

// MoveToDrop is Move with the drop row adjusted by AnchorRow. The anchor uses
// the instance's effective height at drop time, so a pressed instance is
// anchored by its compressed height even though Move releases it.
func (g *Grid) MoveToDrop(id string, x, targetRow int) error {
	p, ok := g.instances[id]
	if !ok {
		g.logger.Warn("move: unknown instance", zap.String("instance_id", id))
		return ErrUnknownInstance
	}
	_, h := footprint(p.item, p.Rotated, p.Pressed)
	return g.Move(id, x, AnchorRow(targetRow, h, g.dims.Rows))
}

// RotateOutcome tells the caller where a rotated instance ended up.
type RotateOutcome string

const (
	// RotatedInPlace means the rotated footprint kept the same origin.
	RotatedInPlace RotateOutcome = "in_place"
	// RotatedShifted means the rotated footprint was re-anchored to the
	// original bottom-right corner.
	RotatedShifted RotateOutcome = "shifted"
)

// Rotate flips an instance's orientation. The same origin is tried first,
// then an origin that keeps the bottom-right corner in place. Pressed
// instances cannot rotate.
func (g *Grid) Rotate(id string) (RotateOutcome, error) {
	p, ok := g.instances[id]
	if !ok {
		g.logger.Warn("rotate: unknown instance", zap.String("instance_id", id))
		return "", ErrUnknownInstance
	}
	if p.Pressed {
		g.logger.Debug("rotate refused", zap.String("instance_id", id), zap.Error(ErrPressed))
		return "", ErrPressed
	}

	current := p.rect()
	g.clear(current)

	w, h := footprint(p.item, !p.Rotated, p.Pressed)
	inPlace := rect{x: p.X, y: p.Y, w: w, h: h}
	if err := g.check(inPlace); err == nil {
		g.commitRotation(p, inPlace)
		return RotatedInPlace, nil
	}

	shifted := rect{x: current.x + current.w - w, y: current.y + current.h - h, w: w, h: h}
	err := g.check(shifted)
	if err == nil {
		g.commitRotation(p, shifted)
		return RotatedShifted, nil
	}

	g.fill(current, id)
	g.logger.Debug("rotate rejected", zap.String("instance_id", id), zap.Error(err))
	return "", err
}

func (g *Grid) commitRotation(p *placed, r rect) {
	p.Rotated = !p.Rotated
	p.X, p.Y = r.x, r.y
	g.fill(r, p.ID)
}

// Instance returns a copy of the instance registered under id.
func (g *Grid) Instance(id string) (Instance, bool) {
	p, ok := g.instances[id]
	if !ok {
		return Instance{}, false
	}
	return p.Instance, true
}

// Instances returns every instance in placement order.
func (g *Grid) Instances() []Instance {
	out := make([]Instance, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.instances[id].Instance)
	}
	return out
}

// Placements returns every instance with its effective footprint.
func (g *Grid) Placements() []Placement {
	out := make([]Placement, 0, len(g.order))
	for _, id := range g.order {
		p := g.instances[id]
		r := p.rect()
		out = append(out, Placement{Instance: p.Instance, Width: r.w, Height: r.h, Weight: p.item.Weight})
	}
	return out
}

// PackedItemIDs returns the item id of every instance, with repeats.
func (g *Grid) PackedItemIDs() []string {
	out := make([]string, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.instances[id].ItemID)
	}
	return out
}

// TotalWeight sums the weight of every placed instance in kg.
func (g *Grid) TotalWeight() float64 {
	var total float64
	for _, p := range g.instances {
		total += p.item.Weight
	}
	return total
}

// Cells returns a copy of the occupancy matrix indexed [row][col].
func (g *Grid) Cells() [][]string {
	out := make([][]string, len(g.cells))
	for i, row := range g.cells {
		out[i] = slices.Clone(row)
	}
	return out
}

// EmptyCells counts unoccupied cells.
func (g *Grid) EmptyCells() int {
	var n int
	for _, row := range g.cells {
		for _, cell := range row {
			if cell == "" {
				n++
			}
		}
	}
	return n
}

func (g *Grid) check(r rect) error {
	if r.x < 0 || r.y < 0 || r.x+r.w > g.dims.Cols || r.y+r.h > g.dims.Rows {
		return ErrOutOfBounds
	}
	for row := r.y; row < r.y+r.h; row++ {
		for col := r.x; col < r.x+r.w; col++ {
			if g.cells[row][col] != "" {
				return ErrCollision
			}
		}
	}
	return nil
}

func (g *Grid) fill(r rect, id string) {
	for row := r.y; row < r.y+r.h; row++ {
		for col := r.x; col < r.x+r.w; col++ {
			g.cells[row][col] = id
		}
	}
}

func (g *Grid) clear(r rect) {
	g.fill(r, "")
}

func (p *placed) rect() rect {
	w, h := footprint(p.item, p.Rotated, p.Pressed)
	return rect{x: p.X, y: p.Y, w: w, h: h}
}

// footprint returns the effective width and height of an item. Compression
// shortens the post-rotation height by one row, never below one.
func footprint(item catalog.Item, rotated, pressed bool) (w, h int) {
	w, h = item.Footprint.Width, item.Footprint.Height
	if rotated {
		w, h = h, w
	}
	if pressed && item.Compressible {
		h = max(1, h-1)
	}
	return w, h
}

func newCells(d Dimensions) [][]string {
	cells := make([][]string, d.Rows)
	for i := range cells {
		cells[i] = make([]string, d.Cols)
	}
	return cells
}
