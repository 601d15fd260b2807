package grid

import (
	"cmp"
	"slices"

	"go.uber.org/zap"
)

// CompressReport lists what a compression pass changed.
type CompressReport struct {
	Pressed []string `json:"pressed"`
	Moved   []string `json:"moved"`
}

// CompressAll presses every eligible instance and lets unpressed instances
// fall to the lowest free row in their column. Already pressed instances do
// not move. Instances are resettled bottom-first so lower items claim floor
// space before the items stacked on them.
func (g *Grid) CompressAll() (CompressReport, error) {
	before := g.capture()

	type pending struct {
		p      *placed
		bottom int
	}
	queue := make([]pending, 0, len(g.order))
	for _, id := range g.order {
		p := g.instances[id]
		if p.Pressed {
			continue
		}
		r := p.rect()
		queue = append(queue, pending{p: p, bottom: r.y + r.h})
		g.clear(r)
	}
	slices.SortStableFunc(queue, func(a, b pending) int {
		return cmp.Compare(b.bottom, a.bottom)
	})

	report := CompressReport{Pressed: []string{}, Moved: []string{}}
	for _, q := range queue {
		p := q.p
		if _, h := footprint(p.item, p.Rotated, false); p.item.Compressible && h >= 2 {
			p.Pressed = true
			report.Pressed = append(report.Pressed, p.ID)
		}

		w, h := footprint(p.item, p.Rotated, p.Pressed)
		row, ok := g.restingRow(p.X, w, h)
		if !ok {
			g.apply(before)
			g.logger.Warn("compress rolled back", zap.String("instance_id", p.ID))
			return CompressReport{}, ErrNoRestingRow
		}
		if row != p.Y {
			report.Moved = append(report.Moved, p.ID)
		}
		p.Y = row
		g.fill(rect{x: p.X, y: row, w: w, h: h}, p.ID)
	}
	return report, nil
}

// restingRow finds the lowest row in column x where a w x h footprint fits.
// The scan covers the instance's original row, so when nothing fits the
// original row is taken as well.
func (g *Grid) restingRow(x, w, h int) (int, bool) {
	for y := g.dims.Rows - h; y >= 0; y-- {
		if g.check(rect{x: x, y: y, w: w, h: h}) == nil {
			return y, true
		}
	}
	return 0, false
}
