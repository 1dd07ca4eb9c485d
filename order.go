// seehuhn.de/go/sectormap - sector outlines for Doom-format maps
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package sectormap

import (
	"cmp"
	"log/slog"
	"slices"

	"seehuhn.de/go/geom/path"
)

// containment is the containment relation between the loops in x.loops.
type containment struct {
	n   int
	rel []bool // rel[i*n+j] is set if loop i contains loop j
}

func (c *containment) get(i, j int) bool {
	return c.rel[i*c.n+j]
}

// relate computes the containment relation between all pairs of loops.
func (x *Extractor) relate() *containment {
	n := len(x.loops)
	c := &containment{n: n, rel: make([]bool, n*n)}
	for i, a := range x.loops {
		for j, b := range x.loops {
			c.rel[i*n+j] = x.contains(a, b)
		}
	}
	return c
}

// depths returns, for every loop, the length of the longest chain of loops
// containing it.
func (c *containment) depths() []int {
	const (
		unvisited = -1
		active    = -2
	)
	depth := make([]int, c.n)
	for i := range depth {
		depth[i] = unvisited
	}

	var visit func(j int) int
	visit = func(j int) int {
		switch depth[j] {
		case active:
			return 0 // containment cycle, break it here
		case unvisited:
		default:
			return depth[j]
		}
		depth[j] = active
		d := 0
		for i := range c.n {
			if c.get(i, j) {
				d = max(d, visit(i)+1)
			}
		}
		depth[j] = d
		return d
	}
	for j := range c.n {
		visit(j)
	}
	return depth
}

// order sorts the loops into draw order, applies the void mask rules and
// converts the result into records.
//
// Loops are drawn largest first. Among loops with the same box area, a
// container always has a smaller depth than the loops it contains, so no
// loop is drawn before a loop enclosing it.
func (x *Extractor) order(c *containment) []Record {
	depth := c.depths()

	idx := make([]int, len(x.loops))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(i, j int) int {
		a, b := x.loops[i], x.loops[j]
		return cmp.Or(
			cmp.Compare(b.area, a.area),
			cmp.Compare(depth[i], depth[j]),
			cmp.Compare(len(b.edges), len(a.edges)),
			cmp.Compare(a.region, b.region),
			cmp.Compare(a.key[0], b.key[0]),
		)
	})

	log := Logger()
	var accepted []int        // loop indices, in draw order
	recordOf := map[int]int{} // loop index -> record index
	res := make([]Record, 0, len(idx))
	for _, i := range idx {
		l := x.loops[i]

		parent := -1  // innermost container
		painted := -1 // innermost container which is filled or masked
		punch := false
		for _, j := range accepted {
			if !c.get(j, i) {
				continue
			}
			if parent < 0 || depth[j] >= depth[parent] {
				parent = j
			}
			m := x.loops[j]
			if m.paints() && (painted < 0 || depth[j] >= depth[painted]) {
				painted = j
			}
			if m.region == Void && m.hole {
				punch = true
			}
		}

		if l.region == Void && l.hole && painted >= 0 {
			p := x.loops[painted]
			if p.region == Void && p.hole {
				log.Debug("suppressing nested void hole",
					slog.Int("linedef", l.key[0]),
					slog.Int("inside", p.key[0]))
				continue
			}
		}

		rec := x.record(l)
		rec.Punch = punch && rec.Solid()
		if parent >= 0 {
			rec.Parent = recordOf[parent]
		}
		recordOf[i] = len(res)
		accepted = append(accepted, i)
		res = append(res, rec)
	}
	return res
}

// paints reports whether drawing l changes the image: solid loops are
// filled and void holes are masked.
func (l *loop) paints() bool {
	if l.region == Void {
		return l.hole
	}
	return !l.hole
}

// record converts a loop into an output record.
func (x *Extractor) record(l *loop) Record {
	pts := l.points
	p := &path.Data{}
	p.MoveTo(pts[0])
	for _, q := range pts[1:] {
		p.LineTo(q)
	}
	p.Close()

	return Record{
		Polygon:  p,
		Points:   slices.Clone(pts),
		Region:   l.region,
		IsHole:   l.hole,
		Open:     l.open,
		Parent:   -1,
		Linedefs: slices.Clone(l.edges),
	}
}
