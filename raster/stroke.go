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

package raster

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Stroke draws the outline of p with line width r.Width.
//
// Every segment is drawn as a rectangle extending half the line width past
// both end points, and the rectangles are combined with the nonzero rule.
// At corners this gives the same result as square caps.
func (r *Rasteriser) Stroke(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	if r.Width <= 0 {
		return
	}
	hw := r.Width / 2

	r.begin()
	var cur, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			cur = p.Coords[k]
			start = cur
			k++
		case path.CmdLineTo:
			r.addSegment(cur, p.Coords[k], hw)
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.addSegment(cur, p.Coords[k+1], hw)
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.addSegment(cur, p.Coords[k+2], hw)
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			r.addSegment(cur, start, hw)
			cur = start
		}
	}
	r.render(nonZero, emit)
}

// addSegment adds the rectangle covering the stroke of the segment from
// a to b. All rectangles have the same orientation.
func (r *Rasteriser) addSegment(a, b vec.Vec2, hw float64) {
	d := b.Sub(a)
	l := d.Length()
	if l < 1e-10 {
		return
	}
	t := d.Mul(hw / l)
	n := vec.Vec2{X: -t.Y, Y: t.X}

	p0 := a.Sub(t).Add(n)
	p1 := b.Add(t).Add(n)
	p2 := b.Add(t).Sub(n)
	p3 := a.Sub(t).Sub(n)
	r.addLine(p0, p1)
	r.addLine(p1, p2)
	r.addLine(p2, p3)
	r.addLine(p3, p0)
}
