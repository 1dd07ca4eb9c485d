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
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// pointIn reports whether p lies inside or on the boundary of l.
//
// A ray is cast from p towards +x. An edge is crossed if p.Y lies in the
// half-open range [top, bottom) of the edge and the crossing lies to the
// right of p.
func (x *Extractor) pointIn(p vec.Vec2, l *loop) bool {
	inside := false
	for _, e := range l.edges {
		ed := &x.edges[e]
		if p == ed.pa || p == ed.pb {
			return true
		}
		if ed.top == ed.bottom {
			if p.Y == ed.top && ed.left <= p.X && p.X <= ed.right {
				return true
			}
			continue
		}
		if p.Y < ed.top || p.Y >= ed.bottom {
			continue
		}
		xi := ed.xAt(p.Y)
		if xi == p.X {
			return true
		}
		if xi > p.X {
			inside = !inside
		}
	}
	return inside
}

// rayHeight returns a Y coordinate near the average mid-height of the edges
// of l which does not pass through any vertex of l. The second return value
// is false if all vertices of l have the same Y coordinate.
func (x *Extractor) rayHeight(l *loop) (float64, bool) {
	ys := make([]float64, 0, len(l.points))
	for _, p := range l.points {
		ys = append(ys, p.Y)
	}
	slices.Sort(ys)
	ys = slices.Compact(ys)
	if len(ys) < 2 {
		return 0, false
	}

	cy := 0.0
	for _, e := range l.edges {
		cy += x.edges[e].top + x.edges[e].bottom
	}
	cy /= float64(2 * len(l.edges))

	i, _ := slices.BinarySearch(ys, cy)
	// the gap is between ys[i-1] and ys[i]
	i = max(1, min(len(ys)-1, i))
	if ys[i] == cy && i < len(ys)-1 && cy-ys[i-1] > ys[i+1]-cy {
		i++
	}
	return (ys[i-1] + ys[i]) / 2, true
}

// interiorRegion returns the region found on the inner side of the leftmost
// edge of l which crosses the ray at the loop's mid-height.
func (x *Extractor) interiorRegion(l *loop) int {
	y, ok := x.rayHeight(l)
	if !ok {
		return l.region
	}

	hit := -1
	hitX := math.Inf(1)
	for _, e := range l.edges {
		ed := &x.edges[e]
		if y <= ed.top || y >= ed.bottom {
			continue
		}
		xi := ed.xAt(y)
		if xi < hitX || xi == hitX && e < hit {
			hit, hitX = e, xi
		}
	}
	if hit < 0 {
		return l.region
	}

	// The front side of a linedef is on its right.  Seen from the left,
	// the right side of an edge which runs upwards is the side facing +x.
	ed := &x.edges[hit]
	if ed.pb.Y < ed.pa.Y {
		return ed.front
	}
	return ed.back
}

// classify determines the interior region of every loop and whether the
// loop is a hole.
//
// A sector loop is a hole if the area it encloses belongs to a different
// region. A void loop is a hole if it encloses void space, so that it has
// to be masked out.
func (x *Extractor) classify() {
	for _, l := range x.loops {
		l.interior = x.interiorRegion(l)
		if l.region == Void {
			l.hole = l.interior == Void
		} else {
			l.hole = l.interior != l.region
		}
	}
}

// encloses reports whether every edge of b lies inside or on a, ignoring
// loop identity and tie rules.
func (x *Extractor) encloses(a, b *loop) bool {
	if a.area < b.area ||
		a.box.LLx > b.box.LLx || a.box.LLy > b.box.LLy ||
		a.box.URx < b.box.URx || a.box.URy < b.box.URy {
		return false
	}

	for _, e := range b.edges {
		if a.hasEdge(e) {
			continue
		}
		ed := &x.edges[e]
		mid := ed.pa.Add(ed.pb).Mul(0.5)
		if !x.pointIn(ed.pa, a) || !x.pointIn(ed.pb, a) || !x.pointIn(mid, a) {
			return false
		}
	}
	return true
}

// contains reports whether loop a contains loop b. The relation is
// irreflexive and antisymmetric: when two loops enclose each other, only
// the one which comes first in precedence contains the other.
func (x *Extractor) contains(a, b *loop) bool {
	if a == b || !x.encloses(a, b) {
		return false
	}
	if a.box != b.box || !x.encloses(b, a) {
		return true
	}
	return precedes(a, b)
}

// precedes orders loops tracing the same outline: void first, then by
// region, then by smallest edge index.
func precedes(a, b *loop) bool {
	if (a.region == Void) != (b.region == Void) {
		return a.region == Void
	}
	if a.region != b.region {
		return a.region < b.region
	}
	return a.key[0] < b.key[0]
}
