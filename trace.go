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
	"fmt"
	"log/slog"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// loop is a traced chain of edges bounding one region.
type loop struct {
	region int
	edges  []int      // in trace order
	verts  []int      // canonical vertex ids, start vertex first
	points []vec.Vec2 // positions of verts
	open   bool

	box  rect.Rect // LLy is the top edge, URy the bottom edge
	area float64
	key  []int // edges in increasing order

	interior int  // region to the right of the leftmost crossing
	hole     bool // set by classify
}

// equal reports whether l and m bound the same area of the same region.
func (l *loop) equal(m *loop) bool {
	return l.region == m.region && l.box == m.box && slices.Equal(l.key, m.key)
}

// hasEdge reports whether edge e is part of l.
func (l *loop) hasEdge(e int) bool {
	_, found := slices.BinarySearch(l.key, e)
	return found
}

// trace follows the boundary of region, starting with edge start, until no
// unvisited edge of the region continues the chain.
func (x *Extractor) trace(region, start int) (*loop, error) {
	edges := x.edges
	x.nextStamp()

	cur := &edges[start]
	trail := cur.a
	if region == cur.front {
		trail = cur.b
	}
	if len(x.adj.touching(region, trail)) <= 1 {
		// dangling on this side, walk the other way
		trail = cur.other(trail)
	}
	from := cur.other(trail)

	l := &loop{region: region}
	l.verts = append(l.verts, from, trail)
	l.points = append(l.points, cur.pos(from), cur.pos(trail))
	l.edges = append(l.edges, start)
	x.visited[start] = x.stamp

	e := start
	for steps := 0; ; steps++ {
		if steps > len(edges) {
			return nil, fmt.Errorf("region %d: chain from linedef %d does not end: %w",
				region, start, ErrMalformed)
		}

		next := -1
		for _, c := range x.adj.touching(region, trail) {
			if x.visited[c] == x.stamp {
				continue
			}
			if next < 0 || x.before(e, c, next, trail) {
				next = c
			}
		}
		if next < 0 {
			break
		}

		x.visited[next] = x.stamp
		e = next
		trail = edges[e].other(trail)
		l.edges = append(l.edges, e)
		l.verts = append(l.verts, trail)
		l.points = append(l.points, edges[e].pos(trail))
		if trail == from {
			// Closed.  Edges continuing from here belong to another
			// loop through the same vertex.
			break
		}
	}

	last := len(l.verts) - 1
	if l.verts[last] == from && last > 0 {
		l.verts = l.verts[:last]
		l.points = l.points[:last]
	} else {
		l.open = true
	}

	if l.open && region != Void && x.WarnOpen && distinct(l.verts) > 3 {
		Logger().Warn("open sector boundary",
			slog.Int("region", region),
			slog.Int("edges", len(l.edges)),
			slog.Int("vertices", len(l.verts)))
	}

	l.finish(edges)
	return l, nil
}

// before reports whether candidate c should be preferred over candidate d
// as the continuation of edge e at vertex v.
func (x *Extractor) before(e, c, d, v int) bool {
	switch x.TieBreak {
	case TieBreakSlope:
		sc := math.Abs(x.edges[c].slope)
		sd := math.Abs(x.edges[d].slope)
		if sc != sd {
			return sc > sd
		}
	default:
		ac := x.innerAngle(e, c, v)
		ad := x.innerAngle(e, d, v)
		if ac != ad {
			return ac < ad
		}
	}
	return c < d
}

// innerAngle returns the angle at vertex v between edges e and c, which
// both end at v. Parallel and zero-length edges give π.
func (x *Extractor) innerAngle(e, c, v int) float64 {
	ee, ec := &x.edges[e], &x.edges[c]
	if ee.lenSq == 0 || ec.lenSq == 0 {
		return math.Pi
	}

	p := ee.pos(v)
	farE := ee.pos(ee.other(v))
	farC := ec.pos(ec.other(v))
	u := farE.Sub(p)
	w := farC.Sub(p)
	if u.X*w.Y-u.Y*w.X == 0 {
		return math.Pi
	}

	d := farC.Sub(farE)
	cSq := d.X*d.X + d.Y*d.Y
	cos := (ee.lenSq + ec.lenSq - cSq) / (2 * ee.length * ec.length)
	return math.Acos(max(-1, min(1, cos)))
}

// finish computes the bounding box, area and edge key of l.
func (l *loop) finish(edges []edge) {
	l.box = rect.Rect{
		LLx: math.Inf(1),
		LLy: math.Inf(1),
		URx: math.Inf(-1),
		URy: math.Inf(-1),
	}
	for _, e := range l.edges {
		ed := &edges[e]
		l.box.LLx = min(l.box.LLx, ed.left)
		l.box.LLy = min(l.box.LLy, ed.top)
		l.box.URx = max(l.box.URx, ed.right)
		l.box.URy = max(l.box.URy, ed.bottom)
	}
	l.area = math.Abs((l.box.URx - l.box.LLx) * (l.box.URy - l.box.LLy))

	l.key = slices.Clone(l.edges)
	slices.Sort(l.key)
	l.interior = l.region
}

func distinct(verts []int) int {
	seen := make(map[int]struct{}, len(verts))
	for _, v := range verts {
		seen[v] = struct{}{}
	}
	return len(seen)
}

func (x *Extractor) nextStamp() {
	if len(x.visited) < len(x.edges) {
		x.visited = make([]uint32, len(x.edges))
		x.stamp = 0
	}
	x.stamp++
	if x.stamp == 0 {
		clear(x.visited)
		x.stamp = 1
	}
}
