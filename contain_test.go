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
	"context"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/tdewolff/test"

	"seehuhn.de/go/geom/vec"
)

// addBox appends a ring of four linedefs around the given box. For
// clockwise rings the front sector is inside.
func addBox(m *Map, front, back int, clockwise bool, x0, y0, x1, y1 float64) {
	base := len(m.Vertices)
	if clockwise {
		m.Vertices = append(m.Vertices,
			vec.Vec2{X: x0, Y: y0}, vec.Vec2{X: x0, Y: y1},
			vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x1, Y: y0})
	} else {
		m.Vertices = append(m.Vertices,
			vec.Vec2{X: x0, Y: y0}, vec.Vec2{X: x1, Y: y0},
			vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x0, Y: y1})
	}
	for i := range 4 {
		m.Linedefs = append(m.Linedefs, Linedef{
			A: base + i, B: base + (i+1)%4, Front: front, Back: back,
		})
	}
}

// donutMap is a sector with a second sector inside it.
func donutMap() *Map {
	m := &Map{Sectors: make([]Sector, 2)}
	addBox(m, 0, NoSector, true, 0, 0, 128, 128)
	addBox(m, 1, 0, true, 32, 32, 96, 96)
	return m
}

// pillarMap is a sector with a solid pillar inside it.
func pillarMap() *Map {
	m := &Map{Sectors: make([]Sector, 1)}
	addBox(m, 0, NoSector, true, 0, 0, 128, 128)
	addBox(m, 0, NoSector, false, 40, 40, 88, 88)
	return m
}

// traced runs the tracing and classification steps on m.
func traced(t *testing.T, m *Map) *Extractor {
	t.Helper()
	x := NewExtractor()
	edges, err := preprocess(m, nil)
	if err != nil {
		t.Fatal(err)
	}
	x.edges = edges
	x.adj.reset(x.edges, len(m.Sectors))
	if err := x.traceAll(context.Background(), len(m.Sectors)); err != nil {
		t.Fatal(err)
	}
	x.classify()
	return x
}

func TestPreprocess(t *testing.T) {
	m := &Map{
		Vertices: []vec.Vec2{{X: 0, Y: 0}, {X: 0, Y: 64}, {X: 0, Y: 64}, {X: 64, Y: 0}},
		Linedefs: []Linedef{
			{A: 0, B: 1, Front: 0, Back: NoSector},
			{A: 2, B: 3, Front: 0, Back: NoSector},
			{A: 3, B: 0, Front: 0, Back: 0},
		},
		Sectors: make([]Sector, 1),
	}
	edges, err := preprocess(m, nil)
	test.Error(t, err)
	test.T(t, len(edges), 3)

	test.T(t, edges[0].pb, vec.Vec2{X: 0, Y: -64})
	test.That(t, !math.Signbit(edges[0].pa.Y), "negative zero")
	test.T(t, edges[0].b, edges[1].a, "duplicate vertex not merged")
	test.That(t, edges[0].vertical())
	test.Float(t, edges[0].angle, 3*math.Pi/2)
	test.T(t, edges[0].back, Void)

	test.Float(t, edges[1].slope, 1)
	test.Float(t, edges[1].xAt(-32), 32)
	test.Float(t, edges[1].top, -64)
	test.Float(t, edges[1].bottom, 0)
	test.Float(t, edges[1].lenSq, 2*64*64)

	test.That(t, edges[0].traced())
	test.That(t, !edges[2].traced())
	test.Float(t, edges[2].angle, math.Pi)
}

func TestTraceTwice(t *testing.T) {
	m := donutMap()
	x := NewExtractor()
	edges, err := preprocess(m, nil)
	test.Error(t, err)
	x.edges = edges
	x.adj.reset(x.edges, len(m.Sectors))
	x.adj.sort(0)

	start := x.adj.first(0)
	l1, err := x.trace(0, start)
	test.Error(t, err)
	l2, err := x.trace(0, start)
	test.Error(t, err)

	test.That(t, l1.equal(l2), "repeated trace differs")
	test.That(t, !l1.open)
	test.T(t, len(l1.edges), 4)
	test.T(t, l1.edges[0], start)
	test.Float(t, l1.area, 128*128)

	x.loops = append(x.loops, l1)
	test.That(t, x.known(l2))
}

func TestRetireKeepsOtherSide(t *testing.T) {
	m := donutMap()
	x := NewExtractor()
	edges, err := preprocess(m, nil)
	test.Error(t, err)
	x.edges = edges
	x.adj.reset(x.edges, len(m.Sectors))

	// the inner ring of the donut, traced from the outer sector
	l, err := x.trace(0, 4)
	test.Error(t, err)
	test.T(t, len(l.edges), 4)
	x.retire(0, l.edges)

	for _, e := range l.edges {
		test.That(t, !x.adj.has(0, e), "edge", e, "still in pool 0")
		test.That(t, x.adj.has(1, e), "edge", e, "missing from pool 1")
	}
	test.T(t, x.adj.remaining(0), 4)
	test.T(t, x.adj.remaining(1), 4)
	test.T(t, x.adj.remaining(Void), 4)
}

func TestClassify(t *testing.T) {
	x := traced(t, donutMap())
	test.T(t, len(x.loops), 4)

	holes := 0
	for _, l := range x.loops {
		if l.hole {
			holes++
			test.T(t, l.region, 0)
			test.T(t, l.interior, 1)
		}
	}
	test.T(t, holes, 1)

	x = traced(t, pillarMap())
	test.T(t, len(x.loops), 4)
	for _, l := range x.loops {
		inner := l.area < 128*128
		test.T(t, l.hole, inner, "region", l.region, "area", l.area)
		if inner {
			test.T(t, l.interior, Void)
		}
	}
}

func TestContainsAntisymmetric(t *testing.T) {
	for _, m := range []*Map{donutMap(), pillarMap()} {
		x := traced(t, m)
		c := x.relate()
		for i := range x.loops {
			test.That(t, !c.get(i, i), "loop", i, "contains itself")
			for j := range x.loops {
				test.That(t, !(c.get(i, j) && c.get(j, i)), "loops", i, j, "contain each other")
			}
		}

		// a container is never deeper than the loops inside it
		depth := c.depths()
		for i := range x.loops {
			for j := range x.loops {
				if c.get(i, j) {
					test.That(t, depth[i] < depth[j], "depth", i, j)
				}
			}
		}
	}
}

func TestPrecedes(t *testing.T) {
	void := &loop{region: Void, key: []int{3}}
	a := &loop{region: 0, key: []int{2}}
	b := &loop{region: 0, key: []int{1}}
	c := &loop{region: 1, key: []int{0}}

	test.That(t, precedes(void, a))
	test.That(t, !precedes(a, void))
	test.That(t, precedes(b, a))
	test.That(t, precedes(a, c))
}

// TestPointIn compares the point in polygon test against orb.
func TestPointIn(t *testing.T) {
	x := traced(t, donutMap())
	for _, l := range x.loops {
		ring := make(orb.Ring, 0, len(l.points)+1)
		for _, p := range l.points {
			ring = append(ring, orb.Point{p.X, p.Y})
		}
		ring = append(ring, ring[0])

		// sample points never lie on a boundary
		for i := range 10 {
			for j := range 10 {
				p := vec.Vec2{X: float64(16*i - 11), Y: -float64(16*j - 11)}
				want := planar.RingContains(ring, orb.Point{p.X, p.Y})
				test.T(t, x.pointIn(p, l), want, p)
			}
		}

		// vertices and edge midpoints are inside
		for _, e := range l.edges {
			ed := &x.edges[e]
			test.That(t, x.pointIn(ed.pa, l))
			test.That(t, x.pointIn(ed.pa.Add(ed.pb).Mul(0.5), l))
		}
	}
}

func TestInnerAngle(t *testing.T) {
	m := &Map{
		Vertices: []vec.Vec2{
			{X: 0, Y: 0}, {X: 64, Y: 0}, {X: 0, Y: 64}, {X: -64, Y: 0}, {X: 64, Y: 64},
		},
		Linedefs: []Linedef{
			{A: 1, B: 0, Front: 0, Back: NoSector},
			{A: 0, B: 2, Front: 0, Back: NoSector},
			{A: 0, B: 3, Front: 0, Back: NoSector},
			{A: 0, B: 4, Front: 0, Back: NoSector},
		},
		Sectors: make([]Sector, 1),
	}
	x := NewExtractor()
	edges, err := preprocess(m, nil)
	test.Error(t, err)
	x.edges = edges

	test.Float(t, x.innerAngle(0, 1, 0), math.Pi/2)
	test.Float(t, x.innerAngle(0, 2, 0), math.Pi)
	test.Float(t, x.innerAngle(0, 3, 0), math.Pi/4)

	test.That(t, x.before(0, 3, 1, 0))
	test.That(t, !x.before(0, 2, 1, 0))

	// vertical beats diagonal under the slope rule
	x.TieBreak = TieBreakSlope
	test.That(t, x.before(0, 1, 3, 0))
	test.That(t, x.before(0, 3, 2, 0))
}

func TestRayHeight(t *testing.T) {
	x := traced(t, donutMap())
	for _, l := range x.loops {
		y, ok := x.rayHeight(l)
		test.That(t, ok)
		for _, p := range l.points {
			test.That(t, p.Y != y, "ray through vertex", p)
		}
		test.That(t, y > l.box.LLy && y < l.box.URy)
	}
}
