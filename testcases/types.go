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

// Package testcases provides small maps for testing the sector tracer.
//
// Coordinates are given in map units with the Y axis pointing up. The front
// sector of a linedef lies to the right of the direction A→B, so a sector
// bounded by one-sided linedefs is traced clockwise.
package testcases

import (
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sectormap"
)

// Fixture is a test map together with the expected shape of the output.
type Fixture struct {
	Name string // lowercase a-z, 0-9 and _ only
	Map  *sectormap.Map

	Records int // number of records
	Solid   int // records with Solid() set
	Holes   int // records with IsHole set
	Punched int // records with Punch set
}

// builder assembles a map one ring of linedefs at a time.
type builder struct {
	m sectormap.Map
}

func newBuilder() *builder {
	return &builder{}
}

// sector adds a sector and returns its index.
func (b *builder) sector(floor string, light int) int {
	b.m.Sectors = append(b.m.Sectors, sectormap.Sector{Floor: floor, Light: light})
	return len(b.m.Sectors) - 1
}

// vertex adds a vertex, even if one with the same position exists.
func (b *builder) vertex(p vec.Vec2) int {
	b.m.Vertices = append(b.m.Vertices, p)
	return len(b.m.Vertices) - 1
}

// line adds a linedef with fresh end points.
func (b *builder) line(p, q vec.Vec2, front, back int) {
	b.link(b.vertex(p), b.vertex(q), front, back)
}

func (b *builder) link(va, vb, front, back int) {
	b.m.Linedefs = append(b.m.Linedefs, sectormap.Linedef{
		A: va, B: vb, Front: front, Back: back,
	})
}

// ring adds a closed chain of linedefs through pts, sharing vertices
// between consecutive linedefs.
func (b *builder) ring(front, back int, pts ...vec.Vec2) {
	b.chain(front, back, append(slices.Clip(pts), pts[0])...)
}

// chain adds an open chain of linedefs through pts.
func (b *builder) chain(front, back int, pts ...vec.Vec2) {
	first := b.vertex(pts[0])
	prev := first
	for i, p := range pts[1:] {
		v := first
		if i < len(pts)-2 || p != pts[0] {
			v = b.vertex(p)
		}
		b.link(prev, v, front, back)
		prev = v
	}
}

func (b *builder) build() *sectormap.Map {
	m := b.m
	return &m
}

// cw returns the corners of a box in clockwise order, starting at the
// lower left corner. A sector in front of these linedefs is inside.
func cw(x0, y0, x1, y1 float64) []vec.Vec2 {
	return []vec.Vec2{pt(x0, y0), pt(x0, y1), pt(x1, y1), pt(x1, y0)}
}

// ccw returns the corners of a box in counter-clockwise order. A sector in
// front of these linedefs is outside.
func ccw(x0, y0, x1, y1 float64) []vec.Vec2 {
	return []vec.Vec2{pt(x0, y0), pt(x1, y0), pt(x1, y1), pt(x0, y1)}
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
