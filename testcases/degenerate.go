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

package testcases

import "seehuhn.de/go/sectormap"

var degenerateCases = []Fixture{
	{
		Name:    "diagonal",
		Map:     Diagonal(),
		Records: 2,
		Solid:   1,
	},
	{
		Name:    "stray_right",
		Map:     Stray(200),
		Records: 2,
		Solid:   1,
	},
	{
		Name:    "stray_left",
		Map:     Stray(-50),
		Records: 2,
		Solid:   1,
	},
	{
		Name:    "loose_vertices",
		Map:     LooseVertices(),
		Records: 2,
		Solid:   1,
	},
	{
		Name:    "open",
		Map:     Open(),
		Records: 2,
		Solid:   1,
	},
}

// DiagonalLinedef is the index of the linedef in Diagonal which has the
// same sector on both sides.
const DiagonalLinedef = 4

// Diagonal is Square with an extra two-sided linedef across the sector,
// with the same sector on both sides.
func Diagonal() *sectormap.Map {
	b := newBuilder()
	s := b.sector("FLOOR4_8", 160)
	b.ring(s, sectormap.NoSector, cw(0, 0, 64, 64)...)
	b.link(0, 2, s, s)
	return b.build()
}

// StrayLinedef is the index of the stray linedef in maps returned by
// Stray.
const StrayLinedef = 4

// Stray is Square with an unconnected one-sided linedef at the given x
// coordinate.
func Stray(x float64) *sectormap.Map {
	b := newBuilder()
	s := b.sector("FLOOR4_8", 160)
	b.ring(s, sectormap.NoSector, cw(0, 0, 64, 64)...)
	b.line(pt(x, 0), pt(x, 64), s, sectormap.NoSector)
	return b.build()
}

// LooseVertices is Square where every linedef has its own copies of its
// end points.
func LooseVertices() *sectormap.Map {
	b := newBuilder()
	s := b.sector("FLOOR4_8", 160)
	c := cw(0, 0, 64, 64)
	for i := range c {
		b.line(c[i], c[(i+1)%len(c)], s, sectormap.NoSector)
	}
	return b.build()
}

// Open is a sector whose boundary has a gap on the lower left.
func Open() *sectormap.Map {
	b := newBuilder()
	s := b.sector("FLOOR4_8", 160)
	b.chain(s, sectormap.NoSector,
		pt(0, 32), pt(16, 64), pt(64, 64), pt(64, 0), pt(16, 0))
	return b.build()
}
