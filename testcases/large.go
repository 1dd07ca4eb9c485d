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

import (
	"fmt"

	"seehuhn.de/go/sectormap"
)

var largeCases = []Fixture{
	{
		Name:    "grid_4",
		Map:     Grid(4),
		Records: 17,
		Solid:   16,
	},
	{
		Name:    "grid_12",
		Map:     Grid(12),
		Records: 145,
		Solid:   144,
	},
}

// Grid returns an n×n grid of 64×64 sectors. Sector row*n+col is the cell
// in the given row and column, counted from the lower left. Linedefs
// between cells are two-sided.
func Grid(n int) *sectormap.Map {
	b := newBuilder()
	for i := range n * n {
		b.sector(fmt.Sprintf("GRID%02d", i%100), 96+(i*37)%160)
	}
	for j := range n + 1 {
		for i := range n + 1 {
			b.vertex(pt(float64(64*i), float64(64*j)))
		}
	}
	v := func(i, j int) int { return j*(n+1) + i }
	cell := func(i, j int) int { return j*n + i }

	// horizontal linedefs: the cell below is on the right of +x
	for j := range n + 1 {
		for i := range n {
			switch j {
			case 0:
				b.link(v(i+1, 0), v(i, 0), cell(i, 0), sectormap.NoSector)
			case n:
				b.link(v(i, n), v(i+1, n), cell(i, n-1), sectormap.NoSector)
			default:
				b.link(v(i, j), v(i+1, j), cell(i, j-1), cell(i, j))
			}
		}
	}
	// vertical linedefs: the cell to the right is on the right of +y
	for i := range n + 1 {
		for j := range n {
			switch i {
			case 0:
				b.link(v(0, j), v(0, j+1), cell(0, j), sectormap.NoSector)
			case n:
				b.link(v(n, j+1), v(n, j), cell(n-1, j), sectormap.NoSector)
			default:
				b.link(v(i, j), v(i, j+1), cell(i, j), cell(i-1, j))
			}
		}
	}
	return b.build()
}
