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

var junctionCases = []Fixture{
	{
		Name:    "bowtie",
		Map:     Bowtie(),
		Records: 4,
		Solid:   2,
	},
	{
		Name:    "bowtie_merged",
		Map:     BowtieMerged(),
		Records: 4,
		Solid:   2,
	},
}

// Bowtie consists of two triangles of the same sector which touch at the
// vertex (64, 64). Four linedefs of the sector meet at this vertex.
func Bowtie() *sectormap.Map {
	b := newBuilder()
	s := b.sector("FLOOR7_1", 176)
	b.ring(s, sectormap.NoSector, pt(0, 0), pt(0, 64), pt(64, 64))
	b.ring(s, sectormap.NoSector, pt(64, 64), pt(80, 128), pt(128, 80))
	return b.build()
}

// BowtieMerged is Bowtie with separate vertex records at the junction.
func BowtieMerged() *sectormap.Map {
	b := newBuilder()
	s := b.sector("FLOOR7_1", 176)
	b.line(pt(0, 0), pt(0, 64), s, sectormap.NoSector)
	b.line(pt(0, 64), pt(64, 64), s, sectormap.NoSector)
	b.line(pt(64, 64), pt(0, 0), s, sectormap.NoSector)
	b.line(pt(64, 64), pt(80, 128), s, sectormap.NoSector)
	b.line(pt(80, 128), pt(128, 80), s, sectormap.NoSector)
	b.line(pt(128, 80), pt(64, 64), s, sectormap.NoSector)
	return b.build()
}
