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

var roomCases = []Fixture{
	{
		Name:    "square",
		Map:     Square(),
		Records: 2,
		Solid:   1,
	},
	{
		Name:    "donut",
		Map:     Donut(),
		Records: 4,
		Solid:   2,
		Holes:   1,
	},
	{
		Name:    "pillar",
		Map:     Pillar(),
		Records: 4,
		Solid:   1,
		Holes:   2,
	},
	{
		Name:    "island",
		Map:     Island(),
		Records: 6,
		Solid:   2,
		Holes:   2,
		Punched: 1,
	},
	{
		Name:    "nested_void",
		Map:     NestedVoid(),
		Records: 5,
		Solid:   1,
		Holes:   3,
	},
	{
		Name:    "two_rooms",
		Map:     TwoRooms(),
		Records: 3,
		Solid:   2,
	},
}

// Square is a single 64×64 sector surrounded by void.
func Square() *sectormap.Map {
	b := newBuilder()
	s := b.sector("FLOOR4_8", 160)
	b.ring(s, sectormap.NoSector, cw(0, 0, 64, 64)...)
	return b.build()
}

// Donut is a 128×128 sector with a second sector inside it. The inner
// boundary is two-sided, with the inner sector in front.
func Donut() *sectormap.Map {
	b := newBuilder()
	outer := b.sector("FLOOR5_1", 255)
	inner := b.sector("NUKAGE1", 64)
	b.ring(outer, sectormap.NoSector, cw(0, 0, 128, 128)...)
	b.ring(inner, outer, cw(32, 32, 96, 96)...)
	return b.build()
}

// Pillar is a 128×128 sector with a solid pillar in the middle. The
// pillar is bounded by one-sided linedefs facing outwards.
func Pillar() *sectormap.Map {
	b := newBuilder()
	room := b.sector("FLAT14", 192)
	b.ring(room, sectormap.NoSector, cw(0, 0, 128, 128)...)
	b.ring(room, sectormap.NoSector, ccw(40, 40, 88, 88)...)
	return b.build()
}

// Island adds a separate small sector inside the void space of the pillar.
func Island() *sectormap.Map {
	b := newBuilder()
	room := b.sector("FLAT14", 192)
	island := b.sector("CEIL5_1", 96)
	b.ring(room, sectormap.NoSector, cw(0, 0, 128, 128)...)
	b.ring(room, sectormap.NoSector, ccw(40, 40, 88, 88)...)
	b.ring(island, sectormap.NoSector, cw(56, 56, 72, 72)...)
	return b.build()
}

// NestedVoid has a second outward facing ring of the room inside the
// void space of the pillar. Its void side is already masked.
func NestedVoid() *sectormap.Map {
	b := newBuilder()
	room := b.sector("FLAT14", 192)
	b.ring(room, sectormap.NoSector, cw(0, 0, 128, 128)...)
	b.ring(room, sectormap.NoSector, ccw(40, 40, 88, 88)...)
	b.ring(room, sectormap.NoSector, ccw(56, 56, 72, 72)...)
	return b.build()
}

// TwoRooms has two sectors side by side, sharing one two-sided linedef.
func TwoRooms() *sectormap.Map {
	b := newBuilder()
	left := b.sector("FLOOR0_1", 128)
	right := b.sector("FLOOR0_3", 224)

	v00 := b.vertex(pt(0, 0))
	v01 := b.vertex(pt(0, 64))
	v10 := b.vertex(pt(64, 0))
	v11 := b.vertex(pt(64, 64))
	v20 := b.vertex(pt(160, 0))
	v21 := b.vertex(pt(160, 64))

	b.link(v00, v01, left, sectormap.NoSector)
	b.link(v01, v11, left, sectormap.NoSector)
	b.link(v10, v11, right, left)
	b.link(v10, v00, left, sectormap.NoSector)
	b.link(v11, v21, right, sectormap.NoSector)
	b.link(v21, v20, right, sectormap.NoSector)
	b.link(v20, v10, right, sectormap.NoSector)
	return b.build()
}
