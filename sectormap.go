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

// Package sectormap converts the linedef graph of a Doom-format map into
// closed polygons, one set per sector plus the surrounding void, ordered
// for layered drawing.
//
// The input is a fully loaded [Map]: vertices, linedefs with front and back
// sector references, and the sector list. [Extractor.Extract] traces the
// boundary of every sector, resolves which loops are holes, and returns
// [Record] values in draw order. Each record carries a closed
// [path.Data] that can be filled directly by a vector renderer.
//
// Coordinates in the output have the Y axis flipped relative to the map, so
// that increasing Y points down on the page.
package sectormap

//go:generate go run ./testcases/export

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// NoSector marks the missing back side of a one-sided linedef.
const NoSector = -1

// Void is the region id of the unbounded space outside all sectors.
const Void = -1

// Map is the part of a level that the tracer needs.
type Map struct {
	// Vertices holds the map vertices in map units, with Y pointing up.
	Vertices []vec.Vec2

	// Linedefs holds the boundary segments between sectors.
	Linedefs []Linedef

	// Sectors holds one entry per sector. Linedefs refer to sectors by
	// index into this slice.
	Sectors []Sector
}

// Linedef is a boundary segment of the map.
type Linedef struct {
	A, B  int // start and end vertex
	Front int // sector on the right of A→B
	Back  int // sector on the left of A→B, or NoSector
}

// TwoSided reports whether the linedef has a back side.
func (l Linedef) TwoSided() bool {
	return l.Back != NoSector
}

// Sector holds the drawing attributes of a sector. The tracer itself only
// uses the number of sectors.
type Sector struct {
	Floor string // name of the floor flat
	Light int    // light level, 0-255
}

// Shade returns the brightness multiplier for the sector's light level.
// Light levels are bucketed in steps of eight, and the result is 1.5 for
// full brightness.
func (s Sector) Shade() float64 {
	level := float64(max(0, min(255, s.Light)) >> 3)
	return 1.5 * math.Pow(level/32, 2)
}

// Record is one polygon of the output, in draw order.
type Record struct {
	// Polygon is the closed outline: one MoveTo, a LineTo per further
	// point, and a Close.
	Polygon *path.Data

	// Points lists the outline vertices in drawing order. The last point
	// connects back to the first.
	Points []vec.Vec2

	// Region is the sector the outline belongs to, or Void.
	Region int

	// IsHole is set if the area enclosed by the outline does not belong to
	// Region. For Void records this means the enclosed area is void space
	// and has to be masked out.
	IsHole bool

	// Open is set if the traced boundary did not return to its start.
	Open bool

	// Punch is set for a solid record that lies inside a void hole. Its area
	// has to be made visible again in the void mask.
	Punch bool

	// Parent is the index of the innermost record enclosing this one,
	// or -1.
	Parent int

	// Linedefs lists the input linedefs along the outline, in order.
	Linedefs []int
}

// Solid reports whether the record is filled with its sector's floor.
func (r *Record) Solid() bool {
	return r.Region != Void && !r.IsHole
}
