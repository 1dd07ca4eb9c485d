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
	"math"

	"seehuhn.de/go/geom/vec"
)

// edge is a linedef with the geometry needed for tracing. The index of an
// edge in Extractor.edges equals the index of its linedef.
type edge struct {
	a, b   int      // canonical vertex ids
	pa, pb vec.Vec2 // endpoint positions, Y pointing down

	front int
	back  int // Void for one-sided linedefs

	top, bottom float64 // min and max Y
	left, right float64 // min and max X

	angle  float64 // direction of A→B in [0, 2π)
	slope  float64 // Δy/Δx, +Inf for vertical edges
	length float64
	lenSq  float64
}

// traced reports whether the edge takes part in tracing. Linedefs with the
// same sector on both sides do not separate anything.
func (e *edge) traced() bool {
	return e.front != e.back
}

// other returns the endpoint of e which is not v.
func (e *edge) other(v int) int {
	if v == e.a {
		return e.b
	}
	return e.a
}

// pos returns the position of endpoint v.
func (e *edge) pos(v int) vec.Vec2 {
	if v == e.a {
		return e.pa
	}
	return e.pb
}

func (e *edge) vertical() bool {
	return math.IsInf(e.slope, 1)
}

// xAt returns the X coordinate where e crosses the horizontal line at y.
// The edge must not be horizontal.
func (e *edge) xAt(y float64) float64 {
	if e.vertical() {
		return e.pa.X
	}
	return e.pa.X + (y-e.pa.Y)*(e.pb.X-e.pa.X)/(e.pb.Y-e.pa.Y)
}

// preprocess validates the map and computes the derived edge geometry.
// The edges slice is reused if it has enough capacity.
func preprocess(m *Map, edges []edge) ([]edge, error) {
	nv := len(m.Vertices)
	ns := len(m.Sectors)

	// Flip the Y axis once, and map every vertex to the first vertex with
	// the same position.
	pts := make([]vec.Vec2, nv)
	canon := make([]int, nv)
	seen := make(map[vec.Vec2]int, nv)
	for i, v := range m.Vertices {
		p := vec.Vec2{X: v.X, Y: -v.Y}
		if p.Y == 0 {
			p.Y = 0 // avoid -0 in the output
		}
		pts[i] = p
		if j, ok := seen[p]; ok {
			canon[i] = j
		} else {
			seen[p] = i
			canon[i] = i
		}
	}

	edges = edges[:0]
	for i, l := range m.Linedefs {
		if l.A < 0 || l.A >= nv || l.B < 0 || l.B >= nv {
			return nil, fmt.Errorf("linedef %d: vertex %d/%d of %d: %w",
				i, l.A, l.B, nv, ErrBadReference)
		}
		if l.Front < 0 || l.Front >= ns {
			return nil, fmt.Errorf("linedef %d: front sector %d of %d: %w",
				i, l.Front, ns, ErrBadReference)
		}
		back := Void
		if l.TwoSided() {
			if l.Back < 0 || l.Back >= ns {
				return nil, fmt.Errorf("linedef %d: back sector %d of %d: %w",
					i, l.Back, ns, ErrBadReference)
			}
			back = l.Back
		}

		pa, pb := pts[l.A], pts[l.B]
		dx := pb.X - pa.X
		dy := pb.Y - pa.Y

		angle := math.Atan2(dy, dx)
		if angle < 0 {
			angle += 2 * math.Pi
		}
		if angle >= 2*math.Pi {
			angle = 0
		}
		slope := math.Inf(1)
		if dx != 0 {
			slope = dy / dx
		}
		lenSq := dx*dx + dy*dy

		edges = append(edges, edge{
			a:      canon[l.A],
			b:      canon[l.B],
			pa:     pa,
			pb:     pb,
			front:  l.Front,
			back:   back,
			top:    min(pa.Y, pb.Y),
			bottom: max(pa.Y, pb.Y),
			left:   min(pa.X, pb.X),
			right:  max(pa.X, pb.X),
			angle:  angle,
			slope:  slope,
			length: math.Sqrt(lenSq),
			lenSq:  lenSq,
		})
	}
	return edges, nil
}
