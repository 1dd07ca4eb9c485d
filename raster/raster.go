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

// Package raster computes anti-aliased pixel coverage for polygons.
//
// The rasteriser accumulates, for every pixel, the signed vertical extent
// of the polygon edges crossing the pixel (cover) and the part of that
// extent to the right of the crossing (area). Integrating cover from left
// to right along a scanline gives the signed area of the polygon inside
// each pixel.
//
// Curves in the input are replaced by their chords. Sector outlines only
// contain straight segments.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// segment is a non-horizontal polygon edge in device coordinates.
type segment struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

func (s *segment) top() float64    { return min(s.y0, s.y1) }
func (s *segment) bottom() float64 { return max(s.y0, s.y1) }

// Rasteriser converts polygons to pixel coverage values.
// Internal buffers grow as needed and are reused between calls.
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space.
	CTM matrix.Matrix

	// Clip is the output region in device coordinates. The coordinates
	// must be integers.
	Clip rect.Rect

	// Width is the line width for Stroke, in user space units.
	Width float64

	segs      []segment
	active    []int
	cover     []float32
	area      []float32
	crossings []float64

	devMin, devMax vec.Vec2
}

// NewRasteriser returns a Rasteriser for the given clip rectangle, with
// the identity transformation and unit line width.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:   matrix.Identity,
		Clip:  clip,
		Width: 1,
	}
}

// Reset restores the default settings for a new clip rectangle, keeping
// the allocated buffers.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Width = 1
	r.segs = r.segs[:0]
	r.active = r.active[:0]
}

// FillNonZero fills p using the nonzero winding rule.
//
// Coverage values are passed to emit one scanline at a time, starting at
// pixel column xMin. The coverage slice is only valid during the call.
func (r *Rasteriser) FillNonZero(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.begin()
	r.addPath(p)
	r.render(nonZero, emit)
}

// FillEvenOdd fills p using the even-odd rule.
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.begin()
	r.addPath(p)
	r.render(evenOdd, emit)
}

type fillRule int

const (
	nonZero fillRule = iota
	evenOdd
)

func (r *Rasteriser) begin() {
	r.segs = r.segs[:0]
	r.devMin = vec.Vec2{X: math.Inf(1), Y: math.Inf(1)}
	r.devMax = vec.Vec2{X: math.Inf(-1), Y: math.Inf(-1)}
}

// addPath adds the edges of all subpaths of p. Open subpaths are closed
// implicitly.
func (r *Rasteriser) addPath(p *path.Data) {
	var cur, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if cur != start {
				r.addLine(cur, start)
			}
			cur = p.Coords[k]
			start = cur
			k++
		case path.CmdLineTo:
			r.addLine(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.addLine(cur, p.Coords[k+1])
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.addLine(cur, p.Coords[k+2])
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			r.addLine(cur, start)
			cur = start
		}
	}
	if cur != start {
		r.addLine(cur, start)
	}
}

// addLine adds the edge from p to q, given in user space.
func (r *Rasteriser) addLine(p, q vec.Vec2) {
	a := r.device(p)
	b := r.device(q)
	dy := b.Y - a.Y
	if math.Abs(dy) < 1e-10 {
		return
	}
	r.segs = append(r.segs, segment{
		x0: a.X, y0: a.Y,
		x1: b.X, y1: b.Y,
		dxdy: (b.X - a.X) / dy,
	})
	r.devMin.X = min(r.devMin.X, a.X, b.X)
	r.devMin.Y = min(r.devMin.Y, a.Y, b.Y)
	r.devMax.X = max(r.devMax.X, a.X, b.X)
	r.devMax.Y = max(r.devMax.Y, a.Y, b.Y)
}

func (r *Rasteriser) device(p vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// render scans the collected edges with an active edge list.
func (r *Rasteriser) render(rule fillRule, emit func(y, xMin int, coverage []float32)) {
	if len(r.segs) == 0 {
		return
	}
	xMin := max(int(math.Floor(r.devMin.X)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.devMax.X))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.devMin.Y)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.devMax.Y))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.segs, func(a, b segment) int {
		return cmp.Compare(a.top(), b.top())
	})
	r.active = r.active[:0]
	next := 0

	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		for next < len(r.segs) && r.segs[next].top() < yf+1 {
			r.active = append(r.active, next)
			next++
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			s := &r.segs[r.active[i]]
			if s.bottom() <= yf {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			if r.accumulate(s, y, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrate(r.cover, r.area, rule)
		if row, offset := trimZeros(r.cover); row != nil {
			emit(y, xMin+offset, row)
		}
	}
}

// accumulate adds the part of s inside scanline y to the cover and area
// buffers, which start at pixel column xMin. Contributions left of the
// buffer are folded into the first column.
func (r *Rasteriser) accumulate(s *segment, y, xMin, xMax int) bool {
	yTop := max(float64(y), s.top())
	yBot := min(float64(y+1), s.bottom())
	if yBot <= yTop {
		return false
	}

	sign := float32(1)
	if s.y1 < s.y0 {
		sign = -1
	}

	xa := s.x0 + s.dxdy*(yTop-s.y0)
	xb := s.x0 + s.dxdy*(yBot-s.y0)
	left := int(math.Floor(min(xa, xb)))
	right := int(math.Floor(max(xa, xb)))
	if left >= xMax {
		return false
	}

	// split the piece where it crosses pixel column boundaries
	r.crossings = append(r.crossings[:0], yTop, yBot)
	if left != right {
		for x := left + 1; x <= right; x++ {
			yx := s.y0 + (float64(x)-s.x0)/s.dxdy
			if yx > yTop && yx < yBot {
				r.crossings = append(r.crossings, yx)
			}
		}
		slices.Sort(r.crossings)
	}

	for i := 1; i < len(r.crossings); i++ {
		y0, y1 := r.crossings[i-1], r.crossings[i]
		if y1 <= y0 {
			continue
		}
		c := sign * float32(y1-y0)
		xm := s.x0 + s.dxdy*((y0+y1)/2-s.y0)
		pix := int(math.Floor(xm))
		switch {
		case pix < xMin:
			r.cover[0] += c
			r.area[0] += c
		case pix < xMax:
			frac := xm - float64(pix)
			r.cover[pix-xMin] += c
			r.area[pix-xMin] += c * float32(1-frac)
		}
	}
	return true
}

// integrate turns the accumulated cover and area values of a scanline into
// coverage values in [0, 1], in place.
func integrate(cover, area []float32, rule fillRule) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		switch rule {
		case evenOdd:
			v -= 2 * float32(int(v/2))
			if v > 1 {
				v = 2 - v
			}
		default:
			v = min(v, 1)
		}
		cover[i] = v
	}
}

// trimZeros returns the part of coverage between the first and last
// non-zero value, and the offset of its start.
func trimZeros(coverage []float32) ([]float32, int) {
	lo := 0
	for lo < len(coverage) && coverage[lo] == 0 {
		lo++
	}
	if lo == len(coverage) {
		return nil, 0
	}
	hi := len(coverage)
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}
