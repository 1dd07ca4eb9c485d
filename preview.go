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
	"image"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sectormap/raster"
)

// Preview draws extracted records into a grayscale image. Every sector is
// filled with a gray level derived from its light level.
//
// In mask mode void holes are cut out of the image as transparent pixels,
// and solid records marked Punch are made visible again. With an opaque
// background, void holes are painted white instead.
type Preview struct {
	// Border is the margin around the map, in map units.
	Border float64

	// Scale is the number of pixels per map unit.
	Scale float64

	// Stroke is the width of the outline drawn around every record, in
	// pixels. Zero disables outlines.
	Stroke float64

	// Background selects an opaque white background instead of the
	// transparency mask.
	Background bool

	// ctm maps output coordinates to pixels of the last rendered image.
	ctm matrix.Matrix
}

// NewPreview returns a Preview with an 8 unit border, one pixel per map
// unit, no outlines and a transparency mask.
func NewPreview() *Preview {
	return &Preview{
		Border: 8,
		Scale:  1,
	}
}

// Gray returns the gray level used for sector s, in [0, 1].
func Gray(s Sector) float64 {
	return min(1, s.Shade()/1.5)
}

// Bounds returns the bounding box of all record outlines, in output
// coordinates.
func Bounds(records []Record) rect.Rect {
	if len(records) == 0 {
		return rect.Rect{}
	}
	b := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for i := range records {
		for _, p := range records[i].Points {
			b.LLx = min(b.LLx, p.X)
			b.LLy = min(b.LLy, p.Y)
			b.URx = max(b.URx, p.X)
			b.URy = max(b.URy, p.Y)
		}
	}
	return b
}

// Render draws the records, which must be in draw order, for the sectors
// of m.
func (pv *Preview) Render(m *Map, records []Record) *image.NRGBA {
	scale := pv.Scale
	if scale <= 0 {
		scale = 1
	}
	b := Bounds(records)
	w := max(1, int(math.Ceil((b.URx-b.LLx+2*pv.Border)*scale)))
	h := max(1, int(math.Ceil((b.URy-b.LLy+2*pv.Border)*scale)))

	r := raster.NewRasteriser(rect.Rect{URx: float64(w), URy: float64(h)})
	ctm := matrix.Matrix{
		scale, 0,
		0, scale,
		(pv.Border - b.LLx) * scale, (pv.Border - b.LLy) * scale,
	}
	pv.ctm = ctm

	val := make([]float32, w*h)
	alpha := make([]float32, w*h)
	mask := make([]float32, w*h)
	for i := range mask {
		mask[i] = 1
	}

	paint := func(gray float32) func(y, xMin int, coverage []float32) {
		return func(y, xMin int, coverage []float32) {
			k := y*w + xMin
			for i, c := range coverage {
				val[k+i] = val[k+i]*(1-c) + gray*c
				alpha[k+i] = alpha[k+i]*(1-c) + c
			}
		}
	}
	setMask := func(to float32) func(y, xMin int, coverage []float32) {
		return func(y, xMin int, coverage []float32) {
			k := y*w + xMin
			for i, c := range coverage {
				mask[k+i] = mask[k+i]*(1-c) + to*c
			}
		}
	}

	for i := range records {
		rec := &records[i]
		r.CTM = ctm
		switch {
		case rec.Solid():
			gray := float32(0.5)
			if rec.Region < len(m.Sectors) {
				gray = float32(Gray(m.Sectors[rec.Region]))
			}
			r.FillEvenOdd(FillPath(records, i), paint(gray))
			if rec.Punch && !pv.Background {
				r.FillNonZero(rec.Polygon, setMask(1))
			}
		case rec.Region == Void && rec.IsHole:
			if pv.Background {
				r.FillNonZero(rec.Polygon, paint(1))
			} else {
				r.FillNonZero(rec.Polygon, setMask(0))
			}
		}

		if pv.Stroke > 0 && rec.Region != Void {
			r.Width = pv.Stroke / scale
			r.Stroke(rec.Polygon, paint(0))
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for k := range val {
		v, a := val[k], alpha[k]
		if pv.Background {
			v = v*a + 1 - a
			a = 1
		} else {
			a *= mask[k]
		}
		g := uint8(math.Round(float64(clamp01(v)) * 255))
		img.Pix[4*k+0] = g
		img.Pix[4*k+1] = g
		img.Pix[4*k+2] = g
		img.Pix[4*k+3] = uint8(math.Round(float64(clamp01(a)) * 255))
	}
	return img
}

// At returns the gray level and opacity of the pixel of img which covers
// the point p, in output coordinates. The image must be the result of the
// most recent call to Render.
func (pv *Preview) At(img *image.NRGBA, p vec.Vec2) (gray, alpha float64) {
	m := pv.ctm
	x := int(math.Floor(m[0]*p.X + m[2]*p.Y + m[4]))
	y := int(math.Floor(m[1]*p.X + m[3]*p.Y + m[5]))
	c := img.NRGBAAt(x, y)
	return float64(c.R) / 255, float64(c.A) / 255
}

// FillPath returns the outline of record i together with the outlines of
// all holes of the same region nested inside it. Filling the result with
// the even-odd rule covers exactly the area of the region.
func FillPath(records []Record, i int) *path.Data {
	rec := &records[i]
	res := &path.Data{
		Cmds:   slices.Clone(rec.Polygon.Cmds),
		Coords: slices.Clone(rec.Polygon.Coords),
	}
	for j := i + 1; j < len(records); j++ {
		h := &records[j]
		if !h.IsHole || h.Region != rec.Region || !descends(records, j, i) {
			continue
		}
		res.Cmds = append(res.Cmds, h.Polygon.Cmds...)
		res.Coords = append(res.Coords, h.Polygon.Coords...)
	}
	return res
}

// descends reports whether record j is nested, directly or indirectly,
// inside record i.
func descends(records []Record, j, i int) bool {
	for k := records[j].Parent; k >= 0; k = records[k].Parent {
		if k == i {
			return true
		}
	}
	return false
}

func clamp01(x float32) float32 {
	return max(0, min(1, x))
}
