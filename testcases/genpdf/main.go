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

// Command genpdf draws the sector outlines of every test fixture into a
// PDF file, for visual inspection of hole handling and draw order.
package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/tdewolff/argp"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/sectormap"
	"seehuhn.de/go/sectormap/testcases"
)

// GenPDF holds the command line options.
type GenPDF struct {
	Output string  `short:"o" default:"testdata/pdf" desc:"Output directory"`
	Border float64 `short:"b" default:"8" desc:"Border around the map, in map units"`
	Stroke float64 `short:"s" default:"0" desc:"Outline width in map units, 0 for none"`
	Slope  bool    `desc:"Use the slope rule at junctions"`
}

func main() {
	root := argp.NewCmd(&GenPDF{}, "Draw the sector map test fixtures as PDF files")
	root.Parse()
	root.PrintHelp()
}

func (cmd *GenPDF) Run() error {
	if err := os.MkdirAll(cmd.Output, 0755); err != nil {
		return err
	}

	x := sectormap.NewExtractor()
	if cmd.Slope {
		x.TieBreak = sectormap.TieBreakSlope
	}

	ctx := context.Background()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, fx := range testcases.All[category] {
			name := category + "_" + fx.Name
			records, err := x.Extract(ctx, fx.Map)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			pdfPath := filepath.Join(cmd.Output, name+".pdf")
			if err := cmd.generatePDF(fx.Map, records, pdfPath); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}

func (cmd *GenPDF) generatePDF(m *sectormap.Map, records []sectormap.Record, pdfPath string) error {
	b := sectormap.Bounds(records)
	width := b.URx - b.LLx + 2*cmd.Border
	height := b.URy - b.LLy + 2*cmd.Border
	paper := &pdf.Rectangle{
		URx: max(width, 1),
		URy: max(height, 1),
	}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// Record coordinates have Y pointing down; PDF has Y pointing up.
	page.Transform(matrix.Matrix{
		1, 0,
		0, -1,
		cmd.Border - b.LLx, height + b.LLy - cmd.Border,
	})

	for i := range records {
		rec := &records[i]
		switch {
		case rec.Solid():
			page.SetFillColor(color.DeviceGray(sectormap.Gray(m.Sectors[rec.Region])))
			drawPath(page, sectormap.FillPath(records, i))
			page.FillEvenOdd()
		case rec.Region == sectormap.Void && rec.IsHole:
			page.SetFillColor(color.DeviceGray(1))
			drawPath(page, rec.Polygon)
			page.Fill()
		}
	}

	if cmd.Stroke > 0 {
		page.SetStrokeColor(color.DeviceGray(0))
		page.SetLineWidth(cmd.Stroke)
		for i := range records {
			if records[i].Region == sectormap.Void {
				continue
			}
			drawPath(page, records[i].Polygon)
			page.Stroke()
		}
	}

	return page.Close()
}

// pathBuilder is the part of the PDF page API used for path construction.
type pathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
}

func drawPath(page pathBuilder, p *path.Data) {
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			page.MoveTo(p.Coords[k].X, p.Coords[k].Y)
			k++
		case path.CmdLineTo:
			page.LineTo(p.Coords[k].X, p.Coords[k].Y)
			k++
		case path.CmdQuadTo:
			k += 2
		case path.CmdCubeTo:
			k += 3
		case path.CmdClose:
			page.ClosePath()
		}
	}
}
