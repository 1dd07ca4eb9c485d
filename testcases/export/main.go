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

// Command export writes the test fixtures and the extracted records to
// JSON, and the records of every fixture to a GeoJSON file.
// Run from the module root directory.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tdewolff/argp"

	"seehuhn.de/go/sectormap"
	"seehuhn.de/go/sectormap/testcases"
)

// Export holds the command line options.
type Export struct {
	Output string `short:"o" default:"testdata" desc:"Output directory"`
	Slope  bool   `desc:"Use the slope rule at junctions"`
}

func main() {
	root := argp.NewCmd(&Export{}, "Export the sector map test fixtures as JSON and GeoJSON")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Export) Run() error {
	geoDir := filepath.Join(cmd.Output, "geojson")
	if err := os.MkdirAll(geoDir, 0755); err != nil {
		return err
	}

	x := sectormap.NewExtractor()
	if cmd.Slope {
		x.TieBreak = sectormap.TieBreakSlope
	}

	var out struct {
		Fixtures []jsonFixture `json:"fixtures"`
	}
	ctx := context.Background()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, fx := range testcases.All[category] {
			name := category + "_" + fx.Name
			records, err := x.Extract(ctx, fx.Map)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			out.Fixtures = append(out.Fixtures, toJSON(name, fx.Map, records))

			data, err := toGeoJSON(records).MarshalJSON()
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			err = os.WriteFile(filepath.Join(geoDir, name+".geojson"), data, 0644)
			if err != nil {
				return err
			}
		}
	}

	return writeJSON(filepath.Join(cmd.Output, "fixtures.json"), out)
}

// writeJSON writes v as indented JSON to the named file.
func writeJSON(fname string, v any) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	err = enc.Encode(v)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	return nil
}

type jsonFixture struct {
	Name     string       `json:"name"`
	Vertices [][2]float64 `json:"vertices"`
	Linedefs [][4]int     `json:"linedefs"`
	Sectors  []jsonSector `json:"sectors"`
	Records  []jsonRecord `json:"records"`
}

type jsonSector struct {
	Floor string `json:"floor"`
	Light int    `json:"light"`
}

type jsonRecord struct {
	Region   int          `json:"region"`
	Hole     bool         `json:"hole,omitempty"`
	Open     bool         `json:"open,omitempty"`
	Punch    bool         `json:"punch,omitempty"`
	Parent   int          `json:"parent"`
	Linedefs []int        `json:"linedefs"`
	Points   [][2]float64 `json:"points"`
}

func toJSON(name string, m *sectormap.Map, records []sectormap.Record) jsonFixture {
	jf := jsonFixture{Name: name}
	for _, v := range m.Vertices {
		jf.Vertices = append(jf.Vertices, [2]float64{v.X, v.Y})
	}
	for _, l := range m.Linedefs {
		jf.Linedefs = append(jf.Linedefs, [4]int{l.A, l.B, l.Front, l.Back})
	}
	for _, s := range m.Sectors {
		jf.Sectors = append(jf.Sectors, jsonSector{Floor: s.Floor, Light: s.Light})
	}
	for _, r := range records {
		jr := jsonRecord{
			Region:   r.Region,
			Hole:     r.IsHole,
			Open:     r.Open,
			Punch:    r.Punch,
			Parent:   r.Parent,
			Linedefs: r.Linedefs,
		}
		for _, p := range r.Points {
			jr.Points = append(jr.Points, [2]float64{p.X, p.Y})
		}
		jf.Records = append(jf.Records, jr)
	}
	return jf
}

// toGeoJSON converts the records to polygon features. The Y axis is
// flipped back to map orientation.
func toGeoJSON(records []sectormap.Record) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, r := range records {
		ring := make(orb.Ring, 0, len(r.Points)+1)
		for _, p := range r.Points {
			ring = append(ring, orb.Point{p.X, -p.Y})
		}
		ring = append(ring, ring[0])

		f := geojson.NewFeature(orb.Polygon{ring})
		f.Properties["index"] = i
		f.Properties["region"] = r.Region
		f.Properties["hole"] = r.IsHole
		f.Properties["punch"] = r.Punch
		f.Properties["parent"] = r.Parent
		fc.Append(f)
	}
	return fc
}
