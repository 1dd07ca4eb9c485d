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

package sectormap_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/tdewolff/test"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sectormap"
	"seehuhn.de/go/sectormap/testcases"
)

// forAll runs fn as a subtest for every fixture.
func forAll(t *testing.T, fn func(t *testing.T, fx testcases.Fixture)) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, fx := range testcases.All[category] {
			t.Run(category+"_"+fx.Name, func(t *testing.T) {
				fn(t, fx)
			})
		}
	}
}

func extract(t *testing.T, m *sectormap.Map) []sectormap.Record {
	t.Helper()
	records, err := sectormap.Extract(context.Background(), m)
	if err != nil {
		t.Fatal(err)
	}
	return records
}

func TestFixtures(t *testing.T) {
	forAll(t, func(t *testing.T, fx testcases.Fixture) {
		records := extract(t, fx.Map)

		var solid, holes, punched int
		for i := range records {
			if records[i].Solid() {
				solid++
			}
			if records[i].IsHole {
				holes++
			}
			if records[i].Punch {
				punched++
			}
		}
		test.T(t, len(records), fx.Records, "records")
		test.T(t, solid, fx.Solid, "solid")
		test.T(t, holes, fx.Holes, "holes")
		test.T(t, punched, fx.Punched, "punched")
	})
}

// TestOutlineShape checks that every record has a well formed outline.
func TestOutlineShape(t *testing.T) {
	forAll(t, func(t *testing.T, fx testcases.Fixture) {
		records := extract(t, fx.Map)
		for i := range records {
			rec := &records[i]
			n := len(rec.Points)
			test.That(t, n >= 3, "record", i, "has", n, "points")
			test.T(t, len(rec.Linedefs), n-1+boolInt(!rec.Open), "linedefs of record", i)

			p := rec.Polygon
			test.T(t, len(p.Cmds), n+1, "commands of record", i)
			test.T(t, len(p.Coords), n, "coordinates of record", i)
			test.T(t, p.Coords[0], rec.Points[0])

			test.That(t, rec.Parent < i, "parent of record", i, "is drawn later")
			if rec.Punch {
				test.That(t, rec.Solid(), "punched record", i, "is not solid")
			}
		}
	})
}

// TestClosure checks that consecutive linedefs of a closed outline connect
// the consecutive outline points.
func TestClosure(t *testing.T) {
	forAll(t, func(t *testing.T, fx testcases.Fixture) {
		m := fx.Map
		records := extract(t, m)
		for i := range records {
			rec := &records[i]
			if rec.Open {
				continue
			}
			n := len(rec.Points)
			for k, l := range rec.Linedefs {
				a := flip(m.Vertices[m.Linedefs[l].A])
				b := flip(m.Vertices[m.Linedefs[l].B])
				p, q := rec.Points[k], rec.Points[(k+1)%n]
				ok := a == p && b == q || a == q && b == p
				test.That(t, ok, "record", i, "linedef", l, "does not join", p, q)
			}
		}
	})
}

type side struct{ region, linedef int }

// dropped lists the linedef sides which are missing from the output of a
// fixture: unconnected linedefs, and the void side of a void hole nested
// in another void hole.
var dropped = map[string][]side{
	"stray_right": {{0, testcases.StrayLinedef}, {sectormap.Void, testcases.StrayLinedef}},
	"stray_left":  {{0, testcases.StrayLinedef}, {sectormap.Void, testcases.StrayLinedef}},
	"nested_void": {{sectormap.Void, 8}, {sectormap.Void, 9}, {sectormap.Void, 10}, {sectormap.Void, 11}},
}

// TestPartition checks that every side of a linedef is used by exactly one
// record of the region on that side.
func TestPartition(t *testing.T) {
	forAll(t, func(t *testing.T, fx testcases.Fixture) {
		m := fx.Map
		records := extract(t, m)

		seen := make(map[side]int)
		for i := range records {
			rec := &records[i]
			for _, l := range rec.Linedefs {
				ld := m.Linedefs[l]
				back := sectormap.Void
				if ld.TwoSided() {
					back = ld.Back
				}
				test.That(t, rec.Region == ld.Front || rec.Region == back,
					"linedef", l, "in record", i, "of region", rec.Region)
				test.That(t, ld.Front != back, "linedef", l, "has the same sector on both sides")

				s := side{rec.Region, l}
				if j, dup := seen[s]; dup {
					t.Errorf("linedef %d used by records %d and %d", l, j, i)
				}
				seen[s] = i
			}
		}

		for l, ld := range m.Linedefs {
			back := sectormap.Void
			if ld.TwoSided() {
				back = ld.Back
			}
			if ld.Front == back {
				continue
			}
			for _, region := range []int{ld.Front, back} {
				s := side{region, l}
				_, used := seen[s]
				want := !slices.Contains(dropped[fx.Name], s)
				test.T(t, used, want, "linedef", l, "region", region)
			}
		}
	})
}

func TestDeterministic(t *testing.T) {
	x := sectormap.NewExtractor()
	forAll(t, func(t *testing.T, fx testcases.Fixture) {
		a := extract(t, fx.Map)
		b, err := x.Extract(context.Background(), fx.Map)
		test.Error(t, err)
		c, err := x.Extract(context.Background(), fx.Map)
		test.Error(t, err)
		test.That(t, reflect.DeepEqual(a, b), "fresh and reused extractor differ")
		test.That(t, reflect.DeepEqual(b, c), "repeated runs differ")
	})
}

func TestSquare(t *testing.T) {
	records := extract(t, testcases.Square())
	test.T(t, len(records), 2)

	void, room := records[0], records[1]
	test.T(t, void.Region, sectormap.Void)
	test.That(t, !void.IsHole)
	test.T(t, void.Parent, -1)

	test.T(t, room.Region, 0)
	test.That(t, room.Solid())
	test.T(t, room.Parent, 0)
	test.T(t, len(room.Points), 4)

	b := sectormap.Bounds(records)
	test.Float(t, b.LLx, 0)
	test.Float(t, b.LLy, -64)
	test.Float(t, (b.URx-b.LLx)*(b.URy-b.LLy), 4096)
}

func TestDonut(t *testing.T) {
	m := testcases.Donut()
	records := extract(t, m)

	hole := -1
	for i := range records {
		if records[i].IsHole {
			test.T(t, hole, -1, "more than one hole")
			hole = i
		}
	}
	if hole < 0 {
		t.Fatal("no hole found")
	}

	h := &records[hole]
	test.T(t, h.Region, 0)
	test.That(t, h.Parent >= 0)
	outer := h.Parent
	test.T(t, records[outer].Region, 0)
	test.That(t, records[outer].Solid())

	// the inner sector is drawn after the hole of the outer one
	inner := -1
	for i := range records {
		if records[i].Region == 1 {
			inner = i
		}
	}
	test.That(t, inner > hole)
	test.T(t, records[inner].Parent, hole)

	fill := sectormap.FillPath(records, outer)
	test.T(t, len(fill.Cmds), len(records[outer].Polygon.Cmds)+len(h.Polygon.Cmds))
}

func TestTwoRooms(t *testing.T) {
	records := extract(t, testcases.TwoRooms())
	test.T(t, len(records), 3)
	test.T(t, records[0].Region, sectormap.Void)
	test.T(t, len(records[0].Points), 6)
	for _, rec := range records[1:] {
		test.That(t, rec.Solid())
		test.T(t, rec.Parent, 0)
		test.That(t, slices.Contains(rec.Linedefs, 2), "shared linedef missing")
	}
}

func TestIgnoredLinedefs(t *testing.T) {
	cases := []struct {
		name    string
		m       *sectormap.Map
		linedef int
	}{
		{"diagonal", testcases.Diagonal(), testcases.DiagonalLinedef},
		{"stray_right", testcases.Stray(200), testcases.StrayLinedef},
		{"stray_left", testcases.Stray(-50), testcases.StrayLinedef},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			records := extract(t, c.m)
			for i := range records {
				test.That(t, !slices.Contains(records[i].Linedefs, c.linedef),
					"record", i, "uses linedef", c.linedef)
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	records := extract(t, &sectormap.Map{})
	test.T(t, len(records), 0)
}

func TestCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, err := sectormap.Extract(ctx, testcases.Grid(4))
	test.That(t, errors.Is(err, context.Canceled), "got", err)
	test.That(t, records == nil)
}

func TestBadReference(t *testing.T) {
	cases := map[string]sectormap.Linedef{
		"vertex":      {A: 0, B: 7, Front: 0, Back: sectormap.NoSector},
		"negative":    {A: -1, B: 1, Front: 0, Back: sectormap.NoSector},
		"front":       {A: 0, B: 1, Front: 3, Back: sectormap.NoSector},
		"back":        {A: 0, B: 1, Front: 0, Back: 2},
		"front_unset": {A: 0, B: 1, Front: sectormap.NoSector, Back: 0},
	}
	for name, ld := range cases {
		t.Run(name, func(t *testing.T) {
			m := &sectormap.Map{
				Vertices: []vec.Vec2{{X: 0, Y: 0}, {X: 0, Y: 64}},
				Linedefs: []sectormap.Linedef{ld},
				Sectors:  []sectormap.Sector{{Floor: "FLAT1", Light: 160}},
			}
			_, err := sectormap.Extract(context.Background(), m)
			test.That(t, errors.Is(err, sectormap.ErrBadReference), "got", err)
		})
	}
}

func TestIterationLimit(t *testing.T) {
	x := sectormap.NewExtractor()
	x.MaxIterations = 1
	_, err := x.Extract(context.Background(), testcases.Donut())
	test.That(t, errors.Is(err, sectormap.ErrMalformed), "got", err)

	// the extractor is usable after a failure
	x.MaxIterations = 0
	records, err := x.Extract(context.Background(), testcases.Donut())
	test.Error(t, err)
	test.T(t, len(records), 4)
}

func TestTieBreak(t *testing.T) {
	test.T(t, sectormap.TieBreakAngle.String(), "angle")
	test.T(t, sectormap.TieBreakSlope.String(), "slope")

	m := testcases.Bowtie()

	x := sectormap.NewExtractor()
	records, err := x.Extract(context.Background(), m)
	test.Error(t, err)
	test.T(t, len(records), 4)
	for i := range records {
		test.T(t, len(records[i].Linedefs), 3, "record", i)
	}

	// The slope rule continues through the junction and joins both
	// triangles of the sector into one outline.
	x.TieBreak = sectormap.TieBreakSlope
	records, err = x.Extract(context.Background(), m)
	test.Error(t, err)
	test.T(t, len(records), 3)
	joined := 0
	for i := range records {
		if records[i].Region == 0 && len(records[i].Linedefs) == 6 {
			joined++
		}
	}
	test.T(t, joined, 1)
}

func TestOpenBoundary(t *testing.T) {
	var buf bytes.Buffer
	sectormap.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer sectormap.SetLogger(nil)

	records := extract(t, testcases.Open())
	test.T(t, len(records), 2)
	for i := range records {
		test.That(t, records[i].Open, "record", i, "is not marked open")
	}
	test.That(t, strings.Contains(buf.String(), "open sector boundary"), buf.String())
	test.That(t, strings.Contains(buf.String(), "region=0"), buf.String())

	buf.Reset()
	x := sectormap.NewExtractor()
	x.WarnOpen = false
	_, err := x.Extract(context.Background(), testcases.Open())
	test.Error(t, err)
	test.T(t, buf.Len(), 0)
}

func TestLogger(t *testing.T) {
	ctx := context.Background()
	test.That(t, sectormap.Logger() != nil)
	test.That(t, !sectormap.Logger().Enabled(ctx, slog.LevelError))

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sectormap.SetLogger(l)
	test.That(t, sectormap.Logger() == l)

	extract(t, testcases.Square())
	test.That(t, strings.Contains(buf.String(), "extracted outlines"), buf.String())

	sectormap.SetLogger(nil)
	test.That(t, sectormap.Logger() != nil)
	test.That(t, !sectormap.Logger().Enabled(ctx, slog.LevelError))
}

func TestShade(t *testing.T) {
	test.Float(t, sectormap.Sector{Light: 0}.Shade(), 0)
	test.Float(t, sectormap.Sector{Light: 128}.Shade(), 0.375)
	test.Float(t, sectormap.Sector{Light: 1000}.Shade(), sectormap.Sector{Light: 255}.Shade())
	test.Float(t, sectormap.Gray(sectormap.Sector{Light: 255}), 961.0/1024)
}

func flip(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: v.X, Y: -v.Y}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
