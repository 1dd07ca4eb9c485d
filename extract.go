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
	"context"
	"log/slog"
)

// TieBreak selects how the tracer continues at a vertex where more than one
// unvisited edge of the region meets.
type TieBreak int

const (
	// TieBreakAngle takes the edge forming the smallest interior angle with
	// the current edge.
	TieBreakAngle TieBreak = iota

	// TieBreakSlope takes the edge with the steepest slope. This is faster,
	// but can join separate loops which meet at a vertex.
	TieBreakSlope
)

func (t TieBreak) String() string {
	switch t {
	case TieBreakAngle:
		return "angle"
	case TieBreakSlope:
		return "slope"
	default:
		return "unknown"
	}
}

// Extractor converts maps into ordered sector outlines.
//
// An Extractor reuses its internal buffers between calls to Extract.
// It is not safe for concurrent use.
type Extractor struct {
	// TieBreak selects the rule for choosing between edges at a junction.
	TieBreak TieBreak

	// MaxIterations bounds the number of traced chains per map. If this is
	// zero, four times the number of linedefs plus 16 is used.
	MaxIterations int

	// WarnOpen enables warnings for sector boundaries which do not close.
	WarnOpen bool

	edges   []edge
	adj     adjacency
	loops   []*loop
	visited []uint32
	stamp   uint32
}

// NewExtractor returns an Extractor with the default settings.
func NewExtractor() *Extractor {
	return &Extractor{
		TieBreak: TieBreakAngle,
		WarnOpen: true,
	}
}

// Extract traces all sector boundaries of m and returns them in draw order.
//
// If ctx is cancelled, Extract stops between two traced chains and returns
// ctx.Err() without any records.
func (x *Extractor) Extract(ctx context.Context, m *Map) ([]Record, error) {
	edges, err := preprocess(m, x.edges)
	if err != nil {
		return nil, err
	}
	x.edges = edges
	x.adj.reset(x.edges, len(m.Sectors))
	clear(x.loops)
	x.loops = x.loops[:0]

	if err := x.traceAll(ctx, len(m.Sectors)); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	x.classify()
	records := x.order(x.relate())

	Logger().Debug("extracted outlines",
		slog.Int("linedefs", len(m.Linedefs)),
		slog.Int("loops", len(x.loops)),
		slog.Int("records", len(records)))
	return records, nil
}

// Extract traces the sector boundaries of m using a new Extractor with the
// default settings.
func Extract(ctx context.Context, m *Map) ([]Record, error) {
	return NewExtractor().Extract(ctx, m)
}
