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
	"fmt"
	"log/slog"
)

// traceAll consumes the pools of all sectors, then the void pool, and
// collects the resulting loops in x.loops.
func (x *Extractor) traceAll(ctx context.Context, numSectors int) error {
	limit := x.MaxIterations
	if limit <= 0 {
		limit = 4*len(x.edges) + 16
	}

	log := Logger()
	iterations := 0
	for r := 0; r <= numSectors; r++ {
		region := r
		if r == numSectors {
			region = Void
		}

		x.adj.sort(region)
		if log.Enabled(ctx, slog.LevelDebug) {
			log.Debug("tracing region",
				slog.Int("region", region),
				slog.Int("edges", x.adj.remaining(region)))
		}

		for x.adj.remaining(region) >= 2 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			iterations++
			if iterations > limit {
				return fmt.Errorf("region %d: more than %d iterations: %w",
					region, limit, ErrMalformed)
			}

			start := x.adj.first(region)
			if start < 0 {
				return fmt.Errorf("region %d: pool count out of sync: %w",
					region, ErrMalformed)
			}
			l, err := x.trace(region, start)
			if err != nil {
				return err
			}
			x.retire(region, l.edges)

			if len(l.edges) < 3 {
				log.Debug("dropping short chain",
					slog.Int("region", region),
					slog.Int("linedef", start),
					slog.Int("edges", len(l.edges)))
				continue
			}
			if x.known(l) {
				log.Debug("dropping duplicate loop",
					slog.Int("region", region),
					slog.Int("linedef", start))
				continue
			}
			x.loops = append(x.loops, l)
		}
	}
	return nil
}

// retire removes the edges of a traced chain from the pool of the region
// the chain was traced for. The pool on the other side of each edge keeps
// the edge, since it still has to be traced as part of that region's
// boundary.
//
// The chain is not retired from the region found inside the loop either.
// For the inner boundary of a donut that region is the inner sector, whose
// pool would lose its whole outline before it is traced.
func (x *Extractor) retire(region int, chain []int) {
	for _, e := range chain {
		x.adj.remove(region, e)
	}
}

// known reports whether a loop equal to l has already been kept.
func (x *Extractor) known(l *loop) bool {
	for _, m := range x.loops {
		if m.equal(l) {
			return true
		}
	}
	return false
}
