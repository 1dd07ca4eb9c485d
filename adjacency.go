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
	"cmp"
	"slices"
)

// regionPool holds the edges of one region which are not yet part of a loop.
type regionPool struct {
	order    []int         // edge ids in start order
	head     int           // entries before head are all retired
	atVertex map[int][]int // vertex id -> live edge ids, in insertion order
	count    int           // number of live edges
}

// adjacency indexes the traced edges by region and by endpoint.
// Pool i belongs to region i, the last pool belongs to Void.
type adjacency struct {
	edges []edge
	pools []regionPool

	// live[e][0] is set while edge e is in the pool of its front region,
	// live[e][1] while it is in the pool of its back region.
	live [][2]bool
}

// reset rebuilds the index for the given edges and number of sectors.
// Slices from earlier runs are reused.
func (a *adjacency) reset(edges []edge, numSectors int) {
	a.edges = edges

	n := numSectors + 1
	if cap(a.pools) < n {
		a.pools = make([]regionPool, n)
	}
	a.pools = a.pools[:n]
	for i := range a.pools {
		p := &a.pools[i]
		p.order = p.order[:0]
		p.head = 0
		p.count = 0
		if p.atVertex == nil {
			p.atVertex = make(map[int][]int)
		} else {
			clear(p.atVertex)
		}
	}

	if cap(a.live) < len(edges) {
		a.live = make([][2]bool, len(edges))
	}
	a.live = a.live[:len(edges)]
	clear(a.live)

	for i := range edges {
		e := &edges[i]
		if !e.traced() {
			continue
		}
		a.add(e.front, i)
		a.add(e.back, i)
	}
}

func (a *adjacency) pool(region int) *regionPool {
	if region == Void {
		return &a.pools[len(a.pools)-1]
	}
	return &a.pools[region]
}

// side returns the index into live for edge e as seen from region,
// or -1 if the edge does not border the region.
func (a *adjacency) side(region, e int) int {
	switch region {
	case a.edges[e].front:
		return 0
	case a.edges[e].back:
		return 1
	}
	return -1
}

// add inserts edge e into the pool of region.
func (a *adjacency) add(region, e int) {
	s := a.side(region, e)
	if s < 0 || a.live[e][s] {
		return
	}
	a.live[e][s] = true

	p := a.pool(region)
	p.order = append(p.order, e)
	p.count++
	ed := &a.edges[e]
	p.atVertex[ed.a] = append(p.atVertex[ed.a], e)
	if ed.b != ed.a {
		p.atVertex[ed.b] = append(p.atVertex[ed.b], e)
	}
}

// has reports whether edge e is still in the pool of region.
func (a *adjacency) has(region, e int) bool {
	s := a.side(region, e)
	return s >= 0 && a.live[e][s]
}

// remove takes edge e out of the pool of region. Removing an edge which
// is not in the pool has no effect.
func (a *adjacency) remove(region, e int) {
	s := a.side(region, e)
	if s < 0 || !a.live[e][s] {
		return
	}
	a.live[e][s] = false

	p := a.pool(region)
	p.count--
	ed := &a.edges[e]
	for _, v := range [2]int{ed.a, ed.b} {
		list, ok := p.atVertex[v]
		if !ok {
			continue
		}
		list = slices.DeleteFunc(list, func(x int) bool { return x == e })
		if len(list) == 0 {
			delete(p.atVertex, v)
		} else {
			p.atVertex[v] = list
		}
	}
}

// touching returns the live edges of region which end at vertex v.
// The returned slice must not be modified.
func (a *adjacency) touching(region, v int) []int {
	return a.pool(region).atVertex[v]
}

// remaining returns the number of live edges in the pool of region.
func (a *adjacency) remaining(region int) int {
	return a.pool(region).count
}

// first returns the first live edge of region in start order, or -1.
func (a *adjacency) first(region int) int {
	p := a.pool(region)
	for p.head < len(p.order) {
		e := p.order[p.head]
		if a.has(region, e) {
			return e
		}
		p.head++
	}
	return -1
}

// sort puts the pool of region into start order: leftmost extent, topmost
// extent, direction, and finally edge index.
func (a *adjacency) sort(region int) {
	p := a.pool(region)
	slices.SortStableFunc(p.order[p.head:], func(i, j int) int {
		ei, ej := &a.edges[i], &a.edges[j]
		return cmp.Or(
			cmp.Compare(ei.left, ej.left),
			cmp.Compare(ei.top, ej.top),
			cmp.Compare(ei.angle, ej.angle),
			cmp.Compare(i, j),
		)
	})
}
