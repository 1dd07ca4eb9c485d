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

import "errors"

var (
	// ErrBadReference is returned when a linedef refers to a vertex or
	// sector that does not exist.
	ErrBadReference = errors.New("sectormap: reference out of range")

	// ErrMalformed is returned when the linedef graph of a sector cannot be
	// consumed within the iteration limit.
	ErrMalformed = errors.New("sectormap: malformed linedef graph")
)
