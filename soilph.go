/*
Copyright © 2021 the GlobalSoilpH authors.
This file is part of GlobalSoilpH.

GlobalSoilpH is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GlobalSoilpH is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GlobalSoilpH.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package soilph implements the numerical core of a global analysis of
// soil pH: great-circle geodesy on an equal-angle grid, spatially
// weighted bootstrap resampling of soil profile observations, and the
// data model shared by the analysis tools.
package soilph

import (
	"fmt"
	"math"
)

// coordTolerance is the maximum allowed difference (degrees) between a
// profile's coordinates and the center of the grid cell it claims to
// fall in.
const coordTolerance = 1.e-6

// A GridCell is one cell of a fixed global equal-angle
// latitude/longitude grid. Lon and Lat give the coordinates of the cell
// center in decimal degrees.
type GridCell struct {
	// Index uniquely identifies this cell within its grid.
	Index int

	Lon, Lat float64

	// Land reports whether the cell center is on land.
	Land bool
}

// A Grid holds the metadata for a global equal-angle grid. It is
// immutable reference data: loaded once and never changed afterward.
type Grid struct {
	// Resolution is the angular width (degrees) of each cell. Cells are
	// square in degrees, not in kilometers. It must match the actual
	// spacing of the cells or areas and search distances will silently
	// misrepresent the truth.
	Resolution float64

	Cells []*GridCell
}

// Check validates the grid metadata. It must be called once after the
// grid is loaded; the other functions in this package assume a grid
// that has passed it.
func (g *Grid) Check() error {
	if math.IsNaN(g.Resolution) || g.Resolution <= 0 {
		return &InvalidParameterError{fmt.Sprintf("soilph: grid resolution %g is not a positive number", g.Resolution)}
	}
	seen := make(map[int]struct{}, len(g.Cells))
	for _, c := range g.Cells {
		if _, ok := seen[c.Index]; ok {
			return &InputShapeError{fmt.Sprintf("soilph: duplicate grid cell index %d", c.Index)}
		}
		seen[c.Index] = struct{}{}
	}
	return nil
}

// LandCells returns the cells of g whose land flag is set.
func (g *Grid) LandCells() []*GridCell {
	var o []*GridCell
	for _, c := range g.Cells {
		if c.Land {
			o = append(o, c)
		}
	}
	return o
}

// cellsByIndex returns a lookup from cell index to cell.
func (g *Grid) cellsByIndex() map[int]*GridCell {
	o := make(map[int]*GridCell, len(g.Cells))
	for _, c := range g.Cells {
		o[c.Index] = c
	}
	return o
}

// A Profile is one soil observation: a laboratory-characterized profile
// assigned to the grid cell containing it. Profiles are immutable
// within a sampling run.
type Profile struct {
	// ID uniquely identifies this profile within its source table.
	ID int

	// CellIndex is the index of the grid cell the profile falls in.
	CellIndex int

	// Lon and Lat are the center coordinates of that cell (decimal
	// degrees).
	Lon, Lat float64

	// PH is soil pH measured in a 1:1 soil-water suspension.
	PH float64

	// ECEC is the effective cation exchange capacity (cmolc kg-1).
	ECEC float64

	// ExAl is KCl-exchangeable aluminum (cmolc kg-1).
	ExAl float64
}

// A ProfileTable is a table of soil observations with a fixed schema.
type ProfileTable []*Profile

// Check validates the table against grid g: the table must be
// non-empty, every profile's cell index must exist in the grid, and
// profile coordinates must match their cell's center.
func (t ProfileTable) Check(g *Grid) error {
	if len(t) == 0 {
		return &EmptyDomainError{"soilph: profile table is empty"}
	}
	cells := g.cellsByIndex()
	for _, p := range t {
		c, ok := cells[p.CellIndex]
		if !ok {
			return &InputShapeError{fmt.Sprintf("soilph: profile %d refers to grid cell %d, which is not in the grid", p.ID, p.CellIndex)}
		}
		if math.Abs(p.Lon-c.Lon) > coordTolerance || math.Abs(p.Lat-c.Lat) > coordTolerance {
			return &InputShapeError{fmt.Sprintf("soilph: profile %d at (%g, %g) does not match the center (%g, %g) of grid cell %d",
				p.ID, p.Lon, p.Lat, c.Lon, c.Lat, c.Index)}
		}
	}
	return nil
}
