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

package soilph

import (
	"errors"
	"testing"
)

func TestGridCheck(t *testing.T) {
	g := &Grid{
		Resolution: 1,
		Cells: []*GridCell{
			{Index: 0, Lon: -0.5, Lat: -0.5},
			{Index: 0, Lon: 0.5, Lat: -0.5},
		},
	}
	var shapeErr *InputShapeError
	if err := g.Check(); !errors.As(err, &shapeErr) {
		t.Errorf("duplicate cell index: got %v, want InputShapeError", err)
	}

	g = &Grid{Resolution: -1}
	var paramErr *InvalidParameterError
	if err := g.Check(); !errors.As(err, &paramErr) {
		t.Errorf("negative resolution: got %v, want InvalidParameterError", err)
	}
}

func TestProfileTableCheck(t *testing.T) {
	g := fourCellGrid()

	var tests = []struct {
		name    string
		profile *Profile
	}{
		{
			name:    "missing cell",
			profile: &Profile{ID: 1, CellIndex: 99, Lon: -0.5, Lat: -0.5},
		},
		{
			name:    "coordinate mismatch",
			profile: &Profile{ID: 1, CellIndex: 0, Lon: 0.5, Lat: -0.5},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ProfileTable{test.profile}.Check(g)
			var shapeErr *InputShapeError
			if !errors.As(err, &shapeErr) {
				t.Errorf("got %v, want InputShapeError", err)
			}
		})
	}

	if err := (ProfileTable{{ID: 1, CellIndex: 0, Lon: -0.5, Lat: -0.5}}).Check(g); err != nil {
		t.Errorf("valid table failed check: %v", err)
	}
}
