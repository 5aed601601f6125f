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

// fourCellGrid is a one-degree grid of four land cells straddling the
// intersection of the equator and the prime meridian.
func fourCellGrid() *Grid {
	return &Grid{
		Resolution: 1,
		Cells: []*GridCell{
			{Index: 0, Lon: -0.5, Lat: -0.5, Land: true},
			{Index: 1, Lon: 0.5, Lat: -0.5, Land: true},
			{Index: 2, Lon: -0.5, Lat: 0.5, Land: true},
			{Index: 3, Lon: 0.5, Lat: 0.5, Land: true},
		},
	}
}

func TestSampleSingleOccupiedCell(t *testing.T) {
	// With one occupied cell and a length scale covering the whole
	// grid, every sample node's nearest occupied cell is that cell, so
	// every output row is the single input profile.
	s := &Sampler{
		Grid: fourCellGrid(),
		Profiles: ProfileTable{
			{ID: 1, CellIndex: 0, Lon: -0.5, Lat: -0.5, PH: 5.5},
		},
		LengthScale: 1000,
	}
	out, err := s.Sample(100, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 100 {
		t.Fatalf("got %d rows, want 100", len(out))
	}
	for i, p := range out {
		if p.ID != 1 || p.CellIndex != 0 {
			t.Fatalf("row %d is profile %d in cell %d, want profile 1 in cell 0", i, p.ID, p.CellIndex)
		}
	}
}

func TestSampleRowCountAndMembership(t *testing.T) {
	profiles := ProfileTable{
		{ID: 1, CellIndex: 0, Lon: -0.5, Lat: -0.5, PH: 4.5},
		{ID: 2, CellIndex: 0, Lon: -0.5, Lat: -0.5, PH: 5.0},
		{ID: 3, CellIndex: 3, Lon: 0.5, Lat: 0.5, PH: 7.5},
	}
	s := &Sampler{Grid: fourCellGrid(), Profiles: profiles, LengthScale: 1000}
	out, err := s.Sample(250, 42, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 250 {
		t.Fatalf("got %d rows, want 250", len(out))
	}
	occupied := map[int]bool{0: true, 3: true}
	for i, p := range out {
		if !occupied[p.CellIndex] {
			t.Fatalf("row %d is in cell %d, which holds no input profiles", i, p.CellIndex)
		}
	}
}

func TestSampleDeterministic(t *testing.T) {
	profiles := ProfileTable{
		{ID: 1, CellIndex: 0, Lon: -0.5, Lat: -0.5, PH: 4.5},
		{ID: 2, CellIndex: 0, Lon: -0.5, Lat: -0.5, PH: 5.0},
		{ID: 3, CellIndex: 3, Lon: 0.5, Lat: 0.5, PH: 7.5},
	}
	sample := func(seed uint64) ProfileTable {
		s := &Sampler{Grid: fourCellGrid(), Profiles: profiles, LengthScale: 1000}
		out, err := s.Sample(200, seed, nil)
		if err != nil {
			t.Fatal(err)
		}
		return out
	}
	a, b := sample(7), sample(7)
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("row %d differs between runs with the same seed: %d != %d", i, a[i].ID, b[i].ID)
		}
	}
}

func TestSampleEmptyProfiles(t *testing.T) {
	s := &Sampler{Grid: fourCellGrid(), Profiles: nil, LengthScale: 1000}
	_, err := s.Sample(10, 1, nil)
	var domainErr *EmptyDomainError
	if !errors.As(err, &domainErr) {
		t.Errorf("got %v, want EmptyDomainError", err)
	}
}

func TestSampleEmptySearchArea(t *testing.T) {
	// The only observed cell is water and the only land cell is on the
	// other side of the world, so the search area is empty.
	g := &Grid{
		Resolution: 1,
		Cells: []*GridCell{
			{Index: 0, Lon: 0.5, Lat: 0.5, Land: false},
			{Index: 1, Lon: 100.5, Lat: 50.5, Land: true},
		},
	}
	s := &Sampler{
		Grid:        g,
		Profiles:    ProfileTable{{ID: 1, CellIndex: 0, Lon: 0.5, Lat: 0.5}},
		LengthScale: 10,
	}
	_, err := s.Sample(10, 1, nil)
	var domainErr *EmptyDomainError
	if !errors.As(err, &domainErr) {
		t.Errorf("got %v, want EmptyDomainError", err)
	}
}

func TestSampleInvalidParameters(t *testing.T) {
	profiles := ProfileTable{{ID: 1, CellIndex: 0, Lon: -0.5, Lat: -0.5}}
	var tests = []struct {
		name        string
		n           int
		lengthScale float64
	}{
		{name: "zero n", n: 0, lengthScale: 1000},
		{name: "negative n", n: -5, lengthScale: 1000},
		{name: "zero length scale", n: 10, lengthScale: 0},
		{name: "negative length scale", n: 10, lengthScale: -100},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := &Sampler{Grid: fourCellGrid(), Profiles: profiles, LengthScale: test.lengthScale}
			_, err := s.Sample(test.n, 1, nil)
			var paramErr *InvalidParameterError
			if !errors.As(err, &paramErr) {
				t.Errorf("got %v, want InvalidParameterError", err)
			}
		})
	}
}

func TestSearchArea(t *testing.T) {
	// Land cells at 0°, 5°, and 60° longitude; observations at 0° only.
	// Five degrees on the equator is about 557 km, so a 600 km length
	// scale includes the first two cells and excludes the third.
	g := &Grid{
		Resolution: 1,
		Cells: []*GridCell{
			{Index: 0, Lon: 0, Lat: 0, Land: true},
			{Index: 1, Lon: 5, Lat: 0, Land: true},
			{Index: 2, Lon: 60, Lat: 0, Land: true},
		},
	}
	s := &Sampler{
		Grid:        g,
		Profiles:    ProfileTable{{ID: 1, CellIndex: 0, Lon: 0, Lat: 0}},
		LengthScale: 600,
	}
	if err := s.init(nil); err != nil {
		t.Fatal(err)
	}
	if len(s.search) != 2 {
		t.Fatalf("search area has %d cells, want 2", len(s.search))
	}
	if s.search[0].Index != 0 || s.search[1].Index != 1 {
		t.Errorf("search area contains cells %d and %d, want 0 and 1",
			s.search[0].Index, s.search[1].Index)
	}
}
