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
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// A Sampler draws spatially weighted bootstrap resamples from a table
// of soil profiles on a global grid. It corrects for two biases in a
// naive bootstrap of point observations: spatial clustering of
// observations, by drawing sample locations from a search area around
// the observations rather than from the observations themselves; and
// the poleward shrinkage of equal-angle grid cells, by weighting each
// candidate cell with its true spherical surface area.
//
// A Sampler must not be shared between goroutines, but separate
// Samplers over separate inputs are independent.
type Sampler struct {
	Grid     *Grid
	Profiles ProfileTable

	// LengthScale is the great-circle search radius (km): a land cell
	// belongs to the search area if it lies within LengthScale of any
	// cell containing observations.
	LengthScale float64

	// occupied holds one representative grid cell per distinct cell
	// index present in Profiles, ordered by cell index so that
	// nearest-cell ties resolve to the lowest index.
	occupied []*GridCell
	occLons  []float64
	occLats  []float64

	// pools groups the profiles by cell index.
	pools map[int]ProfileTable

	// search is the search area, and weights the corresponding cell
	// areas. Both are computed once from all occupied cells and reused
	// for every draw; the weighting never adapts per node.
	search  []*GridCell
	weights []float64
}

// init validates the inputs and runs the search-area construction
// phase. It runs once per Sampler; later calls return immediately.
func (s *Sampler) init(msgChan chan string) error {
	if s.search != nil {
		return nil
	}
	if math.IsNaN(s.LengthScale) || s.LengthScale <= 0 {
		return &InvalidParameterError{fmt.Sprintf("soilph: length scale %g is not a positive number", s.LengthScale)}
	}
	if err := s.Grid.Check(); err != nil {
		return err
	}
	if err := s.Profiles.Check(s.Grid); err != nil {
		return err
	}

	s.pools = make(map[int]ProfileTable)
	for _, p := range s.Profiles {
		s.pools[p.CellIndex] = append(s.pools[p.CellIndex], p)
	}
	indices := make([]int, 0, len(s.pools))
	for i := range s.pools {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	cells := s.Grid.cellsByIndex()
	s.occupied = make([]*GridCell, len(indices))
	s.occLons = make([]float64, len(indices))
	s.occLats = make([]float64, len(indices))
	for i, idx := range indices {
		c := cells[idx]
		s.occupied[i] = c
		s.occLons[i] = c.Lon
		s.occLats[i] = c.Lat
	}

	land := s.Grid.LandCells()
	landLons := make([]float64, len(land))
	landLats := make([]float64, len(land))
	for i, c := range land {
		landLons[i] = c.Lon
		landLats[i] = c.Lat
	}
	// A land cell qualifies if it is near any one occupied cell, so the
	// flags accumulate with OR across the loop.
	inSearch := make([]bool, len(land))
	for i, c := range s.occupied {
		d, err := Distance(c.Lon, c.Lat, landLons, landLats)
		if err != nil {
			return err
		}
		for j, dist := range d {
			if dist <= s.LengthScale {
				inSearch[j] = true
			}
		}
		if msgChan != nil && (i+1)%100 == 0 {
			msgChan <- fmt.Sprintf("Search area: processed %d of %d occupied cells", i+1, len(s.occupied))
		}
	}
	for j, ok := range inSearch {
		if ok {
			s.search = append(s.search, land[j])
		}
	}
	if len(s.search) == 0 {
		return &EmptyDomainError{fmt.Sprintf("soilph: no land cells within %g km of any occupied cell", s.LengthScale)}
	}

	s.weights = make([]float64, len(s.search))
	for i, c := range s.search {
		s.weights[i] = CellArea(c.Lat, s.Grid.Resolution)
	}
	return nil
}

// Sample draws n profiles from the table, with replacement, spatially
// weighted. It first draws n sample nodes from the search area with
// probability proportional to true cell area, then assigns each node
// one profile drawn uniformly from the occupied cell nearest to it.
// When several occupied cells are equally near a node, the one with the
// lowest cell index wins.
//
// The output has exactly n rows in node order, with the same schema as
// the input; rows may repeat. The result is deterministic given the
// inputs and seed. Progress messages are sent to msgChan at coarse
// intervals if it is non-nil.
func (s *Sampler) Sample(n int, seed uint64, msgChan chan string) (ProfileTable, error) {
	if n <= 0 {
		return nil, &InvalidParameterError{fmt.Sprintf("soilph: sample size %d is not positive", n)}
	}
	if err := s.init(msgChan); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	nodes := distuv.NewCategorical(s.weights, rng)

	out := make(ProfileTable, 0, n)
	for i := 0; i < n; i++ {
		node := s.search[int(nodes.Rand())]
		d, err := Distance(node.Lon, node.Lat, s.occLons, s.occLats)
		if err != nil {
			return nil, err
		}
		pool := s.pools[s.occupied[floats.MinIdx(d)].Index]
		out = append(out, pool[rng.Intn(len(pool))])
		if msgChan != nil && (i+1)%1000 == 0 {
			msgChan <- fmt.Sprintf("Sampling: %d of %d nodes assigned", i+1, n)
		}
	}
	return out, nil
}
