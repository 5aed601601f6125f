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

	"github.com/GaryBoone/GoStats/stats"
)

// A Statistic reduces a profile table to a single number.
type Statistic func(ProfileTable) float64

// A BootstrapResult summarizes the statistic values across bootstrap
// replicates.
type BootstrapResult struct {
	// Replicates holds the statistic value for each replicate, in
	// replicate order.
	Replicates []float64

	// Mean and StdDev are the mean and sample standard deviation of
	// Replicates. StdDev is zero when there is only one replicate.
	Mean, StdDev float64
}

// Bootstrap runs b replicate resamples of n draws each and applies f to
// every replicate table. Replicate i uses seed+i, so the whole run is
// reproducible from the base seed. The search area is built once and
// shared by all replicates.
func (s *Sampler) Bootstrap(b, n int, seed uint64, f Statistic, msgChan chan string) (*BootstrapResult, error) {
	if b <= 0 {
		return nil, &InvalidParameterError{fmt.Sprintf("soilph: replicate count %d is not positive", b)}
	}
	var d stats.Stats
	r := &BootstrapResult{Replicates: make([]float64, b)}
	for i := 0; i < b; i++ {
		t, err := s.Sample(n, seed+uint64(i), msgChan)
		if err != nil {
			return nil, err
		}
		v := f(t)
		r.Replicates[i] = v
		d.Update(v)
		if msgChan != nil {
			msgChan <- fmt.Sprintf("Bootstrap: replicate %d of %d complete", i+1, b)
		}
	}
	r.Mean = d.Mean()
	if b > 1 {
		r.StdDev = d.SampleStandardDeviation()
	}
	return r, nil
}

// MeanPH is the bootstrap statistic used for the headline numbers: the
// mean pH of a resampled table.
func MeanPH(t ProfileTable) float64 {
	var sum float64
	for _, p := range t {
		sum += p.PH
	}
	return sum / float64(len(t))
}
