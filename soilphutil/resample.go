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

package soilphutil

import (
	"fmt"
	"log"
	"os"

	soilph "github.com/eslessarev/GlobalSoilpH"
)

// Resample runs the spatially weighted bootstrap and writes the
// resampled profile table.
func Resample(profileFile, sheet, gridFile, outFile, shapeFile string, lengthScale float64, n, replicates int, seed uint64) error {
	// Start a function to receive and print log messages.
	msgLog := make(chan string)
	go func() {
		for msg := range msgLog {
			log.Println(msg)
		}
	}()
	defer close(msgLog)

	profiles, err := ReadProfiles(profileFile, sheet)
	if err != nil {
		return err
	}
	grid, err := ReadGrid(gridFile)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d profiles on a %g° grid of %d cells", len(profiles), grid.Resolution, len(grid.Cells))

	s := &soilph.Sampler{
		Grid:        grid,
		Profiles:    profiles,
		LengthScale: lengthScale,
	}

	if replicates > 1 {
		r, err := s.Bootstrap(replicates, n, seed, soilph.MeanPH, msgLog)
		if err != nil {
			return err
		}
		log.Printf("Bootstrap mean pH over %d replicates: %.3f ± %.3f", replicates, r.Mean, r.StdDev)
	}

	t, err := s.Sample(n, seed, msgLog)
	if err != nil {
		return err
	}

	w, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("soilphutil: creating output file: %v", err)
	}
	if err := WriteSampledCSV(w, t); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	if shapeFile != "" {
		if err := WriteSampledShapefile(shapeFile, t); err != nil {
			return err
		}
	}
	log.Printf("Wrote %d resampled profiles to %s", len(t), outFile)
	return nil
}
