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
	"os"
	"text/tabwriter"

	"github.com/eslessarev/GlobalSoilpH/science/buffer"
)

// Buffer fits the pH buffering models to the resampled subsoil table
// and prints the results.
func Buffer(resampledFile string, pCO2 float64) error {
	f, err := os.Open(resampledFile)
	if err != nil {
		return fmt.Errorf("soilphutil: opening resampled table: %v", err)
	}
	t, err := ReadProfilesCSV(f)
	f.Close()
	if err != nil {
		return err
	}

	alSat, err := buffer.FitAlSaturation(t)
	if err != nil {
		return err
	}
	alPool, err := buffer.FitAlPool(t)
	if err != nil {
		return err
	}
	calcite, err := buffer.CalcitePH(pCO2)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "fit\tslope\tintercept\tr2\tn\n")
	fmt.Fprintf(w, "logit Al saturation vs pH\t%.4f\t%.4f\t%.4f\t%d\n",
		alSat.Slope, alSat.Intercept, alSat.R2, alSat.N)
	fmt.Fprintf(w, "log10 exchangeable Al vs pH\t%.4f\t%.4f\t%.4f\t%d\n",
		alPool.Slope, alPool.Intercept, alPool.R2, alPool.N)
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("pH at half Al saturation: %.2f\n", alSat.PH(0))
	fmt.Printf("calcite equilibrium pH at pCO2 %.2e atm: %.2f\n", pCO2, calcite)
	return nil
}
