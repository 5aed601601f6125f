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

	"github.com/ctessum/sparse"

	"github.com/eslessarev/GlobalSoilpH/science/pet"
)

// PET reads the gridded climate variables from climateFile, estimates
// annual potential evapotranspiration with the requested model, and
// writes the result raster to outFile as NetCDF.
func PET(climateFile, outFile, model string, windHeight, roughness float64) error {
	vars := make(map[string]*sparse.DenseArray)
	for _, name := range []string{"tair", "rn", "vpd", "wind", "biome"} {
		data, err := ReadRaster(climateFile, name)
		if err != nil {
			return err
		}
		vars[name] = data
	}

	gs, err := pet.SurfaceConductance(vars["biome"], pet.DefaultConductance)
	if err != nil {
		return err
	}
	ga, err := pet.AerodynamicConductance(vars["wind"], windHeight, roughness)
	if err != nil {
		return err
	}
	in := &pet.Inputs{
		Temperature:            vars["tair"],
		NetRadiation:           vars["rn"],
		VaporPressureDeficit:   vars["vpd"],
		AerodynamicConductance: ga,
		SurfaceConductance:     gs,
	}

	var o *sparse.DenseArray
	switch model {
	case "penman-monteith":
		o, err = in.PenmanMonteith()
	case "priestley-taylor":
		o, err = in.PriestleyTaylor()
	default:
		return fmt.Errorf("soilphutil: unknown PET model %s", model)
	}
	if err != nil {
		return err
	}

	w, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("soilphutil: creating PET output file: %v", err)
	}
	if err := WriteRaster(w, "pet", "annual potential evapotranspiration", "mm yr-1", o); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	log.Printf("Wrote %s PET raster to %s", model, outFile)
	return nil
}
