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
)

// EarthRadius is the spherical-earth radius (km) shared by the geodesy
// functions in this package.
const EarthRadius = 6378.1

const degToRad = math.Pi / 180

// Distance returns the great-circle distance (km) from the target point
// (lon, lat) to each of the candidate points, in candidate order, using
// the haversine formula on a sphere of radius EarthRadius. All
// coordinates are decimal degrees. Coordinates outside the usual ranges
// are not rejected; they give numerically defined but geographically
// meaningless results.
func Distance(lon, lat float64, lons, lats []float64) ([]float64, error) {
	if len(lons) != len(lats) {
		return nil, &InputShapeError{fmt.Sprintf("soilph: candidate longitudes and latitudes have mismatched lengths %d and %d",
			len(lons), len(lats))}
	}
	d := make([]float64, len(lons))
	latR := lat * degToRad
	cosLat := math.Cos(latR)
	for i := range lons {
		sinLat := math.Sin((lats[i] - lat) * degToRad / 2)
		sinLon := math.Sin((lons[i] - lon) * degToRad / 2)
		a := sinLat*sinLat + cosLat*math.Cos(lats[i]*degToRad)*sinLon*sinLon
		d[i] = 2 * EarthRadius * math.Asin(math.Sqrt(a))
	}
	return d, nil
}

// CellArea returns the surface area (km²) of an equal-angle grid cell
// centered at latitude lat (decimal degrees) with the given angular
// resolution (degrees; cells are square in degrees). The area is the
// difference between the spherical caps bounded by the cell's edge
// latitudes, scaled by the cell's fraction of the latitude band. Cell
// bounds falling outside [-90, 90] are not clamped; the caller must
// accept degenerate results in that case.
func CellArea(lat, resolution float64) float64 {
	band := capArea(lat-resolution/2) - capArea(lat+resolution/2)
	return band * resolution / 360
}

// capArea returns the area (km²) of the spherical cap poleward (north)
// of latitude lat.
func capArea(lat float64) float64 {
	return 2 * math.Pi * EarthRadius * (EarthRadius - EarthRadius*math.Sin(lat*degToRad))
}
