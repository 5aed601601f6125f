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

// Package pet estimates annual potential evapotranspiration from
// gridded climate data, using the combination equation of Monteith
// (1965) and the equilibrium form of Priestley and Taylor (1972).
package pet

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
	"github.com/ctessum/unit"
)

var kelvinDim = unit.TemperatureDim

var (
	joulesPerKg = unit.Dimensions{
		unit.LengthDim: 2,
		unit.TimeDim:   -2}
	joulesPerKgPerK = unit.Dimensions{
		unit.LengthDim: 2,
		unit.TimeDim:   -2,
		kelvinDim:      -1}
	kgPerM3 = unit.Dimensions{
		unit.MassDim:   1,
		unit.LengthDim: -3}
)

var (
	// latentHeat is the latent heat of vaporization of water.
	latentHeat = unit.New(2.45e6, joulesPerKg)

	// airHeatCapacity is the specific heat of air at constant pressure.
	airHeatCapacity = unit.New(1013., joulesPerKgPerK)

	// airDensity is the density of air near the surface.
	airDensity = unit.New(1.204, kgPerM3)

	secPerYear = unit.New(31536000., unit.Second)
)

// psychrometric is the psychrometric constant at sea level (kPa K-1).
const psychrometric = 0.0665

// alpha is the Priestley-Taylor coefficient.
const alpha = 1.26

// vonKarman is the von Karman constant.
const vonKarman = 0.41

// Inputs holds the gridded climate fields needed to estimate PET. All
// arrays must share the same shape. SoilFlux may be nil, in which case
// the ground heat flux is taken to be zero.
type Inputs struct {
	Temperature            *sparse.DenseArray // °C
	NetRadiation           *sparse.DenseArray // W m-2
	SoilFlux               *sparse.DenseArray // W m-2
	VaporPressureDeficit   *sparse.DenseArray // kPa
	AerodynamicConductance *sparse.DenseArray // m s-1
	SurfaceConductance     *sparse.DenseArray // m s-1
}

// PenmanMonteith returns annual PET (mm yr-1) from the Monteith (1965)
// big-leaf combination equation,
//
//	λE = (Δ(Rn−G) + ρ_a c_p D g_a) / (Δ + γ(1 + g_a/g_s)),
//
// where Δ is the slope of the saturation vapor pressure curve, D the
// vapor pressure deficit, and g_a and g_s the aerodynamic and surface
// conductances.
func (in *Inputs) PenmanMonteith() (*sparse.DenseArray, error) {
	if err := checkShapes(in.Temperature, in.NetRadiation, in.VaporPressureDeficit,
		in.AerodynamicConductance, in.SurfaceConductance); err != nil {
		return nil, err
	}
	if in.SoilFlux != nil {
		if err := checkShapes(in.Temperature, in.SoilFlux); err != nil {
			return nil, err
		}
	}
	rhoCp := unit.Mul(airDensity, airHeatCapacity).Value() // J m-3 K-1
	toMMPerYear := unit.Div(secPerYear, latentHeat).Value()
	o := sparse.ZerosDense(in.Temperature.Shape...)
	for i, t := range in.Temperature.Elements {
		gs := in.SurfaceConductance.Elements[i]
		if gs <= 0 {
			return nil, fmt.Errorf("pet: non-positive surface conductance %g at element %d", gs, i)
		}
		ga := in.AerodynamicConductance.Elements[i]
		delta := satSlope(t)
		available := in.NetRadiation.Elements[i]
		if in.SoilFlux != nil {
			available -= in.SoilFlux.Elements[i]
		}
		le := (delta*available + rhoCp*in.VaporPressureDeficit.Elements[i]*ga) /
			(delta + psychrometric*(1+ga/gs))
		o.Elements[i] = le * toMMPerYear
	}
	return o, nil
}

// PriestleyTaylor returns annual PET (mm yr-1) from the Priestley and
// Taylor (1972) equilibrium equation, λE = α Δ/(Δ+γ) (Rn−G). Only the
// Temperature, NetRadiation, and SoilFlux fields are used.
func (in *Inputs) PriestleyTaylor() (*sparse.DenseArray, error) {
	if err := checkShapes(in.Temperature, in.NetRadiation); err != nil {
		return nil, err
	}
	if in.SoilFlux != nil {
		if err := checkShapes(in.Temperature, in.SoilFlux); err != nil {
			return nil, err
		}
	}
	toMMPerYear := unit.Div(secPerYear, latentHeat).Value()
	o := sparse.ZerosDense(in.Temperature.Shape...)
	for i, t := range in.Temperature.Elements {
		delta := satSlope(t)
		available := in.NetRadiation.Elements[i]
		if in.SoilFlux != nil {
			available -= in.SoilFlux.Elements[i]
		}
		o.Elements[i] = alpha * delta / (delta + psychrometric) * available * toMMPerYear
	}
	return o, nil
}

// SurfaceConductance expands a raster of biome class codes into a
// raster of canopy surface conductance (m s-1) using the given lookup
// table. It is a single pass producing a new array; codes absent from
// the table are an error.
func SurfaceConductance(biomes *sparse.DenseArray, table map[int]float64) (*sparse.DenseArray, error) {
	o := sparse.ZerosDense(biomes.Shape...)
	for i, b := range biomes.Elements {
		g, ok := table[int(b)]
		if !ok {
			return nil, fmt.Errorf("pet: no surface conductance for biome class %d", int(b))
		}
		o.Elements[i] = g
	}
	return o, nil
}

// AerodynamicConductance converts a wind speed raster (m s-1 at
// measurement height zm) into aerodynamic conductance (m s-1) for a
// surface with roughness length z0, assuming a logarithmic wind
// profile under neutral stability:
//
//	g_a = k² u / ln²(zm/z0)
func AerodynamicConductance(wind *sparse.DenseArray, zm, z0 float64) (*sparse.DenseArray, error) {
	if zm <= z0 || z0 <= 0 {
		return nil, fmt.Errorf("pet: measurement height %g m and roughness length %g m are inconsistent", zm, z0)
	}
	logRatio := math.Log(zm / z0)
	fac := vonKarman * vonKarman / (logRatio * logRatio)
	o := sparse.ZerosDense(wind.Shape...)
	for i, u := range wind.Elements {
		o.Elements[i] = fac * u
	}
	return o, nil
}

// DefaultConductance gives canopy surface conductance (m s-1) by biome
// class for the global biome raster used in the analysis.
var DefaultConductance = map[int]float64{
	1:  0.0125, // tropical evergreen forest
	2:  0.0100, // tropical deciduous forest
	3:  0.0100, // temperate broadleaf forest
	4:  0.0085, // temperate conifer forest
	5:  0.0070, // boreal forest
	6:  0.0080, // savanna
	7:  0.0065, // grassland
	8:  0.0040, // shrubland
	9:  0.0025, // tundra
	10: 0.0015, // desert
	11: 0.0070, // cropland
}

// satSlope returns the slope of the saturation vapor pressure curve
// (kPa °C-1) at air temperature t (°C), following Allen et al. (1998),
// eq. 13.
func satSlope(t float64) float64 {
	es := 0.6108 * math.Exp(17.27*t/(t+237.3))
	return 4098 * es / ((t + 237.3) * (t + 237.3))
}

func checkShapes(arrays ...*sparse.DenseArray) error {
	ref := arrays[0]
	for _, a := range arrays[1:] {
		if len(a.Shape) != len(ref.Shape) {
			return fmt.Errorf("pet: input arrays have mismatched shapes %v and %v", ref.Shape, a.Shape)
		}
		for i, n := range a.Shape {
			if n != ref.Shape[i] {
				return fmt.Errorf("pet: input arrays have mismatched shapes %v and %v", ref.Shape, a.Shape)
			}
		}
	}
	return nil
}
