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

package pet

import (
	"math"
	"testing"

	"github.com/ctessum/sparse"
)

func scalar(v float64) *sparse.DenseArray {
	d := sparse.ZerosDense(1)
	d.Elements[0] = v
	return d
}

func TestPriestleyTaylor(t *testing.T) {
	in := &Inputs{
		Temperature:  scalar(20),
		NetRadiation: scalar(100),
	}
	o, err := in.PriestleyTaylor()
	if err != nil {
		t.Fatal(err)
	}
	// At 20 °C, Δ = 0.1447 kPa °C⁻¹, so
	// λE = 1.26 · 0.1447/(0.1447+0.0665) · 100 = 86.33 W m⁻²,
	// which over a year evaporates 1111.3 mm.
	const want = 1111.3
	if math.Abs(o.Elements[0]-want) > 1 {
		t.Errorf("equilibrium PET at 20 °C and 100 W m⁻² = %g mm yr⁻¹, want %g", o.Elements[0], want)
	}
}

func TestPenmanMonteith(t *testing.T) {
	in := &Inputs{
		Temperature:            scalar(20),
		NetRadiation:           scalar(100),
		VaporPressureDeficit:   scalar(1),
		AerodynamicConductance: scalar(0.01),
		SurfaceConductance:     scalar(0.01),
	}
	o, err := in.PenmanMonteith()
	if err != nil {
		t.Fatal(err)
	}
	// λE = (0.1447·100 + 1.204·1013·1·0.01) / (0.1447 + 0.0665·2)
	//    = 96.03 W m⁻², or 1236.0 mm yr⁻¹.
	const want = 1236.0
	if math.Abs(o.Elements[0]-want) > 2 {
		t.Errorf("PET at 20 °C = %g mm yr⁻¹, want %g", o.Elements[0], want)
	}
}

func TestPenmanMonteithSoilFlux(t *testing.T) {
	base := &Inputs{
		Temperature:            scalar(20),
		NetRadiation:           scalar(100),
		VaporPressureDeficit:   scalar(1),
		AerodynamicConductance: scalar(0.01),
		SurfaceConductance:     scalar(0.01),
	}
	withFlux := *base
	withFlux.SoilFlux = scalar(20)
	a, err := base.PenmanMonteith()
	if err != nil {
		t.Fatal(err)
	}
	b, err := withFlux.PenmanMonteith()
	if err != nil {
		t.Fatal(err)
	}
	if b.Elements[0] >= a.Elements[0] {
		t.Errorf("ground heat flux did not reduce PET: %g >= %g", b.Elements[0], a.Elements[0])
	}
}

func TestPenmanMonteithShapeMismatch(t *testing.T) {
	in := &Inputs{
		Temperature:            sparse.ZerosDense(2, 2),
		NetRadiation:           sparse.ZerosDense(2, 3),
		VaporPressureDeficit:   sparse.ZerosDense(2, 2),
		AerodynamicConductance: sparse.ZerosDense(2, 2),
		SurfaceConductance:     sparse.ZerosDense(2, 2),
	}
	if _, err := in.PenmanMonteith(); err == nil {
		t.Error("mismatched shapes did not cause an error")
	}
}

func TestSurfaceConductance(t *testing.T) {
	biomes := sparse.ZerosDense(3)
	biomes.Elements = []float64{1, 7, 10}
	o, err := SurfaceConductance(biomes, DefaultConductance)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.0125, 0.0065, 0.0015}
	for i, v := range o.Elements {
		if v != want[i] {
			t.Errorf("conductance for biome %g = %g, want %g", biomes.Elements[i], v, want[i])
		}
	}

	biomes.Elements[1] = 99
	if _, err := SurfaceConductance(biomes, DefaultConductance); err == nil {
		t.Error("unknown biome class did not cause an error")
	}
}

func TestAerodynamicConductance(t *testing.T) {
	o, err := AerodynamicConductance(scalar(5), 10, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	// g_a = 0.41²·5 / ln²(100) = 0.03963 m s⁻¹.
	const want = 0.03963
	if math.Abs(o.Elements[0]-want) > 1e-4 {
		t.Errorf("aerodynamic conductance = %g m s⁻¹, want %g", o.Elements[0], want)
	}

	if _, err := AerodynamicConductance(scalar(5), 0.1, 10); err == nil {
		t.Error("inconsistent heights did not cause an error")
	}
}
