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

// Package buffer implements the empirical soil pH buffering models:
// the equilibrium pH of calcite-buffered soil solution, and regressions
// describing the aluminum buffer range of the exchange complex.
package buffer

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/GaryBoone/GoStats/stats"
	"gonum.org/v1/gonum/mat"

	soilph "github.com/eslessarev/GlobalSoilpH"
)

// Thermodynamic constants at 25 °C; activities are taken equal to
// concentrations.
var (
	// kH is the Henry's law constant for CO2 (mol L-1 atm-1).
	kH = math.Pow(10, -1.47)

	// k1 and k2 are the first and second dissociation constants of
	// carbonic acid.
	k1 = math.Pow(10, -6.35)
	k2 = math.Pow(10, -10.33)

	// kw is the ion product of water.
	kw = math.Pow(10, -14)

	// kSP is the solubility product of calcite.
	kSP = math.Pow(10, -8.48)
)

// CalcitePH returns the equilibrium pH of water in contact with calcite
// at the given CO2 partial pressure (atm). The charge balance of the
// carbonate system,
//
//	2[Ca²⁺] + [H⁺] = [HCO₃⁻] + 2[CO₃²⁻] + [OH⁻],
//
// reduces to a fixed quartic in x = [H⁺]:
//
//	(2 Ksp / (K1 K2 KH p)) x⁴ + x³ − (K1 KH p + Kw) x − 2 K1 K2 KH p = 0,
//
// whose single positive real root gives the pH.
func CalcitePH(pCO2 float64) (float64, error) {
	if math.IsNaN(pCO2) || pCO2 <= 0 {
		return 0, &soilph.InvalidParameterError{Msg: fmt.Sprintf("buffer: CO2 partial pressure %g atm is not a positive number", pCO2)}
	}
	co2 := kH * pCO2 // dissolved CO2 (mol L-1)
	coeffs := []float64{
		-2 * k1 * k2 * co2,
		-(k1*co2 + kw),
		0,
		1,
		2 * kSP / (k1 * k2 * co2),
	}
	roots, err := polyRoots(coeffs)
	if err != nil {
		return 0, err
	}
	h := math.NaN()
	for _, r := range roots {
		// The physical root is real and positive; the imaginary parts
		// of the others are far from zero.
		if math.Abs(imag(r)) < 1e-6*cmplx.Abs(r) && real(r) > 0 {
			h = real(r)
		}
	}
	if math.IsNaN(h) {
		return 0, fmt.Errorf("buffer: no positive real root for CO2 partial pressure %g atm", pCO2)
	}
	return -math.Log10(h), nil
}

// polyRoots returns the roots of the polynomial whose coefficients are
// given from the constant term upward, as the eigenvalues of its
// companion matrix.
func polyRoots(coeffs []float64) ([]complex128, error) {
	n := len(coeffs) - 1
	if n < 1 || coeffs[n] == 0 {
		return nil, fmt.Errorf("buffer: polynomial with coefficients %v is degenerate", coeffs)
	}
	c := mat.NewDense(n, n, nil)
	for i := 1; i < n; i++ {
		c.Set(i, i-1, 1)
	}
	for i := 0; i < n; i++ {
		c.Set(i, n-1, -coeffs[i]/coeffs[n])
	}
	var eig mat.Eigen
	if ok := eig.Factorize(c, mat.EigenNone); !ok {
		return nil, fmt.Errorf("buffer: eigendecomposition of companion matrix failed")
	}
	return eig.Values(nil), nil
}

// Filter returns the rows of t usable for exchange-complex fitting,
// dropping profiles with non-positive ECEC or exchangeable Al and
// profiles where exchangeable Al is not less than ECEC.
func Filter(t soilph.ProfileTable) soilph.ProfileTable {
	var o soilph.ProfileTable
	for _, p := range t {
		if p.ExAl <= 0 || p.ECEC <= 0 || p.ExAl >= p.ECEC {
			continue
		}
		o = append(o, p)
	}
	return o
}

// An ExchangeFit is a linear regression of a transformed
// exchange-complex variable against pH.
type ExchangeFit struct {
	Slope, Intercept float64

	// SlopeStdErr is the standard error of the slope.
	SlopeStdErr float64

	// R2 is the coefficient of determination.
	R2 float64

	// N is the number of profiles used in the fit.
	N int
}

// Predict returns the fitted transform value at the given pH.
func (f *ExchangeFit) Predict(pH float64) float64 { return f.Slope*pH + f.Intercept }

// PH returns the pH at which the fitted transform takes the value y:
// the inverse prediction. For FitAlSaturation, PH(0) is the pH at which
// aluminum saturation crosses one half.
func (f *ExchangeFit) PH(y float64) float64 { return (y - f.Intercept) / f.Slope }

// FitAlSaturation regresses the logit of the exchangeable aluminum
// saturation, ln((ExAl/ECEC)/(1−ExAl/ECEC)), against pH. Rows failing
// the Filter exclusions are dropped before fitting.
func FitAlSaturation(t soilph.ProfileTable) (*ExchangeFit, error) {
	return fit(t, func(p *soilph.Profile) float64 {
		s := p.ExAl / p.ECEC
		return math.Log(s / (1 - s))
	})
}

// FitAlPool regresses the log10 of the exchangeable aluminum pool
// against pH. Rows failing the Filter exclusions are dropped before
// fitting.
func FitAlPool(t soilph.ProfileTable) (*ExchangeFit, error) {
	return fit(t, func(p *soilph.Profile) float64 {
		return math.Log10(p.ExAl)
	})
}

func fit(t soilph.ProfileTable, y func(*soilph.Profile) float64) (*ExchangeFit, error) {
	rows := Filter(t)
	if len(rows) < 3 {
		return nil, &soilph.EmptyDomainError{Msg: fmt.Sprintf("buffer: only %d profiles usable for fitting", len(rows))}
	}
	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, p := range rows {
		xs[i] = p.PH
		ys[i] = y(p)
	}
	slope, intercept, r2, n, slopeErr, _ := stats.LinearRegression(xs, ys)
	return &ExchangeFit{
		Slope:       slope,
		Intercept:   intercept,
		SlopeStdErr: slopeErr,
		R2:          r2,
		N:           n,
	}, nil
}
