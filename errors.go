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

// An InputShapeError reports input whose shape does not match what a
// computation requires: parallel sequences of different lengths, or a
// table missing a required column or referring to a nonexistent cell.
type InputShapeError struct {
	Msg string
}

func (e *InputShapeError) Error() string { return e.Msg }

// An EmptyDomainError reports a computation whose domain turned out to
// be empty: an empty profile table, or a search area containing no
// cells. It aborts the invocation with no partial output.
type EmptyDomainError struct {
	Msg string
}

func (e *EmptyDomainError) Error() string { return e.Msg }

// An InvalidParameterError reports a parameter outside its valid range,
// such as a non-positive sample size or a NaN length scale.
type InvalidParameterError struct {
	Msg string
}

func (e *InvalidParameterError) Error() string { return e.Msg }
