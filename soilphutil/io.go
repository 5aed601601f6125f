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

// Package soilphutil wires the soilph analysis library into a
// command-line tool: configuration, file input and output, and the
// commands themselves.
package soilphutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ctessum/cdf"
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/sparse"
	goshp "github.com/jonas-p/go-shp"
	"github.com/tealeg/xlsx"

	soilph "github.com/eslessarev/GlobalSoilpH"
)

// profileColumns are the columns a profile table must provide, matched
// case-insensitively against the header row.
var profileColumns = []string{"id", "cell", "lon", "lat", "ph", "ecec", "exal"}

// wgs84 is the projection definition written alongside output
// shapefiles.
const wgs84 = `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137,298.257223563]],PRIMEM["Greenwich",0],UNIT["Degree",0.017453292519943295]]`

// ReadProfiles reads a soil profile table from the given sheet of an
// xlsx workbook. The first row must be a header containing the columns
// id, cell, lon, lat, ph, ecec, and exal in any order; rows with an
// empty id cell are skipped.
func ReadProfiles(fileName, sheet string) (soilph.ProfileTable, error) {
	f, err := xlsx.OpenFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("soilphutil: opening profile table: %v", err)
	}
	s, ok := f.Sheet[sheet]
	if !ok {
		return nil, fmt.Errorf("soilphutil: profile table %s has no sheet %s", fileName, sheet)
	}
	if len(s.Rows) < 2 {
		return nil, &soilph.InputShapeError{Msg: fmt.Sprintf("soilphutil: sheet %s has no data rows", sheet)}
	}
	col := make(map[string]int)
	for i, c := range s.Rows[0].Cells {
		col[strings.ToLower(strings.TrimSpace(c.Value))] = i
	}
	for _, name := range profileColumns {
		if _, ok := col[name]; !ok {
			return nil, &soilph.InputShapeError{Msg: fmt.Sprintf("soilphutil: profile table is missing required column %s", name)}
		}
	}
	var t soilph.ProfileTable
	for i, row := range s.Rows[1:] {
		cell := func(name string) string {
			j := col[name]
			if j >= len(row.Cells) {
				return ""
			}
			return strings.TrimSpace(row.Cells[j].Value)
		}
		if cell("id") == "" {
			continue
		}
		p := new(soilph.Profile)
		var err error
		for _, field := range []struct {
			name string
			i    *int
			f    *float64
		}{
			{name: "id", i: &p.ID},
			{name: "cell", i: &p.CellIndex},
			{name: "lon", f: &p.Lon},
			{name: "lat", f: &p.Lat},
			{name: "ph", f: &p.PH},
			{name: "ecec", f: &p.ECEC},
			{name: "exal", f: &p.ExAl},
		} {
			v := cell(field.name)
			if field.i != nil {
				*field.i, err = strconv.Atoi(v)
			} else {
				*field.f, err = strconv.ParseFloat(v, 64)
			}
			if err != nil {
				return nil, fmt.Errorf("soilphutil: profile table row %d, column %s: %v", i+2, field.name, err)
			}
		}
		t = append(t, p)
	}
	return t, nil
}

// ReadGrid reads global grid metadata from a NetCDF file containing the
// parallel variables lon, lat, and land (nonzero for land cells)
// indexed by grid cell, and a global attribute named resolution giving
// the grid spacing in degrees. Cell indices are assigned in storage
// order.
func ReadGrid(fileName string) (*soilph.Grid, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("soilphutil: opening grid metadata: %v", err)
	}
	defer f.Close()
	ff, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("soilphutil: reading grid metadata from %s: %v", fileName, err)
	}
	res := ff.Header.GetAttribute("", "resolution").([]float64)[0]
	lon, err := readVariable(ff, "lon")
	if err != nil {
		return nil, err
	}
	lat, err := readVariable(ff, "lat")
	if err != nil {
		return nil, err
	}
	land, err := readVariable(ff, "land")
	if err != nil {
		return nil, err
	}
	if len(lat) != len(lon) || len(land) != len(lon) {
		return nil, &soilph.InputShapeError{Msg: fmt.Sprintf("soilphutil: grid variables have mismatched lengths %d, %d, and %d",
			len(lon), len(lat), len(land))}
	}
	g := &soilph.Grid{
		Resolution: res,
		Cells:      make([]*soilph.GridCell, len(lon)),
	}
	for i := range lon {
		g.Cells[i] = &soilph.GridCell{
			Index: i,
			Lon:   lon[i],
			Lat:   lat[i],
			Land:  land[i] != 0,
		}
	}
	if err := g.Check(); err != nil {
		return nil, err
	}
	return g, nil
}

// ReadRaster reads variable varName from a NetCDF file into a dense
// array.
func ReadRaster(fileName, varName string) (*sparse.DenseArray, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("soilphutil: opening raster file: %v", err)
	}
	defer f.Close()
	ff, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("soilphutil: reading raster file %s: %v", fileName, err)
	}
	dims := ff.Header.Lengths(varName)
	if len(dims) == 0 {
		return nil, fmt.Errorf("soilphutil: variable %s is not in file %s", varName, fileName)
	}
	elements, err := readVariable(ff, varName)
	if err != nil {
		return nil, err
	}
	data := sparse.ZerosDense(dims...)
	copy(data.Elements, elements)
	return data, nil
}

// readVariable reads the whole of variable name from ff as float64s.
func readVariable(ff *cdf.File, name string) ([]float64, error) {
	dims := ff.Header.Lengths(name)
	if len(dims) == 0 {
		return nil, fmt.Errorf("soilphutil: variable %s is not in file", name)
	}
	n := 1
	for _, d := range dims {
		n *= d
	}
	r := ff.Reader(name, nil, nil)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil && err != io.EOF {
		return nil, fmt.Errorf("soilphutil: reading variable %s: %v", name, err)
	}
	o := make([]float64, n)
	switch b := buf.(type) {
	case []float32:
		for i, v := range b {
			o[i] = float64(v)
		}
	case []float64:
		copy(o, b)
	case []int32:
		for i, v := range b {
			o[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("soilphutil: variable %s has unsupported type %T", name, buf)
	}
	return o, nil
}

// WriteRaster writes data to w as a NetCDF file holding the single
// variable varName with lat and lon dimensions.
func WriteRaster(w *os.File, varName, description, units string, data *sparse.DenseArray) error {
	if len(data.Shape) != 2 {
		return &soilph.InputShapeError{Msg: fmt.Sprintf("soilphutil: raster shape %v is not two-dimensional", data.Shape)}
	}
	h := cdf.NewHeader([]string{"lat", "lon"}, []int{data.Shape[0], data.Shape[1]})
	h.AddVariable(varName, []string{"lat", "lon"}, []float32{0})
	h.AddAttribute(varName, "description", description)
	h.AddAttribute(varName, "units", units)
	h.Define()
	ff, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("soilphutil: creating raster file: %v", err)
	}
	data32 := make([]float32, len(data.Elements))
	for i, v := range data.Elements {
		data32[i] = float32(v)
	}
	end := ff.Header.Lengths(varName)
	start := make([]int, len(end))
	wr := ff.Writer(varName, start, end)
	if _, err := wr.Write(data32); err != nil {
		return fmt.Errorf("soilphutil: writing variable %s: %v", varName, err)
	}
	return cdf.UpdateNumRecs(w)
}

// WriteSampledShapefile writes the resampled profile table as a point
// shapefile, one point per row at the profile's cell center, plus a
// .prj file declaring WGS84 coordinates.
func WriteSampledShapefile(fileName string, t soilph.ProfileTable) error {
	fields := []goshp.Field{
		goshp.NumberField("id", 10),
		goshp.NumberField("cell", 10),
		goshp.FloatField("ph", 14, 8),
		goshp.FloatField("ecec", 14, 8),
		goshp.FloatField("exal", 14, 8),
	}
	fileBase := strings.TrimSuffix(fileName, ".shp")
	e, err := shp.NewEncoderFromFields(fileBase+".shp", goshp.POINT, fields...)
	if err != nil {
		return fmt.Errorf("soilphutil: creating output shapefile: %v", err)
	}
	for _, p := range t {
		err := e.EncodeFields(geom.Point{X: p.Lon, Y: p.Lat},
			p.ID, p.CellIndex, p.PH, p.ECEC, p.ExAl)
		if err != nil {
			return fmt.Errorf("soilphutil: writing output shapefile: %v", err)
		}
	}
	e.Close()

	f, err := os.Create(fileBase + ".prj")
	if err != nil {
		return fmt.Errorf("soilphutil: creating output prj file: %v", err)
	}
	fmt.Fprint(f, wgs84)
	return f.Close()
}

// WriteSampledCSV writes the resampled profile table to w as CSV with
// the same columns the profile readers expect.
func WriteSampledCSV(w io.Writer, t soilph.ProfileTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(profileColumns); err != nil {
		return err
	}
	for _, p := range t {
		err := cw.Write([]string{
			strconv.Itoa(p.ID),
			strconv.Itoa(p.CellIndex),
			strconv.FormatFloat(p.Lon, 'g', -1, 64),
			strconv.FormatFloat(p.Lat, 'g', -1, 64),
			strconv.FormatFloat(p.PH, 'g', -1, 64),
			strconv.FormatFloat(p.ECEC, 'g', -1, 64),
			strconv.FormatFloat(p.ExAl, 'g', -1, 64),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadProfilesCSV reads a profile table in the format written by
// WriteSampledCSV.
func ReadProfilesCSV(r io.Reader) (soilph.ProfileTable, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("soilphutil: reading profile CSV: %v", err)
	}
	if len(rows) < 2 {
		return nil, &soilph.InputShapeError{Msg: "soilphutil: profile CSV has no data rows"}
	}
	col := make(map[string]int)
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range profileColumns {
		if _, ok := col[name]; !ok {
			return nil, &soilph.InputShapeError{Msg: fmt.Sprintf("soilphutil: profile CSV is missing required column %s", name)}
		}
	}
	t := make(soilph.ProfileTable, 0, len(rows)-1)
	for i, row := range rows[1:] {
		p := new(soilph.Profile)
		var err error
		if p.ID, err = strconv.Atoi(row[col["id"]]); err == nil {
			if p.CellIndex, err = strconv.Atoi(row[col["cell"]]); err == nil {
				for _, field := range []struct {
					name string
					f    *float64
				}{
					{"lon", &p.Lon}, {"lat", &p.Lat}, {"ph", &p.PH},
					{"ecec", &p.ECEC}, {"exal", &p.ExAl},
				} {
					if *field.f, err = strconv.ParseFloat(row[col[field.name]], 64); err != nil {
						break
					}
				}
			}
		}
		if err != nil {
			return nil, fmt.Errorf("soilphutil: profile CSV row %d: %v", i+2, err)
		}
		t = append(t, p)
	}
	return t, nil
}
