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

	"github.com/lnashier/viper"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is the tool version number.
const Version = "1.0.0"

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	Cfg = viper.New()

	// Options are the configuration options available to the soilph
	// commands.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "profiles",
			usage: `
              profiles specifies the xlsx file holding the soil profile table.`,
			defaultVal: "ncss.xlsx",
			flagsets:   []*pflag.FlagSet{resampleCmd.Flags()},
		},
		{
			name: "sheet",
			usage: `
              sheet specifies the worksheet holding the profile table within
              the profiles file.`,
			defaultVal: "subsoil",
			flagsets:   []*pflag.FlagSet{resampleCmd.Flags()},
		},
		{
			name: "grid",
			usage: `
              grid specifies the NetCDF file holding the global grid metadata
              (lon, lat, and land variables and a resolution attribute).`,
			defaultVal: "grid.ncf",
			flagsets:   []*pflag.FlagSet{resampleCmd.Flags()},
		},
		{
			name: "lengthscale",
			usage: `
              lengthscale specifies the search radius (km): land cells within
              this great-circle distance of any observed cell can receive
              sample nodes.`,
			shorthand:  "l",
			defaultVal: 500.,
			flagsets:   []*pflag.FlagSet{resampleCmd.Flags()},
		},
		{
			name: "samples",
			usage: `
              samples specifies the number of profiles to draw per replicate.`,
			shorthand:  "n",
			defaultVal: 10000,
			flagsets:   []*pflag.FlagSet{resampleCmd.Flags()},
		},
		{
			name: "replicates",
			usage: `
              replicates specifies the number of bootstrap replicates used to
              summarize the mean-pH statistic. The written table always comes
              from the first replicate.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{resampleCmd.Flags()},
		},
		{
			name: "seed",
			usage: `
              seed specifies the random seed, making runs reproducible.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{resampleCmd.Flags()},
		},
		{
			name: "out",
			usage: `
              out specifies the output file location. The resample command
              writes CSV, and the pet command writes NetCDF.`,
			shorthand:  "o",
			defaultVal: "resampled.csv",
			flagsets:   []*pflag.FlagSet{resampleCmd.Flags(), petCmd.Flags()},
		},
		{
			name: "shapefile",
			usage: `
              shapefile optionally specifies a point shapefile to write the
              resampled profiles to, alongside the CSV output.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{resampleCmd.Flags()},
		},
		{
			name: "climate",
			usage: `
              climate specifies the NetCDF file holding the gridded climate
              variables tair (°C), rn (W m-2), vpd (kPa), wind (m s-1), and
              biome (class codes).`,
			defaultVal: "climate.ncf",
			flagsets:   []*pflag.FlagSet{petCmd.Flags()},
		},
		{
			name: "model",
			usage: `
              model specifies the PET model: penman-monteith or
              priestley-taylor.`,
			defaultVal: "penman-monteith",
			flagsets:   []*pflag.FlagSet{petCmd.Flags()},
		},
		{
			name: "windheight",
			usage: `
              windheight specifies the height (m) of the wind speed
              measurements.`,
			defaultVal: 10.,
			flagsets:   []*pflag.FlagSet{petCmd.Flags()},
		},
		{
			name: "roughness",
			usage: `
              roughness specifies the surface roughness length (m) used to
              convert wind speed to aerodynamic conductance.`,
			defaultVal: 0.1,
			flagsets:   []*pflag.FlagSet{petCmd.Flags()},
		},
		{
			name: "resampled",
			usage: `
              resampled specifies the CSV file holding the resampled subsoil
              table (the output of the resample command).`,
			defaultVal: "resampled.csv",
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags()},
		},
		{
			name: "pco2",
			usage: `
              pco2 specifies the soil CO2 partial pressure (atm) used for the
              calcite equilibrium calculation.`,
			defaultVal: 0.00316, // 10x atmospheric, typical of subsoil air
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags()},
		},
	}

	for _, option := range options {
		for _, set := range option.flagsets {
			switch d := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, d, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, d, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, d, option.usage)
			default:
				panic(fmt.Sprintf("invalid argument type: %T", d))
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
	Root.AddCommand(versionCmd, resampleCmd, petCmd, bufferCmd)
}

// setConfig reads the configuration file specified by the config
// option, if any.
func setConfig() error {
	if cfg := Cfg.GetString("config"); cfg != "" {
		Cfg.SetConfigFile(cfg)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("soilphutil: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "soilph",
	Short: "A tool for global soil pH analysis.",
	Long: `soilph runs the numerical analyses supporting a global study of
soil pH: spatially weighted bootstrap resampling of soil profile
observations, potential evapotranspiration estimation from gridded
climate data, and soil pH buffering calculations.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("soilph v%s\n", Version)
	},
}

var resampleCmd = &cobra.Command{
	Use:   "resample",
	Short: "Draw a spatially weighted bootstrap resample of the profile table.",
	Long: `resample builds the search area of land cells within lengthscale km
of any observed cell, draws sample nodes from it weighted by true cell
area, assigns each node a profile from the nearest observed cell, and
writes the resampled table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Resample(
			Cfg.GetString("profiles"),
			Cfg.GetString("sheet"),
			Cfg.GetString("grid"),
			Cfg.GetString("out"),
			Cfg.GetString("shapefile"),
			cast.ToFloat64(Cfg.Get("lengthscale")),
			cast.ToInt(Cfg.Get("samples")),
			cast.ToInt(Cfg.Get("replicates")),
			cast.ToUint64(Cfg.Get("seed")),
		)
	},
}

var petCmd = &cobra.Command{
	Use:   "pet",
	Short: "Estimate annual potential evapotranspiration from gridded climate data.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return PET(
			Cfg.GetString("climate"),
			Cfg.GetString("out"),
			Cfg.GetString("model"),
			cast.ToFloat64(Cfg.Get("windheight")),
			cast.ToFloat64(Cfg.Get("roughness")),
		)
	},
}

var bufferCmd = &cobra.Command{
	Use:   "buffer",
	Short: "Fit the pH buffering models to the resampled subsoil table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Buffer(
			Cfg.GetString("resampled"),
			cast.ToFloat64(Cfg.Get("pco2")),
		)
	},
}
