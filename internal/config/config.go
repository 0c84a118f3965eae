/*
 * config.go, part of goeos.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package config loads the goeos configuration from a YAML file, the environment
// (variables prefixed with GOEOS_) and command line flags, using viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/rmera/goeos/calc"
	"github.com/rmera/goeos/regress"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables read.
const EnvPrefix = "GOEOS"

// Structure is the crystal sampled.
type Structure struct {
	Symbol       string  `mapstructure:"symbol"`
	Crystal      string  `mapstructure:"crystal"`
	A            float64 `mapstructure:"a"`
	Orthorhombic bool    `mapstructure:"orthorhombic"`
}

// Scan is the set of volume scalings.
type Scan struct {
	Lo float64 `mapstructure:"lo"`
	Hi float64 `mapstructure:"hi"`
	N  int     `mapstructure:"n"`
}

// Calculator selects the energy model.
type Calculator struct {
	Name    string        `mapstructure:"name"`    //emt or external
	Command string        `mapstructure:"command"` //for external
	Timeout time.Duration `mapstructure:"timeout"`
}

// Tolerances override the default regression tolerances. Zero values are ignored.
type Tolerances struct {
	SameCurrent    float64 `mapstructure:"same_current"`
	SameLegacy     float64 `mapstructure:"same_legacy"`
	CrossBackendV0 float64 `mapstructure:"cross_backend_v0"`
	CrossBackendB  float64 `mapstructure:"cross_backend_b"`
	CrossModelV0   float64 `mapstructure:"cross_model_v0"`
	CrossModelB    float64 `mapstructure:"cross_model_b"`
	SampleVolume   float64 `mapstructure:"sample_volume"`
	SampleEnergy   float64 `mapstructure:"sample_energy"`
}

// Config is the full configuration of the goeos command.
type Config struct {
	Structure      Structure  `mapstructure:"structure"`
	Scan           Scan       `mapstructure:"scan"`
	Calculator     Calculator `mapstructure:"calculator"`
	Tolerances     Tolerances `mapstructure:"tolerances"`
	Models         []string   `mapstructure:"models"`
	MaxEvaluations int        `mapstructure:"max_evaluations"`
	Trajectory     string     `mapstructure:"trajectory"`
	MetricsFile    string     `mapstructure:"metrics_file"`
	Output         string     `mapstructure:"output"`
	Verbose        int        `mapstructure:"verbose"`
	Development    bool       `mapstructure:"development"`
	NomadURL       string     `mapstructure:"nomad_url"`
}

// SetDefaults sets the defaults of all the configuration keys in v, from
// regress.DefaultConfig. Keys without a default are not read from the environment.
func SetDefaults(v *viper.Viper) {
	d := regress.DefaultConfig()
	st, sc := d.Structure(), d.Scan()
	v.SetDefault("structure.symbol", st.Symbol)
	v.SetDefault("structure.crystal", st.Crystal)
	v.SetDefault("structure.a", st.A)
	v.SetDefault("structure.orthorhombic", st.Orthorhombic)
	v.SetDefault("scan.lo", sc.Lo)
	v.SetDefault("scan.hi", sc.Hi)
	v.SetDefault("scan.n", sc.N)
	v.SetDefault("calculator.name", calc.EMTName)
	v.SetDefault("calculator.command", "")
	v.SetDefault("calculator.timeout", time.Duration(0))
	for _, k := range []string{"same_current", "same_legacy", "cross_backend_v0", "cross_backend_b", "cross_model_v0", "cross_model_b", "sample_volume", "sample_energy"} {
		v.SetDefault("tolerances."+k, 0.0)
	}
	v.SetDefault("models", []string{})
	v.SetDefault("max_evaluations", 0)
	v.SetDefault("trajectory", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("output", "table")
	v.SetDefault("verbose", 0)
	v.SetDefault("development", false)
	v.SetDefault("nomad_url", "")
}

// Load reads the configuration into v and decodes it. If file is empty, goeos.yaml is
// looked for in the working directory and in $HOME/.goeos; not finding it is not an error.
// Environment variables such as GOEOS_SCAN_N override the file, and flags bound to v
// override both.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("goeos")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.goeos")
	}
	if err := v.ReadInConfig(); err != nil {
		var notfound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notfound) {
			return Config{}, fmt.Errorf("config: reading %s: %w", file, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decoding: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the values that can't be checked later by the packages using them.
func (c Config) Validate() error {
	switch c.Calculator.Name {
	case calc.EMTName:
	case calc.ExternalName:
		if c.Calculator.Command == "" {
			return fmt.Errorf("config: the external calculator needs a command")
		}
	default:
		return fmt.Errorf("config: unknown calculator %q", c.Calculator.Name)
	}
	switch c.Output {
	case "table", "yaml":
	default:
		return fmt.Errorf("config: unknown output format %q", c.Output)
	}
	return nil
}

// Regress returns the regression configuration: the defaults with the
// structure, scan and non-zero tolerances of c.
func (c Config) Regress() regress.Config {
	r := regress.DefaultConfig()
	r = r.WithStructure(regress.Structure(c.Structure)).WithScan(regress.Scan(c.Scan))
	t := r.Tolerances()
	override := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	override(&t.SameCurrent, c.Tolerances.SameCurrent)
	override(&t.SameLegacy, c.Tolerances.SameLegacy)
	override(&t.CrossBackendV0, c.Tolerances.CrossBackendV0)
	override(&t.CrossBackendB, c.Tolerances.CrossBackendB)
	override(&t.CrossModelV0, c.Tolerances.CrossModelV0)
	override(&t.CrossModelB, c.Tolerances.CrossModelB)
	override(&t.SampleVolume, c.Tolerances.SampleVolume)
	override(&t.SampleEnergy, c.Tolerances.SampleEnergy)
	return r.WithTolerances(t)
}

// IsReference returns true if c samples the structure the reference samples were obtained for,
// with the EMT calculator.
func (c Config) IsReference() bool {
	d := regress.DefaultConfig()
	return regress.Structure(c.Structure) == d.Structure() && regress.Scan(c.Scan) == d.Scan() && c.Calculator.Name == calc.EMTName
}

// NewCalculator returns the calculator selected in c.
func (c Config) NewCalculator(log logr.Logger) calc.Calculator {
	if c.Calculator.Name == calc.ExternalName {
		X := calc.NewExternal(c.Calculator.Command)
		if c.Calculator.Timeout > 0 {
			X.SetTimeout(c.Calculator.Timeout)
		}
		X.SetLogger(log.WithName("external"))
		return X
	}
	E := calc.NewEMT()
	E.SetLogger(log.WithName("emt"))
	return E
}
