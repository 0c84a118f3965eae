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

// Package regress checks fitted equation of state parameters against historical
// reference values, and runs the whole equation of state workflow for a crystal.
package regress

import (
	"sort"
	"strings"

	"github.com/rmera/goeos/build"
	"github.com/rmera/goeos/eos"
)

// Backend identifies a numeric backend that produced reference values.
type Backend string

// The backends with reference values.
const (
	Legacy  Backend = "legacy"  //ScientificPython 2.6.2/Numeric 24.2
	Current Backend = "current" //scipy 0.7.0/numpy 1.3.0
)

// Tolerances are the maximum relative errors allowed for each kind of comparison.
type Tolerances struct {
	SameCurrent    float64 //V0 and B against the reference of the current backend
	SameLegacy     float64 //V0 and B against the reference of the legacy backend
	CrossBackendV0 float64
	CrossBackendB  float64
	CrossModelV0   float64
	CrossModelB    float64
	SampleVolume   float64
	SampleEnergy   float64
}

// Same returns the same-backend tolerance for b.
func (T Tolerances) Same(b Backend) float64 {
	if b == Legacy {
		return T.SameLegacy
	}
	return T.SameCurrent
}

// DefaultTolerances returns the tolerances the reference data is checked with.
func DefaultTolerances() Tolerances {
	return Tolerances{
		SameCurrent:    5e-6,
		SameLegacy:     1e-6,
		CrossBackendV0: 1e-3,
		CrossBackendB:  2e-2, //different backends disagree by ~1% in B
		CrossModelV0:   5e-5,
		CrossModelB:    1e-2,
		SampleVolume:   1e-6,
		SampleEnergy:   1e-4,
	}
}

// Structure is the crystal sampled.
type Structure struct {
	Symbol       string
	Crystal      string
	A            float64 //lattice constant in A
	Orthorhombic bool
}

// Scan is the set of linear scalings of the cell, from Lo to Hi, both included.
type Scan struct {
	Lo, Hi float64
	N      int
}

// Config is the configuration of a regression run. It is a value: the With* methods
// return modified copies, and the reference tables can't be modified after creation.
type Config struct {
	references map[Backend]map[string]eos.Params
	volumes    []float64
	energies   []float64
	tol        Tolerances
	structure  Structure
	scan       Scan
}

var legacyReference = map[string]eos.Params{
	eos.Taylor:           {V0: 31.896496488942326, E0: -0.0096090164907389405, B: 0.23802461480382878},
	eos.Murnaghan:        {V0: 31.866877784374836, E0: -0.0096119194044206324, B: 0.24202636566649313},
	eos.Birch:            {V0: 31.866809942501359, E0: -0.0096161509968013953, B: 0.24231157506701367},
	eos.BirchMurnaghan:   {V0: 31.867394584147391, E0: -0.009609309015137282, B: 0.23891301754324207},
	eos.PourierTarantola: {V0: 31.866473067615818, E0: -0.009599545236557528, B: 0.24120474301680481},
	eos.Vinet:            {V0: 31.866741599224699, E0: -0.0096110298949974356, B: 0.24196956466978184},
	eos.AntonSchmidt:     {V0: 31.745672779210317, E0: 0.012772723347888704, B: 0.19905185689855259},
}

var currentReference = map[string]eos.Params{
	eos.SJEOS:            {V0: 31.867118229937798, E0: -0.0096410046694188622, B: 0.23984474782755572},
	eos.Taylor:           {V0: 31.867114798134253, E0: -0.0096606904384420791, B: 0.24112293515031302},
	eos.Murnaghan:        {V0: 31.866729811658402, E0: -0.0096340233039666941, B: 0.23937322901028654},
	eos.Birch:            {V0: 31.867567845123162, E0: -0.0096525305272843597, B: 0.24062224387079953},
	eos.BirchMurnaghan:   {V0: 31.8675678459, E0: -0.0096461024146103497, B: 0.240622243862},
	eos.PourierTarantola: {V0: 31.866750629512403, E0: -0.0096361387118443446, B: 0.23951298910150925},
	eos.Vinet:            {V0: 31.866655146818957, E0: -0.0096368465365208426, B: 0.23955684756879458},
	eos.P3:               {V0: 31.867115199307815, E0: -0.0096606897797322233, B: 0.24112291100256208},
}

// DefaultConfig returns the configuration for the EMT aluminum reference run:
// fcc Al with a = 4.0 A in the orthorhombic cell, scaled from 0.97 to 1.03 in 5 steps.
func DefaultConfig() Config {
	return Config{
		references: map[Backend]map[string]eos.Params{Legacy: legacyReference, Current: currentReference},
		volumes:    []float64{29.205536, 30.581492, 32.000000, 33.461708, 34.967264},
		energies:   []float64{0.0190898, -0.0031172, -0.0096925, -0.0004014, 0.0235753},
		tol:        DefaultTolerances(),
		structure:  Structure{Symbol: "Al", Crystal: build.FCC, A: 4.0, Orthorhombic: true},
		scan:       Scan{Lo: 0.97, Hi: 1.03, N: 5},
	}
}

// Reference returns the reference parameters for model with backend b.
func (C Config) Reference(b Backend, model string) (eos.Params, bool) {
	P, ok := C.references[b][strings.ToLower(model)]
	return P, ok
}

// ReferenceModels returns the models with reference values for backend b, sorted.
func (C Config) ReferenceModels(b Backend) []string {
	ret := make([]string, 0, len(C.references[b]))
	for k := range C.references[b] {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// SampleVolumes returns a copy of the reference sample volumes.
func (C Config) SampleVolumes() []float64 {
	return append([]float64(nil), C.volumes...)
}

// SampleEnergies returns a copy of the reference sample energies.
func (C Config) SampleEnergies() []float64 {
	return append([]float64(nil), C.energies...)
}

// Tolerances returns the tolerances of the configuration.
func (C Config) Tolerances() Tolerances { return C.tol }

// Structure returns the crystal to sample.
func (C Config) Structure() Structure { return C.structure }

// Scan returns the scalings to sample.
func (C Config) Scan() Scan { return C.scan }

// WithTolerances returns a copy of C with the tolerances t.
func (C Config) WithTolerances(t Tolerances) Config {
	C.tol = t
	return C
}

// WithStructure returns a copy of C that samples the structure s.
func (C Config) WithStructure(s Structure) Config {
	C.structure = s
	return C
}

// WithScan returns a copy of C that samples the scalings in s.
func (C Config) WithScan(s Scan) Config {
	C.scan = s
	return C
}

// WithSamples returns a copy of C with the given reference samples.
// The slices are copied.
func (C Config) WithSamples(volumes, energies []float64) Config {
	C.volumes = append([]float64(nil), volumes...)
	C.energies = append([]float64(nil), energies...)
	return C
}
