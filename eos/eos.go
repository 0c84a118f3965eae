/*
 * eos.go, part of goeos.
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

package eos

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// EOS is an equation of state fitted to a set of volume-energy samples.
type EOS struct {
	//Fitter is used by Fit. It can be replaced before calling Fit.
	Fitter   *Fitter
	volumes  []float64
	energies []float64
	model    *Model
	fitted   bool
	params   Params
	coef     []float64
	warning  string
}

// New returns an EOS for the given volumes (A^3) and energies (eV), with the model called name.
// The data is copied.
func New(volumes, energies []float64, name string) (*EOS, error) {
	m, err := ParseModel(name)
	if err != nil {
		return nil, errDecorate(err, "New")
	}
	if len(volumes) != len(energies) {
		return nil, &FitError{model: m.Name, err: ErrLengthMismatch, deco: []string{"New"}}
	}
	E := &EOS{
		Fitter:   NewFitter(),
		volumes:  append([]float64(nil), volumes...),
		energies: append([]float64(nil), energies...),
		model:    m,
	}
	return E, nil
}

// FromSamples returns an EOS for the samples with the model called name.
func FromSamples(samples []Sample, name string) (*EOS, error) {
	E, err := New(Volumes(samples), Energies(samples), name)
	if err != nil {
		return nil, errDecorate(err, "FromSamples")
	}
	return E, nil
}

// Model returns the model of the EOS.
func (E *EOS) Model() *Model {
	return E.model
}

// Fit fits the EOS and returns the fitted parameters. Calling Fit again
// gives the same (bit-identical) result.
func (E *EOS) Fit() (Params, error) {
	P, coef, err := E.Fitter.fit(E.volumes, E.energies, E.model)
	if err != nil {
		return Params{}, errDecorate(err, "Fit")
	}
	E.params, E.coef, E.fitted = P, coef, true
	E.warning = ""
	if lo, hi := floats.Min(E.volumes), floats.Max(E.volumes); P.V0 < lo || P.V0 > hi {
		E.warning = fmt.Sprintf("the minimum volume of the fit (%.4f A^3) is not within the sampled range [%.4f, %.4f]", P.V0, lo, hi)
		E.Fitter.log.Info("warning: "+E.warning, "model", E.model.Name)
	}
	return P, nil
}

// Params returns the fitted parameters.
func (E *EOS) Params() (Params, error) {
	if !E.fitted {
		return Params{}, &FitError{model: E.model.Name, err: ErrNotFitted, deco: []string{"Params"}}
	}
	return E.params, nil
}

// Warning returns a non-empty string if something about the last fit
// looks suspicious, such as a minimum outside of the sampled volumes.
func (E *EOS) Warning() string {
	return E.warning
}

// Energy returns the energy of the fitted curve at the volume v.
func (E *EOS) Energy(v float64) (float64, error) {
	if !E.fitted {
		return 0, &FitError{model: E.model.Name, err: ErrNotFitted, deco: []string{"Energy"}}
	}
	return E.energy(v), nil
}

func (E *EOS) energy(v float64) float64 {
	if E.model.Name == SJEOS {
		return sjeosEnergy(E.coef, math.Pow(v, -1.0/3.0))
	}
	return E.model.energy(v, E.coef)
}

// RSquared returns the coefficient of determination of the fit.
func (E *EOS) RSquared() (float64, error) {
	if !E.fitted {
		return 0, &FitError{model: E.model.Name, err: ErrNotFitted, deco: []string{"RSquared"}}
	}
	est := make([]float64, len(E.volumes))
	for i, v := range E.volumes {
		est[i] = E.energy(v)
	}
	return stat.RSquaredFrom(est, E.energies, nil), nil
}

// PlotData contains what is needed to plot a fitted EOS.
type PlotData struct {
	Model string
	Params
	//The fitted curve.
	Volumes  []float64
	Energies []float64
	//The samples.
	SampleVolumes  []float64
	SampleEnergies []float64
}

// PlotData returns the fitted curve evaluated at n points evenly spaced over
// the sampled volume range, together with the samples.
func (E *EOS) PlotData(n int) (*PlotData, error) {
	if !E.fitted {
		return nil, &FitError{model: E.model.Name, err: ErrNotFitted, deco: []string{"PlotData"}}
	}
	if n < 2 {
		n = 2
	}
	D := &PlotData{
		Model:          E.model.Name,
		Params:         E.params,
		Volumes:        floats.Span(make([]float64, n), floats.Min(E.volumes), floats.Max(E.volumes)),
		Energies:       make([]float64, n),
		SampleVolumes:  append([]float64(nil), E.volumes...),
		SampleEnergies: append([]float64(nil), E.energies...),
	}
	for i, v := range D.Volumes {
		D.Energies[i] = E.energy(v)
	}
	return D, nil
}

// ReadSamples reads volume-energy samples from r, one per line, as two whitespace-separated
// numbers. Empty lines and lines starting with '#' are ignored, as are any fields after the
// first two.
func ReadSamples(r io.Reader) ([]Sample, error) {
	var ret []Sample
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("eos: line %d: expected volume and energy, got %q", line, text)
		}
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("eos: line %d: bad volume: %w", line, err)
		}
		e, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("eos: line %d: bad energy: %w", line, err)
		}
		ret = append(ret, Sample{Volume: v, Energy: e})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("eos: reading samples: %w", err)
	}
	return ret, nil
}
