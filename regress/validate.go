/*
 * validate.go, part of goeos.
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

package regress

import (
	"fmt"
	"math"

	"github.com/rmera/goeos/eos"
)

// Tier is a kind of comparison.
type Tier string

// Comparison tiers.
const (
	TierSamples      Tier = "samples"
	TierSameBackend  Tier = "same-backend"
	TierCrossBackend Tier = "cross-backend"
	TierCrossModel   Tier = "cross-model"
)

// Field is a compared quantity.
type Field string

// Compared fields. E0 is never compared.
const (
	FieldV0     Field = "V0"
	FieldB      Field = "B"
	FieldVolume Field = "volume"
	FieldEnergy Field = "energy"
)

// Violation is returned by Validate when a comparison goes beyond its tolerance.
type Violation struct {
	Tier           Tier
	Field          Field
	Model          string  //the model checked, or empty for sample checks
	Backend        Backend //the backend of the checked value
	Against        string  //the model of the reference value
	AgainstBackend Backend
	Index          int //the index of the sample, for sample checks
	Got, Want      float64
	RelErr, Bound  float64
	deco           []string
}

func (V *Violation) Error() string {
	if V.Tier == TierSamples {
		return fmt.Sprintf("regress: %s check: sample %d %s %g, reference %g: relative error %.3g > %g", V.Tier, V.Index, V.Field, V.Got, V.Want, V.RelErr, V.Bound)
	}
	return fmt.Sprintf("regress: %s check: %s %s (%s) %g vs %s (%s) %g: relative error %.3g > %g",
		V.Tier, V.Model, V.Field, V.Backend, V.Got, V.Against, V.AgainstBackend, V.Want, V.RelErr, V.Bound)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (V *Violation) Decorate(dec string) []string {
	if dec != "" {
		V.deco = append(V.deco, dec)
	}
	return V.deco
}

// Critical returns true, a violation means the check failed.
func (V *Violation) Critical() bool { return true }

// relErr returns |got-want|/|want|.
func relErr(got, want float64) float64 {
	if want == 0 {
		if got == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return math.Abs(got-want) / math.Abs(want)
}

// validator runs the comparisons and counts them.
type validator struct {
	cfg    Config
	checks int
}

func (v *validator) check(V Violation) error {
	v.checks++
	V.RelErr = relErr(V.Got, V.Want)
	//NaN must fail too
	if !(V.RelErr < V.Bound) {
		V.deco = []string{"Validate"}
		return &V
	}
	return nil
}

func (v *validator) params(V Violation, got, want eos.Params, boundV0, boundB float64) error {
	V.Field, V.Got, V.Want, V.Bound = FieldV0, got.V0, want.V0, boundV0
	if err := v.check(V); err != nil {
		return err
	}
	V.Field, V.Got, V.Want, V.Bound = FieldB, got.B, want.B, boundB
	return v.check(V)
}

// Samples checks the sampled volumes and energies against the reference samples in cfg.
// It returns the number of comparisons made and a *Violation for the first failing one, if any.
func Samples(cfg Config, samples []eos.Sample) (int, error) {
	v := &validator{cfg: cfg}
	err := v.samples(samples)
	return v.checks, err
}

func (v *validator) samples(samples []eos.Sample) error {
	tol := v.cfg.Tolerances()
	if len(samples) != len(v.cfg.volumes) {
		v.checks++
		return &Violation{Tier: TierSamples, Field: FieldVolume, Index: -1, Got: float64(len(samples)), Want: float64(len(v.cfg.volumes)), RelErr: math.Inf(1), deco: []string{"Validate"}}
	}
	for i, s := range samples {
		if err := v.check(Violation{Tier: TierSamples, Field: FieldVolume, Index: i, Got: s.Volume, Want: v.cfg.volumes[i], Bound: tol.SampleVolume}); err != nil {
			return err
		}
		if err := v.check(Violation{Tier: TierSamples, Field: FieldEnergy, Index: i, Got: s.Energy, Want: v.cfg.energies[i], Bound: tol.SampleEnergy}); err != nil {
			return err
		}
	}
	return nil
}

// Validate compares the fitted parameters in results, obtained with each backend, against
// the references in cfg, and the parameters fitted with the current backend against each other.
// If samples is not nil, it is first checked against the reference samples.
// Only V0 and B are compared. The first comparison beyond its tolerance stops
// the validation and is returned as a *Violation. Validate returns the number of comparisons made.
//
// Backends without results are not checked against their own reference.
func Validate(cfg Config, samples []eos.Sample, results map[Backend]*eos.Results) (int, error) {
	v := &validator{cfg: cfg}
	tol := cfg.Tolerances()
	if samples != nil {
		if err := v.samples(samples); err != nil {
			return v.checks, err
		}
	}
	for _, b := range []Backend{Legacy, Current} {
		R := results[b]
		if R == nil {
			continue
		}
		for _, m := range R.Names() {
			want, ok := cfg.Reference(b, m)
			if !ok {
				continue
			}
			got, _ := R.Get(m)
			V := Violation{Tier: TierSameBackend, Model: m, Backend: b, Against: m, AgainstBackend: b}
			if err := v.params(V, got, want, tol.Same(b), tol.Same(b)); err != nil {
				return v.checks, err
			}
		}
	}
	cur := results[Current]
	if cur == nil {
		return v.checks, nil
	}
	for _, m := range cur.Names() {
		want, ok := cfg.Reference(Legacy, m)
		if !ok {
			continue
		}
		got, _ := cur.Get(m)
		V := Violation{Tier: TierCrossBackend, Model: m, Backend: Current, Against: m, AgainstBackend: Legacy}
		if err := v.params(V, got, want, tol.CrossBackendV0, tol.CrossBackendB); err != nil {
			return v.checks, err
		}
	}
	names := cur.Names()
	for _, m1 := range names {
		want, _ := cur.Get(m1)
		for _, m2 := range names {
			if m1 == m2 {
				continue
			}
			got, _ := cur.Get(m2)
			V := Violation{Tier: TierCrossModel, Model: m2, Backend: Current, Against: m1, AgainstBackend: Current}
			if err := v.params(V, got, want, tol.CrossModelV0, tol.CrossModelB); err != nil {
				return v.checks, err
			}
		}
	}
	return v.checks, nil
}
