/*
 * run.go, part of goeos.
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
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/rmera/goeos/build"
	"github.com/rmera/goeos/calc"
	"github.com/rmera/goeos/eos"
	"github.com/rmera/goeos/sample"
	"github.com/rmera/goeos/traj/stf"
)

// Options for Run. The zero value is usable.
type Options struct {
	//Calculator is the energy model. EMT if nil.
	Calculator calc.Calculator
	//Trajectory is the file where the sampled configurations are written.
	//Nothing is written if empty.
	Trajectory string
	//Models to fit. All the models supported by the current backend if nil.
	Models []string
	//MaxEvaluations for the iterative fits. The eos default if 0.
	MaxEvaluations int
	//SkipSampleCheck disables the check of the samples against the reference samples,
	//for runs with other structures or energy models.
	SkipSampleCheck bool
	Log             logr.Logger
}

// FitRow is the result of fitting one model.
type FitRow struct {
	Model    string  `yaml:"model"`
	V0       float64 `yaml:"v0"`
	E0       float64 `yaml:"e0"`
	B        float64 `yaml:"b"`
	BGPa     float64 `yaml:"b_gpa"`
	RSquared float64 `yaml:"r_squared"`
	Warning  string  `yaml:"warning,omitempty"`
}

// Exclusion is a model that could not be fitted.
type Exclusion struct {
	Model  string `yaml:"model"`
	Reason string `yaml:"reason"`
}

// SampleRow is one sampled point.
type SampleRow struct {
	Volume float64 `yaml:"volume"`
	Energy float64 `yaml:"energy"`
}

// Report is the outcome of a Run.
type Report struct {
	RunID      string        `yaml:"run_id"`
	Structure  string        `yaml:"structure"`
	Calculator string        `yaml:"calculator"`
	Trajectory string        `yaml:"trajectory,omitempty"`
	Samples    []SampleRow   `yaml:"samples"`
	Fits       []FitRow      `yaml:"fits"`
	Excluded   []Exclusion   `yaml:"excluded,omitempty"`
	Checks     int           `yaml:"checks"`
	Passed     bool          `yaml:"passed"`
	Violation  string        `yaml:"violation,omitempty"`
	Elapsed    time.Duration `yaml:"elapsed"`
}

// Run builds the structure in cfg, samples its energy over the scalings in cfg, fits the
// equations of state and validates the results against the references in cfg. A non-nil
// report is returned whenever the sampling succeeded, also when the validation
// fails, in which case the error is a *Violation.
func Run(ctx context.Context, cfg Config, opts Options) (*Report, error) {
	start := time.Now()
	log := opts.Log
	if log.GetSink() == nil {
		log = logr.FromContextOrDiscard(ctx)
	}
	st, sc := cfg.Structure(), cfg.Scan()
	atoms, err := build.Bulk(st.Symbol, st.Crystal, st.A, build.Options{Orthorhombic: st.Orthorhombic})
	if err != nil {
		return nil, fmt.Errorf("regress: building the structure: %w", err)
	}
	scalings, err := build.Scalings(sc.Lo, sc.Hi, sc.N)
	if err != nil {
		return nil, fmt.Errorf("regress: %w", err)
	}
	c := opts.Calculator
	if c == nil {
		emt := calc.NewEMT()
		emt.SetLogger(log.WithName("emt"))
		c = emt
	}
	R := &Report{
		RunID:      uuid.NewString(),
		Structure:  fmt.Sprintf("%s %s a=%g", atoms.Formula(), st.Crystal, st.A),
		Calculator: c.Name(),
		Trajectory: opts.Trajectory,
	}
	log = log.WithValues("run", R.RunID)
	var rec sample.Recorder
	var w *stf.StfW
	if opts.Trajectory != "" {
		header := map[string]string{
			"symbols": strings.Join(atoms.Symbols(), ","),
			"run":     R.RunID,
			"model":   c.Name(),
			"created": start.UTC().Format(time.RFC3339),
		}
		w, err = stf.NewWriter(opts.Trajectory, atoms.Len(), header)
		if err != nil {
			return nil, fmt.Errorf("regress: %w", err)
		}
		defer w.Close()
		rec = w
	}
	log.Info("sampling", "structure", R.Structure, "scalings", len(scalings), "calculator", c.Name())
	samples, err := sample.Run(logr.NewContext(ctx, log), atoms, c, scalings, rec)
	if err != nil {
		return nil, fmt.Errorf("regress: %w", err)
	}
	if w != nil {
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("regress: %w", err)
		}
	}
	for _, s := range samples {
		R.Samples = append(R.Samples, SampleRow{s.Volume, s.Energy})
	}
	models := opts.Models
	if models == nil {
		models = eos.CurrentModels()
	}
	F := eos.NewFitter()
	F.SetLogger(log.WithName("eos"))
	if opts.MaxEvaluations > 0 {
		F.MaxEvaluations = opts.MaxEvaluations
	}
	results := F.FitAll(samples, models)
	for _, m := range results.Failed() {
		R.Excluded = append(R.Excluded, Exclusion{m, results.Err(m).Error()})
	}
	for _, m := range results.Names() {
		row, err := fitRow(samples, m, F)
		if err != nil {
			return R, fmt.Errorf("regress: %w", err)
		}
		R.Fits = append(R.Fits, row)
	}
	var check []eos.Sample
	if !opts.SkipSampleCheck {
		check = samples
	}
	R.Checks, err = Validate(cfg, check, map[Backend]*eos.Results{Current: results})
	R.Elapsed = time.Since(start)
	if err != nil {
		R.Violation = err.Error()
		log.Info("validation failed", "error", R.Violation, "checks", R.Checks)
		return R, err
	}
	R.Passed = true
	log.Info("validation passed", "checks", R.Checks, "fitted", results.Len(), "excluded", len(R.Excluded))
	return R, nil
}

func fitRow(samples []eos.Sample, model string, F *eos.Fitter) (FitRow, error) {
	E, err := eos.FromSamples(samples, model)
	if err != nil {
		return FitRow{}, err
	}
	E.Fitter = F
	P, err := E.Fit()
	if err != nil {
		return FitRow{}, err
	}
	r2, err := E.RSquared()
	if err != nil {
		return FitRow{}, err
	}
	return FitRow{Model: model, V0: P.V0, E0: P.E0, B: P.B, BGPa: P.BulkModulusGPa(), RSquared: r2, Warning: E.Warning()}, nil
}
