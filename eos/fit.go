/*
 * fit.go, part of goeos.
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
	"errors"
	"math"
	"sort"

	"github.com/go-logr/logr"
	"github.com/rmera/goeos/units"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultMaxEvaluations is the default limit of function evaluations for the iterative fits.
const DefaultMaxEvaluations = 1000

// Levenberg-Marquardt constants.
const (
	lmLambda0  = 1e-3
	lmLambdaUp = 10.0
	lmMaxLamb  = 1e20
	lmStepTol  = 1e-10
	lmSqTol    = 1e-15
	lmDiffStep = 1.49e-8
)

// Sample is one volume (A^3), energy (eV) point.
type Sample struct {
	Volume float64
	Energy float64
}

// Params are the fitted equilibrium volume (A^3), energy at that volume (eV) and
// bulk modulus (eV/A^3).
type Params struct {
	V0 float64
	E0 float64
	B  float64
}

// BulkModulusGPa returns the bulk modulus in GPa.
func (P Params) BulkModulusGPa() float64 {
	return units.EVA3ToGPa(P.B)
}

// Fitter fits equations of state to samples. The zero value is not usable,
// use NewFitter.
type Fitter struct {
	//MaxEvaluations is the limit of function evaluations for the iterative fits.
	MaxEvaluations int
	log            logr.Logger
}

// NewFitter returns a Fitter with the default settings.
func NewFitter() *Fitter {
	return &Fitter{MaxEvaluations: DefaultMaxEvaluations, log: logr.Discard()}
}

// SetLogger sets the logger for the Fitter.
func (F *Fitter) SetLogger(l logr.Logger) {
	F.log = l
}

// Fit fits the model called name to the samples and returns the fitted parameters.
func (F *Fitter) Fit(samples []Sample, name string) (Params, error) {
	m, err := ParseModel(name)
	if err != nil {
		return Params{}, errDecorate(err, "Fit")
	}
	P, _, err := F.fit(Volumes(samples), Energies(samples), m)
	if err != nil {
		return Params{}, errDecorate(err, "Fit")
	}
	return P, nil
}

// fit returns the fitted parameters and the raw coefficients of the model, which are the
// polynomial coefficients in V^(-1/3) (highest degree first) for sjeos.
func (F *Fitter) fit(v, e []float64, m *Model) (Params, []float64, error) {
	if len(v) != len(e) {
		return Params{}, nil, &FitError{model: m.Name, err: ErrLengthMismatch, deco: []string{"fit"}}
	}
	if len(v) < m.NParams {
		return Params{}, nil, &FitError{model: m.Name, err: ErrTooFewSamples, deco: []string{"fit"}}
	}
	if m.Name == SJEOS {
		return fitSJEOS(v, e)
	}
	guess, err := parabolaGuess(v, e, m)
	if err != nil {
		return Params{}, nil, err
	}
	F.log.V(2).Info("initial guess", "model", m.Name, "E0", guess[0], "B0", guess[1], "BP", guess[2], "V0", guess[3])
	p, nfev, err := F.levenberg(m, v, e, guess)
	if err != nil {
		return Params{}, nil, err
	}
	F.log.V(1).Info("fit converged", "model", m.Name, "evaluations", nfev)
	if m.Name == P3 {
		P, err := p3Params(p)
		return P, p, err
	}
	return Params{V0: p[3], E0: p[0], B: p[1]}, p, nil
}

// singular returns true if err means that a linear system could not be solved.
// Ill-conditioned systems are still solved.
func singular(err error) bool {
	if err == nil {
		return false
	}
	var cond mat.Condition
	return !errors.As(err, &cond) || math.IsInf(float64(cond), 1)
}

// lstsq solves the linear least squares problem X c = y.
func lstsq(X *mat.Dense, y []float64) ([]float64, error) {
	var c mat.Dense
	if err := c.Solve(X, mat.NewDense(len(y), 1, y)); singular(err) {
		return nil, err
	}
	return mat.Col(nil, 0, &c), nil
}

// parabolaGuess fits E = a + bV + cV^2 and returns the initial guess
// E0, B0, B0', V0 for the model m.
func parabolaGuess(v, e []float64, m *Model) ([]float64, error) {
	X := mat.NewDense(len(v), 3, nil)
	for i, vol := range v {
		X.SetRow(i, []float64{1, vol, vol * vol})
	}
	c, err := lstsq(X, e)
	if err != nil || c[2] == 0 {
		return nil, &FitError{model: m.Name, err: ErrNoMinimum, deco: []string{"parabolaGuess"}}
	}
	vmin := -c[1] / (2 * c[2])
	e0 := c[0] + c[1]*vmin + c[2]*vmin*vmin
	b0 := 2 * c[2] * vmin
	return []float64{e0, b0, m.guessBP, vmin}, nil
}

func residuals(m *Model, v, e, p, dst []float64) []float64 {
	for i := range v {
		dst[i] = m.energy(v[i], p) - e[i]
	}
	return dst
}

func finite(s []float64) bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func sumSq(r []float64) float64 {
	return floats.Dot(r, r)
}

// levenberg minimizes the sum of squared residuals of the model m with the
// Levenberg-Marquardt algorithm, using a forward-difference Jacobian and
// Marquardt's scaling of the diagonal. The difference step of each parameter is
// relative to the larger of its current value and its initial scale. It returns the parameters and the number
// of function evaluations used.
func (F *Fitter) levenberg(m *Model, v, e, p0 []float64) ([]float64, int, error) {
	n, np := len(v), len(p0)
	maxfev := F.MaxEvaluations
	if maxfev <= 0 {
		maxfev = DefaultMaxEvaluations
	}
	lambda := lmLambda0
	p := append([]float64(nil), p0...)
	r := residuals(m, v, e, p, make([]float64, n))
	nfev := 1
	S := sumSq(r)
	J := mat.NewDense(n, np, nil)
	JTJ := mat.NewDense(np, np, nil)
	A := mat.NewDense(np, np, nil)
	g := mat.NewVecDense(np, nil)
	q := make([]float64, np)
	rq := make([]float64, n)
	d := mat.NewVecDense(np, nil)
	//lower bounds for the difference steps. The first parameter is always an
	//energy offset, and its step must not vanish when the offset is close to 0.
	scale := make([]float64, np)
	for j, x := range p0 {
		scale[j] = math.Abs(x)
	}
	scale[0] = math.Max(scale[0], floats.Max(e)-floats.Min(e))
	notconv := func() ([]float64, int, error) {
		return nil, nfev, &FitError{model: m.Name, nfev: nfev, err: ErrNotConverged, deco: []string{"levenberg"}}
	}
	for {
		for j := 0; j < np; j++ {
			h := lmDiffStep * math.Max(math.Abs(p[j]), scale[j])
			if h == 0 {
				h = lmDiffStep
			}
			copy(q, p)
			q[j] += h
			residuals(m, v, e, q, rq)
			nfev++
			for k := 0; k < n; k++ {
				J.Set(k, j, (rq[k]-r[k])/h)
			}
		}
		JTJ.Mul(J.T(), J)
		g.MulVec(J.T(), mat.NewVecDense(n, r))
		g.ScaleVec(-1, g)
		var Sq float64
		for {
			A.Copy(JTJ)
			for i := 0; i < np; i++ {
				A.Set(i, i, JTJ.At(i, i)*(1+lambda))
			}
			if err := d.SolveVec(A, g); singular(err) || !finite(d.RawVector().Data) {
				lambda *= lmLambdaUp
				if lambda > lmMaxLamb {
					return notconv()
				}
				continue
			}
			for i := range q {
				q[i] = p[i] + d.AtVec(i)
			}
			residuals(m, v, e, q, rq)
			nfev++
			Sq = sumSq(rq)
			if !math.IsNaN(Sq) && !math.IsInf(Sq, 0) && Sq <= S {
				break
			}
			lambda *= lmLambdaUp
			if lambda > lmMaxLamb {
				return notconv()
			}
		}
		rel := 0.0
		for i := range q {
			rel = math.Max(rel, math.Abs(d.AtVec(i))/(math.Abs(q[i])+1e-30))
		}
		dS := S - Sq
		copy(p, q)
		copy(r, rq)
		S = Sq
		lambda /= lmLambdaUp
		if rel < lmStepTol || dS <= lmSqTol*S {
			return p, nfev, nil
		}
		if nfev > maxfev {
			return notconv()
		}
	}
}

// p3Params obtains the equilibrium parameters from the coefficients of the
// cubic polynomial in V.
func p3Params(c []float64) (Params, error) {
	a, b, cc := 3*c[3], 2*c[2], c[1]
	disc := b*b - 4*a*cc
	if a == 0 || disc < 0 {
		return Params{}, &FitError{model: P3, err: ErrNoMinimum, deco: []string{"p3Params"}}
	}
	v0 := (-b + math.Sqrt(disc)) / (2 * a)
	if v0 <= 0 {
		return Params{}, &FitError{model: P3, err: ErrNoMinimum, deco: []string{"p3Params"}}
	}
	return Params{V0: v0, E0: p3(v0, c), B: (2*c[2] + 6*c[3]*v0) * v0}, nil
}

// fitSJEOS fits E = c0 t^3 + c1 t^2 + c2 t + c3, with t = V^(-1/3), and returns
// the parameters and c.
func fitSJEOS(v, e []float64) (Params, []float64, error) {
	X := mat.NewDense(len(v), 4, nil)
	for i, vol := range v {
		t := math.Pow(vol, -1.0/3.0)
		X.SetRow(i, []float64{t * t * t, t * t, t, 1})
	}
	c, err := lstsq(X, e)
	if err != nil {
		return Params{}, nil, &FitError{model: SJEOS, err: ErrNoMinimum, deco: []string{"fitSJEOS"}}
	}
	//roots of the derivative, 3c0 t^2 + 2c1 t + c2
	a, b, cc := 3*c[0], 2*c[1], c[2]
	disc := b*b - 4*a*cc
	if a == 0 || disc < 0 {
		return Params{}, nil, &FitError{model: SJEOS, err: ErrNoMinimum, deco: []string{"fitSJEOS"}}
	}
	for _, t := range []float64{(-b + math.Sqrt(disc)) / (2 * a), (-b - math.Sqrt(disc)) / (2 * a)} {
		f2 := 6*c[0]*t + 2*c[1]
		if t > 0 && f2 > 0 {
			P := Params{
				V0: math.Pow(t, -3),
				E0: sjeosEnergy(c, t),
				B:  math.Pow(t, 5) * f2 / 9,
			}
			return P, c, nil
		}
	}
	return Params{}, nil, &FitError{model: SJEOS, err: ErrNoMinimum, deco: []string{"fitSJEOS"}}
}

func sjeosEnergy(c []float64, t float64) float64 {
	return c[0]*t*t*t + c[1]*t*t + c[2]*t + c[3]
}

// Volumes returns the volumes of the samples.
func Volumes(samples []Sample) []float64 {
	ret := make([]float64, len(samples))
	for i, s := range samples {
		ret[i] = s.Volume
	}
	return ret
}

// Energies returns the energies of the samples.
func Energies(samples []Sample) []float64 {
	ret := make([]float64, len(samples))
	for i, s := range samples {
		ret[i] = s.Energy
	}
	return ret
}

// Results holds the parameters fitted to one set of samples with several models.
// It is not modified after FitAll returns it.
type Results struct {
	params map[string]Params
	failed map[string]error
}

// FitAll fits each of the models in names to the samples. Models that can't be
// fitted are recorded as failed, and don't stop the other fits.
func (F *Fitter) FitAll(samples []Sample, names []string) *Results {
	R := &Results{params: make(map[string]Params), failed: make(map[string]error)}
	for _, name := range names {
		m, err := ParseModel(name)
		if err != nil {
			R.failed[name] = err
			continue
		}
		P, err := F.Fit(samples, m.Name)
		if err != nil {
			F.log.Info("model excluded", "model", m.Name, "error", err.Error())
			R.failed[m.Name] = errDecorate(err, "FitAll")
			continue
		}
		R.params[m.Name] = P
	}
	return R
}

// Get returns the parameters fitted with the model name, and whether the model
// was fitted.
func (R *Results) Get(name string) (Params, bool) {
	m, err := ParseModel(name)
	if err != nil {
		return Params{}, false
	}
	P, ok := R.params[m.Name]
	return P, ok
}

// Names returns the names of the fitted models, sorted.
func (R *Results) Names() []string {
	ret := make([]string, 0, len(R.params))
	for k := range R.params {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Failed returns the names of the models that could not be fitted, sorted.
func (R *Results) Failed() []string {
	ret := make([]string, 0, len(R.failed))
	for k := range R.failed {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Err returns the error with which the fit of model name failed, or nil.
func (R *Results) Err(name string) error {
	return R.failed[name]
}

// Len returns the number of fitted models.
func (R *Results) Len() int {
	return len(R.params)
}
