/*
 * emt.go, part of goeos.
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

package calc

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/go-logr/logr"
	chem "github.com/rmera/goeos"
	"github.com/rmera/goeos/units"
	v3 "github.com/rmera/goeos/v3"
)

// emtParameters are the historical EMT parameters:
//
//	E0 (eV), s0 (bohr), V0 (eV), eta2 (1/bohr), kappa (1/bohr), lambda (1/bohr), n0 (1/bohr^3)
//
// H, C, N and O are not fitted to anything in particular and should not be trusted.
var emtParameters = map[string][7]float64{
	"Al": {-3.28, 3.00, 1.493, 1.240, 2.000, 1.169, 0.00700},
	"Cu": {-3.51, 2.67, 2.476, 1.652, 2.740, 1.906, 0.00910},
	"Ag": {-2.96, 3.01, 2.132, 1.652, 2.790, 1.892, 0.00547},
	"Au": {-3.80, 3.00, 2.321, 1.674, 2.873, 2.182, 0.00703},
	"Ni": {-4.44, 2.60, 3.673, 1.669, 2.757, 1.948, 0.01030},
	"Pd": {-3.90, 2.87, 2.773, 1.818, 3.107, 2.155, 0.00688},
	"Pt": {-5.85, 2.90, 4.067, 1.812, 3.145, 2.192, 0.00802},
	"H":  {-3.21, 1.31, 0.132, 2.652, 2.790, 3.892, 0.00547},
	"C":  {-3.50, 1.81, 0.332, 1.652, 2.790, 1.892, 0.01322},
	"N":  {-5.10, 1.88, 0.132, 1.652, 2.790, 1.892, 0.01222},
	"O":  {-4.60, 1.95, 0.332, 1.652, 2.790, 1.892, 0.00850},
}

// emtBeta is (16*pi/3)^(1/3)/sqrt(2), with the historical rounding.
const emtBeta = 1.809

// emtPar holds the EMT parameters of one element, in A and eV.
type emtPar struct {
	e0, s0, v0, eta2, kappa, lambda, n0 float64
	gamma1, gamma2                      float64
}

// EMT is an effective-medium theory calculator. The zero of energy is the
// fcc crystal of each element at its EMT equilibrium volume.
// It is safe for concurrent use.
type EMT struct {
	rc   float64 //cutoff radius of the smooth Fermi cutoff function
	acut float64 //steepness of the cutoff function
	mu   sync.Mutex
	par  map[string]*emtPar
	log  logr.Logger
}

// NewEMT returns an EMT calculator. The cutoff is the same for all elements, and
// is set from the largest s0 among all the parameterized elements.
func NewEMT() *EMT {
	maxseq := 0.0
	for _, p := range emtParameters {
		maxseq = math.Max(maxseq, p[1])
	}
	maxseq *= units.Bohr
	E := &EMT{par: make(map[string]*emtPar), log: logr.Discard()}
	E.rc = emtBeta * maxseq * 0.5 * (math.Sqrt(3) + math.Sqrt(4))
	rr := E.rc * 2 * math.Sqrt(4) / (math.Sqrt(3) + math.Sqrt(4))
	E.acut = math.Log(9999.0) / (rr - E.rc)
	return E
}

// SetLogger sets the logger used by the calculator.
func (E *EMT) SetLogger(l logr.Logger) {
	E.log = l
}

// Name returns the name of the calculator.
func (E *EMT) Name() string {
	return EMTName
}

// Cutoff returns the distance, in A, beyond which atoms don't interact.
func (E *EMT) Cutoff() float64 {
	return E.rc + 0.5
}

// parameters returns the parameters for symbol, computing them the first time
// they are requested.
func (E *EMT) parameters(symbol string) (*emtPar, error) {
	E.mu.Lock()
	defer E.mu.Unlock()
	if p, ok := E.par[symbol]; ok {
		return p, nil
	}
	raw, ok := emtParameters[symbol]
	if !ok {
		return nil, &Error{ErrNoParameters, EMTName, symbol, []string{"parameters"}, true}
	}
	p := &emtPar{
		e0:     raw[0],
		s0:     raw[1] * units.Bohr,
		v0:     raw[2],
		eta2:   raw[3] / units.Bohr,
		kappa:  raw[4] / units.Bohr,
		lambda: raw[5] / units.Bohr,
		n0:     raw[6] / (units.Bohr * units.Bohr * units.Bohr),
	}
	//the fcc shells of 12, 6 and 24 neighbors.
	for i, n := range []float64{12, 6, 24} {
		r := p.s0 * emtBeta * math.Sqrt(float64(i+1))
		x := n / (12 * (1.0 + math.Exp(E.acut*(r-E.rc))))
		p.gamma1 += x * math.Exp(-p.eta2*(r-emtBeta*p.s0))
		p.gamma2 += x * math.Exp(-p.kappa/emtBeta*(r-emtBeta*p.s0))
	}
	E.par[symbol] = p
	E.log.V(1).Info("EMT parameters initialized", "element", symbol, "gamma1", p.gamma1, "gamma2", p.gamma2, "rc", E.rc)
	return p, nil
}

// PotentialEnergy returns the EMT potential energy of atoms, in eV.
func (E *EMT) PotentialEnergy(ctx context.Context, atoms *chem.Atoms) (float64, error) {
	if atoms == nil || atoms.Coords == nil {
		return 0, &Error{ErrNilAtoms, EMTName, "", []string{"PotentialEnergy"}, true}
	}
	if err := ctx.Err(); err != nil {
		return 0, &Error{ErrCancelled, EMTName, err.Error(), []string{"PotentialEnergy"}, false}
	}
	natoms := atoms.Len()
	pars := make([]*emtPar, natoms)
	for i := 0; i < natoms; i++ {
		p, err := E.parameters(atoms.Atom(i).Symbol)
		if err != nil {
			err.(*Error).Decorate("PotentialEnergy")
			return 0, err
		}
		pars[i] = p
	}
	cut := E.Cutoff()
	cell := atoms.Cell()
	images := imageRange(cell, atoms.PBC, cut)
	pos := make([][3]float64, natoms)
	for i := range pos {
		pos[i] = atoms.Coords.Vec(i)
	}
	a := [3][3]float64{cell.Vec(0), cell.Vec(1), cell.Vec(2)}
	energy := 0.0
	sigma1 := make([]float64, natoms)
	for i := 0; i < natoms; i++ {
		p1 := pars[i]
		for j := 0; j < natoms; j++ {
			p2 := pars[j]
			ksi := p2.n0 / p1.n0
			for n0 := -images[0]; n0 <= images[0]; n0++ {
				for n1 := -images[1]; n1 <= images[1]; n1++ {
					for n2 := -images[2]; n2 <= images[2]; n2++ {
						if i == j && n0 == 0 && n1 == 0 && n2 == 0 {
							continue
						}
						var d [3]float64
						for k := 0; k < 3; k++ {
							d[k] = pos[j][k] + float64(n0)*a[0][k] + float64(n1)*a[1][k] + float64(n2)*a[2][k] - pos[i][k]
						}
						r := v3.Norm(d)
						if r >= cut {
							continue
						}
						theta := 1.0 / (1.0 + math.Exp(E.acut*(r-E.rc)))
						//each pair is visited twice, once from each atom, so
						//each visit gets the half of the pair energy that belongs to i.
						energy -= 0.5 * p1.v0 * math.Exp(-p2.kappa*(r/emtBeta-p2.s0)) * ksi / p1.gamma2 * theta
						sigma1[i] += math.Exp(-p2.eta2*(r-emtBeta*p2.s0)) * ksi * theta / p1.gamma1
					}
				}
			}
		}
	}
	for i := 0; i < natoms; i++ {
		p := pars[i]
		if sigma1[i] <= 0 {
			//isolated atom
			energy -= p.e0
			continue
		}
		ds := -math.Log(sigma1[i]/12) / (emtBeta * p.eta2)
		x := p.lambda * ds
		y := math.Exp(-x)
		z := 6 * p.v0 * math.Exp(-p.kappa*ds)
		energy += p.e0*((1+x)*y-1) + z
	}
	return energy, nil
}

// imageRange returns, for each lattice direction, how many periodic images on each side
// are needed so every atom within cut of any atom in the cell is found.
// Non-periodic directions get 0.
func imageRange(cell *v3.Matrix, pbc [3]bool, cut float64) [3]int {
	var ret [3]int
	vol := cell.Det()
	if math.Abs(vol) < 1e-10 {
		return ret
	}
	a := [3][3]float64{cell.Vec(0), cell.Vec(1), cell.Vec(2)}
	for i := 0; i < 3; i++ {
		if !pbc[i] {
			continue
		}
		//|b_i| is the inverse of the spacing between lattice planes normal to b_i.
		b := v3.Cross(a[(i+1)%3], a[(i+2)%3])
		spacing := math.Abs(vol) / v3.Norm(b)
		ret[i] = int(math.Ceil(cut/spacing)) + 1
	}
	return ret
}

// String returns a short description of the calculator.
func (E *EMT) String() string {
	return fmt.Sprintf("EMT(rc=%.4f A, acut=%.4f 1/A)", E.rc, E.acut)
}
