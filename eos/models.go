/*
 * models.go, part of goeos.
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
	"fmt"
	"math"
	"sort"
	"strings"
)

// Model names.
const (
	SJEOS            = "sjeos"
	Taylor           = "taylor"
	Murnaghan        = "murnaghan"
	Birch            = "birch"
	BirchMurnaghan   = "birchmurnaghan"
	PourierTarantola = "pouriertarantola"
	Vinet            = "vinet"
	AntonSchmidt     = "antonschmidt"
	P3               = "p3"
)

// Model describes one equation of state.
type Model struct {
	Name string
	//Reference is the paper the form comes from, if any.
	Reference string
	//SupportsCurrent is false for the models that the current numeric backend
	//can't fit (they don't converge).
	SupportsCurrent bool
	//NParams is the number of parameters fitted.
	NParams int
	//energy evaluates the model at volume v with parameters p, in the
	//order E0, B0, B0', V0 (or the polynomial coefficients). nil for closed
	//form models.
	energy func(v float64, p []float64) float64
	//guessBP is the initial guess for the pressure derivative of B.
	guessBP float64
}

// Iterative returns true if the model is fitted with the iterative optimizer.
func (M *Model) Iterative() bool {
	return M.energy != nil
}

func (M *Model) String() string {
	return M.Name
}

var models = map[string]*Model{
	SJEOS:            {Name: SJEOS, Reference: "A. B. Alchagirov et al., PRB 63, 224115 (2001)", SupportsCurrent: true, NParams: 4},
	Taylor:           {Name: Taylor, SupportsCurrent: true, NParams: 4, energy: taylor, guessBP: 4},
	Murnaghan:        {Name: Murnaghan, Reference: "PRB 28, 5480 (1983)", SupportsCurrent: true, NParams: 4, energy: murnaghan, guessBP: 4},
	Birch:            {Name: Birch, Reference: "Intermetallic compounds: Principles and Practice, Vol I: Principles. J. H. Westbrook & R. L. Fleischer", SupportsCurrent: true, NParams: 4, energy: birch, guessBP: 4},
	BirchMurnaghan:   {Name: BirchMurnaghan, Reference: "PRB 70, 224107", SupportsCurrent: true, NParams: 4, energy: birchMurnaghan, guessBP: 4},
	PourierTarantola: {Name: PourierTarantola, Reference: "PRB 70, 224107", SupportsCurrent: true, NParams: 4, energy: pourierTarantola, guessBP: 4},
	Vinet:            {Name: Vinet, Reference: "PRB 70, 224107", SupportsCurrent: true, NParams: 4, energy: vinet, guessBP: 4},
	AntonSchmidt:     {Name: AntonSchmidt, Reference: "Intermetallics 11, 23-32 (2003)", SupportsCurrent: false, NParams: 4, energy: antonSchmidt, guessBP: -2},
	P3:               {Name: P3, SupportsCurrent: true, NParams: 4, energy: p3, guessBP: 4},
}

// ParseModel returns the model called name, which is case-insensitive.
func ParseModel(name string) (*Model, error) {
	m, ok := models[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, &FitError{model: name, err: fmt.Errorf("%w: %q", ErrUnknownModel, name), deco: []string{"ParseModel"}}
	}
	return m, nil
}

// Models returns all the known models, sorted by name.
func Models() []*Model {
	ret := make([]*Model, 0, len(models))
	for _, m := range models {
		ret = append(ret, m)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

// CurrentModels returns the names of the models that the current backend can fit,
// sorted.
func CurrentModels() []string {
	var ret []string
	for _, m := range Models() {
		if m.SupportsCurrent {
			ret = append(ret, m.Name)
		}
	}
	return ret
}

func taylor(v float64, p []float64) float64 {
	e0, beta, alpha, v0 := p[0], p[1], p[2], p[3]
	dv := v - v0
	return e0 + beta/2*dv*dv/v0 + alpha/6*dv*dv*dv/v0
}

func murnaghan(v float64, p []float64) float64 {
	e0, b0, bp, v0 := p[0], p[1], p[2], p[3]
	return e0 + b0*v/bp*(math.Pow(v0/v, bp)/(bp-1)+1) - v0*b0/(bp-1)
}

func birch(v float64, p []float64) float64 {
	e0, b0, bp, v0 := p[0], p[1], p[2], p[3]
	x := math.Pow(v0/v, 2.0/3.0) - 1
	return e0 + 9.0/8.0*b0*v0*x*x + 9.0/16.0*b0*v0*(bp-4)*x*x*x
}

func birchMurnaghan(v float64, p []float64) float64 {
	e0, b0, bp, v0 := p[0], p[1], p[2], p[3]
	eta := math.Pow(v0/v, 1.0/3.0)
	x := eta*eta - 1
	return e0 + 9*b0*v0/16*x*x*(6+bp*x-4*eta*eta)
}

func pourierTarantola(v float64, p []float64) float64 {
	e0, b0, bp, v0 := p[0], p[1], p[2], p[3]
	eta := math.Pow(v/v0, 1.0/3.0)
	sq := -3 * math.Log(eta)
	return e0 + b0*v0*sq*sq/6*(3+sq*(bp-2))
}

func vinet(v float64, p []float64) float64 {
	e0, b0, bp, v0 := p[0], p[1], p[2], p[3]
	eta := math.Pow(v/v0, 1.0/3.0)
	return e0 + 2*b0*v0/((bp-1)*(bp-1))*(2-(5+3*bp*(eta-1)-3*eta)*math.Exp(-3*(bp-1)*(eta-1)/2))
}

// antonSchmidt takes the parameters Einf, B, n, V0.
func antonSchmidt(v float64, p []float64) float64 {
	einf, b, n, v0 := p[0], p[1], p[2], p[3]
	return b*v0/(n+1)*math.Pow(v/v0, n+1)*(math.Log(v/v0)-1/(n+1)) + einf
}

// p3 takes the coefficients of the polynomial, lowest degree first.
func p3(v float64, c []float64) float64 {
	return c[0] + c[1]*v + c[2]*v*v + c[3]*v*v*v
}
