/*
 * errors.go, part of goeos.
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
	"fmt"
)

// Conditions that a fit can fail with. Use errors.Is to check for them.
var (
	ErrNotConverged   = errors.New("fit did not converge")
	ErrNoMinimum      = errors.New("fitted curve has no minimum")
	ErrUnknownModel   = errors.New("unknown equation of state")
	ErrTooFewSamples  = errors.New("fewer samples than model parameters")
	ErrLengthMismatch = errors.New("different number of volumes and energies")
	ErrNotFitted      = errors.New("equation of state not fitted yet")
)

// FitError is the error returned by the fitting functions. It fulfills chem.Error,
// and wraps one of the conditions above.
type FitError struct {
	model string
	nfev  int //function evaluations used, 0 if not relevant
	err   error
	deco  []string
}

func (err *FitError) Error() string {
	if err.nfev > 0 {
		return fmt.Sprintf("eos %s: %s after %d function evaluations", err.model, err.err.Error(), err.nfev)
	}
	return fmt.Sprintf("eos %s: %s", err.model, err.err.Error())
}

// Unwrap returns the underlying condition.
func (err *FitError) Unwrap() error { return err.err }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *FitError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns true. A fit error means there are no parameters to use.
func (err *FitError) Critical() bool { return true }

// Model returns the name of the model that failed.
func (err *FitError) Model() string { return err.model }

// Evaluations returns the number of function evaluations spent before failing.
func (err *FitError) Evaluations() int { return err.nfev }

func errDecorate(err error, caller string) error {
	if err2, ok := err.(*FitError); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}
