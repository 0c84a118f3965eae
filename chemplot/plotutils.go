/*
 * plotutils.go, part of goeos.
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

package chemplot

import (
	"sort"

	"github.com/rmera/goeos/eos"
)

// Some internal convenience functions.

// fitAll fits every EOS in eqs, stopping at the first error.
func fitAll(eqs []*eos.EOS) error {
	for _, E := range eqs {
		if _, err := E.Fit(); err != nil {
			return err
		}
	}
	return nil
}

// isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

// FitAndPlot builds an EOS for each of the models with the given samples, fits them and plots
// all of them to filename. Models are plotted in alphabetical order, and repeated models only once.
func FitAndPlot(filename, title string, samples []eos.Sample, models ...string) ([]*eos.EOS, error) {
	var names []string
	for _, m := range models {
		M, err := eos.ParseModel(m)
		if err != nil {
			return nil, err
		}
		if !isInString(names, M.Name) {
			names = append(names, M.Name)
		}
	}
	sort.Strings(names)
	eqs := make([]*eos.EOS, 0, len(names))
	for _, n := range names {
		E, err := eos.FromSamples(samples, n)
		if err != nil {
			return nil, err
		}
		eqs = append(eqs, E)
	}
	if err := fitAll(eqs); err != nil {
		return nil, err
	}
	return eqs, PlotEOS(filename, title, eqs...)
}
