/*
 * metrics.go, part of goeos.
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

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors describing a regression run, so CI jobs
// can pick the results up through a textfile collector.
type Metrics struct {
	reg      *prometheus.Registry
	checks   prometheus.Gauge
	passed   prometheus.Gauge
	elapsed  prometheus.Gauge
	samples  prometheus.Gauge
	fits     *prometheus.CounterVec
	v0       *prometheus.GaugeVec
	bulk     *prometheus.GaugeVec
	rsquared *prometheus.GaugeVec
}

// NewMetrics returns a Metrics with all its collectors registered in a fresh registry.
func NewMetrics() *Metrics {
	M := &Metrics{
		reg: prometheus.NewRegistry(),
		checks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "goeos", Subsystem: "regress", Name: "checks",
			Help: "Number of tolerance checks that passed.",
		}),
		passed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "goeos", Subsystem: "regress", Name: "passed",
			Help: "1 if the last run passed validation, 0 otherwise.",
		}),
		elapsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "goeos", Subsystem: "regress", Name: "duration_seconds",
			Help: "Wall time of the last run.",
		}),
		samples: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "goeos", Subsystem: "regress", Name: "samples",
			Help: "Number of (volume, energy) samples.",
		}),
		fits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goeos", Subsystem: "regress", Name: "fits_total",
			Help: "Equation of state fits, by outcome.",
		}, []string{"status"}),
		v0: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "goeos", Subsystem: "regress", Name: "v0_angstrom3",
			Help: "Fitted equilibrium volume.",
		}, []string{"model"}),
		bulk: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "goeos", Subsystem: "regress", Name: "bulk_modulus_gpa",
			Help: "Fitted bulk modulus.",
		}, []string{"model"}),
		rsquared: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "goeos", Subsystem: "regress", Name: "r_squared",
			Help: "Coefficient of determination of the fit.",
		}, []string{"model"}),
	}
	M.reg.MustRegister(M.checks, M.passed, M.elapsed, M.samples, M.fits, M.v0, M.bulk, M.rsquared)
	return M
}

// Registry returns the registry holding the collectors of M.
func (M *Metrics) Registry() *prometheus.Registry {
	return M.reg
}

// Observe sets the collectors from the report R. A nil report is ignored.
func (M *Metrics) Observe(R *Report) {
	if R == nil {
		return
	}
	M.checks.Set(float64(R.Checks))
	M.passed.Set(0)
	if R.Passed {
		M.passed.Set(1)
	}
	M.elapsed.Set(R.Elapsed.Seconds())
	M.samples.Set(float64(len(R.Samples)))
	for _, f := range R.Fits {
		M.fits.WithLabelValues("fitted").Inc()
		M.v0.WithLabelValues(f.Model).Set(f.V0)
		M.bulk.WithLabelValues(f.Model).Set(f.BGPa)
		M.rsquared.WithLabelValues(f.Model).Set(f.RSquared)
	}
	M.fits.WithLabelValues("excluded").Add(float64(len(R.Excluded)))
}

// WriteTextfile writes the metrics in the Prometheus text format to the file filename.
func (M *Metrics) WriteTextfile(filename string) error {
	if err := prometheus.WriteToTextfile(filename, M.reg); err != nil {
		return fmt.Errorf("regress: writing metrics: %w", err)
	}
	return nil
}
