/*
 * eosplot.go, part of goeos.
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
	"fmt"
	"image/color"
	"math"

	"github.com/rmera/goeos/eos"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// CurvePoints is the number of points used to draw a fitted curve.
const CurvePoints = 100

func basicEOSPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "volume [Å³]"
	p.Y.Label.Text = "energy [eV]"
	p.Add(plotter.NewGrid())
	return p
}

// EOSPlot returns a plot with the samples and the fitted curves of all the given
// equations of state, which must be already fitted. If title is empty, one is built
// from the parameters of the first EOS.
func EOSPlot(title string, eqs ...*eos.EOS) (*plot.Plot, error) {
	if len(eqs) == 0 {
		return nil, fmt.Errorf("chemplot: no equation of state given")
	}
	var data []*eos.PlotData
	for _, E := range eqs {
		D, err := E.PlotData(CurvePoints)
		if err != nil {
			return nil, err
		}
		data = append(data, D)
	}
	if title == "" {
		title = Title(data[0])
	}
	p := basicEOSPlot(title)
	samples := make(plotter.XYs, len(data[0].SampleVolumes))
	for i := range samples {
		samples[i].X = data[0].SampleVolumes[i]
		samples[i].Y = data[0].SampleEnergies[i]
	}
	s, err := plotter.NewScatter(samples)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(3)
	s.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
	p.Add(s)
	for key, D := range data {
		curve := make(plotter.XYs, len(D.Volumes))
		for i := range curve {
			curve[i].X = D.Volumes[i]
			curve[i].Y = D.Energies[i]
		}
		l, err := plotter.NewLine(curve)
		if err != nil {
			return nil, err
		}
		r, g, b := colors(key, len(data))
		l.LineStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		l.LineStyle.Width = vg.Points(1)
		p.Add(l)
		p.Legend.Add(D.Model, l)
	}
	p.Legend.Top = true
	return p, nil
}

// Title returns a plot title with the fitted parameters in D.
func Title(D *eos.PlotData) string {
	return fmt.Sprintf("%s: E: %.3f eV, V: %.3f Å³, B: %.3f GPa", D.Model, D.E0, D.V0, D.Params.BulkModulusGPa())
}

// PlotEOS plots the fitted equations of state eqs to the file filename. The
// format is given by the extension (png, svg, pdf, eps, jpg and tif are supported).
func PlotEOS(filename, title string, eqs ...*eos.EOS) error {
	p, err := EOSPlot(title, eqs...)
	if err != nil {
		return err
	}
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}

// takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

// colors returns a color for the curve key out of steps, going from red
// towards violet.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64((float64(key) * norm) + 20.0)
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	return iHVS2RGB(h, 1.0, 1.0)
}
