package chemplot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/goeos/eos"
)

func testSamples() []eos.Sample {
	volumes := []float64{29.205536, 30.581492, 32.000000, 33.461708, 34.967264}
	energies := []float64{0.0190898, -0.0031172, -0.0096925, -0.0004014, 0.0235753}
	s := make([]eos.Sample, len(volumes))
	for i := range s {
		s[i] = eos.Sample{Volume: volumes[i], Energy: energies[i]}
	}
	return s
}

// TestEOSPlot plots the sjeos and Birch-Murnaghan fits of the aluminum samples.
func TestEOSPlot(Te *testing.T) {
	dir := Te.TempDir()
	for _, ext := range []string{"png", "svg"} {
		name := filepath.Join(dir, "Al."+ext)
		eqs, err := FitAndPlot(name, "", testSamples(), "SJEOS", "birchmurnaghan", "sjeos")
		if err != nil {
			Te.Fatal(err)
		}
		if len(eqs) != 2 {
			Te.Errorf("expected 2 curves, got %d", len(eqs))
		}
		info, err := os.Stat(name)
		if err != nil {
			Te.Fatal(err)
		}
		if info.Size() == 0 {
			Te.Errorf("empty plot file %s", name)
		}
	}
}

func TestTitle(Te *testing.T) {
	E, err := eos.FromSamples(testSamples(), "sjeos")
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := E.Fit(); err != nil {
		Te.Fatal(err)
	}
	D, err := E.PlotData(10)
	if err != nil {
		Te.Fatal(err)
	}
	t := Title(D)
	if !strings.HasPrefix(t, "sjeos: E: -0.010 eV, V: 31.867 Å³, B: 38.4") {
		Te.Errorf("unexpected title %q", t)
	}
}

func TestEOSPlotErrors(Te *testing.T) {
	if _, err := EOSPlot("nothing"); err == nil {
		Te.Error("expected an error with no curves")
	}
	E, err := eos.FromSamples(testSamples(), "vinet")
	if err != nil {
		Te.Fatal(err)
	}
	//not fitted
	if _, err := EOSPlot("", E); err == nil {
		Te.Error("expected an error for an unfitted EOS")
	}
	if _, err := FitAndPlot(filepath.Join(Te.TempDir(), "x.png"), "", testSamples(), "morse"); err == nil {
		Te.Error("expected an error for an unknown model")
	}
}

func TestColors(Te *testing.T) {
	r, g, b := colors(0, 3)
	if r != 255 || b != 0 {
		Te.Errorf("first color should be red, got %d %d %d", r, g, b)
	}
}
