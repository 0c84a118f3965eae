package sample

import (
	"context"
	"errors"
	"math"
	"testing"

	chem "github.com/rmera/goeos"
	"github.com/rmera/goeos/build"
	"github.com/rmera/goeos/calc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRecorder struct {
	volumes  []float64
	energies []float64
	fail     bool
}

func (m *memRecorder) Record(atoms *chem.Atoms, energy float64) error {
	if m.fail {
		return errors.New("disk full")
	}
	m.volumes = append(m.volumes, atoms.Volume())
	m.energies = append(m.energies, energy)
	return nil
}

// volumeCalc returns the volume as the energy.
type volumeCalc struct{ calls int }

func (v *volumeCalc) Name() string { return "volume" }

func (v *volumeCalc) PotentialEnergy(ctx context.Context, atoms *chem.Atoms) (float64, error) {
	v.calls++
	return atoms.Volume(), nil
}

func aluminum(Te *testing.T) *chem.Atoms {
	al, err := build.Bulk("Al", build.FCC, 4.0, build.Options{Orthorhombic: true})
	require.NoError(Te, err)
	return al
}

func TestRunEMT(Te *testing.T) {
	volumes := []float64{29.205536, 30.581492, 32.000000, 33.461708, 34.967264}
	energies := []float64{0.0190898, -0.0031172, -0.0096925, -0.0004014, 0.0235753}
	al := aluminum(Te)
	scalings, err := build.Scalings(0.97, 1.03, 5)
	require.NoError(Te, err)
	rec := new(memRecorder)
	samples, err := Run(context.Background(), al, calc.NewEMT(), scalings, rec)
	require.NoError(Te, err)
	require.Len(Te, samples, 5)
	for i, s := range samples {
		assert.Less(Te, math.Abs(s.Volume-volumes[i])/volumes[i], 1e-6)
		assert.Less(Te, math.Abs(s.Energy-energies[i])/math.Abs(energies[i]), 1e-4)
	}
	assert.Equal(Te, energies[2], math.Round(rec.energies[2]*1e7)/1e7)
	assert.Len(Te, rec.volumes, 5)
	//the input atoms are not touched
	assert.InDelta(Te, 32.0, al.Volume(), 1e-12)
}

func TestRunErrors(Te *testing.T) {
	al := aluminum(Te)
	vc := new(volumeCalc)
	_, err := Run(context.Background(), al, vc, []float64{1, 0}, nil)
	var serr *Error
	require.ErrorAs(Te, err, &serr)
	assert.Equal(Te, 1, serr.Index())

	samples, err := Run(context.Background(), al, vc, []float64{1, 1.1}, &memRecorder{fail: true})
	require.ErrorAs(Te, err, &serr)
	assert.EqualError(Te, errors.Unwrap(err), "disk full")
	assert.Empty(Te, samples)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, al, vc, []float64{1}, nil)
	assert.ErrorIs(Te, err, context.Canceled)
	require.ErrorAs(Te, err, &serr)
	assert.Equal(Te, 0, serr.Index())

	fe, err := build.Bulk("Fe", build.BCC, 2.87, build.Options{})
	require.NoError(Te, err)
	_, err = Run(context.Background(), fe, calc.NewEMT(), []float64{1}, nil)
	var cerr *calc.Error
	require.ErrorAs(Te, err, &cerr)
	assert.Contains(Te, cerr.Decorate(""), "Run: sample 0")

	_, err = Run(context.Background(), nil, vc, []float64{1}, nil)
	assert.Error(Te, err)
}

func TestRunVolumes(Te *testing.T) {
	vc := new(volumeCalc)
	samples, err := Run(context.Background(), aluminum(Te), vc, []float64{0.5, 1, 2}, nil)
	require.NoError(Te, err)
	assert.Equal(Te, 3, vc.calls)
	for i, want := range []float64{4, 32, 256} {
		assert.InDelta(Te, want, samples[i].Volume, 1e-9)
		assert.Equal(Te, samples[i].Volume, samples[i].Energy)
	}
}
