package regress

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rmera/goeos/eos"
	"github.com/rmera/goeos/traj/stf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func referenceSamples(cfg Config) []eos.Sample {
	v, e := cfg.SampleVolumes(), cfg.SampleEnergies()
	s := make([]eos.Sample, len(v))
	for i := range s {
		s[i] = eos.Sample{Volume: v[i], Energy: e[i]}
	}
	return s
}

func currentResults(cfg Config) *eos.Results {
	return eos.NewFitter().FitAll(referenceSamples(cfg), eos.CurrentModels())
}

func TestRun(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "eos.stf")
	R, err := Run(context.Background(), DefaultConfig(), Options{Trajectory: name})
	require.NoError(Te, err)
	assert.True(Te, R.Passed)
	assert.Empty(Te, R.Violation)
	assert.Len(Te, R.Fits, 8)
	assert.Empty(Te, R.Excluded)
	//10 sample checks, 8 models against their reference, 6 against the legacy
	//reference and 8*7 pairs of models, with 2 fields each.
	assert.Equal(Te, 10+2*(8+6+8*7), R.Checks)
	for _, f := range R.Fits {
		assert.Greater(Te, f.RSquared, 0.99, f.Model)
		assert.InDelta(Te, 38.5, f.BGPa, 0.5, f.Model)
	}

	frames, header, err := stf.ReadAll(name)
	require.NoError(Te, err)
	assert.Equal(Te, R.RunID, header["run"])
	assert.Equal(Te, "Al,Al", header["symbols"])
	assert.Equal(Te, "emt", header["model"])
	require.Len(Te, frames, 5)
	for i, F := range frames {
		assert.Equal(Te, R.Samples[i].Energy, F.Energy)
		assert.InDelta(Te, R.Samples[i].Volume, F.Volume(), 1e-9)
	}
}

func TestRunExclusions(Te *testing.T) {
	R, err := Run(context.Background(), DefaultConfig(), Options{Models: []string{"Taylor", "morse"}})
	require.NoError(Te, err)
	require.Len(Te, R.Fits, 1)
	assert.Equal(Te, eos.Taylor, R.Fits[0].Model)
	require.Len(Te, R.Excluded, 1)
	assert.Equal(Te, "morse", R.Excluded[0].Model)
	assert.Equal(Te, 10+2+2, R.Checks)
}

func TestRunViolation(Te *testing.T) {
	tol := DefaultTolerances()
	tol.SampleEnergy = 1e-12
	cfg := DefaultConfig().WithTolerances(tol)
	R, err := Run(context.Background(), cfg, Options{})
	var V *Violation
	require.ErrorAs(Te, err, &V)
	assert.Equal(Te, TierSamples, V.Tier)
	assert.Equal(Te, FieldEnergy, V.Field)
	assert.Equal(Te, 0, V.Index)
	require.NotNil(Te, R)
	assert.False(Te, R.Passed)
	assert.Equal(Te, err.Error(), R.Violation)
	assert.Equal(Te, 2, R.Checks)

	R, err = Run(context.Background(), cfg, Options{SkipSampleCheck: true})
	require.NoError(Te, err)
	assert.True(Te, R.Passed)
}

func TestValidate(Te *testing.T) {
	cfg := DefaultConfig()
	results := currentResults(cfg)
	n, err := Validate(cfg, referenceSamples(cfg), map[Backend]*eos.Results{Current: results})
	require.NoError(Te, err)
	assert.Equal(Te, 150, n)
	//without the samples, and without results
	n, err = Validate(cfg, nil, nil)
	require.NoError(Te, err)
	assert.Equal(Te, 0, n)
}

func TestValidateViolations(Te *testing.T) {
	cfg := DefaultConfig()
	results := currentResults(cfg)

	tol := DefaultTolerances()
	tol.SameCurrent = 1e-12
	_, err := Validate(cfg.WithTolerances(tol), nil, map[Backend]*eos.Results{Current: results})
	var V *Violation
	require.ErrorAs(Te, err, &V)
	assert.Equal(Te, TierSameBackend, V.Tier)
	assert.Equal(Te, eos.Birch, V.Model)
	assert.Equal(Te, FieldV0, V.Field)
	assert.Greater(Te, V.RelErr, V.Bound)

	tol = DefaultTolerances()
	tol.CrossModelB = 1e-4
	_, err = Validate(cfg.WithTolerances(tol), nil, map[Backend]*eos.Results{Current: results})
	require.ErrorAs(Te, err, &V)
	assert.Equal(Te, TierCrossModel, V.Tier)
	assert.Equal(Te, FieldB, V.Field)
	assert.Equal(Te, eos.Birch, V.Against)

	tol = DefaultTolerances()
	tol.CrossBackendV0 = 1e-7
	_, err = Validate(cfg.WithTolerances(tol), nil, map[Backend]*eos.Results{Current: results})
	require.ErrorAs(Te, err, &V)
	assert.Equal(Te, TierCrossBackend, V.Tier)
	assert.Equal(Te, Legacy, V.AgainstBackend)

	//results claimed to come from the legacy backend are checked against the
	//legacy reference, with its tighter tolerance.
	_, err = Validate(cfg, nil, map[Backend]*eos.Results{Legacy: results})
	require.ErrorAs(Te, err, &V)
	assert.Equal(Te, TierSameBackend, V.Tier)
	assert.Equal(Te, Legacy, V.Backend)
	assert.Equal(Te, 1e-6, V.Bound)

	samples := referenceSamples(cfg)
	samples[3].Volume *= 1.001
	_, err = Samples(cfg, samples)
	require.ErrorAs(Te, err, &V)
	assert.Equal(Te, 3, V.Index)
	assert.Equal(Te, FieldVolume, V.Field)
	assert.Contains(Te, V.Decorate(""), "Validate")

	_, err = Samples(cfg, samples[:2])
	assert.True(Te, errors.As(err, &V))
}

func TestConfig(Te *testing.T) {
	cfg := DefaultConfig()
	v := cfg.SampleVolumes()
	v[0] = 0
	assert.Equal(Te, 29.205536, cfg.SampleVolumes()[0])
	if d := cmp.Diff(DefaultConfig().SampleEnergies(), cfg.SampleEnergies()); d != "" {
		Te.Errorf("sample energies changed (-want +got):\n%s", d)
	}
	tol := cfg.Tolerances()
	other := cfg.WithTolerances(Tolerances{})
	assert.Equal(Te, tol, cfg.Tolerances())
	assert.Zero(Te, other.Tolerances().SameCurrent)
	assert.Equal(Te, 1e-6, tol.Same(Legacy))
	assert.Equal(Te, 5e-6, tol.Same(Current))

	P, ok := cfg.Reference(Legacy, "AntonSchmidt")
	assert.True(Te, ok)
	assert.Equal(Te, 31.745672779210317, P.V0)
	_, ok = cfg.Reference(Current, eos.AntonSchmidt)
	assert.False(Te, ok)
	assert.Len(Te, cfg.ReferenceModels(Current), 8)
	assert.Len(Te, cfg.ReferenceModels(Legacy), 7)
	//every model with a current reference can be fitted by the current backend
	for _, m := range cfg.ReferenceModels(Current) {
		M, err := eos.ParseModel(m)
		require.NoError(Te, err)
		assert.True(Te, M.SupportsCurrent, m)
	}
	M, _ := eos.ParseModel(eos.AntonSchmidt)
	assert.False(Te, M.SupportsCurrent)

	s := cfg.WithScan(Scan{Lo: 0.9, Hi: 1.1, N: 7}).WithStructure(Structure{Symbol: "Cu", Crystal: "fcc", A: 3.6})
	assert.Equal(Te, 7, s.Scan().N)
	assert.Equal(Te, "Cu", s.Structure().Symbol)
	assert.Equal(Te, "Al", cfg.Structure().Symbol)
}

func TestReport(Te *testing.T) {
	R, err := Run(context.Background(), DefaultConfig(), Options{Models: []string{eos.SJEOS, eos.Vinet}})
	require.NoError(Te, err)
	var b bytes.Buffer
	require.NoError(Te, R.WriteYAML(&b))
	var back map[string]any
	require.NoError(Te, yaml.Unmarshal(b.Bytes(), &back))
	assert.Equal(Te, true, back["passed"])
	assert.Equal(Te, R.RunID, back["run_id"])
	b.Reset()
	require.NoError(Te, R.WriteTable(&b))
	assert.Contains(Te, b.String(), "PASSED")
	assert.Contains(Te, b.String(), "vinet")
}

func TestMetrics(Te *testing.T) {
	R := &Report{
		Checks:   150,
		Passed:   true,
		Samples:  make([]SampleRow, 5),
		Fits:     []FitRow{{Model: eos.Vinet, V0: 31.5, BGPa: 38.25, RSquared: 0.5}},
		Excluded: []Exclusion{{Model: "morse", Reason: "unknown"}},
	}
	M := NewMetrics()
	M.Observe(R)
	M.Observe(nil)
	name := filepath.Join(Te.TempDir(), "goeos.prom")
	require.NoError(Te, M.WriteTextfile(name))
	b, err := os.ReadFile(name)
	require.NoError(Te, err)
	out := string(b)
	for _, want := range []string{
		"goeos_regress_checks 150",
		"goeos_regress_passed 1",
		"goeos_regress_samples 5",
		`goeos_regress_fits_total{status="fitted"} 1`,
		`goeos_regress_fits_total{status="excluded"} 1`,
		`goeos_regress_v0_angstrom3{model="vinet"} 31.5`,
		`goeos_regress_bulk_modulus_gpa{model="vinet"} 38.25`,
		`goeos_regress_r_squared{model="vinet"} 0.5`,
	} {
		assert.Contains(Te, out, want)
	}
	families, err := M.Registry().Gather()
	require.NoError(Te, err)
	assert.Len(Te, families, 8)
}
