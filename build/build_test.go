package build

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulk(Te *testing.T) {
	tests := []struct {
		name    string
		symbol  string
		crystal string
		a       float64
		opts    Options
		natoms  int
		volume  float64
	}{
		{"fcc primitive", "Al", "fcc", 4.0, Options{}, 1, 16},
		{"fcc orthorhombic", "Al", "fcc", 4.0, Options{Orthorhombic: true}, 2, 32},
		{"fcc cubic", "Cu", "fcc", 3.6, Options{Cubic: true}, 4, 3.6 * 3.6 * 3.6},
		{"bcc primitive", "Fe", "bcc", 2.87, Options{}, 1, 2.87 * 2.87 * 2.87 / 2},
		{"bcc cubic", "Fe", "bcc", 2.87, Options{Cubic: true}, 2, 2.87 * 2.87 * 2.87},
		{"sc", "Po", "sc", 3.35, Options{}, 1, 3.35 * 3.35 * 3.35},
		{"reference state", "Au", "", 0, Options{Cubic: true}, 4, 4.08 * 4.08 * 4.08},
	}
	for _, tt := range tests {
		Te.Run(tt.name, func(Te *testing.T) {
			atoms, err := Bulk(tt.symbol, tt.crystal, tt.a, tt.opts)
			require.NoError(Te, err)
			assert.Equal(Te, tt.natoms, atoms.Len())
			assert.InEpsilon(Te, tt.volume, atoms.Volume(), 1e-12)
			assert.True(Te, atoms.Periodic())
		})
	}
}

func TestBulkOrthorhombicPositions(Te *testing.T) {
	atoms, err := Bulk("Al", "fcc", 4.0, Options{Orthorhombic: true})
	require.NoError(Te, err)
	second := atoms.Coords.Vec(1)
	b := 4.0 / math.Sqrt(2)
	assert.InDelta(Te, b/2, second[0], 1e-12)
	assert.InDelta(Te, b/2, second[1], 1e-12)
	assert.InDelta(Te, 2.0, second[2], 1e-12)
}

func TestBulkErrors(Te *testing.T) {
	_, err := Bulk("Al", "hcp", 3, Options{})
	assert.Error(Te, err)
	_, err = Bulk("Al", "fcc", 4, Options{Cubic: true, Orthorhombic: true})
	assert.Error(Te, err)
	_, err = Bulk("Al", "bcc", 0, Options{})
	assert.Error(Te, err, "Al has no reference bcc lattice constant")
	_, err = Bulk("Xx", "fcc", 4, Options{})
	assert.Error(Te, err)
}

func TestScalings(Te *testing.T) {
	s, err := Scalings(0.97, 1.03, 5)
	require.NoError(Te, err)
	want := []float64{0.97, 0.985, 1.0, 1.015, 1.03}
	require.Len(Te, s, 5)
	for i := range want {
		assert.InDelta(Te, want[i], s[i], 1e-15)
	}
	_, err = Scalings(0.97, 1.03, 1)
	assert.Error(Te, err)
	_, err = Scalings(-1, 1, 3)
	assert.Error(Te, err)
}

func ExampleBulk() {
	atoms, _ := Bulk("Al", "fcc", 4.0, Options{Orthorhombic: true})
	fmt.Printf("%s %.3f\n", atoms.Formula(), atoms.Volume())
	// Output: Al2 32.000
}
