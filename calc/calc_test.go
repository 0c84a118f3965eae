package calc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	chem "github.com/rmera/goeos"
	v3 "github.com/rmera/goeos/v3"
)

// orthoAl returns the orthorhombic 2-atom Al fcc cell with a=4.0, scaled by x.
func orthoAl(Te *testing.T, x float64) *chem.Atoms {
	Te.Helper()
	b := 4.0 / math.Sqrt(2) * x
	c := 4.0 * x
	coords, _ := v3.NewMatrix([]float64{0, 0, 0, b / 2, b / 2, c / 2})
	cell, _ := v3.NewMatrix([]float64{b, 0, 0, 0, b, 0, 0, 0, c})
	A, err := chem.NewAtoms([]string{"Al", "Al"}, coords, cell)
	if err != nil {
		Te.Fatal(err)
	}
	return A
}

func TestEMTAluminum(Te *testing.T) {
	E := NewEMT()
	scalings := []float64{0.97, 0.985, 1.0, 1.015, 1.03}
	ref := []float64{0.0190898, -0.0031172, -0.0096925, -0.0004014, 0.0235753}
	for i, x := range scalings {
		e, err := E.PotentialEnergy(context.Background(), orthoAl(Te, x))
		if err != nil {
			Te.Fatal(err)
		}
		if rel := math.Abs((e - ref[i]) / ref[i]); rel > 1e-4 {
			Te.Errorf("scaling %.3f: energy %.10f, reference %.7f (relative error %.2e)", x, e, ref[i], rel)
		}
	}
	fmt.Println(E)
}

func TestEMTCellChoice(Te *testing.T) {
	//The energy per atom can't depend on the cell used to represent the crystal.
	E := NewEMT()
	h := 2.0
	prim, _ := chem.NewAtoms([]string{"Al"}, v3.Zeros(1), mustMatrix([]float64{0, h, h, h, 0, h, h, h, 0}))
	ep, err := E.PotentialEnergy(context.Background(), prim)
	if err != nil {
		Te.Fatal(err)
	}
	eo, _ := E.PotentialEnergy(context.Background(), orthoAl(Te, 1))
	if math.Abs(ep-eo/2) > 1e-10 {
		Te.Errorf("primitive cell energy %.12f, orthorhombic cell energy per atom %.12f", ep, eo/2)
	}
}

func TestEMTErrors(Te *testing.T) {
	E := NewEMT()
	fe, _ := chem.NewAtoms([]string{"Fe"}, v3.Zeros(1), mustMatrix([]float64{2.87, 0, 0, 0, 2.87, 0, 0, 0, 2.87}))
	_, err := E.PotentialEnergy(context.Background(), fe)
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Calculator() != EMTName {
		Te.Errorf("expected a calc error for an element without parameters, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := E.PotentialEnergy(ctx, orthoAl(Te, 1)); err == nil {
		Te.Error("expected an error with a cancelled context")
	}
	//An isolated atom has energy -E0.
	single, _ := chem.NewAtoms([]string{"Cu"}, v3.Zeros(1), nil)
	e, err := E.PotentialEnergy(context.Background(), single)
	if err != nil || math.Abs(e-3.51) > 1e-12 {
		Te.Errorf("isolated Cu atom energy %f (%v), expected 3.51", e, err)
	}
}

func TestExternal(Te *testing.T) {
	X := NewExternal("head -n 1 > /dev/null; cat > /dev/null; echo 'energy: -3.25'")
	e, err := X.PotentialEnergy(context.Background(), orthoAl(Te, 1))
	if err != nil {
		Te.Fatal(err)
	}
	if e != -3.25 {
		Te.Errorf("energy %f, expected -3.25", e)
	}
	X = NewExternal("cat > /dev/null; echo no energy here")
	if _, err := X.PotentialEnergy(context.Background(), orthoAl(Te, 1)); err == nil {
		Te.Error("expected an error for output without an energy")
	}
	X = NewExternal("cat > /dev/null; exit 3")
	if _, err := X.PotentialEnergy(context.Background(), orthoAl(Te, 1)); err == nil {
		Te.Error("expected an error for a failing program")
	}
	X = NewExternal("sleep 5")
	X.SetTimeout(50 * time.Millisecond)
	if _, err := X.PotentialEnergy(context.Background(), orthoAl(Te, 1)); err == nil {
		Te.Error("expected a timeout")
	}
}

func mustMatrix(data []float64) *v3.Matrix {
	m, err := v3.NewMatrix(data)
	if err != nil {
		panic(err)
	}
	return m
}
