package units

import (
	"fmt"
	"math"
	"testing"
)

func TestBohr(Te *testing.T) {
	//Bohr radius from the CODATA 1986 constants.
	if math.Abs(Bohr-0.52917725750)/Bohr > 1e-9 {
		Te.Errorf("Bohr=%.12f", Bohr)
	}
	if math.Abs(Hartree-27.2113957) > 1e-6 {
		Te.Errorf("Hartree=%.8f eV", Hartree)
	}
}

func TestGPa(Te *testing.T) {
	//the old ASE2 factor.
	const eVA3ToGPA = 160.21773
	if math.Abs(EVA3ToGPa(1)-eVA3ToGPA)/eVA3ToGPA > 1e-7 {
		Te.Errorf("1 eV/A^3 = %.8f GPa", EVA3ToGPa(1))
	}
	if math.Abs(GPaToEVA3(EVA3ToGPa(0.24))-0.24) > 1e-15 {
		Te.Error("GPa conversions are not inverse of each other")
	}
}

func ExampleEVA3ToGPa() {
	fmt.Printf("%.2f GPa\n", EVA3ToGPa(0.24112293515031302))
	// Output: 38.63 GPa
}
