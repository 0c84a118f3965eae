package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/rmera/goeos/calc"
	"github.com/rmera/goeos/regress"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(Te *testing.T) {
	Te.Setenv("HOME", Te.TempDir())
	c, err := Load(viper.New(), "")
	require.NoError(Te, err)
	assert.Equal(Te, "Al", c.Structure.Symbol)
	assert.Equal(Te, 5, c.Scan.N)
	assert.Equal(Te, "table", c.Output)
	assert.True(Te, c.IsReference())
	assert.Equal(Te, regress.DefaultConfig().Tolerances(), c.Regress().Tolerances())
	assert.Equal(Te, calc.EMTName, c.NewCalculator(logr.Discard()).Name())
}

func TestFileAndEnv(Te *testing.T) {
	Te.Setenv("HOME", Te.TempDir())
	file := filepath.Join(Te.TempDir(), "goeos.yaml")
	yml := `structure:
  symbol: Cu
  a: 3.6
scan:
  lo: 0.95
  hi: 1.05
tolerances:
  cross_model_b: 0.05
calculator:
  name: external
  command: "cat"
  timeout: 30s
models: [sjeos, vinet]
`
	require.NoError(Te, os.WriteFile(file, []byte(yml), 0o644))
	Te.Setenv("GOEOS_SCAN_N", "7")
	c, err := Load(viper.New(), file)
	require.NoError(Te, err)
	assert.Equal(Te, "Cu", c.Structure.Symbol)
	assert.Equal(Te, "fcc", c.Structure.Crystal)
	assert.Equal(Te, 3.6, c.Structure.A)
	assert.Equal(Te, 7, c.Scan.N)
	assert.Equal(Te, 30*time.Second, c.Calculator.Timeout)
	assert.Equal(Te, []string{"sjeos", "vinet"}, c.Models)
	assert.False(Te, c.IsReference())

	r := c.Regress()
	assert.Equal(Te, 0.05, r.Tolerances().CrossModelB)
	assert.Equal(Te, 5e-6, r.Tolerances().SameCurrent)
	assert.Equal(Te, regress.Scan{Lo: 0.95, Hi: 1.05, N: 7}, r.Scan())
	X, ok := c.NewCalculator(logr.Discard()).(*calc.External)
	require.True(Te, ok)
	assert.Equal(Te, "cat", X.Command())
}

func TestInvalid(Te *testing.T) {
	Te.Setenv("HOME", Te.TempDir())
	_, err := Load(viper.New(), filepath.Join(Te.TempDir(), "missing.yaml"))
	assert.Error(Te, err)

	Te.Setenv("GOEOS_CALCULATOR_NAME", "dft")
	_, err = Load(viper.New(), "")
	assert.Error(Te, err)

	Te.Setenv("GOEOS_CALCULATOR_NAME", "external")
	_, err = Load(viper.New(), "")
	assert.Error(Te, err)

	Te.Setenv("GOEOS_CALCULATOR_NAME", "emt")
	Te.Setenv("GOEOS_OUTPUT", "xml")
	_, err = Load(viper.New(), "")
	assert.Error(Te, err)
}
