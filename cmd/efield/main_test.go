package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/efield/internal/config"
	"github.com/san-kum/efield/internal/field"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSummaryCommand(t *testing.T) {
	out, err := execute(t, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "6.28e+02")
	assert.Contains(t, out, "0.00e+00")
	assert.Contains(t, out, "-2.50e-10")
}

func TestSummaryCommand_Flags(t *testing.T) {
	out, err := execute(t, "summary", "--separation", "3")
	require.NoError(t, err)
	// d=3: force = 9e9 * -1e-18 / 9
	assert.Contains(t, out, "-1.00e-09")
}

func TestSummaryCommand_SingleCharge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.yaml")
	require.NoError(t, os.WriteFile(path, []byte("charges:\n  - {x: 0, y: 0, z: 0, q: 1e-9}\n"), 0644))

	_, err := execute(t, "summary", "--config", path)
	assert.ErrorIs(t, err, field.ErrInsufficientCharges)
	assert.ErrorContains(t, err, "summary needs at least two charges")
}

func TestSingleChargeNamesCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.yaml")
	require.NoError(t, os.WriteFile(path, []byte("charges:\n  - {x: 0, y: 0, z: 0, q: 1e-9}\n"), 0644))

	tests := map[string][]string{
		"render": {"--out", filepath.Join(t.TempDir(), "f.png")},
		"svg":    {"--out", filepath.Join(t.TempDir(), "f.svg")},
		"view":   nil,
	}
	for name, extra := range tests {
		_, err := execute(t, append([]string{name, "--config", path}, extra...)...)
		require.Error(t, err, name)
		assert.ErrorIs(t, err, field.ErrInsufficientCharges, name)
		assert.ErrorContains(t, err, name+" needs at least two charges", name)
	}

	_, err := execute(t, "lines", "--config", path)
	assert.NoError(t, err)
}

func TestProbeCommand(t *testing.T) {
	out, err := execute(t, "probe", "0", "0", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "-2.00e+00")

	_, err = execute(t, "probe", "x", "0", "0")
	assert.Error(t, err)
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	require.NoError(t, err)
	for _, name := range config.ListPresets() {
		assert.Contains(t, out, name)
	}
}

func TestUnknownPreset(t *testing.T) {
	_, err := execute(t, "summary", "--preset", "nope")
	assert.ErrorContains(t, err, "unknown preset")
}

func TestInvalidFlagValue(t *testing.T) {
	_, err := execute(t, "summary", "--steps", "0")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLinesCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.csv")
	_, err := execute(t, "lines", "--seeds", "4", "--steps", "10", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows := strings.Split(strings.TrimSpace(string(data)), "\n")
	// header + 2 charges * 4 seeds * 10 points
	assert.Len(t, rows, 1+2*4*10)
}

func TestSaveListShow(t *testing.T) {
	data := t.TempDir()
	small := []string{"--data", data, "--seeds", "4", "--steps", "20", "--grid-size", "2"}

	out, err := execute(t, append([]string{"save"}, small...)...)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "snapshot id: "))
	id := strings.TrimSpace(strings.SplitN(strings.TrimPrefix(out, "snapshot id: "), "\n", 2)[0])

	out, err = execute(t, "list", "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, id)

	out, err = execute(t, "show", id, "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "snapshot: "+id)
	assert.Contains(t, out, "SUMMARY")

	_, err = execute(t, "show", "missing", "--data", data)
	assert.Error(t, err)
}

func TestListEmpty(t *testing.T) {
	out, err := execute(t, "list", "--data", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "no snapshots found")
}

func TestInitConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	_, err := execute(t, "init-config", path, "--preset", "quadrupole", "--integrator", "rk4")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Charges, 4)
	assert.Equal(t, "rk4", cfg.Integrator)
}

func TestRenderAndSVG(t *testing.T) {
	dir := t.TempDir()
	small := []string{"--seeds", "4", "--steps", "20", "--grid-size", "2", "--width", "64", "--height", "48"}

	png := filepath.Join(dir, "out.png")
	_, err := execute(t, append([]string{"render", "-o", png}, small...)...)
	require.NoError(t, err)
	assert.FileExists(t, png)

	svg := filepath.Join(dir, "out.svg")
	_, err = execute(t, append([]string{"svg", "-o", svg}, small...)...)
	require.NoError(t, err)
	data, err := os.ReadFile(svg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestExportJSONCommand(t *testing.T) {
	out, err := execute(t, "export-json", "--seeds", "2", "--steps", "5", "--grid-size", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"coulomb_force"`)
}

func TestProfileCommand(t *testing.T) {
	out, err := execute(t, "profile", "--points", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "along x")
}
