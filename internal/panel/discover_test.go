package panel

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFigureID(t *testing.T) {
	assert.Equal(t, "01", FigureID("01_demographic_data"))
	assert.Equal(t, ".01", FigureID(".01_workflow"))
	assert.Equal(t, "07", FigureID("07"))
	assert.Equal(t, "", FigureID("_x"))
}

func TestMatchPanel(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		label string
		ok    bool
	}{
		{"lowercase letter", "01a_x.jpg", "A", true},
		{"uppercase letter", "01B_y.jpg", "B", true},
		{"png", "01c_overview.png", "C", true},
		{"uppercase extension", "01d_detail.JPG", "D", true},
		{"tiff", "01e_scan.tiff", "E", true},
		{"empty description", "01f_.jpg", "F", true},
		{"other figure", "02a_x.jpg", "", false},
		{"longer id", "011a_x.jpg", "", false},
		{"no letter", "01_x.jpg", "", false},
		{"two letters", "01ab_x.jpg", "", false},
		{"missing underscore", "01a.jpg", "", false},
		{"unsupported extension", "01a_x.txt", "", false},
		{"no extension", "01a_x", "", false},
		{"non-ascii letter", "01é_x.jpg", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, ok := MatchPanel(tt.file, "01")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.label, label)
		})
	}
}

func TestMatchPanel_EmptyID(t *testing.T) {
	_, ok := MatchPanel("a_x.jpg", "")
	assert.False(t, ok)
}

func TestDiscover_MixedCase(t *testing.T) {
	dir := t.TempDir()
	a := writePanel(t, dir, "01a_x.jpg", 10, 10, color.White)
	b := writePanel(t, dir, "01B_y.jpg", 10, 10, color.White)

	got, err := Discover("01_demo", dir, false, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"A": a, "B": b}, got)
}

func TestDiscover_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	a := writePanel(t, dir, "01a_x.jpg", 10, 10, color.White)
	writePanel(t, dir, "02a_x.jpg", 10, 10, color.White)
	writePanel(t, dir, "01_x.jpg", 10, 10, color.White)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01b_notes.txt"), []byte("notes"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "01c_dir.jpg"), 0o755))

	got, err := Discover("01_demo", dir, false, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"A": a}, got)
}

func TestDiscover_Empty(t *testing.T) {
	got, err := Discover("01_demo", t.TempDir(), false, quietLogger())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover("01_demo", filepath.Join(t.TempDir(), "missing"), false, quietLogger())
	assert.Error(t, err)
}

func TestDiscover_InvalidFigureBase(t *testing.T) {
	_, err := Discover("_demo", t.TempDir(), false, quietLogger())
	assert.ErrorIs(t, err, ErrInvalidFigureBase)
}

func TestDiscover_DuplicateFirstWins(t *testing.T) {
	dir := t.TempDir()
	// "01A_..." sorts before "01a_..."
	first := writePanel(t, dir, "01A_first.png", 10, 10, color.White)
	writePanel(t, dir, "01a_second.jpg", 10, 10, color.White)

	got, err := Discover("01_demo", dir, false, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"A": first}, got)
}

func TestDiscover_DuplicateStrict(t *testing.T) {
	dir := t.TempDir()
	writePanel(t, dir, "01A_first.png", 10, 10, color.White)
	writePanel(t, dir, "01a_second.jpg", 10, 10, color.White)

	_, err := Discover("01_demo", dir, true, quietLogger())
	assert.ErrorIs(t, err, ErrDuplicateLabel)
}

func TestDiscover_NilLogger(t *testing.T) {
	dir := t.TempDir()
	writePanel(t, dir, "01a_x.jpg", 10, 10, color.White)

	got, err := Discover("01_demo", dir, false, nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFindFigures(t *testing.T) {
	dir := t.TempDir()
	writePanel(t, dir, "02b_later.jpg", 10, 10, color.White)
	writePanel(t, dir, "02a_results.jpg", 10, 10, color.White)
	writePanel(t, dir, "01a_workflow.png", 10, 10, color.White)
	writePanel(t, dir, "01C_extra.png", 10, 10, color.White)
	writePanel(t, dir, "03_single.png", 10, 10, color.White)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "04a_notes.txt"), []byte("x"), 0o644))

	figs, err := FindFigures(dir)
	require.NoError(t, err)

	require.Len(t, figs, 2)
	assert.Equal(t, Figure{ID: "01", Base: "01_workflow", Labels: []string{"A", "C"}}, figs[0])
	assert.Equal(t, Figure{ID: "02", Base: "02_results", Labels: []string{"A", "B"}}, figs[1])
}

func TestFindFigures_MissingDir(t *testing.T) {
	_, err := FindFigures(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
