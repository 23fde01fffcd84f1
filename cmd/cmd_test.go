package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gocfs/internal/section"
	"github.com/alexiusacademia/gocfs/internal/template"
)

// execute runs the root command with a private home directory and library.
// Flag variables are package level, so the ones the tests touch are reset
// before every run.
func execute(t *testing.T, store string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", filepath.Dir(store))

	def := template.DefaultParams()
	templateShape, templateDepth, templateFlange, templateMils = string(def.Shape), def.WebDepth, def.FlangeWidth, def.Mils
	templateRounded, templateOutToOut, templateList = false, false, false
	templateSave, templateOut = "", ""
	templateRepOption, sectionAnalyzeOptions, storeShowReport = reportOptions{}, reportOptions{}, reportOptions{}
	sectionAnalyzeSave, storeImportName, storeListLimit = "", "", 0
	configFile, logLevel = "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--store", store}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTemplateReport(t *testing.T) {
	store := filepath.Join(t.TempDir(), "db")

	out, err := execute(t, store, "section", "template", "--diagram", "--warping")
	require.NoError(t, err)
	assert.Contains(t, out, "162S125-18")
	assert.Contains(t, out, "GEOMETRY:")
	assert.Contains(t, out, "TORSION:")
	assert.Contains(t, out, "KEY PROPERTIES")
	assert.Contains(t, out, "Shear center")
	assert.Contains(t, out, "WARPING DISTRIBUTION")

	out, err = execute(t, store, "section", "template", "--shape", "z", "--depth", "3.625", "--flange", "1.625", "--mils", "54", "--rounded")
	require.NoError(t, err)
	assert.Contains(t, out, "362Z162-54")
	assert.Contains(t, out, "5 straight, 4 arc")

	_, err = execute(t, store, "section", "template", "--mils", "19")
	assert.Error(t, err)

	out, err = execute(t, store, "section", "template", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "FLANGE WIDTHS")
	assert.Contains(t, out, "sharp only at 97, 118 mils")

	_, err = execute(t, store, "section", "template", "--mils", "97", "--rounded")
	assert.ErrorIs(t, err, template.ErrBendTooLarge)
}

func TestLibraryWorkflow(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "db")
	file := filepath.Join(dir, "stud.yaml")
	img := filepath.Join(dir, "stud.png")

	out, err := execute(t, store, "section", "template", "--depth", "3.625", "--flange", "1.625", "--mils", "54",
		"--out", file, "--save", "stud")
	require.NoError(t, err)
	assert.Contains(t, out, "Section written to")
	assert.Contains(t, out, `Saved "stud"`)

	sec, err := section.LoadFromFile(file)
	require.NoError(t, err)
	assert.Len(t, sec.Straights, 5)

	out, err = execute(t, store, "section", "analyze", "-f", file, "-o", img, "--overlay")
	require.NoError(t, err)
	assert.Contains(t, out, "THIN-WALLED SECTION PROPERTIES - stud")
	assert.FileExists(t, img)

	out, err = execute(t, store, "store", "import", "-f", file, "--name", "copy")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved "copy"`)

	out, err = execute(t, store, "store", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "stud")
	assert.Contains(t, out, "copy")

	out, err = execute(t, store, "store", "rename", "copy", "header")
	require.NoError(t, err)
	assert.Contains(t, out, `"header"`)

	out, err = execute(t, store, "store", "duplicate", "stud")
	require.NoError(t, err)
	assert.Contains(t, out, `Duplicated "stud"`)
	_, err = execute(t, store, "store", "show", "stud")
	assert.ErrorContains(t, err, "ambiguous")

	out, err = execute(t, store, "store", "show", "header")
	require.NoError(t, err)
	assert.Contains(t, out, "THIN-WALLED SECTION PROPERTIES - header")

	exported := filepath.Join(dir, "header.json")
	_, err = execute(t, store, "store", "export", "header", "-f", exported)
	require.NoError(t, err)
	back, err := section.LoadFromFile(exported)
	require.NoError(t, err)
	assert.Equal(t, sec.Straights, back.Straights)

	_, err = execute(t, store, "store", "delete", "header")
	require.NoError(t, err)
	_, err = execute(t, store, "store", "show", "header")
	assert.Error(t, err)
}

func TestAnalyzeMissingFile(t *testing.T) {
	store := filepath.Join(t.TempDir(), "db")
	_, err := execute(t, store, "section", "analyze", "-f", filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	store := filepath.Join(t.TempDir(), "db")
	out, err := execute(t, store, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gocfs")
}
