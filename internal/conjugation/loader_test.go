package conjugation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Modo,Tiempo,Nombre,Pronombre,Genere,essere,avere,mangiare,credere,dormire
Indicativo,Presente,Presente,Io,M,sono,ho,mangio,credo,dormo
Indicativo,Presente,Presente,Io,F,sono,ho,mangio,credo,dormo
Indicativo,Presente,Presente,Lei,M,è,ha,mangia,crede,dorme
Indicativo,Presente,Presente, Tu ,M, sei ,hai,mangi,credi,dormi
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conjugazioni.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesCleaningRules(t *testing.T) {
	table, err := Load(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	// Feminine and "Lei" rows are dropped; the rest is kept.
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Io", table.Rows[0].Pronombre)
	assert.Equal(t, "Tu", table.Rows[1].Pronombre)
}

func TestLoadTrimsCells(t *testing.T) {
	table, err := Load(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	tu := table.Rows[1]
	assert.Equal(t, "sei", tu.Forms["essere"])
	assert.Equal(t, "dormi", tu.Forms["dormire"])
}

func TestLoadMissingVerbColumn(t *testing.T) {
	csv := `Modo,Tiempo,Nombre,Pronombre,Genere,essere,avere,mangiare,credere
Indicativo,Presente,Presente,Io,M,sono,ho,mangio,credo
`
	_, err := Load(writeCSV(t, csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dormire")
}

func TestLoadMissingDescriptorColumn(t *testing.T) {
	csv := `Modo,Tiempo,Nombre,Genere,essere,avere,mangiare,credere,dormire
Indicativo,Presente,Presente,M,sono,ho,mangio,credo,dormo
`
	_, err := Load(writeCSV(t, csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Pronombre")
}

func TestLoadEmptyVerbCell(t *testing.T) {
	csv := `Modo,Tiempo,Nombre,Pronombre,Genere,essere,avere,mangiare,credere,dormire
Indicativo,Presente,Presente,Io,M,sono,,mangio,credo,dormo
`
	_, err := Load(writeCSV(t, csv))
	require.Error(t, err, "a blank form would produce an unanswerable question")
	assert.Contains(t, err.Error(), "avere")
	assert.Contains(t, err.Error(), "row 2")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	_, err := Load(writeCSV(t, ""))
	assert.Error(t, err)
}

func TestSortForReview(t *testing.T) {
	table, err := Load(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	rows := append(table.Rows[:0:0], table.Rows...)
	rows[0], rows[1] = rows[1], rows[0]
	SortForReview(rows)
	assert.Equal(t, "Io", rows[0].Pronombre)
	assert.Equal(t, "Tu", rows[1].Pronombre)
}

func TestPronounRank(t *testing.T) {
	assert.Less(t, PronounRank("Io"), PronounRank("Loro"))
	assert.Equal(t, len(PronounOrder), PronounRank("Lei"))
}
