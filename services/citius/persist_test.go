package citius

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterRoundTrip(t *testing.T) {
	records := []Record{
		{
			Court:       "Juízo de Comércio de Aveiro",
			Process:     "123/24.5T8AVR",
			Date:        "15-03-2024",
			Act:         "Anúncio",
			Description: "Declaração de insolvência",
			Parties:     "Insolvente: Cerâmica do Vouga, Lda",
			Status:      "",
			Links:       []string{"https://www.citius.mj.pt/a", "https://www.citius.mj.pt/b"},
		},
		{
			Court:   "Juízo de Comércio do Porto",
			Process: "456/24.1T8PRT",
			Links:   []string{},
		},
	}

	base := filepath.Join(t.TempDir(), "saida", "resultados")
	csvPath, jsonPath, err := Writer{}.Write(records, base)
	require.NoError(t, err)
	require.Equal(t, base+".csv", csvPath)
	require.Equal(t, base+".json", jsonPath)

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	csvRows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, csvRows, 3)
	require.Equal(t, recordFields, csvRows[0])

	contents, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var jsonRecords []Record
	require.NoError(t, json.Unmarshal(contents, &jsonRecords))
	require.Equal(t, records, jsonRecords)

	// both formats carry the identical logical content
	for i, rec := range jsonRecords {
		require.Equal(t, []string{
			rec.Court, rec.Process, rec.Date, rec.Act,
			rec.Description, rec.Parties, rec.Status,
			strings.Join(rec.Links, "; "),
		}, csvRows[i+1])
	}
}

func TestWriterEmptySetStillWritesBothFiles(t *testing.T) {
	base := filepath.Join(t.TempDir(), "resultados")
	csvPath, jsonPath, err := Writer{}.Write(nil, base)
	require.NoError(t, err)

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	csvRows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{recordFields}, csvRows)

	contents, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(contents))
}

func TestWriterStripsBaseExtension(t *testing.T) {
	base := filepath.Join(t.TempDir(), "resultados.csv")
	csvPath, jsonPath, err := Writer{}.Write(nil, base)
	require.NoError(t, err)
	require.Equal(t, strings.TrimSuffix(base, ".csv")+".csv", csvPath)
	require.Equal(t, strings.TrimSuffix(base, ".csv")+".json", jsonPath)
}

func TestWriterUnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bloqueado"), nil, 0644))

	// the parent of the output base is a file, not a directory
	_, _, err := Writer{}.Write(nil, filepath.Join(dir, "bloqueado", "resultados"))
	require.ErrorIs(t, err, ErrPersistence)
}
