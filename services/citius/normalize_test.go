package citius

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePositionalCells(t *testing.T) {
	records := Normalizer{}.Normalize([]RawRow{{
		Cells: []string{
			"Juízo de Comércio de Aveiro", "123/24.5T8AVR", "15-03-2024",
			"Anúncio", "Declaração de insolvência",
		},
		Links: []string{"https://www.citius.mj.pt/portal/consultas/detalhe.aspx?id=1"},
	}})

	require.Len(t, records, 1)
	require.Equal(t, Record{
		Court:       "Juízo de Comércio de Aveiro",
		Process:     "123/24.5T8AVR",
		Date:        "15-03-2024",
		Act:         "Anúncio",
		Description: "Declaração de insolvência",
		Links:       []string{"https://www.citius.mj.pt/portal/consultas/detalhe.aspx?id=1"},
	}, records[0])
}

func TestNormalizeLabelledLines(t *testing.T) {
	records := Normalizer{}.Normalize([]RawRow{{
		Cells: []string{
			"Tribunal: Juízo de Comércio do Porto",
			"Processo: 456/24.1T8PRT",
			"Data: 20-03-2024",
			"Acto: Edital",
			"Insolvente: Cerâmica do Vouga, Lda",
			"Credor: Banco Comercial Português, S.A.",
		},
	}})

	require.Len(t, records, 1)
	rec := records[0]
	require.Equal(t, "Juízo de Comércio do Porto", rec.Court)
	require.Equal(t, "456/24.1T8PRT", rec.Process)
	require.Equal(t, "20-03-2024", rec.Date)
	require.Equal(t, "Edital", rec.Act)
	require.Equal(
		t,
		"Insolvente: Cerâmica do Vouga, Lda; Credor: Banco Comercial Português, S.A.",
		rec.Parties,
	)
}

func TestNormalizeDump(t *testing.T) {
	records := Normalizer{}.Normalize([]RawRow{{
		Dump: "Tribunal: Juízo de Comércio de Aveiro\nProcesso: 123/24.5T8AVR\nassembleia marcada",
	}})

	require.Len(t, records, 1)
	require.Equal(t, "Juízo de Comércio de Aveiro", records[0].Court)
	require.Equal(t, "123/24.5T8AVR", records[0].Process)
	// unrecognized lines survive as the description
	require.Equal(t, "assembleia marcada", records[0].Description)
}

func TestNormalizeFuzzyLabel(t *testing.T) {
	// close misspellings still land on the right field, as portal
	// markup drifts
	records := Normalizer{}.Normalize([]RawRow{{
		Cells: []string{
			"Tribunaal: Juízo de Comércio de Aveiro",
			"Descrição: Sentença de declaração de insolvência",
		},
	}})

	require.Len(t, records, 1)
	require.Equal(t, "Juízo de Comércio de Aveiro", records[0].Court)
	require.Equal(t, "Sentença de declaração de insolvência", records[0].Description)
}

func TestNormalizePlaceholder(t *testing.T) {
	records := Normalizer{}.Normalize([]RawRow{{}})

	require.Len(t, records, 1)
	require.Equal(t, Record{
		Status: "documento detectado mas não extraído",
		Links:  []string{},
	}, records[0])
}

func TestNormalizeNeverNilLinks(t *testing.T) {
	records := Normalizer{}.Normalize([]RawRow{
		{Cells: []string{"a", "b", "c", "d", "e"}},
		{Dump: "Processo: 1/24"},
	})
	for _, rec := range records {
		require.NotNil(t, rec.Links)
	}
}
