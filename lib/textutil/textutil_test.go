package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLabel(t *testing.T) {
	require.Equal(t, "descricao", NormalizeLabel("Descrição:"))
	require.Equal(t, "administradorinsolvencia", NormalizeLabel("Administrador Insolvência"))
	require.Equal(t, "nif/nipc", NormalizeLabel(" NIF/NIPC: "))
}

func TestSplitLabelValue(t *testing.T) {
	label, value, ok := SplitLabelValue("Processo: 123/24.5T8AVR")
	require.True(t, ok)
	require.Equal(t, "Processo", label)
	require.Equal(t, "123/24.5T8AVR", value)

	_, _, ok = SplitLabelValue("assembleia marcada")
	require.False(t, ok)

	_, _, ok = SplitLabelValue(": sem etiqueta")
	require.False(t, ok)
}
