package citius

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueryValidate(t *testing.T) {
	err := Query{Identifier: "515755230"}.Validate()
	require.NoError(t, err)

	err = Query{Name: "Esmalglass Portugal"}.Validate()
	require.NoError(t, err)

	err = Query{}.Validate()
	require.Error(t, err)

	err = Query{Identifier: "515755230", Name: "Esmalglass Portugal"}.Validate()
	require.Error(t, err)

	err = Query{Identifier: "515755230", Court: Court("tribunal constitucional")}.Validate()
	require.Error(t, err)

	err = Query{Identifier: "515755230", Recency: Recency("90")}.Validate()
	require.Error(t, err)

	err = Query{Identifier: "515755230", Act: "Anúncio"}.Validate()
	require.Error(t, err)

	err = Query{Identifier: "515755230", ActGroup: "Actos do Processo", Act: "Anúncio"}.Validate()
	require.NoError(t, err)
}

func TestQueryEffectiveRecency(t *testing.T) {
	require.Equal(t, RecencyAll, Query{}.EffectiveRecency())
	require.Equal(t, Recency15, Query{Recency: Recency15}.EffectiveRecency())
}

func TestQueryString(t *testing.T) {
	q := Query{
		Identifier: "515755230",
		DateStart:  "01-01-2024",
		DateEnd:    "31-12-2024",
		Court:      CourtCurrent,
	}
	require.Equal(
		t,
		"nif=515755230 desde=01-01-2024 ate=31-12-2024 tribunal=current dias=all",
		q.String(),
	)
}
