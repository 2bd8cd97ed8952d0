package runstore

import (
	"context"
	"testing"
	"time"

	"citius-scraper/lib/testutil"
	"citius-scraper/lib/timezone"

	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	database, cleanup := testutil.SetupDb(t, testutil.DbParams{
		Name:   "runstore",
		Schema: Schema,
	})
	defer cleanup()

	store := NewStore(database)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		runs, err := store.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, runs, 0)
	}
	{
		err := store.Append(ctx, Run{
			StartedAt:   timezone.Now(),
			Query:       "nif=515755230",
			Outcome:     "success",
			RecordCount: 12,
			ElapsedMs:   4000,
			CsvPath:     "resultados_citius.csv",
			JsonPath:    "resultados_citius.json",
		})
		require.NoError(t, err)

		err = store.Append(ctx, Run{
			StartedAt: timezone.Now().Add(time.Second),
			Query:     "designacao=Empresa XYZ",
			Outcome:   "failure",
			Reason:    "results surface not found",
			CsvPath:   "out.csv",
			JsonPath:  "out.json",
		})
		require.NoError(t, err)
	}
	{
		runs, err := store.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		require.Equal(t, "failure", runs[0].Outcome)
		require.Equal(t, "nif=515755230", runs[1].Query)
		require.Equal(t, 12, runs[1].RecordCount)
	}
	{
		runs, err := store.Recent(ctx, 1)
		require.NoError(t, err)
		require.Len(t, runs, 1)
	}
}
