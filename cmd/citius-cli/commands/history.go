package commands

import (
	"os"
	"time"

	"citius-scraper/lib/runstore"
	"citius-scraper/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyFlags struct {
	db    string
	limit int
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyFlags.db, "db", "citius_runs.db", "Run history database to read.")
	f.IntVar(&historyFlags.limit, "limit", 20, "Number of runs to show.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [--db <path>] [--limit <n>]",
	Short: "Shows the most recent search runs.",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := runstore.Open(historyFlags.db)
		if err != nil {
			serviceutil.Fatal("failed to open run history db", err)
		}
		defer store.Close()

		runs, err := store.Recent(cmd.Context(), historyFlags.limit)
		if err != nil {
			serviceutil.Fatal("failed to read run history", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Started", "Query", "Outcome", "Records", "Elapsed", "Output"})
		for _, run := range runs {
			t.AppendRow(table.Row{
				run.StartedAt.Format(time.DateTime),
				run.Query,
				run.Outcome,
				run.RecordCount,
				(time.Duration(run.ElapsedMs) * time.Millisecond).Round(time.Millisecond),
				run.CsvPath,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
