package commands

import (
	"context"
	"log/slog"
	"os"
	"time"

	"citius-scraper/lib/browser"
	"citius-scraper/lib/configutil"
	"citius-scraper/lib/restyutil"
	"citius-scraper/lib/runstore"
	"citius-scraper/lib/serviceutil"
	"citius-scraper/services/citius"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type Config struct {
	Output    string `json:"output"`
	Timeout   int    `json:"timeout"`
	Headless  *bool  `json:"headless"`
	HistoryDb string `json:"history_db"`
}

var searchFlags struct {
	nif       string
	name      string
	dateStart string
	dateEnd   string
	court     string
	actGroup  string
	act       string
	days      string
	output    string
	headless  bool
	timeout   int
	historyDb string
}

func init() {
	f := searchCmd.Flags()
	f.StringVar(&searchFlags.nif, "nif", "", "NIF/NIPC of the entity to search for.")
	f.StringVar(&searchFlags.name, "designacao", "", "Name of the entity to search for.")
	f.StringVar(&searchFlags.dateStart, "data-inicio", "", "Start date (DD-MM-YYYY).")
	f.StringVar(&searchFlags.dateEnd, "data-fim", "", "End date (DD-MM-YYYY).")
	f.StringVar(&searchFlags.court, "tribunal", "", "Court structure: 'nova' or 'extintos'.")
	f.StringVar(&searchFlags.actGroup, "grupo-actos", "", "Act group filter.")
	f.StringVar(&searchFlags.act, "acto", "", "Act filter (requires --grupo-actos).")
	f.StringVar(&searchFlags.days, "dias", "todos", "Recency window: 15, 30 or todos.")
	f.StringVar(&searchFlags.output, "output", "", "Base name for the output files (no extension).")
	f.BoolVar(&searchFlags.headless, "headless", true, "Run the browser without a visible window.")
	f.IntVar(&searchFlags.timeout, "timeout", 0, "Wall-clock budget for the search, in seconds.")
	f.StringVar(&searchFlags.historyDb, "history-db", "citius_runs.db", "Run history database, empty to disable.")
	rootCmd.AddCommand(searchCmd)
}

func buildQuery() citius.Query {
	q := citius.Query{
		Identifier: searchFlags.nif,
		Name:       searchFlags.name,
		DateStart:  searchFlags.dateStart,
		DateEnd:    searchFlags.dateEnd,
		ActGroup:   searchFlags.actGroup,
		Act:        searchFlags.act,
	}
	switch searchFlags.court {
	case "nova":
		q.Court = citius.CourtCurrent
	case "extintos":
		q.Court = citius.CourtDefunct
	}
	switch searchFlags.days {
	case "15":
		q.Recency = citius.Recency15
	case "30":
		q.Recency = citius.Recency30
	default:
		q.Recency = citius.RecencyAll
	}
	return q
}

var searchCmd = &cobra.Command{
	Use:   "search [--nif <nif> | --designacao <name>] [flags]",
	Short: "Runs one search against the portal and writes CSV + JSON results.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil && !os.IsNotExist(err) {
			serviceutil.Fatal("failed to read config", err)
		}

		output := searchFlags.output
		if output == "" {
			output = cfg.Output
		}
		if output == "" {
			output = "resultados_citius"
		}
		timeout := searchFlags.timeout
		if timeout == 0 {
			timeout = cfg.Timeout
		}
		if timeout == 0 {
			timeout = 60
		}
		headless := searchFlags.headless
		if !cmd.Flags().Changed("headless") && cfg.Headless != nil {
			headless = *cfg.Headless
		}
		historyDb := searchFlags.historyDb
		if !cmd.Flags().Changed("history-db") && cfg.HistoryDb != "" {
			historyDb = cfg.HistoryDb
		}

		if *debug {
			citius.SetRestyInstrumentOutput(
				restyutil.NewFilesystemOutput(".dev/resty/preflight"),
			)
		}

		// an unreachable portal is surfaced early, but the run still
		// continues so the output files are produced either way
		if err := citius.Preflight(ctx); err != nil {
			slog.Error("portal preflight failed", "err", err)
		}

		var store *runstore.Store
		if historyDb != "" {
			s, err := runstore.Open(historyDb)
			if err != nil {
				serviceutil.Fatal("failed to open run history db", err)
			}
			defer s.Close()
			store = &s
		}

		orch := citius.NewOrchestrator(citius.OrchestratorOptions{
			NewSession: func(ctx context.Context) (browser.Session, error) {
				return browser.Launch(ctx, browser.Options{Headless: headless})
			},
			Store: store,
		})

		result := orch.Search(ctx, buildQuery(), citius.SearchOptions{
			OutputBase: output,
			Budget:     time.Duration(timeout) * time.Second,
		})

		renderResult(result)
		if result.Outcome == citius.OutcomeFailure {
			os.Exit(1)
		}
	},
}

func renderResult(result citius.SearchResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Outcome", "Strategy", "Records", "Elapsed", "CSV", "JSON"})
	t.AppendRow(table.Row{
		result.Outcome,
		result.Strategy,
		result.RecordCount,
		result.Elapsed.Round(time.Millisecond),
		result.CsvPath,
		result.JsonPath,
	})
	t.SetStyle(table.StyleRounded)
	t.Render()

	if result.Reason != "" {
		slog.Warn("search degraded", "reason", result.Reason)
	}
}
