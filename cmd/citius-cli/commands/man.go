package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

const manual = `CITIUS CLI

Searches the publications of the Citius insolvency portal
(https://www.citius.mj.pt) by NIF/NIPC or entity name and exports the
matched documents to CSV and JSON.

A search needs exactly one of --nif or --designacao. Optional filters:
a date range (--data-inicio/--data-fim, DD-MM-YYYY), the court
structure (--tribunal nova|extintos), an act group and act
(--grupo-actos/--acto) and a recency window (--dias 15|30|todos).

Both output files are written on every run, even when the search fails
or matches nothing, so a run always leaves evidence that it happened.
When the portal's markup has drifted so far that no results can be
located, the page snapshot is saved to debug_results_page.html for
selector maintenance.

Defaults can be placed in a config.json5 next to the working
directory: { output: "...", timeout: 60, headless: true,
history_db: "citius_runs.db" }.

Examples:
  citius-cli search --nif 515755230
  citius-cli search --designacao "Empresa XYZ" --data-inicio 01-01-2025 --data-fim 31-01-2025
  citius-cli history --limit 10

This tool respects the portal's terms of use: it fills the public
search form like a regular visitor and never tries to work around
rate limiting or similar protections.`

var manCmd = &cobra.Command{
	Use:   "man",
	Short: "Shows the full manual.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(manual)
	},
}

func init() {
	rootCmd.AddCommand(manCmd)
}
