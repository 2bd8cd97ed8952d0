package citius

import "time"

// Record is the fixed output shape. Every field is always present;
// data the portal did not provide stays as the empty string so that
// all records serialize identically.
type Record struct {
	Court       string   `json:"tribunal"`
	Process     string   `json:"processo"`
	Date        string   `json:"data"`
	Act         string   `json:"acto"`
	Description string   `json:"descricao"`
	Parties     string   `json:"intervenientes"`
	Status      string   `json:"estado"`
	Links       []string `json:"links"`
}

// recordFields is the canonical header/key order shared by both
// persisted formats.
var recordFields = []string{
	"tribunal",
	"processo",
	"data",
	"acto",
	"descricao",
	"intervenientes",
	"estado",
	"links",
}

// RawRow is one results entry as read off the page. Cell count and
// semantics depend on which extraction strategy produced it.
type RawRow struct {
	// for the structured strategy: text per designated column.
	// for the loose strategy: best-guess text lines of one row container.
	Cells []string
	// document hrefs harvested from the row, if any
	Links []string
	// set by the minimal-capture path instead of Cells
	Dump string
}

type Strategy string

const (
	StrategyStructured Strategy = "structured"
	StrategyLoose      Strategy = "loose"
	StrategyMinimal    Strategy = "minimal"
	StrategyNone       Strategy = ""
)

type OutcomeTag string

const (
	OutcomeSuccess        OutcomeTag = "success"
	OutcomePartialSuccess OutcomeTag = "partial_success"
	OutcomeEmpty          OutcomeTag = "empty"
	OutcomeFailure        OutcomeTag = "failure"
)

// ExtractionOutcome is the extraction engine's whole contract: it
// never returns an error, it degrades.
type ExtractionOutcome struct {
	Tag      OutcomeTag
	Rows     []RawRow
	Strategy Strategy
	Reason   string
}

// SearchResult is the orchestrator's terminal report. The file paths
// are populated on every run, including errored ones.
type SearchResult struct {
	Outcome     OutcomeTag
	Reason      string
	Strategy    Strategy
	RecordCount int
	Elapsed     time.Duration
	CsvPath     string
	JsonPath    string
}
