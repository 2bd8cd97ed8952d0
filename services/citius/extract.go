package citius

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"citius-scraper/lib/browser"
	"citius-scraper/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// Budget shares per strategy. Structured runs first and is the most
// likely to finish quickly, so it gets the largest slice; whatever a
// strategy leaves unused the later ones inherit through the parent
// deadline.
const (
	structuredShare = 0.5
	looseShare      = 0.3

	defaultBudget = 60 * time.Second
)

var totalDocsRegexp = regexp.MustCompile(`(\d+)\s+documentos encontrados`)

// loose text blocks start at these portal labels
var blockSplitRegexp = regexp.MustCompile(`(?:Tribunal:|Processo:|Insolvente:|Credor:|Administrador)`)

type Extractor struct {
	session browser.Session
}

func NewExtractor(session browser.Session) Extractor {
	return Extractor{session: session}
}

// Extract reads the results surface under the context deadline. It
// tries progressively looser strategies and never fails because of
// time pressure: an exhausted budget returns the rows gathered so far
// as a partial result. Failure is reserved for a results surface that
// cannot be located at all.
func (e Extractor) Extract(ctx context.Context) ExtractionOutcome {
	ctx, span := tracer.Start(ctx, "Extractor:Extract")
	defer span.End()

	total := defaultBudget
	if deadline, ok := ctx.Deadline(); ok {
		total = time.Until(deadline)
	}

	totalDocs := e.totalDocuments(ctx)
	if totalDocs == 0 {
		return ExtractionOutcome{
			Tag:    OutcomeEmpty,
			Reason: "portal reported zero matching documents",
		}
	}
	slog.DebugContext(ctx, "starting extraction", "total_docs", totalDocs, "budget", total)

	surfaceSeen := totalDocs > 0

	sctx, cancel := context.WithTimeout(ctx, share(total, structuredShare))
	rows, truncated, found := e.structured(sctx)
	cancel()
	surfaceSeen = surfaceSeen || found
	if len(rows) > 0 {
		return outcomeFor(rows, StrategyStructured, truncated)
	}

	lctx, cancel := context.WithTimeout(ctx, share(total, looseShare))
	rows, truncated, found = e.loose(lctx, totalDocs)
	cancel()
	surfaceSeen = surfaceSeen || found
	if len(rows) > 0 {
		return outcomeFor(rows, StrategyLoose, truncated)
	}

	rows = e.minimal(ctx, totalDocs)
	if len(rows) > 0 {
		return ExtractionOutcome{
			Tag:      OutcomePartialSuccess,
			Rows:     rows,
			Strategy: StrategyMinimal,
			Reason:   "individual records could not be parsed, captured evidence only",
		}
	}

	if !surfaceSeen {
		e.dumpPage(ctx)
		return ExtractionOutcome{
			Tag:    OutcomeFailure,
			Reason: "results surface not found on page",
		}
	}
	return ExtractionOutcome{
		Tag:    OutcomeEmpty,
		Reason: "results surface present but carried no entries",
	}
}

// totalDocuments reads the portal's results banner. Returns -1 when
// the banner is absent.
func (e Extractor) totalDocuments(ctx context.Context) int {
	source, err := e.session.PageSource(ctx)
	if err != nil {
		return -1
	}
	m := totalDocsRegexp.FindStringSubmatch(source)
	if m == nil {
		return -1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return -1
	}
	return n
}

// structured walks the classic results table, reading the designated
// columns by position. Returns the rows gathered, whether the budget
// cut the walk short, and whether the table was present at all.
func (e Extractor) structured(ctx context.Context) (rows []RawRow, truncated, found bool) {
	_, err := e.session.Find(ctx, sel.resultsTable)
	if err != nil {
		return nil, false, false
	}

	tableRows, err := e.session.FindAll(ctx, sel.resultsTableRow)
	if err != nil || len(tableRows) <= 1 {
		return nil, false, true
	}
	slog.DebugContext(ctx, "results table found", "rows", len(tableRows)-1)

	// nth-child is 1-based and row 1 is the header
	for i := 2; i <= len(tableRows); i++ {
		if ctx.Err() != nil {
			slog.WarnContext(
				ctx, "structured extraction cut short by budget",
				"processed", len(rows), "total", len(tableRows)-1,
			)
			return rows, true, true
		}

		cellSelector := fmt.Sprintf("%s tr:nth-child(%d) td", sel.resultsTable, i)
		cells, err := e.session.FindAll(ctx, cellSelector)
		if err != nil || len(cells) < 5 {
			continue
		}

		row := RawRow{Cells: make([]string, 5)}
		bad := false
		for c := 0; c < 5; c++ {
			text, err := cells[c].Text(ctx)
			if err != nil {
				bad = true
				break
			}
			row.Cells[c] = htmlutil.CleanText(text)
		}
		if bad {
			continue
		}

		anchors, err := e.session.FindAll(ctx, fmt.Sprintf("%s a", cellSelector))
		if err == nil {
			for _, a := range anchors {
				href, err := a.Attribute(ctx, "href")
				if err == nil && href != "" && !strings.HasPrefix(href, "javascript:") {
					row.Links = append(row.Links, href)
				}
			}
		}

		rows = append(rows, row)
	}
	return rows, false, true
}

// loose abandons column positions: it snapshots the page source and
// reads whole row containers out of it, splitting their visible text
// by line breaks.
func (e Extractor) loose(ctx context.Context, totalDocs int) (rows []RawRow, truncated, found bool) {
	source, err := e.session.PageSource(ctx)
	if err != nil {
		return nil, false, false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return nil, false, false
	}

	container := doc.Find(sel.resultsDiv)
	if container.Length() == 0 {
		return nil, false, false
	}
	slog.DebugContext(ctx, "results container found")

	base, _ := url.Parse(SearchUrl)
	items := doc.Find(sel.resultItems)
	for _, node := range items.Nodes {
		// the container's own id substring-matches the item selector;
		// it is never a row itself
		if node == container.Nodes[0] {
			continue
		}
		if ctx.Err() != nil {
			slog.WarnContext(ctx, "loose extraction cut short by budget", "processed", len(rows))
			return rows, true, true
		}

		itemSel := goquery.NewDocumentFromNode(node).Selection
		lines := htmlutil.Lines(htmlutil.GetText(node))
		if len(lines) == 0 {
			continue
		}

		row := RawRow{Cells: lines}
		for _, a := range htmlutil.GetAnchors(itemSel.Find("a"), base) {
			row.Links = append(row.Links, a.Href)
		}
		rows = append(rows, row)
	}
	if len(rows) > 0 {
		return rows, false, true
	}

	// no per-row containers; fall back to splitting the container's
	// text into label-delimited blocks
	content := htmlutil.CleanText(htmlutil.GetText(container.Nodes[0]))
	rows = blocksToRows(content, totalDocs)
	return rows, false, true
}

// minimal proves results existed even when nothing parses: a raw text
// dump split into blocks where possible, or one placeholder per
// counted document.
func (e Extractor) minimal(ctx context.Context, totalDocs int) []RawRow {
	source, err := e.session.PageSource(ctx)
	if err == nil {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
		if err == nil && len(doc.Find(sel.body).Nodes) > 0 {
			text := htmlutil.CleanText(htmlutil.GetText(doc.Find(sel.body).Nodes[0]))
			rows := blocksToRows(text, totalDocs)
			if len(rows) > 0 {
				return rows
			}
		}
	}

	if totalDocs > 0 {
		rows := make([]RawRow, totalDocs)
		return rows
	}
	return nil
}

// blocksToRows slices label-delimited text into one dump per entry,
// keeping the matched label so the normalizer can re-parse it.
// anything before the first label is page chrome and is discarded.
func blocksToRows(content string, totalDocs int) []RawRow {
	locs := blockSplitRegexp.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}

	var rows []RawRow
	for i, loc := range locs {
		if totalDocs > 0 && len(rows) >= totalDocs {
			break
		}
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		block := strings.TrimSpace(content[loc[0]:end])
		if block == "" {
			continue
		}
		rows = append(rows, RawRow{Dump: block})
	}
	return rows
}

func (e Extractor) dumpPage(ctx context.Context) {
	source, err := e.session.PageSource(ctx)
	if err != nil {
		slog.WarnContext(ctx, "could not snapshot page for debug dump", "err", err)
		return
	}
	err = os.WriteFile(DebugDumpFile, []byte(source), 0644)
	if err != nil {
		slog.WarnContext(ctx, "could not write debug dump", "err", err)
		return
	}
	slog.InfoContext(ctx, "page snapshot written for selector maintenance", "path", DebugDumpFile)
}

func outcomeFor(rows []RawRow, strategy Strategy, truncated bool) ExtractionOutcome {
	if truncated {
		return ExtractionOutcome{
			Tag:      OutcomePartialSuccess,
			Rows:     rows,
			Strategy: strategy,
			Reason:   "extraction budget exhausted mid-strategy",
		}
	}
	return ExtractionOutcome{
		Tag:      OutcomeSuccess,
		Rows:     rows,
		Strategy: strategy,
	}
}

func share(total time.Duration, fraction float64) time.Duration {
	d := time.Duration(float64(total) * fraction)
	if d <= 0 {
		// an already-exhausted budget still gets one pass at each
		// strategy's cheapest path
		return time.Millisecond
	}
	return d
}
