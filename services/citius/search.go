package citius

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"citius-scraper/lib/browser"
	"citius-scraper/lib/runstore"
	"citius-scraper/lib/timezone"
)

type State string

const (
	StateIdle       State = "idle"
	StateFormFilled State = "form_filled"
	StateSubmitted  State = "submitted"
	StateExtracted  State = "extracted"
	StatePersisted  State = "persisted"
	StateErrored    State = "errored"
)

// SessionFactory opens the browser session a search will own for its
// whole duration.
type SessionFactory func(ctx context.Context) (browser.Session, error)

type Orchestrator struct {
	newSession SessionFactory
	normalizer Normalizer
	writer     Writer
	// optional run history; nil disables it
	store *runstore.Store
}

type OrchestratorOptions struct {
	NewSession SessionFactory
	Store      *runstore.Store
}

func NewOrchestrator(opts OrchestratorOptions) Orchestrator {
	if opts.NewSession == nil {
		panic("nil session factory")
	}
	return Orchestrator{
		newSession: opts.NewSession,
		store:      opts.Store,
	}
}

type SearchOptions struct {
	// base name for the two output files, extension ignored
	OutputBase string
	// wall-clock budget for the whole search, defaults to 60s
	Budget time.Duration
}

// Search runs the whole pipeline: fill, submit, extract, normalize,
// persist. Whatever happens, both output files exist when it returns
// and no error escapes; failures come back as the result's outcome.
func (o Orchestrator) Search(ctx context.Context, q Query, opts SearchOptions) SearchResult {
	ctx, span := tracer.Start(ctx, "Orchestrator:Search")
	defer span.End()

	if opts.Budget <= 0 {
		opts.Budget = defaultBudget
	}
	if opts.OutputBase == "" {
		opts.OutputBase = "resultados_citius"
	}
	ctx, cancel := context.WithTimeout(ctx, opts.Budget)
	defer cancel()

	start := time.Now()
	state := StateIdle

	if err := q.Validate(); err != nil {
		return o.finish(ctx, q, start, StateErrored, opts, ExtractionOutcome{
			Tag:    OutcomeFailure,
			Reason: "invalid query: " + err.Error(),
		})
	}

	session, err := o.newSession(ctx)
	if err != nil {
		return o.finish(ctx, q, start, StateErrored, opts, ExtractionOutcome{
			Tag:    OutcomeFailure,
			Reason: "browser session: " + err.Error(),
		})
	}
	// the session is owned end to end by this one search
	defer session.Close()

	if err := session.Navigate(ctx, SearchUrl); err != nil {
		return o.finish(ctx, q, start, StateErrored, opts, ExtractionOutcome{
			Tag:    OutcomeFailure,
			Reason: "open search page: " + err.Error(),
		})
	}
	if _, err := session.WaitVisible(ctx, sel.searchInput, 15*time.Second); err != nil {
		return o.finish(ctx, q, start, StateErrored, opts, ExtractionOutcome{
			Tag:    OutcomeFailure,
			Reason: "search form did not load",
		})
	}

	if err := NewFormFiller(session).Fill(ctx, q); err != nil {
		slog.ErrorContext(ctx, "form fill failed", "err", err)
		return o.finish(ctx, q, start, StateErrored, opts, ExtractionOutcome{
			Tag:    OutcomeFailure,
			Reason: err.Error(),
		})
	}
	state = StateFormFilled
	slog.DebugContext(ctx, "state transition", "state", state)

	submitState, err := NewSubmissionController(session).Submit(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "submission failed", "err", err)
		return o.finish(ctx, q, start, StateErrored, opts, ExtractionOutcome{
			Tag:    OutcomeFailure,
			Reason: err.Error(),
		})
	}
	state = StateSubmitted
	slog.DebugContext(ctx, "state transition", "state", state, "submit", submitState)

	var outcome ExtractionOutcome
	if submitState == NoResults {
		// an explicit empty answer from the portal, not an error
		outcome = ExtractionOutcome{
			Tag:    OutcomeEmpty,
			Reason: "portal reported no results",
		}
	} else {
		outcome = NewExtractor(session).Extract(ctx)
	}
	state = StateExtracted
	slog.DebugContext(
		ctx, "state transition",
		"state", state, "outcome", outcome.Tag, "rows", len(outcome.Rows),
	)

	finalState := StatePersisted
	if outcome.Tag == OutcomeFailure {
		finalState = StateErrored
	}
	return o.finish(ctx, q, start, finalState, opts, outcome)
}

// finish is the single exit path: it always persists (even for errored
// runs, so the files exist), appends the run history and shapes the
// terminal result.
func (o Orchestrator) finish(
	ctx context.Context,
	q Query,
	start time.Time,
	state State,
	opts SearchOptions,
	outcome ExtractionOutcome,
) SearchResult {
	records := o.normalizer.Normalize(outcome.Rows)

	csvPath, jsonPath, err := o.writer.Write(records, opts.OutputBase)
	reason := outcome.Reason
	if err != nil {
		slog.ErrorContext(ctx, "persistence failed", "err", err)
		if errors.Is(err, ErrPersistence) {
			state = StateErrored
			if reason != "" {
				reason += "; "
			}
			reason += err.Error()
		}
	}

	result := SearchResult{
		Outcome:     outcome.Tag,
		Reason:      reason,
		Strategy:    outcome.Strategy,
		RecordCount: len(records),
		Elapsed:     time.Since(start),
		CsvPath:     csvPath,
		JsonPath:    jsonPath,
	}

	slog.InfoContext(
		ctx, "search finished",
		"state", state,
		"outcome", result.Outcome,
		"records", result.RecordCount,
		"elapsed", result.Elapsed,
	)

	if o.store != nil {
		err := o.store.Append(context.WithoutCancel(ctx), runstore.Run{
			StartedAt:   start.In(timezone.Location),
			Query:       q.String(),
			Outcome:     string(result.Outcome),
			Reason:      result.Reason,
			RecordCount: result.RecordCount,
			ElapsedMs:   result.Elapsed.Milliseconds(),
			CsvPath:     csvPath,
			JsonPath:    jsonPath,
		})
		if err != nil {
			slog.WarnContext(ctx, "could not append run history", "err", err)
		}
	}

	return result
}
