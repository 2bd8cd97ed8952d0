package citius

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"citius-scraper/lib/browser"
	"citius-scraper/lib/htmlutil"
)

type SubmitState int

const (
	ResultsReady SubmitState = iota
	NoResults
)

func (s SubmitState) String() string {
	if s == NoResults {
		return "no_results"
	}
	return "results_ready"
}

const pollInterval = 500 * time.Millisecond

type SubmissionController struct {
	session browser.Session
}

func NewSubmissionController(session browser.Session) SubmissionController {
	return SubmissionController{session: session}
}

// Submit clicks the search button and polls until the results surface
// reaches a terminal state or the context deadline expires.
func (c SubmissionController) Submit(ctx context.Context) (SubmitState, error) {
	ctx, span := tracer.Start(ctx, "SubmissionController:Submit")
	defer span.End()

	button, err := c.session.Find(ctx, sel.searchButton)
	if err != nil {
		return ResultsReady, fieldErr("search button", err)
	}
	if err := button.Click(ctx); err != nil {
		return ResultsReady, fieldErr("search button", err)
	}
	slog.DebugContext(ctx, "search submitted")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		state, done, err := c.checkResultsSurface(ctx)
		if err != nil {
			return ResultsReady, err
		}
		if done {
			slog.InfoContext(ctx, "results surface settled", "state", state)
			return state, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ResultsReady, fmt.Errorf("waiting for results surface: %w", ErrSubmissionTimeout)
		}
	}
}

func (c SubmissionController) checkResultsSurface(ctx context.Context) (SubmitState, bool, error) {
	// the banner above a non-empty result set is the strongest ready
	// signal the portal has
	source, err := c.session.PageSource(ctx)
	if err == nil && strings.Contains(source, resultsBannerText) {
		return ResultsReady, true, nil
	}

	noResults, err := c.session.Find(ctx, sel.noResultsLabel)
	if err == nil {
		visible, err := noResults.Visible(ctx)
		if err == nil && visible {
			text, _ := noResults.Text(ctx)
			slog.InfoContext(ctx, "portal reported no results", "message", htmlutil.CleanText(text))
			return NoResults, true, nil
		}
	}

	// server-side validation rejected a field value
	errSpans, err := c.session.FindAll(ctx, sel.validationError)
	if err == nil {
		for _, span := range errSpans {
			visible, err := span.Visible(ctx)
			if err != nil || !visible {
				continue
			}
			text, _ := span.Text(ctx)
			return ResultsReady, false, fmt.Errorf(
				"portal validation: %s: %w",
				htmlutil.CleanText(text), ErrInvalidValue,
			)
		}
	}

	return ResultsReady, false, nil
}
