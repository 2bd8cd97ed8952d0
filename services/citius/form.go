package citius

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"citius-scraper/lib/browser"
	"citius-scraper/lib/timezone"
)

// the portal reloads dependent controls through an ASP.NET postback
// after court and act-group changes; give it a moment to settle.
const postbackSettle = 2 * time.Second

type FormFiller struct {
	session browser.Session
}

func NewFormFiller(session browser.Session) FormFiller {
	return FormFiller{session: session}
}

// Fill populates the search form in a fixed order, skipping unset
// fields. It mutates UI state only; it never submits.
func (f FormFiller) Fill(ctx context.Context, q Query) error {
	ctx, span := tracer.Start(ctx, "FormFiller:Fill")
	defer span.End()

	if err := f.fillSearchTerm(ctx, q); err != nil {
		return err
	}
	if err := f.fillDateRange(ctx, q); err != nil {
		return err
	}
	if err := f.fillCourt(ctx, q); err != nil {
		return err
	}
	if err := f.fillActs(ctx, q); err != nil {
		return err
	}
	return f.fillRecency(ctx, q)
}

func (f FormFiller) fillSearchTerm(ctx context.Context, q Query) error {
	term := q.Identifier
	kindSelector := sel.kindIdentifier
	if q.Name != "" {
		term = q.Name
		kindSelector = sel.kindName
	}

	input, err := f.session.Find(ctx, sel.searchInput)
	if err != nil {
		return fieldErr("search input", err)
	}
	if err := input.SetValue(ctx, term); err != nil {
		return fmt.Errorf("search term %q: %w", term, ErrInvalidValue)
	}

	kind, err := f.session.Find(ctx, kindSelector)
	if err != nil {
		return fieldErr("search kind option", err)
	}
	if err := kind.Click(ctx); err != nil {
		return fieldErr("search kind option", err)
	}

	slog.DebugContext(ctx, "filled search term", "term", term, "by_identifier", q.Name == "")
	return nil
}

func (f FormFiller) fillDateRange(ctx context.Context, q Query) error {
	if q.DateStart == "" && q.DateEnd == "" {
		return nil
	}

	var start, end time.Time
	var err error
	if q.DateStart != "" {
		start, err = timezone.ParseDate(q.DateStart)
		if err != nil {
			return fmt.Errorf("start date %q: %w", q.DateStart, ErrInvalidValue)
		}
	}
	if q.DateEnd != "" {
		end, err = timezone.ParseDate(q.DateEnd)
		if err != nil {
			return fmt.Errorf("end date %q: %w", q.DateEnd, ErrInvalidValue)
		}
	}
	if q.DateStart != "" && q.DateEnd != "" && start.After(end) {
		return fmt.Errorf("date range %s..%s is reversed: %w", q.DateStart, q.DateEnd, ErrInvalidValue)
	}

	if q.DateStart != "" {
		if err := f.setDate(ctx, sel.dateStart, "start date", q.DateStart); err != nil {
			return err
		}
	}
	if q.DateEnd != "" {
		if err := f.setDate(ctx, sel.dateEnd, "end date", q.DateEnd); err != nil {
			return err
		}
	}
	return nil
}

func (f FormFiller) setDate(ctx context.Context, selector, field, value string) error {
	input, err := f.session.Find(ctx, selector)
	if err != nil {
		return fieldErr(field, err)
	}
	if err := input.SetValue(ctx, value); err != nil {
		return fmt.Errorf("%s %q: %w", field, value, ErrInvalidValue)
	}
	slog.DebugContext(ctx, "filled date", "field", field, "value", value)
	return nil
}

func (f FormFiller) fillCourt(ctx context.Context, q Query) error {
	if q.Court == CourtUnset {
		return nil
	}

	selector := sel.courtCurrent
	if q.Court == CourtDefunct {
		selector = sel.courtDefunct
	}
	radio, err := f.session.Find(ctx, selector)
	if err != nil {
		return fieldErr("court type", err)
	}
	if err := radio.Click(ctx); err != nil {
		return fieldErr("court type", err)
	}

	slog.DebugContext(ctx, "selected court type", "court", q.Court)
	settle(ctx, postbackSettle)
	return nil
}

func (f FormFiller) fillActs(ctx context.Context, q Query) error {
	if q.ActGroup == "" {
		return nil
	}

	group, err := f.session.Find(ctx, sel.actGroup)
	if err != nil {
		return fieldErr("act group", err)
	}
	if err := group.SelectLabel(ctx, q.ActGroup); err != nil {
		return fmt.Errorf("act group %q: %w", q.ActGroup, ErrInvalidValue)
	}
	slog.DebugContext(ctx, "selected act group", "group", q.ActGroup)
	settle(ctx, postbackSettle)

	if q.Act == "" {
		return nil
	}
	act, err := f.session.Find(ctx, sel.act)
	if err != nil {
		return fieldErr("act", err)
	}
	if err := act.SelectLabel(ctx, q.Act); err != nil {
		return fmt.Errorf("act %q: %w", q.Act, ErrInvalidValue)
	}
	slog.DebugContext(ctx, "selected act", "act", q.Act)
	return nil
}

func (f FormFiller) fillRecency(ctx context.Context, q Query) error {
	var selector string
	switch q.EffectiveRecency() {
	case Recency15:
		selector = sel.recency15
	case Recency30:
		selector = sel.recency30
	default:
		selector = sel.recencyAll
	}

	radio, err := f.session.Find(ctx, selector)
	if err != nil {
		return fieldErr("recency window", err)
	}
	if err := radio.Click(ctx); err != nil {
		return fieldErr("recency window", err)
	}
	slog.DebugContext(ctx, "selected recency window", "days", q.EffectiveRecency())
	return nil
}

func fieldErr(field string, err error) error {
	if errors.Is(err, browser.ErrElementNotFound) {
		return fmt.Errorf("%s: %w", field, ErrFieldNotFound)
	}
	return fmt.Errorf("%s: %w", field, err)
}

// context-aware sleep, cut short on cancellation
func settle(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
