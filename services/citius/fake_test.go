package citius

import (
	"context"
	"fmt"
	"time"

	"citius-scraper/lib/browser"
)

// fakeElement and fakeSession script the browser capability set so the
// pipeline can be exercised without a real browser.

type fakeElement struct {
	text      string
	href      string
	visible   bool
	setErr    error
	clickErr  error
	selectErr error

	onSet   func(value string)
	onClick func()
	onText  func()

	sets    []string
	clicks  int
	selects []string
}

func (e *fakeElement) SetValue(ctx context.Context, value string) error {
	e.sets = append(e.sets, value)
	if e.onSet != nil {
		e.onSet(value)
	}
	return e.setErr
}

func (e *fakeElement) Click(ctx context.Context) error {
	e.clicks++
	if e.onClick != nil {
		e.onClick()
	}
	return e.clickErr
}

func (e *fakeElement) Text(ctx context.Context) (string, error) {
	if e.onText != nil {
		e.onText()
	}
	return e.text, nil
}

func (e *fakeElement) Attribute(ctx context.Context, name string) (string, error) {
	if name == "href" {
		return e.href, nil
	}
	return "", nil
}

func (e *fakeElement) SelectLabel(ctx context.Context, label string) error {
	e.selects = append(e.selects, label)
	return e.selectErr
}

func (e *fakeElement) Visible(ctx context.Context) (bool, error) {
	return e.visible, nil
}

type fakeSession struct {
	elements  map[string]*fakeElement
	lists     map[string][]*fakeElement
	source    string
	navigated []string
	closed    bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		elements: map[string]*fakeElement{},
		lists:    map[string][]*fakeElement{},
	}
}

func (s *fakeSession) Navigate(ctx context.Context, url string) error {
	s.navigated = append(s.navigated, url)
	return nil
}

func (s *fakeSession) Find(ctx context.Context, selector string) (browser.Element, error) {
	el, ok := s.elements[selector]
	if !ok {
		return nil, fmt.Errorf("%q: %w", selector, browser.ErrElementNotFound)
	}
	return el, nil
}

func (s *fakeSession) FindAll(ctx context.Context, selector string) ([]browser.Element, error) {
	if list, ok := s.lists[selector]; ok {
		out := make([]browser.Element, len(list))
		for i, el := range list {
			out[i] = el
		}
		return out, nil
	}
	if el, ok := s.elements[selector]; ok {
		return []browser.Element{el}, nil
	}
	return nil, nil
}

func (s *fakeSession) WaitVisible(ctx context.Context, selector string, timeout time.Duration) (browser.Element, error) {
	return s.Find(ctx, selector)
}

func (s *fakeSession) PageSource(ctx context.Context) (string, error) {
	return s.source, nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

// addForm populates the minimal search form every Fill touches.
func (s *fakeSession) addForm() {
	for _, selector := range []string{
		sel.searchInput,
		sel.kindIdentifier,
		sel.kindName,
		sel.dateStart,
		sel.dateEnd,
		sel.courtCurrent,
		sel.courtDefunct,
		sel.actGroup,
		sel.act,
		sel.recency15,
		sel.recency30,
		sel.recencyAll,
	} {
		s.elements[selector] = &fakeElement{}
	}
}

// addResultsTable scripts the structured results surface: a banner, a
// header row and one table row per entry with the five designated
// columns.
func (s *fakeSession) addResultsTable(rows [][5]string) {
	s.source = fmt.Sprintf("<html>%d documentos encontrados</html>", len(rows))
	s.elements[sel.resultsTable] = &fakeElement{}

	tableRows := make([]*fakeElement, len(rows)+1)
	for i := range tableRows {
		tableRows[i] = &fakeElement{}
	}
	s.lists[sel.resultsTableRow] = tableRows

	for i, row := range rows {
		cells := make([]*fakeElement, 5)
		for c := range cells {
			cells[c] = &fakeElement{text: row[c]}
		}
		s.lists[fmt.Sprintf("%s tr:nth-child(%d) td", sel.resultsTable, i+2)] = cells
	}
}
