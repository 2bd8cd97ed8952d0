package citius

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSubmitResultsReady(t *testing.T) {
	session := newFakeSession()
	button := &fakeElement{}
	button.onClick = func() {
		session.source = "<html>3 documentos encontrados</html>"
	}
	session.elements[sel.searchButton] = button

	state, err := NewSubmissionController(session).Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, ResultsReady, state)
	require.Equal(t, 1, button.clicks)
}

func TestSubmitNoResults(t *testing.T) {
	session := newFakeSession()
	session.elements[sel.searchButton] = &fakeElement{}
	session.elements[sel.noResultsLabel] = &fakeElement{
		text:    "Não foram encontrados documentos",
		visible: true,
	}

	state, err := NewSubmissionController(session).Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, NoResults, state)
}

func TestSubmitValidationError(t *testing.T) {
	session := newFakeSession()
	session.elements[sel.searchButton] = &fakeElement{}
	session.lists[sel.validationError] = []*fakeElement{
		{text: "NIF inválido", visible: true},
	}

	_, err := NewSubmissionController(session).Submit(context.Background())
	require.ErrorIs(t, err, ErrInvalidValue)
	require.ErrorContains(t, err, "NIF inválido")
}

func TestSubmitHiddenValidationSpanIsIgnored(t *testing.T) {
	session := newFakeSession()
	button := &fakeElement{}
	button.onClick = func() {
		session.source = "<html>1 documentos encontrados</html>"
	}
	session.elements[sel.searchButton] = button
	session.lists[sel.validationError] = []*fakeElement{
		{text: "NIF inválido", visible: false},
	}

	state, err := NewSubmissionController(session).Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, ResultsReady, state)
}

func TestSubmitTimesOut(t *testing.T) {
	session := newFakeSession()
	// the click lands but the portal never settles
	session.elements[sel.searchButton] = &fakeElement{}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewSubmissionController(session).Submit(ctx)
	require.ErrorIs(t, err, ErrSubmissionTimeout)
}

func TestSubmitMissingButton(t *testing.T) {
	session := newFakeSession()

	_, err := NewSubmissionController(session).Submit(context.Background())
	require.ErrorIs(t, err, ErrFieldNotFound)
}
