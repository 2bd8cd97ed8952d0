package htmlutil

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	in := "  Tribunal:   Lisboa  \n\n\n  Processo:\t123/45  \n"
	require.Equal(t, "Tribunal: Lisboa\nProcesso: 123/45", CleanText(in))

	// tabs separate tokens, control characters disappear outright
	require.Equal(t, "Acto: Edital", CleanText("Acto:\t\x00Edital"))
}

func TestLines(t *testing.T) {
	require.Equal(
		t,
		[]string{"a b", "c"},
		Lines("a   b\n\n c \n"),
	)
	require.Nil(t, Lines("   \n\t\n"))
}

func TestGetAnchors(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<div>
			<a href="/doc.aspx?id=1">Edital  1</a>
			<a href="javascript:__doPostBack('x','y')">postback</a>
			<a href="https://example.com/abs">Absolute</a>
		</div>
	`))
	require.NoError(t, err)

	base, _ := url.Parse("https://www.citius.mj.pt/portal/consultas/")
	anchors := GetAnchors(doc.Find("a"), base)

	require.Len(t, anchors, 2)
	require.Equal(t, "Edital 1", anchors[0].Name)
	require.Equal(t, "https://www.citius.mj.pt/doc.aspx?id=1", anchors[0].Href)
	require.Equal(t, "https://example.com/abs", anchors[1].Href)
}
