// Package citius drives a search against the Citius insolvency portal:
// it fills the public consultation form, waits for the results surface,
// extracts whatever records it can under a hard time budget and always
// persists the outcome to disk, however degraded.
package citius

import (
	"errors"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("citius-scraper.services.citius")

const (
	SearchUrl = "https://www.citius.mj.pt/portal/consultas/consultascire.aspx"

	// the banner the portal renders above any non-empty result set
	resultsBannerText = "documentos encontrados"

	// page source snapshot written when the results surface cannot be
	// located, to aid selector maintenance
	DebugDumpFile = "debug_results_page.html"
)

// selectors are the only coupling to the portal's markup. the pipeline
// consumes them through the browser capability set as found/not-found
// signals, so patching drift means editing this table only.
var sel = struct {
	searchInput     string
	kindIdentifier  string
	kindName        string
	dateStart       string
	dateEnd         string
	courtCurrent    string
	courtDefunct    string
	actGroup        string
	act             string
	recency15       string
	recency30       string
	recencyAll      string
	searchButton    string
	noResultsLabel  string
	validationError string
	resultsTable    string
	resultsTableRow string
	resultsDiv      string
	resultItems     string
	body            string
}{
	searchInput:     "#ctl00_ContentPlaceHolder1_txtPesquisa",
	kindIdentifier:  "#ctl00_ContentPlaceHolder1_rblTipo_0",
	kindName:        "#ctl00_ContentPlaceHolder1_rblTipo_1",
	dateStart:       "#ctl00_ContentPlaceHolder1_txtCalendarDesde",
	dateEnd:         "#ctl00_ContentPlaceHolder1_txtCalendarAte",
	courtCurrent:    "#ctl00_ContentPlaceHolder1_rbtlTribunais_0",
	courtDefunct:    "#ctl00_ContentPlaceHolder1_rbtlTribunais_1",
	actGroup:        "#ctl00_ContentPlaceHolder1_ddlGrupoActos",
	act:             "#ctl00_ContentPlaceHolder1_ddlActos",
	recency15:       "#ctl00_ContentPlaceHolder1_rblDias_0",
	recency30:       "#ctl00_ContentPlaceHolder1_rblDias_1",
	recencyAll:      "#ctl00_ContentPlaceHolder1_rblDias_2",
	searchButton:    "#ctl00_ContentPlaceHolder1_btnSearch",
	noResultsLabel:  "#ctl00_ContentPlaceHolder1_lblNoResults",
	validationError: "span[style*='color:Red']",
	resultsTable:    "#ctl00_ContentPlaceHolder1_gvResults",
	resultsTableRow: "#ctl00_ContentPlaceHolder1_gvResults tr",
	resultsDiv:      "#ctl00_ContentPlaceHolder1_divResultados",
	resultItems:     ".resultadocdital, .resultado, div[id*='divResultado']",
	body:            "body",
}

var (
	ErrFieldNotFound     = errors.New("form field not found")
	ErrInvalidValue      = errors.New("invalid field value")
	ErrSubmissionTimeout = errors.New("submission timed out")
	ErrExtraction        = errors.New("results surface not found")
	ErrPersistence       = errors.New("write rejected")
)
