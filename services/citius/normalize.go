package citius

import (
	"strings"

	"citius-scraper/lib/htmlutil"
	"citius-scraper/lib/textutil"

	"github.com/antzucaro/matchr"
)

// Normalizer maps heterogeneous raw rows into the fixed Record shape.
// It never fails: absent data stays as empty fields, unknown cells are
// dropped.
type Normalizer struct{}

// labels the portal uses, normalized, mapped to Record field setters
var labelFields = map[string]func(*Record, string){
	"tribunal":   func(r *Record, v string) { r.Court = v },
	"processo":   func(r *Record, v string) { r.Process = v },
	"data":       func(r *Record, v string) { r.Date = v },
	"ato":        func(r *Record, v string) { r.Act = v },
	"acto":       func(r *Record, v string) { r.Act = v },
	"descricao":  func(r *Record, v string) { r.Description = v },
	"texto":      func(r *Record, v string) { r.Description = v },
	"especie":    func(r *Record, v string) { r.Status = v },
	"referencia": func(r *Record, v string) { r.Status = v },

	"insolvente":               func(r *Record, v string) { appendParty(r, "Insolvente: "+v) },
	"credor":                   func(r *Record, v string) { appendParty(r, "Credor: "+v) },
	"interveniente":            func(r *Record, v string) { appendParty(r, v) },
	"administradorinsolvencia": func(r *Record, v string) { appendParty(r, "Administrador: "+v) },
	"nif/nipc":                 func(r *Record, v string) { appendParty(r, "NIF/NIPC: "+v) },
}

// labels drift with the portal's markup; accept close misspellings
const labelSimilarityFloor = 0.92

func appendParty(r *Record, v string) {
	if r.Parties == "" {
		r.Parties = v
		return
	}
	r.Parties += "; " + v
}

func (Normalizer) Normalize(rows []RawRow) []Record {
	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = normalizeRow(row)
	}
	return records
}

func normalizeRow(row RawRow) Record {
	var rec Record
	switch {
	case row.Dump != "":
		rec = recordFromText(row.Dump)
	case len(row.Cells) == 5 && !looksLabelled(row.Cells):
		// structured strategy column order
		rec = Record{
			Court:       row.Cells[0],
			Process:     row.Cells[1],
			Date:        row.Cells[2],
			Act:         row.Cells[3],
			Description: row.Cells[4],
		}
	case len(row.Cells) > 0:
		rec = recordFromText(strings.Join(row.Cells, "\n"))
	default:
		// placeholder from the minimal-capture path
		rec = Record{Status: "documento detectado mas não extraído"}
	}

	rec.Links = row.Links
	if rec.Links == nil {
		rec.Links = []string{}
	}
	return rec
}

// looksLabelled reports whether cells carry their own "Label: value"
// structure, which trumps positional interpretation.
func looksLabelled(cells []string) bool {
	labelled := 0
	for _, c := range cells {
		label, _, ok := textutil.SplitLabelValue(c)
		if ok && matchLabel(label) != nil {
			labelled++
		}
	}
	return labelled*2 > len(cells)
}

// recordFromText re-parses a loose text blob line by line, assigning
// recognized "Label: value" pairs and keeping the leftovers as the
// description.
func recordFromText(text string) Record {
	var rec Record
	var leftover []string

	for _, line := range htmlutil.Lines(text) {
		label, value, ok := textutil.SplitLabelValue(line)
		if !ok {
			leftover = append(leftover, line)
			continue
		}
		set := matchLabel(label)
		if set == nil {
			leftover = append(leftover, line)
			continue
		}
		set(&rec, value)
	}

	if rec.Description == "" && len(leftover) > 0 {
		rec.Description = strings.Join(leftover, " ")
	}
	return rec
}

func matchLabel(label string) func(*Record, string) {
	normalized := textutil.NormalizeLabel(label)
	if set, ok := labelFields[normalized]; ok {
		return set
	}

	var best func(*Record, string)
	bestSimilarity := labelSimilarityFloor
	for known, set := range labelFields {
		similarity := matchr.JaroWinkler(normalized, known, false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = set
		}
	}
	return best
}
