package citius

import (
	"fmt"
	"strings"
)

type Court string

const (
	CourtUnset   Court = ""
	CourtCurrent Court = "current"
	CourtDefunct Court = "defunct"
)

type Recency string

const (
	RecencyUnset Recency = ""
	Recency15    Recency = "15"
	Recency30    Recency = "30"
	RecencyAll   Recency = "all"
)

// Query describes one portal search. Exactly one of Identifier
// (NIF/NIPC) or Name (designação) must be set.
type Query struct {
	Identifier string
	Name       string

	// portal calendar format, DD-MM-YYYY
	DateStart string
	DateEnd   string

	Court    Court
	ActGroup string
	// only meaningful when ActGroup is set
	Act string

	// unset means all
	Recency Recency
}

func (q Query) Validate() error {
	if q.Identifier == "" && q.Name == "" {
		return fmt.Errorf("either an identifier or a name is required")
	}
	if q.Identifier != "" && q.Name != "" {
		return fmt.Errorf("identifier and name are mutually exclusive")
	}
	switch q.Court {
	case CourtUnset, CourtCurrent, CourtDefunct:
	default:
		return fmt.Errorf("unknown court type %q", q.Court)
	}
	switch q.Recency {
	case RecencyUnset, Recency15, Recency30, RecencyAll:
	default:
		return fmt.Errorf("unknown recency window %q", q.Recency)
	}
	if q.Act != "" && q.ActGroup == "" {
		return fmt.Errorf("an act filter requires an act group")
	}
	return nil
}

// EffectiveRecency resolves the unset window to its default.
func (q Query) EffectiveRecency() Recency {
	if q.Recency == RecencyUnset {
		return RecencyAll
	}
	return q.Recency
}

// String renders the query for logs and the run history, never for
// the portal itself.
func (q Query) String() string {
	var parts []string
	if q.Identifier != "" {
		parts = append(parts, "nif="+q.Identifier)
	}
	if q.Name != "" {
		parts = append(parts, "designacao="+q.Name)
	}
	if q.DateStart != "" {
		parts = append(parts, "desde="+q.DateStart)
	}
	if q.DateEnd != "" {
		parts = append(parts, "ate="+q.DateEnd)
	}
	if q.Court != CourtUnset {
		parts = append(parts, "tribunal="+string(q.Court))
	}
	if q.ActGroup != "" {
		parts = append(parts, "grupo="+q.ActGroup)
	}
	if q.Act != "" {
		parts = append(parts, "acto="+q.Act)
	}
	parts = append(parts, "dias="+string(q.EffectiveRecency()))
	return strings.Join(parts, " ")
}
