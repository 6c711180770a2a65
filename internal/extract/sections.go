// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strconv"
	"strings"

	"github.com/pdiddy/moluxis/internal/pubchem"
	"github.com/pdiddy/moluxis/pkg/types"
)

// Headings searched for in PUG View documents. Section order and depth are
// not stable across compounds, so lookups go by heading, not by index.
const (
	headingExperimental = "Experimental Properties"
	headingGHS          = "GHS Classification"

	headingBoilingPoint = "Boiling Point"
	headingMeltingPoint = "Melting Point"
	headingSolubility   = "Solubility"
	headingDensity      = "Density"
	headingPH           = "pH"

	infoSignal = "Signal"
	infoHazard = "GHS Hazard Statements"
)

// Experimental holds the physical properties found under "Experimental
// Properties". Empty fields were not reported.
type Experimental struct {
	BoilingPoint string
	MeltingPoint string
	Solubility   string
	Density      string
	PH           string
}

// MergeInto copies every reported field into p, leaving the rest untouched.
func (e Experimental) MergeInto(p *types.ChemicalProperties) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.BoilingPoint, e.BoilingPoint)
	set(&p.MeltingPoint, e.MeltingPoint)
	set(&p.Solubility, e.Solubility)
	set(&p.Density, e.Density)
	set(&p.PH, e.PH)
}

// ExperimentalProperties walks rec for the experimental properties section.
// A nil record or a record without the section yields an empty result.
func ExperimentalProperties(rec *pubchem.Record) Experimental {
	var out Experimental
	if rec == nil {
		return out
	}
	sec := findSection(rec.Section, headingExperimental)
	if sec == nil {
		return out
	}

	for _, child := range sec.Section {
		var dst *string
		switch child.TOCHeading {
		case headingBoilingPoint:
			dst = &out.BoilingPoint
		case headingMeltingPoint:
			dst = &out.MeltingPoint
		case headingSolubility:
			dst = &out.Solubility
		case headingDensity:
			dst = &out.Density
		case headingPH:
			dst = &out.PH
		default:
			continue
		}
		if *dst != "" {
			continue
		}
		*dst = firstText(child.Information)
	}
	return out
}

// Safety walks rec for the GHS classification section and collects signal
// words and hazard statements. Either list is nil when not reported.
func Safety(rec *pubchem.Record) types.SafetyInfo {
	var out types.SafetyInfo
	if rec == nil {
		return out
	}
	sec := findSection(rec.Section, headingGHS)
	if sec == nil {
		return out
	}

	for _, info := range sec.Information {
		switch info.Name {
		case infoSignal:
			if out.Signal == nil {
				out.Signal = texts(info.Value)
			}
		case infoHazard:
			if out.HazardStatements == nil {
				out.HazardStatements = texts(info.Value)
			}
		}
	}
	return out
}

// findSection returns the first section, depth-first in document order,
// whose heading equals heading.
func findSection(sections []pubchem.Section, heading string) *pubchem.Section {
	for i := range sections {
		if sections[i].TOCHeading == heading {
			return &sections[i]
		}
		if found := findSection(sections[i].Section, heading); found != nil {
			return found
		}
	}
	return nil
}

// firstText returns the first textual value among infos: a non-empty
// marked-up string, or failing that a number rendered with its unit.
func firstText(infos []pubchem.Information) string {
	for _, info := range infos {
		for _, s := range info.Value.StringWithMarkup {
			if t := strings.TrimSpace(s.String); t != "" {
				return t
			}
		}
		if t := numberText(info.Value); t != "" {
			return t
		}
	}
	return ""
}

func numberText(v pubchem.InfoValue) string {
	if len(v.Number) == 0 {
		return ""
	}
	s := strconv.FormatFloat(v.Number[0], 'f', -1, 64)
	if v.Unit != "" {
		s += " " + v.Unit
	}
	return s
}

// texts collects the non-empty strings of v, or nil if there are none.
func texts(v pubchem.InfoValue) []string {
	var out []string
	for _, s := range v.StringWithMarkup {
		if s.String != "" {
			out = append(out, s.String)
		}
	}
	return out
}
