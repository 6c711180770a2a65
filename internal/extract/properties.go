// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract converts raw PubChem payloads into the strict
// ChemicalProperties and SafetyInfo shapes. It never touches the network
// and never fails: anything it cannot find is left absent.
package extract

import (
	"strconv"

	"github.com/pdiddy/moluxis/internal/pubchem"
	"github.com/pdiddy/moluxis/pkg/types"
)

// key selects a property by its URN. An empty field matches anything.
type key struct {
	Label string
	Name  string
}

func (k key) matches(u pubchem.URN) bool {
	if k.Label != "" && k.Label != u.Label {
		return false
	}
	if k.Name != "" && k.Name != u.Name {
		return false
	}
	return true
}

// Lookup keys for the compound property list.
var (
	keyFormula        = key{Label: "Molecular Formula"}
	keyWeight         = key{Label: "Molecular Weight"}
	keyHBondAcceptors = key{Name: "Hydrogen Bond Acceptor"}
	keyHBondDonors    = key{Name: "Hydrogen Bond Donor"}
	keyRotatableBonds = key{Name: "Rotatable Bond"}
	keyIUPACName      = key{Label: "IUPAC Name", Name: "Preferred"}
	keyCommonName     = key{Label: "IUPAC Name", Name: "Traditional"}
	keyLogP           = key{Label: "Log P"}
	keyTPSA           = key{Name: "Polar Surface Area"}
)

const (
	unitWeight = " g/mol"
	unitTPSA   = " Å²"
)

// Properties extracts the computed properties of a compound. The result
// depends only on props.
func Properties(props []pubchem.Prop) types.ChemicalProperties {
	return types.ChemicalProperties{
		HBondAcceptors: lookup(props, keyHBondAcceptors, ""),
		HBondDonors:    lookup(props, keyHBondDonors, ""),
		RotatableBonds: lookup(props, keyRotatableBonds, ""),
		IUPACName:      lookup(props, keyIUPACName, ""),
		CommonName:     lookup(props, keyCommonName, ""),
		LogP:           lookup(props, keyLogP, ""),
		TPSA:           lookup(props, keyTPSA, unitTPSA),
	}
}

// Formula returns the molecular formula, e.g. "C9H8O4".
func Formula(props []pubchem.Prop) string {
	return lookup(props, keyFormula, "")
}

// MolecularWeight returns the molecular weight with its unit, e.g. "180.16 g/mol".
func MolecularWeight(props []pubchem.Prop) string {
	return lookup(props, keyWeight, unitWeight)
}

// lookup finds the first prop matching k and renders its value with unit
// appended. PubChem does not guarantee unique tags, so the first match wins
// even when its value turns out to be unusable.
func lookup(props []pubchem.Prop, k key, unit string) string {
	for _, p := range props {
		if !k.matches(p.URN) {
			continue
		}
		s, ok := render(p.Value)
		if !ok {
			return ""
		}
		return s + unit
	}
	return ""
}

// render coerces a tagged value to its display string.
func render(v pubchem.Value) (string, bool) {
	switch v.Kind {
	case pubchem.KindInt:
		return strconv.FormatInt(v.Int, 10), true
	case pubchem.KindFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64), true
	case pubchem.KindString:
		if v.String == "" {
			return "", false
		}
		return v.String, true
	default:
		return "", false
	}
}
