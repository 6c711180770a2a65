// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/moluxis/internal/pubchem"
	"github.com/pdiddy/moluxis/pkg/types"
)

func prop(label, name string, v pubchem.Value) pubchem.Prop {
	return pubchem.Prop{URN: pubchem.URN{Label: label, Name: name}, Value: v}
}

func ival(n int64) pubchem.Value { return pubchem.Value{Kind: pubchem.KindInt, Int: n} }
func fval(f float64) pubchem.Value { return pubchem.Value{Kind: pubchem.KindFloat, Float: f} }
func sval(s string) pubchem.Value { return pubchem.Value{Kind: pubchem.KindString, String: s} }

func aspirinProps() []pubchem.Prop {
	return []pubchem.Prop{
		prop("Compound", "Canonicalized", ival(1)),
		prop("Count", "Hydrogen Bond Acceptor", ival(4)),
		prop("Count", "Hydrogen Bond Donor", ival(1)),
		prop("Count", "Rotatable Bond", ival(3)),
		prop("IUPAC Name", "Allowed", sval("2-acetyloxybenzoic acid")),
		prop("IUPAC Name", "Preferred", sval("2-acetyloxybenzoic acid")),
		prop("IUPAC Name", "Traditional", sval("2-acetoxybenzoic acid")),
		prop("Log P", "XLogP3", fval(1.2)),
		prop("Molecular Formula", "", sval("C9H8O4")),
		prop("Molecular Weight", "", sval("180.16")),
		prop("Topological", "Polar Surface Area", fval(63.6)),
	}
}

func TestProperties(t *testing.T) {
	got := Properties(aspirinProps())
	want := types.ChemicalProperties{
		HBondAcceptors: "4",
		HBondDonors:    "1",
		RotatableBonds: "3",
		IUPACName:      "2-acetyloxybenzoic acid",
		CommonName:     "2-acetoxybenzoic acid",
		LogP:           "1.2",
		TPSA:           "63.6 Å²",
	}
	assert.Equal(t, want, got)
}

func TestFormulaAndWeight(t *testing.T) {
	props := aspirinProps()
	assert.Equal(t, "C9H8O4", Formula(props))
	assert.Equal(t, "180.16 g/mol", MolecularWeight(props))
}

func TestMolecularWeightFloat(t *testing.T) {
	props := []pubchem.Prop{prop("Molecular Weight", "", fval(46.07))}
	assert.Equal(t, "46.07 g/mol", MolecularWeight(props))
}

func TestPropertiesEmpty(t *testing.T) {
	assert.True(t, Properties(nil).IsEmpty())
	assert.Empty(t, Formula(nil))
	assert.Empty(t, MolecularWeight(nil))
}

func TestLookupFirstMatchWins(t *testing.T) {
	props := []pubchem.Prop{
		prop("Log P", "XLogP3", fval(1.2)),
		prop("Log P", "XLogP3-AA", fval(1.3)),
	}
	assert.Equal(t, "1.2", Properties(props).LogP)
}

func TestLookupFirstMatchUnusable(t *testing.T) {
	// The first matching tag carries no scalar; later matches are ignored.
	props := []pubchem.Prop{
		prop("Count", "Rotatable Bond", pubchem.Value{}),
		prop("Count", "Rotatable Bond", ival(3)),
	}
	assert.Empty(t, Properties(props).RotatableBonds)
}

func TestLookupCaseSensitive(t *testing.T) {
	props := []pubchem.Prop{
		prop("molecular formula", "", sval("C9H8O4")),
		prop("IUPAC Name", "preferred", sval("x")),
	}
	assert.Empty(t, Formula(props))
	assert.Empty(t, Properties(props).IUPACName)
}

func TestLookupLabelAndNameBothRequired(t *testing.T) {
	props := []pubchem.Prop{
		prop("IUPAC Name", "Systematic", sval("systematic")),
	}
	got := Properties(props)
	assert.Empty(t, got.IUPACName)
	assert.Empty(t, got.CommonName)
}

func TestLogPAsString(t *testing.T) {
	props := []pubchem.Prop{prop("Log P", "Experimental", sval("1.19"))}
	assert.Equal(t, "1.19", Properties(props).LogP)
}

func TestPropertiesDeterministic(t *testing.T) {
	props := aspirinProps()
	first := Properties(props)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Properties(props))
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		v      pubchem.Value
		want   string
		wantOK bool
	}{
		{"int", ival(12), "12", true},
		{"negative int", ival(-3), "-3", true},
		{"float", fval(63.6), "63.6", true},
		{"whole float", fval(2), "2", true},
		{"string", sval("abc"), "abc", true},
		{"empty string", sval(""), "", false},
		{"none", pubchem.Value{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := render(tt.v)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
