// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report formats a compound record for terminal and machine output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/moluxis/pkg/types"
)

// CompoundURL is the PubChem summary page for cid.
func CompoundURL(cid int) string {
	return "https://pubchem.ncbi.nlm.nih.gov/compound/" + strconv.Itoa(cid)
}

// Row is one labelled property value.
type Row struct {
	Label string
	Value string
}

// PropertyRows returns the reported properties in display order. Empty and
// "N/A" values are left out.
func PropertyRows(p types.ChemicalProperties) []Row {
	all := []Row{
		{"H-Bond Acceptors", p.HBondAcceptors},
		{"H-Bond Donors", p.HBondDonors},
		{"Rotatable Bonds", p.RotatableBonds},
		{"LogP (Lipophilicity)", p.LogP},
		{"Polar Surface Area", p.TPSA},
		{"Boiling Point", p.BoilingPoint},
		{"Melting Point", p.MeltingPoint},
		{"Solubility", p.Solubility},
		{"Density", p.Density},
		{"pH", p.PH},
	}
	rows := all[:0]
	for _, r := range all {
		if r.Value == "" || r.Value == "N/A" {
			continue
		}
		rows = append(rows, r)
	}
	return rows
}

// NoExtraProperties reports whether the "no additional properties" hint
// applies: neither LogP nor TPSA was reported.
func NoExtraProperties(p types.ChemicalProperties) bool {
	return p.LogP == "" && p.TPSA == ""
}

var subscripts = strings.NewReplacer(
	"0", "₀", "1", "₁", "2", "₂", "3", "₃", "4", "₄",
	"5", "₅", "6", "₆", "7", "₇", "8", "₈", "9", "₉",
)

// SubscriptFormula renders the digits of a molecular formula as Unicode
// subscripts, e.g. C9H8O4 → C₉H₈O₄.
func SubscriptFormula(formula string) string {
	return subscripts.Replace(formula)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// FormatTable writes rec as a human-readable summary to w.
func FormatTable(rec *types.CompoundRecord, w io.Writer) {
	if rec == nil {
		fmt.Fprintln(w, "No compound loaded.")
		return
	}

	fmt.Fprintf(w, "%s (CID %d)\n", rec.Name, rec.CID)
	fmt.Fprintln(w, strings.Repeat("-", 60))
	formula := "N/A"
	if rec.Formula != "" {
		formula = SubscriptFormula(rec.Formula)
	}
	fmt.Fprintf(w, "%-22s  %s\n", "Formula", formula)
	fmt.Fprintf(w, "%-22s  %s\n", "Molecular Weight", orNA(rec.MolecularWeight))
	fmt.Fprintf(w, "%-22s  %s\n", "IUPAC Name", orNA(rec.Properties.IUPACName))
	fmt.Fprintf(w, "%-22s  %s\n", "Common Name", orNA(rec.Properties.CommonName))

	fmt.Fprintln(w, "\nChemical Properties")
	for _, r := range PropertyRows(rec.Properties) {
		fmt.Fprintf(w, "  %-22s  %s\n", r.Label, r.Value)
	}
	if NoExtraProperties(rec.Properties) {
		fmt.Fprintln(w, "  No additional properties available")
	}

	if !rec.Safety.IsEmpty() {
		fmt.Fprintln(w, "\nSafety & Hazards")
		if len(rec.Safety.Signal) > 0 {
			fmt.Fprintln(w, "  Signal Words")
			for _, s := range rec.Safety.Signal {
				fmt.Fprintf(w, "    ⚠ %s\n", s)
			}
		}
		if len(rec.Safety.HazardStatements) > 0 {
			fmt.Fprintln(w, "  Hazard Statements")
			for _, s := range rec.Safety.HazardStatements {
				fmt.Fprintf(w, "    • %s\n", s)
			}
		}
	}

	fmt.Fprintln(w, "\nDescription")
	fmt.Fprintf(w, "  %s\n", rec.Description)

	if len(rec.Synonyms) > 0 {
		fmt.Fprintln(w, "\nSynonyms")
		for _, s := range rec.Synonyms {
			fmt.Fprintf(w, "  %s\n", s)
		}
	}

	fmt.Fprintln(w, "\nPubChem Data")
	fmt.Fprintf(w, "  CID: %d\n", rec.CID)
	fmt.Fprintf(w, "  %s\n", CompoundURL(rec.CID))
}

// FormatJSON writes rec as indented JSON to w.
func FormatJSON(rec *types.CompoundRecord, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// FormatYAML writes rec as YAML to w. The structure file is omitted.
func FormatYAML(rec *types.CompoundRecord, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
