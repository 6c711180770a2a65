// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the moluxis compound explorer.
// Implements: the compound record model (CompoundRecord, ChemicalProperties,
// SafetyInfo) and the configuration consumed by the client, orchestrator,
// suggestion fetcher, and viewer.
package types

// ChemicalProperties holds normalized scalar properties of a compound.
// Every field is optional: an empty string means the source did not report
// the property, not that the lookup failed.
type ChemicalProperties struct {
	HBondAcceptors string `json:"h_bond_acceptors,omitempty" yaml:"h_bond_acceptors,omitempty"`
	HBondDonors    string `json:"h_bond_donors,omitempty" yaml:"h_bond_donors,omitempty"`
	RotatableBonds string `json:"rotatable_bonds,omitempty" yaml:"rotatable_bonds,omitempty"`

	// IUPACName is the preferred IUPAC name.
	IUPACName string `json:"iupac_name,omitempty" yaml:"iupac_name,omitempty"`

	// CommonName is the traditional IUPAC name.
	CommonName string `json:"common_name,omitempty" yaml:"common_name,omitempty"`

	LogP string `json:"log_p,omitempty" yaml:"log_p,omitempty"`

	// TPSA is the topological polar surface area including its unit (Å²).
	TPSA string `json:"tpsa,omitempty" yaml:"tpsa,omitempty"`

	BoilingPoint string `json:"boiling_point,omitempty" yaml:"boiling_point,omitempty"`
	MeltingPoint string `json:"melting_point,omitempty" yaml:"melting_point,omitempty"`
	Solubility   string `json:"solubility,omitempty" yaml:"solubility,omitempty"`
	Density      string `json:"density,omitempty" yaml:"density,omitempty"`
	PH           string `json:"ph,omitempty" yaml:"ph,omitempty"`
}

// IsEmpty reports whether no property was reported.
func (p ChemicalProperties) IsEmpty() bool {
	return p == ChemicalProperties{}
}

// SafetyInfo holds GHS classification data. Either list may be nil
// independently of the other.
type SafetyInfo struct {
	Signal           []string `json:"signal,omitempty" yaml:"signal,omitempty"`
	HazardStatements []string `json:"hazard_statements,omitempty" yaml:"hazard_statements,omitempty"`
}

// IsEmpty reports whether neither signal words nor hazard statements are present.
func (s SafetyInfo) IsEmpty() bool {
	return len(s.Signal) == 0 && len(s.HazardStatements) == 0
}

// CompoundRecord is the merged result of one successful search. A record
// only exists once both the name lookup and the 3D structure fetch have
// succeeded; everything else is best effort.
type CompoundRecord struct {
	// CID is the PubChem compound identifier.
	CID int `json:"cid" yaml:"cid"`

	// Name is the search term that produced this record.
	Name string `json:"name" yaml:"name"`

	Formula string `json:"formula,omitempty" yaml:"formula,omitempty"`

	// MolecularWeight includes its unit, e.g. "180.16 g/mol".
	MolecularWeight string `json:"molecular_weight,omitempty" yaml:"molecular_weight,omitempty"`

	// Synonyms holds at most MaxSynonyms entries in source order.
	Synonyms []string `json:"synonyms" yaml:"synonyms"`

	Description string `json:"description" yaml:"description"`

	// SDF is the 3D structure-data-file text, passed opaquely to the viewer.
	SDF string `json:"sdf" yaml:"-"`

	Properties ChemicalProperties `json:"properties" yaml:"properties"`
	Safety     SafetyInfo         `json:"safety" yaml:"safety"`
}
