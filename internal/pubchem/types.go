// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubchem

import (
	"encoding/json"
	"fmt"
)

// Kind tags the scalar shape held by a Value.
type Kind int

const (
	KindNone Kind = iota
	KindInt
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "none"
	}
}

// Value is a compound property value. PubChem encodes it as an object with
// exactly one of ival, fval, or sval set; other shapes (binary, lists)
// decode as KindNone.
type Value struct {
	Kind   Kind
	Int    int64
	Float  float64
	String string
}

// UnmarshalJSON decodes the ival/fval/sval envelope into a tagged Value.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw struct {
		Ival *int64   `json:"ival"`
		Fval *float64 `json:"fval"`
		Sval *string  `json:"sval"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding property value: %w", err)
	}
	*v = Value{}
	switch {
	case raw.Ival != nil:
		v.Kind, v.Int = KindInt, *raw.Ival
	case raw.Fval != nil:
		v.Kind, v.Float = KindFloat, *raw.Fval
	case raw.Sval != nil:
		v.Kind, v.String = KindString, *raw.Sval
	}
	return nil
}

// URN tags a property with its label/name pair, e.g.
// {Label: "IUPAC Name", Name: "Preferred"}.
type URN struct {
	Label string `json:"label"`
	Name  string `json:"name"`
}

// Prop is one entry of a compound's raw property list.
type Prop struct {
	URN   URN   `json:"urn"`
	Value Value `json:"value"`
}

// Compound is the subset of a PUG REST compound used by the explorer.
type Compound struct {
	CID   int
	Props []Prop
}

// Record is a PUG View document: a tree of headed sections whose leaves are
// Information items.
type Record struct {
	RecordType   string    `json:"RecordType"`
	RecordNumber int       `json:"RecordNumber"`
	RecordTitle  string    `json:"RecordTitle"`
	Section      []Section `json:"Section"`
}

// Section is a headed node of a PUG View document.
type Section struct {
	TOCHeading  string        `json:"TOCHeading"`
	Description string        `json:"Description,omitempty"`
	Section     []Section     `json:"Section,omitempty"`
	Information []Information `json:"Information,omitempty"`
}

// Information is a named leaf of a PUG View section.
type Information struct {
	ReferenceNumber int       `json:"ReferenceNumber"`
	Name            string    `json:"Name,omitempty"`
	Value           InfoValue `json:"Value"`
}

// InfoValue holds either marked-up strings or numbers with a unit.
type InfoValue struct {
	StringWithMarkup []StringWithMarkup `json:"StringWithMarkup,omitempty"`
	Number           []float64          `json:"Number,omitempty"`
	Unit             string             `json:"Unit,omitempty"`
}

// StringWithMarkup is a text fragment; markup (links, icons) is ignored.
type StringWithMarkup struct {
	String string `json:"String"`
}

// PUG REST JSON envelopes.

type compoundsResponse struct {
	PCCompounds []pcCompound `json:"PC_Compounds"`
}

type pcCompound struct {
	ID struct {
		ID struct {
			CID int `json:"cid"`
		} `json:"id"`
	} `json:"id"`
	Props []Prop `json:"props"`
}

type viewResponse struct {
	Record *Record `json:"Record"`
}

type informationListResponse struct {
	InformationList struct {
		Information []informationEntry `json:"Information"`
	} `json:"InformationList"`
}

type informationEntry struct {
	CID         int      `json:"CID"`
	Title       string   `json:"Title,omitempty"`
	Synonym     []string `json:"Synonym,omitempty"`
	Description string   `json:"Description,omitempty"`
}

type autocompleteResponse struct {
	Total           int `json:"total"`
	DictionaryTerms struct {
		Compound []string `json:"compound"`
	} `json:"dictionary_terms"`
}
