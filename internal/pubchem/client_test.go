// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubchem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/moluxis/pkg/types"
)

const aspirinLookupJSON = `{
  "PC_Compounds": [
    {
      "id": {"id": {"cid": 2244}},
      "props": [
        {"urn": {"label": "Compound", "name": "Canonicalized", "datatype": 5}, "value": {"ival": 1}},
        {"urn": {"label": "Count", "name": "Hydrogen Bond Acceptor", "datatype": 5}, "value": {"ival": 4}},
        {"urn": {"label": "Count", "name": "Hydrogen Bond Donor", "datatype": 5}, "value": {"ival": 1}},
        {"urn": {"label": "Count", "name": "Rotatable Bond", "datatype": 5}, "value": {"ival": 3}},
        {"urn": {"label": "IUPAC Name", "name": "Preferred", "datatype": 7}, "value": {"sval": "2-acetyloxybenzoic acid"}},
        {"urn": {"label": "IUPAC Name", "name": "Traditional", "datatype": 7}, "value": {"sval": "2-acetoxybenzoic acid"}},
        {"urn": {"label": "Log P", "name": "XLogP3", "datatype": 7}, "value": {"fval": 1.2}},
        {"urn": {"label": "Molecular Formula", "datatype": 7}, "value": {"sval": "C9H8O4"}},
        {"urn": {"label": "Molecular Weight", "datatype": 1}, "value": {"sval": "180.16"}},
        {"urn": {"label": "Topological", "name": "Polar Surface Area", "datatype": 7}, "value": {"fval": 63.6}},
        {"urn": {"label": "Fingerprint", "name": "SubStructure Keys", "datatype": 16}, "value": {"binary": "00000371C0703800"}}
      ]
    }
  ]
}`

const notFoundFaultJSON = `{"Fault": {"Code": "PUGREST.NotFound", "Message": "No CID found", "Details": ["No CID found that matches the given name"]}}`

var aspirinSDF = "2244\n  -OEChem-03062414213D\n\n 21 21  0     0  0  0  0  0  0999 V2000\n    1.2333    0.5540    0.7792 O   0  0  0  0  0  0  0  0  0  0  0  0\nM  END\n$$$$\n"

const experimentalJSON = `{
  "Record": {
    "RecordType": "CID",
    "RecordNumber": 2244,
    "RecordTitle": "Aspirin",
    "Section": [
      {
        "TOCHeading": "Chemical and Physical Properties",
        "Section": [
          {"TOCHeading": "Computed Properties", "Section": []},
          {
            "TOCHeading": "Experimental Properties",
            "Section": [
              {"TOCHeading": "Boiling Point", "Information": [{"ReferenceNumber": 1, "Value": {"StringWithMarkup": [{"String": "284 °F at 760 mmHg (decomposes)"}]}}]},
              {"TOCHeading": "Density", "Information": [{"ReferenceNumber": 2, "Value": {"Number": [1.4], "Unit": "g/cm3"}}]}
            ]
          }
        ]
      }
    ]
  }
}`

const synonymsJSON = `{"InformationList": {"Information": [{"CID": 2244, "Synonym": ["aspirin", "ACETYLSALICYLIC ACID", "50-78-2"]}]}}`

const descriptionJSON = `{"InformationList": {"Information": [
  {"CID": 2244, "Title": "Aspirin"},
  {"CID": 2244, "Description": "Acetylsalicylic acid is a member of the class of benzoic acids.", "DescriptionSourceName": "ChEBI"}
]}}`

const autocompleteJSON = `{"status": {"code": 0}, "total": 3, "dictionary_terms": {"compound": ["aspirin", "aspartame", "aspartic acid"]}}`

// fakePubChem serves canned responses keyed by path and records every
// request path it receives.
type fakePubChem struct {
	mu       sync.Mutex
	routes   map[string]route
	requests []string
	agents   []string
}

type route struct {
	status int
	body   string
}

func newFakePubChem(routes map[string]route) (*fakePubChem, *httptest.Server) {
	f := &fakePubChem{routes: routes}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.URL.RequestURI())
		f.agents = append(f.agents, r.UserAgent())
		f.mu.Unlock()

		rt, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, notFoundFaultJSON)
			return
		}
		w.WriteHeader(rt.status)
		fmt.Fprint(w, rt.body)
	}))
	return f, ts
}

func testClient(ts *httptest.Server) *Client {
	return NewClient(ts.Client(), types.PubChemConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "test/0.1"},
		BaseURL:    ts.URL + "/rest/",
		RateLimit:  1000,
	})
}

// --- Value ---

func TestValueUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Value
	}{
		{"int", `{"ival": 4}`, Value{Kind: KindInt, Int: 4}},
		{"float", `{"fval": 1.25}`, Value{Kind: KindFloat, Float: 1.25}},
		{"string", `{"sval": "C9H8O4"}`, Value{Kind: KindString, String: "C9H8O4"}},
		{"zero int is still int", `{"ival": 0}`, Value{Kind: KindInt}},
		{"binary", `{"binary": "AAAA"}`, Value{Kind: KindNone}},
		{"empty", `{}`, Value{Kind: KindNone}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.in), &v))
			assert.Equal(t, tt.want, v)
		})
	}
}

// --- LookupByName ---

func TestLookupByName(t *testing.T) {
	f, ts := newFakePubChem(map[string]route{
		"/rest/pug/compound/name/Aspirin/JSON": {http.StatusOK, aspirinLookupJSON},
	})
	defer ts.Close()

	c, err := testClient(ts).LookupByName(context.Background(), "Aspirin")
	require.NoError(t, err)
	assert.Equal(t, 2244, c.CID)
	require.Len(t, c.Props, 11)
	assert.Equal(t, URN{Label: "Molecular Formula"}, c.Props[7].URN)
	assert.Equal(t, Value{Kind: KindString, String: "C9H8O4"}, c.Props[7].Value)
	assert.Equal(t, KindNone, c.Props[10].Value.Kind)
	assert.Equal(t, []string{"test/0.1"}, f.agents)
}

func TestLookupByNameEscapesPath(t *testing.T) {
	f, ts := newFakePubChem(map[string]route{
		"/rest/pug/compound/name/acetic acid/JSON": {http.StatusOK, aspirinLookupJSON},
	})
	defer ts.Close()

	_, err := testClient(ts).LookupByName(context.Background(), "acetic acid")
	require.NoError(t, err)
	require.Len(t, f.requests, 1)
	assert.Equal(t, "/rest/pug/compound/name/acetic%20acid/JSON", f.requests[0])
}

func TestLookupByNameNotFound(t *testing.T) {
	tests := []struct {
		name string
		rt   route
	}{
		{"404 fault", route{http.StatusNotFound, notFoundFaultJSON}},
		{"400 bad request", route{http.StatusBadRequest, `{"Fault": {"Code": "PUGREST.BadRequest"}}`}},
		{"empty compound list", route{http.StatusOK, `{"PC_Compounds": []}`}},
		{"missing compound list", route{http.StatusOK, `{}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ts := newFakePubChem(map[string]route{"/rest/pug/compound/name/zzqqnonexistent/JSON": tt.rt})
			defer ts.Close()

			_, err := testClient(ts).LookupByName(context.Background(), "zzqqnonexistent")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.False(t, IsNetwork(err))
		})
	}
}

func TestLookupByNameNetworkErrors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		_, ts := newFakePubChem(map[string]route{
			"/rest/pug/compound/name/Aspirin/JSON": {http.StatusServiceUnavailable, "busy"},
		})
		defer ts.Close()

		_, err := testClient(ts).LookupByName(context.Background(), "Aspirin")
		var netErr *NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Equal(t, "lookup", netErr.Op)
		assert.Equal(t, http.StatusServiceUnavailable, netErr.StatusCode)
	})

	t.Run("undecodable body", func(t *testing.T) {
		_, ts := newFakePubChem(map[string]route{
			"/rest/pug/compound/name/Aspirin/JSON": {http.StatusOK, "<html>oops</html>"},
		})
		defer ts.Close()

		_, err := testClient(ts).LookupByName(context.Background(), "Aspirin")
		assert.True(t, IsNetwork(err))
	})

	t.Run("connection refused", func(t *testing.T) {
		_, ts := newFakePubChem(nil)
		c := testClient(ts)
		ts.Close()

		_, err := c.LookupByName(context.Background(), "Aspirin")
		assert.True(t, IsNetwork(err))
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

// --- FetchStructure ---

func TestFetchStructure(t *testing.T) {
	f, ts := newFakePubChem(map[string]route{
		"/rest/pug/compound/CID/2244/record/SDF/": {http.StatusOK, aspirinSDF},
	})
	defer ts.Close()

	sdf, err := testClient(ts).FetchStructure(context.Background(), 2244)
	require.NoError(t, err)
	assert.Equal(t, aspirinSDF, sdf)
	require.Len(t, f.requests, 1)
	assert.Contains(t, f.requests[0], "record_type=3d")
	assert.Contains(t, f.requests[0], "response_type=display")
}

func TestFetchStructureNoStructure(t *testing.T) {
	tests := []struct {
		name string
		rt   route
	}{
		{"empty body", route{http.StatusOK, ""}},
		{"whitespace body", route{http.StatusOK, strings.Repeat(" \n", 40)}},
		{"too short", route{http.StatusOK, "2244\nM  END\n$$$$\n"}},
		{"no 3d conformer", route{http.StatusNotFound, notFoundFaultJSON}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ts := newFakePubChem(map[string]route{"/rest/pug/compound/CID/2244/record/SDF/": tt.rt})
			defer ts.Close()

			_, err := testClient(ts).FetchStructure(context.Background(), 2244)
			assert.ErrorIs(t, err, ErrNoStructure)
		})
	}
}

func TestFetchStructureTooLarge(t *testing.T) {
	_, ts := newFakePubChem(map[string]route{
		"/rest/pug/compound/CID/2244/record/SDF/": {http.StatusOK, aspirinSDF},
	})
	defer ts.Close()

	c := testClient(ts)
	c.maxStructure = int64(len(aspirinSDF)) - 1
	_, err := c.FetchStructure(context.Background(), 2244)
	assert.ErrorIs(t, err, ErrNoStructure)
	assert.Contains(t, err.Error(), "exceeds")

	c.maxStructure = int64(len(aspirinSDF))
	sdf, err := c.FetchStructure(context.Background(), 2244)
	require.NoError(t, err)
	assert.Equal(t, aspirinSDF, sdf)
}

func TestFetchStructureServerError(t *testing.T) {
	_, ts := newFakePubChem(map[string]route{
		"/rest/pug/compound/CID/2244/record/SDF/": {http.StatusInternalServerError, ""},
	})
	defer ts.Close()

	_, err := testClient(ts).FetchStructure(context.Background(), 2244)
	assert.True(t, IsNetwork(err))
	assert.NotErrorIs(t, err, ErrNoStructure)
}

// --- PUG View ---

func TestFetchExperimentalProperties(t *testing.T) {
	f, ts := newFakePubChem(map[string]route{
		"/rest/pug_view/data/compound/2244/JSON": {http.StatusOK, experimentalJSON},
	})
	defer ts.Close()

	rec, err := testClient(ts).FetchExperimentalProperties(context.Background(), 2244)
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", rec.RecordTitle)
	require.Len(t, rec.Section, 1)
	assert.Equal(t, "Experimental Properties", rec.Section[0].Section[1].TOCHeading)
	assert.Contains(t, f.requests[0], "heading=Chemical+and+Physical+Properties")
}

func TestFetchSafetyClassificationEmpty(t *testing.T) {
	tests := []struct {
		name string
		rt   route
	}{
		{"404", route{http.StatusNotFound, notFoundFaultJSON}},
		{"no record", route{http.StatusOK, `{}`}},
		{"no sections", route{http.StatusOK, `{"Record": {"RecordNumber": 2244, "Section": []}}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ts := newFakePubChem(map[string]route{"/rest/pug_view/data/compound/2244/JSON": tt.rt})
			defer ts.Close()

			_, err := testClient(ts).FetchSafetyClassification(context.Background(), 2244)
			assert.ErrorIs(t, err, ErrEmpty)
		})
	}
}

// --- Synonyms / description ---

func TestFetchSynonyms(t *testing.T) {
	_, ts := newFakePubChem(map[string]route{
		"/rest/pug/compound/cid/2244/synonyms/JSON": {http.StatusOK, synonymsJSON},
	})
	defer ts.Close()

	syns, err := testClient(ts).FetchSynonyms(context.Background(), 2244)
	require.NoError(t, err)
	assert.Equal(t, []string{"aspirin", "ACETYLSALICYLIC ACID", "50-78-2"}, syns)
}

func TestFetchSynonymsMissing(t *testing.T) {
	_, ts := newFakePubChem(nil)
	defer ts.Close()

	syns, err := testClient(ts).FetchSynonyms(context.Background(), 2244)
	require.NoError(t, err)
	assert.Empty(t, syns)
}

func TestFetchDescription(t *testing.T) {
	_, ts := newFakePubChem(map[string]route{
		"/rest/pug/compound/cid/2244/description/JSON": {http.StatusOK, descriptionJSON},
	})
	defer ts.Close()

	desc, err := testClient(ts).FetchDescription(context.Background(), 2244)
	require.NoError(t, err)
	assert.Equal(t, "Acetylsalicylic acid is a member of the class of benzoic acids.", desc)
}

func TestFetchDescriptionFallback(t *testing.T) {
	tests := []struct {
		name   string
		routes map[string]route
	}{
		{"404", nil},
		{"title only", map[string]route{
			"/rest/pug/compound/cid/2244/description/JSON": {http.StatusOK, `{"InformationList": {"Information": [{"CID": 2244, "Title": "Aspirin"}]}}`},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ts := newFakePubChem(tt.routes)
			defer ts.Close()

			desc, err := testClient(ts).FetchDescription(context.Background(), 2244)
			require.NoError(t, err)
			assert.Equal(t, NoDescription, desc)
		})
	}
}

// --- Autocomplete ---

func TestAutocomplete(t *testing.T) {
	f, ts := newFakePubChem(map[string]route{
		"/rest/autocomplete/compound/Asp/json": {http.StatusOK, autocompleteJSON},
	})
	defer ts.Close()

	got, err := testClient(ts).Autocomplete(context.Background(), "Asp")
	require.NoError(t, err)
	assert.Equal(t, []string{"aspirin", "aspartame", "aspartic acid"}, got)
	assert.Contains(t, f.requests[0], "limit=6")
}

func TestAutocompleteNoTerms(t *testing.T) {
	_, ts := newFakePubChem(map[string]route{
		"/rest/autocomplete/compound/zzq/json": {http.StatusOK, `{"status": {"code": 0}, "total": 0}`},
	})
	defer ts.Close()

	got, err := testClient(ts).Autocomplete(context.Background(), "zzq")
	require.NoError(t, err)
	assert.Empty(t, got)
}

// --- timeouts ---

func TestCallTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	c := NewClient(ts.Client(), types.PubChemConfig{
		BaseURL:     ts.URL,
		CallTimeout: 50 * time.Millisecond,
		RateLimit:   1000,
	})

	_, err := c.LookupByName(context.Background(), "Aspirin")
	assert.True(t, IsNetwork(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
