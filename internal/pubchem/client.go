// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubchem is a typed client for the PubChem PUG REST, PUG View, and
// autocomplete endpoints. Each method performs exactly one round trip and
// returns either a parsed payload or a typed failure (ErrNotFound,
// ErrNoStructure, ErrEmpty, *NetworkError).
package pubchem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/moluxis/internal/httputil"
	"github.com/pdiddy/moluxis/pkg/types"
)

// NoDescription is returned by FetchDescription when PubChem has no text.
const NoDescription = "No description available."

// maxStructureBytes bounds the SDF payload; larger ones are rejected.
const maxStructureBytes = 16 << 20

// Client queries PubChem. All methods are safe for concurrent use; requests
// share one Throttle.
type Client struct {
	http     *http.Client
	cfg      types.PubChemConfig
	throttle *httputil.Throttle

	maxStructure int64
}

// NewClient returns a Client using httpClient for transport. Zero-valued
// fields of cfg are replaced with defaults.
func NewClient(httpClient *http.Client, cfg types.PubChemConfig) *Client {
	full := types.Config{PubChem: cfg}
	full.ApplyDefaults()
	cfg = full.PubChem
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		http:     httpClient,
		cfg:      cfg,
		throttle: httputil.NewThrottle(cfg.RateLimit, cfg.CallTimeout),

		maxStructure: maxStructureBytes,
	}
}

// LookupByName resolves a compound name to its CID and raw property list.
func (c *Client) LookupByName(ctx context.Context, name string) (Compound, error) {
	const op = "lookup"
	resp, err := c.get(ctx, op, "/pug/compound/name/"+url.PathEscape(name)+"/JSON", nil)
	if err != nil {
		return Compound{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return Compound{}, &NetworkError{Op: op, StatusCode: resp.StatusCode}
	case resp.StatusCode >= 400:
		// PUGREST.NotFound and PUGREST.BadRequest both mean no such compound.
		return Compound{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	var cr compoundsResponse
	if err := decode(op, resp, &cr); err != nil {
		return Compound{}, err
	}
	if len(cr.PCCompounds) == 0 {
		return Compound{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	first := cr.PCCompounds[0]
	return Compound{CID: first.ID.ID.CID, Props: first.Props}, nil
}

// FetchStructure returns the 3D SDF text for cid.
func (c *Client) FetchStructure(ctx context.Context, cid int) (string, error) {
	const op = "structure"
	params := url.Values{
		"record_type":   {"3d"},
		"response_type": {"display"},
	}
	resp, err := c.get(ctx, op, "/pug/compound/CID/"+strconv.Itoa(cid)+"/record/SDF/", params)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return "", &NetworkError{Op: op, StatusCode: resp.StatusCode}
	case resp.StatusCode >= 400:
		return "", fmt.Errorf("%w: CID %d (HTTP %d)", ErrNoStructure, cid, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxStructure+1))
	if err != nil {
		return "", &NetworkError{Op: op, Err: fmt.Errorf("reading response: %w", err)}
	}
	if int64(len(data)) > c.maxStructure {
		return "", fmt.Errorf("%w: CID %d (structure exceeds %d bytes)", ErrNoStructure, cid, c.maxStructure)
	}
	sdf := string(data)
	if len(strings.TrimSpace(sdf)) < c.cfg.MinStructureLength {
		return "", fmt.Errorf("%w: CID %d (%d bytes)", ErrNoStructure, cid, len(data))
	}
	return sdf, nil
}

// FetchExperimentalProperties returns the "Chemical and Physical Properties"
// PUG View document for cid.
func (c *Client) FetchExperimentalProperties(ctx context.Context, cid int) (*Record, error) {
	return c.fetchView(ctx, "experimental", cid, "Chemical and Physical Properties")
}

// FetchSafetyClassification returns the "GHS Classification" PUG View
// document for cid.
func (c *Client) FetchSafetyClassification(ctx context.Context, cid int) (*Record, error) {
	return c.fetchView(ctx, "safety", cid, "GHS Classification")
}

func (c *Client) fetchView(ctx context.Context, op string, cid int, heading string) (*Record, error) {
	resp, err := c.get(ctx, op, "/pug_view/data/compound/"+strconv.Itoa(cid)+"/JSON", url.Values{"heading": {heading}})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, &NetworkError{Op: op, StatusCode: resp.StatusCode}
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: %s for CID %d", ErrEmpty, heading, cid)
	}

	var vr viewResponse
	if err := decode(op, resp, &vr); err != nil {
		return nil, err
	}
	if vr.Record == nil || len(vr.Record.Section) == 0 {
		return nil, fmt.Errorf("%w: %s for CID %d", ErrEmpty, heading, cid)
	}
	return vr.Record, nil
}

// FetchSynonyms returns every synonym PubChem lists for cid, possibly none.
func (c *Client) FetchSynonyms(ctx context.Context, cid int) ([]string, error) {
	const op = "synonyms"
	var ir informationListResponse
	found, err := c.getInformationList(ctx, op, "/pug/compound/cid/"+strconv.Itoa(cid)+"/synonyms/JSON", &ir)
	if err != nil || !found {
		return nil, err
	}
	if len(ir.InformationList.Information) == 0 {
		return nil, nil
	}
	return ir.InformationList.Information[0].Synonym, nil
}

// FetchDescription returns the first free-text description for cid, or
// NoDescription when PubChem has none.
func (c *Client) FetchDescription(ctx context.Context, cid int) (string, error) {
	const op = "description"
	var ir informationListResponse
	found, err := c.getInformationList(ctx, op, "/pug/compound/cid/"+strconv.Itoa(cid)+"/description/JSON", &ir)
	if err != nil {
		return NoDescription, err
	}
	if !found {
		return NoDescription, nil
	}
	for _, info := range ir.InformationList.Information {
		if info.Description != "" {
			return info.Description, nil
		}
	}
	return NoDescription, nil
}

// getInformationList decodes an InformationList envelope into v. A 4xx
// response means PubChem has nothing for the CID and reports found=false.
func (c *Client) getInformationList(ctx context.Context, op, path string, v *informationListResponse) (found bool, err error) {
	resp, err := c.get(ctx, op, path, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return false, &NetworkError{Op: op, StatusCode: resp.StatusCode}
	case resp.StatusCode >= 400:
		return false, nil
	}
	if err := decode(op, resp, v); err != nil {
		return false, err
	}
	return true, nil
}

// Autocomplete returns compound-name suggestions for prefix, possibly none.
func (c *Client) Autocomplete(ctx context.Context, prefix string) ([]string, error) {
	const op = "autocomplete"
	params := url.Values{"limit": {strconv.Itoa(c.cfg.AutocompleteLimit)}}
	resp, err := c.get(ctx, op, "/autocomplete/compound/"+url.PathEscape(prefix)+"/json", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{Op: op, StatusCode: resp.StatusCode}
	}

	var ar autocompleteResponse
	if err := decode(op, resp, &ar); err != nil {
		return nil, err
	}
	return ar.DictionaryTerms.Compound, nil
}

// get issues one throttled GET against the configured base URL.
func (c *Client) get(ctx context.Context, op, path string, params url.Values) (*http.Response, error) {
	reqURL := c.cfg.BaseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	start := time.Now()
	resp, err := c.throttle.Do(ctx, c.http, req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	zerolog.Ctx(ctx).Debug().
		Str("op", op).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("PubChem request")
	return resp, nil
}

func decode(op string, resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("parsing response: %w", err)}
	}
	return nil
}
