package types

import "time"

// Defaults for the compound explorer. Values mirror PubChem's public
// endpoints and usage policy.
const (
	DefaultBaseURL            = "https://pubchem.ncbi.nlm.nih.gov/rest"
	DefaultUserAgent          = "moluxis/0.1"
	DefaultTimeout            = 30 * time.Second
	DefaultCallTimeout        = 15 * time.Second
	DefaultRateLimit          = 5.0
	DefaultMinStructureLength = 50
	DefaultMaxSynonyms        = 10
	DefaultAutocompleteLimit  = 6
	DefaultSuggestMinLength   = 3
	DefaultViewerStyle        = "ballStick"
	DefaultViewerOutput       = "moluxis-viewer.html"
)

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the transport-level HTTP client timeout.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "moluxis/0.1").
	UserAgent string `json:"user_agent" mapstructure:"user_agent" yaml:"user_agent"`
}

// PubChemConfig holds settings for the PubChem client and the aggregation
// that drives it.
type PubChemConfig struct {
	HTTPConfig `mapstructure:",squash" yaml:",inline"`

	// BaseURL is the PUG REST root, without a trailing slash.
	BaseURL string `json:"base_url" mapstructure:"base_url" yaml:"base_url"`

	// CallTimeout bounds every individual request so a search cannot hang.
	CallTimeout time.Duration `json:"call_timeout" mapstructure:"call_timeout" yaml:"call_timeout"`

	// RateLimit is the maximum number of requests per second (PubChem allows 5).
	RateLimit float64 `json:"rate_limit" mapstructure:"rate_limit" yaml:"rate_limit"`

	// MinStructureLength is the shortest SDF payload accepted as a real structure.
	MinStructureLength int `json:"min_structure_length" mapstructure:"min_structure_length" yaml:"min_structure_length"`

	// MaxSynonyms caps the synonym list of a record (default 10).
	MaxSynonyms int `json:"max_synonyms" mapstructure:"max_synonyms" yaml:"max_synonyms"`

	// AutocompleteLimit is the number of suggestions requested (default 6).
	AutocompleteLimit int `json:"autocomplete_limit" mapstructure:"autocomplete_limit" yaml:"autocomplete_limit"`
}

// SuggestConfig holds settings for the suggestion fetcher.
type SuggestConfig struct {
	// MinLength is the shortest input that triggers an autocomplete request.
	MinLength int `json:"min_length" mapstructure:"min_length" yaml:"min_length"`
}

// ViewerConfig holds the initial visualization settings.
type ViewerConfig struct {
	// Style is one of ballStick, stick, wireframe, sphere.
	Style string `json:"style" mapstructure:"style" yaml:"style"`

	// Labels shows element labels on every atom.
	Labels bool `json:"labels" mapstructure:"labels" yaml:"labels"`

	// OutputPath is where the HTML viewer page is written.
	OutputPath string `json:"output_path" mapstructure:"output_path" yaml:"output_path"`
}

// Config groups all component configurations.
type Config struct {
	PubChem PubChemConfig `json:"pubchem" mapstructure:"pubchem" yaml:"pubchem"`
	Suggest SuggestConfig `json:"suggest" mapstructure:"suggest" yaml:"suggest"`
	Viewer  ViewerConfig  `json:"viewer" mapstructure:"viewer" yaml:"viewer"`
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults.
func (c *Config) ApplyDefaults() {
	p := &c.PubChem
	if p.BaseURL == "" {
		p.BaseURL = DefaultBaseURL
	}
	if p.UserAgent == "" {
		p.UserAgent = DefaultUserAgent
	}
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	if p.CallTimeout <= 0 {
		p.CallTimeout = DefaultCallTimeout
	}
	if p.RateLimit <= 0 {
		p.RateLimit = DefaultRateLimit
	}
	if p.MinStructureLength <= 0 {
		p.MinStructureLength = DefaultMinStructureLength
	}
	if p.MaxSynonyms <= 0 {
		p.MaxSynonyms = DefaultMaxSynonyms
	}
	if p.AutocompleteLimit <= 0 {
		p.AutocompleteLimit = DefaultAutocompleteLimit
	}
	if c.Suggest.MinLength <= 0 {
		c.Suggest.MinLength = DefaultSuggestMinLength
	}
	if c.Viewer.Style == "" {
		c.Viewer.Style = DefaultViewerStyle
	}
	if c.Viewer.OutputPath == "" {
		c.Viewer.OutputPath = DefaultViewerOutput
	}
}
