// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds settings for requests to the E-utilities endpoints.
type HTTPConfig struct {
	// Timeout is the per-request timeout. Zero disables it.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with requests (e.g. "pubmed-papers/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retries on HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RequestDelay is the pause before each detail request (default 0).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}

// DetailMode selects the endpoint used for per-paper details.
type DetailMode string

const (
	// DetailSummary uses esummary.fcgi (document summaries).
	DetailSummary DetailMode = "summary"
	// DetailFetch uses efetch.fcgi (full records with author affiliations).
	DetailFetch DetailMode = "fetch"
)

// PubMedConfig holds settings for the PubMed client.
type PubMedConfig struct {
	HTTPConfig `yaml:",inline"`

	// Detail selects the detail endpoint: summary or fetch.
	Detail DetailMode `json:"detail" yaml:"detail"`

	// APIKey is an optional NCBI API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email identifies the caller to NCBI.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// Tool names the calling application to NCBI.
	Tool string `json:"tool,omitempty" yaml:"tool,omitempty"`

	// BaseURL overrides the E-utilities root (e.g. a mirror or proxy).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// RunConfig groups everything a single search-and-export run needs.
type RunConfig struct {
	PubMed PubMedConfig `json:"pubmed" yaml:"pubmed"`

	// OutputFile is the export destination; its extension picks the format.
	OutputFile string `json:"output_file" yaml:"output_file"`

	// Classifier names the author classifier: none or affiliation.
	Classifier string `json:"classifier" yaml:"classifier"`

	// CachePath is an optional SQLite file caching detail responses.
	CachePath string `json:"cache_path,omitempty" yaml:"cache_path,omitempty"`

	// Debug enables progress lines for each request.
	Debug bool `json:"debug" yaml:"debug"`
}
