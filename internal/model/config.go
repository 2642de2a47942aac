package model

import "time"

// Config holds the complete tool configuration, assembled from defaults,
// the config file, INDRANET_* environment variables, and CLI flags.
type Config struct {
	Indra       IndraConfig       `yaml:"indra"`
	NDEx        NDExConfig        `yaml:"ndex"`
	Annotate    AnnotateConfig    `yaml:"annotate"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	LLM         LLMConfig         `yaml:"llm"`
	Output      OutputConfig      `yaml:"output"`
}

// IndraConfig configures the INDRA subgraph client.
type IndraConfig struct {
	Endpoint          string        `yaml:"endpoint"`
	StatementBaseURL  string        `yaml:"statement_base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	UserAgent         string        `yaml:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size"`
}

// NDExConfig configures the NDEx server client.
type NDExConfig struct {
	Server   string        `yaml:"server"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout"`
}

// AnnotateConfig holds the annotation parameters mirrored by CLI flags.
type AnnotateConfig struct {
	NetPrefix       string `yaml:"netprefix"`
	RemoveOrigEdges bool   `yaml:"remove_orig_edges"`
	SourceValue     string `yaml:"source_value"`
	MaxNetworkSize  int    `yaml:"max_network_size"`
	BrowserTarget   string `yaml:"browser_target"`
	CurationsFile   string `yaml:"curations_file"`
}

// CacheConfig configures the layered INDRA response cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig bounds parallel network annotation.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// LLMConfig configures the optional post-annotation summary. The summary
// never affects the annotated network.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "" disables the summary
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	MaxTokens int    `yaml:"max_tokens"`
	Timeout   int    `yaml:"timeout_seconds"`
}

// OutputConfig controls where annotated networks go.
type OutputConfig struct {
	SaveDir         string `yaml:"save_dir"`
	SaveToServer    bool   `yaml:"save_to_server"`
	Visibility      string `yaml:"visibility"`
	IndexLevel      string `yaml:"index_level"`
	DisableShowcase bool   `yaml:"disable_showcase"`
	Verbose         bool   `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Indra: IndraConfig{
			Endpoint:          "https://network.indra.bio/api/subgraph",
			StatementBaseURL:  "https://db.indra.bio/statements",
			Timeout:           10 * time.Minute,
			UserAgent:         "indranet/0.2 (+https://github.com/ndexbio/indranet)",
			MaxBodyBytes:      100_000_000,
			RequestsPerSecond: 1,
			BurstSize:         2,
		},
		NDEx: NDExConfig{
			Server:  "public.ndexbio.org",
			Timeout: 2 * time.Minute,
		},
		Annotate: AnnotateConfig{
			NetPrefix:      "INDRA annotated - ",
			MaxNetworkSize: 100,
			BrowserTarget:  "INDRA_Evidence",
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 2,
		},
		LLM: LLMConfig{
			MaxTokens: 1000,
			Timeout:   30,
		},
		Output: OutputConfig{
			Visibility: "PUBLIC",
			IndexLevel: "all",
		},
	}
}
