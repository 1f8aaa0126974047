package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// MinSampleSize is the statistical-validity floor for profile aggregation.
	// Aggregating fewer scored posts fails with INSUFFICIENT_SAMPLE. The
	// contractual minimum is 10; values below that are clamped up.
	MinSampleSize int `json:"min_sample_size"`

	// MinPatternPosts is the number of distinct bottom-quartile posts an
	// n-gram must appear in before aggregation emits it as a candidate
	// blacklist pattern.
	MinPatternPosts int `json:"min_pattern_posts"`

	// MaxPatternsPerCategory caps the blacklist excerpt embedded in a
	// conditioning spec, per category.
	MaxPatternsPerCategory int `json:"max_patterns_per_category"`

	// GenBaseURL is the base URL of the OpenAI-compatible generation API.
	GenBaseURL string `json:"gen_base_url,omitempty"`

	// GenModel is the primary generation model identifier.
	GenModel string `json:"gen_model,omitempty"`

	// GenFallbackModel is tried once when the primary model errors.
	GenFallbackModel string `json:"gen_fallback_model,omitempty"`

	// GenMaxTokens limits the generated draft length.
	GenMaxTokens int `json:"gen_max_tokens,omitempty"`

	// GenTemperature is the sampling temperature for draft generation.
	GenTemperature float64 `json:"gen_temperature,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is
	// locked" errors). 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// MinSampleFloor is the contractual lower bound for MinSampleSize.
const MinSampleFloor = 10

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MinSampleSize:          MinSampleFloor,
		MinPatternPosts:        2,
		MaxPatternsPerCategory: 3,
		GenBaseURL:             "https://openrouter.ai/api/v1",
		GenModel:               "anthropic/claude-3.5-sonnet",
		GenFallbackModel:       "google/gemini-flash-1.5",
		GenMaxTokens:           1200,
		GenTemperature:         0.8,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.blend.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.blend) and repo
// (.blend) directories. Repo config is found by walking upward from startDir
// to find the nearest .blend/config.json. Repo config takes precedence for
// scalar values; arrays are merged (deduplicated). Either or both configs
// may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repoConfigPath := FindRepoConfig(startDir)
	repo, err := loadFileRaw(repoConfigPath)
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then repo
	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest
// .blend/config.json. Returns the path if found, or empty string if not.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".blend", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root, not found
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and
// deduplicated. MinSampleSize never drops below MinSampleFloor.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.MinSampleSize = overlay.MinSampleSize
	if result.MinSampleSize == 0 {
		result.MinSampleSize = base.MinSampleSize
	}
	if result.MinSampleSize < MinSampleFloor {
		result.MinSampleSize = MinSampleFloor
	}

	result.MinPatternPosts = overlay.MinPatternPosts
	if result.MinPatternPosts == 0 {
		result.MinPatternPosts = base.MinPatternPosts
	}

	result.MaxPatternsPerCategory = overlay.MaxPatternsPerCategory
	if result.MaxPatternsPerCategory == 0 {
		result.MaxPatternsPerCategory = base.MaxPatternsPerCategory
	}

	result.GenBaseURL = overlay.GenBaseURL
	if result.GenBaseURL == "" {
		result.GenBaseURL = base.GenBaseURL
	}

	result.GenModel = overlay.GenModel
	if result.GenModel == "" {
		result.GenModel = base.GenModel
	}

	result.GenFallbackModel = overlay.GenFallbackModel
	if result.GenFallbackModel == "" {
		result.GenFallbackModel = base.GenFallbackModel
	}

	result.GenMaxTokens = overlay.GenMaxTokens
	if result.GenMaxTokens == 0 {
		result.GenMaxTokens = base.GenMaxTokens
	}

	result.GenTemperature = overlay.GenTemperature
	if result.GenTemperature == 0 {
		result.GenTemperature = base.GenTemperature
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
