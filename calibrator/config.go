package calibrator

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"yashubustudio/calibrator/generate"
)

const (
	defaultConfigFile = "config.json"
	envPrefix         = "CALIBRATOR"
)

// HostedConfig configures the OpenAI-compatible backend.
type HostedConfig struct {
	APIKey            string  `json:"apiKey,omitempty" mapstructure:"apiKey"`
	BaseURL           string  `json:"baseUrl" mapstructure:"baseUrl"`
	Model             string  `json:"model" mapstructure:"model"`
	Temperature       float32 `json:"temperature" mapstructure:"temperature"`
	RequestsPerSecond float64 `json:"requestsPerSecond" mapstructure:"requestsPerSecond"`
	Burst             int     `json:"burst" mapstructure:"burst"`
}

// LocalConfig configures the on-device ONNX model.
type LocalConfig struct {
	Enabled           bool   `json:"enabled" mapstructure:"enabled"`
	OrtLibrary        string `json:"ortLibrary" mapstructure:"ortLibrary"`
	ModelPath         string `json:"modelPath" mapstructure:"modelPath"`
	TokenizerPath     string `json:"tokenizerPath" mapstructure:"tokenizerPath"`
	ContextSize       int    `json:"contextSize" mapstructure:"contextSize"`
	EOSTokenID        int    `json:"eosTokenId" mapstructure:"eosTokenId"`
	NoRepeatNgram     int    `json:"noRepeatNgram" mapstructure:"noRepeatNgram"`
	InputIDsName      string `json:"inputIdsName" mapstructure:"inputIdsName"`
	AttentionMaskName string `json:"attentionMaskName" mapstructure:"attentionMaskName"`
	LogitsName        string `json:"logitsName" mapstructure:"logitsName"`
}

// CorpusConfig points at an optional corpus file replacing the built-in one.
type CorpusConfig struct {
	Path      string        `json:"path" mapstructure:"path"`
	StrictIDs bool          `json:"strictIds" mapstructure:"strictIds"`
	Columns   ColumnsConfig `json:"columns" mapstructure:"columns"`
}

// ColumnsConfig selects the columns of CSV/TSV corpus files. Columns are
// header names or 1-based "#n" positions. The text candidates also find the
// statement column of statement files.
type ColumnsConfig struct {
	ID         string           `json:"id" mapstructure:"id"`
	Text       string           `json:"text" mapstructure:"text"`
	Value      string           `json:"value" mapstructure:"value"`
	Kind       string           `json:"kind" mapstructure:"kind"`
	Delimiter  string           `json:"delimiter" mapstructure:"delimiter"`
	Header     string           `json:"header" mapstructure:"header"`
	Candidates ColumnCandidates `json:"candidates" mapstructure:"candidates"`
}

// ParseOptions converts the column settings for the loaders.
func (c ColumnsConfig) ParseOptions() (ParseOptions, error) {
	delim, err := ParseDelimiter(c.Delimiter)
	if err != nil {
		return ParseOptions{}, err
	}
	header, err := ParseHeaderMode(c.Header)
	if err != nil {
		return ParseOptions{}, err
	}
	return ParseOptions{
		IDColumn:    c.ID,
		TextColumn:  c.Text,
		ValueColumn: c.Value,
		KindColumn:  c.Kind,
		Candidates:  c.Candidates,
		Delimiter:   delim,
		Header:      header,
	}, nil
}

// ReferenceMapConfig points at an optional reference-map file.
type ReferenceMapConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// PipelineConfig tunes stage behaviour.
type PipelineConfig struct {
	// EarlyReferenceMap ends the run at the reference map right after the
	// suggestion stage instead of trying keyword expansion first.
	EarlyReferenceMap    bool    `json:"earlyReferenceMap" mapstructure:"earlyReferenceMap"`
	SuggestionConfidence float64 `json:"suggestionConfidence" mapstructure:"suggestionConfidence"`
	// AlignmentUsesLocal lets the local model judge alignment; by default
	// only the hosted model does.
	AlignmentUsesLocal bool `json:"alignmentUsesLocal" mapstructure:"alignmentUsesLocal"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `json:"level" mapstructure:"level"`
}

// Config aggregates runtime settings persisted to config.json.
type Config struct {
	Hosted         HostedConfig       `json:"hosted" mapstructure:"hosted"`
	Local          LocalConfig        `json:"local" mapstructure:"local"`
	TimeoutSeconds int                `json:"timeoutSeconds" mapstructure:"timeoutSeconds"`
	Corpus         CorpusConfig       `json:"corpus" mapstructure:"corpus"`
	ReferenceMap   ReferenceMapConfig `json:"referenceMap" mapstructure:"referenceMap"`
	Pipeline       PipelineConfig     `json:"pipeline" mapstructure:"pipeline"`
	Log            LogConfig          `json:"log" mapstructure:"log"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// Clone creates a deep copy of the configuration so callers can mutate safely.
func (c Config) Clone() Config {
	buf, _ := json.Marshal(c)
	var out Config
	_ = json.Unmarshal(buf, &out)
	return out
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Hosted.BaseURL == "" {
		c.Hosted.BaseURL = "https://api.openai.com/v1"
	}
	if c.Hosted.Model == "" {
		c.Hosted.Model = "gpt-3.5-turbo-instruct"
	}
	if c.Hosted.Temperature == 0 {
		c.Hosted.Temperature = 0.25
	}
	if c.Hosted.Burst <= 0 {
		c.Hosted.Burst = 1
	}
	if c.Local.ContextSize <= 0 {
		c.Local.ContextSize = 1024
	}
	if c.Local.EOSTokenID == 0 {
		c.Local.EOSTokenID = 50256
	}
	if c.Local.NoRepeatNgram == 0 {
		c.Local.NoRepeatNgram = 2
	}
	if c.Local.InputIDsName == "" {
		c.Local.InputIDsName = "input_ids"
	}
	if c.Local.LogitsName == "" {
		c.Local.LogitsName = "logits"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.Pipeline.SuggestionConfidence <= 0 {
		c.Pipeline.SuggestionConfidence = 0.6
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Corpus.Columns.Header == "" {
		c.Corpus.Columns.Header = string(HeaderAuto)
	}
	c.Corpus.Columns.Candidates = c.Corpus.Columns.Candidates.withDefaults()
}

// Timeout is the per-call limit for text generation.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HostedBackend converts the hosted section for the generate package.
func (c Config) HostedBackend() generate.HostedConfig {
	return generate.HostedConfig{
		APIKey:            c.Hosted.APIKey,
		BaseURL:           c.Hosted.BaseURL,
		Model:             c.Hosted.Model,
		Temperature:       c.Hosted.Temperature,
		RequestsPerSecond: c.Hosted.RequestsPerSecond,
		Burst:             c.Hosted.Burst,
	}
}

// LocalBackend converts the local section for the generate package.
func (c Config) LocalBackend() generate.LocalConfig {
	return generate.LocalConfig{
		Enabled:           c.Local.Enabled,
		ORTLibrary:        c.Local.OrtLibrary,
		ModelPath:         c.Local.ModelPath,
		TokenizerPath:     c.Local.TokenizerPath,
		ContextSize:       c.Local.ContextSize,
		EOSTokenID:        c.Local.EOSTokenID,
		NoRepeatNgram:     c.Local.NoRepeatNgram,
		InputIDsName:      c.Local.InputIDsName,
		AttentionMaskName: c.Local.AttentionMaskName,
		LogitsName:        c.Local.LogitsName,
	}
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindings := map[string][]string{
		"hosted.apiKey":  {"CALIBRATOR_HOSTED_APIKEY", "OPENAI_API_KEY"},
		"hosted.baseUrl": {"CALIBRATOR_HOSTED_BASEURL", "OPENAI_API_BASE"},
		"hosted.model":   {"CALIBRATOR_HOSTED_MODEL", "CALIBRATOR_OPENAI_MODEL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}
	defaults, err := flattenConfig(DefaultConfig())
	if err != nil {
		return nil, err
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v, nil
}

// flattenConfig lists cfg as dotted keys so every setting is known to viper
// and can be overridden from the environment.
func flattenConfig(cfg Config) (map[string]any, error) {
	buf, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode defaults: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(buf, &tree); err != nil {
		return nil, fmt.Errorf("decode defaults: %w", err)
	}
	out := make(map[string]any)
	var walk func(prefix string, node map[string]any)
	walk = func(prefix string, node map[string]any) {
		for k, v := range node {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if child, ok := v.(map[string]any); ok {
				walk(key, child)
				continue
			}
			out[key] = v
		}
	}
	walk("", tree)
	return out, nil
}

// LoadConfig loads configuration from the given path or the default
// config.json. A missing file yields defaults; CALIBRATOR_* variables and
// OPENAI_API_KEY / OPENAI_API_BASE override file values.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	v, err := newViper()
	if err != nil {
		return cfg, err
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("stat config: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration to disk.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
