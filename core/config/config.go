package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrMissingCredential = errors.New("missing credential")

// Issue tracker backends.
const (
	TrackerGitHubMCP = "github-mcp"
	TrackerGitHub    = "github"
	TrackerGitLab    = "gitlab"
)

const (
	DefaultGitHubMCPURL = "https://api.githubcopilot.com/mcp/"

	githubTokenHint    = "https://github.com/settings/tokens"
	gitlabTokenHint    = "https://gitlab.com/-/user_settings/personal_access_tokens"
	openAIKeyHint      = "https://platform.openai.com/account/api-keys"
	anthropicKeyHint   = "https://console.anthropic.com/settings/keys"
	defaultMaxTokens   = 16384
	defaultMaxAgentIts = 40
)

type Config struct {
	Tracker     TrackerConfig
	OpenAI      APIConfig
	Anthropic   APIConfig
	SynthLLM    LLMConfig
	EditorLLM   LLMConfig
	OTel        OTelConfig
	Prompts     Prompts
	Env         string
	Port        string
	LogLevel    string
	DebugDir    string
	Output      string
	PromptsFile string
}

type TrackerConfig struct {
	Kind          string // "github-mcp", "github" or "gitlab"
	GitHubToken   string
	GitHubMCPURL  string
	GitLabToken   string
	GitLabBaseURL string // Optional: self-hosted GitLab
}

type APIConfig struct {
	APIKey  string
	BaseURL string
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type LLMConfig struct {
	Provider        string // "openai" or "anthropic"
	APIKey          string
	BaseURL         string // Optional: for custom endpoints
	Model           string
	MaxTokens       int
	MaxIterations   int      // Agent loop cap; unused by single-shot stages
	ReasoningEffort string   // Optional: "low", "medium", "high" for reasoning models
	Temperature     *float64 // nil = model default
}

type ServiceType string

const (
	ServiceTypeCLI    ServiceType = "cli"
	ServiceTypeServer ServiceType = "server"
)

// Load loads configuration from environment variables.
// In development, it loads from service-specific .env files:
//   - .env.cli for the command line tool
//   - .env.server for the HTTP server
//
// Falls back to .env if service-specific file doesn't exist. Variables already set in
// the environment win over file values.
func Load(serviceType ServiceType) (Config, error) {
	if getEnv("RELEASENOTES_ENV", "development") == "development" {
		envFile := fmt.Sprintf(".env.%s", serviceType)
		if err := godotenv.Load(envFile); err != nil {
			_ = godotenv.Load(".env")
		}
	}

	openAI := APIConfig{
		APIKey:  getEnv("OPENAI_API_KEY", ""),
		BaseURL: getEnv("OPENAI_BASE_URL", ""),
	}
	anthropic := APIConfig{
		APIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		BaseURL: getEnv("ANTHROPIC_BASE_URL", ""),
	}

	synthProvider := strings.ToLower(getEnv("SYNTH_LLM_PROVIDER", "openai"))
	synthAPI := openAI
	if synthProvider == "anthropic" {
		synthAPI = anthropic
	}

	cfg := Config{
		Env:         getEnv("RELEASENOTES_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", ""),
		DebugDir:    getEnv("DEBUG_DIR", ""),
		Output:      getEnv("RELEASENOTES_OUTPUT", ""),
		PromptsFile: getEnv("PROMPTS_FILE", ""),
		Tracker: TrackerConfig{
			Kind:          strings.ToLower(getEnv("ISSUE_TRACKER", TrackerGitHubMCP)),
			GitHubToken:   getEnv("GITHUB_TOKEN", ""),
			GitHubMCPURL:  getEnv("GITHUB_MCP_URL", DefaultGitHubMCPURL),
			GitLabToken:   getEnv("GITLAB_TOKEN", ""),
			GitLabBaseURL: getEnv("GITLAB_BASE_URL", ""),
		},
		OpenAI:    openAI,
		Anthropic: anthropic,
		SynthLLM: LLMConfig{
			Provider:        synthProvider,
			APIKey:          synthAPI.APIKey,
			BaseURL:         synthAPI.BaseURL,
			Model:           getEnv("SYNTH_LLM_MODEL", defaultSynthModel(synthProvider)),
			MaxTokens:       getEnvInt("SYNTH_LLM_MAX_TOKENS", defaultMaxTokens),
			MaxIterations:   getEnvInt("SYNTH_LLM_MAX_ITERATIONS", defaultMaxAgentIts),
			ReasoningEffort: getEnv("SYNTH_LLM_REASONING_EFFORT", ""),
		},
		// The editor relies on strict JSON-schema output, which only the OpenAI client offers.
		EditorLLM: LLMConfig{
			Provider:        "openai",
			APIKey:          openAI.APIKey,
			BaseURL:         openAI.BaseURL,
			Model:           getEnv("EDITOR_LLM_MODEL", "gpt-5"),
			MaxTokens:       getEnvInt("EDITOR_LLM_MAX_TOKENS", defaultMaxTokens),
			ReasoningEffort: getEnv("EDITOR_LLM_REASONING_EFFORT", ""),
		},
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "releasenotes"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
	}

	switch cfg.Tracker.Kind {
	case TrackerGitHubMCP, TrackerGitHub, TrackerGitLab:
	default:
		return Config{}, fmt.Errorf("unsupported ISSUE_TRACKER %q: use %s, %s or %s",
			cfg.Tracker.Kind, TrackerGitHubMCP, TrackerGitHub, TrackerGitLab)
	}

	if cfg.SynthLLM.Provider != "openai" && cfg.SynthLLM.Provider != "anthropic" {
		return Config{}, fmt.Errorf("unsupported SYNTH_LLM_PROVIDER %q: use openai or anthropic", cfg.SynthLLM.Provider)
	}

	if cfg.SynthLLM.MaxIterations <= 0 {
		return Config{}, fmt.Errorf("SYNTH_LLM_MAX_ITERATIONS must be positive, got %d", cfg.SynthLLM.MaxIterations)
	}

	var err error
	if cfg.SynthLLM.Temperature, err = getEnvFloat("SYNTH_LLM_TEMPERATURE"); err != nil {
		return Config{}, err
	}
	if cfg.EditorLLM.Temperature, err = getEnvFloat("EDITOR_LLM_TEMPERATURE"); err != nil {
		return Config{}, err
	}

	prompts, err := LoadPrompts(cfg.PromptsFile)
	if err != nil {
		return Config{}, err
	}
	cfg.Prompts = prompts

	return cfg, nil
}

// Preflight verifies that every credential a run needs is present, before any network
// activity. The editor credential is only required when the editor will run.
func (c Config) Preflight(useEditor bool) error {
	switch c.Tracker.Kind {
	case TrackerGitLab:
		if c.Tracker.GitLabToken == "" {
			return missing("GITLAB_TOKEN", gitlabTokenHint)
		}
	default:
		if c.Tracker.GitHubToken == "" {
			return missing("GITHUB_TOKEN", githubTokenHint)
		}
	}

	if c.SynthLLM.APIKey == "" {
		if c.SynthLLM.Provider == "anthropic" {
			return missing("ANTHROPIC_API_KEY", anthropicKeyHint)
		}
		return missing("OPENAI_API_KEY", openAIKeyHint)
	}

	if useEditor && c.EditorLLM.APIKey == "" {
		return missing("OPENAI_API_KEY", openAIKeyHint)
	}

	return nil
}

func missing(name, hint string) error {
	return fmt.Errorf("%w: %s environment variable is required. Get one at %s", ErrMissingCredential, name, hint)
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c LLMConfig) Enabled() bool {
	return c.APIKey != "" && (c.Provider == "openai" || c.Provider == "anthropic")
}

func defaultSynthModel(provider string) string {
	if provider == "anthropic" {
		return "claude-sonnet-4-5"
	}
	return "gpt-5"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvFloat returns nil when key is unset or empty.
func getEnvFloat(key string) (*float64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number, got %q", key, value)
	}
	return &f, nil
}
