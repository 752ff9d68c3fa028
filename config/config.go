// Package config loads runtime configuration from an optional YAML file,
// a .env file and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ClassifierConfig selects and tunes the routing classifier.
type ClassifierConfig struct {
	// Provider is openai or anthropic.
	Provider string `yaml:"provider"`
	// Model overrides the provider's default classification model.
	Model string `yaml:"model"`
}

// Config is the full runtime configuration.
type Config struct {
	// OpenAIAPIKey comes from the environment only, never from the file.
	OpenAIAPIKey string `yaml:"-"`
	// AnthropicAPIKey comes from the environment only.
	AnthropicAPIKey string `yaml:"-"`

	// AgentModel is the deployment used for provisioned agents.
	AgentModel string `yaml:"agent_model"`
	// AgentIDsFile is where resolved agent ids are persisted.
	AgentIDsFile string `yaml:"agent_ids_file"`
	// CodeInterpreterFileIDs are pre-uploaded document ids attached to
	// every provisioned agent.
	CodeInterpreterFileIDs []string `yaml:"code_interpreter_file_ids"`

	Classifier ClassifierConfig `yaml:"classifier"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		AgentModel:   "gpt-4o",
		AgentIDsFile: "agent_ids.json",
		Classifier:   ClassifierConfig{Provider: "openai"},
		Server:       ServerConfig{Host: "0.0.0.0", Port: 8080},
		Log:          LogConfig{Level: "info", Format: "json"},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (when
// given), then .env, then process environment variables. A missing YAML file
// is an error only when a path was explicitly provided.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// .env is optional and never overrides variables already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&c.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	setString(&c.AgentModel, "PAYROUTER_AGENT_MODEL")
	setString(&c.AgentIDsFile, "PAYROUTER_AGENT_IDS_FILE")
	setString(&c.Classifier.Provider, "PAYROUTER_CLASSIFIER_PROVIDER")
	setString(&c.Classifier.Model, "PAYROUTER_CLASSIFIER_MODEL")
	setString(&c.Server.Host, "PAYROUTER_HOST")
	setString(&c.Log.Level, "PAYROUTER_LOG_LEVEL")
	setString(&c.Log.Format, "PAYROUTER_LOG_FORMAT")

	if v, ok := os.LookupEnv("PAYROUTER_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

// Validate checks the configuration for a runnable setup.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}
	switch c.Classifier.Provider {
	case "openai":
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return errors.New("ANTHROPIC_API_KEY is required for the anthropic classifier")
		}
	default:
		return fmt.Errorf("unknown classifier provider %q", c.Classifier.Provider)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
