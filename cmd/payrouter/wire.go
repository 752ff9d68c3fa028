package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/hupe1980/payrouter"
	"github.com/hupe1980/payrouter/classifier"
	anthropiccls "github.com/hupe1980/payrouter/classifier/anthropic"
	"github.com/hupe1980/payrouter/classifier/openaichat"
	"github.com/hupe1980/payrouter/config"
	"github.com/hupe1980/payrouter/definitions"
	"github.com/hupe1980/payrouter/executor"
	"github.com/hupe1980/payrouter/logging"
	"github.com/hupe1980/payrouter/registry"
	"github.com/hupe1980/payrouter/remote/openaiagents"
	"github.com/hupe1980/payrouter/router"
)

// buildApp loads configuration and wires the full orchestrator stack.
func buildApp() (*payrouter.Orchestrator, *config.Config, logging.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	logger := logging.New(&logging.Config{
		Level:  parseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})

	client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
	primary := openaiagents.NewFromClient(&client)

	directory := registry.NewBreakerDirectory(primary, func(o *registry.BreakerOptions) {
		o.Logger = logger
	})

	catalog := definitions.NewCatalog(func(o *definitions.Options) {
		o.Model = cfg.AgentModel
		o.CodeInterpreterFileIDs = cfg.CodeInterpreterFileIDs
	})

	reg := registry.New(directory, catalog, func(o *registry.Options) {
		o.Store = registry.NewFileStore(cfg.AgentIDsFile)
		o.Fallback = openaiagents.NewLowLevel(&client)
		o.Logger = logger
	})

	cls, err := buildClassifier(cfg, &client)
	if err != nil {
		return nil, nil, nil, err
	}
	rtr := router.New(cls, func(o *router.Options) {
		o.Logger = logger
	})

	exec := executor.New(primary, func(o *executor.Options) {
		o.Logger = logger
	})

	orch := payrouter.New(reg, rtr, exec, func(o *payrouter.Options) {
		o.Logger = logger
	})
	return orch, cfg, logger, nil
}

func buildClassifier(cfg *config.Config, client *openai.Client) (classifier.Classifier, error) {
	switch cfg.Classifier.Provider {
	case "openai":
		return openaichat.NewFromClient(client, func(o *openaichat.Options) {
			if cfg.Classifier.Model != "" {
				o.Model = cfg.Classifier.Model
			}
		}), nil
	case "anthropic":
		return anthropiccls.New(func(o *anthropiccls.Options) {
			o.APIKey = cfg.AnthropicAPIKey
			if cfg.Classifier.Model != "" {
				o.Model = anthropic.Model(cfg.Classifier.Model)
			}
		}), nil
	default:
		return nil, fmt.Errorf("unknown classifier provider %q", cfg.Classifier.Provider)
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
