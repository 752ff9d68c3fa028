// Package anthropic implements the classifier contract using the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hupe1980/payrouter/classifier"
)

// Options configure the Anthropic classifier adapter (model id, max tokens,
// temperature, API key).
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Classifier wraps the Anthropic Messages API behind the generic
// classifier.Classifier interface.
type Classifier struct {
	client *anthropic.Client
	opts   Options
}

// New creates a new Anthropic classifier using the official client.
func New(optFns ...func(o *Options)) *Classifier {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.1,
		MaxTokens:   512,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Classifier{client: &client, opts: opts}
}

// NewFromClient creates a new Anthropic classifier from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Classifier {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.1,
		MaxTokens:   512,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Classifier{client: client, opts: opts}
}

var _ classifier.Classifier = (*Classifier)(nil)

// Classify sends the instructions as the system blocks and the query as the
// user turn, returning the concatenated text blocks of the response.
func (c *Classifier) Classify(ctx context.Context, instructions, query string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.opts.Model,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: anthropic.Float(c.opts.Temperature),
		System:      []anthropic.TextBlockParam{{Text: instructions}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(query)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic api error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	return sb.String(), nil
}
