// Package openaichat implements the classifier contract using the OpenAI
// Chat Completions API.
package openaichat

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/hupe1980/payrouter/classifier"
)

// Options configure the OpenAI classifier adapter.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Classifier wraps the OpenAI Chat Completions API behind the generic
// classifier.Classifier interface.
type Classifier struct {
	client *openai.Client
	opts   Options
}

// New creates a new OpenAI classifier using the official client.
func New(optFns ...func(o *Options)) *Classifier {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a new OpenAI classifier from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Classifier {
	opts := Options{
		Model:               openai.ChatModelGPT4o,
		Temperature:         0.1,
		MaxCompletionTokens: 512,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Classifier{client: client, opts: opts}
}

var _ classifier.Classifier = (*Classifier)(nil)

// Classify sends the instructions as the system turn and the query as the
// user turn, returning the raw completion text.
func (c *Classifier) Classify(ctx context.Context, instructions, query string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.opts.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(instructions),
			openai.UserMessage(query),
		},
		Temperature:         openai.Float(c.opts.Temperature),
		MaxCompletionTokens: openai.Int(c.opts.MaxCompletionTokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
