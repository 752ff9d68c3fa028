// Package classifier defines the LLM classification contract used by the
// query router. Implementations return the model's raw text; the router owns
// carving a JSON decision out of it and falling back when that fails.
package classifier

import "context"

// Classifier produces a free-form classification response for a query. The
// returned text is expected, but not guaranteed, to contain a JSON object
// describing the routing decision.
type Classifier interface {
	Classify(ctx context.Context, instructions, query string) (string, error)
}

// Func adapts a plain function to the Classifier interface.
type Func func(ctx context.Context, instructions, query string) (string, error)

// Classify implements Classifier.
func (f Func) Classify(ctx context.Context, instructions, query string) (string, error) {
	return f(ctx, instructions, query)
}
