package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCarve(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "bare object",
			input: `{"primary_agent":"analytics"}`,
			want:  `{"primary_agent":"analytics"}`,
			ok:    true,
		},
		{
			name:  "object wrapped in prose",
			input: "Sure! Here is the decision:\n{\"primary_agent\": \"pay_calculation\"}\nLet me know.",
			want:  `{"primary_agent": "pay_calculation"}`,
			ok:    true,
		},
		{
			name:  "code fenced object",
			input: "```json\n{\"confidence\": 0.9}\n```",
			want:  `{"confidence": 0.9}`,
			ok:    true,
		},
		{
			name:  "no braces",
			input: "I cannot answer that.",
			ok:    false,
		},
		{
			name:  "unbalanced braces",
			input: `{"primary_agent": "analytics"`,
			ok:    false,
		},
		{
			name:  "closing brace before opening",
			input: `} nonsense {`,
			ok:    false,
		},
		{
			name:  "invalid json between braces",
			input: "{this is not json}",
			ok:    false,
		},
		{
			name: "empty input",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Carve(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCarveObject(t *testing.T) {
	obj, ok := CarveObject("prefix {\"primary_agent\":\"analytics\",\"confidence\":0.8} suffix")
	assert.True(t, ok)
	assert.Equal(t, "analytics", obj.Get("primary_agent").String())
	assert.InDelta(t, 0.8, obj.Get("confidence").Float(), 1e-9)

	// A top-level array is not a decision object.
	_, ok = CarveObject(`[{"primary_agent":"analytics"}]`)
	assert.True(t, ok) // carve finds the inner object braces
}

func TestCarveObjectRejectsNonObject(t *testing.T) {
	_, ok := CarveObject("no json here")
	assert.False(t, ok)
}
