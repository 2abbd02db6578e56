package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var qualifyNames = []string{
	"author", "author:name", "author:email",
	"authors", "authors:each", "authors:each:name", "authors:each:email",
	"pages", "pages:count", "pages:each",
	"title", "url",
	"blogtags", "blogtags:digg",
}

func TestQualify(t *testing.T) {
	tests := []struct {
		name     string
		stack    []string
		tag      string
		expected string
		found    bool
	}{
		{name: "top level", tag: "author", expected: "author", found: true},
		{name: "nested exact", stack: []string{"author"}, tag: "name", expected: "author:name", found: true},
		{name: "deep exact", stack: []string{"authors", "each"}, tag: "name", expected: "authors:each:name", found: true},
		{name: "global inside loop", stack: []string{"pages", "each"}, tag: "title", expected: "title", found: true},
		{name: "global inside bookmark", stack: []string{"blogtags", "digg"}, tag: "url", expected: "url", found: true},
		{
			name:     "closest author wins",
			stack:    []string{"authors", "each", "pages", "each"},
			tag:      "name",
			expected: "authors:each:name",
			found:    true,
		},
		{
			name:     "author scope inside loop",
			stack:    []string{"pages", "each", "author"},
			tag:      "email",
			expected: "author:email",
			found:    true,
		},
		{name: "orphan each", tag: "each", expected: "each", found: false},
		{name: "orphan name", tag: "name", expected: "name", found: false},
		{name: "unknown", stack: []string{"author"}, tag: "nope", expected: "nope", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Qualify(tt.stack, tt.tag, qualifyNames)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSpecificity(t *testing.T) {
	assert.InDelta(t, 1.0, specificity("title", []string{"pages", "each", "title"}), 1e-9)
	assert.InDelta(t, 1.11, specificity("authors:each:name", []string{"authors", "each", "name"}), 1e-9)
	assert.Zero(t, specificity("author:name", []string{"authors", "each", "name"}))
	assert.Zero(t, specificity("author:name", []string{"author", "email"}))
}
