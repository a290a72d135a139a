package parsers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"listloop-server/internal/ai/parsers"
)

func TestExtractJSONObject(t *testing.T) {
	t.Run("bare object", func(t *testing.T) {
		out, err := parsers.ExtractJSONObject(`{"title":"x"}`)
		assert.NoError(t, err)
		assert.Equal(t, `{"title":"x"}`, out)
	})

	t.Run("prose around the object", func(t *testing.T) {
		input := "Sure! Here is your plan:\n{\"title\":\"Party\",\"tasks\":[]}\nLet me know if you need more."
		out, err := parsers.ExtractJSONObject(input)
		assert.NoError(t, err)
		assert.Equal(t, `{"title":"Party","tasks":[]}`, out)
	})

	t.Run("markdown fences", func(t *testing.T) {
		input := "```json\n{\"title\":\"Trip\"}\n```"
		out, err := parsers.ExtractJSONObject(input)
		assert.NoError(t, err)
		assert.Equal(t, `{"title":"Trip"}`, out)
	})

	t.Run("nested braces stay intact", func(t *testing.T) {
		input := `prefix {"a":{"b":1}} suffix`
		out, err := parsers.ExtractJSONObject(input)
		assert.NoError(t, err)
		assert.Equal(t, `{"a":{"b":1}}`, out)
	})

	t.Run("no object at all", func(t *testing.T) {
		_, err := parsers.ExtractJSONObject("I could not produce a plan.")
		assert.ErrorIs(t, err, parsers.ErrNoJSONObject)
	})

	t.Run("mismatched delimiters", func(t *testing.T) {
		_, err := parsers.ExtractJSONObject("} nothing {")
		assert.ErrorIs(t, err, parsers.ErrNoJSONObject)
	})
}
