package parsers

import (
	"errors"
	"strings"
)

// ErrNoJSONObject means no JSON object could be located in the text.
var ErrNoJSONObject = errors.New("no JSON object found in model output")

// ExtractJSONObject slices the outermost JSON object out of model
// output, tolerating prose or markdown fences around it.
func ExtractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSONObject
	}
	return text[start : end+1], nil
}
