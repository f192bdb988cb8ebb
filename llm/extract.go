package llm

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ExtractObject returns the first well-formed JSON object embedded in text.
// Models wrap JSON in prose or markdown fences even when told not to.
func ExtractObject(text string) (json.RawMessage, bool) {
	return extractFirst(text, '{', nil)
}

// ExtractArray returns the first well-formed JSON array embedded in text.
func ExtractArray(text string) (json.RawMessage, bool) {
	return extractFirst(text, '[', nil)
}

// ExtractObjectFunc is like ExtractObject but skips candidates accept rejects,
// so a stray "{x}" in the prose does not hide the real payload.
func ExtractObjectFunc(text string, accept func(json.RawMessage) bool) (json.RawMessage, bool) {
	return extractFirst(text, '{', accept)
}

// ExtractArrayFunc is like ExtractArray but skips candidates accept rejects,
// e.g. "range [0, 1]" ahead of the fenced result array.
func ExtractArrayFunc(text string, accept func(json.RawMessage) bool) (json.RawMessage, bool) {
	return extractFirst(text, '[', accept)
}

// DecodesInto reports whether raw unmarshals into a fresh T.
func DecodesInto[T any](raw json.RawMessage) bool {
	var v T
	return json.Unmarshal(raw, &v) == nil
}

func extractFirst(text string, open byte, accept func(json.RawMessage) bool) (json.RawMessage, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != open {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			continue
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != open {
			continue
		}
		if accept == nil || accept(raw) {
			return raw, true
		}
	}
	return nil, false
}
