package llm

import (
	"strings"
	"testing"
)

func TestExtractObject(t *testing.T) {
	testCases := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{name: "raw json", text: `{"a":1}`, want: `{"a":1}`, wantOK: true},
		{name: "markdown fence", text: "```json\n{\"a\":{\"b\":[1,2]}}\n```", want: `{"a":{"b":[1,2]}}`, wantOK: true},
		{name: "prose around", text: `Here you go: {"a":"}"} hope it helps {"b":2}`, want: `{"a":"}"}`, wantOK: true},
		{name: "skips broken prefix", text: `{oops {"a":1}`, want: `{"a":1}`, wantOK: true},
		{name: "no object", text: `sorry, I cannot help`, wantOK: false},
		{name: "truncated", text: `{"a":[1,2`, wantOK: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got, ok := ExtractObject(testCase.text)
			if ok != testCase.wantOK {
				t.Fatalf("expected ok=%v, got %v", testCase.wantOK, ok)
			}
			if ok && string(got) != testCase.want {
				t.Fatalf("expected %s, got %s", testCase.want, got)
			}
		})
	}
}

func TestExtractArray(t *testing.T) {
	text := "Scores:\n```\n[{\"index\":0,\"tags\":[\"x\"]}]\n```"
	got, ok := ExtractArray(text)
	if !ok {
		t.Fatalf("expected array to be found")
	}
	if string(got) != `[{"index":0,"tags":["x"]}]` {
		t.Fatalf("unexpected array %s", got)
	}

	if _, ok := ExtractArray(`{"index":0}`); ok {
		t.Fatalf("object must not be returned as array")
	}
}

func TestExtractArrayFuncSkipsRejectedCandidates(t *testing.T) {
	text := "Scores use the range [0, 1].\n```json\n[{\"index\":0,\"relevance_score\":0.9,\"analysis\":\"ok\",\"tags\":[]}]\n```"

	if got, _ := ExtractArray(text); string(got) != `[0, 1]` {
		t.Fatalf("plain extraction should return the first array, got %s", got)
	}

	got, ok := ExtractArrayFunc(text, DecodesInto[[]map[string]any])
	if !ok {
		t.Fatalf("expected fenced array to be found")
	}
	if !strings.HasPrefix(string(got), `[{"index":0`) {
		t.Fatalf("unexpected array %s", got)
	}

	if _, ok := ExtractArrayFunc("only [1, 2] and [3]", DecodesInto[[]map[string]any]); ok {
		t.Fatalf("expected no acceptable array")
	}
}

func TestExtractObjectFunc(t *testing.T) {
	type plan struct {
		Criteria string `json:"scoring_criteria"`
	}
	text := `Example: {"scoring_criteria": 3} Final: {"scoring_criteria": "mood"}`

	got, ok := ExtractObjectFunc(text, DecodesInto[plan])
	if !ok {
		t.Fatalf("expected object to be found")
	}
	if string(got) != `{"scoring_criteria": "mood"}` {
		t.Fatalf("unexpected object %s", got)
	}
}
