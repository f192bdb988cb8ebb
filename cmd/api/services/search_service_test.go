package services

import (
	"encoding/json"
	"errors"
	"testing"

	"creative-radar/models"
	"creative-radar/pipeline"
)

func TestParsePlatforms(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{name: "omitted", raw: ``, want: nil},
		{name: "null", raw: `null`, want: nil},
		{name: "all", raw: `"all"`, want: nil},
		{name: "ALL mixed case", raw: `" All "`, want: nil},
		{name: "array", raw: `["youtube","meta_ads"]`, want: []string{"youtube", "meta_ads"}},
		{name: "empty array", raw: `[]`, want: []string{}},
		{name: "comma string", raw: `"youtube, vimeo ,"`, want: []string{"youtube", "vimeo"}},
		{name: "only commas", raw: `" , ,"`, wantErr: true},
		{name: "number", raw: `42`, wantErr: true},
		{name: "mixed array", raw: `["youtube", 1]`, wantErr: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := ParsePlatforms(json.RawMessage(testCase.raw))
			if testCase.wantErr {
				var verr *pipeline.ValidationError
				if !errors.As(err, &verr) || verr.Field != "platforms" {
					t.Fatalf("expected platforms validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(testCase.want) || (got == nil) != (testCase.want == nil) {
				t.Fatalf("expected %#v, got %#v", testCase.want, got)
			}
			for i := range got {
				if got[i] != testCase.want[i] {
					t.Fatalf("expected %v, got %v", testCase.want, got)
				}
			}
		})
	}
}

func TestMapSearchRecordBrokenPlan(t *testing.T) {
	item := mapSearchRecord(models.SearchRecord{ID: "s1", Brief: "b", QueryPlan: "{broken"})
	if item.QueryPlan != nil {
		t.Fatalf("expected nil plan for broken payload, got %+v", item.QueryPlan)
	}
	if item.Providers == nil {
		t.Fatalf("providers must serialize as an empty list")
	}
}
