package eventbus

import (
	"testing"

	"creative-radar/config"
)

func TestJSONEventRoundTrip(t *testing.T) {
	type payload struct {
		SearchID string `json:"search_id"`
	}
	evt, err := NewJSONEvent("", "search.completed", payload{SearchID: "abc"})
	if err != nil {
		t.Fatalf("new event: %v", err)
	}
	if evt.ID == "" {
		t.Fatalf("expected generated id")
	}
	got, err := DecodeJSON[payload](evt)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.SearchID != "abc" {
		t.Fatalf("expected abc, got %s", got.SearchID)
	}
}

func TestBrokersRequired(t *testing.T) {
	if _, err := Brokers(config.Secrets{}); err != ErrNoBrokers {
		t.Fatalf("expected ErrNoBrokers, got %v", err)
	}
	if b, err := Brokers(config.Secrets{KafkaBrokers: " kafka:9092 "}); err != nil || b != "kafka:9092" {
		t.Fatalf("unexpected brokers %q %v", b, err)
	}
}

func TestSearchEventsTopicDefault(t *testing.T) {
	if got := SearchEventsTopic(config.EventsConfig{}).Base(); got != "creative-radar.search.events" {
		t.Fatalf("unexpected topic %s", got)
	}
}
