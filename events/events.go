package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	SearchCompleted EventType = "search.completed"
	SearchDeleted   EventType = "search.deleted"
)

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"` // "api", "radarctl"
	Version   string    `json:"version"`
}

func NewBaseEvent(t EventType, source string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		Source:    source,
		Version:   "1",
	}
}

// ProviderStatus 는 검색 1건에서 프로바이더별 수집 결과 요약이다.
type ProviderStatus struct {
	Provider string `json:"provider"`
	Status   string `json:"status"`
	Results  int    `json:"results"`
	Error    string `json:"error,omitempty"`
}

// SearchCompletedEvent 검색 결과 저장 완료 이벤트
type SearchCompletedEvent struct {
	BaseEvent
	SearchID    string           `json:"search_id"`
	Brief       string           `json:"brief"`
	ResultCount int              `json:"result_count"`
	Providers   []ProviderStatus `json:"providers"`
}

// SearchDeletedEvent 검색 기록 삭제 이벤트
type SearchDeletedEvent struct {
	BaseEvent
	SearchID string `json:"search_id"`
}

// SerializeEvent 이벤트를 JSON으로 직렬화하고 타입 정보 반환
func SerializeEvent(event interface{}) ([]byte, EventType, error) {
	var eventType EventType

	switch e := event.(type) {
	case SearchCompletedEvent:
		eventType = e.Type
	case SearchDeletedEvent:
		eventType = e.Type
	default:
		return nil, "", fmt.Errorf("unknown event type: %T", event)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal event: %w", err)
	}

	return data, eventType, nil
}

// DeserializeEvent 이벤트 타입에 따라 적절한 구조체로 역직렬화
func DeserializeEvent(eventType EventType, data []byte) (interface{}, error) {
	var event interface{}

	switch eventType {
	case SearchCompleted:
		event = &SearchCompletedEvent{}
	case SearchDeleted:
		event = &SearchDeletedEvent{}
	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	if err := json.Unmarshal(data, event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return event, nil
}
