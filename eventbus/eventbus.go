package eventbus

import (
	"context"
	"encoding/json"
	"errors"
)

// Topic 은 토픽의 기본 이름을 관리합니다.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// Event는 Kafka 메시지의 페이로드로 사용되는 구조체입니다.
type Event struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// EventHandler는 이벤트 처리 함수의 시그니처입니다.
type EventHandler func(ctx context.Context, event Event) error

// Publisher 는 파이프라인이 의존하는 발행 측 추상화입니다.
type Publisher interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close()
}

// EventBus 인터페이스는 이벤트 발행 및 구독의 추상화를 정의합니다.
type EventBus interface {
	Publisher
	// Subscribe 는 ctx 가 취소될 때까지 토픽을 구독하며 handler 를 실행합니다.
	Subscribe(ctx context.Context, groupID string, topic Topic, handler EventHandler) error
}

// ErrNoBrokers 는 브로커 주소 없이 이벤트 버스를 만들려 할 때 반환됩니다.
var ErrNoBrokers = errors.New("KAFKA_BOOTSTRAP_SERVERS is not set")
