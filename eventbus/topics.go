package eventbus

import "creative-radar/config"

// SearchEventsTopic 은 events.topic 설정으로 검색 이벤트 토픽을 만듭니다.
func SearchEventsTopic(cfg config.EventsConfig) Topic {
	if cfg.Topic == "" {
		return NewTopic("creative-radar.search.events")
	}
	return NewTopic(cfg.Topic)
}
