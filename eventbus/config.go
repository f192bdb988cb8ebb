package eventbus

import (
	"strings"

	"creative-radar/config"
)

// Brokers 는 KAFKA_BOOTSTRAP_SERVERS 로 지정된 브로커 목록을 반환합니다.
func Brokers(secrets config.Secrets) (string, error) {
	v := strings.TrimSpace(secrets.KafkaBrokers)
	if v == "" {
		return "", ErrNoBrokers
	}
	return v, nil
}
