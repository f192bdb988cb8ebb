package llm

import (
	"context"
	"errors"
	"sync"
	"time"

	"creative-radar/config"
)

// ErrQuotaExceeded 는 일일 호출 한도를 모두 사용했을 때 반환된다.
// 플래너와 스코어러는 이를 일반 백엔드 실패처럼 취급해 대체 경로로 내려간다.
var ErrQuotaExceeded = errors.New("llm: daily request quota exceeded")

// QuotaLimiter 는 LLM 호출에 대한 분당/일일 한도를 관리한다.
// 인메모리로 동작하며 프로세스가 재시작되면 카운터가 초기화된다.
type QuotaLimiter struct {
	mu sync.Mutex

	dailyLimit int
	usedToday  int
	dayKey     string

	interval time.Duration
	lastCall time.Time

	now func() time.Time
}

// NewQuotaLimiter 는 0 이하의 값을 해당 방향의 제한 없음으로 해석한다.
func NewQuotaLimiter(cfg config.LLMQuotaConfig) *QuotaLimiter {
	var interval time.Duration
	if cfg.RequestsPerMinute > 0 {
		interval = time.Minute / time.Duration(cfg.RequestsPerMinute)
	}
	daily := cfg.RequestsPerDay
	if daily < 0 {
		daily = 0
	}
	return &QuotaLimiter{dailyLimit: daily, interval: interval, now: time.Now}
}

// WaitAndReserve 는 호출 전에 한도를 적용한다.
// 일일 한도 초과 시 (false, nil), 컨텍스트 취소 시 (false, ctx.Err()) 를 반환한다.
func (l *QuotaLimiter) WaitAndReserve(ctx context.Context) (bool, error) {
	for {
		l.mu.Lock()

		now := l.now().UTC()
		todayKey := now.Format("2006-01-02")
		if l.dayKey != todayKey {
			l.dayKey = todayKey
			l.usedToday = 0
		}

		if l.dailyLimit > 0 && l.usedToday >= l.dailyLimit {
			l.mu.Unlock()
			return false, nil
		}

		var delay time.Duration
		if l.interval > 0 && !l.lastCall.IsZero() {
			delay = l.lastCall.Add(l.interval).Sub(now)
		}

		if delay <= 0 {
			l.usedToday++
			l.lastCall = now
			l.mu.Unlock()
			return true, nil
		}

		l.mu.Unlock()
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return false, ctx.Err()
		}
	}
}

// Limited 는 QuotaLimiter 를 거쳐 내부 Generator 를 호출한다.
type Limited struct {
	next    Generator
	limiter *QuotaLimiter
}

// WithQuota 는 한도가 하나도 설정되지 않았으면 next 를 그대로 반환한다.
func WithQuota(next Generator, cfg config.LLMQuotaConfig) Generator {
	if next == nil || (cfg.RequestsPerDay <= 0 && cfg.RequestsPerMinute <= 0) {
		return next
	}
	return &Limited{next: next, limiter: NewQuotaLimiter(cfg)}
}

func (g *Limited) Generate(ctx context.Context, req Request) (*Response, error) {
	allowed, err := g.limiter.WaitAndReserve(ctx)
	if err != nil {
		return nil, err
	}
	if !allowed {
		config.Logger.Warn("[llm] daily quota exhausted, skipping model call")
		return nil, ErrQuotaExceeded
	}
	return g.next.Generate(ctx, req)
}
