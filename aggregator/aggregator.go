package aggregator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"creative-radar/config"
	"creative-radar/models"
	"creative-radar/providers"
)

type Status string

const (
	StatusFulfilled Status = "fulfilled"
	StatusRejected  Status = "rejected"
)

// ErrProviderTimeout 은 프로바이더가 제한 시간 안에 응답하지 못했음을 나타낸다.
var ErrProviderTimeout = errors.New("provider timed out")

// ProviderEnvelope 는 프로바이더 1개의 검색 결과 또는 실패 사유다.
type ProviderEnvelope struct {
	Provider string                    `json:"provider"`
	Results  []models.NormalizedResult `json:"results"`
	Status   Status                    `json:"status"`
	Error    string                    `json:"error,omitempty"`
}

// Aggregator 는 활성화된 프로바이더를 동시에 호출하고 결과를 프로바이더 순서대로 모은다.
type Aggregator struct {
	registry *providers.Registry
	timeout  time.Duration
}

func New(registry *providers.Registry, timeout time.Duration) *Aggregator {
	return &Aggregator{registry: registry, timeout: timeout}
}

type task struct {
	name    string
	adapter providers.Adapter
	queries []string
	opts    providers.Options
}

// Aggregate launches every enabled provider concurrently, each under its own
// timeout. One envelope is returned per launched provider, in enabled order.
// Unknown providers are dropped with a warning. No provider is retried.
func (a *Aggregator) Aggregate(ctx context.Context, plan models.QueryPlan, enabled []string, overrides map[string]providers.Options) []ProviderEnvelope {
	tasks := a.resolve(plan, enabled, overrides)
	envelopes := make([]ProviderEnvelope, len(tasks))

	// 그룹 컨텍스트를 쓰지 않는다. 한 프로바이더의 실패가 다른 프로바이더를 취소하면 안 된다.
	var g errgroup.Group
	for i, t := range tasks {
		g.Go(func() error {
			start := time.Now()
			results, err := a.call(ctx, t)
			elapsed := time.Since(start)

			if err != nil {
				config.Logger.Warnf("[aggregator] platform %q failed after %s: %v", t.name, elapsed, err)
				envelopes[i] = ProviderEnvelope{
					Provider: t.name,
					Results:  []models.NormalizedResult{},
					Status:   StatusRejected,
					Error:    err.Error(),
				}
				return nil
			}
			if results == nil {
				results = []models.NormalizedResult{}
			}
			config.DebugWithFields("[aggregator] platform completed", config.Fields{
				"provider": t.name,
				"results":  len(results),
				"duration": elapsed.String(),
			})
			envelopes[i] = ProviderEnvelope{Provider: t.name, Results: results, Status: StatusFulfilled}
			return nil
		})
	}
	g.Wait()

	return envelopes
}

func (a *Aggregator) resolve(plan models.QueryPlan, enabled []string, overrides map[string]providers.Options) []task {
	opts := make(map[string]providers.Options, len(overrides))
	for name, o := range overrides {
		opts[models.CanonicalProvider(name)] = o
	}

	seen := make(map[string]struct{}, len(enabled))
	tasks := make([]task, 0, len(enabled))
	for _, raw := range enabled {
		name := models.CanonicalProvider(raw)
		adapter, ok := a.registry.Get(name)
		if !ok {
			config.Logger.Warnf("[aggregator] unknown platform %q, skipping", raw)
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		tasks = append(tasks, task{
			name:    name,
			adapter: adapter,
			queries: plan.QueriesFor(name),
			opts:    opts[name],
		})
	}
	return tasks
}

type outcome struct {
	results []models.NormalizedResult
	err     error
}

// call 은 어댑터를 별도 고루틴에서 실행한다. 제한 시간이 지나면 즉시 반환하고
// 늦게 도착한 결과는 버퍼 채널에 남겨 버린다.
func (a *Aggregator) call(ctx context.Context, t task) ([]models.NormalizedResult, error) {
	pctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%s panicked: %v", t.name, r)}
			}
		}()
		results, err := t.adapter.Search(pctx, t.queries, t.opts)
		done <- outcome{results: results, err: err}
	}()

	select {
	case o := <-done:
		if o.err != nil && errors.Is(pctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s timed out after %s: %w", t.name, a.timeout, ErrProviderTimeout)
		}
		return o.results, o.err
	case <-pctx.Done():
		if errors.Is(pctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s timed out after %s: %w", t.name, a.timeout, ErrProviderTimeout)
		}
		return nil, pctx.Err()
	}
}

// Flatten 은 봉투 순서, 봉투 내 순서를 유지한 채 결과를 이어 붙인다.
func Flatten(envelopes []ProviderEnvelope) []models.NormalizedResult {
	n := 0
	for _, e := range envelopes {
		n += len(e.Results)
	}
	flat := make([]models.NormalizedResult, 0, n)
	for _, e := range envelopes {
		flat = append(flat, e.Results...)
	}
	return flat
}
