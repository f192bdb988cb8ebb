package pipeline

import (
	"context"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"creative-radar/aggregator"
	"creative-radar/config"
	"creative-radar/eventbus"
	"creative-radar/events"
	"creative-radar/models"
	"creative-radar/providers"
	"creative-radar/repositories"
	"creative-radar/scorer"
)

type QueryPlanner interface {
	Plan(ctx context.Context, brief string) models.QueryPlan
}

type ProviderAggregator interface {
	Aggregate(ctx context.Context, plan models.QueryPlan, enabled []string, overrides map[string]providers.Options) []aggregator.ProviderEnvelope
}

type RelevanceScorer interface {
	Score(ctx context.Context, results []models.NormalizedResult, criteria string) []scorer.ScoreRecord
}

// Request 는 검색 1회의 입력이다. Platforms 가 비었거나 "all" 하나면 기본 목록을 쓴다.
type Request struct {
	Brief     string
	Platforms []string
	Overrides map[string]providers.Options
}

type Response struct {
	SearchID  string                  `json:"search_id"`
	QueryPlan models.QueryPlan        `json:"query_plan"`
	Results   []models.ScoredResult   `json:"results"`
	Providers []events.ProviderStatus `json:"-"`
}

type Options struct {
	DefaultPlatforms []string
	// Publisher 가 nil 이면 이벤트를 발행하지 않는다.
	Publisher eventbus.Publisher
	Topic     eventbus.Topic
	// Source 는 이벤트의 source 필드다. ("api", "radarctl")
	Source string
}

type Pipeline struct {
	planner    QueryPlanner
	aggregator ProviderAggregator
	scorer     RelevanceScorer
	store      repositories.SearchStore
	opts       Options
}

func New(planner QueryPlanner, agg ProviderAggregator, sc RelevanceScorer, store repositories.SearchStore, opts Options) *Pipeline {
	if len(opts.DefaultPlatforms) == 0 {
		opts.DefaultPlatforms = config.Default().Search.DefaultPlatforms
	}
	return &Pipeline{planner: planner, aggregator: agg, scorer: sc, store: store, opts: opts}
}

// Run executes one search end to end. Only validation and persistence
// failures are returned; provider and scoring failures degrade in place.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Response, error) {
	brief := strings.TrimSpace(req.Brief)
	if brief == "" {
		return nil, &ValidationError{Field: "brief", Reason: "brief is required and must be a non-empty string"}
	}
	started := time.Now()

	plan := p.planner.Plan(ctx, brief)
	platforms := p.ResolvePlatforms(req.Platforms)

	envelopes := p.aggregator.Aggregate(ctx, plan, platforms, req.Overrides)
	flat := aggregator.Flatten(envelopes)

	records := p.scorer.Score(ctx, flat, plan.ScoringCriteria)
	merged := Merge(flat, records)
	now := time.Now().UTC()
	for i := range merged {
		merged[i].ID = uuid.NewString()
		merged[i].CreatedAt = now
	}

	serializedPlan, err := plan.Marshal()
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}

	// 클라이언트가 끊겨도 저장 단위는 끝까지 커밋하거나 롤백한다.
	persistCtx := context.WithoutCancel(ctx)
	var searchID string
	err = p.store.RunInTx(persistCtx, func(tx repositories.SearchWriter) error {
		id, err := tx.CreateSearch(persistCtx, brief, serializedPlan, platforms)
		if err != nil {
			return err
		}
		if err := tx.InsertResults(persistCtx, id, merged); err != nil {
			return err
		}
		if err := tx.UpdateResultCount(persistCtx, id, len(merged)); err != nil {
			return err
		}
		searchID = id
		return nil
	})
	if err != nil {
		config.ErrorWithFields("[pipeline] persistence failed", config.Fields{"error": err.Error()})
		return nil, &PersistenceError{Err: err}
	}
	for i := range merged {
		merged[i].SearchID = searchID
	}

	statuses := providerStatuses(envelopes)
	config.InfoWithFields("[pipeline] search completed", config.Fields{
		"search_id":   searchID,
		"providers":   len(envelopes),
		"results":     len(merged),
		"duration_ms": time.Since(started).Milliseconds(),
	})
	p.publish(persistCtx, searchID, brief, len(merged), statuses)

	return &Response{
		SearchID:  searchID,
		QueryPlan: plan,
		Results:   SortByScore(merged),
		Providers: statuses,
	}, nil
}

// ResolvePlatforms 는 요청 플랫폼을 정규 이름으로 바꾸고 중복을 제거한다.
func (p *Pipeline) ResolvePlatforms(requested []string) []string {
	if len(requested) == 0 || (len(requested) == 1 && strings.EqualFold(strings.TrimSpace(requested[0]), "all")) {
		return slices.Clone(p.opts.DefaultPlatforms)
	}
	out := make([]string, 0, len(requested))
	for _, name := range requested {
		c := models.CanonicalProvider(name)
		if c == "" || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return slices.Clone(p.opts.DefaultPlatforms)
	}
	return out
}

// SortByScore 는 응답용 사본을 점수 내림차순으로 안정 정렬한다. NaN 은 가장 낮게 취급한다.
func SortByScore(results []models.ScoredResult) []models.ScoredResult {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b models.ScoredResult) int {
		sa, sb := sortKey(a.AIRelevanceScore), sortKey(b.AIRelevanceScore)
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

func sortKey(f float64) float64 {
	if math.IsNaN(f) {
		return math.Inf(-1)
	}
	return f
}

func providerStatuses(envelopes []aggregator.ProviderEnvelope) []events.ProviderStatus {
	out := make([]events.ProviderStatus, 0, len(envelopes))
	for _, e := range envelopes {
		out = append(out, events.ProviderStatus{
			Provider: e.Provider,
			Status:   string(e.Status),
			Results:  len(e.Results),
			Error:    e.Error,
		})
	}
	return out
}

func (p *Pipeline) publish(ctx context.Context, searchID, brief string, count int, statuses []events.ProviderStatus) {
	if p.opts.Publisher == nil {
		return
	}
	payload := events.SearchCompletedEvent{
		BaseEvent:   events.NewBaseEvent(events.SearchCompleted, p.opts.Source),
		SearchID:    searchID,
		Brief:       brief,
		ResultCount: count,
		Providers:   statuses,
	}
	evt, err := eventbus.NewJSONEvent(payload.ID, string(events.SearchCompleted), payload)
	if err != nil {
		config.Logger.Warnf("[pipeline] build event failed: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := p.opts.Publisher.Publish(ctx, p.opts.Topic.Base(), evt); err != nil {
		config.Logger.Warnf("[pipeline] publish %s for search %s failed: %v", events.SearchCompleted, searchID, err)
	}
}
