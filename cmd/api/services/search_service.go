package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"creative-radar/cmd/api/dto"
	"creative-radar/config"
	"creative-radar/eventbus"
	"creative-radar/events"
	"creative-radar/models"
	"creative-radar/pipeline"
	"creative-radar/providers"
	"creative-radar/repositories"
)

const defaultHistoryLimit = 20

// Runner 는 검색 파이프라인 실행 추상화다.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Response, error)
}

// SearchService encapsulates search execution, history lookup and DTO mapping.
type SearchService struct {
	runner    Runner
	store     repositories.SearchStore
	publisher eventbus.Publisher
	topic     eventbus.Topic
}

func NewSearchService(runner Runner, store repositories.SearchStore, publisher eventbus.Publisher, topic eventbus.Topic) *SearchService {
	return &SearchService{runner: runner, store: store, publisher: publisher, topic: topic}
}

type SearchInput struct {
	Brief     string
	Platforms []string
	Options   map[string]map[string]any
}

func (s *SearchService) Search(ctx context.Context, in SearchInput) (dto.SearchResponseDTO, error) {
	overrides := make(map[string]providers.Options, len(in.Options))
	for name, o := range in.Options {
		overrides[name] = providers.Options(o)
	}
	resp, err := s.runner.Run(ctx, pipeline.Request{Brief: in.Brief, Platforms: in.Platforms, Overrides: overrides})
	if err != nil {
		return dto.SearchResponseDTO{}, err
	}
	return dto.SearchResponseDTO{SearchID: resp.SearchID, QueryPlan: resp.QueryPlan, Results: resp.Results}, nil
}

func (s *SearchService) History(ctx context.Context, limit int) ([]dto.SearchHistoryItemDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultHistoryLimit
	}
	records, err := s.store.ListSearches(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SearchHistoryItemDTO, 0, len(records))
	for _, r := range records {
		out = append(out, mapSearchRecord(r))
	}
	return out, nil
}

func (s *SearchService) Get(ctx context.Context, id string) (dto.SearchDetailDTO, error) {
	rec, err := s.store.GetSearch(ctx, id)
	if err != nil {
		return dto.SearchDetailDTO{}, err
	}
	results, err := s.store.ListResults(ctx, id)
	if err != nil {
		return dto.SearchDetailDTO{}, err
	}
	return dto.SearchDetailDTO{Search: mapSearchRecord(rec), Results: results}, nil
}

func (s *SearchService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteSearch(ctx, id); err != nil {
		return err
	}
	if s.publisher == nil {
		return nil
	}
	payload := events.SearchDeletedEvent{BaseEvent: events.NewBaseEvent(events.SearchDeleted, "api"), SearchID: id}
	evt, err := eventbus.NewJSONEvent(payload.ID, string(events.SearchDeleted), payload)
	if err == nil {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		err = s.publisher.Publish(pctx, s.topic.Base(), evt)
	}
	if err != nil {
		config.Logger.Warnf("[search] publish %s for %s failed: %v", events.SearchDeleted, id, err)
	}
	return nil
}

// mapSearchRecord 는 저장된 직렬화 플랜을 파싱한다. 깨진 플랜은 null 로 내려준다.
func mapSearchRecord(r models.SearchRecord) dto.SearchHistoryItemDTO {
	item := dto.SearchHistoryItemDTO{
		ID:          r.ID,
		Brief:       r.Brief,
		Providers:   r.Providers,
		ResultCount: r.ResultCount,
		CreatedAt:   r.CreatedAt,
	}
	if plan, err := r.Plan(); err == nil && r.QueryPlan != "" {
		item.QueryPlan = &plan
	}
	if item.Providers == nil {
		item.Providers = []string{}
	}
	return item
}

// ParsePlatforms 는 platforms 필드를 해석한다. 생략/null/"all" 은 nil(기본 목록)이다.
// 문자열은 콤마로 구분된 목록으로도 받는다.
func ParsePlatforms(raw json.RawMessage) ([]string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var one string
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, &pipeline.ValidationError{Field: "platforms", Reason: `platforms must be an array of strings or "all"`}
	}
	one = strings.TrimSpace(one)
	if one == "" || strings.EqualFold(one, "all") {
		return nil, nil
	}
	parts := strings.Split(one, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, &pipeline.ValidationError{Field: "platforms", Reason: "no platform given"}
	}
	return out, nil
}
