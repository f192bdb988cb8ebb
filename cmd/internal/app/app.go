// Package app 는 api 서버와 radarctl 이 공유하는 의존성 조립을 담당한다.
package app

import (
	"context"
	"fmt"

	"creative-radar/aggregator"
	"creative-radar/config"
	"creative-radar/db"
	"creative-radar/eventbus"
	"creative-radar/httpclient"
	"creative-radar/llm"
	"creative-radar/pipeline"
	"creative-radar/planner"
	"creative-radar/providers"
	"creative-radar/repositories"
	"creative-radar/scorer"
)

type App struct {
	Config    config.AppConfig
	Store     repositories.Store
	Registry  *providers.Registry
	Pipeline  *pipeline.Pipeline
	Publisher eventbus.Publisher
	Topic     eventbus.Topic
}

// New 는 저장소를 열고 파이프라인을 조립한다. LLM 키나 Kafka 브로커가 없으면
// 해당 기능만 비활성화하고 계속 진행한다.
func New(ctx context.Context, cfg config.AppConfig, secrets config.Secrets, source string) (*App, error) {
	store, err := db.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var generator llm.Generator
	if gemini, err := llm.NewGemini(ctx, cfg.LLM, secrets.GeminiAPIKey); err != nil {
		config.Logger.Warnf("LLM disabled, planner fallback and default scores will be used: %v", err)
	} else {
		generator = llm.WithQuota(gemini, cfg.LLM.Quota)
	}

	a := &App{
		Config: cfg,
		Store:  store,
		Topic:  eventbus.SearchEventsTopic(cfg.Events),
	}
	if cfg.Events.Enabled {
		if bus := newPublisher(ctx, secrets, a.Topic); bus != nil {
			a.Publisher = bus
		}
	}

	a.Registry = providers.NewDefaultRegistry(cfg.Providers, secrets, httpclient.New(httpclient.Config{Timeout: cfg.Search.ProviderTimeout}))
	a.Pipeline = pipeline.New(
		planner.New(generator, cfg.LLM),
		aggregator.New(a.Registry, cfg.Search.ProviderTimeout),
		scorer.New(generator, cfg.Search, cfg.LLM),
		store,
		pipeline.Options{
			DefaultPlatforms: cfg.Search.DefaultPlatforms,
			Publisher:        a.Publisher,
			Topic:            a.Topic,
			Source:           source,
		},
	)
	return a, nil
}

func (a *App) Close() {
	if a.Publisher != nil {
		a.Publisher.Close()
	}
	if err := a.Store.Close(); err != nil {
		config.Logger.Warnf("close store: %v", err)
	}
}

// newPublisher 는 실패 시 nil 을 반환한다. 이벤트 발행은 검색 성공 여부에 영향이 없다.
func newPublisher(ctx context.Context, secrets config.Secrets, topic eventbus.Topic) *eventbus.KafkaEventBus {
	brokers, err := eventbus.Brokers(secrets)
	if err != nil {
		config.Logger.Warnf("events enabled but %v, publishing disabled", err)
		return nil
	}
	if err := eventbus.EnsureTopics(ctx, brokers, 1, topic); err != nil {
		config.Logger.Warnf("ensure topic %s failed: %v", topic.Base(), err)
	}
	bus, err := eventbus.NewKafkaEventBus(brokers)
	if err != nil {
		config.Logger.Warnf("kafka producer disabled: %v", err)
		return nil
	}
	return bus
}
