package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	"creative-radar/config"
)

// ErrNotConfigured 는 GEMINI_API_KEY 가 없어 생성 모델을 사용할 수 없음을 나타낸다.
// 호출자는 이 경우 결정적 대체 경로로 동작해야 한다.
var ErrNotConfigured = errors.New("llm: GEMINI_API_KEY is not set")

// Request 는 시스템 지시문과 사용자 입력으로 구성된 1회 생성 요청이다.
type Request struct {
	SystemInstruction string
	Prompt            string
	MaxOutputTokens   int32
}

// Response 는 모델이 생성한 원문 텍스트와 사용량 로그다.
type Response struct {
	Text string
	Log  RequestLog
}

type RequestLog struct {
	LatencyMs    int64      `json:"latency_ms"`
	TokenUsage   TokenUsage `json:"token_usage"`
	ModelName    string     `json:"model_name"`
	ModelVersion string     `json:"model_version"`
	GeneratedAt  time.Time  `json:"generated_at"`
}

type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

// Generator 는 텍스트 생성 백엔드 추상화다. 플래너와 채점기가 공유한다.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// GeminiGenerator 는 google.golang.org/genai 기반 Generator 구현체다.
type GeminiGenerator struct {
	client    *genai.Client
	modelName string
}

// NewGemini 는 설정과 API 키로 Gemini 클라이언트를 만든다.
// apiKey 가 비어 있으면 ErrNotConfigured 를 반환한다.
func NewGemini(ctx context.Context, cfg config.LLMConfig, apiKey string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Provider != "" && cfg.Provider != "google" {
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiGenerator{client: client, modelName: cfg.ModelName}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (*Response, error) {
	startTime := time.Now()

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.SystemInstruction}}},
	}
	if req.MaxOutputTokens > 0 {
		genCfg.MaxOutputTokens = req.MaxOutputTokens
	}

	result, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(req.Prompt), genCfg)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("empty response from model %s", g.modelName)
	}

	resp := &Response{
		Text: result.Text(),
		Log: RequestLog{
			LatencyMs:    time.Since(startTime).Milliseconds(),
			ModelName:    g.modelName,
			ModelVersion: result.ModelVersion,
			GeneratedAt:  time.Now(),
		},
	}
	if result.UsageMetadata != nil {
		resp.Log.TokenUsage = TokenUsage{
			InputTokens:  int64(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int64(result.UsageMetadata.TotalTokenCount),
		}
	}
	return resp, nil
}
