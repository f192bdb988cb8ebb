package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"creative-radar/config"
	"creative-radar/trace"
)

const maxBodyLog = 1024

// 로그에 남기면 안 되는 쿼리 파라미터 이름
var secretParams = []string{"key", "token", "api_key", "access_token"}

type Config struct {
	Timeout time.Duration
}

// StatusError 는 2xx 이외의 응답이다. Body 는 최대 maxBodyLog 바이트까지만 담는다.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// loggingRoundTripper 는 프로바이더로 나가는 모든 호출을 로깅하고
// X-Request-Id / X-Span-Id 헤더를 전파한다.
type loggingRoundTripper struct {
	inner http.RoundTripper
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID, spanID := trace.NextSpanID(req.Context())
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("X-Span-Id", spanID)

	var bodySnippet string
	if req.Body != nil {
		if bodyBytes, err := io.ReadAll(req.Body); err == nil {
			bodySnippet = snippet(bodyBytes)
			req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}
	}

	fields := config.Fields{
		"method":     req.Method,
		"url":        redactedURL(req.URL),
		"request_id": requestID,
		"span_id":    spanID,
	}
	if bodySnippet != "" {
		fields["body"] = bodySnippet
	}

	resp, err := l.inner.RoundTrip(req)
	fields["duration"] = time.Since(start).String()
	if err != nil {
		fields["error"] = err.Error()
		config.ErrorWithFields("httpclient request failed", fields)
		return nil, err
	}
	fields["status"] = resp.StatusCode
	config.DebugWithFields("httpclient request success", fields)
	return resp, nil
}

func snippet(b []byte) string {
	if len(b) > maxBodyLog {
		return string(b[:maxBodyLog])
	}
	return string(b)
}

func redactedURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	for _, name := range secretParams {
		if q.Has(name) {
			q.Set(name, "REDACTED")
		}
	}
	clone := *u
	clone.RawQuery = q.Encode()
	return clone.String()
}

// BaseClient 는 프로바이더별 baseURL 과 공통 http.Client 를 묶는다.
type BaseClient struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewBaseClient 는 httpClient 가 nil 이면 기본 클라이언트를 사용한다.
func NewBaseClient(httpClient *http.Client, baseURL string) *BaseClient {
	if httpClient == nil {
		httpClient = NewDefault()
	}
	return &BaseClient{HTTPClient: httpClient, BaseURL: baseURL}
}

// NewRequest 는 baseURL 에 relPath 를 붙인 요청을 만든다.
// 쿼리 파라미터는 relPath 가 아닌 query 로 전달해야 한다.
func (c *BaseClient) NewRequest(ctx context.Context, method, relPath string, query url.Values, body io.Reader) (*http.Request, error) {
	if strings.Contains(relPath, "?") {
		return nil, fmt.Errorf("httpclient: relPath must not contain query string: %s", relPath)
	}
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	if relPath != "" {
		base.Path = path.Join(base.Path, relPath)
	}
	if query != nil {
		base.RawQuery = query.Encode()
	}
	return http.NewRequestWithContext(ctx, method, base.String(), body)
}

func (c *BaseClient) Do(req *http.Request) (*http.Response, error) {
	return c.HTTPClient.Do(req)
}

// GetJSON 은 GET 요청 후 응답 JSON 을 out 으로 디코딩한다.
func (c *BaseClient) GetJSON(ctx context.Context, relPath string, query url.Values, header http.Header, out any) error {
	req, err := c.NewRequest(ctx, http.MethodGet, relPath, query, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, header, out)
}

// PostJSON 은 body 를 JSON 으로 보내고 응답 JSON 을 out 으로 디코딩한다.
func (c *BaseClient) PostJSON(ctx context.Context, relPath string, query url.Values, header http.Header, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := c.NewRequest(ctx, http.MethodPost, relPath, query, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, header, out)
}

func (c *BaseClient) doJSON(req *http.Request, header http.Header, out any) error {
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyLog))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// New 는 Timeout 이 0 이면 30초를 사용한다.
// 프로바이더 전체 시간 제한은 Aggregator 가 컨텍스트로 따로 건다.
func New(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &loggingRoundTripper{inner: http.DefaultTransport},
	}
}

func NewDefault() *http.Client {
	return New(Config{})
}
