package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"creative-radar/models"
)

// Adapter 는 하나의 외부 플랫폼 검색을 공통 결과 스키마로 감싼다.
//
// 자격 증명이 없으면 빈 목록과 nil 에러를 반환한다(soft skip).
// 쿼리 단위 네트워크/데이터 오류는 로그만 남기고 나머지 결과를 반환한다.
type Adapter interface {
	Name() string
	Search(ctx context.Context, queries []string, opts Options) ([]models.NormalizedResult, error)
}

// Options 는 요청 단위로 덮어쓸 수 있는 프로바이더별 옵션이다.
// JSON 바디에서 온 값도 받을 수 있도록 숫자는 float64/json.Number/문자열을 허용한다.
type Options map[string]any

func (o Options) Int(key string, def int) int {
	v, ok := o[key]
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return def
}

func (o Options) String(key, def string) string {
	if v, ok := o[key].(string); ok && v != "" {
		return v
	}
	return def
}

// Registry 는 정규화된 프로바이더 이름으로 어댑터를 찾는다.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register panics on duplicate names; registration happens once at startup.
func (r *Registry) Register(a Adapter) {
	name := models.CanonicalProvider(a.Name())
	if _, exists := r.adapters[name]; exists {
		panic(fmt.Sprintf("providers: adapter %q registered twice", name))
	}
	r.adapters[name] = a
}

func (r *Registry) Get(name string) (Adapter, bool) {
	a, ok := r.adapters[models.CanonicalProvider(name)]
	return a, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
