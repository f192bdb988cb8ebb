package providers

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var errNotObject = errors.New("item is not a JSON object")

// item 은 플랫폼마다 모양이 다른 원본 레코드다.
// 경로는 gjson 문법으로 "authorMeta.name", "owners.0.url" 처럼 점으로 구분한다.
type item struct {
	raw []byte
}

func decodeItem(raw json.RawMessage) (item, error) {
	if !gjson.ValidBytes(raw) {
		return item{}, errors.New("invalid JSON")
	}
	if !gjson.ParseBytes(raw).IsObject() {
		return item{}, errNotObject
	}
	return item{raw: raw}, nil
}

func (it item) get(path string) gjson.Result {
	return gjson.GetBytes(it.raw, path)
}

// str 는 처음으로 값이 있는 경로의 문자열을 반환한다. 숫자는 원문 그대로 쓴다.
func (it item) str(paths ...string) string {
	for _, p := range paths {
		r := it.get(p)
		switch r.Type {
		case gjson.String:
			if r.Str != "" {
				return r.Str
			}
		case gjson.Number:
			return r.Raw
		}
	}
	return ""
}

// num 은 처음으로 숫자로 해석되는 경로의 값을 반환한다. 없으면 0.
func (it item) num(paths ...string) int64 {
	for _, p := range paths {
		r := it.get(p)
		switch r.Type {
		case gjson.Number:
			return r.Int()
		case gjson.String:
			if i, err := strconv.ParseInt(r.Str, 10, 64); err == nil {
				return i
			}
		}
	}
	return 0
}

func (it item) has(path string) bool {
	r := it.get(path)
	return r.Exists() && r.Type != gjson.Null
}

// joined 는 문자열 배열 필드를 ", " 로 이어 붙인다.
func (it item) joined(path string) string {
	r := it.get(path)
	if !r.IsArray() {
		return ""
	}
	var parts []string
	r.ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String && v.Str != "" {
			parts = append(parts, v.Str)
		}
		return true
	})
	return strings.Join(parts, ", ")
}

func prefixed(prefix, v string) string {
	if v == "" {
		return ""
	}
	return prefix + v
}
