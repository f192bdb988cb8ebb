package planner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"creative-radar/models"
)

// Fallback builds a plan from the brief alone.
func Fallback(brief string) models.QueryPlan {
	pool := Tokenize(brief)
	if len(pool) == 0 {
		pool = []string{defaultQuery}
	}

	queries := head(pool, literalQueryCount)
	hashtags := make([]string, 0, len(queries))
	for _, q := range queries {
		hashtags = append(hashtags, "#"+q)
	}

	return models.QueryPlan{
		SearchQueries: map[string][]string{
			"youtube":   queries,
			"instagram": hashtags,
			"tiktok":    queries,
			"pinterest": head(queries, 2),
			"behance":   head(queries, 2),
			"vimeo":     queries,
			"meta-ads":  {queries[0]},
			"rss":       queries,
		},
		ContentTypes:    append(models.StringList{}, defaultContentTypes...),
		VisualKeywords:  models.StringList(head(pool, 5)),
		ReferenceBrands: models.StringList{},
		ScoringCriteria: criteriaFor(brief),
	}
}

// Tokenize 는 브리프를 소문자화하고 문자/숫자/공백 이외의 문자를 제거한 뒤
// 4자 이상 토큰만 등장 순서대로 중복 없이 최대 10개 반환한다.
func Tokenize(brief string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, brief)

	seen := make(map[string]struct{})
	pool := make([]string, 0, maxPoolTokens)
	for _, tok := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(tok) < minTokenRunes {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		pool = append(pool, tok)
		if len(pool) == maxPoolTokens {
			break
		}
	}
	return pool
}

func head(list []string, n int) []string {
	if len(list) < n {
		n = len(list)
	}
	out := make([]string, n)
	copy(out, list[:n])
	return out
}
