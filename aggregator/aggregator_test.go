package aggregator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creative-radar/models"
	"creative-radar/providers"
)

type fakeAdapter struct {
	name    string
	delay   time.Duration
	results []models.NormalizedResult
	err     error
	panics  bool
	// ignoreCtx 가 true 면 컨텍스트 취소를 무시하고 release 가 닫힐 때까지 대기한다.
	ignoreCtx bool
	release   chan struct{}

	mu        sync.Mutex
	gotQuery  []string
	gotOpts   providers.Options
	callCount int
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Search(ctx context.Context, queries []string, opts providers.Options) ([]models.NormalizedResult, error) {
	f.mu.Lock()
	f.callCount++
	f.gotQuery = queries
	f.gotOpts = opts
	f.mu.Unlock()

	if f.panics {
		panic("boom")
	}
	if f.ignoreCtx {
		<-f.release
		return f.results, nil
	}
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return f.results, f.err
}

func results(platform string, n int) []models.NormalizedResult {
	out := make([]models.NormalizedResult, n)
	for i := range out {
		out[i] = models.NormalizedResult{Platform: platform, ExternalID: platform + string(rune('a'+i))}
	}
	return out
}

func planFor(names ...string) models.QueryPlan {
	plan := models.QueryPlan{SearchQueries: map[string][]string{}}
	for _, n := range names {
		plan.SearchQueries[n] = []string{n + " query"}
	}
	plan.Normalize(models.KnownProviders)
	return plan
}

func TestEnvelopeOrderIndependentOfCompletion(t *testing.T) {
	slow := &fakeAdapter{name: "youtube", delay: 60 * time.Millisecond, results: results("youtube", 1)}
	fast := &fakeAdapter{name: "vimeo", delay: time.Millisecond, results: results("vimeo", 2)}
	agg := New(providers.NewRegistry(slow, fast), time.Second)

	envelopes := agg.Aggregate(context.Background(), planFor("youtube", "vimeo"), []string{"youtube", "vimeo"}, nil)

	require.Len(t, envelopes, 2)
	assert.Equal(t, "youtube", envelopes[0].Provider)
	assert.Equal(t, "vimeo", envelopes[1].Provider)
	assert.Len(t, envelopes[0].Results, 1)
	assert.Len(t, envelopes[1].Results, 2)

	flat := Flatten(envelopes)
	require.Len(t, flat, 3)
	assert.Equal(t, "youtube", flat[0].Platform)
	assert.Equal(t, "vimeo", flat[1].Platform)
}

func TestTimeoutIsIsolatedAndBoundsWallTime(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	p1 := &fakeAdapter{name: "youtube", delay: 20 * time.Millisecond, results: results("youtube", 2)}
	p2 := &fakeAdapter{name: "tiktok", ignoreCtx: true, release: release, results: results("tiktok", 5)}
	timeout := 150 * time.Millisecond
	agg := New(providers.NewRegistry(p1, p2), timeout)

	start := time.Now()
	envelopes := agg.Aggregate(context.Background(), planFor("youtube", "tiktok"), []string{"youtube", "tiktok"}, nil)
	elapsed := time.Since(start)

	require.Len(t, envelopes, 2)
	assert.Equal(t, StatusFulfilled, envelopes[0].Status)
	assert.Len(t, envelopes[0].Results, 2)

	assert.Equal(t, StatusRejected, envelopes[1].Status)
	assert.NotNil(t, envelopes[1].Results)
	assert.Empty(t, envelopes[1].Results)
	assert.Contains(t, envelopes[1].Error, ErrProviderTimeout.Error())

	// max(20ms, 150ms) 근처여야 하며 합(170ms+) 이나 무기한 대기가 아니어야 한다.
	assert.GreaterOrEqual(t, elapsed, timeout)
	assert.Less(t, elapsed, timeout+150*time.Millisecond)
}

func TestFailuresAndPanicsAreIsolated(t *testing.T) {
	ok := &fakeAdapter{name: "youtube", results: results("youtube", 1)}
	failing := &fakeAdapter{name: "vimeo", err: errors.New("401 unauthorized")}
	panicking := &fakeAdapter{name: "behance", panics: true}
	agg := New(providers.NewRegistry(ok, failing, panicking), time.Second)

	envelopes := agg.Aggregate(context.Background(), planFor("youtube"), []string{"behance", "vimeo", "youtube"}, nil)

	require.Len(t, envelopes, 3)
	assert.Equal(t, StatusRejected, envelopes[0].Status)
	assert.Contains(t, envelopes[0].Error, "panicked")
	assert.Equal(t, StatusRejected, envelopes[1].Status)
	assert.Equal(t, "401 unauthorized", envelopes[1].Error)
	assert.Equal(t, StatusFulfilled, envelopes[2].Status)
	assert.Len(t, envelopes[2].Results, 1)
}

func TestUnknownProvidersDroppedAndAliasesResolved(t *testing.T) {
	ads := &fakeAdapter{name: "meta-ads"}
	agg := New(providers.NewRegistry(ads), time.Second)

	plan := models.QueryPlan{SearchQueries: map[string][]string{"meta_ads": {"luxury resort"}}}
	overrides := map[string]providers.Options{"meta_ads": {"country": "US"}}
	envelopes := agg.Aggregate(context.Background(), plan, []string{"myspace", "meta_ads", "meta-ads"}, overrides)

	require.Len(t, envelopes, 1)
	assert.Equal(t, "meta-ads", envelopes[0].Provider)
	assert.Equal(t, StatusFulfilled, envelopes[0].Status)
	assert.NotNil(t, envelopes[0].Results)
	assert.Equal(t, 1, ads.callCount)
	assert.Equal(t, []string{"luxury resort"}, ads.gotQuery)
	assert.Equal(t, "US", ads.gotOpts.String("country", ""))
}

func TestMissingPlanEntryDefaultsToEmptyQueries(t *testing.T) {
	yt := &fakeAdapter{name: "youtube"}
	agg := New(providers.NewRegistry(yt), time.Second)

	agg.Aggregate(context.Background(), models.QueryPlan{}, []string{"youtube"}, nil)

	assert.Equal(t, []string{}, yt.gotQuery)
}
