package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/hestia/pkg/telemetry"
	"github.com/soundprediction/hestia/pkg/types"
)

type fakeExtractor struct {
	filter *types.QueryFilter
	err    error
	calls  int
}

func (f *fakeExtractor) Extract(ctx context.Context, query string) (*types.QueryFilter, error) {
	f.calls++
	return f.filter, f.err
}

type fakeFilter struct {
	candidates []types.PropertyCandidate
	err        error
	calls      int
	lastLimit  int
	lastHC     types.HardConstraints
}

func (f *fakeFilter) FilterCandidates(ctx context.Context, hc types.HardConstraints, limit int) ([]types.PropertyCandidate, error) {
	f.calls++
	f.lastHC = hc
	f.lastLimit = limit
	return f.candidates, f.err
}

type fakeEmbedder struct {
	vector   []float32
	err      error
	calls    int
	lastText string
}

func (f *fakeEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	f.lastText = text
	return f.vector, f.err
}

func newTestSearcher(ex *fakeExtractor, fl *fakeFilter, em QueryEmbedder, opts Options) *Searcher {
	return NewSearcher(ex, fl, em, opts)
}

func TestSearchFullPipeline(t *testing.T) {
	district := "楠梓區"
	minBedroom := int64(3)
	maxPrice := int64(10_000_000)

	ex := &fakeExtractor{filter: &types.QueryFilter{
		HardConstraints: types.HardConstraints{
			District:   &district,
			MinBedroom: &minBedroom,
			MaxPrice:   &maxPrice,
		},
		SoftRequirements: []string{"安靜", "採光要好"},
	}}
	fl := &fakeFilter{candidates: []types.PropertyCandidate{
		{PropertyID: "p1", Title: "甲", TotalPrice: 9_000_000, Embedding: []float32{1, 0}},
		{PropertyID: "p2", Title: "乙", TotalPrice: 8_000_000, Embedding: []float32{0, 1}},
	}}
	em := &fakeEmbedder{vector: []float32{1, 0}}

	s := newTestSearcher(ex, fl, em, Options{})
	results, err := s.Search(context.Background(), "楠梓區 3房 1000萬以內，要安靜採光好", 0, 0)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "p1", results[0].PropertyID)
	assert.Equal(t, 1, ex.calls)
	assert.Equal(t, 1, fl.calls)
	assert.Equal(t, 1, em.calls)
	assert.Equal(t, DefaultGraphLimit, fl.lastLimit)
	assert.Equal(t, "需求：安靜；採光要好", em.lastText)
	assert.Equal(t, &district, fl.lastHC.District)
}

func TestSearchShortCircuitsOnEmptyCandidates(t *testing.T) {
	ex := &fakeExtractor{filter: &types.QueryFilter{
		SoftRequirements: []string{"開放式廚房"},
	}}
	fl := &fakeFilter{candidates: []types.PropertyCandidate{}}
	em := &fakeEmbedder{vector: []float32{1, 0}}

	s := newTestSearcher(ex, fl, em, Options{})
	results, err := s.Search(context.Background(), "不存在的條件", 0, 0)
	require.NoError(t, err)

	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Zero(t, em.calls, "embedding provider must not be called when no candidates match")
}

func TestSearchEmptySoftRequirementsStillEmbeds(t *testing.T) {
	// All-null constraints with no soft requirements is a valid query.
	ex := &fakeExtractor{filter: &types.QueryFilter{}}
	fl := &fakeFilter{candidates: []types.PropertyCandidate{
		{PropertyID: "p1", Embedding: []float32{1, 0}},
	}}
	em := &fakeEmbedder{vector: []float32{0, 1}}

	s := newTestSearcher(ex, fl, em, Options{})
	results, err := s.Search(context.Background(), "房子", 0, 0)
	require.NoError(t, err)

	assert.Len(t, results, 1)
	assert.Equal(t, 1, em.calls)
	assert.Equal(t, "", em.lastText)
}

func TestSearchIntentError(t *testing.T) {
	ex := &fakeExtractor{err: errors.New("provider down")}
	fl := &fakeFilter{}
	em := &fakeEmbedder{}

	s := newTestSearcher(ex, fl, em, Options{})
	_, err := s.Search(context.Background(), "房子", 0, 0)
	require.Error(t, err)

	assert.True(t, errors.Is(err, &IntentExtractionError{}))
	assert.Zero(t, fl.calls)
	assert.Zero(t, em.calls)
}

func TestSearchGraphError(t *testing.T) {
	ex := &fakeExtractor{filter: &types.QueryFilter{}}
	fl := &fakeFilter{err: errors.New("neo4j unavailable")}
	em := &fakeEmbedder{}

	s := newTestSearcher(ex, fl, em, Options{})
	_, err := s.Search(context.Background(), "房子", 0, 0)
	require.Error(t, err)

	assert.True(t, errors.Is(err, &GraphQueryError{}))
	assert.Zero(t, em.calls)
}

func TestSearchEmbeddingError(t *testing.T) {
	ex := &fakeExtractor{filter: &types.QueryFilter{}}
	fl := &fakeFilter{candidates: []types.PropertyCandidate{
		{PropertyID: "p1", Embedding: []float32{1, 0}},
	}}
	em := &fakeEmbedder{err: errors.New("rate limited")}

	s := newTestSearcher(ex, fl, em, Options{})
	_, err := s.Search(context.Background(), "房子", 0, 0)
	require.Error(t, err)

	assert.True(t, errors.Is(err, &EmbeddingProviderError{}))
	assert.False(t, errors.Is(err, &GraphQueryError{}))
}

func TestSearchOverridesLimits(t *testing.T) {
	ex := &fakeExtractor{filter: &types.QueryFilter{}}
	candidates := make([]types.PropertyCandidate, 5)
	for i := range candidates {
		candidates[i] = types.PropertyCandidate{
			PropertyID: string(rune('a' + i)),
			Embedding:  []float32{float32(i), 1},
		}
	}
	fl := &fakeFilter{candidates: candidates}
	em := &fakeEmbedder{vector: []float32{1, 0}}

	s := newTestSearcher(ex, fl, em, Options{})
	results, err := s.Search(context.Background(), "房子", 50, 3)
	require.NoError(t, err)

	assert.Equal(t, 50, fl.lastLimit)
	assert.Len(t, results, 3)
}

func TestCountConstraints(t *testing.T) {
	assert.Zero(t, countConstraints(types.HardConstraints{}))

	district := "楠梓區"
	maxPrice := int64(10_000_000)
	pt := types.PropertyTypeTownhouse
	hc := types.HardConstraints{
		District:     &district,
		MaxPrice:     &maxPrice,
		PropertyType: &pt,
	}
	assert.Equal(t, 3, countConstraints(hc))
}

func TestSearchAppliesStageTimeouts(t *testing.T) {
	ex := &fakeExtractor{filter: &types.QueryFilter{}}
	fl := &fakeFilter{candidates: []types.PropertyCandidate{
		{PropertyID: "p1", Embedding: []float32{1, 0}},
	}}
	em := &deadlineEmbedder{}

	s := newTestSearcher(ex, fl, em, Options{EmbeddingTimeout: time.Minute})
	_, err := s.Search(context.Background(), "房子", 0, 0)
	require.NoError(t, err)
	assert.True(t, em.sawDeadline, "embedding context should carry a deadline")
}

type deadlineEmbedder struct {
	sawDeadline bool
}

func (d *deadlineEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	_, d.sawDeadline = ctx.Deadline()
	return []float32{1, 0}, nil
}

type captureRecorder struct {
	events []telemetry.SearchEvent
}

func (r *captureRecorder) Record(e telemetry.SearchEvent) { r.events = append(r.events, e) }
func (r *captureRecorder) Close() error                   { return nil }

func TestSearchUsesCallerRequestID(t *testing.T) {
	ex := &fakeExtractor{filter: &types.QueryFilter{}}
	fl := &fakeFilter{candidates: []types.PropertyCandidate{
		{PropertyID: "p1", Embedding: []float32{1, 0}},
	}}
	em := &fakeEmbedder{vector: []float32{1, 0}}
	rec := &captureRecorder{}

	s := newTestSearcher(ex, fl, em, Options{Recorder: rec})
	ctx := WithRequestID(context.Background(), "req-123")
	_, err := s.Search(ctx, "房子", 0, 0)
	require.NoError(t, err)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "req-123", rec.events[0].RequestID)
}

func TestSearchMintsRequestIDWhenUnset(t *testing.T) {
	ex := &fakeExtractor{filter: &types.QueryFilter{}}
	fl := &fakeFilter{candidates: []types.PropertyCandidate{
		{PropertyID: "p1", Embedding: []float32{1, 0}},
	}}
	em := &fakeEmbedder{vector: []float32{1, 0}}
	rec := &captureRecorder{}

	// A blank caller ID is ignored rather than recorded.
	assert.Equal(t, "", RequestIDFromContext(WithRequestID(context.Background(), "")))

	s := newTestSearcher(ex, fl, em, Options{Recorder: rec})
	_, err := s.Search(context.Background(), "房子", 0, 0)
	require.NoError(t, err)

	require.Len(t, rec.events, 1)
	assert.NotEmpty(t, rec.events[0].RequestID)
}

func TestSearchDropsCandidatesWithoutEmbeddings(t *testing.T) {
	ex := &fakeExtractor{filter: &types.QueryFilter{}}
	fl := &fakeFilter{candidates: []types.PropertyCandidate{
		{PropertyID: "has", Embedding: []float32{1, 0}},
		{PropertyID: "missing"},
	}}
	em := &fakeEmbedder{vector: []float32{1, 0}}

	s := newTestSearcher(ex, fl, em, Options{})
	results, err := s.Search(context.Background(), "房子", 0, 0)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "has", results[0].PropertyID)
}
