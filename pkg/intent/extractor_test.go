package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/soundprediction/hestia/pkg/nlp"
	"github.com/soundprediction/hestia/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM returns a canned response and records calls.
type fakeLLM struct {
	content string
	err     error
	calls   int

	lastMessages []nlp.Message
	lastSchema   any
}

func (f *fakeLLM) Chat(ctx context.Context, messages []nlp.Message) (*nlp.Response, error) {
	return nil, errors.New("not used")
}

func (f *fakeLLM) ChatWithStructuredOutput(ctx context.Context, messages []nlp.Message, schemaName string, schema any) (*nlp.Response, error) {
	f.calls++
	f.lastMessages = messages
	f.lastSchema = schema
	if f.err != nil {
		return nil, f.err
	}
	return &nlp.Response{Content: f.content}, nil
}

func (f *fakeLLM) Close() error { return nil }

func TestExtractHardConstraints(t *testing.T) {
	llm := &fakeLLM{content: `{
		"hard_constraints": {
			"city": null, "district": "楠梓區", "street": null,
			"min_price": null, "max_price": 10000000,
			"min_interior_area": null, "min_bedroom": 3, "min_bathroom": null,
			"property_type": null, "min_age": null, "max_age": null
		},
		"soft_requirements": []
	}`}
	e := NewExtractor(llm, nil)

	qf, err := e.Extract(context.Background(), "楠梓區 3房 1000萬以內")
	require.NoError(t, err)

	require.NotNil(t, qf.HardConstraints.District)
	assert.Equal(t, "楠梓區", *qf.HardConstraints.District)
	require.NotNil(t, qf.HardConstraints.MinBedroom)
	assert.Equal(t, int64(3), *qf.HardConstraints.MinBedroom)
	require.NotNil(t, qf.HardConstraints.MaxPrice)
	assert.Equal(t, int64(10000000), *qf.HardConstraints.MaxPrice)
	assert.Empty(t, qf.SoftRequirements)
	assert.Equal(t, 1, llm.calls)
}

func TestExtractSoftRequirementsOnly(t *testing.T) {
	llm := &fakeLLM{content: `{
		"hard_constraints": {
			"city": null, "district": null, "street": null,
			"min_price": null, "max_price": null,
			"min_interior_area": null, "min_bedroom": null, "min_bathroom": null,
			"property_type": null, "min_age": null, "max_age": null
		},
		"soft_requirements": ["開放式廚房", "採光要好"]
	}`}
	e := NewExtractor(llm, nil)

	qf, err := e.Extract(context.Background(), "我想要開放式廚房，採光要好")
	require.NoError(t, err)

	assert.Nil(t, qf.HardConstraints.City)
	assert.Nil(t, qf.HardConstraints.MaxPrice)
	assert.Equal(t, []string{"開放式廚房", "採光要好"}, qf.SoftRequirements)
}

func TestExtractRepairsBrokenJSON(t *testing.T) {
	// Markdown-fenced output from a non-strict provider.
	llm := &fakeLLM{content: "```json\n{\"hard_constraints\": {\"city\": \"高雄市\"}, \"soft_requirements\": [\"安靜\"]}\n```"}
	e := NewExtractor(llm, nil)

	qf, err := e.Extract(context.Background(), "高雄市安靜的房子")
	require.NoError(t, err)
	require.NotNil(t, qf.HardConstraints.City)
	assert.Equal(t, "高雄市", *qf.HardConstraints.City)
	assert.Equal(t, []string{"安靜"}, qf.SoftRequirements)
}

func TestExtractInvalidPropertyType(t *testing.T) {
	llm := &fakeLLM{content: `{"hard_constraints": {"property_type": "castle"}, "soft_requirements": []}`}
	e := NewExtractor(llm, nil)

	_, err := e.Extract(context.Background(), "買個城堡")
	require.Error(t, err)
	assert.True(t, errors.Is(err, &nlp.SchemaViolationError{}))
}

func TestExtractEmptyQuery(t *testing.T) {
	llm := &fakeLLM{}
	e := NewExtractor(llm, nil)

	_, err := e.Extract(context.Background(), "   ")
	require.Error(t, err)
	assert.Zero(t, llm.calls)
}

func TestExtractProviderError(t *testing.T) {
	llm := &fakeLLM{err: errors.New("boom")}
	e := NewExtractor(llm, nil)

	_, err := e.Extract(context.Background(), "3房")
	require.Error(t, err)
}

func TestExtractTrimsSoftRequirements(t *testing.T) {
	llm := &fakeLLM{content: `{"hard_constraints": {}, "soft_requirements": [" 採光好 ", "", "  "]}`}
	e := NewExtractor(llm, nil)

	qf, err := e.Extract(context.Background(), "採光好")
	require.NoError(t, err)
	assert.Equal(t, []string{"採光好"}, qf.SoftRequirements)
}

func TestSchemaShape(t *testing.T) {
	s := Schema()
	require.Contains(t, s.Properties, "hard_constraints")
	require.Contains(t, s.Properties, "soft_requirements")

	hc := s.Properties["hard_constraints"]
	for _, field := range []string{
		"city", "district", "street", "min_price", "max_price",
		"min_interior_area", "min_bedroom", "min_bathroom",
		"property_type", "min_age", "max_age",
	} {
		assert.Contains(t, hc.Properties, field)
	}
	assert.ElementsMatch(t,
		[]string{string(types.PropertyTypeTownhouse), string(types.PropertyTypeCondo)},
		hc.Properties["property_type"].Enum)
}
