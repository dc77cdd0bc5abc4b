package types_test

import (
	"encoding/json"
	"testing"

	"github.com/soundprediction/hestia/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyTypeValid(t *testing.T) {
	tests := []struct {
		name  string
		value types.PropertyType
		valid bool
	}{
		{"townhouse", types.PropertyTypeTownhouse, true},
		{"condo", types.PropertyTypeCondo, true},
		{"empty", types.PropertyType(""), false},
		{"unknown", types.PropertyType("castle"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.value.Valid())
		})
	}
}

func TestQueryFilterUnmarshal(t *testing.T) {
	payload := `{
		"hard_constraints": {
			"city": null,
			"district": "楠梓區",
			"street": null,
			"min_price": null,
			"max_price": 10000000,
			"min_interior_area": null,
			"min_bedroom": 3,
			"min_bathroom": null,
			"property_type": null,
			"min_age": null,
			"max_age": null
		},
		"soft_requirements": []
	}`

	var qf types.QueryFilter
	require.NoError(t, json.Unmarshal([]byte(payload), &qf))

	require.NotNil(t, qf.HardConstraints.District)
	assert.Equal(t, "楠梓區", *qf.HardConstraints.District)
	require.NotNil(t, qf.HardConstraints.MaxPrice)
	assert.Equal(t, int64(10000000), *qf.HardConstraints.MaxPrice)
	require.NotNil(t, qf.HardConstraints.MinBedroom)
	assert.Equal(t, int64(3), *qf.HardConstraints.MinBedroom)
	assert.Nil(t, qf.HardConstraints.City)
	assert.Nil(t, qf.HardConstraints.PropertyType)
	assert.Empty(t, qf.SoftRequirements)
}

func TestQueryFilterZeroValueIsValid(t *testing.T) {
	// All-null constraints plus no soft requirements is a legal filter,
	// not an error condition.
	var qf types.QueryFilter
	assert.Nil(t, qf.HardConstraints.City)
	assert.Nil(t, qf.HardConstraints.MinPrice)
	assert.Empty(t, qf.SoftRequirements)
}

func TestPropertyCandidateHasEmbedding(t *testing.T) {
	assert.False(t, types.PropertyCandidate{PropertyID: "p1"}.HasEmbedding())
	assert.False(t, types.PropertyCandidate{Embedding: []float32{}}.HasEmbedding())
	assert.True(t, types.PropertyCandidate{Embedding: []float32{0.1, 0.2}}.HasEmbedding())
}
