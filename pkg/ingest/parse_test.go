package ingest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionalFloat(t *testing.T) {
	tests := []struct {
		name        string
		in          any
		want        *float64
		wantDiscard int64
	}{
		{"nil", nil, nil, 0},
		{"float64", 12.5, floatPtr(12.5), 0},
		{"int", 7, floatPtr(7), 0},
		{"numeric string", "980.5", floatPtr(980.5), 0},
		{"blank string", "  ", nil, 0},
		{"json number", json.Number("3.25"), floatPtr(3.25), 0},
		{"malformed string", "N/A", nil, 1},
		{"wrong type", []string{"x"}, nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discards := &DiscardCounter{}
			got := ParseOptionalFloat(tt.in, discards)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
			assert.Equal(t, tt.wantDiscard, discards.Count())
		})
	}
}

func TestParseOptionalInt(t *testing.T) {
	tests := []struct {
		name        string
		in          any
		want        *int64
		wantDiscard int64
	}{
		{"nil", nil, nil, 0},
		{"int", 3, intPtr(3), 0},
		{"float truncates", 3.9, intPtr(3), 0},
		{"numeric string", "12", intPtr(12), 0},
		{"float string truncates", "12.7", intPtr(12), 0},
		{"blank string", "", nil, 0},
		{"json number", json.Number("5"), intPtr(5), 0},
		{"malformed string", "三", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discards := &DiscardCounter{}
			got := ParseOptionalInt(tt.in, discards)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
			assert.Equal(t, tt.wantDiscard, discards.Count())
		})
	}
}

func TestParseNilCounter(t *testing.T) {
	// A nil counter must not panic.
	assert.Nil(t, ParseOptionalFloat("junk", nil))
	assert.Nil(t, ParseOptionalInt("junk", nil))
}

func TestDiscardCounterAccumulates(t *testing.T) {
	discards := &DiscardCounter{}
	ParseOptionalFloat("a", discards)
	ParseOptionalInt("b", discards)
	ParseOptionalFloat(nil, discards)
	assert.Equal(t, int64(2), discards.Count())
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int64) *int64       { return &i }
