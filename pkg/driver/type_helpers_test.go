package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsString(t *testing.T) {
	s, ok := AsString("hello")
	assert.True(t, ok)
	assert.Equal(t, "hello", s)

	_, ok = AsString(nil)
	assert.False(t, ok)

	_, ok = AsString(42)
	assert.False(t, ok)
}

func TestAsInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
		ok   bool
	}{
		{"int64", int64(7), 7, true},
		{"int", 7, 7, true},
		{"int32", int32(7), 7, true},
		{"float64", 7.0, 0, false},
		{"nil", nil, 0, false},
		{"string", "7", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AsInt64(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAsFloat64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float64", 2.5, 2.5, true},
		{"float32", float32(2.5), 2.5, true},
		{"int64 widened", int64(12800000), 12800000, true},
		{"nil", nil, 0, false},
		{"string", "2.5", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AsFloat64(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAsFloat32Slice(t *testing.T) {
	assert.Nil(t, AsFloat32Slice(nil))
	assert.Nil(t, AsFloat32Slice("not a list"))
	assert.Nil(t, AsFloat32Slice([]any{1.0, "bad"}))

	assert.Equal(t, []float32{1, 2}, AsFloat32Slice([]float32{1, 2}))
	assert.Equal(t, []float32{0.5, 1.5}, AsFloat32Slice([]float64{0.5, 1.5}))
	assert.Equal(t, []float32{0.5, 1.5}, AsFloat32Slice([]any{0.5, 1.5}))
	assert.Equal(t, []float32{1, 2}, AsFloat32Slice([]any{int64(1), int64(2)}))
}
