package store

import (
	"errors"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/record"
)

type level int8

type label string

type code struct{ n int }

func (c code) String() string { return "code" }

func TestNormalize(t *testing.T) {
	seen := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	name := "edge"
	var nilName *string

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"string", "a", "a"},
		{"bool", true, true},
		{"int", 7, int64(7)},
		{"named int", level(-3), int64(-3)},
		{"uint16", uint16(8080), int64(8080)},
		{"float32", float32(0.5), 0.5},
		{"named string", label("l"), "l"},
		{"time", seen, seen},
		{"bytes", []byte("raw"), []byte("raw")},
		{"pointer", &name, "edge"},
		{"nil pointer", nilName, nil},
		{"text marshaler", netip.MustParseAddr("10.0.0.1"), "10.0.0.1"},
		{"stringer", code{n: 1}, "code"},
		{"slice", []int{80, 443}, []any{int64(80), int64(443)}},
		{"array", [2]string{"a", "b"}, []any{"a", "b"}},
		{"nil slice", []string(nil), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"map", map[string]any{"a": 1}},
		{"channel", make(chan int)},
		{"nested map", []any{map[string]int{}}},
		{"uint64 overflow", uint64(1 << 63)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.in)
			assert.True(t, errors.Is(err, ErrUnsupportedValue), "error = %v", err)
		})
	}
}

func TestNormalizeProperties(t *testing.T) {
	got, err := NormalizeProperties(record.Properties{"n": 3, record.MarkerKey: "pkg.T"})
	require.NoError(t, err)
	assert.Equal(t, record.Properties{"n": int64(3), record.MarkerKey: "pkg.T"}, got)

	_, err = NormalizeProperties(record.Properties{"bad": map[string]any{}})
	assert.ErrorIs(t, err, ErrUnsupportedValue)
	assert.Contains(t, err.Error(), "property bad")
}
