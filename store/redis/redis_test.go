package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/record"
	"github.com/zoobzio/record/store"
	rtesting "github.com/zoobzio/record/testing"
)

func TestNewWithClient_Prefix(t *testing.T) {
	s := NewWithClient(nil, "")
	assert.Equal(t, "record:k1", s.key("k1"))

	s = NewWithClient(nil, "app:")
	assert.Equal(t, "app:k1", s.key("k1"))
}

func TestEncodeHash(t *testing.T) {
	fields, err := encodeHash(record.Properties{
		"name":           "thermo",
		"count":          3,
		"value":          21.5,
		"active":         true,
		"tags":           []string{"a", "b"},
		"raw":            []byte("xy"),
		"seen":           time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		"alias":          (*string)(nil),
		record.MarkerKey: "pkg.T",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name":           `"thermo"`,
		"count":          `3`,
		"value":          `21.5`,
		"active":         `true`,
		"tags":           `["a","b"]`,
		"raw":            `"xy"`,
		"seen":           `"2024-05-01T12:00:00Z"`,
		"alias":          `null`,
		record.MarkerKey: `"pkg.T"`,
	}, fields)
}

func TestEncodeHash_Unsupported(t *testing.T) {
	_, err := encodeHash(record.Properties{"m": map[string]any{}})
	assert.ErrorIs(t, err, store.ErrUnsupportedValue)
}

func TestDecodeHash(t *testing.T) {
	p, err := decodeHash(map[string]string{
		"count": "3",
		"tags":  `["a","b"]`,
		"alias": "null",
	})
	require.NoError(t, err)
	assert.Equal(t, record.Properties{
		"count": int64(3),
		"tags":  []any{"a", "b"},
		"alias": nil,
	}, p)

	_, err = decodeHash(map[string]string{"bad": "{"})
	assert.Error(t, err)
}

func TestDecodeHash_Numbers(t *testing.T) {
	p, err := decodeHash(map[string]string{
		"big":   "9007199254740993",
		"ratio": "0.25",
		"ids":   "[1, 9007199254740993, 2.5]",
	})
	require.NoError(t, err)
	assert.Equal(t, record.Properties{
		"big":   int64(9007199254740993),
		"ratio": 0.25,
		"ids":   []any{int64(1), int64(9007199254740993), 2.5},
	}, p)

	_, err = decodeHash(map[string]string{"two": "1 2"})
	assert.Error(t, err)
}

type ledgerEntry struct {
	ID     int64   `prop:"id"`
	Amount float64 `prop:"amount"`
}

func TestHash_LargeIntegerRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := rtesting.Codec[ledgerEntry](t)
	original := ledgerEntry{ID: 9007199254740993, Amount: 12.5}

	props, err := c.Serialize(ctx, original)
	require.NoError(t, err)
	fields, err := encodeHash(props)
	require.NoError(t, err)

	stored := make(map[string]string, len(fields))
	for k, v := range fields {
		stored[k] = v.(string)
	}
	decoded, err := decodeHash(stored)
	require.NoError(t, err)

	got, err := c.Deserialize(ctx, decoded)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestHash_RecordRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := rtesting.Codec[rtesting.Reading](t)
	original := rtesting.SampleReading()

	props, err := c.Serialize(ctx, original)
	require.NoError(t, err)

	fields, err := encodeHash(props)
	require.NoError(t, err)

	// HGETALL hands every field back as a string.
	stored := make(map[string]string, len(fields))
	for k, v := range fields {
		stored[k] = v.(string)
	}

	decoded, err := decodeHash(stored)
	require.NoError(t, err)

	got, err := c.Deserialize(ctx, decoded)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestPut_Rejects(t *testing.T) {
	s := NewWithClient(nil, "")
	ctx := context.Background()

	assert.ErrorIs(t, s.Put(ctx, "", record.Properties{"x": 1}), store.ErrEmptyKey)
	assert.ErrorIs(t, s.Put(ctx, "k", record.Properties{}), ErrEmptyProperties)
}

// TestStore_Redis requires a running Redis instance. Set REDIS_ADDR to run it.
func TestStore_Redis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" || testing.Short() {
		t.Skip("Skipping integration test: REDIS_ADDR not set")
	}

	ctx := context.Background()
	s, err := New(ctx, Config{Addr: addr, Prefix: "record-test:"})
	require.NoError(t, err)
	defer s.Close()

	c := rtesting.Codec[rtesting.Reading](t)
	original := rtesting.SampleReading()

	key, err := store.Save(ctx, s, c, "", original)
	require.NoError(t, err)
	defer func() { _ = s.Delete(ctx, key) }()

	got, err := store.Fetch(ctx, s, c, key)
	require.NoError(t, err)
	assert.Equal(t, original, got)

	require.NoError(t, s.Delete(ctx, key))
	assert.ErrorIs(t, s.Delete(ctx, key), store.ErrNotFound)
}

func TestNew_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := New(ctx, Config{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
