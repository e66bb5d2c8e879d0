package idgen

import (
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducesSortableIdentifiers(t *testing.T) {
	base := time.UnixMilli(1700000000000).UTC()
	first := NewGenerator(WithClock(func() time.Time { return base })).New()
	second := NewGenerator(WithClock(func() time.Time { return base.Add(5 * time.Millisecond) })).New()

	require.Len(t, first, 26)
	require.Len(t, second, 26)
	// Generated more than one millisecond apart: lexicographic order follows time.
	assert.True(t, first < second)

	firstMs, err := DecodeTimestamp(first)
	require.NoError(t, err)
	secondMs, err := DecodeTimestamp(second)
	require.NoError(t, err)
	assert.Less(t, firstMs, secondMs)
}

func TestNewPrefixed(t *testing.T) {
	id := NewPrefixed(PrefixContact)
	assert.True(t, strings.HasPrefix(id, "CNT-"))
	assert.Len(t, id, len("CNT-")+26)

	id = NewPrefixed(PrefixCompany)
	assert.True(t, strings.HasPrefix(id, "COMP-"))
}

func TestDecodeTimestampRoundTrip(t *testing.T) {
	cases := []int64{0, 1, 1700000000000, int64(ulid.MaxTime())}
	for _, ms := range cases {
		g := NewGenerator(WithClock(func() time.Time { return time.UnixMilli(ms).UTC() }))
		id := g.NewPrefixed(PrefixSubmission)
		decoded, err := DecodeTimestamp(id)
		require.NoError(t, err, "ms %d", ms)
		assert.Equal(t, ms, decoded, "ms %d", ms)
	}
}

func TestDecodeTimestampRejectsMalformedInput(t *testing.T) {
	valid := New()
	cases := map[string]string{
		"empty":            "",
		"too short":        valid[:25],
		"too long":         valid + "0",
		"bad alphabet":     strings.Replace(valid, valid[10:11], "U", 1),
		"lowercase":        strings.ToLower(valid),
		"prefix only":      "CNT-",
		"prefixed short":   "CNT-" + valid[:20],
		"excluded letters": "ILOU" + valid[4:],
	}
	for name, id := range cases {
		_, err := DecodeTimestamp(id)
		require.Error(t, err, name)
		var formatErr *ErrInvalidFormat
		assert.ErrorAs(t, err, &formatErr, name)
	}
}

func TestDecodeTimestampStripsPrefix(t *testing.T) {
	g := NewGenerator(WithClock(func() time.Time { return time.UnixMilli(42).UTC() }))
	bare := g.New()
	prefixed := "ACT-" + bare

	fromBare, err := DecodeTimestamp(bare)
	require.NoError(t, err)
	fromPrefixed, err := DecodeTimestamp(prefixed)
	require.NoError(t, err)
	assert.Equal(t, fromBare, fromPrefixed)
	assert.EqualValues(t, 42, fromPrefixed)
}
