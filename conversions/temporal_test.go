package conversions

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var durationType = reflect.TypeOf(time.Duration(0))

func TestDefaultConverterPairs(t *testing.T) {
	c := mustNew(t, Config{})

	assert.True(t, c.HasWriteTargetTo(timeType, stringType))
	assert.True(t, c.HasWriteTargetTo(timeType, int64Type))
	assert.True(t, c.HasReadTarget(stringType, timeType))
	assert.True(t, c.HasReadTarget(int64Type, timeType))

	assert.True(t, c.HasWriteTargetTo(durationType, stringType))
	assert.True(t, c.HasWriteTargetTo(durationType, int64Type))
	assert.True(t, c.HasReadTarget(stringType, durationType))
	assert.True(t, c.HasReadTarget(int64Type, durationType))

	// The untargeted form resolves to the first registered pair.
	target, ok := c.WriteTarget(timeType)
	require.True(t, ok)
	assert.Equal(t, stringType, target)
}

func TestDefaultConvertersRoundTrip(t *testing.T) {
	findFn := func(t *testing.T, c *Conversions, pair TypePair, wantWriting bool) ConvertFunc {
		t.Helper()
		rec := &recordingRegistrar{}
		require.NoError(t, c.RegisterConvertersIn(rec))
		for _, conv := range rec.converters {
			if conv.Source == pair.Source && conv.Target == pair.Target && conv.Cap.Writing == wantWriting {
				return conv.Fn
			}
		}
		t.Fatalf("no converter registered for %s", pair)
		return nil
	}

	c := mustNew(t, Config{})

	t.Run("instant via string", func(t *testing.T) {
		write := findFn(t, c, TypePair{Source: timeType, Target: stringType}, true)
		read := findFn(t, c, TypePair{Source: stringType, Target: timeType}, false)

		now := time.Date(2026, 8, 24, 10, 30, 0, 123456789, time.UTC)
		encoded, err := write(now)
		require.NoError(t, err)
		decoded, err := read(encoded)
		require.NoError(t, err)
		assert.True(t, now.Equal(decoded.(time.Time)))
	})

	t.Run("instant via epoch millis", func(t *testing.T) {
		write := findFn(t, c, TypePair{Source: timeType, Target: int64Type}, true)
		read := findFn(t, c, TypePair{Source: int64Type, Target: timeType}, false)

		now := time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC)
		encoded, err := write(now)
		require.NoError(t, err)
		assert.Equal(t, now.UnixMilli(), encoded)
		decoded, err := read(encoded)
		require.NoError(t, err)
		assert.True(t, now.Equal(decoded.(time.Time)))
	})

	t.Run("duration via string", func(t *testing.T) {
		write := findFn(t, c, TypePair{Source: durationType, Target: stringType}, true)
		read := findFn(t, c, TypePair{Source: stringType, Target: durationType}, false)

		d := 90 * time.Second
		encoded, err := write(d)
		require.NoError(t, err)
		assert.Equal(t, "1m30s", encoded)
		decoded, err := read(encoded)
		require.NoError(t, err)
		assert.Equal(t, d, decoded)
	})

	t.Run("duration via nanos", func(t *testing.T) {
		write := findFn(t, c, TypePair{Source: durationType, Target: int64Type}, true)
		read := findFn(t, c, TypePair{Source: int64Type, Target: durationType}, false)

		d := 250 * time.Millisecond
		encoded, err := write(d)
		require.NoError(t, err)
		decoded, err := read(encoded)
		require.NoError(t, err)
		assert.Equal(t, d, decoded)
	})
}
