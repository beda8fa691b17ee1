package lib

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s := NewSet("b", "a", "b")
	assert.Equal(t, 2, s.Size())
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))

	s.Add("c")
	s.Remove("a")
	assert.Equal(t, []string{"b", "c"}, s.AsSlice())
}

func TestDurationUnmarshalJSON(t *testing.T) {
	var got struct {
		A Duration `json:"a"`
		B Duration `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": "1.5s", "b": 2000}`), &got))
	assert.Equal(t, 1500*time.Millisecond, got.A.Duration)
	assert.Equal(t, 2000*time.Nanosecond, got.B.Duration)

	var bad Duration
	assert.Error(t, json.Unmarshal([]byte(`true`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &bad))
}

func TestDurationTOML(t *testing.T) {
	var got struct {
		Interval Duration `toml:"interval"`
	}
	_, err := toml.Decode(`interval = "250ms"`, &got)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, got.Interval.Duration)

	out, err := json.Marshal(DurationFrom(time.Minute))
	require.NoError(t, err)
	assert.JSONEq(t, `"1m0s"`, string(out))
}

func TestDurationTOMLNanoseconds(t *testing.T) {
	var got struct {
		Interval Duration `toml:"interval"`
	}
	_, err := toml.Decode(`interval = 5000000000`, &got)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, got.Interval.Duration)

	_, err = toml.Decode(`interval = "5"`, &got)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(5), got.Interval.Duration)

	_, err = toml.Decode(`interval = "soon"`, &got)
	assert.Error(t, err)
}

func TestParseSLogLevel(t *testing.T) {
	level, err := ParseSLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = ParseSLogLevel("loud")
	assert.Error(t, err)
}
