package window

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2018, 4, 16, 13, 7, 42, 0, time.UTC)

func TestParseNoParams(t *testing.T) {
	w, err := Parse(nil, now)
	require.NoError(t, err)

	assert.True(t, w.Open())
	assert.Equal(t, "2018-04-16T13:07:00", w.ToText())
	assert.Equal(t, "twitter/infinite_2018-04-16T13:07:00.json", w.Key(DefaultPrefix))
}

func TestParseEmptyFromIsAbsent(t *testing.T) {
	withEmpty, err := Parse(map[string]string{"from": "", "to": "2018-04-16-12-10"}, now)
	require.NoError(t, err)
	without, err := Parse(map[string]string{"to": "2018-04-16-12-10"}, now)
	require.NoError(t, err)

	assert.Equal(t, without, withEmpty)
	assert.True(t, withEmpty.Open())
}

func TestParseToDefaultsToNow(t *testing.T) {
	for _, params := range []map[string]string{
		{"from": "2018-04-16-10-10"},
		{"from": "2018-04-16-10-10", "to": ""},
		{},
	} {
		w, err := Parse(params, now)
		require.NoError(t, err)
		assert.Equal(t, "2018-04-16T13:07:00", w.ToText())
	}
}

func TestParseFullWindow(t *testing.T) {
	w, err := Parse(map[string]string{"from": "2018-04-16-12-05", "to": "2018-04-16-12-10"}, now)
	require.NoError(t, err)

	assert.Equal(t, "twitter/2018-04-16T12:05:00_2018-04-16T12:10:00.json", w.Key("twitter"))
	assert.Equal(t, "2018-04-16T12:05:00_2018-04-16T12:10:00.json", w.Key(""))
}

func TestParseReportsFromBeforeTo(t *testing.T) {
	_, err := Parse(map[string]string{"from": "not-a-date", "to": "also-bad"}, now)
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "from", perr.Param)
	assert.NotEmpty(t, err.Error())

	_, err = Parse(map[string]string{"from": "2018-04-16-12-05", "to": "2018-13-16-12-10"}, now)
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "to", perr.Param)
}

func TestInvertedWindowIsAccepted(t *testing.T) {
	w, err := Parse(map[string]string{"from": "2018-04-16-12-10", "to": "2018-04-16-12-05"}, now)
	require.NoError(t, err)

	f := w.Filter()
	assert.False(t, f.Match("2018-04-16T12:07:00"))
}

func TestFilter(t *testing.T) {
	w, err := Parse(map[string]string{"from": "2018-04-16-12-05", "to": "2018-04-16-12-10"}, now)
	require.NoError(t, err)

	f := w.Filter()
	assert.Equal(t, "created_at > :from and created_at < :to", f.Expression)
	assert.Equal(t, map[string]string{
		":from": "2018-04-16T12:05:00",
		":to":   "2018-04-16T12:10:00",
	}, f.Values)

	assert.False(t, f.Match("2018-04-16T12:05:00"))
	assert.True(t, f.Match("2018-04-16T12:05:01"))
	assert.True(t, f.Match("2018-04-16T12:09:59"))
	assert.False(t, f.Match("2018-04-16T12:10:00"))

	open, err := Parse(nil, now)
	require.NoError(t, err)
	of := open.Filter()
	assert.Equal(t, "created_at < :to", of.Expression)
	assert.Len(t, of.Values, 1)
	assert.True(t, of.Match("1970-01-01T00:00:00"))
}
