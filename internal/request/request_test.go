package request

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListQuery_Defaults(t *testing.T) {
	f, err := ParseListQuery(url.Values{})
	require.NoError(t, err)

	assert.Zero(t, f.Limit)
	assert.Zero(t, f.Offset)
	assert.Empty(t, f.From)
	assert.Empty(t, f.Since)
	assert.Empty(t, f.TextContains)
}

func TestParseListQuery_AllParams(t *testing.T) {
	q := url.Values{}
	q.Set("limit", "25")
	q.Set("offset", "10")
	q.Set("from", "+1111")
	q.Set("since", "2025-01-01T00:00:00Z")
	q.Set("q", "hello")

	f, err := ParseListQuery(q)
	require.NoError(t, err)

	assert.Equal(t, 25, f.Limit)
	assert.Equal(t, 10, f.Offset)
	assert.Equal(t, "+1111", f.From)
	assert.Equal(t, "2025-01-01T00:00:00Z", f.Since)
	assert.Equal(t, "hello", f.TextContains)
}

func TestParseListQuery_BadNumbers(t *testing.T) {
	q := url.Values{}
	q.Set("limit", "abc")
	_, err := ParseListQuery(q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit")

	q = url.Values{}
	q.Set("offset", "1.5")
	_, err = ParseListQuery(q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offset")
}
