package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajansharma08/lyftr-webhook-api/internal/cache"
)

func TestStatsReporter_CachesSnapshot(t *testing.T) {
	repo := newFakeRepo()
	c := newFakeCache()
	rep := NewStatsReporter(repo, c, discardLogger(), time.Minute)

	require.NoError(t, rep.Report(context.Background()))

	snapshot, err := c.Get(context.Background(), cache.StatsSnapshot.Key("latest"))
	require.NoError(t, err)
	assert.Contains(t, snapshot, "TotalMessages")
}

func TestStatsReporter_NilCache(t *testing.T) {
	repo := newFakeRepo()
	rep := NewStatsReporter(repo, nil, discardLogger(), time.Minute)

	assert.NoError(t, rep.Report(context.Background()))
}
