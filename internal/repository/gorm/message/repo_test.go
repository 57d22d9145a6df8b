package messagegorm

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajansharma08/lyftr-webhook-api/internal/db/gormdb"
	"github.com/rajansharma08/lyftr-webhook-api/internal/domain/message"
	"gorm.io/gorm"
)

// newTestRepo opens a fresh sqlite database in a per-test temp dir and
// initializes the schema. A single pooled connection keeps sqlite's writer
// lock from surfacing as busy errors in concurrent tests.
func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	adapter, err := gormdb.New("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	sqlDB, err := adapter.Conn().(*gorm.DB).DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	repo := NewRepository(adapter)
	require.NoError(t, repo.Init(context.Background()))

	return repo
}

func str(s string) *string { return &s }

func testMessage(id, from, ts string) *message.Message {
	return &message.Message{
		MessageID: id,
		From:      from,
		To:        "+14155550100",
		TS:        ts,
		Text:      str("hello from " + from),
	}
}

func TestInit_Idempotent(t *testing.T) {
	repo := newTestRepo(t)

	// Repeated schema init must not fail once the table exists.
	require.NoError(t, repo.Init(context.Background()))
	require.NoError(t, repo.Init(context.Background()))
}

func TestInsert_CreatedThenAlreadyExists(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	m := testMessage("m1", "+1111", "2025-01-01T00:00:00Z")

	outcome, err := repo.Insert(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, message.Created, outcome)
	assert.NotEmpty(t, m.ReceivedAt, "first insert assigns ReceivedAt")

	firstReceivedAt := m.ReceivedAt

	// Second insert of the same id: no error, no second row, no mutation.
	dup := testMessage("m1", "+9999", "2099-01-01T00:00:00Z")
	outcome, err = repo.Insert(ctx, dup)
	require.NoError(t, err)
	assert.Equal(t, message.AlreadyExists, outcome)

	items, total, err := repo.List(ctx, message.ListFilter{Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].MessageID)
	assert.Equal(t, "+1111", items[0].From, "existing row left untouched")
	assert.Equal(t, firstReceivedAt, items[0].ReceivedAt)
}

func TestInsert_ConcurrentSameID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const workers = 16

	var wg sync.WaitGroup
	outcomes := make([]message.InsertOutcome, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m := testMessage("race-1", "+1111", "2025-01-01T00:00:00Z")
			outcomes[i], errs[i] = repo.Insert(ctx, m)
		}(i)
	}
	wg.Wait()

	created := 0
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		if outcomes[i] == message.Created {
			created++
		}
	}
	assert.Equal(t, 1, created, "exactly one caller wins the row")

	_, total, err := repo.List(ctx, message.ListFilter{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestExists(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	ok, err := repo.Exists(ctx, "m1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Insert(ctx, testMessage("m1", "+1111", "2025-01-01T00:00:00Z"))
	require.NoError(t, err)

	ok, err = repo.Exists(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestList_OrderingAndTieBreak(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Insert out of order, including a timestamp tie.
	inserts := []*message.Message{
		testMessage("b", "+1111", "2025-01-02T00:00:00Z"),
		testMessage("c", "+1111", "2025-01-01T00:00:00Z"),
		testMessage("a", "+1111", "2025-01-02T00:00:00Z"),
		testMessage("d", "+1111", "2025-01-03T00:00:00Z"),
	}
	for _, m := range inserts {
		_, err := repo.Insert(ctx, m)
		require.NoError(t, err)
	}

	items, total, err := repo.List(ctx, message.ListFilter{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)

	got := make([]string, len(items))
	for i, m := range items {
		got[i] = m.MessageID
	}
	// ts ascending, message_id ascending on the tied timestamp.
	assert.Equal(t, []string{"c", "a", "b", "d"}, got)
}

func TestList_Filters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	m1 := testMessage("m1", "+1111", "2025-01-01T00:00:00Z")
	m1.Text = str("alpha beta")
	m2 := testMessage("m2", "+2222", "2025-01-02T00:00:00Z")
	m2.Text = str("beta gamma")
	m3 := testMessage("m3", "+1111", "2025-01-03T00:00:00Z")
	m3.Text = nil

	for _, m := range []*message.Message{m1, m2, m3} {
		_, err := repo.Insert(ctx, m)
		require.NoError(t, err)
	}

	// Exact sender match.
	items, total, err := repo.List(ctx, message.ListFilter{Limit: 10, From: "+1111"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)

	// since is inclusive.
	items, total, err = repo.List(ctx, message.ListFilter{Limit: 10, Since: "2025-01-02T00:00:00Z"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "m2", items[0].MessageID)

	// Substring match on text.
	_, total, err = repo.List(ctx, message.ListFilter{Limit: 10, TextContains: "beta"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	// Filters combine with AND.
	items, total, err = repo.List(ctx, message.ListFilter{Limit: 10, From: "+1111", TextContains: "beta"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "m1", items[0].MessageID)

	// No match.
	items, total, err = repo.List(ctx, message.ListFilter{Limit: 10, From: "+404"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, items)
}

func TestList_TotalIndependentOfPagination(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		m := testMessage(fmt.Sprintf("m%d", i), "+1111",
			fmt.Sprintf("2025-01-0%dT00:00:00Z", i+1))
		_, err := repo.Insert(ctx, m)
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	for offset := 0; offset < 7; offset += 3 {
		items, total, err := repo.List(ctx, message.ListFilter{Limit: 3, Offset: offset})
		require.NoError(t, err)
		assert.EqualValues(t, 7, total, "total must not depend on limit/offset")
		for _, m := range items {
			assert.False(t, seen[m.MessageID], "pages must not overlap")
			seen[m.MessageID] = true
		}
	}
	assert.Len(t, seen, 7)
}

func TestStats_EmptyStore(t *testing.T) {
	repo := newTestRepo(t)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 0, stats.TotalMessages)
	assert.EqualValues(t, 0, stats.SendersCount)
	assert.Empty(t, stats.PerSender)
	assert.Nil(t, stats.FirstTS)
	assert.Nil(t, stats.LastTS)
}

func TestStats_Aggregates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// +1111 sends three, +2222 two, +3333 one.
	counts := map[string]int{"+1111": 3, "+2222": 2, "+3333": 1}
	i := 0
	for from, n := range counts {
		for j := 0; j < n; j++ {
			i++
			m := testMessage(fmt.Sprintf("m%d", i), from,
				fmt.Sprintf("2025-01-01T00:00:%02dZ", i))
			_, err := repo.Insert(ctx, m)
			require.NoError(t, err)
		}
	}

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 6, stats.TotalMessages)
	assert.EqualValues(t, 3, stats.SendersCount)

	require.Len(t, stats.PerSender, 3)
	assert.Equal(t, "+1111", stats.PerSender[0].From)
	assert.EqualValues(t, 3, stats.PerSender[0].Count)
	assert.Equal(t, "+2222", stats.PerSender[1].From)
	assert.Equal(t, "+3333", stats.PerSender[2].From)

	require.NotNil(t, stats.FirstTS)
	require.NotNil(t, stats.LastTS)
	assert.Equal(t, "2025-01-01T00:00:01Z", *stats.FirstTS)
	assert.Equal(t, "2025-01-01T00:00:06Z", *stats.LastTS)
}

func TestStats_TopSendersCappedAtTen(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 13; i++ {
		m := testMessage(fmt.Sprintf("m%d", i), fmt.Sprintf("+1%03d", i),
			"2025-01-01T00:00:00Z")
		_, err := repo.Insert(ctx, m)
		require.NoError(t, err)
	}

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)

	assert.Len(t, stats.PerSender, 10)
	for i := 1; i < len(stats.PerSender); i++ {
		assert.GreaterOrEqual(t, stats.PerSender[i-1].Count, stats.PerSender[i].Count,
			"top senders must be ordered by count descending")
	}
}

func TestReady(t *testing.T) {
	repo := newTestRepo(t)

	assert.True(t, repo.Ready(context.Background()))
}
