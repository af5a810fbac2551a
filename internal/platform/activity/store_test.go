package activity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/moonwallet/internal/platform/activity"
)

const testAddr = "0x1111111111111111111111111111111111111111"

func rec(hash string, status activity.Status, ts int64) activity.Record {
	return activity.Record{
		Hash:      hash,
		Sender:    testAddr,
		Recipient: "0x2222222222222222222222222222222222222222",
		Amount:    1_000_000,
		Status:    status,
		Timestamp: ts,
	}
}

func TestStore_MergeIsIdempotent(t *testing.T) {
	store := activity.NewStore(testAddr)
	batch := []activity.Record{
		rec("h1", activity.StatusConfirmed, 100),
		rec("h2", activity.StatusConfirmed, 200),
	}

	store.Merge(batch)
	first := store.Snapshot()

	store.Merge(batch)
	second := store.Snapshot()

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, first, second)
}

func TestStore_OneRecordPerHash(t *testing.T) {
	store := activity.NewStore(testAddr)

	store.Merge([]activity.Record{rec("h1", activity.StatusPending, 0)})
	store.Merge([]activity.Record{rec("h1", activity.StatusConfirmed, 150)})

	assert.Equal(t, 1, store.Len())

	got, ok := store.Get("h1")
	require.True(t, ok)
	assert.Equal(t, activity.StatusConfirmed, got.Status)
	assert.Equal(t, int64(150), got.Timestamp)
}

func TestStore_ConfirmedNeverRevertsToPending(t *testing.T) {
	store := activity.NewStore(testAddr)

	store.Merge([]activity.Record{rec("h1", activity.StatusConfirmed, 150)})

	// A stale snapshot may still carry the pending form
	store.Merge([]activity.Record{rec("h1", activity.StatusPending, 0)})

	got, ok := store.Get("h1")
	require.True(t, ok)
	assert.Equal(t, activity.StatusConfirmed, got.Status)
	assert.Equal(t, int64(150), got.Timestamp)
}

func TestStore_SnapshotNewestFirst(t *testing.T) {
	store := activity.NewStore(testAddr)
	store.Merge([]activity.Record{
		rec("old", activity.StatusConfirmed, 100),
		rec("new", activity.StatusConfirmed, 300),
		rec("mid", activity.StatusConfirmed, 200),
	})

	snap := store.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "new", snap[0].Hash)
	assert.Equal(t, "mid", snap[1].Hash)
	assert.Equal(t, "old", snap[2].Hash)
}

func TestStore_PendingSortsAsNewest(t *testing.T) {
	store := activity.NewStore(testAddr)
	store.Merge([]activity.Record{
		rec("confirmed", activity.StatusConfirmed, 500),
		rec("pending", activity.StatusPending, 0),
	})

	snap := store.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "pending", snap[0].Hash)
}

func TestStore_OrderStableAsStoreGrows(t *testing.T) {
	store := activity.NewStore(testAddr)
	store.Merge([]activity.Record{
		rec("a", activity.StatusConfirmed, 10),
		rec("b", activity.StatusConfirmed, 5),
	})

	snap := store.Snapshot()
	require.Equal(t, []string{"a", "b"}, hashes(snap))

	// A record arriving between the two slots in; a and b keep their
	// relative order
	store.Merge([]activity.Record{rec("c", activity.StatusConfirmed, 7)})

	snap = store.Snapshot()
	assert.Equal(t, []string{"a", "c", "b"}, hashes(snap))
}

func TestStore_TimestampTiesKeepArrivalOrder(t *testing.T) {
	store := activity.NewStore(testAddr)
	store.Merge([]activity.Record{
		rec("first", activity.StatusConfirmed, 100),
		rec("second", activity.StatusConfirmed, 100),
	})

	for i := 0; i < 5; i++ {
		store.Merge([]activity.Record{rec("other", activity.StatusConfirmed, 50)})
		snap := store.Snapshot()
		assert.Equal(t, []string{"first", "second", "other"}, hashes(snap))
	}
}

func TestStore_OnChangeFiresOncePerEffectiveMerge(t *testing.T) {
	store := activity.NewStore(testAddr)
	calls := 0
	store.OnChange(func() { calls++ })

	batch := []activity.Record{rec("h1", activity.StatusConfirmed, 100)}
	store.Merge(batch)
	assert.Equal(t, 1, calls)

	// Re-merging identical data changes nothing; listeners stay quiet
	store.Merge(batch)
	assert.Equal(t, 1, calls)

	store.Merge([]activity.Record{rec("h2", activity.StatusConfirmed, 200)})
	assert.Equal(t, 2, calls)
}

func TestStore_IgnoresEmptyHash(t *testing.T) {
	store := activity.NewStore(testAddr)
	store.Merge([]activity.Record{rec("", activity.StatusConfirmed, 100)})
	assert.Equal(t, 0, store.Len())
}

func hashes(records []activity.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Hash
	}
	return out
}
