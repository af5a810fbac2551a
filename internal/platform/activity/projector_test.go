package activity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/moonwallet/internal/platform/activity"
)

func snapshotOf(records ...activity.Record) []activity.Record {
	store := activity.NewStore(testAddr)
	store.Merge(records)
	return store.Snapshot()
}

func TestProject_DefaultQueryReturnsFirstPage(t *testing.T) {
	snap := snapshotOf(
		rec("h1", activity.StatusConfirmed, 300),
		rec("h2", activity.StatusConfirmed, 200),
		rec("h3", activity.StatusConfirmed, 100),
	)

	result := activity.Project(snap, activity.Query{})

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 3, result.TotalRecords)
	assert.Equal(t, []string{"h1", "h2", "h3"}, hashes(result.Records))
}

func TestProject_SearchMatchesHashSenderRecipient(t *testing.T) {
	other := activity.Record{
		Hash:      "deadbeef",
		Sender:    "0x3333333333333333333333333333333333333333",
		Recipient: "0x4444444444444444444444444444444444444444",
		Status:    activity.StatusConfirmed,
		Timestamp: 50,
	}
	snap := snapshotOf(
		rec("h1", activity.StatusConfirmed, 300),
		other,
	)

	byHash := activity.Project(snap, activity.Query{Search: "DEADBEEF"})
	require.Equal(t, 1, byHash.TotalRecords)
	assert.Equal(t, "deadbeef", byHash.Records[0].Hash)

	bySender := activity.Project(snap, activity.Query{Search: "3333"})
	require.Equal(t, 1, bySender.TotalRecords)
	assert.Equal(t, "deadbeef", bySender.Records[0].Hash)

	byRecipient := activity.Project(snap, activity.Query{Search: "4444"})
	require.Equal(t, 1, byRecipient.TotalRecords)

	miss := activity.Project(snap, activity.Query{Search: "nomatch"})
	assert.Equal(t, 0, miss.TotalRecords)
}

func TestProject_StatusFilter(t *testing.T) {
	snap := snapshotOf(
		rec("p1", activity.StatusPending, 0),
		rec("c1", activity.StatusConfirmed, 100),
		rec("c2", activity.StatusConfirmed, 200),
	)

	pending := activity.Project(snap, activity.Query{Status: "pending"})
	assert.Equal(t, []string{"p1"}, hashes(pending.Records))

	confirmed := activity.Project(snap, activity.Query{Status: "confirmed"})
	assert.Equal(t, 2, confirmed.TotalRecords)

	all := activity.Project(snap, activity.Query{Status: activity.StatusAll})
	assert.Equal(t, 3, all.TotalRecords)
}

func TestProject_SortOldestAndAmount(t *testing.T) {
	a := rec("a", activity.StatusConfirmed, 100)
	a.Amount = 5
	b := rec("b", activity.StatusConfirmed, 200)
	b.Amount = 50
	c := rec("c", activity.StatusConfirmed, 300)
	c.Amount = 20
	snap := snapshotOf(a, b, c)

	oldest := activity.Project(snap, activity.Query{Sort: activity.SortOldest})
	assert.Equal(t, []string{"a", "b", "c"}, hashes(oldest.Records))

	byAmount := activity.Project(snap, activity.Query{Sort: activity.SortAmountDesc})
	assert.Equal(t, []string{"b", "c", "a"}, hashes(byAmount.Records))
}

func TestProject_Pagination(t *testing.T) {
	var records []activity.Record
	for i := 0; i < 25; i++ {
		records = append(records, rec(string(rune('a'+i)), activity.StatusConfirmed, int64(1000-i)))
	}
	snap := snapshotOf(records...)

	page1 := activity.Project(snap, activity.Query{Page: 1})
	assert.Equal(t, 10, len(page1.Records))
	assert.Equal(t, 3, page1.TotalPages)
	assert.Equal(t, 25, page1.TotalRecords)

	page3 := activity.Project(snap, activity.Query{Page: 3})
	assert.Equal(t, 5, len(page3.Records))
}

func TestProject_PageBeyondEndClampsToLastPage(t *testing.T) {
	snap := snapshotOf(
		rec("h1", activity.StatusConfirmed, 300),
		rec("h2", activity.StatusConfirmed, 200),
	)

	result := activity.Project(snap, activity.Query{Page: 9999, PageSize: 1})

	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 2, result.TotalPages)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "h2", result.Records[0].Hash)
}

func TestProject_EmptySnapshot(t *testing.T) {
	result := activity.Project(nil, activity.Query{})

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 0, result.TotalRecords)
	assert.Empty(t, result.Records)
}

func TestProject_IsPureFunction(t *testing.T) {
	snap := snapshotOf(
		rec("h1", activity.StatusConfirmed, 300),
		rec("h2", activity.StatusPending, 0),
	)
	q := activity.Query{Status: activity.StatusAll, Sort: activity.SortNewest}

	first := activity.Project(snap, q)
	second := activity.Project(snap, q)

	assert.Equal(t, first, second)
}
