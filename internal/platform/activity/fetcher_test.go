package activity_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/moonwallet/internal/platform/activity"
	"github.com/kislikjeka/moonwallet/pkg/logger"
)

// =============================================================================
// Mock NodeClient
// =============================================================================

type MockNodeClient struct {
	mock.Mock
}

func (m *MockNodeClient) GetTransactions(ctx context.Context, address string) ([]activity.Record, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]activity.Record), args.Error(1)
}

func (m *MockNodeClient) GetBalance(ctx context.Context, address string) (int64, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(int64), args.Error(1)
}

var _ activity.NodeClient = (*MockNodeClient)(nil)

func testLogger() *logger.Logger {
	return logger.New("test", os.Stdout)
}

// =============================================================================
// Tests
// =============================================================================

func TestFetcher_RefreshNowMergesSnapshot(t *testing.T) {
	store := activity.NewStore(testAddr)
	client := new(MockNodeClient)
	client.On("GetTransactions", mock.Anything, testAddr).Return([]activity.Record{
		rec("h1", activity.StatusConfirmed, 100),
		rec("h2", activity.StatusPending, 0),
	}, nil)

	fetcher := activity.NewFetcher(activity.DefaultConfig(), client, store, testLogger())

	err := fetcher.RefreshNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())
	client.AssertExpectations(t)
}

func TestFetcher_RefreshNowFailureLeavesStoreUntouched(t *testing.T) {
	store := activity.NewStore(testAddr)
	store.Merge([]activity.Record{rec("h1", activity.StatusConfirmed, 100)})

	client := new(MockNodeClient)
	client.On("GetTransactions", mock.Anything, testAddr).Return(nil, errors.New("node unreachable"))

	fetcher := activity.NewFetcher(activity.DefaultConfig(), client, store, testLogger())

	err := fetcher.RefreshNow(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestFetcher_RunFetchesImmediatelyAndOnTrigger(t *testing.T) {
	store := activity.NewStore(testAddr)
	fetched := make(chan struct{}, 10)

	client := new(MockNodeClient)
	client.On("GetTransactions", mock.Anything, testAddr).
		Run(func(args mock.Arguments) { fetched <- struct{}{} }).
		Return([]activity.Record{}, nil)

	cfg := &activity.Config{PollInterval: time.Hour, FetchTimeout: time.Second}
	fetcher := activity.NewFetcher(cfg, client, store, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go fetcher.Run(ctx)

	// Initial fetch fires without waiting for the first tick
	select {
	case <-fetched:
	case <-time.After(2 * time.Second):
		t.Fatal("initial fetch did not happen")
	}

	fetcher.Trigger()
	select {
	case <-fetched:
	case <-time.After(2 * time.Second):
		t.Fatal("triggered fetch did not happen")
	}
}

func TestFetcher_TriggerNeverBlocks(t *testing.T) {
	store := activity.NewStore(testAddr)
	client := new(MockNodeClient)
	fetcher := activity.NewFetcher(activity.DefaultConfig(), client, store, testLogger())

	// No Run loop consuming; repeated triggers coalesce instead of blocking
	for i := 0; i < 10; i++ {
		fetcher.Trigger()
	}
}
