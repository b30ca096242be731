package accounting

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests advance the tracker's notion of now.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestTracker() (*Tracker, *fakeClock) {
	clk := newFakeClock()
	tr := NewTracker(nil)
	tr.now = clk.Now
	tr.Start()
	return tr, clk
}

const testKey = "test_api_key_12345"

func TestIncrement_RecordsOperationAndAggregate(t *testing.T) {
	tr, _ := newTestTracker()

	tr.Increment(testKey, "quote_list")
	tr.Increment(testKey, "quote_list")
	tr.Increment(testKey, "symbol_list")

	u, ok := tr.Snapshot(testKey)
	require.True(t, ok)
	assert.Equal(t, "test****2345", u.MaskedKey)
	assert.Equal(t, int64(3), u.Global.TotalCalls)
	assert.Equal(t, int64(3), u.Global.Calls60s)
	assert.Equal(t, int64(2), u.Operations["quote_list"].Totals.TotalCalls)
	assert.Equal(t, int64(1), u.Operations["symbol_list"].Totals.TotalCalls)
}

func TestCheckQuota_DisabledAlwaysAllows(t *testing.T) {
	tr, _ := newTestTracker()

	for i := 0; i < 100; i++ {
		tr.Increment(testKey, "quote_list")
	}
	assert.NoError(t, tr.CheckQuota(testKey))
	assert.NoError(t, tr.CheckQuota("never_seen_key"))
}

func TestCheckQuota_TotalCheckedFirst(t *testing.T) {
	tr, _ := newTestTracker()

	require.NoError(t, tr.EnableQuotas(testKey, Quota{Total: 5, Calls60s: 4, Calls24h: 10}))

	// Five increments within one second: both total (5>=5) and 60s (5>=4)
	// are violated, but total is checked first.
	for i := 0; i < 5; i++ {
		tr.Increment(testKey, "quote_list")
	}

	err := tr.CheckQuota(testKey)
	require.Error(t, err)
	var oq *OutOfQuotaError
	require.ErrorAs(t, err, &oq)
	assert.Equal(t, LimitTotal, oq.Kind)
	assert.Equal(t, int64(5), oq.Current)
	assert.Equal(t, int64(5), oq.Limit)
}

func TestCheckQuota_WindowDenialClearsWithTime(t *testing.T) {
	tr, clk := newTestTracker()

	require.NoError(t, tr.EnableQuotas(testKey, Quota{Calls60s: 3}))

	for i := 0; i < 3; i++ {
		tr.Increment(testKey, "quote_list")
	}
	err := tr.CheckQuota(testKey)
	var oq *OutOfQuotaError
	require.ErrorAs(t, err, &oq)
	assert.Equal(t, LimitCalls60s, oq.Kind)

	// The window is relative to now, not to session start: once the
	// events age out the key is allowed again without any reset.
	clk.Advance(2 * time.Minute)
	assert.NoError(t, tr.CheckQuota(testKey))
}

func TestCheckQuota_ZeroMeansUnlimited(t *testing.T) {
	tr, _ := newTestTracker()

	require.NoError(t, tr.EnableQuotas(testKey, Quota{Total: 0, Calls60s: 0, Calls24h: 0}))
	for i := 0; i < 50; i++ {
		tr.Increment(testKey, "quote_list")
	}
	assert.NoError(t, tr.CheckQuota(testKey))
}

func TestCheckQuota_Calls24h(t *testing.T) {
	tr, clk := newTestTracker()

	require.NoError(t, tr.EnableQuotas(testKey, Quota{Calls24h: 5}))

	for i := 0; i < 5; i++ {
		tr.Increment(testKey, "quote_list")
		clk.Advance(time.Hour)
	}

	err := tr.CheckQuota(testKey)
	var oq *OutOfQuotaError
	require.ErrorAs(t, err, &oq)
	assert.Equal(t, LimitCalls24h, oq.Kind)

	// 20 more hours: the oldest call is beyond 24h now.
	clk.Advance(20 * time.Hour)
	assert.NoError(t, tr.CheckQuota(testKey))
}

func TestEnableQuotas_RejectsNegative(t *testing.T) {
	tr, _ := newTestTracker()

	assert.Error(t, tr.EnableQuotas(testKey, Quota{Total: -1}))
	assert.Error(t, tr.EnableQuotas(testKey, Quota{Calls60s: -5}))
	assert.Error(t, tr.EnableQuotas(testKey, Quota{Calls24h: -2}))
}

func TestEnableQuotas_LastWriteWins(t *testing.T) {
	tr, _ := newTestTracker()

	require.NoError(t, tr.EnableQuotas(testKey, Quota{Total: 1}))
	tr.Increment(testKey, "quote_list")
	require.Error(t, tr.CheckQuota(testKey))

	require.NoError(t, tr.EnableQuotas(testKey, Quota{Total: 100}))
	assert.NoError(t, tr.CheckQuota(testKey))
}

func TestQuota_AppliesToAggregateAcrossOperations(t *testing.T) {
	tr, _ := newTestTracker()

	require.NoError(t, tr.EnableQuotas(testKey, Quota{Total: 4}))

	tr.Increment(testKey, "quote_list")
	tr.Increment(testKey, "symbol_list")
	tr.Increment(testKey, "exchange_list")
	assert.NoError(t, tr.CheckQuota(testKey))

	tr.Increment(testKey, "fundamental_list")
	assert.Error(t, tr.CheckQuota(testKey))
}

func TestReset_PreservesQuotas(t *testing.T) {
	tr, _ := newTestTracker()

	require.NoError(t, tr.EnableQuotas(testKey, Quota{Total: 5}))
	for i := 0; i < 5; i++ {
		tr.Increment(testKey, "quote_list")
	}
	require.Error(t, tr.CheckQuota(testKey))

	tr.Reset()

	assert.NoError(t, tr.CheckQuota(testKey))

	u, ok := tr.Snapshot(testKey)
	require.True(t, ok)
	assert.Equal(t, int64(0), u.Global.TotalCalls)
	assert.True(t, u.QuotasEnabled)
	assert.Equal(t, int64(5), u.Quota.Total)

	// The preserved quota still bites without a fresh EnableQuotas.
	for i := 0; i < 5; i++ {
		tr.Increment(testKey, "quote_list")
	}
	assert.Error(t, tr.CheckQuota(testKey))
}

func TestStopped_BypassesAccounting(t *testing.T) {
	tr, _ := newTestTracker()

	require.NoError(t, tr.EnableQuotas(testKey, Quota{Total: 1}))
	tr.Stop()

	for i := 0; i < 1000; i++ {
		tr.Increment(testKey, "quote_list")
	}
	assert.NoError(t, tr.CheckQuota(testKey))

	// Nothing was recorded while stopped.
	u, ok := tr.Snapshot(testKey)
	require.True(t, ok)
	assert.Equal(t, int64(0), u.Global.TotalCalls)
}

func TestBeforeRequest_DeniesAfterLimitReached(t *testing.T) {
	tr, _ := newTestTracker()

	require.NoError(t, tr.EnableQuotas(testKey, Quota{Total: 3}))

	assert.NoError(t, tr.BeforeRequest(testKey, "quote_list"))
	assert.NoError(t, tr.BeforeRequest(testKey, "quote_list"))
	require.Error(t, tr.BeforeRequest(testKey, "quote_list"))
	require.Error(t, tr.BeforeRequest(testKey, "quote_list"))
}

func TestIncrement_Concurrent(t *testing.T) {
	tr, _ := newTestTracker()

	const workers = 8
	const perWorker = 250

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				tr.Increment(testKey, "quote_list")
				tr.CheckQuota(testKey)
			}
		}()
	}
	wg.Wait()

	u, ok := tr.Snapshot(testKey)
	require.True(t, ok)
	assert.Equal(t, int64(workers*perWorker), u.Global.TotalCalls)
	assert.Equal(t, int64(workers*perWorker), u.Operations["quote_list"].Totals.TotalCalls)
}

func TestSummary(t *testing.T) {
	tr, _ := newTestTracker()

	assert.Equal(t, "No accounting data available", tr.Summary())

	tr.Increment(testKey, "quote_list")
	tr.Increment(testKey, "symbol_list")
	require.NoError(t, tr.EnableQuotas(testKey, Quota{Total: 10}))

	out := tr.Summary()
	assert.Contains(t, out, "test****2345")
	assert.Contains(t, out, "quote_list")
	assert.Contains(t, out, "symbol_list")
	assert.Contains(t, out, "Quotas: total=10")
}
