package accounting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImport_RoundTrip(t *testing.T) {
	tr, clk := newTestTracker()

	require.NoError(t, tr.EnableQuotas(testKey, Quota{Total: 100, Calls60s: 10, Calls24h: 50}))
	for i := 0; i < 3; i++ {
		tr.Increment(testKey, "quote_list")
	}
	tr.Increment(testKey, "symbol_list")
	tr.Increment("other_key_67890", "exchange_list")

	data, err := tr.Export()
	require.NoError(t, err)

	restored := NewTracker(nil)
	restored.now = clk.Now
	restored.Start()
	require.NoError(t, restored.Import(data))

	want, ok := tr.Snapshot(testKey)
	require.True(t, ok)
	got, ok := restored.Snapshot(testKey)
	require.True(t, ok)

	assert.Equal(t, want.MaskedKey, got.MaskedKey)
	assert.Equal(t, want.Global, got.Global)
	assert.Equal(t, want.Quota, got.Quota)
	assert.Equal(t, want.QuotasEnabled, got.QuotasEnabled)
	assert.Equal(t, want.Operations["quote_list"].Totals, got.Operations["quote_list"].Totals)

	_, ok = restored.Snapshot("other_key_67890")
	assert.True(t, ok)
}

func TestExportImport_SameQuotaDecisions(t *testing.T) {
	tr, clk := newTestTracker()

	require.NoError(t, tr.EnableQuotas(testKey, Quota{Calls60s: 4}))
	for i := 0; i < 4; i++ {
		tr.Increment(testKey, "quote_list")
	}
	require.Error(t, tr.CheckQuota(testKey))

	data, err := tr.Export()
	require.NoError(t, err)

	restored := NewTracker(nil)
	restored.now = clk.Now
	restored.Start()
	require.NoError(t, restored.Import(data))

	// Same denial at the same instant, and the same recovery as the
	// window slides past the imported events.
	err = restored.CheckQuota(testKey)
	var oq *OutOfQuotaError
	require.ErrorAs(t, err, &oq)
	assert.Equal(t, LimitCalls60s, oq.Kind)

	clk.Advance(2 * time.Minute)
	assert.NoError(t, tr.CheckQuota(testKey))
	assert.NoError(t, restored.CheckQuota(testKey))
}

func TestImport_MalformedLeavesStateUntouched(t *testing.T) {
	tr, _ := newTestTracker()

	tr.Increment(testKey, "quote_list")

	cases := map[string]string{
		"not json":        `{garbage`,
		"bad version":     `{"version": 99, "accounts": []}`,
		"missing hash":    `{"version": 1, "accounts": [{"api_key_masked": "x"}]}`,
		"negative":        `{"version": 1, "accounts": [{"api_key_hash": "h", "global": {"total_calls": -1}}]}`,
		"window mismatch": `{"version": 1, "accounts": [{"api_key_hash": "h", "global": {"total_calls": 1, "calls_60s": 5, "calls_24h": 2}}]}`,
	}

	for name, doc := range cases {
		err := tr.Import([]byte(doc))
		require.Error(t, err, name)
		var pe *PersistenceError
		assert.ErrorAs(t, err, &pe, name)

		u, ok := tr.Snapshot(testKey)
		require.True(t, ok, name)
		assert.Equal(t, int64(1), u.Global.TotalCalls, name)
	}
}

func TestSaveLoadFile(t *testing.T) {
	tr, clk := newTestTracker()

	tr.Increment(testKey, "quote_list")
	require.NoError(t, tr.EnableQuotas(testKey, Quota{Total: 10}))

	path := filepath.Join(t.TempDir(), "accounting.json")
	require.NoError(t, tr.SaveFile(path))

	restored := NewTracker(nil)
	restored.now = clk.Now
	require.NoError(t, restored.LoadFile(path))

	u, ok := restored.Snapshot(testKey)
	require.True(t, ok)
	assert.Equal(t, int64(1), u.Global.TotalCalls)
	assert.True(t, u.QuotasEnabled)
}

func TestLoadFile_Missing(t *testing.T) {
	tr, _ := newTestTracker()

	err := tr.LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	var pe *PersistenceError
	assert.ErrorAs(t, err, &pe)
	assert.True(t, os.IsNotExist(pe.Unwrap()))
}
