package accounting

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Totals is a point-in-time reading of one counter set.
type Totals struct {
	TotalCalls int64 `json:"total_calls"`
	Calls60s   int64 `json:"calls_60s"`
	Calls24h   int64 `json:"calls_24h"`
}

// OperationUsage is a read-only view of one operation's counters.
type OperationUsage struct {
	Totals      Totals    `json:"totals"`
	StartedAt   time.Time `json:"started_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// KeyUsage is a read-only view of everything tracked for one API key.
type KeyUsage struct {
	MaskedKey     string                    `json:"api_key_masked"`
	Global        Totals                    `json:"global"`
	Operations    map[string]OperationUsage `json:"operations"`
	Quota         Quota                     `json:"quotas"`
	QuotasEnabled bool                      `json:"quotas_enabled"`
}

// totalsAt reads a window's counters at the given instant.
func totalsAt(w *slidingWindow, now time.Time) Totals {
	return Totals{
		TotalCalls: w.lifetime(),
		Calls60s:   w.countSince(now, time.Minute),
		Calls24h:   w.countSince(now, 24*time.Hour),
	}
}

// usageLocked builds the view for one account. Caller must hold t.mu.
func (t *Tracker) usageLocked(acct *keyAccount, now time.Time) KeyUsage {
	u := KeyUsage{
		MaskedKey:     acct.masked,
		Global:        totalsAt(acct.aggregate, now),
		Operations:    make(map[string]OperationUsage, len(acct.operations)),
		Quota:         acct.quota,
		QuotasEnabled: acct.quotasEnabled,
	}
	for id, op := range acct.operations {
		u.Operations[id] = OperationUsage{
			Totals:      totalsAt(op.window, now),
			StartedAt:   op.startedAt,
			LastUpdated: op.lastUpdated,
		}
	}
	return u
}

// Snapshot returns a read-only view of the account for rawKey. The second
// return value is false when the key has never been seen.
func (t *Tracker) Snapshot(rawKey string) (KeyUsage, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	acct, ok := t.accounts[hashKey(rawKey)]
	if !ok {
		return KeyUsage{}, false
	}
	return t.usageLocked(acct, t.now()), true
}

// SnapshotAll returns read-only views for every tracked key, ordered by
// masked key for stable output.
func (t *Tracker) SnapshotAll() []KeyUsage {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	usages := make([]KeyUsage, 0, len(t.accounts))
	for _, acct := range t.accounts {
		usages = append(usages, t.usageLocked(acct, now))
	}
	sort.Slice(usages, func(i, j int) bool {
		return usages[i].MaskedKey < usages[j].MaskedKey
	})
	return usages
}

// Summary renders a readable report of all accounting data.
func (t *Tracker) Summary() string {
	usages := t.SnapshotAll()
	if len(usages) == 0 {
		return "No accounting data available"
	}

	var b strings.Builder
	b.WriteString("EODData Call Accounting Summary\n")
	b.WriteString(strings.Repeat("=", 40))

	for _, u := range usages {
		fmt.Fprintf(&b, "\n\nAPI Key: %s\n", u.MaskedKey)
		fmt.Fprintf(&b, "  Global Totals:\n")
		fmt.Fprintf(&b, "    Total calls: %d\n", u.Global.TotalCalls)
		fmt.Fprintf(&b, "    60s calls: %d\n", u.Global.Calls60s)
		fmt.Fprintf(&b, "    24h calls: %d\n", u.Global.Calls24h)

		if len(u.Operations) > 0 {
			ids := make([]string, 0, len(u.Operations))
			for id := range u.Operations {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			b.WriteString("  Operations:\n")
			for _, id := range ids {
				op := u.Operations[id]
				fmt.Fprintf(&b, "    %s:\n", id)
				fmt.Fprintf(&b, "      Total calls: %d\n", op.Totals.TotalCalls)
				fmt.Fprintf(&b, "      60s calls: %d\n", op.Totals.Calls60s)
				fmt.Fprintf(&b, "      24h calls: %d\n", op.Totals.Calls24h)
			}
		}

		if u.QuotasEnabled {
			fmt.Fprintf(&b, "  Quotas: total=%d, 60s=%d, 24h=%d\n",
				u.Quota.Total, u.Quota.Calls60s, u.Quota.Calls24h)
		}
	}

	return b.String()
}
