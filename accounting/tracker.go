// Package accounting tracks API calls per key and operation across a
// 60 second window, a 24 hour window and a lifetime total, and enforces
// configurable quotas against the per-key aggregate.
package accounting

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Quota is the set of per-key call ceilings. A value of 0 means no limit
// for that dimension. Quotas apply to the key's aggregate counters, never
// to an individual operation's own counter.
type Quota struct {
	Total    int64 `json:"total"`
	Calls60s int64 `json:"calls_60s"`
	Calls24h int64 `json:"calls_24h"`
}

// operationEntry holds the counters and metadata for one (key, operation)
// pair.
type operationEntry struct {
	window      *slidingWindow
	startedAt   time.Time
	lastUpdated time.Time
}

// keyAccount holds everything tracked for one API key. The quota lives
// here, once, rather than being copied into every operation entry.
type keyAccount struct {
	masked        string
	aggregate     *slidingWindow
	operations    map[string]*operationEntry
	quota         Quota
	quotasEnabled bool
}

// Tracker is the accounting subsystem. It starts stopped: while stopped,
// increments are silent no-ops and quota checks always pass. Safe for
// concurrent use.
type Tracker struct {
	mu       sync.Mutex
	running  bool
	accounts map[string]*keyAccount
	logger   *zap.Logger

	// now is swapped out by tests.
	now func() time.Time
}

// NewTracker creates a stopped tracker. A nil logger is replaced with a
// no-op logger.
func NewTracker(logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		accounts: make(map[string]*keyAccount),
		logger:   logger,
		now:      time.Now,
	}
}

// Start enables accounting.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = true
	t.logger.Debug("accounting tracker started")
}

// Stop disables accounting. Counters keep their values but increments and
// quota checks are bypassed until the next Start.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
	t.logger.Debug("accounting tracker stopped")
}

// IsRunning reports whether accounting is active.
func (t *Tracker) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Reset zeroes all counters for all keys and operations. Quota values and
// enabled flags survive. Valid whether the tracker is running or stopped.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for _, acct := range t.accounts {
		acct.aggregate.reset()
		for _, op := range acct.operations {
			op.window.reset()
			op.lastUpdated = now
		}
	}
	t.logger.Debug("accounting counters reset")
}

// account returns the keyAccount for rawKey, creating it on first use.
// Caller must hold t.mu.
func (t *Tracker) account(rawKey string) *keyAccount {
	hash := hashKey(rawKey)
	acct, ok := t.accounts[hash]
	if !ok {
		acct = &keyAccount{
			masked:     MaskKey(rawKey),
			aggregate:  &slidingWindow{},
			operations: make(map[string]*operationEntry),
		}
		t.accounts[hash] = acct
	}
	return acct
}

// Increment records one call for (rawKey, operationID) in both the
// operation's counter and the key's aggregate. A silent no-op while the
// tracker is stopped.
func (t *Tracker) Increment(rawKey, operationID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}

	now := t.now()
	acct := t.account(rawKey)

	op, ok := acct.operations[operationID]
	if !ok {
		op = &operationEntry{
			window:    &slidingWindow{},
			startedAt: now,
		}
		acct.operations[operationID] = op
	}

	op.window.record(now)
	op.lastUpdated = now
	acct.aggregate.record(now)

	t.logger.Debug("call recorded",
		zap.String("api_key", acct.masked),
		zap.String("operation", operationID))
}

// EnableQuotas sets the quota for an API key and turns quota checking on.
// Calling again overwrites the previous values. Negative limits are
// rejected; 0 disables the corresponding dimension.
func (t *Tracker) EnableQuotas(rawKey string, quota Quota) error {
	if quota.Total < 0 || quota.Calls60s < 0 || quota.Calls24h < 0 {
		return fmt.Errorf("quota limits must be non-negative, got total=%d calls_60s=%d calls_24h=%d",
			quota.Total, quota.Calls60s, quota.Calls24h)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	acct := t.account(rawKey)
	acct.quota = quota
	acct.quotasEnabled = true

	t.logger.Info("quotas enabled",
		zap.String("api_key", acct.masked),
		zap.Int64("total", quota.Total),
		zap.Int64("calls_60s", quota.Calls60s),
		zap.Int64("calls_24h", quota.Calls24h))
	return nil
}

// CheckQuota evaluates the key's aggregate counters against its quota.
// It returns nil when the call may proceed and an *OutOfQuotaError naming
// the first violated limit otherwise. Limits are checked in the order
// total, 60s, 24h, each inclusively (reaching a limit denies the next
// call). Always nil while stopped or when quotas are not enabled.
func (t *Tracker) CheckQuota(rawKey string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return nil
	}

	hash := hashKey(rawKey)
	acct, ok := t.accounts[hash]
	if !ok || !acct.quotasEnabled {
		return nil
	}

	now := t.now()
	if q := acct.quota.Total; q > 0 {
		if current := acct.aggregate.lifetime(); current >= q {
			return &OutOfQuotaError{Kind: LimitTotal, Current: current, Limit: q}
		}
	}
	if q := acct.quota.Calls60s; q > 0 {
		if current := acct.aggregate.countSince(now, time.Minute); current >= q {
			return &OutOfQuotaError{Kind: LimitCalls60s, Current: current, Limit: q}
		}
	}
	if q := acct.quota.Calls24h; q > 0 {
		if current := acct.aggregate.countSince(now, 24*time.Hour); current >= q {
			return &OutOfQuotaError{Kind: LimitCalls24h, Current: current, Limit: q}
		}
	}
	return nil
}

// BeforeRequest is the hook the HTTP client calls before every outbound
// request: it records the call and then checks the quota. A non-nil error
// means the request must be aborted locally without touching the network.
func (t *Tracker) BeforeRequest(rawKey, operationID string) error {
	t.Increment(rawKey, operationID)
	return t.CheckQuota(rawKey)
}
