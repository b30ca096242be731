package accounting

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// documentVersion is bumped when the export format changes incompatibly.
const documentVersion = 1

// Document is the durable representation of the full accounting state.
// Counters are exported as snapshot values, not raw timestamp lists; on
// import the windows are reconstructed so that quota decisions at the
// same instant come out identical.
type Document struct {
	Version    int         `json:"version"`
	ID         string      `json:"id"`
	ExportedAt time.Time   `json:"exported_at"`
	Accounts   []KeyRecord `json:"accounts"`
}

// KeyRecord is the per-key block of a Document.
type KeyRecord struct {
	KeyHash       string                    `json:"api_key_hash"`
	MaskedKey     string                    `json:"api_key_masked"`
	Global        Totals                    `json:"global"`
	Operations    map[string]OperationUsage `json:"operations"`
	Quota         Quota                     `json:"quotas"`
	QuotasEnabled bool                      `json:"quotas_enabled"`
}

// Export serializes the full accounting state.
func (t *Tracker) Export() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	doc := Document{
		Version:    documentVersion,
		ID:         uuid.NewString(),
		ExportedAt: now,
		Accounts:   make([]KeyRecord, 0, len(t.accounts)),
	}
	for hash, acct := range t.accounts {
		u := t.usageLocked(acct, now)
		doc.Accounts = append(doc.Accounts, KeyRecord{
			KeyHash:       hash,
			MaskedKey:     u.MaskedKey,
			Global:        u.Global,
			Operations:    u.Operations,
			Quota:         u.Quota,
			QuotasEnabled: u.QuotasEnabled,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, &PersistenceError{Reason: "failed to marshal accounting state", Err: err}
	}
	return data, nil
}

// Import replaces the in-memory state with the document's contents.
// All-or-nothing: on any validation or decoding failure the previous
// state is left untouched and a *PersistenceError is returned.
func (t *Tracker) Import(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return &PersistenceError{Reason: "invalid accounting document", Err: err}
	}
	if doc.Version != documentVersion {
		return &PersistenceError{Reason: "unsupported accounting document version"}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	accounts := make(map[string]*keyAccount, len(doc.Accounts))
	for _, rec := range doc.Accounts {
		if rec.KeyHash == "" {
			return &PersistenceError{Reason: "account record missing api_key_hash"}
		}
		if err := validTotals(rec.Global); err != nil {
			return &PersistenceError{Reason: "invalid global counters for " + rec.MaskedKey, Err: err}
		}
		if rec.Quota.Total < 0 || rec.Quota.Calls60s < 0 || rec.Quota.Calls24h < 0 {
			return &PersistenceError{Reason: "negative quota for " + rec.MaskedKey}
		}

		acct := &keyAccount{
			masked:        rec.MaskedKey,
			aggregate:     restoreWindow(now, rec.Global.TotalCalls, rec.Global.Calls60s, rec.Global.Calls24h),
			operations:    make(map[string]*operationEntry, len(rec.Operations)),
			quota:         rec.Quota,
			quotasEnabled: rec.QuotasEnabled,
		}
		for id, op := range rec.Operations {
			if err := validTotals(op.Totals); err != nil {
				return &PersistenceError{Reason: "invalid counters for operation " + id, Err: err}
			}
			acct.operations[id] = &operationEntry{
				window:      restoreWindow(now, op.Totals.TotalCalls, op.Totals.Calls60s, op.Totals.Calls24h),
				startedAt:   op.StartedAt,
				lastUpdated: op.LastUpdated,
			}
		}
		accounts[rec.KeyHash] = acct
	}

	t.accounts = accounts
	t.logger.Info("accounting state imported", zap.Int("accounts", len(accounts)))
	return nil
}

// SaveFile writes the exported state to path.
func (t *Tracker) SaveFile(path string) error {
	data, err := t.Export()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &PersistenceError{Reason: "failed to write accounting file", Err: err}
	}
	return nil
}

// LoadFile reads and imports accounting state from path.
func (t *Tracker) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &PersistenceError{Reason: "failed to read accounting file", Err: err}
	}
	return t.Import(data)
}

func validTotals(c Totals) error {
	switch {
	case c.TotalCalls < 0 || c.Calls60s < 0 || c.Calls24h < 0:
		return errNegativeCounter
	case c.Calls60s > c.Calls24h:
		return errWindowMismatch
	case c.Calls24h > c.TotalCalls:
		return errWindowMismatch
	}
	return nil
}
