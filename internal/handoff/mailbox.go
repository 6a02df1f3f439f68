// ABOUTME: Durable handoff slot for the background tracking channel.
// ABOUTME: Badger-backed mailbox passing the active route across processes.
package handoff

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"
)

// slotKey is the single well-known key holding the active session.
var slotKey = []byte("active_session")

// Slot is the payload the foreground controller writes before it
// subscribes and clears on stop. The background channel runs in a
// separate execution context with no access to controller memory, so
// this durable slot is its only way to learn the target route.
type Slot struct {
	RouteID   int64  `json:"routeId"`
	Name      string `json:"name"`
	SessionID string `json:"sessionId"`
}

// Mailbox wraps a badger database holding the handoff slot.
type Mailbox struct {
	db *badger.DB
}

// Open opens or creates the mailbox at the given directory.
func Open(dir string) (*Mailbox, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create handoff directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open handoff mailbox: %w", err)
	}
	return &Mailbox{db: db}, nil
}

// Put writes the slot, replacing any previous session.
func (m *Mailbox) Put(s Slot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal handoff slot: %w", err)
	}
	err = m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(slotKey, data)
	})
	if err != nil {
		return fmt.Errorf("write handoff slot: %w", err)
	}
	return nil
}

// Get reads the slot. ok is false when no session is active.
func (m *Mailbox) Get() (Slot, bool, error) {
	var s Slot
	var found bool
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(slotKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &s)
		})
	})
	if err != nil {
		return Slot{}, false, fmt.Errorf("read handoff slot: %w", err)
	}
	return s, found, nil
}

// Clear deletes the slot. Deleting an absent key is a no-op, so a
// repeated or out-of-order teardown never fails here.
func (m *Mailbox) Clear() error {
	err := m.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(slotKey)
	})
	if err != nil {
		return fmt.Errorf("clear handoff slot: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (m *Mailbox) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
