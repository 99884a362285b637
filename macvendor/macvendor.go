// Package macvendor resolves a MAC address's organizationally unique
// identifier (OUI) to the vendor name registered for it, using a small
// embedded database of well-known prefixes.
package macvendor

import (
	_ "embed"
	"encoding/json"
	"net"
	"strings"
	"sync"
)

//go:embed oui.json
var embeddedDB []byte

// Entry is a single OUI-to-vendor record.
type Entry struct {
	Prefix string `json:"prefix"`
	Vendor string `json:"vendor"`
}

// DB is an in-memory OUI database, safe for concurrent lookups.
type DB struct {
	mu      sync.RWMutex
	vendors map[string]string
}

// NewDB loads the embedded OUI table and returns a ready-to-use DB. It
// never fails: a malformed embedded table is a build-time defect, not a
// runtime one, so a decode error simply yields an empty database.
func NewDB() *DB {
	db := &DB{vendors: map[string]string{}}
	db.Load(embeddedDB)
	return db
}

// Load replaces db's contents with the entries decoded from data,
// discarding anything previously loaded.
func (db *DB) Load(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	vendors := make(map[string]string, len(entries))
	for _, e := range entries {
		prefix := normalize(e.Prefix)
		if prefix != "" {
			vendors[prefix] = e.Vendor
		}
	}

	db.mu.Lock()
	db.vendors = vendors
	db.mu.Unlock()
	return nil
}

// Lookup returns the vendor name registered for mac's OUI, or "" if
// unknown.
func (db *DB) Lookup(mac net.HardwareAddr) string {
	if len(mac) < 3 {
		return ""
	}
	prefix := normalize(mac.String())
	if len(prefix) < 6 {
		return ""
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.vendors[prefix[:6]]
}

// Count reports how many vendor entries are loaded.
func (db *DB) Count() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.vendors)
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, ":", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, ".", "")
	return strings.ToLower(s)
}
