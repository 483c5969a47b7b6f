package internal

import (
	"encoding/json"
	"unicode/utf8"
)

// DefaultMaxHistoryItems is the default history capacity
const DefaultMaxHistoryItems = 30

// HistoryEntry is one remembered blob. Index 0 is the most recent.
type HistoryEntry struct {
	Index int
	Blob  string
}

// ID returns a short content hash of the blob
func (e HistoryEntry) ID() string {
	return BlobID(e.Blob)
}

// Preview returns the first ten symbols of the blob followed by "..."
func (e HistoryEntry) Preview() string {
	if utf8.RuneCountInString(e.Blob) <= 10 {
		return e.Blob + "..."
	}
	return string([]rune(e.Blob)[:10]) + "..."
}

// HistoryStore is a bounded, deduplicated, most-recent-first list of blobs.
// Persistence is best-effort: failures are logged and the in-memory list
// stays authoritative. Not safe for concurrent use.
type HistoryStore struct {
	kv       KVStore
	key      string
	maxItems int
	blobs    []string
}

// HistoryOption configures a HistoryStore
type HistoryOption func(*HistoryStore)

// WithMaxItems sets the capacity
func WithMaxItems(n int) HistoryOption {
	return func(h *HistoryStore) {
		if n > 0 {
			h.maxItems = n
		}
	}
}

// WithHistoryKey sets the storage key the list is persisted under
func WithHistoryKey(key string) HistoryOption {
	return func(h *HistoryStore) {
		if key != "" {
			h.key = key
		}
	}
}

// NewHistoryStore creates an empty store persisted through kv. A nil kv
// keeps history in memory only.
func NewHistoryStore(kv KVStore, opts ...HistoryOption) *HistoryStore {
	h := &HistoryStore{
		kv:       kv,
		key:      HistoryStorageKey,
		maxItems: DefaultMaxHistoryItems,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Load replaces the in-memory list with the persisted one. A missing,
// unreadable or corrupt record leaves the store empty.
func (h *HistoryStore) Load() {
	h.blobs = nil
	if h.kv == nil {
		return
	}

	saved, ok, err := h.kv.Get(h.key)
	if err != nil {
		LogWarn("History storage not available: %v", err)
		return
	}
	if !ok || saved == "" {
		return
	}

	var blobs []string
	if err := json.Unmarshal([]byte(saved), &blobs); err != nil {
		LogWarn("Ignoring corrupt history: %v", err)
		return
	}

	blobs = NewDeduplicator().Deduplicate(blobs)
	if len(blobs) > h.maxItems {
		blobs = blobs[:h.maxItems]
	}
	h.blobs = blobs
	LogDebug("Loaded %d history entries", len(h.blobs))
}

// Add records blob at the front. Empty and already-present blobs are
// ignored. Returns whether the store changed.
func (h *HistoryStore) Add(blob string) bool {
	if blob == "" || h.Contains(blob) {
		return false
	}

	h.blobs = append([]string{blob}, h.blobs...)
	if len(h.blobs) > h.maxItems {
		h.blobs = h.blobs[:h.maxItems]
	}

	h.persist()
	return true
}

// Clear empties the store and removes the persisted record
func (h *HistoryStore) Clear() {
	h.blobs = nil
	if h.kv == nil {
		return
	}
	if err := h.kv.Remove(h.key); err != nil {
		LogWarn("Failed to remove history: %v", err)
	}
}

// Contains reports whether blob is already recorded
func (h *HistoryStore) Contains(blob string) bool {
	for _, b := range h.blobs {
		if b == blob {
			return true
		}
	}
	return false
}

// List returns a snapshot, most recent first
func (h *HistoryStore) List() []HistoryEntry {
	entries := make([]HistoryEntry, len(h.blobs))
	for i, blob := range h.blobs {
		entries[i] = HistoryEntry{Index: i, Blob: blob}
	}
	return entries
}

// Get returns the entry at index
func (h *HistoryStore) Get(index int) (HistoryEntry, bool) {
	if index < 0 || index >= len(h.blobs) {
		return HistoryEntry{}, false
	}
	return HistoryEntry{Index: index, Blob: h.blobs[index]}, true
}

// Len returns the number of entries
func (h *HistoryStore) Len() int {
	return len(h.blobs)
}

// MaxItems returns the capacity
func (h *HistoryStore) MaxItems() int {
	return h.maxItems
}

func (h *HistoryStore) persist() {
	if h.kv == nil {
		return
	}

	data, err := json.Marshal(h.blobs)
	if err != nil {
		LogWarn("Failed to serialize history: %v", err)
		return
	}
	if err := h.kv.Set(h.key, string(data)); err != nil {
		LogWarn("Failed to save history: %v", err)
	}
}
