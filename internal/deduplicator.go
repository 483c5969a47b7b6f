package internal

import (
	"crypto/sha256"
	"encoding/hex"
)

// Deduplicator drops repeated blobs, keeping the first occurrence
type Deduplicator struct{}

// NewDeduplicator creates a new Deduplicator
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// Deduplicate removes empty and repeated blobs, preserving order
func (d *Deduplicator) Deduplicate(blobs []string) []string {
	seen := make(map[string]bool, len(blobs))
	unique := make([]string, 0, len(blobs))

	for _, blob := range blobs {
		if blob == "" || seen[blob] {
			continue
		}
		seen[blob] = true
		unique = append(unique, blob)
	}

	return unique
}

// BlobID returns a short content hash identifying a blob
func BlobID(blob string) string {
	sum := sha256.Sum256([]byte(blob))
	return hex.EncodeToString(sum[:])[:12]
}
