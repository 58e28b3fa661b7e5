// Package id generates identifiers for documents and tokens.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"regexp"
	"sync/atomic"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Document ids are 12 bytes hex-encoded to 24 characters:
// 4-byte big-endian unix timestamp, 5-byte per-process nonce, 3-byte counter.
// Within a process, ids sort lexicographically in creation order, so a reverse
// key scan yields newest-first without a separate sort field.
const docIDLength = 24

var docIDPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

var (
	processNonce [5]byte
	counter      atomic.Uint32
)

func init() {
	if _, err := rand.Read(processNonce[:]); err != nil {
		panic(fmt.Sprintf("failed to seed id nonce: %v", err))
	}
	var seed [4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic(fmt.Sprintf("failed to seed id counter: %v", err))
	}
	counter.Store(binary.BigEndian.Uint32(seed[:]) & 0xFFFFFF)
}

// NewDocumentID creates a new time-correlated document id.
func NewDocumentID() string {
	return newDocumentIDAt(time.Now())
}

func newDocumentIDAt(t time.Time) string {
	var raw [12]byte
	//nolint:gosec // Unix seconds fit in uint32 until 2106.
	binary.BigEndian.PutUint32(raw[0:4], uint32(t.Unix()))
	copy(raw[4:9], processNonce[:])

	c := counter.Add(1) & 0xFFFFFF
	raw[9] = byte(c >> 16)
	raw[10] = byte(c >> 8)
	raw[11] = byte(c)

	return hex.EncodeToString(raw[:])
}

// IsValidDocumentID reports whether s is a well-formed document id.
// This is a shape check only; it says nothing about existence.
func IsValidDocumentID(s string) bool {
	return len(s) == docIDLength && docIDPattern.MatchString(s)
}

// Timestamp extracts the creation time embedded in a document id.
// Returns the zero time for malformed ids.
func Timestamp(docID string) time.Time {
	if !IsValidDocumentID(docID) {
		return time.Time{}
	}
	raw, err := hex.DecodeString(docID[:8])
	if err != nil {
		return time.Time{}
	}
	return time.Unix(int64(binary.BigEndian.Uint32(raw)), 0)
}

// Generate creates a prefixed unique id using NanoID.
// Format: prefix-nanoid (e.g., "token-V1StGXR8_Z5jdHi6B-myT").
// Used for tokens and sessions, where sortability doesn't matter.
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if id generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate id: %v", err))
	}
	return id
}
