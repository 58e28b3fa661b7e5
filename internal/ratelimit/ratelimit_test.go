package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllow_BurstThenDeny(t *testing.T) {
	krl := New(5, 3)
	defer krl.Stop()

	for i := range 3 {
		assert.True(t, krl.Allow("10.0.0.1"), "burst request %d should pass", i)
	}
	assert.False(t, krl.Allow("10.0.0.1"), "request past burst should be denied")
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	krl := New(5, 1)
	defer krl.Stop()

	assert.True(t, krl.Allow("10.0.0.1"))
	assert.False(t, krl.Allow("10.0.0.1"))
	assert.True(t, krl.Allow("10.0.0.2"))
}

func TestEvictStale(t *testing.T) {
	krl := New(5, 1)
	defer krl.Stop()

	krl.Allow("10.0.0.1")

	krl.mu.Lock()
	krl.entries["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	krl.mu.Unlock()

	krl.evictStale()

	krl.mu.Lock()
	_, ok := krl.entries["10.0.0.1"]
	krl.mu.Unlock()
	assert.False(t, ok, "stale entry should be evicted")
}
