package backup

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStore_PushListLatest(t *testing.T) {
	store := NewSnapshotStore()

	_, ok := store.Latest("u1")
	assert.False(t, ok)
	assert.Empty(t, store.List("u1"))

	first := Snapshot{TakenAt: time.Now(), Reason: "pre-restore"}
	second := Snapshot{TakenAt: time.Now(), Reason: "scheduled"}
	store.Push("u1", first)
	store.Push("u1", second)

	latest, ok := store.Latest("u1")
	require.True(t, ok)
	assert.Equal(t, "scheduled", latest.Reason)

	list := store.List("u1")
	require.Len(t, list, 2)
	assert.Equal(t, "pre-restore", list[0].Reason)

	// other users see nothing
	assert.Empty(t, store.List("u2"))
}

func TestSnapshotStore_EvictsOldest(t *testing.T) {
	store := NewSnapshotStore()

	for i := 0; i < MaxSnapshots+3; i++ {
		store.Push("u1", Snapshot{Reason: fmt.Sprintf("snap-%d", i)})
	}

	list := store.List("u1")
	require.Len(t, list, MaxSnapshots)
	assert.Equal(t, "snap-3", list[0].Reason, "the oldest entries are evicted first")
	assert.Equal(t, fmt.Sprintf("snap-%d", MaxSnapshots+2), list[len(list)-1].Reason)
}

func TestSnapshotStore_ListReturnsCopy(t *testing.T) {
	store := NewSnapshotStore()
	store.Push("u1", Snapshot{Reason: "original"})

	list := store.List("u1")
	list[0].Reason = "mutated"

	again := store.List("u1")
	assert.Equal(t, "original", again[0].Reason)
}
