package review

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain/session"
)

func newStoredSession(t *testing.T) session.Session {
	t.Helper()

	sess, err := session.New(uuid.New(), nil, []domain.ReviewCard{
		{CardID: uuid.New(), Word: "word"},
	}, time.Now())
	require.NoError(t, err)
	return sess
}

func TestInMemorySessionStoreRoundTrip(t *testing.T) {
	store := NewInMemorySessionStore()
	sess := newStoredSession(t)

	_, ok := store.Get(sess.ID)
	assert.False(t, ok)

	store.Put(sess)
	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, sess.ID, got.ID)

	store.Delete(sess.ID)
	_, ok = store.Get(sess.ID)
	assert.False(t, ok)

	// Deleting again is a no-op.
	store.Delete(sess.ID)
}

func TestInMemorySessionStoreReplace(t *testing.T) {
	store := NewInMemorySessionStore()
	sess := newStoredSession(t)
	store.Put(sess)

	advanced := sess
	advanced.CurrentIndex = 1
	store.Put(advanced)

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, 1, got.CurrentIndex)
}

func TestInMemorySessionStoreConcurrentAccess(t *testing.T) {
	store := NewInMemorySessionStore()

	sessions := make([]session.Session, 20)
	for i := range sessions {
		sessions[i] = newStoredSession(t)
	}

	var wg sync.WaitGroup
	for _, sess := range sessions {
		wg.Add(1)
		go func(sess session.Session) {
			defer wg.Done()
			store.Put(sess)
			_, _ = store.Get(sess.ID)
			store.Delete(sess.ID)
		}(sess)
	}
	wg.Wait()
}
