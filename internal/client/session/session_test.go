package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "session.json"))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded, "missing file should load as no session")

	sess := &Session{
		AccessToken: "token-123",
		ExpiresAt:   time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		UserID:      "u-1",
		Name:        "Ana",
		Email:       "ana@example.com",
		Role:        "coder",
	}
	require.NoError(t, store.Save(sess))

	loaded, err = store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sess, loaded)
}

func TestStoreClear(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "session.json"))

	require.NoError(t, store.Clear(), "clearing a missing file is fine")

	require.NoError(t, store.Save(&Session{AccessToken: "t"}))
	require.NoError(t, store.Clear())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSessionExpired(t *testing.T) {
	assert.False(t, (&Session{}).Expired(), "zero expiry never expires")
	assert.False(t, (&Session{ExpiresAt: time.Now().Add(time.Minute)}).Expired())
	assert.True(t, (&Session{ExpiresAt: time.Now().Add(-time.Minute)}).Expired())
}
