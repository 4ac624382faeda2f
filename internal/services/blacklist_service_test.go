package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlacklistService_BlacklistAndLookup(t *testing.T) {
	repo := newFakeBlacklistRepo()
	svc := NewBlacklistService(repo, time.Hour)

	require.NoError(t, svc.BlacklistToken("revoked-token"))

	blacklisted, err := svc.IsTokenBlacklisted("revoked-token")
	require.NoError(t, err)
	assert.True(t, blacklisted)

	blacklisted, err = svc.IsTokenBlacklisted("other-token")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}

func TestBlacklistService_DoubleBlacklistIsNoop(t *testing.T) {
	repo := newFakeBlacklistRepo()
	svc := NewBlacklistService(repo, time.Hour)

	require.NoError(t, svc.BlacklistToken("revoked-token"))
	require.NoError(t, svc.BlacklistToken("revoked-token"))

	blacklisted, err := svc.IsTokenBlacklisted("revoked-token")
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestBlacklistService_CleanupKeepsLiveEntries(t *testing.T) {
	repo := newFakeBlacklistRepo()
	svc := NewBlacklistService(repo, time.Hour)

	now := time.Now()
	require.NoError(t, repo.Add("stale-token", now.Add(-2*time.Hour)))
	require.NoError(t, repo.Add("fresh-token", now.Add(-time.Minute)))

	removed, err := svc.CleanupExpiredTokens(now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	blacklisted, err := svc.IsTokenBlacklisted("fresh-token")
	require.NoError(t, err)
	assert.True(t, blacklisted)

	blacklisted, err = svc.IsTokenBlacklisted("stale-token")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}
