package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkadmin/internal/apperrors"
)

func TestRefreshTokenService_CreateSupersedes(t *testing.T) {
	repo := newFakeRefreshRepo()
	svc := NewRefreshTokenService(repo, 24*time.Hour)

	first, err := svc.Create("user@example.com")
	require.NoError(t, err)
	second, err := svc.Create("user@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, 1, repo.countByEmail("user@example.com"))

	// the superseded token is gone
	old, err := svc.FindByToken(first.Token)
	require.NoError(t, err)
	assert.Nil(t, old)

	current, err := svc.FindByToken(second.Token)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "user@example.com", current.UserEmail)
}

func TestRefreshTokenService_VerifyExpirationLive(t *testing.T) {
	repo := newFakeRefreshRepo()
	svc := NewRefreshTokenService(repo, 24*time.Hour)

	created, err := svc.Create("user@example.com")
	require.NoError(t, err)

	verified, err := svc.VerifyExpiration(created)
	require.NoError(t, err)
	assert.Equal(t, created.Token, verified.Token)
}

func TestRefreshTokenService_VerifyExpirationDeletesDeadRow(t *testing.T) {
	repo := newFakeRefreshRepo()
	svc := NewRefreshTokenService(repo, 24*time.Hour)

	created, err := svc.Create("user@example.com")
	require.NoError(t, err)
	repo.expire(created.Token)

	expired, err := svc.FindByToken(created.Token)
	require.NoError(t, err)
	require.NotNil(t, expired)

	_, err = svc.VerifyExpiration(expired)
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenInvalid)

	// the dead row must not survive the failed verification
	gone, err := svc.FindByToken(created.Token)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRefreshTokenService_DeleteByEmail(t *testing.T) {
	repo := newFakeRefreshRepo()
	svc := NewRefreshTokenService(repo, 24*time.Hour)

	created, err := svc.Create("user@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByEmail("user@example.com"))

	gone, err := svc.FindByToken(created.Token)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
