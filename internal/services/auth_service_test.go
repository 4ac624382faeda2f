package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkadmin/internal/apperrors"
	"linkadmin/internal/models"
)

type authFixture struct {
	users     *fakeUserRepo
	refresh   *fakeRefreshRepo
	blacklist *fakeBlacklistRepo
	tokens    TokenService
	svc       AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:     newFakeUserRepo(),
		refresh:   newFakeRefreshRepo(),
		blacklist: newFakeBlacklistRepo(),
	}
	f.tokens = NewTokenService("test-secret", 15*time.Minute)
	f.svc = NewAuthService(
		f.users,
		plainHasher{},
		f.tokens,
		NewRefreshTokenService(f.refresh, 24*time.Hour),
		NewBlacklistService(f.blacklist, 24*time.Hour),
	)
	return f
}

func (f *authFixture) addEnabledUser(t *testing.T, email, password string) {
	t.Helper()
	hash, err := plainHasher{}.Hash(password)
	require.NoError(t, err)
	require.NoError(t, f.users.Create(&models.User{
		Username:              "tester",
		Email:                 email,
		PasswordHash:          hash,
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
	}))
}

func TestAuthService_LoginIssuesPair(t *testing.T) {
	f := newAuthFixture(t)
	f.addEnabledUser(t, "user@example.com", "hunter22")

	pair, err := f.svc.Login("user@example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	email, err := f.tokens.ExtractEmail(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)

	stored, err := f.refresh.GetByToken(pair.RefreshToken)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "user@example.com", stored.UserEmail)
}

func TestAuthService_LoginMixedCaseEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.addEnabledUser(t, "user@example.com", "hunter22")

	pair, err := f.svc.Login("User@Example.COM", "hunter22")
	require.NoError(t, err)

	// the issued token carries the stored address, not the caller's casing
	email, err := f.tokens.ExtractEmail(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
	assert.Equal(t, 1, f.refresh.countByEmail("user@example.com"))
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.addEnabledUser(t, "user@example.com", "hunter22")

	_, err := f.svc.Login("user@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)
}

func TestAuthService_LoginUnknownAccountSameError(t *testing.T) {
	f := newAuthFixture(t)

	// a missing account must be indistinguishable from a wrong password
	_, err := f.svc.Login("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)
}

func TestAuthService_SecondLoginSupersedesRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	f.addEnabledUser(t, "user@example.com", "hunter22")

	first, err := f.svc.Login("user@example.com", "hunter22")
	require.NoError(t, err)
	_, err = f.svc.Login("user@example.com", "hunter22")
	require.NoError(t, err)

	assert.Equal(t, 1, f.refresh.countByEmail("user@example.com"))

	gone, err := f.refresh.GetByToken(first.RefreshToken)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestAuthService_LogoutBlacklistsAndRevokes(t *testing.T) {
	f := newAuthFixture(t)
	f.addEnabledUser(t, "user@example.com", "hunter22")

	pair, err := f.svc.Login("user@example.com", "hunter22")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout("Bearer "+pair.AccessToken))

	blacklisted, err := f.blacklist.ExistsByToken(pair.AccessToken)
	require.NoError(t, err)
	assert.True(t, blacklisted)

	assert.Equal(t, 0, f.refresh.countByEmail("user@example.com"))
}

func TestAuthService_LogoutRequiresBearerPrefix(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.Logout("Token abc")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	err = f.svc.Logout("Bearer ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestAuthService_LogoutUnparseableTokenStillBlacklists(t *testing.T) {
	f := newAuthFixture(t)

	require.NoError(t, f.svc.Logout("Bearer not-a-real-jwt"))

	blacklisted, err := f.blacklist.ExistsByToken("not-a-real-jwt")
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestAuthService_RefreshRotates(t *testing.T) {
	f := newAuthFixture(t)
	f.addEnabledUser(t, "user@example.com", "hunter22")

	pair, err := f.svc.Login("user@example.com", "hunter22")
	require.NoError(t, err)

	before, err := f.refresh.GetByToken(pair.RefreshToken)
	require.NoError(t, err)
	require.NotNil(t, before)

	// jwt exp carries second precision; cross the boundary so the rotated
	// access token provably expires later
	time.Sleep(1100 * time.Millisecond)

	rotated, err := f.svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, rotated.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// the presented token is dead after rotation
	old, err := f.refresh.GetByToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Nil(t, old)

	after, err := f.refresh.GetByToken(rotated.RefreshToken)
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.True(t, after.ExpiresAt.After(before.ExpiresAt))

	email, err := f.tokens.ExtractEmail(rotated.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)

	expOf := func(token string) float64 {
		v, err := f.tokens.ExtractClaim(token, func(claims jwt.MapClaims) any {
			return claims["exp"]
		})
		require.NoError(t, err)
		exp, ok := v.(float64)
		require.True(t, ok)
		return exp
	}
	assert.Greater(t, expOf(rotated.AccessToken), expOf(pair.AccessToken))
}

func TestAuthService_RefreshUnknownToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Refresh("no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenInvalid)
}

func TestAuthService_RefreshExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	f.addEnabledUser(t, "user@example.com", "hunter22")

	pair, err := f.svc.Login("user@example.com", "hunter22")
	require.NoError(t, err)
	f.refresh.expire(pair.RefreshToken)

	_, err = f.svc.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenInvalid)

	// expired row is removed, a second try fails the same way
	_, err = f.svc.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenInvalid)
}
