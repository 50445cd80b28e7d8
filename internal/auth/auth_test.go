package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345"

func TestHashPassword(t *testing.T) {
	t.Run("Successfully hash password", func(t *testing.T) {
		password := "mySecurePassword123"
		hashed, err := HashPassword(password)

		assert.NoError(t, err)
		assert.NotEmpty(t, hashed)
		assert.NotEqual(t, password, hashed)
	})

	t.Run("Different hashes for same password", func(t *testing.T) {
		password := "samePassword"
		hash1, _ := HashPassword(password)
		hash2, _ := HashPassword(password)

		assert.NotEqual(t, hash1, hash2)
	})
}

func TestCheckPassword(t *testing.T) {
	password := "correctPassword"
	hashed, _ := HashPassword(password)

	t.Run("Correct password", func(t *testing.T) {
		assert.True(t, CheckPassword(hashed, password))
	})

	t.Run("Incorrect password", func(t *testing.T) {
		assert.False(t, CheckPassword(hashed, "wrongPassword"))
	})

	t.Run("Empty password", func(t *testing.T) {
		assert.False(t, CheckPassword(hashed, ""))
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Run("Access token round trip", func(t *testing.T) {
		token, err := GenerateAccessToken(1, "user@example.com", RoleMember, testSecret)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := ValidateToken(token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.UserID)
		assert.Equal(t, "user@example.com", claims.Email)
		assert.Equal(t, RoleMember, claims.Role)
		assert.Equal(t, "access", claims.TokenType)
	})

	t.Run("Empty secret rejected", func(t *testing.T) {
		_, err := GenerateAccessToken(1, "user@example.com", RoleMember, "")
		assert.ErrorIs(t, err, ErrEmptyJWTSecret)
	})

	t.Run("Wrong secret rejected", func(t *testing.T) {
		token, err := GenerateAccessToken(1, "user@example.com", RoleMember, testSecret)
		require.NoError(t, err)

		_, err = ValidateToken(token, "another-secret")
		assert.Error(t, err)
	})

	t.Run("Garbage token rejected", func(t *testing.T) {
		_, err := ValidateToken("not.a.token", testSecret)
		assert.Error(t, err)
	})
}

func TestGenerateTokens(t *testing.T) {
	access, refresh, err := GenerateTokens(2, "owner@example.com", RoleGymOwner, testSecret)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	accessClaims, err := ValidateToken(access, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "access", accessClaims.TokenType)

	refreshClaims, err := ValidateToken(refresh, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
}

func TestRefreshAccessToken(t *testing.T) {
	t.Run("Refresh token yields a new access token", func(t *testing.T) {
		_, refresh, err := GenerateTokens(3, "member@example.com", RoleMember, testSecret)
		require.NoError(t, err)

		newAccess, claims, err := RefreshAccessToken(refresh, testSecret)
		require.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.Equal(t, 3, claims.UserID)

		newClaims, err := ValidateToken(newAccess, testSecret)
		require.NoError(t, err)
		assert.Equal(t, "access", newClaims.TokenType)
	})

	t.Run("Access token cannot be used as refresh token", func(t *testing.T) {
		access, err := GenerateAccessToken(3, "member@example.com", RoleMember, testSecret)
		require.NoError(t, err)

		_, _, err = RefreshAccessToken(access, testSecret)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})
}
