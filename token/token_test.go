package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	manager := NewManager("secret", 24*time.Hour)

	signed, err := manager.GenerateToken("a@x.com")
	require.NoError(t, err)

	claims, err := manager.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestTokensAreDistinctAndExpire(t *testing.T) {
	issued := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	manager := NewManager("secret", 24*time.Hour).WithClock(func() time.Time { return issued })

	first, err := manager.GenerateToken("a@x.com")
	require.NoError(t, err)
	second, err := manager.GenerateToken("a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	withinDay := manager.WithClock(func() time.Time { return issued.Add(23 * time.Hour) })
	for _, signed := range []string{first, second} {
		_, err := withinDay.ValidateToken(signed)
		assert.NoError(t, err)
	}

	nextDay := manager.WithClock(func() time.Time { return issued.Add(25 * time.Hour) })
	for _, signed := range []string{first, second} {
		_, err := nextDay.ValidateToken(signed)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	}
}

func TestValidateRejects(t *testing.T) {
	manager := NewManager("secret", time.Hour)

	t.Run("Should not accept a token signed with another secret", func(t *testing.T) {
		signed, err := NewManager("other", time.Hour).GenerateToken("a@x.com")
		require.NoError(t, err)
		_, err = manager.ValidateToken(signed)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("Should not accept garbage", func(t *testing.T) {
		_, err := manager.ValidateToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("Should not accept the none algorithm", func(t *testing.T) {
		claims := &SignedDetails{
			Email: "a@x.com",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = manager.ValidateToken(signed)
		assert.Error(t, err)
	})

	t.Run("Should not accept a token without an email", func(t *testing.T) {
		claims := &SignedDetails{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = manager.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Should not accept a token without expiry", func(t *testing.T) {
		claims := &SignedDetails{Email: "a@x.com"}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = manager.ValidateToken(signed)
		assert.Error(t, err)
	})
}
