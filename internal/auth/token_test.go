package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/qubelint-io/qapi-client/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		token    *auth.Token
		expected bool
	}{
		{
			name:     "nil token",
			token:    nil,
			expected: false,
		},
		{
			name: "empty access token",
			token: &auth.Token{
				AccessToken: "",
			},
			expected: false,
		},
		{
			name: "valid token without expiry",
			token: &auth.Token{
				AccessToken: "squ_0123456789abcdef",
			},
			expected: true,
		},
		{
			name: "valid token with future expiry",
			token: &auth.Token{
				AccessToken: "squ_0123456789abcdef",
				ExpiresAt:   time.Now().Add(1 * time.Hour),
			},
			expected: true,
		},
		{
			name: "expired token",
			token: &auth.Token{
				AccessToken: "squ_0123456789abcdef",
				ExpiresAt:   time.Now().Add(-1 * time.Hour),
			},
			expected: false,
		},
		{
			name: "token expiring within buffer",
			token: &auth.Token{
				AccessToken: "squ_0123456789abcdef",
				ExpiresAt:   time.Now().Add(15 * time.Second),
			},
			expected: false,
		},
		{
			name: "token expiring just outside buffer",
			token: &auth.Token{
				AccessToken: "squ_0123456789abcdef",
				ExpiresAt:   time.Now().Add(35 * time.Second),
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.token.Valid())
		})
	}
}

func TestTokenStore(t *testing.T) {
	t.Parallel()

	t.Run("new store is empty", func(t *testing.T) {
		t.Parallel()

		store := auth.NewTokenStore()
		assert.Nil(t, store.Get())
	})

	t.Run("set and get token", func(t *testing.T) {
		t.Parallel()

		store := auth.NewTokenStore()
		token := &auth.Token{
			AccessToken: "squ_0123456789abcdef",
			TokenType:   "bearer",
		}

		store.Set(token)
		retrieved := store.Get()
		assert.NotNil(t, retrieved)
		assert.Equal(t, token.AccessToken, retrieved.AccessToken)
		assert.Equal(t, token.TokenType, retrieved.TokenType)
	})

	t.Run("clear token", func(t *testing.T) {
		t.Parallel()

		store := auth.NewTokenStore()
		store.Set(&auth.Token{AccessToken: "squ_0123456789abcdef"})
		assert.NotNil(t, store.Get())

		store.Clear()
		assert.Nil(t, store.Get())
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()

		store := auth.NewTokenStore()
		done := make(chan bool)

		for _, token := range []string{"token-1", "token-2"} {
			go func() {
				for range 100 {
					store.Set(&auth.Token{AccessToken: token})
				}

				done <- true
			}()
		}

		for range 2 {
			go func() {
				for range 100 {
					_ = store.Get()
				}

				done <- true
			}()
		}

		for range 4 {
			<-done
		}

		finalToken := store.Get()
		assert.NotNil(t, finalToken)
		assert.True(t, finalToken.AccessToken == "token-1" || finalToken.AccessToken == "token-2")
	})
}

func TestStaticTokenManager(t *testing.T) {
	t.Parallel()

	t.Run("serves the initial token", func(t *testing.T) {
		t.Parallel()

		manager := auth.NewStaticTokenManager("squ_0123456789abcdef")

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "squ_0123456789abcdef", token)
	})

	t.Run("empty token fails until set", func(t *testing.T) {
		t.Parallel()

		manager := auth.NewStaticTokenManager("")

		_, err := manager.GetToken(context.Background())
		require.ErrorIs(t, err, auth.ErrNoToken)

		manager.SetToken("squ_late", time.Time{})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "squ_late", token)
	})

	t.Run("expired token fails", func(t *testing.T) {
		t.Parallel()

		manager := auth.NewStaticTokenManager("")
		manager.SetToken("squ_expiring", time.Now().Add(-time.Minute))

		_, err := manager.GetToken(context.Background())
		require.ErrorIs(t, err, auth.ErrNoToken)
	})
}
