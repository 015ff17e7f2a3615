package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher(t *testing.T) {
	h, err := NewPasswordHasher("")
	require.NoError(t, err)
	assert.Equal(t, PasswordModeBcrypt, h.Mode())

	h, err = NewPasswordHasher("plain")
	require.NoError(t, err)
	assert.Equal(t, PasswordModePlain, h.Mode())

	_, err = NewPasswordHasher("md5")
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}
	stored, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", stored)
	assert.True(t, h.Compare(stored, "secret1"))
	assert.False(t, h.Compare(stored, "wrong"))
}

func TestPlainHasher(t *testing.T) {
	h := PlainHasher{}
	stored, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.Equal(t, "secret1", stored)
	assert.True(t, h.Compare(stored, "secret1"))
	assert.False(t, h.Compare(stored, "secret"))
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	token, expires, err := m.Issue("sess-1", "user-1", "a@b.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	token, _, err := m.Issue("sess-1", "user-1", "a@b.com")
	require.NoError(t, err)

	other := NewTokenManager("other-secret", time.Hour)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenManager("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Issue("sess-1", "user-1", "a@b.com")
	require.NoError(t, err)
	_, err = m.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCanPerformAction(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		ownerID    string
		permission string
		want       bool
	}{
		{"owner updates", "u1", "u1", PermBusinessUpdate, true},
		{"owner deletes", "u1", "u1", PermBusinessDelete, true},
		{"other user", "u2", "u1", PermBusinessUpdate, false},
		{"no user", "", "", PermBusinessDelete, false},
		{"unknown permission", "u1", "u1", "system:admin", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPerformAction(tt.userID, tt.ownerID, tt.permission))
		})
	}
	assert.True(t, HasPermission(PermBusinessUpdate))
	assert.False(t, HasPermission("users:delete"))
}
