package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurante-backend/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 60)
	user := &domain.User{Email: "ana@example.com", Role: domain.RoleAdministrador}

	token, err := m.IssueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Subject)
	assert.Equal(t, domain.RoleAdministrador, claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", 60).IssueToken(&domain.User{Email: "x@example.com", Role: domain.RoleCliente})
	require.NoError(t, err)

	_, err = NewManager("secret-b", 60).ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	m := NewManager("test-secret", -1)
	token, err := m.IssueToken(&domain.User{Email: "x@example.com", Role: domain.RoleCliente})
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := NewManager("test-secret", 60).ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}
