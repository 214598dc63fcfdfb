package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
}

func TestTokenManager_ParseRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	token, err := issuer.Issue(42)
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_ParseRejectsExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.Issue(42)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_ParseRejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	_, err := m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_OAuthState(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	state, err := m.IssueState("google")
	require.NoError(t, err)

	assert.NoError(t, m.VerifyState("google", state))
	assert.ErrorIs(t, m.VerifyState("github", state), ErrInvalidToken)
	assert.ErrorIs(t, m.VerifyState("google", "forged-state"), ErrInvalidToken)
}

func TestTokenManager_StateIsNotABearerToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	state, err := m.IssueState("google")
	require.NoError(t, err)

	// State subject is non-numeric, so it can never authenticate a request.
	_, err = m.Parse(state)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
