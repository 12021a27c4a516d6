package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/equiledger/backend/internal/apperr"
	"github.com/equiledger/backend/internal/model"
)

func TestTokens_SessionRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret")

	signed, err := tokens.IssueSession(42, model.RoleAccountant)
	require.NoError(t, err)

	claims, err := tokens.VerifySession(signed)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, model.RoleAccountant, claims.Role)
	require.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestTokens_WrongSecretRejected(t *testing.T) {
	signed, err := NewTokens("secret-one").IssueSession(1, model.RoleClient)
	require.NoError(t, err)

	_, err = NewTokens("secret-two").VerifySession(signed)
	require.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestTokens_GarbageRejected(t *testing.T) {
	tokens := NewTokens("test-secret")

	_, err := tokens.VerifySession("not-a-token")
	require.ErrorIs(t, err, apperr.ErrInvalidToken)

	_, err = tokens.VerifyReset("")
	require.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestTokens_InviteRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret")

	signed, err := tokens.IssueInvite("invited@example.com")
	require.NoError(t, err)

	claims, err := tokens.VerifyInvite(signed)
	require.NoError(t, err)
	require.Equal(t, "invited@example.com", claims.Email)
}

func TestTokens_ResetRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret")

	signed, err := tokens.IssueReset(7)
	require.NoError(t, err)

	claims, err := tokens.VerifyReset(signed)
	require.NoError(t, err)
	require.Equal(t, int64(7), claims.UserID)
}
