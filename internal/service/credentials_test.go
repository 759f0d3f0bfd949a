package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aditraka/go-taskpilot-backend/internal/model"
	"github.com/aditraka/go-taskpilot-backend/pkg/apierrors"
)

// fakeStore is an in-memory TokenStore shared by the service tests.
type fakeStore struct {
	tokens map[string]string
	err    error
}

func (f *fakeStore) GetToken(ctx context.Context, userID string) (*model.Credential, error) {
	if f.err != nil {
		return nil, f.err
	}
	tok, ok := f.tokens[userID]
	if !ok {
		return nil, nil
	}
	return &model.Credential{UserID: userID, Token: tok}, nil
}

func (f *fakeStore) UpsertToken(ctx context.Context, userID, token string) error {
	if f.err != nil {
		return f.err
	}
	if f.tokens == nil {
		f.tokens = map[string]string{}
	}
	f.tokens[userID] = token
	return nil
}

func TestResolveToken_PrefersStoredOverFallback(t *testing.T) {
	store := &fakeStore{tokens: map[string]string{"u1": "abc"}}
	resolver := NewCredentialResolver(store, "env123", zap.NewNop())

	got, err := resolver.ResolveToken(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Token)
	assert.Equal(t, "u1", got.UserID)
}

func TestResolveToken_FallsBackToSharedToken(t *testing.T) {
	resolver := NewCredentialResolver(&fakeStore{}, "env123", zap.NewNop())

	got, err := resolver.ResolveToken(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "env123", got.Token)
}

func TestResolveToken_NoCredentialAvailable(t *testing.T) {
	resolver := NewCredentialResolver(&fakeStore{}, "", zap.NewNop())

	_, err := resolver.ResolveToken(context.Background(), "u1")
	require.Error(t, err)
	ae := apierrors.From(err)
	assert.Equal(t, http.StatusInternalServerError, ae.Status)
	assert.Equal(t, "No Todoist token available", ae.Message)
}

func TestResolveToken_NotAuthenticated(t *testing.T) {
	resolver := NewCredentialResolver(&fakeStore{tokens: map[string]string{"u1": "abc"}}, "env123", zap.NewNop())

	_, err := resolver.ResolveToken(context.Background(), "")
	require.Error(t, err)
	ae := apierrors.From(err)
	assert.Equal(t, http.StatusUnauthorized, ae.Status)
	assert.Equal(t, "Not authenticated", ae.Message)
}
