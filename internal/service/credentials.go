package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aditraka/go-taskpilot-backend/internal/model"
	"github.com/aditraka/go-taskpilot-backend/internal/repository"
	"github.com/aditraka/go-taskpilot-backend/pkg/apierrors"
)

// CredentialResolver picks the Todoist token for a user: the stored one when
// the user has connected an account, otherwise the shared fallback from
// configuration. Resolved fresh on every call, no caching.
type CredentialResolver struct {
	Store         repository.TokenStore
	FallbackToken string
	Log           *zap.Logger
}

func NewCredentialResolver(store repository.TokenStore, fallbackToken string, log *zap.Logger) *CredentialResolver {
	return &CredentialResolver{Store: store, FallbackToken: fallbackToken, Log: log}
}

func (r *CredentialResolver) ResolveToken(ctx context.Context, userID string) (*model.ResolvedToken, error) {
	if userID == "" {
		return nil, apierrors.NotAuthenticated()
	}

	cred, err := r.Store.GetToken(ctx, userID)
	if err != nil {
		return nil, apierrors.Internal("Failed to look up Todoist token", err)
	}
	if cred != nil && cred.Token != "" {
		return &model.ResolvedToken{Token: cred.Token, UserID: userID}, nil
	}

	if r.FallbackToken != "" {
		r.Log.Debug("using fallback todoist token", zap.String("user_id", userID))
		return &model.ResolvedToken{Token: r.FallbackToken, UserID: userID}, nil
	}

	r.Log.Warn("no todoist token available", zap.String("user_id", userID))
	return nil, apierrors.NoCredential()
}
