package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/you/kpaforms/domain"
)

// IdentityResolverImpl implements domain.IdentityResolver. It keeps no state
// between calls; every request is resolved from the token and the user store.
type IdentityResolverImpl struct {
	tokenSvc domain.TokenService
	userRepo domain.UserRepository
}

// NewIdentityResolver creates a new identity resolver
func NewIdentityResolver(tokenSvc domain.TokenService, userRepo domain.UserRepository) domain.IdentityResolver {
	return &IdentityResolverImpl{
		tokenSvc: tokenSvc,
		userRepo: userRepo,
	}
}

// Resolve implements domain.IdentityResolver
func (r *IdentityResolverImpl) Resolve(ctx context.Context, bearer string) (*domain.User, error) {
	if bearer == "" {
		return nil, domain.ErrUnauthenticated
	}

	userID, err := r.tokenSvc.Verify(bearer)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := r.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.IsActive {
		return nil, domain.ErrUnauthenticated
	}

	return user, nil
}
