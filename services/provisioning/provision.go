// Package provisioning creates the default user record on first sign-in.
package provisioning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentwatch/database/repository"
	"rentwatch/database/store"
	"rentwatch/models"
	"rentwatch/utils"

	"go.uber.org/zap"
)

const defaultName = "User"

// Identity is what the auth provider tells us about a newly signed-in account.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

type Provisioner struct {
	Users repository.UserRepository
	Now   func() time.Time
}

func NewProvisioner(users repository.UserRepository) *Provisioner {
	return &Provisioner{Users: users, Now: time.Now}
}

// EnsureUser returns the existing record for id.UID, or creates an active viewer.
// The boolean reports whether a record was created.
func (p *Provisioner) EnsureUser(ctx context.Context, id Identity) (*models.User, bool, error) {
	if id.UID == "" {
		return nil, false, utils.Unauthenticated("User must be authenticated")
	}

	existing, err := p.Users.GetByID(ctx, id.UID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, utils.Internal("Failed to provision user", err)
	}

	now := p.Now()
	name := id.DisplayName
	if name == "" {
		name = defaultName
	}
	user := &models.User{
		ID:          id.UID,
		Email:       id.Email,
		Name:        name,
		Role:        models.RoleViewer,
		IsActive:    true,
		PhotoURL:    id.PhotoURL,
		CreatedAt:   now,
		LastLoginAt: now,
	}

	if err := p.Users.Create(ctx, user); err != nil {
		// A concurrent sign-in may have created the record first.
		if existing, getErr := p.Users.GetByID(ctx, id.UID); getErr == nil {
			return existing, false, nil
		}
		return nil, false, utils.Internal("Failed to provision user", fmt.Errorf("create user %s: %w", id.UID, err))
	}

	utils.GetLogger().Info("Created user document", zap.String("uid", id.UID))
	return user, true, nil
}
