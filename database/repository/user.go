// database/repository/user.go
package repository

import (
	"context"
	"iter"

	"rentwatch/database/store"
	"rentwatch/models"
)

// UserRepository defines the user data access the pipeline needs.
type UserRepository interface {
	// GetByID returns store.ErrNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// FindByRoles streams users holding any of roles, optionally only active ones.
	FindByRoles(ctx context.Context, roles []models.Role, activeOnly bool) iter.Seq2[models.User, error]
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
}

type userRepo struct {
	gw store.Gateway
}

func NewUserRepo(gw store.Gateway) UserRepository {
	return &userRepo{gw: gw}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return get[models.User](ctx, r.gw, Users, id)
}

func (r *userRepo) FindByRoles(ctx context.Context, roles []models.Role, activeOnly bool) iter.Seq2[models.User, error] {
	values := make([]any, len(roles))
	for i, role := range roles {
		values[i] = string(role)
	}
	where := []store.Predicate{store.In("role", values...)}
	if activeOnly {
		where = append(where, store.Eq("isActive", true))
	}
	return find[models.User](ctx, r.gw, store.Query{Collection: Users, Where: where})
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	return r.gw.Insert(ctx, Users, user)
}
