// Package authz holds the single role-membership rule used by every
// caller-invoked job.
package authz

import (
	"slices"

	"rentwatch/models"
	"rentwatch/utils"
)

// Staff may send notifications, read reports and trigger jobs on demand.
var Staff = []models.Role{models.RoleAdmin, models.RoleManager}

// Allow reports whether actorRole is one of required.
func Allow(actorRole models.Role, required ...models.Role) bool {
	return actorRole != "" && slices.Contains(required, actorRole)
}

// Require returns a permission-denied error unless Allow holds.
func Require(actorRole models.Role, required ...models.Role) error {
	if !Allow(actorRole, required...) {
		return utils.PermissionDenied("Insufficient permissions")
	}
	return nil
}
