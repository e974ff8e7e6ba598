// models/user.go
package models

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleViewer  Role = "viewer"
)

// User is a staff account. Role and IsActive drive recipient selection and
// permission checks; PushToken is the optional FCM registration token.
type User struct {
	ID          string    `bson:"id" json:"id"`
	Email       string    `bson:"email" json:"email"`
	Name        string    `bson:"name" json:"name"`
	Role        Role      `bson:"role" json:"role"`
	IsActive    bool      `bson:"isActive" json:"isActive"`
	PushToken   string    `bson:"fcmToken,omitempty" json:"-"`
	PhotoURL    string    `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	LastLoginAt time.Time `bson:"lastLoginAt" json:"lastLoginAt"`
}
