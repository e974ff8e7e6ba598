package models

import "time"

type NotificationType string

const (
	NotificationContractExpiry NotificationType = "contract_expiry"
	NotificationGeneral        NotificationType = "general"
)

// Notification is written once by the dispatcher and later deleted by the
// retention purge. IsRead is flipped by the reading client only.
type Notification struct {
	ID        string           `bson:"id" json:"id"`
	UserID    string           `bson:"userId" json:"userId"`
	Title     string           `bson:"title" json:"title"`
	Message   string           `bson:"message" json:"message"`
	Type      NotificationType `bson:"type" json:"type"`
	RelatedID string           `bson:"relatedId,omitempty" json:"relatedId,omitempty"`
	IsRead    bool             `bson:"isRead" json:"isRead"`
	CreatedAt time.Time        `bson:"createdAt" json:"createdAt"`
}
