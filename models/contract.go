package models

import "time"

type ContractStatus string

const (
	ContractActive     ContractStatus = "active"
	ContractEnded      ContractStatus = "ended"
	ContractTerminated ContractStatus = "terminated"
)

// Contract binds a guest to a room of an apartment until EndDate.
type Contract struct {
	ID          string         `bson:"id" json:"id"`
	GuestID     string         `bson:"guestId" json:"guestId"`
	ApartmentID string         `bson:"apartmentId" json:"apartmentId"`
	RoomID      string         `bson:"roomId" json:"roomId"`
	StartDate   time.Time      `bson:"startDate" json:"startDate"`
	EndDate     time.Time      `bson:"endDate" json:"endDate"`
	Status      ContractStatus `bson:"status" json:"status"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
}
