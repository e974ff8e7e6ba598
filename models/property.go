package models

type Guest struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

type Apartment struct {
	ID      string `bson:"id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
}

type Room struct {
	ID          string `bson:"id" json:"id"`
	ApartmentID string `bson:"apartmentId,omitempty" json:"apartmentId,omitempty"`
	RoomNumber  string `bson:"roomNumber" json:"roomNumber"`
}
