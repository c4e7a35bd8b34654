package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is a privileged account authorized for attendee management operations.
// The password is stored as a bcrypt hash and never serialized to JSON.
type Admin struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AdminName string             `json:"adminName" bson:"adminName"`
	Password  string             `json:"-" bson:"password"`
}

// User is a festival attendee record. Name and code are globally unique,
// enforced by the collection indexes. BirthDate is kept as a plain string, as
// provided by the registration sheets.
type User struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	ChurchName string             `json:"churchName" bson:"churchName"`
	Code       string             `json:"code" bson:"code"`
	BirthDate  string             `json:"birthDate" bson:"birthDate"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}
