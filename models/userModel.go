package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID           bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID       string        `json:"user_id" bson:"user_id"`
	FirstName    string        `json:"first_name" bson:"first_name" validate:"required,min=2,max=100"`
	LastName     string        `json:"last_name" bson:"last_name" validate:"required,min=2,max=100"`
	Email        string        `json:"email" bson:"email" validate:"required,email"`
	Password     string        `json:"password" bson:"password" validate:"required,min=8"`
	Role         string        `json:"role" bson:"role" validate:"omitempty,oneof=ADMIN USER"`
	Token        string        `json:"token,omitempty" bson:"token,omitempty"`
	RefreshToken string        `json:"refresh_token,omitempty" bson:"refresh_token,omitempty"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
}

type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
